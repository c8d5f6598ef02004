package arsc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strRes(name string, id uint32, value string) *String {
	return &String{
		ResourceInfo: ResourceInfo{ResourceName: name, ResourceID: id},
		Value:        value,
	}
}

func singleTable(pkgID uint32, pkgName string, typeID uint8, typeName string, dc DeviceConfig, res ...Resource) *Table {
	return &Table{
		Strings: map[uint32]string{},
		Packages: []*Package{{
			ID:   pkgID,
			Name: pkgName,
			Types: []*Type{{
				ID:      typeID,
				Name:    typeName,
				Configs: []*Config{{Device: dc, Resources: res}},
			}},
		}},
	}
}

func TestAddAllDisjointPackages(t *testing.T) {
	var dc DeviceConfig
	a := singleTable(0x7f, "app", 1, "string", dc, strRes("a", 0x7f010000, "A"))
	b := singleTable(0x80, "lib", 1, "string", dc, strRes("b", 0x80010000, "B"))
	b.Strings[0] = "shared"

	a.AddAll(b)
	require.Len(t, a.Packages, 2)
	assert.NotNil(t, a.Package(0x7f, "app"))
	assert.NotNil(t, a.Package(0x80, "lib"))
	assert.Equal(t, "shared", a.Strings[0])

	// Lookups across both packages still resolve.
	v, ok := a.FindStringResource("a")
	require.True(t, ok)
	assert.Equal(t, "A", v)
	v, ok = a.FindStringResource("b")
	require.True(t, ok)
	assert.Equal(t, "B", v)
}

func TestAddAllSameConfigConcatenates(t *testing.T) {
	var dc DeviceConfig
	a := singleTable(0x7f, "app", 1, "string", dc, strRes("a", 0x7f010000, "A"))
	b := singleTable(0x7f, "app", 1, "string", dc, strRes("b", 0x7f010001, "B"))

	a.AddAll(b)
	require.Len(t, a.Packages, 1)
	tp := a.Packages[0].Types
	require.Len(t, tp, 1)
	require.Len(t, tp[0].Configs, 1)
	assert.Len(t, tp[0].Configs[0].Resources, 2)
}

func TestAddAllNewConfigAppends(t *testing.T) {
	var dc DeviceConfig
	land := dc
	land.Orientation = 2
	a := singleTable(0x7f, "app", 1, "string", dc, strRes("a", 0x7f010000, "portrait"))
	b := singleTable(0x7f, "app", 1, "string", land, strRes("a", 0x7f010000, "landscape"))

	a.AddAll(b)
	tp := a.Packages[0].Types[0]
	require.Len(t, tp.Configs, 2)
	assert.NotNil(t, tp.Config(dc))
	assert.NotNil(t, tp.Config(land))
	assert.Len(t, a.FindAllResources(0x7f010000), 2)
}

func TestAddAllNewTypeAppends(t *testing.T) {
	var dc DeviceConfig
	a := singleTable(0x7f, "app", 1, "string", dc, strRes("a", 0x7f010000, "A"))
	b := singleTable(0x7f, "app", 2, "layout", dc, strRes("main", 0x7f020000, "res/layout/main.xml"))

	a.AddAll(b)
	require.Len(t, a.Packages, 1)
	assert.Len(t, a.Packages[0].Types, 2)
	assert.NotNil(t, a.FindResourceType(0x7f020000))
}

func TestAllResourcesFirstConfigWins(t *testing.T) {
	var dc DeviceConfig
	land := dc
	land.Orientation = 2
	tp := &Type{ID: 1, Name: "string", Configs: []*Config{
		{Device: dc, Resources: []Resource{
			strRes("title", 0x7f010000, "default"),
			strRes("only_default", 0x7f010001, "x"),
		}},
		{Device: land, Resources: []Resource{
			strRes("title", 0x7f010000, "landscape"),
			strRes("only_land", 0x7f010002, "y"),
		}},
	}}

	all := tp.AllResources()
	require.Len(t, all, 3)
	assert.Equal(t, "default", all[0].String())
	assert.ElementsMatch(t, []string{"title", "only_default", "only_land"}, tp.AllResourceNames())
}

func TestTypeQueries(t *testing.T) {
	var dc DeviceConfig
	tp := &Type{ID: 1, Name: "string", Configs: []*Config{
		{Device: dc, Resources: []Resource{
			strRes("a", 0x7f010000, "A"),
			strRes("b", 0x7f010001, "B"),
		}},
	}}

	assert.Equal(t, "B", tp.ResourceByName("b").String())
	assert.Nil(t, tp.ResourceByName("missing"))
	assert.Equal(t, "A", tp.FirstResourceByID(0x7f010000).String())
	assert.Nil(t, tp.FirstResourceByID(0x7f0100ff))
	assert.Len(t, tp.AllResourcesByID(0x7f010001), 1)
}

func TestFindResourcesByType(t *testing.T) {
	var dc DeviceConfig
	a := singleTable(0x7f, "app", 1, "string", dc, strRes("a", 0x7f010000, "A"))
	b := singleTable(0x80, "lib", 1, "string", dc, strRes("b", 0x80010000, "B"))
	a.AddAll(b)

	res := a.FindResourcesByType("string")
	require.Len(t, res, 2)
	assert.Empty(t, a.FindResourcesByType("drawable"))
}

func TestEntriesSorted(t *testing.T) {
	var dc DeviceConfig
	a := singleTable(0x80, "lib", 1, "string", dc, strRes("b", 0x80010000, "B"))
	a.AddAll(singleTable(0x7f, "app", 1, "string", dc, strRes("a", 0x7f010000, "A")))

	entries := a.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, uint32(0x7f010000), entries[0].ID)
	assert.Equal(t, "app", entries[0].Package)
	assert.Equal(t, uint32(0x80010000), entries[1].ID)
}

func TestFindResourceByNameNil(t *testing.T) {
	var dc DeviceConfig
	a := singleTable(0x7f, "app", 1, "string", dc, strRes("a", 0x7f010000, "A"))
	assert.Nil(t, a.FindResourceByName("drawable", "a"))
	assert.Nil(t, a.FindResourceByName("string", "zzz"))
	_, ok := a.FindStringResource("zzz")
	assert.False(t, ok)
}
