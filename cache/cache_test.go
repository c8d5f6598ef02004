package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwf2030/arsc"
)

func testTable() *arsc.Table {
	return &arsc.Table{
		Strings: map[uint32]string{0: "Demo", 1: "Hello"},
		Packages: []*arsc.Package{{
			ID:   0x7f,
			Name: "com.example.demo",
			Types: []*arsc.Type{{
				ID:   1,
				Name: "string",
				Configs: []*arsc.Config{{
					Resources: []arsc.Resource{
						&arsc.String{
							ResourceInfo: arsc.ResourceInfo{ResourceName: "app_name", ResourceID: 0x7f010000},
							Value:        "Demo",
						},
						&arsc.Integer{
							ResourceInfo: arsc.ResourceInfo{ResourceName: "max", ResourceID: 0x7f010001},
							Value:        -5,
						},
						&arsc.Dimension{
							ResourceInfo: arsc.ResourceInfo{ResourceName: "pad", ResourceID: 0x7f010002},
							Value:        12,
							Unit:         arsc.UnitDip,
						},
						&arsc.Complex{
							ResourceInfo: arsc.ResourceInfo{ResourceName: "Theme", ResourceID: 0x7f010003},
							ResType:      "style",
							Values: map[string]arsc.Resource{
								"16842753": &arsc.Boolean{Value: true},
							},
						},
					},
				}},
			}},
		}},
	}
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tables.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundtrip(t *testing.T) {
	s := openStore(t)
	table := testTable()
	key := Key([]byte("raw table bytes"))

	require.NoError(t, s.Put(key, table))
	got, err := s.Get(key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, table, got)

	v, ok := got.FindStringResource("app_name")
	require.True(t, ok)
	assert.Equal(t, "Demo", v)
}

func TestStoreMiss(t *testing.T) {
	s := openStore(t)
	got, err := s.Get(Key([]byte("never stored")))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreDelete(t *testing.T) {
	s := openStore(t)
	key := Key([]byte("x"))
	require.NoError(t, s.Put(key, testTable()))
	require.NoError(t, s.Delete(key))

	got, err := s.Get(key)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestKey(t *testing.T) {
	a := Key([]byte("a"))
	b := Key([]byte("b"))
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, Key([]byte("a")))
}

func TestFileKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "res.arsc")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0644))

	k, err := FileKey(path)
	require.NoError(t, err)
	assert.Equal(t, Key([]byte("payload")), k)

	_, err = FileKey(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
