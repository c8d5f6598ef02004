package arsc

import "fmt"

// Table is the decoded resource table: the global string pool plus one
// Package per package chunk. A Table is built by a single Decode call and is
// read-only afterwards, except for AddAll which merges another table in.
// Neither operation may run concurrently with the other on the same tables.
type Table struct {
	Packages []*Package

	// Strings is the chunk-level (global) string pool, ordinal to string.
	Strings map[uint32]string
}

// Package groups the resource types declared by one package chunk.
type Package struct {
	ID    uint32
	Name  string
	Types []*Type
}

// Type is one resource type ("string", "drawable", ...) within a package,
// holding one Config per device configuration it has values for.
type Type struct {
	ID      uint8
	Name    string
	Configs []*Config
}

// Config pairs a device configuration with the resources defined under it.
type Config struct {
	Device    DeviceConfig
	Resources []Resource
}

// ResourceID is the decomposed form of a 32-bit resource id.
type ResourceID struct {
	PackageID  uint8
	TypeID     uint8
	EntryIndex uint16
}

// ParseResourceID splits a numeric resource id into its components. It is
// the inverse of Value.
func ParseResourceID(id uint32) ResourceID {
	return ResourceID{
		PackageID:  uint8(id >> 24),
		TypeID:     uint8(id >> 16),
		EntryIndex: uint16(id),
	}
}

// Value joins the components back into the numeric id.
func (r ResourceID) Value() uint32 {
	return uint32(r.PackageID)<<24 | uint32(r.TypeID)<<16 | uint32(r.EntryIndex)
}

func (r ResourceID) String() string {
	return fmt.Sprintf("package %d, type %d, item %d", r.PackageID, r.TypeID, r.EntryIndex)
}

// Package returns the package with the given id and name, or nil.
func (t *Table) Package(id uint32, name string) *Package {
	for _, p := range t.Packages {
		if p.ID == id && p.Name == name {
			return p
		}
	}
	return nil
}

// FindResource returns the first resource with the given id, scanning only
// the matching package and type, or nil. It is configuration-agnostic.
func (t *Table) FindResource(id uint32) Resource {
	rid := ParseResourceID(id)
	for _, pkg := range t.Packages {
		if pkg.ID != uint32(rid.PackageID) {
			continue
		}
		for _, tp := range pkg.Types {
			if tp.ID == rid.TypeID {
				return tp.FirstResourceByID(id)
			}
		}
		break
	}
	return nil
}

// FindAllResources returns every resource with the given id across all
// configurations.
func (t *Table) FindAllResources(id uint32) []Resource {
	var out []Resource
	rid := ParseResourceID(id)
	for _, pkg := range t.Packages {
		if pkg.ID != uint32(rid.PackageID) {
			continue
		}
		for _, tp := range pkg.Types {
			if tp.ID == rid.TypeID {
				out = append(out, tp.AllResourcesByID(id)...)
			}
		}
		break
	}
	return out
}

// FindResourceType returns the type addressed by the package and type bits
// of the given id, or nil.
func (t *Table) FindResourceType(id uint32) *Type {
	rid := ParseResourceID(id)
	for _, pkg := range t.Packages {
		if pkg.ID != uint32(rid.PackageID) {
			continue
		}
		for _, tp := range pkg.Types {
			if tp.ID == rid.TypeID {
				return tp
			}
		}
		break
	}
	return nil
}

// FindResourceByName returns the first resource with the given type name
// ("string", "layout", ...) and resource name, or nil.
func (t *Table) FindResourceByName(typeName, name string) Resource {
	for _, pkg := range t.Packages {
		tp := pkg.ResourceType(typeName)
		if tp == nil {
			continue
		}
		for _, res := range tp.AllResources() {
			if res.Name() == name {
				return res
			}
		}
	}
	return nil
}

// FindStringResource looks up a "string" resource by name. The second return
// is false when no such string exists.
func (t *Table) FindStringResource(name string) (string, bool) {
	if s, ok := t.FindResourceByName("string", name).(*String); ok {
		return s.Value, true
	}
	return "", false
}

// FindResourcesByType returns all resources of the named type across all
// packages, de-duplicated by resource name with first-seen-configuration
// precedence.
func (t *Table) FindResourcesByType(typeName string) []Resource {
	var out []Resource
	for _, pkg := range t.Packages {
		if tp := pkg.ResourceType(typeName); tp != nil {
			out = append(out, tp.AllResources()...)
		}
	}
	return out
}

// AddAll merges another, independently decoded table into this one.
// Packages match on (id, name), types on (id, name), configurations on
// device-configuration equality; matching configurations concatenate their
// resource lists, everything else is appended. The other table is left
// untouched but shares children with this one afterwards.
func (t *Table) AddAll(other *Table) {
	for _, pkg := range other.Packages {
		if existing := t.Package(pkg.ID, pkg.Name); existing == nil {
			t.Packages = append(t.Packages, pkg)
		} else {
			existing.addAll(pkg)
		}
	}
	for k, v := range other.Strings {
		t.Strings[k] = v
	}
}

// Type returns the type with the given id and name, or nil.
func (p *Package) Type(id uint8, name string) *Type {
	for _, tp := range p.Types {
		if tp.ID == id && tp.Name == name {
			return tp
		}
	}
	return nil
}

// ResourceType returns the first type with the given name, or nil.
func (p *Package) ResourceType(name string) *Type {
	for _, tp := range p.Types {
		if tp.Name == name {
			return tp
		}
	}
	return nil
}

func (p *Package) typeByID(id uint8) *Type {
	for _, tp := range p.Types {
		if tp.ID == id {
			return tp
		}
	}
	return nil
}

func (p *Package) addAll(other *Package) {
	for _, tp := range other.Types {
		if existing := p.Type(tp.ID, tp.Name); existing == nil {
			p.Types = append(p.Types, tp)
		} else {
			existing.addAll(tp)
		}
	}
}

// Config returns the configuration group matching the given device
// configuration, or nil.
func (t *Type) Config(dc DeviceConfig) *Config {
	for _, c := range t.Configs {
		if c.Device == dc {
			return c
		}
	}
	return nil
}

// AllResources returns every resource of this type regardless of
// configuration. Resources sharing a name are returned once, taking the
// value from the first configuration that defines them.
func (t *Type) AllResources() []Resource {
	seen := make(map[string]bool)
	var out []Resource
	for _, c := range t.Configs {
		for _, res := range c.Resources {
			if seen[res.Name()] {
				continue
			}
			seen[res.Name()] = true
			out = append(out, res)
		}
	}
	return out
}

// AllResourceNames returns the set of resource names defined for this type.
func (t *Type) AllResourceNames() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range t.Configs {
		for _, res := range c.Resources {
			if !seen[res.Name()] {
				seen[res.Name()] = true
				out = append(out, res.Name())
			}
		}
	}
	return out
}

// ResourceByName returns the first resource with the given name, or nil.
func (t *Type) ResourceByName(name string) Resource {
	for _, c := range t.Configs {
		for _, res := range c.Resources {
			if res.Name() == name {
				return res
			}
		}
	}
	return nil
}

// FirstResourceByID returns the first resource with the given id, or nil.
func (t *Type) FirstResourceByID(id uint32) Resource {
	for _, c := range t.Configs {
		for _, res := range c.Resources {
			if res.ID() == id {
				return res
			}
		}
	}
	return nil
}

// AllResourcesByID returns every resource with the given id.
func (t *Type) AllResourcesByID(id uint32) []Resource {
	var out []Resource
	for _, c := range t.Configs {
		for _, res := range c.Resources {
			if res.ID() == id {
				out = append(out, res)
			}
		}
	}
	return out
}

func (t *Type) addAll(other *Type) {
	for _, c := range other.Configs {
		if existing := t.Config(c.Device); existing == nil {
			t.Configs = append(t.Configs, c)
		} else {
			existing.Resources = append(existing.Resources, c.Resources...)
		}
	}
}
