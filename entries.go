package arsc

import "sort"

// Entry is one row of the flattened table view: a resource with its owning
// package and type names and a rendered value. Entries repeated under
// several configurations produce one row each.
type Entry struct {
	ID      uint32 `json:"id"`
	Package string `json:"package"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Value   string `json:"value"`
}

// Entries flattens the whole table into an id-ordered list, the shape used
// by dump tooling.
func (t *Table) Entries() []Entry {
	var out []Entry
	for _, pkg := range t.Packages {
		for _, tp := range pkg.Types {
			for _, c := range tp.Configs {
				for _, res := range c.Resources {
					out = append(out, Entry{
						ID:      res.ID(),
						Package: pkg.Name,
						Type:    tp.Name,
						Name:    res.Name(),
						Value:   res.String(),
					})
				}
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}
