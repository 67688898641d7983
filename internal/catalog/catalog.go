// ABOUTME: Case Catalog - the validated, immutable table of consultation cases
// ABOUTME: Callers only ever receive copies so the table cannot change after load
package catalog

import "github.com/harper/usecase-clinic/internal/models"

// Catalog is an ordered, read-only collection of validated cases
type Catalog struct {
	cases []models.Case
	index map[string]int
}

// New validates the cases and builds a catalog from private copies of them
func New(cases []models.Case) (*Catalog, error) {
	if err := Validate(cases); err != nil {
		return nil, err
	}

	c := &Catalog{
		cases: make([]models.Case, len(cases)),
		index: make(map[string]int, len(cases)),
	}
	for i, cs := range cases {
		c.cases[i] = cs.Clone()
		c.index[cs.ID] = i
	}
	return c, nil
}

// Len returns the number of cases
func (c *Catalog) Len() int {
	return len(c.cases)
}

// Cases returns copies of all cases in authored order
func (c *Catalog) Cases() []models.Case {
	out := make([]models.Case, len(c.cases))
	for i, cs := range c.cases {
		out[i] = cs.Clone()
	}
	return out
}

// Get returns a copy of the case with the given ID
func (c *Catalog) Get(id string) (models.Case, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.Case{}, false
	}
	return c.cases[i].Clone(), true
}

// IDs returns case IDs in authored order
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.cases))
	for i, cs := range c.cases {
		ids[i] = cs.ID
	}
	return ids
}
