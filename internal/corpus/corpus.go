package corpus

// Corpus is the read-only set of sheets loaded once at process start.
// It is never mutated after construction; every query re-scans it.
type Corpus struct {
	sheets map[string]Table
	order  []string
}

// New builds a corpus from named tables, preserving insertion order
func New() *Corpus {
	return &Corpus{sheets: make(map[string]Table)}
}

// Add registers a sheet. Intended for construction only.
func (c *Corpus) Add(name string, t Table) {
	if _, exists := c.sheets[name]; !exists {
		c.order = append(c.order, name)
	}
	c.sheets[name] = t
}

// Sheet returns the named sheet and whether it exists
func (c *Corpus) Sheet(name string) (Table, bool) {
	t, ok := c.sheets[name]
	return t, ok
}

// SheetNames returns the sheet names in load order
func (c *Corpus) SheetNames() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Empty reports whether the corpus holds no sheets at all (for example
// when the workbook was missing at startup)
func (c *Corpus) Empty() bool {
	return len(c.sheets) == 0
}
