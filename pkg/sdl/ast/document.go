package ast

// ImportDirective records an IMPORT line. The parser only records the path
// and optional alias; resolving the path to content is the caller's job.
type ImportDirective struct {
	Path  string `json:"path" yaml:"path"`
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// Document is a parsed SDL source file: its import directives followed by
// its statute blocks, both in source order.
type Document struct {
	Imports  []ImportDirective `json:"imports,omitempty" yaml:"imports,omitempty"`
	Statutes []StatuteNode     `json:"statutes" yaml:"statutes"`
}

// Statute returns the statute with the given id, if present.
func (d *Document) Statute(id string) (*StatuteNode, bool) {
	for i := range d.Statutes {
		if d.Statutes[i].ID == id {
			return &d.Statutes[i], true
		}
	}
	return nil, false
}
