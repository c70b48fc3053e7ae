package timetable

// Parser applies one set of lookup tables. It holds no per-table state and is
// safe for concurrent use.
type Parser struct {
	tables *Tables
	noise  map[string]struct{}
	stop   map[string]struct{}
}

func NewParser(t *Tables) *Parser {
	if t == nil {
		t = DefaultTables()
	}
	return &Parser{
		tables: t,
		noise:  toSet(t.Noise),
		stop:   toSet(t.StopWords),
	}
}

func (p *Parser) Tables() *Tables {
	return p.tables
}
