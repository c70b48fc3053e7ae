package timetable

import (
	"regexp"
	"strings"

	"github.com/amritadottown/timetable-registry/internal/util"
)

var parenthetical = regexp.MustCompile(`\s*\([^)]*\)\s*`)

const maxInitials = 3

// ShortName abbreviates a subject title, e.g. "Operating Systems" -> "OS" and
// "Environmental Science" -> "ES".
func (p *Parser) ShortName(name string) string {
	if name == "" {
		return TBD
	}
	clean := strings.TrimSpace(parenthetical.ReplaceAllString(name, ""))

	lowered := strings.ToLower(clean)
	for _, a := range p.tables.Abbreviations {
		if strings.Contains(lowered, a.Key) {
			return a.Short
		}
	}

	var b strings.Builder
	n := 0
	for _, w := range strings.Fields(clean) {
		if _, stop := p.stop[strings.ToLower(w)]; stop {
			continue
		}
		b.WriteString(util.Initial(w))
		n++
		if n == maxInitials {
			break
		}
	}
	return b.String()
}
