package timetable

import (
	"regexp"
	"strings"

	"github.com/amritadottown/timetable-registry/internal"
	"github.com/amritadottown/timetable-registry/internal/util"
)

var (
	subjectCodePattern = regexp.MustCompile(`^\d{2}[A-Z]{2,4}\d{2,3}$`)
	letterSlotPattern  = regexp.MustCompile(`^[A-Z]{1,3}$`)
	electiveSlotRegexp = regexp.MustCompile(`(?i)^PE-?[IVX]+$`)
	creditCellPattern  = regexp.MustCompile(`^[\d\s\-]+$`)
)

var (
	honorifics        = []string{"Dr.", "Mr.", "Ms.", "Mrs.", "Prof."}
	facultyMarkers    = append(append([]string{}, honorifics...), "New Faculty", "TBD")
	slotHeaderLabels  = map[string]struct{}{"Slot": {}, "Subject Code": {}}
	minSubjectRowSize = 5
)

// ParseSubjects collects one subject per row that carries a subject code.
// Rows that cannot be read are skipped; a repeated slot replaces the earlier row.
func (p *Parser) ParseSubjects(rows []internal.Row) *SubjectMap {
	subjects := NewSubjectMap()
	for _, row := range rows {
		if len(row) < minSubjectRowSize {
			continue
		}
		if s, ok := parseSubjectRow(util.CleanRow(row)); ok {
			subjects.Set(s)
		}
	}
	return subjects
}

func parseSubjectRow(cells []string) (Subject, bool) {
	codeIdx := -1
	for i, c := range cells {
		if subjectCodePattern.MatchString(c) {
			codeIdx = i
			break
		}
	}
	if codeIdx < 1 {
		return Subject{}, false
	}
	code := cells[codeIdx]

	slot := findSlot(cells, codeIdx)
	if slot == "" {
		if !strings.Contains(strings.Join(cells, " "), "Project Phase") {
			return Subject{}, false
		}
		slot = Project
	}

	ltpc, ltpcRaw, ltpcIdx := findCredits(cells, codeIdx)

	name, nameIdx := "", -1
	for i := ltpcIdx + 1; i < len(cells); i++ {
		c := cells[i]
		if c == "" || creditCellPattern.MatchString(c) {
			continue
		}
		if util.ContainsAny(c, honorifics) {
			break
		}
		name, nameIdx = c, i
		break
	}

	facultyFrom := ltpcIdx + 1
	if nameIdx >= 0 {
		facultyFrom = nameIdx + 1
	}
	facultyText := ""
	for i := facultyFrom; i < len(cells); i++ {
		if cells[i] != "" && util.ContainsAny(cells[i], facultyMarkers) {
			facultyText = cells[i]
			break
		}
	}

	taken := map[string]struct{}{"": {}, facultyText: {}, name: {}, ltpc: {}, ltpcRaw: {}, code: {}, slot: {}}
	department := ""
	for i := len(cells) - 1; i >= 0; i-- {
		c := cells[i]
		if _, ok := taken[c]; ok {
			continue
		}
		if util.ContainsAny(c, honorifics) {
			continue
		}
		department = c
		break
	}

	return Subject{
		Slot:       slot,
		Code:       code,
		Name:       name,
		Faculty:    ParseFaculty(facultyText),
		LTPC:       ltpc,
		Department: department,
	}, true
}

// findSlot walks left from the code cell to the nearest slot-shaped cell.
func findSlot(cells []string, codeIdx int) string {
	for i := codeIdx - 1; i >= 0; i-- {
		c := cells[i]
		if c == "" {
			continue
		}
		if _, label := slotHeaderLabels[c]; label {
			continue
		}
		if letterSlotPattern.MatchString(c) || electiveSlotRegexp.MatchString(c) {
			return c
		}
	}
	return ""
}

// findCredits looks at most three cells right of the code. Without a hit the
// credit position defaults to the cell right after the code.
func findCredits(cells []string, codeIdx int) (ltpc, raw string, idx int) {
	idx = codeIdx + 1
	end := min(codeIdx+4, len(cells))
	for i := codeIdx + 1; i < end; i++ {
		c := cells[i]
		if len(c) >= 5 && creditCellPattern.MatchString(c) {
			return strings.ReplaceAll(c, "-", " "), c, i
		}
	}
	return "", "", idx
}
