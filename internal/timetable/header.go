package timetable

import (
	"regexp"
	"strings"

	"github.com/amritadottown/timetable-registry/internal/util"
)

var (
	mtechSectionPattern   = regexp.MustCompile(`(?i)Section-?\s*MTech:?\s*([A-Z]+)`)
	genericSectionPattern = regexp.MustCompile(`(?i)Section-?\s*([A-Z]\d?)\b\s*[:\-]?\s*([A-Z&]+(?:\s*&\s*[A-Z]+)?)`)
	hyphenSectionPattern  = regexp.MustCompile(`(?i)Section-?\s*([A-Z]+)-([A-Z])`)
	classroomPattern      = regexp.MustCompile(`(?i)Class\s*Room:?\s*([A-Z]?\s*\d+)`)
	ordinalSemPattern     = regexp.MustCompile(`(?i)(?:for\s+)?(\w+)\s+Semester`)
	romanSemPattern       = regexp.MustCompile(`(?i)\bSem\s*(VIII|VII|VI|IV|V|III|II|I)\b`)
	numeralSemPattern     = regexp.MustCompile(`(?i)\b([1-8])(?:st|nd|rd|th)?\s*Sem`)
)

var ordinalSemesters = map[string]string{
	"first": "1", "second": "2", "third": "3", "fourth": "4",
	"fifth": "5", "sixth": "6", "seventh": "7", "eighth": "8",
	"1st": "1", "2nd": "2", "3rd": "3", "4th": "4",
	"5th": "5", "6th": "6", "7th": "7", "8th": "8",
}

var romanSemesters = map[string]string{
	"I": "1", "II": "2", "III": "3", "IV": "4",
	"V": "5", "VI": "6", "VII": "7", "VIII": "8",
}

type sectionRule struct {
	name  string
	apply func(text string, info *SectionInfo) bool
}

// Tried in order; the first rule that matches sets both section and department.
var sectionRules = []sectionRule{
	{name: "mtech", apply: func(text string, info *SectionInfo) bool {
		m := mtechSectionPattern.FindStringSubmatch(text)
		if m == nil {
			return false
		}
		info.Department = "MTech"
		info.Section = strings.ToUpper(m[1])
		return true
	}},
	{name: "generic", apply: func(text string, info *SectionInfo) bool {
		m := genericSectionPattern.FindStringSubmatch(text)
		if m == nil {
			return false
		}
		info.Section = squash(m[1])
		info.Department = squash(m[2])
		return true
	}},
	{name: "hyphenated", apply: func(text string, info *SectionInfo) bool {
		m := hyphenSectionPattern.FindStringSubmatch(text)
		if m == nil {
			return false
		}
		info.Department = squash(m[1])
		info.Section = squash(m[2])
		return true
	}},
}

type semesterRule struct {
	name  string
	apply func(text string) string
}

var semesterRules = []semesterRule{
	// Only the first "<word> Semester" counts. Banners open with
	// "Even Semester", which falls through to the later rules.
	{name: "ordinal", apply: func(text string) string {
		if m := ordinalSemPattern.FindStringSubmatch(text); m != nil {
			return ordinalSemesters[strings.ToLower(m[1])]
		}
		return ""
	}},
	{name: "roman", apply: func(text string) string {
		if m := romanSemPattern.FindStringSubmatch(text); m != nil {
			return romanSemesters[strings.ToUpper(m[1])]
		}
		return ""
	}},
	{name: "numeral", apply: func(text string) string {
		if m := numeralSemPattern.FindStringSubmatch(text); m != nil {
			return m[1]
		}
		return ""
	}},
}

// ParseSectionInfo reads section metadata out of the concatenated header rows.
// Fields that cannot be found stay empty.
func (p *Parser) ParseSectionInfo(header string) SectionInfo {
	text := util.CleanText(header)
	var info SectionInfo

	for _, rule := range sectionRules {
		if rule.apply(text, &info) {
			break
		}
	}

	if m := classroomPattern.FindStringSubmatch(text); m != nil {
		info.Classroom = strings.TrimSpace(m[1])
	}

	for _, rule := range semesterRules {
		if sem := rule.apply(text); sem != "" {
			info.Semester = sem
			break
		}
	}

	if year, ok := p.tables.SemesterYear[info.Semester]; ok {
		info.Year = year
	}

	if info.Year == "" {
		lowered := strings.ToLower(text)
		for _, yn := range p.tables.YearNames {
			if !strings.Contains(lowered, yn.Phrase) {
				continue
			}
			info.Year = yn.Year
			if info.Semester == "" {
				info.Semester = yn.Semester
			}
			break
		}
	}

	return info
}

func squash(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}
