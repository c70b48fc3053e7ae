package timetable

import (
	"regexp"
	"strings"

	"github.com/amritadottown/timetable-registry/internal/util"
)

var coInstructorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\[\s*Co:?\s*:?\s*(.+?)\]`),
	regexp.MustCompile(`(?i)\(\s*Co:?\s*:?\s*(.+?)\)`),
	regexp.MustCompile(`(?i)\(\s*co:?\s*:?\s*(.+?)\)`),
}

var (
	nameSeparator    = regexp.MustCompile(`,\s*`)
	leadingMarker    = regexp.MustCompile(`^[:\[\]\(\)]\s*`)
	trailingMarker   = regexp.MustCompile(`[\[\]\(\)]$`)
	honorificPrefix  = regexp.MustCompile(`^(?:Dr|Mr|Ms|Mrs|Prof)\.\s*`)
	bareFacultyToken = map[string]struct{}{
		"Dr.": {}, "Mr.": {}, "Ms.": {}, "Mrs.": {}, "Prof.": {}, "Co": {}, "co": {},
	}
)

// ParseFaculty splits a faculty cell into names, main instructors first and
// bracketed co-instructors after them. Honorifics are dropped.
func ParseFaculty(text string) []string {
	text = util.CleanText(text)
	if text == "" {
		return nil
	}

	var co []string
	main := text
	for _, re := range coInstructorPatterns {
		matches := re.FindAllStringSubmatch(main, -1)
		if matches == nil {
			continue
		}
		for _, m := range matches {
			co = append(co, splitNames(m[1])...)
		}
		main = strings.TrimSpace(re.ReplaceAllString(main, ""))
	}

	return append(splitNames(main), co...)
}

func splitNames(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, part := range nameSeparator.Split(text, -1) {
		name := strings.TrimSpace(part)
		name = leadingMarker.ReplaceAllString(name, "")
		name = trailingMarker.ReplaceAllString(name, "")
		if _, bare := bareFacultyToken[name]; bare || name == "" {
			continue
		}
		for honorificPrefix.MatchString(name) {
			name = honorificPrefix.ReplaceAllString(name, "")
		}
		name = strings.TrimSpace(name)
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}
