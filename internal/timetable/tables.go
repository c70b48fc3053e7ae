// Package timetable turns the rows of one extracted timetable table into a
// normalized section record. Everything here is pure: no I/O, no logging.
package timetable

import "strings"

type Abbreviation struct {
	Key   string `yaml:"key"`
	Short string `yaml:"short"`
}

type YearName struct {
	Phrase   string `yaml:"phrase"`
	Year     string `yaml:"year"`
	Semester string `yaml:"semester"`
}

// Tables holds the fixed lookup data. A Tables value is built once at startup
// and only read afterwards, so one instance can back any number of parsers.
type Tables struct {
	Weekdays      []string          `yaml:"weekdays"`
	SemesterYear  map[string]string `yaml:"semester_year"`
	YearNames     []YearName        `yaml:"year_names"`
	DefaultYear   string            `yaml:"default_year"`
	Departments   map[string]string `yaml:"departments"`
	Abbreviations []Abbreviation    `yaml:"abbreviations"`
	StopWords     []string          `yaml:"stop_words"`
	Noise         []string          `yaml:"noise"`
}

func DefaultTables() *Tables {
	return &Tables{
		Weekdays: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		SemesterYear: map[string]string{
			"1": "2025", "2": "2025",
			"3": "2024", "4": "2024",
			"5": "2023", "6": "2023",
			"7": "2022", "8": "2022",
		},
		YearNames: []YearName{
			{Phrase: "first year", Year: "2025", Semester: "2"},
			{Phrase: "second year", Year: "2024", Semester: "4"},
			{Phrase: "third year", Year: "2023", Semester: "6"},
			{Phrase: "fourth year", Year: "2022", Semester: "8"},
		},
		DefaultYear: "2025",
		Departments: map[string]string{
			"CSE":   "cse",
			"AI":    "aie",
			"AI&DS": "aid",
			"AIDS":  "aid",
			"AID":   "aid",
			"AIE":   "aie",
			"ECE":   "ece",
			"EAC":   "eac",
			"EEE":   "eee",
			"ELC":   "elc",
			"MEE":   "mee",
			"RAE":   "rae",
			"MTECH": "mtech",
			"TECH":  "mtech",
		},
		// First substring hit wins, so order matters.
		Abbreviations: []Abbreviation{
			{"mathematics", "Math"},
			{"discrete mathematics", "DM"},
			{"linear algebra", "LA"},
			{"programming", "Prog"},
			{"object oriented", "OOP"},
			{"physics", "Phy"},
			{"chemistry", "Chem"},
			{"english", "Eng"},
			{"communication", "Comm"},
			{"laboratory", "Lab"},
			{"user interface", "UI"},
			{"design", "Des"},
			{"glimpses of glorious india", "GGI"},
			{"deep learning", "DL"},
			{"machine learning", "ML"},
			{"algorithms", "Algo"},
			{"data structure", "DS"},
			{"database", "DB"},
			{"operating system", "OS"},
			{"computer network", "CN"},
			{"software engineering", "SE"},
			{"computer vision", "CV"},
			{"technical communication", "TC"},
			{"probability", "Prob"},
			{"functional", "FP"},
			{"computer organization", "COA"},
			{"architecture", "Arch"},
			{"leadership", "Lead"},
			{"life skills", "LS"},
			{"career", "Career"},
			{"scientific computing", "SC"},
			{"text mining", "TM"},
			{"big data", "BD"},
			{"cloud computing", "Cloud"},
		},
		StopWords: []string{"and", "of", "the", "for", "in", "to", "with", "a", "an", "from"},
		// Fragments of SATURDAY, TEA BREAK, LUNCH, DEPARTURE and the period
		// header that survive cell splitting.
		Noise: []string{
			"ER", "AE", "RB", "HC", "NU", "UT", "RE", "YA", "RP", "ED", "SU", "RA",
			"ERB", "AER", "RBA", "RAP", "RAB", "SUB", "FO", "ERU", "TRA", "PED",
			"KAE", "AET", "CNUL", "EYA", "KA", "RUTRAPED",
			"K", "AS", "ET", "R",
		},
	}
}

func (t *Tables) DepartmentDir(department string) string {
	if dir, ok := t.Departments[strings.ToUpper(department)]; ok {
		return dir
	}
	return strings.ToLower(department)
}

func toSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}
