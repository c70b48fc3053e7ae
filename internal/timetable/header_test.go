package timetable

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSectionInfoSectionPatterns(t *testing.T) {
	p := NewParser(nil)
	cases := []struct {
		header  string
		section string
		dept    string
	}{
		{header: "Section- A: CSE", section: "A", dept: "CSE"},
		{header: "Section-D:AI&DS", section: "D", dept: "AI&DS"},
		{header: "Section-MTech: DS Sem II", section: "DS", dept: "MTech"},
		{header: "Section- MTech: cse sem II", section: "CSE", dept: "MTech"},
		{header: "Section-E: AIE", section: "E", dept: "AIE"},
		{header: "Section- b : ece", section: "B", dept: "ECE"},
		{header: "Section- D: AI & DS", section: "D", dept: "AI&DS"},
		{header: "Section- AIE-D", section: "D", dept: "AIE"},
		{header: "Section-CSE-A", section: "A", dept: "CSE"},
		{header: "Time-Table Even Semester", section: "", dept: ""},
	}

	for _, tc := range cases {
		t.Run(tc.header, func(t *testing.T) {
			info := p.ParseSectionInfo(tc.header)
			if info.Section != tc.section || info.Department != tc.dept {
				t.Fatalf("got (%q, %q) want (%q, %q)", info.Section, info.Department, tc.section, tc.dept)
			}
		})
	}
}

func TestParseSectionInfoSemesterSources(t *testing.T) {
	p := NewParser(nil)
	cases := []struct {
		name   string
		header string
		sem    string
		year   string
	}{
		{name: "ordinal word", header: "Time-Table for Fourth Semester Section- A: CSE", sem: "4", year: "2024"},
		{name: "ordinal number", header: "6th Semester Section- A: CSE", sem: "6", year: "2023"},
		{name: "only first ordinal counts", header: "Even Semester 2025-26, Second Semester", sem: "", year: ""},
		{name: "even banner falls to roman", header: "Time-Table for Even Semester 2025-26 Section- A: CSE Sem II  Fourth Semester", sem: "2", year: "2025"},
		{name: "even banner falls to year name", header: "Even Semester first year Section- A: CSE Fifth Semester", sem: "2", year: "2025"},
		{name: "roman", header: "Section-MTech: DS Sem II", sem: "2", year: "2025"},
		{name: "roman six", header: "Sem VI", sem: "6", year: "2023"},
		{name: "roman eight", header: "Sem VIII", sem: "8", year: "2022"},
		{name: "dotted sem ignored", header: "Sem. VIII", sem: "", year: ""},
		{name: "numeral", header: "B.Tech 7 Sem", sem: "7", year: "2022"},
		{name: "numeral suffix", header: "3rd sem", sem: "3", year: "2024"},
		{name: "ordinal beats roman", header: "Fifth Semester Sem II", sem: "5", year: "2023"},
		{name: "year name", header: "Third Year B.Tech", sem: "6", year: "2023"},
		{name: "nothing", header: "Section- A: CSE", sem: "", year: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := p.ParseSectionInfo(tc.header)
			if info.Semester != tc.sem || info.Year != tc.year {
				t.Fatalf("got sem=%q year=%q want sem=%q year=%q", info.Semester, info.Year, tc.sem, tc.year)
			}
		})
	}
}

func TestSemesterYearTable(t *testing.T) {
	p := NewParser(nil)
	want := map[string]string{
		"1": "2025", "2": "2025",
		"3": "2024", "4": "2024",
		"5": "2023", "6": "2023",
		"7": "2022", "8": "2022",
	}
	words := []string{"First", "Second", "Third", "Fourth", "Fifth", "Sixth", "Seventh", "Eighth"}
	for i, w := range words {
		sem := string(rune('1' + i))
		info := p.ParseSectionInfo("for " + w + " Semester")
		if info.Semester != sem || info.Year != want[sem] {
			t.Fatalf("%s: got sem=%q year=%q", w, info.Semester, info.Year)
		}
	}
}

func TestParseSectionInfoYearNameKeepsSemester(t *testing.T) {
	p := NewParser(nil)
	got := p.ParseSectionInfo("First Year B.Tech Section- C: ECE Class Room: A 204")
	want := SectionInfo{Section: "C", Department: "ECE", Classroom: "A 204", Semester: "2", Year: "2025"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSectionInfoCollapsesWhitespace(t *testing.T) {
	p := NewParser(nil)
	got := p.ParseSectionInfo("Section-\nB:\n  EEE\tClass\nRoom: 305")
	if got.Section != "B" || got.Department != "EEE" || got.Classroom != "305" {
		t.Fatalf("got %+v", got)
	}
}
