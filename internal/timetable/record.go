package timetable

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/amritadottown/timetable-registry/internal"
)

const headerRows = 5

var placeholderDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// HeaderText joins the non-empty cells of the first rows, where the section
// banner lives.
func HeaderText(rows []internal.Row) string {
	var parts []string
	for _, row := range rows[:min(headerRows, len(rows))] {
		for _, c := range row {
			if c != nil && *c != "" {
				parts = append(parts, *c)
			}
		}
	}
	return strings.Join(parts, " ")
}

// ParseTable runs the full interpretation of one extracted table. The bool is
// false when the table is not a section timetable.
func (p *Parser) ParseTable(rows []internal.Row) (Timetable, bool) {
	if len(rows) < headerRows {
		return Timetable{}, false
	}
	info := p.ParseSectionInfo(HeaderText(rows))
	if info.Section == "" || info.Department == "" {
		return Timetable{}, false
	}
	subjects := p.ParseSubjects(rows)
	if subjects.Len() == 0 {
		return Timetable{}, false
	}
	return Timetable{
		SectionInfo: info,
		Subjects:    subjects,
		Schedule:    p.ParseSchedule(rows, subjects),
	}, true
}

func (p *Parser) BuildRecord(tt Timetable) OutputRecord {
	rec := OutputRecord{Schema: SchemaURL}
	for _, s := range tt.Subjects.Subjects() {
		faculty := s.Faculty
		if len(faculty) == 0 {
			faculty = []string{TBD}
		}
		rec.Subjects = append(rec.Subjects, SlotSubject{
			Slot: s.Slot,
			Subject: RecordSubject{
				Name:      s.Name,
				Code:      s.Code,
				Faculty:   faculty,
				ShortName: p.ShortName(s.Name),
			},
		})
	}

	for _, day := range p.tables.Weekdays {
		slots, ok := tt.Schedule[day]
		if !ok || !hasClass(slots) {
			continue
		}
		rec.Schedule = append(rec.Schedule, DaySchedule{Day: day, Slots: slots})
	}

	if len(rec.Schedule) == 0 {
		for _, day := range placeholderDays {
			slots := make([]string, SlotsPerDay)
			for i := range slots {
				slots[i] = Free
			}
			rec.Schedule = append(rec.Schedule, DaySchedule{Day: day, Slots: slots})
		}
		rec.Note = PlaceholderNote
	}
	return rec
}

func hasClass(slots []string) bool {
	for _, s := range slots {
		if s != Free {
			return true
		}
	}
	return false
}

// OutputPath is <base>/<year>/<dept>-<section>/<semester>.json.
func (p *Parser) OutputPath(base string, tt Timetable) string {
	year := tt.Year
	if year == "" {
		year = p.tables.DefaultYear
	}
	semester := tt.Semester
	if semester == "" {
		semester = "2"
	}
	dir := p.tables.DepartmentDir(tt.Department) + "-" + strings.ToLower(tt.Section)
	return filepath.Join(base, year, dir, semester+".json")
}

// MarshalRecord renders a record the way it is stored: two-space indent, no
// HTML escaping, trailing newline.
func MarshalRecord(rec OutputRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
