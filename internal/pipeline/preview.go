package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/amritadottown/timetable-registry/internal/timetable"
	"github.com/amritadottown/timetable-registry/internal/util"
)

const previewJSONBytes = 1000

// WritePreview prints a human-readable summary of each timetable followed by
// the head of its JSON record.
func WritePreview(w io.Writer, weekdays []string, parsed []ParsedTable) error {
	rule := strings.Repeat("=", 60)
	for _, pt := range parsed {
		tt := pt.Timetable
		fmt.Fprintf(w, "\n%s\n", rule)
		fmt.Fprintf(w, "%s Section %s (Year %s, Sem %s)\n", tt.Department, tt.Section, tt.Year, tt.Semester)
		fmt.Fprintf(w, "Classroom: %s\n", tt.Classroom)
		fmt.Fprintf(w, "%s\n", rule)

		fmt.Fprintln(w, "\nSubjects:")
		for _, s := range tt.Subjects.Subjects() {
			line := fmt.Sprintf("  %s: %s - %s", s.Slot, s.Code, s.Name)
			if c, ok := util.ParseCredits(s.LTPC); ok {
				line += fmt.Sprintf(" [%s, %dh/week]", c, c.HoursPerWeek())
			}
			fmt.Fprintln(w, line)
			faculty := timetable.TBD
			if len(s.Faculty) > 0 {
				faculty = strings.Join(s.Faculty, ", ")
			}
			fmt.Fprintf(w, "      Faculty: %s\n", faculty)
		}

		fmt.Fprintln(w, "\nSchedule:")
		for _, day := range weekdays {
			if slots, ok := tt.Schedule[day]; ok {
				fmt.Fprintf(w, "  %s: %s\n", day, strings.Join(slots, ", "))
			}
		}

		blob, err := timetable.MarshalRecord(pt.Record)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "\nJSON Preview:")
		if _, err := fmt.Fprintf(w, "%s...\n", blob[:min(len(blob), previewJSONBytes)]); err != nil {
			return err
		}
	}
	return nil
}
