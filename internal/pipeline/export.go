package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/amritadottown/timetable-registry/internal/timetable"
	"github.com/amritadottown/timetable-registry/internal/util"
)

func WriteRecord(path string, rec timetable.OutputRecord) error {
	blob, err := timetable.MarshalRecord(rec)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, blob, 0o644)
}

const summarySheet = "Summary"

// ExportTimetablesToXLSX writes a workbook with one summary row per subject
// and one schedule sheet per timetable.
func ExportTimetablesToXLSX(parsed []ParsedTable, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return err
	}

	headers := []string{
		"department", "section", "year", "semester", "classroom",
		"slot", "code", "name", "short_name", "faculty", "ltpc", "hours_per_week",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(summarySheet, cell, h)
	}

	r := 2
	for _, pt := range parsed {
		info := pt.Timetable.SectionInfo
		for _, rs := range pt.Record.Subjects {
			set := func(col int, value any) {
				cell, _ := excelize.CoordinatesToCellName(col, r)
				_ = f.SetCellValue(summarySheet, cell, value)
			}
			subject, _ := pt.Timetable.Subjects.Get(rs.Slot)

			set(1, info.Department)
			set(2, info.Section)
			set(3, info.Year)
			set(4, info.Semester)
			set(5, info.Classroom)
			set(6, rs.Slot)
			set(7, rs.Subject.Code)
			set(8, rs.Subject.Name)
			set(9, rs.Subject.ShortName)
			set(10, strings.Join(rs.Subject.Faculty, ", "))
			if credits, ok := util.ParseCredits(subject.LTPC); ok {
				set(11, credits.String())
				set(12, credits.HoursPerWeek())
			} else {
				set(11, subject.LTPC)
			}
			r++
		}
	}

	for i, pt := range parsed {
		name := scheduleSheetName(i, pt.Timetable.SectionInfo)
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
		for col := 1; col <= timetable.SlotsPerDay; col++ {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			_ = f.SetCellValue(name, cell, col)
		}
		for row, day := range pt.Record.Schedule {
			cell, _ := excelize.CoordinatesToCellName(1, row+2)
			_ = f.SetCellValue(name, cell, day.Day)
			for col, slot := range day.Slots {
				cell, _ := excelize.CoordinatesToCellName(col+2, row+2)
				_ = f.SetCellValue(name, cell, slot)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

// scheduleSheetName stays unique and under excelize's 31 rune limit.
func scheduleSheetName(i int, info timetable.SectionInfo) string {
	name := fmt.Sprintf("%d %s-%s", i+1, info.Department, info.Section)
	if info.Semester != "" {
		name += " S" + info.Semester
	}
	runes := []rune(sanitizeSheetName(name))
	return string(runes[:min(len(runes), 31)])
}

func sanitizeSheetName(name string) string {
	out := []rune(name)
	for i, r := range out {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			out[i] = '_'
		}
	}
	return string(out)
}
