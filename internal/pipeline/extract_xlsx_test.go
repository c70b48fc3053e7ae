package pipeline

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func mkXLSX(sheets ...[][]any) []byte {
	f := excelize.NewFile()
	for i, rows := range sheets {
		sheet := f.GetSheetName(0)
		if i > 0 {
			sheet = "Sheet" + string(rune('1'+i))
			_, _ = f.NewSheet(sheet)
		}
		for r, row := range rows {
			for c, v := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
				_ = f.SetCellValue(sheet, cell, v)
			}
		}
	}
	buf := bytes.NewBuffer(nil)
	_, _ = f.WriteTo(buf)
	return buf.Bytes()
}

// eceSixthSem is a compact section sheet: banner, two day rows, subject rows.
func eceSixthSem() [][]any {
	return [][]any{
		{"Time-Table for Sixth Semester B.Tech"},
		{"Section- B: ECE", "", "Class Room: S 204"},
		{"Day", "8:10-9:00", "9:00-9:50", "9:50-10:40", "10:55-11:45"},
		{"Monday", "A", "B", "C", "D"},
		{"Tuesday", "B LAB", "", "", "A"},
		{"Slot", "Subject Code", "L T P C", "Subject Title", "Faculty", "Department"},
		{"A", "23ECE301", "3 0 0 3", "Digital Signal Processing", "Dr. Kiran", "ECE"},
		{"B", "23ECE302", "3 0 2 4", "VLSI Design", "Dr. Asha [Co: Mr. Ravi]", "ECE"},
		{"C", "23ECE303", "3 0 0 3", "Control Systems", "Ms. Nila", "ECE"},
		{"D", "23ECE304", "3 0 0 3", "Antennas", "TBD", "ECE"},
	}
}

func TestParseXLSX(t *testing.T) {
	blob := mkXLSX(
		eceSixthSem(),
		[][]any{{"Notes"}, {}, {"Holiday list", "", 2026}},
	)
	pages, err := parseXLSX(blob, ExtractOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 2 {
		t.Fatalf("len=%d", len(pages))
	}
	if pages[0].Number != 1 || len(pages[0].Tables) != 1 {
		t.Fatalf("page=%+v", pages[0])
	}
	if n := len(pages[0].Tables[0].Rows); n != 10 {
		t.Fatalf("rows=%d", n)
	}

	notes := gridValues(pages[1].Tables[0])
	want := [][]string{{"Notes"}, {}, {"Holiday list", "<nil>", "2026"}}
	if diff := cmp.Diff(want, notes); diff != "" {
		t.Fatalf("blank row handling (-want +got):\n%s", diff)
	}
}

func TestParseXLSXPageFilter(t *testing.T) {
	blob := mkXLSX([][]any{{"one"}}, [][]any{{"two"}})

	pages, err := parseXLSX(blob, ExtractOptions{Page: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 || pages[0].Number != 2 {
		t.Fatalf("pages=%+v", pages)
	}

	if _, err := parseXLSX(blob, ExtractOptions{Page: 3}); !errors.Is(err, ErrPageOutOfRange) {
		t.Fatalf("err=%v", err)
	}
}

func TestParseXLSXRejectsGarbage(t *testing.T) {
	if _, err := parseXLSX([]byte("not a workbook"), ExtractOptions{}); err == nil {
		t.Fatal("expected error")
	}
}
