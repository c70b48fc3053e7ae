package pipeline

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/amritadottown/timetable-registry/internal"
)

func TestKindForName(t *testing.T) {
	cases := map[string]internal.SourceKind{
		"Class TT even sem.PDF": internal.SourcePDF,
		"sections.xlsx":         internal.SourceXLSX,
		"mail.htm":              internal.SourceHTML,
		"fwd.eml":               internal.SourceEmail,
	}
	for name, want := range cases {
		if got, ok := KindForName(name); !ok || got != want {
			t.Fatalf("%s: got %q ok=%v", name, got, ok)
		}
	}
	if _, ok := KindForName("legacy.xls"); ok {
		t.Fatal("xls accepted")
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]internal.SourceKind{"PDF": internal.SourcePDF, " htm": internal.SourceHTML, "email": internal.SourceEmail} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("%q: got %q err=%v", in, got, err)
		}
	}
	if _, err := ParseKind("docx"); !errors.Is(err, ErrUnsupportedInput) {
		t.Fatalf("err=%v", err)
	}
}

func TestNormalizeRows(t *testing.T) {
	got := NormalizeRows([][]string{{"", " "}, {"A", "", "B"}, nil})
	want := [][]string{{"<nil>", "<nil>"}, {"A", "<nil>", "B"}, {}}
	if diff := cmp.Diff(want, gridValues(internal.Table{Rows: got})); diff != "" {
		t.Fatalf("rows (-want +got):\n%s", diff)
	}
	if !hasText(got) || hasText(got[:1]) {
		t.Fatal("hasText")
	}
}
