package util

import "testing"

func TestParseCredits(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  Credits
	}{
		{name: "spaces", input: "3 0 2 4", want: Credits{3, 0, 2, 4}},
		{name: "hyphens", input: "2-0-3-3", want: Credits{2, 0, 3, 3}},
		{name: "padded", input: " 1  0 0  1 ", want: Credits{1, 0, 0, 1}},
		{name: "double digit credit", input: "0 0 20 10", want: Credits{0, 0, 20, 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseCredits(tc.input)
			if !ok {
				t.Fatalf("not parsed")
			}
			if got != tc.want {
				t.Fatalf("got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestParseCreditsRejects(t *testing.T) {
	for _, input := range []string{"", "3 0 2", "L T P C", "3 0 2 4 5"} {
		if _, ok := ParseCredits(input); ok {
			t.Fatalf("%q parsed", input)
		}
	}
}

func TestCreditsHours(t *testing.T) {
	c, _ := ParseCredits("3 1 2 5")
	if c.HoursPerWeek() != 6 || c.String() != "3 1 2 5" {
		t.Fatalf("got %d %q", c.HoursPerWeek(), c.String())
	}
}
