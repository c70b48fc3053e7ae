package util

import (
	"regexp"
	"strconv"
	"strings"
)

var creditsPattern = regexp.MustCompile(`^\s*(\d+)[\s\-]+(\d+)[\s\-]+(\d+)[\s\-]+(\d+)\s*$`)

// Credits is an L-T-P-C load: lecture, tutorial and practical hours per week
// plus the credit count.
type Credits struct {
	Lecture   int
	Tutorial  int
	Practical int
	Credit    int
}

// ParseCredits reads strings like "3 0 2 4" or "2-0-3-3".
func ParseCredits(input string) (Credits, bool) {
	m := creditsPattern.FindStringSubmatch(strings.ReplaceAll(input, " ", " "))
	if m == nil {
		return Credits{}, false
	}
	vals := make([]int, 4)
	for i := range vals {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Credits{}, false
		}
		vals[i] = n
	}
	return Credits{Lecture: vals[0], Tutorial: vals[1], Practical: vals[2], Credit: vals[3]}, true
}

// HoursPerWeek is the contact time implied by the load.
func (c Credits) HoursPerWeek() int {
	return c.Lecture + c.Tutorial + c.Practical
}

func (c Credits) String() string {
	return strconv.Itoa(c.Lecture) + " " + strconv.Itoa(c.Tutorial) + " " + strconv.Itoa(c.Practical) + " " + strconv.Itoa(c.Credit)
}
