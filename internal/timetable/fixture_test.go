package timetable

import (
	"github.com/amritadottown/timetable-registry/internal"
)

func row(cells ...string) internal.Row {
	out := make(internal.Row, len(cells))
	for i, c := range cells {
		if c == "" {
			continue
		}
		v := c
		out[i] = &v
	}
	return out
}

func rows(r ...internal.Row) []internal.Row { return r }

// cseFourthSem mirrors one page of the even-semester booklet: banner rows, the
// period grid, then the subject mapping underneath.
func cseFourthSem() []internal.Row {
	return rows(
		row("AMRITA VISHWA VIDYAPEETHAM", "", "", ""),
		row("Time-Table for Fourth Semester B.Tech 2025-26", "", ""),
		row("Section- A: CSE", "", "Class Room: N 101", ""),
		row("Day", "8:10-9:00", "9:00-9:50", "9:50-10:40", "TEA BREAK", "10:55-11:45", "11:45-12:35", "LUNCH", "1:25-2:15", "2:15-3:05"),
		row("Monday", "A LAB", "", "", "BREAK", "B", "C", "", "D", "E"),
		row("Tuesday", "B", "C", "D", "BREAK", "E", "CIR-T", "", "PE-III", "FE1"),
		row("Wednesday", "COUNSELLING", "A", "B", "", "C", "D", "", "PLACEMENT", ""),
		row("Thursday", "EVALUATION", "", "", "", "", "", "", "", ""),
		row("Friday", "Project Phase-I", "", "", "", "E", "ER", "", "Industrial Talk", ""),
		row("Slot", "Subject Code", "L T P C", "Subject Title", "Faculty", "Department"),
		row("A", "23CSE211", "3 0 2 4", "Design and Analysis of Algorithms", "Dr. Anitha R [Co: Mr. Vivek S]", "CSE"),
		row("B", "23CSE212", "3-1-0-4", "Operating Systems", "Dr. Meera N, Dr. Suresh K", "CSE"),
		row("C", "23MAT206", "2 1 0 3", "Probability and Random Processes", "Ms. Latha P", "MAT"),
		row("D", "23CSE213", "3 0 0 3", "Theory of Computation", "New Faculty", "CSE"),
		row("E", "23CSE214", "3 0 0 3", "Software Engineering", "TBD", "CSE"),
		row("CIR", "22AVP210", "1 0 2 2", "Soft Skills II", "Mr. Arun", "HSS"),
		row("FE", "23LSE201", "2 0 0 2", "Glimpses of Glorious India", "", "LSE"),
		row("", "", "23CSE399", "0-0-6-3", "Project Phase-I", "Dr. Ravi Kumar", "CSE"),
	)
}
