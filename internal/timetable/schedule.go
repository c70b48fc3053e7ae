package timetable

import (
	"regexp"
	"strings"

	"github.com/amritadottown/timetable-registry/internal"
	"github.com/amritadottown/timetable-registry/internal/util"
)

var (
	labCellPattern      = regexp.MustCompile(`(?i)^(PE[-\s]*[IVX]+|[A-Z]+)[-\s]*LAB`)
	electiveRomanRegexp = regexp.MustCompile(`^PE[-\s]*(I{1,3}|IV|V)$`)
	freeElectivePattern = regexp.MustCompile(`^FE\s*[1I]?$`)
	projectPhasePattern = regexp.MustCompile(`^PROJECT\s*PHASE[-\s]*(I{1,3}|IV|V|\d)$`)
	allLettersPattern   = regexp.MustCompile(`^[A-Z]+$`)
)

var nonAcademicPhrases = []string{"BREAK", "DEPARTURE", "BUS", "PRAYER", "TIME-TABLE", "PRINCIPAL"}

const (
	teaBoundary   = 3
	lunchBoundary = 5

	// First period block of the morning; labs and project sessions starting
	// there run three periods, later ones two.
	morningBlock   = 3
	afternoonBlock = 2
)

// dayState accumulates one weekday row. Placed counts periods filled so far
// and drives the break-boundary rules.
type dayState struct {
	Placed int
	Slots  []string
}

func (s *dayState) place(slot string, periods int) {
	for range periods {
		s.Slots = append(s.Slots, slot)
		s.Placed++
	}
}

// placeBlock places a multi-period session: three periods when it opens the
// day, two otherwise.
func (s *dayState) placeBlock(slot string) {
	if s.Placed == 0 {
		s.place(slot, morningBlock)
		return
	}
	s.place(slot, afternoonBlock)
}

func (s *dayState) has(slot string) bool {
	for _, v := range s.Slots {
		if v == slot {
			return true
		}
	}
	return false
}

func (s *dayState) periods() []string {
	out := make([]string, SlotsPerDay)
	for i := range out {
		out[i] = Free
		if i < len(s.Slots) {
			out[i] = s.Slots[i]
		}
	}
	return out
}

type scheduleCell struct {
	text  string
	upper string
}

type cellContext struct {
	parser   *Parser
	subjects *SubjectMap
}

// cellRule reports whether it consumed the cell. A consumed cell may or may
// not have placed anything; either way later rules never see it.
type cellRule struct {
	name  string
	apply func(ctx cellContext, c scheduleCell, st *dayState) bool
}

// scheduleRules run top-down, first consumer wins. Cells no rule consumes are
// dropped.
var scheduleRules = []cellRule{
	{name: "non-academic", apply: skipNonAcademic},
	{name: "lab", apply: placeLab},
	{name: "special", apply: placeSpecial},
	{name: "break-boundary", apply: dropBoundaryBleed},
	{name: "elective-bleed", apply: dropElectiveBleed},
	{name: "known-slot", apply: placeKnownSlot},
	{name: "slot-variant", apply: placeSlotVariant},
	{name: "project-phase", apply: placeProjectPhase},
	{name: "noise", apply: dropNoise},
}

// Normalized cells never hold a line break; the check covers raw text.
func skipNonAcademic(_ cellContext, c scheduleCell, _ *dayState) bool {
	return util.ContainsAny(c.upper, nonAcademicPhrases) || strings.Contains(c.text, "\n")
}

func placeLab(_ cellContext, c scheduleCell, st *dayState) bool {
	if !strings.Contains(c.upper, "LAB") {
		return false
	}
	m := labCellPattern.FindStringSubmatch(c.text)
	if m == nil {
		return true
	}
	st.placeBlock(normalizeElective(strings.ToUpper(m[1])) + LabSuffix)
	return true
}

func placeSpecial(_ cellContext, c scheduleCell, st *dayState) bool {
	switch {
	case c.upper == "EVALUATION":
		st.place(Free, 1)
	case c.upper == Counselling, c.upper == Placement:
		st.place(c.upper, 1)
	case strings.Contains(c.upper, "INDUSTRIAL"):
		st.place(IndustrialTalk, 1)
	default:
		return false
	}
	return true
}

// dropBoundaryBleed removes single letters leaking out of the TEA BREAK and
// LUNCH columns.
func dropBoundaryBleed(_ cellContext, c scheduleCell, st *dayState) bool {
	if len(c.upper) != 1 {
		return false
	}
	switch st.Placed {
	case teaBoundary:
		return st.has(c.upper)
	case lunchBoundary:
		return c.upper == "C" || c.upper == "H" || st.has(c.upper)
	}
	return false
}

// dropElectiveBleed ignores afternoon elective cells on days that had no
// elective in the morning; those are header text repeated lower in the table.
func dropElectiveBleed(_ cellContext, c scheduleCell, st *dayState) bool {
	if st.Placed < lunchBoundary || !electiveRomanRegexp.MatchString(c.upper) {
		return false
	}
	for _, s := range st.Slots[:lunchBoundary] {
		if strings.HasPrefix(s, "PE-") {
			return false
		}
	}
	return true
}

func placeKnownSlot(ctx cellContext, c scheduleCell, st *dayState) bool {
	if !ctx.subjects.Has(c.upper) {
		return false
	}
	st.place(c.upper, 1)
	return true
}

func placeSlotVariant(ctx cellContext, c scheduleCell, st *dayState) bool {
	slot := ""
	switch {
	case freeElectivePattern.MatchString(c.upper):
		slot = "FE"
	case electiveRomanRegexp.MatchString(c.upper):
		slot = normalizeElective(c.upper)
	case c.upper == "CIR-T" || c.upper == "CIR T":
		slot = "CIR"
	default:
		return false
	}
	if ctx.subjects.Has(slot) {
		st.place(slot, 1)
	}
	return true
}

func placeProjectPhase(ctx cellContext, c scheduleCell, st *dayState) bool {
	if !projectPhasePattern.MatchString(c.upper) {
		return false
	}
	st.placeBlock(projectSlot(ctx.subjects))
	return true
}

func dropNoise(ctx cellContext, c scheduleCell, _ *dayState) bool {
	if _, ok := ctx.parser.noise[c.upper]; ok {
		return true
	}
	return len(c.upper) <= 3 && allLettersPattern.MatchString(c.upper) && !ctx.subjects.Has(c.upper)
}

// projectSlot is the first subject whose title mentions a project, or the
// synthetic PROJECT slot.
func projectSlot(subjects *SubjectMap) string {
	for _, s := range subjects.Subjects() {
		if strings.Contains(strings.ToLower(s.Name), "project") {
			return s.Slot
		}
	}
	return Project
}

func normalizeElective(slot string) string {
	if m := electiveRomanRegexp.FindStringSubmatch(slot); m != nil {
		return "PE-" + m[1]
	}
	return slot
}

// ParseSchedule rebuilds the seven periods of every weekday row. subjects is
// the set of slots a cell may name. A later row for the same day replaces an
// earlier one.
func (p *Parser) ParseSchedule(rows []internal.Row, subjects *SubjectMap) map[string][]string {
	ctx := cellContext{parser: p, subjects: subjects}
	schedule := map[string][]string{}
	for _, row := range rows {
		cells := util.CleanRow(row)
		day, dayIdx := p.findWeekday(cells)
		if dayIdx < 0 {
			continue
		}
		schedule[day] = scanDay(ctx, cells[dayIdx+1:])
	}
	return schedule
}

func scanDay(ctx cellContext, cells []string) []string {
	st := &dayState{}
	for _, text := range cells {
		if text == "" {
			continue
		}
		c := scheduleCell{text: text, upper: strings.ToUpper(text)}
		for _, rule := range scheduleRules {
			if rule.apply(ctx, c, st) {
				break
			}
		}
	}
	return st.periods()
}

func (p *Parser) findWeekday(cells []string) (string, int) {
	for i, c := range cells {
		for _, day := range p.tables.Weekdays {
			if strings.EqualFold(day, c) {
				return day, i
			}
		}
	}
	return "", -1
}
