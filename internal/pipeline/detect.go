package pipeline

import (
	"regexp"
	"strings"

	"github.com/amritadottown/timetable-registry/internal"
)

type DetectResult struct {
	IsTimetable bool
	Score       float64
	Reason      string
}

const detectThreshold = 0.45

var detectKeywords = []string{"timetable", "time-table", "time table", "schedule", "section", "semester", "class tt"}

var courseCodePattern = regexp.MustCompile(`\b\d{2}[A-Z]{3}\d{3}\b`)

// DetectTimetableMail scores a message on keywords, course codes and
// table-bearing attachments.
func DetectTimetableMail(subject, text string, hasHTMLTable bool, attachmentNames []string) DetectResult {
	lowerSubject := strings.ToLower(subject)
	lowerText := strings.ToLower(text)

	score := 0.0
	for _, kw := range detectKeywords {
		if strings.Contains(lowerSubject, kw) {
			score += 0.2
		}
		if strings.Contains(lowerText, kw) {
			score += 0.1
		}
	}

	codes := len(courseCodePattern.FindAllString(text, -1))
	if codes >= 2 {
		score += 0.4
	} else if codes == 1 {
		score += 0.2
	}

	for _, name := range attachmentNames {
		if kind, ok := KindForName(name); ok && kind != internal.SourceEmail {
			score += 0.25
			break
		}
	}

	if hasHTMLTable {
		score += 0.25
	}
	if score > 1 {
		score = 1
	}

	ok := score >= detectThreshold
	reason := "rules_negative"
	if ok {
		reason = "rules_positive"
	}
	return DetectResult{IsTimetable: ok, Score: score, Reason: reason}
}
