package timetable

import (
	"bytes"
	"encoding/json"
)

const (
	SchemaURL       = "http://timetable-registry.amrita.town/v2/schema.json"
	PlaceholderNote = "Schedule needs manual verification from PDF"

	SlotsPerDay = 7

	Free           = "FREE"
	Counselling    = "COUNSELLING"
	Placement      = "PLACEMENT"
	IndustrialTalk = "INDUSTRIAL_TALK"
	Project        = "PROJECT"
	LabSuffix      = "_LAB"
	TBD            = "TBD"
)

type SectionInfo struct {
	Section    string
	Department string
	Classroom  string
	Semester   string
	Year       string
}

type Subject struct {
	Slot       string
	Code       string
	Name       string
	Faculty    []string
	LTPC       string
	Department string
}

// SubjectMap is keyed by slot and remembers the order slots were first seen.
// Setting an existing slot replaces the subject in place.
type SubjectMap struct {
	order  []string
	bySlot map[string]Subject
}

func NewSubjectMap() *SubjectMap {
	return &SubjectMap{bySlot: map[string]Subject{}}
}

func (m *SubjectMap) Set(s Subject) {
	if _, ok := m.bySlot[s.Slot]; !ok {
		m.order = append(m.order, s.Slot)
	}
	m.bySlot[s.Slot] = s
}

func (m *SubjectMap) Get(slot string) (Subject, bool) {
	if m == nil {
		return Subject{}, false
	}
	s, ok := m.bySlot[slot]
	return s, ok
}

func (m *SubjectMap) Has(slot string) bool {
	_, ok := m.Get(slot)
	return ok
}

func (m *SubjectMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

func (m *SubjectMap) Slots() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.order...)
}

func (m *SubjectMap) Subjects() []Subject {
	out := make([]Subject, 0, m.Len())
	for _, slot := range m.Slots() {
		out = append(out, m.bySlot[slot])
	}
	return out
}

type Timetable struct {
	SectionInfo
	Subjects *SubjectMap
	Schedule map[string][]string
}

type RecordSubject struct {
	Name      string   `json:"name"`
	Code      string   `json:"code"`
	Faculty   []string `json:"faculty"`
	ShortName string   `json:"shortName"`
}

type SlotSubject struct {
	Slot    string
	Subject RecordSubject
}

type DaySchedule struct {
	Day   string
	Slots []string
}

// OutputRecord is the registry document for one section. Subjects and Schedule
// are slices so the serialized key order is fixed.
type OutputRecord struct {
	Schema   string
	Subjects []SlotSubject
	Schedule []DaySchedule
	Note     string
}

func (r OutputRecord) SubjectBySlot(slot string) (RecordSubject, bool) {
	for _, s := range r.Subjects {
		if s.Slot == slot {
			return s.Subject, true
		}
	}
	return RecordSubject{}, false
}

func (r OutputRecord) Day(day string) ([]string, bool) {
	for _, d := range r.Schedule {
		if d.Day == day {
			return d.Slots, true
		}
	}
	return nil, false
}

func (r OutputRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeMember(&buf, "$schema", r.Schema, false); err != nil {
		return nil, err
	}

	buf.WriteString(`,"subjects":{`)
	for i, s := range r.Subjects {
		if err := writeMember(&buf, s.Slot, s.Subject, i == 0); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`},"config":{},"slots":{},"schedule":{`)
	for i, d := range r.Schedule {
		if err := writeMember(&buf, d.Day, d.Slots, i == 0); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')

	if r.Note != "" {
		if err := writeMember(&buf, "_note", r.Note, false); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, value any, first bool) error {
	if !first && buf.Len() > 1 {
		buf.WriteByte(',')
	}
	k, err := encodeValue(key)
	if err != nil {
		return err
	}
	v, err := encodeValue(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

func encodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
