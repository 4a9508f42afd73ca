package domain

import (
	"fmt"
	"strings"
	"time"
)

// WeekdaySet - множество дней недели, в которые объект обычно открыт
type WeekdaySet uint8

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.Add(d)
	}
	return s
}

func (s WeekdaySet) Add(d time.Weekday) WeekdaySet {
	return s | 1<<uint(d)
}

func (s WeekdaySet) Has(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// Days возвращает дни множества, начиная с понедельника
func (s WeekdaySet) Days() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for i := 1; i <= 7; i++ {
		d := time.Weekday(i % 7)
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// Labels - дни недели в виде меток хранилища
func (s WeekdaySet) Labels() []string {
	days := s.Days()
	labels := make([]string, 0, len(days))
	for _, d := range days {
		labels = append(labels, strings.ToUpper(d.String()))
	}
	return labels
}

var weekdayLabels = map[string]time.Weekday{
	"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
	"sunday": time.Sunday,
	// метки, заведённые формами на французском
	"lundi": time.Monday, "mardi": time.Tuesday, "mercredi": time.Wednesday,
	"jeudi": time.Thursday, "vendredi": time.Friday, "samedi": time.Saturday,
	"dimanche": time.Sunday,
}

// ParseWeekday разбирает метку дня недели без учёта регистра
func ParseWeekday(label string) (time.Weekday, error) {
	d, ok := weekdayLabels[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday label %q", label)
	}
	return d, nil
}

// ExceptionKind - тип исключения из расписания
type ExceptionKind string

const (
	ExceptionClosure        ExceptionKind = "CLOSURE"
	ExceptionSpecialOpening ExceptionKind = "SPECIAL_OPENING"
)

func (k ExceptionKind) Valid() bool {
	return k == ExceptionClosure || k == ExceptionSpecialOpening
}

// ScheduleException - закрытие или особое открытие на отрезке дат (включительно)
type ScheduleException struct {
	Start time.Time     `json:"date_debut" db:"start_date"`
	End   time.Time     `json:"date_fin" db:"end_date"`
	Kind  ExceptionKind `json:"type" db:"kind"`
}

// Covers - день попадает в [Start, End]
func (e ScheduleException) Covers(day time.Time) bool {
	day = DateOf(day)
	return !day.Before(DateOf(e.Start)) && !day.After(DateOf(e.End))
}

// Schedule - недельное расписание объекта с исключениями
type Schedule struct {
	InfrastructureID string
	Weekly           WeekdaySet
	Exceptions       []ScheduleException
}

// DateOf отбрасывает время суток, сохраняя календарную дату
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate принимает "2006-01-02" или RFC3339; берётся календарная дата
// в том смещении, в котором её передал клиент
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return DateOf(t), nil
}
