// Package availability определяет, открыт ли объект хотя бы в один день
// запрошенного периода, по недельному расписанию и датированным исключениям.
package availability

import (
	"fmt"
	"time"

	"github.com/infrastructure-search/internal/domain"
	"github.com/infrastructure-search/internal/pkg/errors"
)

// DefaultMaxDays - около двух лет
const DefaultMaxDays = 731

// Range - отрезок календарных дат [From, To], обе границы включительно
type Range struct {
	From time.Time
	To   time.Time
}

// NewRange строит отрезок из необязательных границ. Если задана только одна
// граница, отрезок схлопывается в один день; перепутанные границы меняются
// местами. Отрезки длиннее maxDays отклоняются.
func NewRange(from, to *time.Time, maxDays int) (Range, error) {
	if from == nil && to == nil {
		return Range{}, errors.ErrInvalidDateRange.WithDetails(map[string]interface{}{
			"reason": "no date bound given",
		})
	}
	if from == nil {
		from = to
	}
	if to == nil {
		to = from
	}

	r := Range{From: domain.DateOf(*from), To: domain.DateOf(*to)}
	if r.To.Before(r.From) {
		r.From, r.To = r.To, r.From
	}

	if maxDays <= 0 {
		maxDays = DefaultMaxDays
	}
	if r.Days() > maxDays {
		return Range{}, errors.ErrInvalidDateRange.WithDetails(map[string]interface{}{
			"reason":   fmt.Sprintf("range longer than %d days", maxDays),
			"max_days": maxDays,
		})
	}
	return r, nil
}

// Days - количество дней в отрезке
func (r Range) Days() int {
	return int(r.To.Sub(r.From).Hours()/24) + 1
}

// Dates перечисляет каждую дату отрезка явным ограниченным циклом
func (r Range) Dates() []time.Time {
	n := r.Days()
	if n <= 0 {
		return nil
	}
	dates := make([]time.Time, 0, n)
	for d := r.From; !d.After(r.To); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// IsOpenOn - день открыт, если он входит в недельное расписание и не закрыт
// исключением, либо если его покрывает особое открытие. Особое открытие
// проверяется независимо и побеждает закрытие на тот же день.
func IsOpenOn(weekly domain.WeekdaySet, exceptions []domain.ScheduleException, day time.Time) bool {
	day = domain.DateOf(day)

	closed := false
	for _, e := range exceptions {
		if !e.Covers(day) {
			continue
		}
		switch e.Kind {
		case domain.ExceptionSpecialOpening:
			return true
		case domain.ExceptionClosure:
			closed = true
		}
	}

	return weekly.Has(day.Weekday()) && !closed
}

// IsAvailable - объект открыт хотя бы в один день из [from, to]
// (экзистенциальная семантика, не «открыт каждый день»)
func IsAvailable(weekly domain.WeekdaySet, exceptions []domain.ScheduleException, from, to time.Time) bool {
	from, to = domain.DateOf(from), domain.DateOf(to)
	if to.Before(from) {
		from, to = to, from
	}

	if weekly.IsEmpty() && !hasSpecialOpening(exceptions) {
		return false
	}

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsOpenOn(weekly, exceptions, d) {
			return true
		}
	}
	return false
}

// ResolveAvailable вычисляет множество доступных объектов один раз на запрос:
// O(дни × расписания), независимо от числа кандидатов поиска
func ResolveAvailable(schedules []domain.Schedule, r Range) map[string]struct{} {
	available := make(map[string]struct{})
	dates := r.Dates()

	for _, s := range schedules {
		if _, done := available[s.InfrastructureID]; done {
			continue
		}
		if s.Weekly.IsEmpty() && !hasSpecialOpening(s.Exceptions) {
			continue
		}
		for _, d := range dates {
			if IsOpenOn(s.Weekly, s.Exceptions, d) {
				available[s.InfrastructureID] = struct{}{}
				break
			}
		}
	}

	return available
}

func hasSpecialOpening(exceptions []domain.ScheduleException) bool {
	for _, e := range exceptions {
		if e.Kind == domain.ExceptionSpecialOpening {
			return true
		}
	}
	return false
}
