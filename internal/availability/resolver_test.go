package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infrastructure-search/internal/domain"
	apperrors "github.com/infrastructure-search/internal/pkg/errors"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

// Tuesday..Sunday, Monday missing
var tuesdayToSunday = domain.NewWeekdaySet(
	time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
)

func TestIsAvailable_MondayScenario(t *testing.T) {
	monday := date("2025-07-14")
	require.Equal(t, time.Monday, monday.Weekday())

	assert.False(t, IsAvailable(tuesdayToSunday, nil, monday, monday))

	special := []domain.ScheduleException{
		{Start: monday, End: monday, Kind: domain.ExceptionSpecialOpening},
	}
	assert.True(t, IsAvailable(tuesdayToSunday, special, monday, monday))
}

func TestIsAvailable_Existential(t *testing.T) {
	// open on Monday only; closed by exceptions on every other day of the range
	weekly := domain.NewWeekdaySet(time.Monday)
	exceptions := []domain.ScheduleException{
		{Start: date("2025-07-15"), End: date("2025-07-20"), Kind: domain.ExceptionClosure},
	}

	assert.True(t, IsAvailable(weekly, exceptions, date("2025-07-14"), date("2025-07-20")),
		"one open day is enough for the whole window")
	assert.False(t, IsAvailable(weekly, exceptions, date("2025-07-15"), date("2025-07-20")))
}

func TestIsAvailable_SpecialOpeningWinsOverClosure(t *testing.T) {
	day := date("2025-07-16")
	exceptions := []domain.ScheduleException{
		{Start: date("2025-07-01"), End: date("2025-07-31"), Kind: domain.ExceptionClosure},
		{Start: day, End: day, Kind: domain.ExceptionSpecialOpening},
	}

	assert.True(t, IsAvailable(domain.NewWeekdaySet(time.Wednesday), exceptions, day, day))
	assert.True(t, IsAvailable(0, exceptions, day, day), "weekday membership is not required")
	assert.False(t, IsAvailable(domain.NewWeekdaySet(time.Wednesday), exceptions[:1], day, day))
}

func TestIsAvailable_EmptySchedule(t *testing.T) {
	assert.False(t, IsAvailable(0, nil, date("2025-01-01"), date("2025-12-31")))

	closures := []domain.ScheduleException{
		{Start: date("2025-01-01"), End: date("2025-01-05"), Kind: domain.ExceptionClosure},
	}
	assert.False(t, IsAvailable(0, closures, date("2025-01-01"), date("2025-12-31")))
}

func TestIsAvailable_LongRangeChecksConcreteDates(t *testing.T) {
	// closed on every Monday slot of the first two weeks but a special opening
	// lands on a Saturday of the third week
	weekly := domain.NewWeekdaySet(time.Monday)
	exceptions := []domain.ScheduleException{
		{Start: date("2025-07-14"), End: date("2025-07-27"), Kind: domain.ExceptionClosure},
		{Start: date("2025-08-02"), End: date("2025-08-02"), Kind: domain.ExceptionSpecialOpening},
	}

	assert.False(t, IsAvailable(weekly, exceptions, date("2025-07-14"), date("2025-07-27")))
	assert.True(t, IsAvailable(weekly, exceptions, date("2025-07-29"), date("2025-08-03")))
	assert.True(t, IsAvailable(weekly, exceptions, date("2025-07-14"), date("2025-07-28")),
		"Monday 28 is past the closure")
}

func TestIsAvailable_SwappedBounds(t *testing.T) {
	weekly := domain.NewWeekdaySet(time.Friday)
	assert.True(t, IsAvailable(weekly, nil, date("2025-07-20"), date("2025-07-14")))
}

func TestNewRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to *time.Time
		maxDays  int
		want     Range
		wantErr  bool
	}{
		{
			name: "both bounds",
			from: datePtr("2025-07-14"), to: datePtr("2025-07-20"),
			want: Range{From: date("2025-07-14"), To: date("2025-07-20")},
		},
		{
			name: "only from collapses to one day",
			from: datePtr("2025-07-14"),
			want: Range{From: date("2025-07-14"), To: date("2025-07-14")},
		},
		{
			name: "only to collapses to one day",
			to:   datePtr("2025-07-14"),
			want: Range{From: date("2025-07-14"), To: date("2025-07-14")},
		},
		{
			name: "inverted bounds are swapped",
			from: datePtr("2025-07-20"), to: datePtr("2025-07-14"),
			want: Range{From: date("2025-07-14"), To: date("2025-07-20")},
		},
		{
			name: "range over the maximum",
			from: datePtr("2025-01-01"), to: datePtr("2025-01-11"),
			maxDays: 10,
			wantErr: true,
		},
		{
			name:    "no bounds",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRange(tt.from, tt.to, tt.maxDays)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, apperrors.ErrInvalidDateRange))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRange_Dates(t *testing.T) {
	r := Range{From: date("2025-07-30"), To: date("2025-08-02")}

	assert.Equal(t, 4, r.Days())
	assert.Equal(t, []time.Time{
		date("2025-07-30"), date("2025-07-31"), date("2025-08-01"), date("2025-08-02"),
	}, r.Dates())
}

func TestResolveAvailable(t *testing.T) {
	monday := date("2025-07-14")
	schedules := []domain.Schedule{
		{InfrastructureID: "closed-monday", Weekly: tuesdayToSunday},
		{
			InfrastructureID: "special",
			Weekly:           tuesdayToSunday,
			Exceptions: []domain.ScheduleException{
				{Start: monday, End: monday, Kind: domain.ExceptionSpecialOpening},
			},
		},
		{InfrastructureID: "always", Weekly: domain.NewWeekdaySet(time.Monday, time.Friday)},
		{InfrastructureID: "never"},
	}

	got := ResolveAvailable(schedules, Range{From: monday, To: monday})

	assert.Len(t, got, 2)
	assert.Contains(t, got, "special")
	assert.Contains(t, got, "always")
	assert.NotContains(t, got, "closed-monday")
	assert.NotContains(t, got, "never")
}
