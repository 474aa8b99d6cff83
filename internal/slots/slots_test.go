package slots

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/ptr"
)

func utc(y int, m time.Month, d, h, minute int) time.Time {
	return time.Date(y, m, d, h, minute, 0, 0, time.UTC)
}

func recurring(pattern domain.RecurringPattern, start time.Time, dur time.Duration) *domain.AvailabilitySlot {
	return &domain.AvailabilitySlot{
		ID:               uuid.New(),
		MentorID:         uuid.New(),
		StartTime:        start,
		EndTime:          start.Add(dur),
		IsRecurring:      true,
		RecurringPattern: ptr.Ptr(pattern),
		IsActive:         true,
	}
}

func oneOff(start time.Time, dur time.Duration) *domain.AvailabilitySlot {
	return &domain.AvailabilitySlot{
		ID:        uuid.New(),
		MentorID:  uuid.New(),
		StartTime: start,
		EndTime:   start.Add(dur),
		IsActive:  true,
	}
}

func starts(s []domain.ExpandedSlot) []time.Time {
	out := make([]time.Time, len(s))
	for i := range s {
		out[i] = s[i].StartTime
	}
	return out
}

// Еженедельное окно 2024-01-01 09:00-10:00, неделя с 2024-01-08,
// одна сессия на 09:15 занимает ровно один подслот.
func TestPipeline_WeeklyScenario(t *testing.T) {
	slot := recurring(domain.PatternWeekly, utc(2024, time.January, 1, 9, 0), time.Hour)
	ws := utc(2024, time.January, 8, 0, 0)
	we := ws.AddDate(0, 0, 7)

	expanded := Expand([]*domain.AvailabilitySlot{slot}, ws, we)
	require.Len(t, expanded, 1)
	assert.Equal(t, utc(2024, time.January, 8, 9, 0), expanded[0].StartTime)
	assert.Equal(t, utc(2024, time.January, 8, 10, 0), expanded[0].EndTime)
	assert.Equal(t, slot.ID, expanded[0].OriginalSlotID)

	sub := SplitIntoFixedSlots(expanded, 15*time.Minute)
	require.Len(t, sub, 4)
	assert.Equal(t, []time.Time{
		utc(2024, time.January, 8, 9, 0),
		utc(2024, time.January, 8, 9, 15),
		utc(2024, time.January, 8, 9, 30),
		utc(2024, time.January, 8, 9, 45),
	}, starts(sub))

	sessions := []*domain.Session{{
		AvailabilitySlotID: slot.ID,
		StartTime:          utc(2024, time.January, 8, 9, 15),
		Status:             domain.StatusConfirmed,
	}}

	free := FilterBooked(sub, sessions)
	assert.Equal(t, []time.Time{
		utc(2024, time.January, 8, 9, 0),
		utc(2024, time.January, 8, 9, 30),
		utc(2024, time.January, 8, 9, 45),
	}, starts(free))
}

func TestExpand_NonRecurringOutsideWindow(t *testing.T) {
	ws := utc(2024, time.March, 4, 0, 0)
	we := ws.AddDate(0, 0, 7)

	before := oneOff(utc(2024, time.March, 1, 10, 0), time.Hour)
	after := oneOff(we, time.Hour)
	endsAtStart := oneOff(ws.Add(-time.Hour), time.Hour)

	assert.Empty(t, Expand([]*domain.AvailabilitySlot{before, after, endsAtStart}, ws, we))
}

func TestExpand_NonRecurringOverlapsWindowStart(t *testing.T) {
	ws := utc(2024, time.March, 4, 0, 0)
	slot := oneOff(ws.Add(-30*time.Minute), time.Hour)

	got := Expand([]*domain.AvailabilitySlot{slot}, ws, ws.AddDate(0, 0, 7))

	require.Len(t, got, 1)
	assert.Equal(t, slot.StartTime, got[0].StartTime)
	assert.False(t, got[0].IsRecurring)
}

func TestExpand_WeeklyAfter52Weeks(t *testing.T) {
	anchor := utc(2023, time.January, 2, 17, 0)
	slot := recurring(domain.PatternWeekly, anchor, 90*time.Minute)
	ws := anchor.AddDate(0, 0, 52*7)
	we := ws.AddDate(0, 0, 7)

	got := Expand([]*domain.AvailabilitySlot{slot}, ws, we)

	require.Len(t, got, 1)
	assert.Equal(t, anchor.Weekday(), got[0].StartTime.Weekday())
	assert.Equal(t, 17, got[0].StartTime.Hour())
	assert.Equal(t, 90*time.Minute, got[0].Duration())
	assert.Equal(t, time.Duration(52*7*24)*time.Hour, got[0].StartTime.Sub(anchor))
}

func TestExpand_Daily(t *testing.T) {
	slot := recurring(domain.PatternDaily, utc(2024, time.January, 1, 8, 0), 30*time.Minute)
	ws := utc(2024, time.February, 5, 0, 0)

	got := Expand([]*domain.AvailabilitySlot{slot}, ws, ws.AddDate(0, 0, 7))

	require.Len(t, got, 7)
	for i, s := range got {
		assert.Equal(t, ws.AddDate(0, 0, i).Add(8*time.Hour), s.StartTime)
		assert.Equal(t, slot.ID, s.OriginalSlotID)
	}
}

func TestExpand_MonthlyClampsToLastDay(t *testing.T) {
	slot := recurring(domain.PatternMonthly, utc(2024, time.January, 31, 12, 0), time.Hour)

	got := Expand([]*domain.AvailabilitySlot{slot}, utc(2024, time.January, 1, 0, 0), utc(2024, time.May, 1, 0, 0))

	assert.Equal(t, []time.Time{
		utc(2024, time.January, 31, 12, 0),
		utc(2024, time.February, 29, 12, 0),
		utc(2024, time.March, 31, 12, 0),
		utc(2024, time.April, 30, 12, 0),
	}, starts(got))
}

func TestExpand_RespectsRecurringEndDate(t *testing.T) {
	slot := recurring(domain.PatternWeekly, utc(2024, time.January, 1, 9, 0), time.Hour)
	slot.RecurringEndDate = ptr.Ptr(utc(2024, time.January, 15, 9, 0))

	got := Expand([]*domain.AvailabilitySlot{slot}, utc(2024, time.January, 1, 0, 0), utc(2024, time.February, 1, 0, 0))

	// Вхождение ровно в дату окончания включается
	assert.Equal(t, []time.Time{
		utc(2024, time.January, 1, 9, 0),
		utc(2024, time.January, 8, 9, 0),
		utc(2024, time.January, 15, 9, 0),
	}, starts(got))
}

func TestExpand_EndDateBeforeWindow(t *testing.T) {
	slot := recurring(domain.PatternDaily, utc(2024, time.January, 1, 9, 0), time.Hour)
	slot.RecurringEndDate = ptr.Ptr(utc(2024, time.January, 3, 0, 0))

	assert.Empty(t, Expand([]*domain.AvailabilitySlot{slot}, utc(2024, time.March, 1, 0, 0), utc(2024, time.March, 8, 0, 0)))
}

func TestExpand_AnchorAfterWindow(t *testing.T) {
	slot := recurring(domain.PatternWeekly, utc(2024, time.June, 3, 9, 0), time.Hour)

	assert.Empty(t, Expand([]*domain.AvailabilitySlot{slot}, utc(2024, time.January, 1, 0, 0), utc(2024, time.January, 8, 0, 0)))
}

func TestExpand_SkipsInactiveAndMalformed(t *testing.T) {
	ws := utc(2024, time.January, 8, 0, 0)
	we := ws.AddDate(0, 0, 7)

	inactive := recurring(domain.PatternWeekly, utc(2024, time.January, 1, 9, 0), time.Hour)
	inactive.IsActive = false

	unknown := recurring("fortnightly", utc(2024, time.January, 1, 9, 0), time.Hour)

	noPattern := recurring(domain.PatternWeekly, utc(2024, time.January, 1, 9, 0), time.Hour)
	noPattern.RecurringPattern = nil

	zero := oneOff(utc(2024, time.January, 9, 9, 0), 0)
	negative := oneOff(utc(2024, time.January, 9, 9, 0), -time.Hour)

	valid := oneOff(utc(2024, time.January, 10, 9, 0), time.Hour)

	got := Expand([]*domain.AvailabilitySlot{inactive, unknown, noPattern, zero, negative, nil, valid}, ws, we)

	require.Len(t, got, 1)
	assert.Equal(t, valid.ID, got[0].OriginalSlotID)
}

func TestExpand_SharedOriginalIDAndOrdering(t *testing.T) {
	daily := recurring(domain.PatternDaily, utc(2024, time.January, 1, 10, 0), time.Hour)
	weekly := recurring(domain.PatternWeekly, utc(2024, time.January, 1, 9, 0), time.Hour)
	ws := utc(2024, time.January, 8, 0, 0)

	got := Expand([]*domain.AvailabilitySlot{daily, weekly}, ws, ws.AddDate(0, 0, 7))

	require.Len(t, got, 8)
	assert.Equal(t, weekly.ID, got[0].OriginalSlotID)
	for i := 1; i < len(got); i++ {
		assert.Equal(t, daily.ID, got[i].OriginalSlotID)
		assert.True(t, got[i-1].StartTime.Before(got[i].StartTime))
	}
}

func TestExpand_Idempotent(t *testing.T) {
	input := []*domain.AvailabilitySlot{
		recurring(domain.PatternDaily, utc(2024, time.January, 1, 10, 0), time.Hour),
		recurring(domain.PatternMonthly, utc(2023, time.December, 31, 9, 0), 2*time.Hour),
		oneOff(utc(2024, time.February, 27, 15, 0), 45*time.Minute),
	}
	ws := utc(2024, time.February, 26, 0, 0)
	we := ws.AddDate(0, 0, 7)

	assert.Equal(t, Expand(input, ws, we), Expand(input, ws, we))
}

func TestExpand_EmptyWindow(t *testing.T) {
	slot := oneOff(utc(2024, time.January, 1, 9, 0), time.Hour)
	ws := utc(2024, time.January, 1, 0, 0)

	assert.Empty(t, Expand([]*domain.AvailabilitySlot{slot}, ws, ws))
}

func TestSplitIntoFixedSlots_DropsRemainder(t *testing.T) {
	id := uuid.New()
	pattern := ptr.Ptr(domain.PatternWeekly)
	in := []domain.ExpandedSlot{{
		OriginalSlotID:   id,
		StartTime:        utc(2024, time.January, 8, 9, 0),
		EndTime:          utc(2024, time.January, 8, 9, 50),
		IsRecurring:      true,
		RecurringPattern: pattern,
	}}

	got := SplitIntoFixedSlots(in, 15*time.Minute)

	require.Len(t, got, 3)
	assert.Equal(t, utc(2024, time.January, 8, 9, 45), got[2].EndTime)
	for _, s := range got {
		assert.Equal(t, id, s.OriginalSlotID)
		assert.True(t, s.IsRecurring)
		assert.Equal(t, pattern, s.RecurringPattern)
		assert.Equal(t, 15*time.Minute, s.Duration())
	}
}

func TestSplitIntoFixedSlots_ExactMultiple(t *testing.T) {
	in := []domain.ExpandedSlot{{StartTime: utc(2024, time.January, 8, 9, 0), EndTime: utc(2024, time.January, 8, 11, 0)}}

	assert.Len(t, SplitIntoFixedSlots(in, 15*time.Minute), 8)
	assert.Len(t, SplitIntoFixedSlots(in, 30*time.Minute), 4)
}

func TestSplitIntoFixedSlots_DegenerateInput(t *testing.T) {
	start := utc(2024, time.January, 8, 9, 0)
	in := []domain.ExpandedSlot{
		{StartTime: start, EndTime: start},
		{StartTime: start, EndTime: start.Add(-time.Hour)},
		{StartTime: start, EndTime: start.Add(10 * time.Minute)},
	}

	assert.Empty(t, SplitIntoFixedSlots(in, 15*time.Minute))
	assert.Empty(t, SplitIntoFixedSlots([]domain.ExpandedSlot{{StartTime: start, EndTime: start.Add(time.Hour)}}, 0))
	assert.Empty(t, SplitIntoFixedSlots([]domain.ExpandedSlot{{StartTime: start, EndTime: start.Add(time.Hour)}}, -time.Minute))
}

func TestFilterBooked_IgnoresInactiveSessions(t *testing.T) {
	id := uuid.New()
	sub := SplitIntoFixedSlots([]domain.ExpandedSlot{{
		OriginalSlotID: id,
		StartTime:      utc(2024, time.January, 8, 9, 0),
		EndTime:        utc(2024, time.January, 8, 10, 0),
	}}, 15*time.Minute)

	sessions := []*domain.Session{
		{AvailabilitySlotID: id, StartTime: utc(2024, time.January, 8, 9, 0), Status: domain.StatusCancelledByUser},
		{AvailabilitySlotID: id, StartTime: utc(2024, time.January, 8, 9, 15), Status: domain.StatusExpired},
		{AvailabilitySlotID: id, StartTime: utc(2024, time.January, 8, 9, 30), Status: domain.StatusPending},
		{AvailabilitySlotID: uuid.New(), StartTime: utc(2024, time.January, 8, 9, 45), Status: domain.StatusConfirmed},
	}

	got := FilterBooked(sub, sessions)

	assert.Equal(t, []time.Time{
		utc(2024, time.January, 8, 9, 0),
		utc(2024, time.January, 8, 9, 15),
		utc(2024, time.January, 8, 9, 45),
	}, starts(got))
}

func TestFilterBooked_MatchesAcrossTimeZones(t *testing.T) {
	id := uuid.New()
	sub := []domain.ExpandedSlot{{OriginalSlotID: id, StartTime: utc(2024, time.January, 8, 9, 15), EndTime: utc(2024, time.January, 8, 9, 30)}}
	msk := time.FixedZone("MSK", 3*60*60)

	got := FilterBooked(sub, []*domain.Session{{
		AvailabilitySlotID: id,
		StartTime:          utc(2024, time.January, 8, 9, 15).In(msk),
		Status:             domain.StatusPending,
	}})

	assert.Empty(t, got)
}

func TestFilterBooked_EmptySessionsIsIdentity(t *testing.T) {
	sub := SplitIntoFixedSlots(Expand([]*domain.AvailabilitySlot{
		recurring(domain.PatternDaily, utc(2024, time.January, 1, 9, 0), time.Hour),
	}, utc(2024, time.January, 8, 0, 0), utc(2024, time.January, 15, 0, 0)), 15*time.Minute)

	assert.Equal(t, sub, FilterBooked(sub, nil))
	assert.Equal(t, sub, FilterBooked(sub, []*domain.Session{}))
}

func TestFilterOverlapping_SessionFromPreviousUnit(t *testing.T) {
	id := uuid.New()
	// подслоты по 30 минут, а сессия забронирована ещё при длине 15
	sub := SplitIntoFixedSlots([]domain.ExpandedSlot{{
		OriginalSlotID: id,
		StartTime:      utc(2024, time.January, 8, 9, 0),
		EndTime:        utc(2024, time.January, 8, 10, 0),
	}}, 30*time.Minute)

	sessions := []*domain.Session{{
		AvailabilitySlotID: id,
		StartTime:          utc(2024, time.January, 8, 9, 15),
		EndTime:            utc(2024, time.January, 8, 9, 30),
		Status:             domain.StatusConfirmed,
	}}

	assert.Len(t, FilterBooked(sub, sessions), 2, "exact key does not match")
	assert.Equal(t, []time.Time{utc(2024, time.January, 8, 9, 30)}, starts(FilterOverlapping(sub, sessions)))
}

func TestFilterOverlapping_TouchingInactiveAndForeign(t *testing.T) {
	id := uuid.New()
	sub := SplitIntoFixedSlots([]domain.ExpandedSlot{{
		OriginalSlotID: id,
		StartTime:      utc(2024, time.January, 8, 9, 0),
		EndTime:        utc(2024, time.January, 8, 10, 0),
	}}, 30*time.Minute)

	sessions := []*domain.Session{
		// заканчивается ровно в начале окна
		{AvailabilitySlotID: id, StartTime: utc(2024, time.January, 8, 8, 30), EndTime: utc(2024, time.January, 8, 9, 0), Status: domain.StatusPending},
		{AvailabilitySlotID: id, StartTime: utc(2024, time.January, 8, 9, 0), EndTime: utc(2024, time.January, 8, 9, 30), Status: domain.StatusCancelledByMentor},
		{AvailabilitySlotID: uuid.New(), StartTime: utc(2024, time.January, 8, 9, 30), EndTime: utc(2024, time.January, 8, 10, 0), Status: domain.StatusConfirmed},
	}

	assert.Equal(t, sub, FilterOverlapping(sub, sessions))
}
