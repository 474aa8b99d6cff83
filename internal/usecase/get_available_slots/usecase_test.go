package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-MentorshipService/internal/integrations/profileservice"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime time.Time

func (f fixedTime) Now() time.Time { return time.Time(f) }

type fakeAvailability struct {
	slots []*domain.AvailabilitySlot
	err   error
}

func (f *fakeAvailability) GetActiveByMentorInRange(context.Context, uuid.UUID, time.Time, time.Time) ([]*domain.AvailabilitySlot, error) {
	return f.slots, f.err
}

// fakeSessions отдаёт сессии, начинающиеся в [from, to), как и репозиторий
type fakeSessions struct {
	sessions []*domain.Session
}

func (f *fakeSessions) GetActiveByMentorInRange(_ context.Context, _ uuid.UUID, from, to time.Time) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range f.sessions {
		if !s.StartTime.Before(from) && s.StartTime.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeSettings struct {
	settings *domain.MentorSettings
}

func (f *fakeSettings) GetByMentorID(context.Context, uuid.UUID) (*domain.MentorSettings, error) {
	if f.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return f.settings, nil
}

type fakeProfiles map[uuid.UUID]*profileservice.Profile

func (f fakeProfiles) GetProfile(_ context.Context, id uuid.UUID) (*profileservice.Profile, error) {
	p, ok := f[id]
	if !ok {
		return nil, profileservice.ErrProfileNotFound
	}
	return p, nil
}

type countingMetrics struct{ last int }

func (m *countingMetrics) ObserveAvailableSlots(n int) { m.last = n }

var (
	mentorID  = uuid.MustParse("0b9f6a2e-6a57-4f55-8f0a-7e1c3b2d4a11")
	athleteID = uuid.MustParse("a3c1d9e0-2b44-4e6b-9d7a-5f8e0c1b2a33")
	slotID    = uuid.MustParse("11111111-2222-4333-8444-555555555555")
	weekStart = time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
)

func weeklyMondayNine() *domain.AvailabilitySlot {
	p := domain.PatternWeekly
	return &domain.AvailabilitySlot{
		ID:               slotID,
		MentorID:         mentorID,
		StartTime:        time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:          time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		IsRecurring:      true,
		RecurringPattern: &p,
		IsActive:         true,
	}
}

type fixture struct {
	availability *fakeAvailability
	sessions     *fakeSessions
	settings     *fakeSettings
	metrics      *countingMetrics
	uc           *UseCase
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		availability: &fakeAvailability{slots: []*domain.AvailabilitySlot{weeklyMondayNine()}},
		sessions:     &fakeSessions{},
		settings:     &fakeSettings{},
		metrics:      &countingMetrics{},
	}
	profiles := fakeProfiles{
		mentorID:  {ID: mentorID, Role: profileservice.RoleMentor, IsActive: true},
		athleteID: {ID: athleteID, Role: profileservice.RoleAthlete, IsActive: true},
	}
	f.uc = NewUseCase(f.availability, f.sessions, f.settings, profiles, f.metrics, 7, nopLogger{})
	f.uc.timeProvider = fixedTime(now)
	return f
}

func TestUseCase_Execute_WeeklySlotMinusBooked(t *testing.T) {
	f := newFixture(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	f.sessions.sessions = []*domain.Session{{
		AvailabilitySlotID: slotID,
		StartTime:          time.Date(2024, 1, 8, 9, 15, 0, 0, time.UTC),
		EndTime:            time.Date(2024, 1, 8, 9, 30, 0, 0, time.UTC),
		Status:             domain.StatusPending,
	}}

	resp, err := f.uc.Execute(context.Background(), &Request{MentorID: mentorID, WeekStart: weekStart})

	require.NoError(t, err)
	assert.Equal(t, weekStart, resp.WeekStart)
	assert.Equal(t, weekStart.AddDate(0, 0, 7), resp.WeekEnd)
	assert.Equal(t, domain.DefaultSessionUnitMinutes, resp.UnitMinutes)

	require.Len(t, resp.Slots, 3)
	assert.Equal(t, time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), resp.Slots[0].StartTime)
	assert.Equal(t, time.Date(2024, 1, 8, 9, 30, 0, 0, time.UTC), resp.Slots[1].StartTime)
	assert.Equal(t, time.Date(2024, 1, 8, 9, 45, 0, 0, time.UTC), resp.Slots[2].StartTime)
	for _, s := range resp.Slots {
		assert.Equal(t, slotID, s.AvailabilitySlotID)
		assert.Equal(t, 15, s.DurationMinutes)
		require.NotNil(t, s.RecurringPattern)
		assert.Equal(t, "weekly", *s.RecurringPattern)
	}
	assert.Equal(t, 3, f.metrics.last)
}

func TestUseCase_Execute_CancelledSessionFreesSlot(t *testing.T) {
	f := newFixture(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	f.sessions.sessions = []*domain.Session{{
		AvailabilitySlotID: slotID,
		StartTime:          time.Date(2024, 1, 8, 9, 15, 0, 0, time.UTC),
		Status:             domain.StatusCancelledByUser,
	}}

	resp, err := f.uc.Execute(context.Background(), &Request{MentorID: mentorID, WeekStart: weekStart})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 4)
}

func TestUseCase_Execute_MentorSettings(t *testing.T) {
	// сейчас 08:50 понедельника, уведомление за 30 минут: 09:00 и 09:15 уже нельзя
	f := newFixture(time.Date(2024, 1, 8, 8, 50, 0, 0, time.UTC))
	f.settings.settings = &domain.MentorSettings{
		MentorID:                mentorID,
		SessionUnitMinutes:      15,
		MinBookingNoticeMinutes: 30,
	}

	resp, err := f.uc.Execute(context.Background(), &Request{MentorID: mentorID, WeekStart: weekStart})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, time.Date(2024, 1, 8, 9, 30, 0, 0, time.UTC), resp.Slots[0].StartTime)
}

func TestUseCase_Execute_AdvanceBookingLimit(t *testing.T) {
	f := newFixture(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	f.settings.settings = &domain.MentorSettings{
		MentorID:           mentorID,
		SessionUnitMinutes: 30,
		AdvanceBookingDays: 3,
	}

	resp, err := f.uc.Execute(context.Background(), &Request{MentorID: mentorID, WeekStart: weekStart})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 30, resp.UnitMinutes)
}

func TestUseCase_Execute_MalformedSlotSkipped(t *testing.T) {
	f := newFixture(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	bad := weeklyMondayNine()
	bad.ID = uuid.New()
	bad.RecurringPattern = nil
	f.availability.slots = append(f.availability.slots, bad)

	resp, err := f.uc.Execute(context.Background(), &Request{MentorID: mentorID, WeekStart: weekStart})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 4)
}

func oneOff(start, end time.Time) *domain.AvailabilitySlot {
	return &domain.AvailabilitySlot{
		ID:        uuid.New(),
		MentorID:  mentorID,
		StartTime: start,
		EndTime:   end,
		IsActive:  true,
	}
}

func TestUseCase_Execute_SubSlotsClippedToWindowEnd(t *testing.T) {
	f := newFixture(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	windowEnd := weekStart.AddDate(0, 0, 7)
	// воскресенье 23:00 - понедельник 01:00 следующей недели
	slot := oneOff(windowEnd.Add(-time.Hour), windowEnd.Add(time.Hour))
	f.availability.slots = []*domain.AvailabilitySlot{slot}
	f.sessions.sessions = []*domain.Session{
		{
			AvailabilitySlotID: slot.ID,
			StartTime:          windowEnd.Add(-30 * time.Minute),
			EndTime:            windowEnd.Add(-15 * time.Minute),
			Status:             domain.StatusConfirmed,
		},
		{
			AvailabilitySlotID: slot.ID,
			StartTime:          windowEnd.Add(15 * time.Minute),
			EndTime:            windowEnd.Add(30 * time.Minute),
			Status:             domain.StatusConfirmed,
		},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{MentorID: mentorID, WeekStart: weekStart})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, windowEnd.Add(-60*time.Minute), resp.Slots[0].StartTime)
	assert.Equal(t, windowEnd.Add(-45*time.Minute), resp.Slots[1].StartTime)
	assert.Equal(t, windowEnd.Add(-15*time.Minute), resp.Slots[2].StartTime)
	for _, s := range resp.Slots {
		assert.True(t, s.StartTime.Before(windowEnd))
	}
}

func TestUseCase_Execute_SessionBeforeWindowStart(t *testing.T) {
	f := newFixture(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	f.settings.settings = &domain.MentorSettings{MentorID: mentorID, SessionUnitMinutes: 60}
	// воскресенье 23:00 - понедельник 02:00, подслоты 23:00, 00:00, 01:00
	slot := oneOff(weekStart.Add(-time.Hour), weekStart.Add(2*time.Hour))
	f.availability.slots = []*domain.AvailabilitySlot{slot}
	// сессия осталась от прежней сетки и задевает полночь
	f.sessions.sessions = []*domain.Session{{
		AvailabilitySlotID: slot.ID,
		StartTime:          weekStart.Add(-30 * time.Minute),
		EndTime:            weekStart.Add(30 * time.Minute),
		Status:             domain.StatusPending,
	}}

	resp, err := f.uc.Execute(context.Background(), &Request{MentorID: mentorID, WeekStart: weekStart})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, weekStart.Add(time.Hour), resp.Slots[0].StartTime)
	assert.Equal(t, 60, resp.Slots[0].DurationMinutes)
}

func TestUseCase_Execute_SessionOfPreviousUnitBlocksOverlap(t *testing.T) {
	f := newFixture(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	f.settings.settings = &domain.MentorSettings{MentorID: mentorID, SessionUnitMinutes: 30}
	// забронировано при длине 15 минут
	f.sessions.sessions = []*domain.Session{{
		AvailabilitySlotID: slotID,
		StartTime:          time.Date(2024, 1, 8, 9, 15, 0, 0, time.UTC),
		EndTime:            time.Date(2024, 1, 8, 9, 30, 0, 0, time.UTC),
		Status:             domain.StatusConfirmed,
	}}

	resp, err := f.uc.Execute(context.Background(), &Request{MentorID: mentorID, WeekStart: weekStart})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, time.Date(2024, 1, 8, 9, 30, 0, 0, time.UTC), resp.Slots[0].StartTime)
}

func TestClipToWindow(t *testing.T) {
	end := weekStart.AddDate(0, 0, 7)
	sub := func(start time.Time) domain.ExpandedSlot {
		return domain.ExpandedSlot{StartTime: start, EndTime: start.Add(15 * time.Minute)}
	}

	got := clipToWindow([]domain.ExpandedSlot{
		sub(weekStart.Add(-15 * time.Minute)),
		sub(weekStart),
		sub(end.Add(-15 * time.Minute)),
		sub(end),
	}, weekStart, end)

	require.Len(t, got, 2)
	assert.Equal(t, weekStart, got[0].StartTime)
	assert.Equal(t, end.Add(-15*time.Minute), got[1].StartTime)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	f := newFixture(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{WeekStart: weekStart})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(ctx, &Request{MentorID: mentorID})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(ctx, &Request{MentorID: athleteID, WeekStart: weekStart})
	assert.ErrorIs(t, err, ErrMentorNotFound)

	_, err = f.uc.Execute(ctx, &Request{MentorID: uuid.New(), WeekStart: weekStart})
	assert.ErrorIs(t, err, ErrMentorNotFound)

	f.availability.err = errors.New("connection refused")
	_, err = f.uc.Execute(ctx, &Request{MentorID: mentorID, WeekStart: weekStart})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestWindow_NormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	start, end := window(time.Date(2024, 1, 8, 10, 0, 0, 0, loc), 7)

	assert.Equal(t, weekStart, start)
	assert.Equal(t, weekStart.AddDate(0, 0, 7), end)
}
