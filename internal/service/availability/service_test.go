package availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diana0617/BC-sub011/internal/domain"
	branchRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/branch"
	catalogRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/catalog"
	scheduleRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/schedule"
	"github.com/Diana0617/BC-sub011/internal/service/rules"
	"github.com/Diana0617/BC-sub011/internal/service/specialists"
	"github.com/Diana0617/BC-sub011/pkg/types"
)

const (
	testBusinessID = int64(1)
	testBranchID   = int64(10)
	testServiceID  = int64(20)
	testUserID     = domain.UserID(7)
	testProfileID  = domain.SpecialistProfileID(70)
)

// 2025-03-10 - понедельник
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeBranches map[int64]*domain.Branch

func (f fakeBranches) GetByID(_ context.Context, businessID, branchID int64) (*domain.Branch, error) {
	b, ok := f[branchID]
	if !ok || b.BusinessID != businessID {
		return nil, branchRepo.ErrBranchNotFound
	}
	return b, nil
}

type fakeServices map[int64]*domain.Service

func (f fakeServices) GetByID(_ context.Context, businessID, serviceID int64) (*domain.Service, error) {
	s, ok := f[serviceID]
	if !ok || s.BusinessID != businessID {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

type scheduleKey struct {
	profile domain.SpecialistProfileID
	day     string
}

type fakeSchedules map[scheduleKey]*domain.SpecialistBranchSchedule

func (f fakeSchedules) GetActive(_ context.Context, profileID domain.SpecialistProfileID, _ int64, day string) (*domain.SpecialistBranchSchedule, error) {
	s, ok := f[scheduleKey{profileID, day}]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return s, nil
}

type fakeAppointments struct {
	mu    sync.Mutex
	items []*domain.Appointment
	err   error
	// failOn дата, для которой List возвращает ошибку
	failOn time.Time
}

func (f *fakeAppointments) List(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if !f.failOn.IsZero() && filter.From != nil && filter.From.Equal(f.failOn) {
		return nil, errors.New("query timeout")
	}
	var out []*domain.Appointment
	for _, a := range f.items {
		if filter.SpecialistID != nil && a.SpecialistID != *filter.SpecialistID {
			continue
		}
		if filter.From != nil && !a.EndTime.After(*filter.From) {
			continue
		}
		if filter.To != nil && !a.StartTime.Before(*filter.To) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type fakeSpecialists struct {
	identities map[domain.SpecialistRef]domain.SpecialistIdentity
	byService  map[int64][]domain.SpecialistIdentity
}

func (f fakeSpecialists) Resolve(_ context.Context, _ int64, ref domain.SpecialistRef) (domain.SpecialistIdentity, error) {
	id, ok := f.identities[ref]
	if !ok {
		return domain.SpecialistIdentity{}, specialists.ErrSpecialistNotFound
	}
	return id, nil
}

func (f fakeSpecialists) ListForService(_ context.Context, _ int64, serviceID int64) ([]domain.SpecialistIdentity, error) {
	return f.byService[serviceID], nil
}

type fakeRules struct {
	business *domain.Business
	policy   domain.BookingPolicy
}

func (f fakeRules) GetBusiness(_ context.Context, id int64) (*domain.Business, error) {
	if f.business == nil || f.business.ID != id {
		return nil, rules.ErrBusinessNotFound
	}
	return f.business, nil
}

func (f fakeRules) BookingPolicy(context.Context, int64) (domain.BookingPolicy, error) {
	return f.policy, nil
}

type fixture struct {
	branches     fakeBranches
	services     fakeServices
	schedules    fakeSchedules
	appointments *fakeAppointments
	specialists  fakeSpecialists
	rules        fakeRules
	now          time.Time
}

func newFixture() *fixture {
	identity := domain.SpecialistIdentity{UserID: testUserID, ProfileID: testProfileID, Source: domain.SourceSpecialistProfile, FirstName: "Ana"}
	return &fixture{
		branches: fakeBranches{testBranchID: {
			ID:         testBranchID,
			BusinessID: testBusinessID,
			Name:       "Centro",
			Status:     domain.BranchStatusActive,
			BusinessHours: domain.BusinessHours{
				"monday":  {Window: domain.WorkingWindow{Start: "09:00", End: "17:00"}},
				"tuesday": {Window: domain.WorkingWindow{Start: "09:00", End: "17:00"}},
				"sunday":  {Closed: true},
			},
		}},
		services: fakeServices{testServiceID: {
			ID: testServiceID, BusinessID: testBusinessID, Name: "Corte", Duration: 30,
			Price: decimal.NewFromInt(35000), IsActive: true,
		}},
		schedules: fakeSchedules{
			{testProfileID, "monday"}: {SpecialistProfileID: testProfileID, BranchID: testBranchID, DayOfWeek: "monday", StartTime: "10:00", EndTime: "15:00", IsActive: true},
		},
		appointments: &fakeAppointments{},
		specialists: fakeSpecialists{
			identities: map[domain.SpecialistRef]domain.SpecialistIdentity{
				domain.ProfileRef(testProfileID): identity,
				domain.UserRef(testUserID):       identity,
			},
			byService: map[int64][]domain.SpecialistIdentity{testServiceID: {identity}},
		},
		rules: fakeRules{
			business: &domain.Business{ID: testBusinessID, Status: domain.BusinessStatusActive, Timezone: "UTC"},
			policy:   domain.DefaultBookingPolicy(),
		},
		now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) service() *Service {
	return NewService(f.branches, f.services, f.schedules, f.appointments, f.specialists, f.rules,
		time.UTC, nopLogger{}, WithTimeProvider(fixedClock{f.now}), WithRangeConcurrency(3))
}

func slotsRequest(date time.Time) *SlotsRequest {
	return &SlotsRequest{
		BusinessID: testBusinessID,
		BranchID:   testBranchID,
		Specialist: domain.ProfileRef(testProfileID),
		ServiceID:  testServiceID,
		Date:       date,
	}
}

func TestGenerateAvailableSlots_ScheduleIntersection(t *testing.T) {
	f := newFixture()

	result, err := f.service().GenerateAvailableSlots(context.Background(), slotsRequest(monday))
	require.NoError(t, err)

	assert.False(t, result.Closed)
	assert.Equal(t, "monday", result.DayOfWeek)
	require.NotNil(t, result.WorkingHours)
	assert.Equal(t, types.TimeString("10:00"), result.WorkingHours.Start)
	assert.Equal(t, types.TimeString("15:00"), result.WorkingHours.End)

	require.Len(t, result.Slots, 10)
	assert.Equal(t, domain.Slot{StartTime: "10:00", EndTime: "10:30"}, result.Slots[0])
	assert.Equal(t, domain.Slot{StartTime: "14:30", EndTime: "15:00"}, result.Slots[9])
	assert.Equal(t, 10, result.TotalSlots)
	assert.Equal(t, 10, result.AvailableSlots)
	assert.Equal(t, 0, result.OccupiedSlots)
	assert.Equal(t, "35000.00", result.Service.Price)
}

func TestGenerateAvailableSlots_ClosedDay(t *testing.T) {
	f := newFixture()

	sunday := monday.AddDate(0, 0, -1)
	result, err := f.service().GenerateAvailableSlots(context.Background(), slotsRequest(sunday))
	require.NoError(t, err)

	assert.True(t, result.Closed)
	assert.Equal(t, MessageBranchClosed, result.Message)
	assert.Empty(t, result.Slots)

	// день без конфигурации тоже выходной
	saturday := monday.AddDate(0, 0, 5)
	result, err = f.service().GenerateAvailableSlots(context.Background(), slotsRequest(saturday))
	require.NoError(t, err)
	assert.True(t, result.Closed)
}

func TestGenerateAvailableSlots_NoScheduleUsesBranchHours(t *testing.T) {
	f := newFixture()

	tuesday := monday.AddDate(0, 0, 1)
	result, err := f.service().GenerateAvailableSlots(context.Background(), slotsRequest(tuesday))
	require.NoError(t, err)
	assert.Len(t, result.Slots, 16)
}

func TestGenerateAvailableSlots_NoOverlap(t *testing.T) {
	f := newFixture()
	f.schedules[scheduleKey{testProfileID, "monday"}].StartTime = "18:00"
	f.schedules[scheduleKey{testProfileID, "monday"}].EndTime = "20:00"

	result, err := f.service().GenerateAvailableSlots(context.Background(), slotsRequest(monday))
	require.NoError(t, err)
	assert.False(t, result.Closed)
	assert.Equal(t, MessageNoOverlap, result.Message)
	assert.Empty(t, result.Slots)
}

func TestGenerateAvailableSlots_ExcludesOccupied(t *testing.T) {
	f := newFixture()
	f.appointments.items = []*domain.Appointment{
		{SpecialistID: testUserID, StartTime: monday.Add(11 * time.Hour), EndTime: monday.Add(12 * time.Hour), Status: domain.StatusConfirmed},
		{SpecialistID: testUserID, StartTime: monday.Add(13 * time.Hour), EndTime: monday.Add(14 * time.Hour), Status: domain.StatusCanceled},
		{SpecialistID: 99, StartTime: monday.Add(10 * time.Hour), EndTime: monday.Add(15 * time.Hour), Status: domain.StatusConfirmed},
	}

	result, err := f.service().GenerateAvailableSlots(context.Background(), slotsRequest(monday))
	require.NoError(t, err)

	assert.Equal(t, 10, result.TotalSlots)
	assert.Equal(t, 8, result.AvailableSlots)
	assert.Equal(t, 2, result.OccupiedSlots)
	for _, s := range result.Slots {
		assert.False(t, s.Overlaps("11:00", "12:00"), s.StartTime)
	}
}

func TestGenerateAvailableSlots_TodayRespectsNotice(t *testing.T) {
	f := newFixture()
	f.now = monday.Add(11*time.Hour + 15*time.Minute)

	result, err := f.service().GenerateAvailableSlots(context.Background(), slotsRequest(monday))
	require.NoError(t, err)

	// 11:15 + 60 минут уведомления -> первый слот 12:30
	require.NotEmpty(t, result.Slots)
	assert.Equal(t, types.TimeString("12:30"), result.Slots[0].StartTime)
}

func TestGenerateAvailableSlots_PastDate(t *testing.T) {
	f := newFixture()
	f.now = monday.AddDate(0, 0, 2)

	result, err := f.service().GenerateAvailableSlots(context.Background(), slotsRequest(monday))
	require.NoError(t, err)
	assert.Empty(t, result.Slots)
	assert.Equal(t, MessageDateInPast, result.Message)
}

func TestGenerateAvailableSlots_Errors(t *testing.T) {
	f := newFixture()
	svc := f.service()
	ctx := context.Background()

	req := slotsRequest(monday)
	req.BranchID = 999
	_, err := svc.GenerateAvailableSlots(ctx, req)
	assert.ErrorIs(t, err, ErrBranchNotFound)

	req = slotsRequest(monday)
	req.ServiceID = 999
	_, err = svc.GenerateAvailableSlots(ctx, req)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	req = slotsRequest(monday)
	req.Specialist = domain.ProfileRef(12345)
	_, err = svc.GenerateAvailableSlots(ctx, req)
	assert.ErrorIs(t, err, ErrSpecialistNotFound)

	// ID пользователя не подставляется вместо ID профиля
	req = slotsRequest(monday)
	req.Specialist = domain.ProfileRef(domain.SpecialistProfileID(testUserID))
	_, err = svc.GenerateAvailableSlots(ctx, req)
	assert.ErrorIs(t, err, ErrSpecialistNotFound)

	for _, ref := range []domain.SpecialistRef{{}, {ProfileID: testProfileID, UserID: testUserID}} {
		req = slotsRequest(monday)
		req.Specialist = ref
		_, err = svc.GenerateAvailableSlots(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput, ref.String())
	}

	req = slotsRequest(monday)
	req.BusinessID = 2
	_, err = svc.GenerateAvailableSlots(ctx, req)
	assert.ErrorIs(t, err, ErrBusinessNotFound)

	req = slotsRequest(time.Time{})
	_, err = svc.GenerateAvailableSlots(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.branches[testBranchID].Status = domain.BranchStatusInactive
	_, err = svc.GenerateAvailableSlots(ctx, slotsRequest(monday))
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestGenerateAvailableSlots_DateTooFar(t *testing.T) {
	f := newFixture()
	f.rules.policy.AdvanceBookingDays = 3

	_, err := f.service().GenerateAvailableSlots(context.Background(), slotsRequest(monday))
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestGetAvailabilityRange(t *testing.T) {
	f := newFixture()
	// вторник недоступен из-за ошибки БД, воскресенье закрыто
	f.appointments.failOn = monday.AddDate(0, 0, 1)

	days, err := f.service().GetAvailabilityRange(context.Background(), &RangeRequest{
		BusinessID: testBusinessID,
		BranchID:   testBranchID,
		Specialist: domain.ProfileRef(testProfileID),
		ServiceID:  testServiceID,
		StartDate:  monday.AddDate(0, 0, -1),
		EndDate:    monday.AddDate(0, 0, 2),
	})
	require.NoError(t, err)

	require.Len(t, days, 1)
	assert.True(t, monday.Equal(days[0].Date))
	assert.Equal(t, 10, days[0].AvailableSlots)
}

func TestGetAvailabilityRange_Validation(t *testing.T) {
	svc := newFixture().service()

	_, err := svc.GetAvailabilityRange(context.Background(), &RangeRequest{
		BusinessID: testBusinessID, BranchID: testBranchID, Specialist: domain.ProfileRef(1), ServiceID: 1,
		StartDate: monday, EndDate: monday.AddDate(0, 0, 31),
	})
	assert.ErrorIs(t, err, ErrRangeTooLarge)

	_, err = svc.GetAvailabilityRange(context.Background(), &RangeRequest{
		BusinessID: testBusinessID, BranchID: testBranchID, Specialist: domain.ProfileRef(1), ServiceID: 1,
		StartDate: monday, EndDate: monday.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetAvailableSpecialists(t *testing.T) {
	f := newFixture()
	other := domain.SpecialistIdentity{UserID: 8, ProfileID: 80, FirstName: "Luis"}
	busy := domain.SpecialistIdentity{UserID: 9, ProfileID: 90, FirstName: "Sara"}
	f.specialists.byService[testServiceID] = append(f.specialists.byService[testServiceID], other, busy)
	f.schedules[scheduleKey{80, "monday"}] = &domain.SpecialistBranchSchedule{StartTime: "14:00", EndTime: "17:00"}
	f.appointments.items = []*domain.Appointment{
		{SpecialistID: 9, StartTime: monday.Add(10 * time.Hour), EndTime: monday.Add(11 * time.Hour), Status: domain.StatusPending},
	}

	result, err := f.service().GetAvailableSpecialists(context.Background(), &SpecialistsRequest{
		BusinessID: testBusinessID, BranchID: testBranchID, ServiceID: testServiceID,
		Date: monday, Time: "10:30",
	})
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, testUserID, result[0].Specialist.UserID)
	assert.Equal(t, domain.Slot{StartTime: "10:30", EndTime: "11:00"}, result[0].Slot)

	result, err = f.service().GetAvailableSpecialists(context.Background(), &SpecialistsRequest{
		BusinessID: testBusinessID, BranchID: testBranchID, ServiceID: testServiceID,
		Date: monday.AddDate(0, 0, -1), Time: "10:30",
	})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func validateRequest(start, end time.Duration) *ValidateRequest {
	return &ValidateRequest{
		BusinessID: testBusinessID,
		BranchID:   testBranchID,
		Specialist: domain.UserRef(testUserID),
		ServiceID:  testServiceID,
		StartTime:  monday.Add(start),
		EndTime:    monday.Add(end),
	}
}

func TestValidateSlotAvailability(t *testing.T) {
	f := newFixture()
	f.appointments.items = []*domain.Appointment{
		{SpecialistID: testUserID, StartTime: monday.Add(12 * time.Hour), EndTime: monday.Add(13 * time.Hour), Status: domain.StatusConfirmed},
	}
	svc := f.service()
	ctx := context.Background()

	ok, err := svc.ValidateSlotAvailability(ctx, validateRequest(10*time.Hour, 11*time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)

	// граничит с записью
	ok, err = svc.ValidateSlotAvailability(ctx, validateRequest(11*time.Hour, 12*time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.ValidateSlotAvailability(ctx, validateRequest(12*time.Hour+30*time.Minute, 13*time.Hour+30*time.Minute))
	require.NoError(t, err)
	assert.False(t, ok)

	// за пределами расписания специалиста
	ok, err = svc.ValidateSlotAvailability(ctx, validateRequest(14*time.Hour+30*time.Minute, 15*time.Hour+30*time.Minute))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.ValidateSlotAvailability(ctx, validateRequest(11*time.Hour, 11*time.Hour))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ValidateSlotAvailability(ctx, validateRequest(11*time.Hour, 10*time.Hour))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func newYorkFixture(t *testing.T) (*fixture, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	f := newFixture()
	f.rules.business.Timezone = "America/New_York"
	f.now = time.Date(2025, 3, 1, 12, 0, 0, 0, loc)
	return f, loc
}

// 2025-03-09 в Нью-Йорке переход на летнее время, сутки длятся 23 часа
func TestGetAvailabilityRange_DSTKeepsLastDay(t *testing.T) {
	f, loc := newYorkFixture(t)

	days, err := f.service().GetAvailabilityRange(context.Background(), &RangeRequest{
		BusinessID: testBusinessID,
		BranchID:   testBranchID,
		Specialist: domain.ProfileRef(testProfileID),
		ServiceID:  testServiceID,
		StartDate:  time.Date(2025, 3, 8, 0, 0, 0, 0, loc),
		EndDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, loc),
	})
	require.NoError(t, err)

	require.Len(t, days, 1)
	assert.Equal(t, "2025-03-10", days[0].Date.In(loc).Format(domain.DateFormat))
	assert.Equal(t, 10, days[0].AvailableSlots)
	assert.Equal(t, types.TimeString("10:00"), days[0].Slots[0].StartTime)
}

func TestGenerateAvailableSlots_DSTDayOccupiedByWallClock(t *testing.T) {
	f, loc := newYorkFixture(t)
	f.branches[testBranchID].BusinessHours["sunday"] = domain.DayHours{Window: domain.WorkingWindow{Start: "09:00", End: "17:00"}}
	dst := time.Date(2025, 3, 9, 0, 0, 0, 0, loc)
	f.appointments.items = []*domain.Appointment{{
		SpecialistID: testUserID,
		StartTime:    time.Date(2025, 3, 9, 10, 0, 0, 0, loc),
		EndTime:      time.Date(2025, 3, 9, 11, 0, 0, 0, loc),
		Status:       domain.StatusConfirmed,
	}}

	result, err := f.service().GenerateAvailableSlots(context.Background(), slotsRequest(dst))
	require.NoError(t, err)

	assert.Equal(t, 16, result.TotalSlots)
	assert.Equal(t, 14, result.AvailableSlots)
	for _, s := range result.Slots {
		assert.False(t, s.Overlaps("10:00", "11:00"), s.StartTime)
	}
	assert.Equal(t, types.TimeString("09:00"), result.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("09:30"), result.Slots[1].StartTime)

	ok, err := f.service().ValidateSlotAvailability(context.Background(), &ValidateRequest{
		BusinessID: testBusinessID,
		BranchID:   testBranchID,
		Specialist: domain.UserRef(testUserID),
		ServiceID:  testServiceID,
		StartTime:  time.Date(2025, 3, 9, 11, 0, 0, 0, loc),
		EndTime:    time.Date(2025, 3, 9, 11, 30, 0, 0, loc),
	})
	require.NoError(t, err)
	assert.True(t, ok)
}
