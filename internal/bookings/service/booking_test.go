package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	bookingserrors "quickcourt/internal/bookings/errors"
	"quickcourt/internal/bookings/validator"
	"quickcourt/pkg/config"
	mongotx "quickcourt/pkg/db/mongo"
	apperrors "quickcourt/pkg/errors"
	"quickcourt/pkg/logger"
	"quickcourt/pkg/model"
	"quickcourt/pkg/timeslot"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	testCourtID  = "64f1b2a3c4d5e6f7a8b9c0d1"
	testVenueID  = "64f1b2a3c4d5e6f7a8b9c0d2"
	testUserID   = "user-1"
	testOwnerID  = "owner-1"
	otherCourtID = "64f1b2a3c4d5e6f7a8b9c0d3"
)

func newTestConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:                   log,
		ReadTimeout:           5 * time.Second,
		WriteTimeout:          5 * time.Second,
		DefaultSlotMinutes:    60,
		MinSlotMinutes:        30,
		MaxSlotMinutes:        240,
		SlotLockTTL:           10 * time.Second,
		MaxAdvanceBookingDays: 90,
	}
}

func futureDate() string {
	return time.Now().UTC().AddDate(0, 0, 7).Format(timeslot.DateLayout)
}

func pastDate() string {
	return time.Now().UTC().AddDate(0, 0, -7).Format(timeslot.DateLayout)
}

// fakeBookingRepo keeps bookings in memory and mirrors the overlap query the
// real collection runs, so the coordinator's in-transaction re-check behaves
// the same way it does against the database.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*model.Booking

	createErr error
	findErr   error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *model.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if booking.ID == "" {
		booking.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id string) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingserrors.ErrNotFound
}

func (f *fakeBookingRepo) FindOverlapping(_ context.Context, courtID string, date string, rng timeslot.Range) ([]*model.Booking, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Booking
	for _, b := range f.bookings {
		if b.CourtID != courtID || b.Date != date {
			continue
		}
		if !model.IsActiveStatus(b.Status) {
			continue
		}
		if b.StartMinute < rng.End && b.EndMinute > rng.Start {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindByCourtAndDate(_ context.Context, courtID string, date string, _ int, _ int64) ([]*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Booking
	for _, b := range f.bookings {
		if b.CourtID == courtID && b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByCourtAndDate(ctx context.Context, courtID string, date string) (int64, error) {
	found, err := f.FindByCourtAndDate(ctx, courtID, date, 0, 0)
	return int64(len(found)), err
}

func (f *fakeBookingRepo) FindByUser(_ context.Context, userID string, _ int, _ int64) ([]*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	found, err := f.FindByUser(ctx, userID, 0, 0)
	return int64(len(found)), err
}

func (f *fakeBookingRepo) CountActiveByCourt(_ context.Context, courtID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, b := range f.bookings {
		if b.CourtID == courtID && model.IsActiveStatus(b.Status) {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id string, status string, fromStatuses []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID != id {
			continue
		}
		for _, from := range fromStatuses {
			if b.Status == from {
				b.Status = status
				b.UpdatedAt = time.Now().UTC()
				return nil
			}
		}
		return bookingserrors.ErrNotFound
	}
	return bookingserrors.ErrNotFound
}

func (f *fakeBookingRepo) ExecuteTransaction(_ context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func (f *fakeBookingRepo) EnsureIndexes(_ context.Context) error {
	return nil
}

// fakeSlotLockRepo enforces lock exclusivity the way the unique _id index
// does: a second Create for a held lock fails with a duplicate key error.
type fakeSlotLockRepo struct {
	mu   sync.Mutex
	held map[string]bool
}

func newFakeSlotLockRepo() *fakeSlotLockRepo {
	return &fakeSlotLockRepo{held: make(map[string]bool)}
}

func duplicateKeyErr() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
}

func (f *fakeSlotLockRepo) Create(_ context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.held[lock.ID] {
		return nil, duplicateKeyErr()
	}
	f.held[lock.ID] = true
	return lock, nil
}

func (f *fakeSlotLockRepo) Delete(_ context.Context, lockID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.held, lockID)
	return nil
}

func (f *fakeSlotLockRepo) EnsureIndexes(_ context.Context) error {
	return nil
}

func (f *fakeSlotLockRepo) heldCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.held)
}

type fakeCatalog struct {
	courts map[string]*model.Court
	venues map[string]*model.Venue
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		courts: map[string]*model.Court{
			testCourtID: {
				ID:           testCourtID,
				VenueID:      testVenueID,
				Name:         "Center Court",
				Sport:        "badminton",
				PricePerHour: 20,
				OpenTime:     "08:00",
				CloseTime:    "22:00",
				Active:       true,
			},
		},
		venues: map[string]*model.Venue{
			testVenueID: {
				ID:      testVenueID,
				Name:    "Riverside Sports Hub",
				City:    "Pune",
				Address: "12 River Road",
				OwnerID: testOwnerID,
			},
		},
	}
}

func (f *fakeCatalog) FindCourtByID(_ context.Context, id string) (*model.Court, error) {
	court, ok := f.courts[id]
	if !ok {
		return nil, bookingserrors.ErrCourtNotFound
	}
	copied := *court
	return &copied, nil
}

func (f *fakeCatalog) FindVenueByID(_ context.Context, id string) (*model.Venue, error) {
	venue, ok := f.venues[id]
	if !ok {
		return nil, bookingserrors.ErrVenueNotFound
	}
	copied := *venue
	return &copied, nil
}

type testHarness struct {
	repo    *fakeBookingRepo
	locks   *fakeSlotLockRepo
	catalog *fakeCatalog
	svc     BookingService
}

func newTestHarness() *testHarness {
	cfg := newTestConfig()
	repo := &fakeBookingRepo{}
	locks := newFakeSlotLockRepo()
	catalog := newFakeCatalog()
	svc := NewBookingService(
		repo,
		locks,
		catalog,
		validator.NewBookingValidator(cfg.Log),
		nil,
		nil,
		cfg,
	)
	return &testHarness{repo: repo, locks: locks, catalog: catalog, svc: svc}
}

func newBookingRequest(date, start, end string) *model.Booking {
	return &model.Booking{
		CourtID: testCourtID,
		Date:    date,
		Start:   start,
		End:     end,
	}
}

func userActor() model.Actor {
	return model.Actor{UserID: testUserID, Role: model.RoleUser}
}

func assertAppCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}

func TestBookingCreate(t *testing.T) {
	h := newTestHarness()
	booking := newBookingRequest(futureDate(), "10:00", "11:00")

	if err := h.svc.Create(context.Background(), userActor(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.ID == "" {
		t.Error("expected booking ID to be assigned")
	}
	if booking.UserID != testUserID {
		t.Errorf("expected booking attributed to %s, got %s", testUserID, booking.UserID)
	}
	if booking.Status != model.StatusConfirmed {
		t.Errorf("expected status confirmed, got %s", booking.Status)
	}
	if booking.StartMinute != 600 || booking.EndMinute != 660 {
		t.Errorf("minute range = [%d, %d), want [600, 660)", booking.StartMinute, booking.EndMinute)
	}
	if h.locks.heldCount() != 0 {
		t.Error("slot lock was not released after a successful create")
	}

	stored, err := h.repo.FindByID(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("booking not persisted: %v", err)
	}
	if stored.Date != booking.Date {
		t.Errorf("stored date = %s, want %s", stored.Date, booking.Date)
	}
}

func TestBookingCreate_Unauthenticated(t *testing.T) {
	h := newTestHarness()
	err := h.svc.Create(context.Background(), model.Actor{}, newBookingRequest(futureDate(), "10:00", "11:00"))
	assertAppCode(t, err, apperrors.CodeUnauthorized)
}

func TestBookingCreate_OnBehalfOfAnotherUser(t *testing.T) {
	h := newTestHarness()

	booking := newBookingRequest(futureDate(), "10:00", "11:00")
	booking.UserID = "someone-else"
	err := h.svc.Create(context.Background(), userActor(), booking)
	assertAppCode(t, err, apperrors.CodeForbidden)

	// Admins may book for any user.
	adminBooking := newBookingRequest(futureDate(), "12:00", "13:00")
	adminBooking.UserID = "someone-else"
	admin := model.Actor{UserID: "admin-1", Role: model.RoleAdmin}
	if err := h.svc.Create(context.Background(), admin, adminBooking); err != nil {
		t.Fatalf("admin should book on behalf of another user: %v", err)
	}
	if adminBooking.UserID != "someone-else" {
		t.Errorf("booking owner = %s, want someone-else", adminBooking.UserID)
	}
}

func TestBookingCreate_InvalidTimes(t *testing.T) {
	h := newTestHarness()
	date := futureDate()

	tests := []struct {
		name       string
		start, end string
	}{
		{"end before start", "11:00", "10:00"},
		{"zero length", "10:00", "10:00"},
		{"malformed start", "10am", "11:00"},
		{"malformed end", "10:00", "25:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.svc.Create(context.Background(), userActor(), newBookingRequest(date, tt.start, tt.end))
			assertAppCode(t, err, apperrors.CodeInvalidRange)
		})
	}
}

func TestBookingCreate_BookingWindow(t *testing.T) {
	h := newTestHarness()

	err := h.svc.Create(context.Background(), userActor(), newBookingRequest(pastDate(), "10:00", "11:00"))
	assertAppCode(t, err, apperrors.CodeInvalidRange)

	beyondHorizon := time.Now().UTC().AddDate(0, 0, 120).Format(timeslot.DateLayout)
	err = h.svc.Create(context.Background(), userActor(), newBookingRequest(beyondHorizon, "10:00", "11:00"))
	assertAppCode(t, err, apperrors.CodeInvalidRange)
}

func TestBookingCreate_UnknownCourt(t *testing.T) {
	h := newTestHarness()
	booking := newBookingRequest(futureDate(), "10:00", "11:00")
	booking.CourtID = otherCourtID
	err := h.svc.Create(context.Background(), userActor(), booking)
	assertAppCode(t, err, apperrors.CodeNotFound)
}

func TestBookingCreate_InactiveCourt(t *testing.T) {
	h := newTestHarness()
	h.catalog.courts[testCourtID].Active = false

	err := h.svc.Create(context.Background(), userActor(), newBookingRequest(futureDate(), "10:00", "11:00"))
	assertAppCode(t, err, apperrors.CodeConflict)
}

func TestBookingCreate_OutsideOperatingHours(t *testing.T) {
	h := newTestHarness()

	err := h.svc.Create(context.Background(), userActor(), newBookingRequest(futureDate(), "07:00", "08:00"))
	assertAppCode(t, err, apperrors.CodeInvalidRange)

	err = h.svc.Create(context.Background(), userActor(), newBookingRequest(futureDate(), "21:30", "22:30"))
	assertAppCode(t, err, apperrors.CodeInvalidRange)
}

func TestBookingCreate_OverlapConflict(t *testing.T) {
	h := newTestHarness()
	date := futureDate()

	if err := h.svc.Create(context.Background(), userActor(), newBookingRequest(date, "10:00", "11:00")); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	overlapping := []struct {
		name       string
		start, end string
	}{
		{"identical", "10:00", "11:00"},
		{"starts inside", "10:30", "11:30"},
		{"ends inside", "09:30", "10:30"},
		{"envelops", "09:00", "12:00"},
	}

	for _, tt := range overlapping {
		t.Run(tt.name, func(t *testing.T) {
			err := h.svc.Create(context.Background(), userActor(), newBookingRequest(date, tt.start, tt.end))
			assertAppCode(t, err, apperrors.CodeConflict)
		})
	}
}

func TestBookingCreate_TouchingSlotsDoNotConflict(t *testing.T) {
	h := newTestHarness()
	date := futureDate()

	if err := h.svc.Create(context.Background(), userActor(), newBookingRequest(date, "10:00", "11:00")); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	// [11:00, 12:00) shares only the 11:00 boundary with [10:00, 11:00).
	if err := h.svc.Create(context.Background(), userActor(), newBookingRequest(date, "11:00", "12:00")); err != nil {
		t.Fatalf("adjacent slot should not conflict: %v", err)
	}
	if err := h.svc.Create(context.Background(), userActor(), newBookingRequest(date, "09:00", "10:00")); err != nil {
		t.Fatalf("preceding adjacent slot should not conflict: %v", err)
	}
}

func TestBookingCreate_CancelledBookingDoesNotBlock(t *testing.T) {
	h := newTestHarness()
	date := futureDate()

	first := newBookingRequest(date, "10:00", "11:00")
	if err := h.svc.Create(context.Background(), userActor(), first); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	if _, err := h.svc.Cancel(context.Background(), userActor(), first.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if err := h.svc.Create(context.Background(), userActor(), newBookingRequest(date, "10:00", "11:00")); err != nil {
		t.Fatalf("slot should be free again after cancellation: %v", err)
	}
}

func TestBookingCreate_SlotLockHeld(t *testing.T) {
	h := newTestHarness()
	date := futureDate()

	lockID := fmt.Sprintf("slot_lock_%s_%s", testCourtID, date)
	if _, err := h.locks.Create(context.Background(), &model.SlotLock{ID: lockID}); err != nil {
		t.Fatalf("failed to pre-hold lock: %v", err)
	}

	err := h.svc.Create(context.Background(), userActor(), newBookingRequest(date, "10:00", "11:00"))
	assertAppCode(t, err, apperrors.CodeConflict)

	if len(h.repo.bookings) != 0 {
		t.Error("no booking should be written while the slot lock is held")
	}
}

func TestBookingCreate_ConcurrentSameSlot(t *testing.T) {
	h := newTestHarness()
	date := futureDate()

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)

	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			actor := model.Actor{UserID: fmt.Sprintf("user-%d", i), Role: model.RoleUser}
			errs[i] = h.svc.Create(context.Background(), actor, newBookingRequest(date, "18:00", "19:00"))
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assertAppCode(t, err, apperrors.CodeConflict)
	}

	if successes != 1 {
		t.Fatalf("expected exactly one booking to win, got %d", successes)
	}
	if len(h.repo.bookings) != 1 {
		t.Fatalf("expected one persisted booking, got %d", len(h.repo.bookings))
	}
}

func TestBookingCreate_ConcurrentOverlappingRanges(t *testing.T) {
	h := newTestHarness()
	date := futureDate()

	// Different start minutes, overlapping ranges. Both requests must contend
	// on the same lock even though neither shares the other's start.
	ranges := [][2]string{{"18:00", "20:00"}, {"19:00", "21:00"}}
	errs := make([]error, len(ranges))
	var wg sync.WaitGroup
	wg.Add(len(ranges))

	for i, rng := range ranges {
		go func(i int, start, end string) {
			defer wg.Done()
			actor := model.Actor{UserID: fmt.Sprintf("user-%d", i), Role: model.RoleUser}
			errs[i] = h.svc.Create(context.Background(), actor, newBookingRequest(date, start, end))
		}(i, rng[0], rng[1])
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assertAppCode(t, err, apperrors.CodeConflict)
	}

	if successes != 1 {
		t.Fatalf("expected exactly one overlapping booking to win, got %d", successes)
	}
	if len(h.repo.bookings) != 1 {
		t.Fatalf("expected one persisted booking, got %d", len(h.repo.bookings))
	}
}

func TestBookingCancel(t *testing.T) {
	h := newTestHarness()
	booking := newBookingRequest(futureDate(), "10:00", "11:00")
	if err := h.svc.Create(context.Background(), userActor(), booking); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	cancelled, err := h.svc.Cancel(context.Background(), userActor(), booking.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelled.Status != model.StatusCancelled {
		t.Errorf("returned status = %s, want %s", cancelled.Status, model.StatusCancelled)
	}

	stored, err := h.repo.FindByID(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("booking disappeared: %v", err)
	}
	if stored.Status != model.StatusCancelled {
		t.Errorf("stored status = %s, want %s", stored.Status, model.StatusCancelled)
	}
}

func TestBookingCancel_AlreadyCancelled(t *testing.T) {
	h := newTestHarness()
	booking := newBookingRequest(futureDate(), "10:00", "11:00")
	if err := h.svc.Create(context.Background(), userActor(), booking); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	if _, err := h.svc.Cancel(context.Background(), userActor(), booking.ID); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}

	_, err := h.svc.Cancel(context.Background(), userActor(), booking.ID)
	assertAppCode(t, err, apperrors.CodeInvalidState)
}

func TestBookingCancel_Concurrent(t *testing.T) {
	h := newTestHarness()
	booking := newBookingRequest(futureDate(), "10:00", "11:00")
	if err := h.svc.Create(context.Background(), userActor(), booking); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	const attempts = 4
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)

	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = h.svc.Cancel(context.Background(), userActor(), booking.ID)
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assertAppCode(t, err, apperrors.CodeInvalidState)
	}

	if successes != 1 {
		t.Fatalf("expected exactly one cancel to win, got %d", successes)
	}

	stored, err := h.repo.FindByID(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("booking disappeared: %v", err)
	}
	if stored.Status != model.StatusCancelled {
		t.Errorf("stored status = %s, want %s", stored.Status, model.StatusCancelled)
	}
}

func TestBookingCancel_CompletedBooking(t *testing.T) {
	h := newTestHarness()

	// Seeded directly: a confirmed booking whose slot already ended reads as
	// completed, and completed is terminal.
	past := &model.Booking{
		ID:          primitive.NewObjectID().Hex(),
		CourtID:     testCourtID,
		UserID:      testUserID,
		Date:        pastDate(),
		Start:       "10:00",
		End:         "11:00",
		StartMinute: 600,
		EndMinute:   660,
		Status:      model.StatusConfirmed,
	}
	h.repo.bookings = append(h.repo.bookings, past)

	_, err := h.svc.Cancel(context.Background(), userActor(), past.ID)
	assertAppCode(t, err, apperrors.CodeInvalidState)
}

func TestBookingCancel_Authorization(t *testing.T) {
	seed := func(t *testing.T) (*testHarness, *model.Booking) {
		t.Helper()
		h := newTestHarness()
		booking := newBookingRequest(futureDate(), "10:00", "11:00")
		if err := h.svc.Create(context.Background(), userActor(), booking); err != nil {
			t.Fatalf("seed booking failed: %v", err)
		}
		return h, booking
	}

	t.Run("stranger is rejected", func(t *testing.T) {
		h, booking := seed(t)
		stranger := model.Actor{UserID: "user-99", Role: model.RoleUser}
		_, err := h.svc.Cancel(context.Background(), stranger, booking.ID)
		assertAppCode(t, err, apperrors.CodeForbidden)
	})

	t.Run("unrelated owner is rejected", func(t *testing.T) {
		h, booking := seed(t)
		unrelated := model.Actor{UserID: "owner-99", Role: model.RoleOwner}
		_, err := h.svc.Cancel(context.Background(), unrelated, booking.ID)
		assertAppCode(t, err, apperrors.CodeForbidden)
	})

	t.Run("venue owner may cancel", func(t *testing.T) {
		h, booking := seed(t)
		venueOwner := model.Actor{UserID: testOwnerID, Role: model.RoleOwner}
		if _, err := h.svc.Cancel(context.Background(), venueOwner, booking.ID); err != nil {
			t.Fatalf("venue owner should cancel bookings on their courts: %v", err)
		}
	})

	t.Run("admin may cancel", func(t *testing.T) {
		h, booking := seed(t)
		admin := model.Actor{UserID: "admin-1", Role: model.RoleAdmin}
		if _, err := h.svc.Cancel(context.Background(), admin, booking.ID); err != nil {
			t.Fatalf("admin should cancel any booking: %v", err)
		}
	})
}

func TestBookingGetByID(t *testing.T) {
	h := newTestHarness()

	_, err := h.svc.GetByID(context.Background(), "")
	assertAppCode(t, err, apperrors.CodeInvalidInput)

	_, err = h.svc.GetByID(context.Background(), primitive.NewObjectID().Hex())
	assertAppCode(t, err, apperrors.CodeNotFound)
}

func TestBookingGetByID_DerivesCompleted(t *testing.T) {
	h := newTestHarness()

	past := &model.Booking{
		ID:          primitive.NewObjectID().Hex(),
		CourtID:     testCourtID,
		UserID:      testUserID,
		Date:        pastDate(),
		Start:       "10:00",
		End:         "11:00",
		StartMinute: 600,
		EndMinute:   660,
		Status:      model.StatusConfirmed,
	}
	h.repo.bookings = append(h.repo.bookings, past)

	got, err := h.svc.GetByID(context.Background(), past.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != model.StatusCompleted {
		t.Errorf("status = %s, want %s", got.Status, model.StatusCompleted)
	}
}

func TestBookingListByCourtAndDate(t *testing.T) {
	h := newTestHarness()
	date := futureDate()

	for _, slot := range [][2]string{{"10:00", "11:00"}, {"14:00", "15:00"}} {
		if err := h.svc.Create(context.Background(), userActor(), newBookingRequest(date, slot[0], slot[1])); err != nil {
			t.Fatalf("seed booking failed: %v", err)
		}
	}

	bookings, count, err := h.svc.ListByCourtAndDate(context.Background(), testCourtID, date, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 || len(bookings) != 2 {
		t.Fatalf("got %d bookings (count %d), want 2", len(bookings), count)
	}

	// Round trip preserves the slot exactly.
	first := bookings[0]
	if first.Date != date || first.Start != "10:00" || first.End != "11:00" {
		t.Errorf("listed booking = %s %s-%s, want %s 10:00-11:00", first.Date, first.Start, first.End, date)
	}
	if first.Status != model.StatusConfirmed {
		t.Errorf("listed status = %s, want %s", first.Status, model.StatusConfirmed)
	}

	_, _, err = h.svc.ListByCourtAndDate(context.Background(), "", date, 10, 0)
	assertAppCode(t, err, apperrors.CodeInvalidInput)

	_, _, err = h.svc.ListByCourtAndDate(context.Background(), testCourtID, "not-a-date", 10, 0)
	assertAppCode(t, err, apperrors.CodeInvalidInput)
}

func TestBookingListByUser(t *testing.T) {
	h := newTestHarness()
	date := futureDate()

	if err := h.svc.Create(context.Background(), userActor(), newBookingRequest(date, "10:00", "11:00")); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	other := model.Actor{UserID: "user-2", Role: model.RoleUser}
	if err := h.svc.Create(context.Background(), other, newBookingRequest(date, "12:00", "13:00")); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	bookings, count, err := h.svc.ListByUser(context.Background(), userActor(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 || len(bookings) != 1 {
		t.Fatalf("got %d bookings (count %d), want 1", len(bookings), count)
	}
	if bookings[0].UserID != testUserID {
		t.Errorf("listed booking belongs to %s, want %s", bookings[0].UserID, testUserID)
	}

	_, _, err = h.svc.ListByUser(context.Background(), model.Actor{}, 10, 0)
	assertAppCode(t, err, apperrors.CodeUnauthorized)
}
