package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/internal/upload"
	"github.com/m04kA/SMC-ExamBookingService/pkg/types"
)

var errRegistryDown = errors.New("registry down")

type fakeAvailability struct {
	mu   sync.Mutex
	days map[string]domain.DayAvailability
}

func newFakeAvailability() *fakeAvailability {
	return &fakeAvailability{days: make(map[string]domain.DayAvailability)}
}

func (f *fakeAvailability) set(date time.Time, available bool, slots ...domain.TimeSlot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.days[date.Format(domain.DateFormat)] = domain.DayAvailability{Date: date, Available: available, Slots: slots}
}

func (f *fakeAvailability) GetAvailability(_ context.Context, date time.Time, _ domain.Level, _ domain.ExamOption) (domain.DayAvailability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	day, ok := f.days[date.Format(domain.DateFormat)]
	if !ok {
		return domain.DayAvailability{Date: date}, nil
	}
	return day, nil
}

type fakePricing struct{}

func (fakePricing) GetPrice(_ context.Context, option domain.ExamOption, currency domain.Currency) (float64, error) {
	o, _ := option.Info()
	c, _ := currency.Info()
	return o.BasePrice * c.Rate, nil
}

type fakeRegistry struct {
	mu       sync.Mutex
	held     map[string]string
	acquired int
	released int
	failWith error
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{held: make(map[string]string)}
}

func (r *fakeRegistry) Acquire(_ context.Context, sessionID, holdID string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.acquired++
	r.held[sessionID] = holdID
	return nil
}

func (r *fakeRegistry) Release(_ context.Context, sessionID, holdID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.held[sessionID] == holdID {
		delete(r.held, sessionID)
		r.released++
	}
	return nil
}

func (r *fakeRegistry) holding(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.held[sessionID]
	return ok
}

func (r *fakeRegistry) releases() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}

type fakeRecorder struct {
	mu    sync.Mutex
	holds map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{holds: make(map[string]int)}
}

func (r *fakeRecorder) ObserveStep(int)    {}
func (r *fakeRecorder) ObserveUpload(bool) {}

func (r *fakeRecorder) ObserveHold(ev string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.holds[ev]++
}

func (r *fakeRecorder) count(ev string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.holds[ev]
}

var (
	examDay  = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	fullDay  = time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)
	closeDay = time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
)

func slot(t string, capacity, booked int) domain.TimeSlot {
	return domain.TimeSlot{SlotID: 1, Time: types.TimeString(t), Capacity: capacity, Booked: booked, Duration: 3 * time.Hour, Location: "Hall A"}
}

// seededAvailability: examDay со свободными слотами, fullDay полностью занят, closeDay закрыт
func seededAvailability() *fakeAvailability {
	a := newFakeAvailability()
	a.set(examDay, true, slot("09:00", 20, 5), slot("14:00", 10, 10))
	a.set(fullDay, true, slot("09:00", 20, 20), slot("14:00", 10, 10))
	a.set(closeDay, false, slot("09:00", 20, 0))
	return a
}

func pdfFile() upload.File {
	content := []byte("%PDF-1.4\n%certificate")
	return upload.File{Name: "cert.pdf", ContentType: "application/pdf", Size: int64(len(content)), Content: content}
}
