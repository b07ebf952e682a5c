package booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"bookingflow/models"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// monday is 2025-03-03 14:00 UTC.
var monday = time.Date(2025, 3, 3, 14, 0, 0, 0, time.UTC)

func boolp(b bool) *bool { return &b }

// fakeBackend is an in-process public booking API.
type fakeBackend struct {
	mu sync.Mutex

	config             *models.BookingConfig
	configStatus       int
	slots              map[string][]models.TimeSlot // "<date>_<resource>"
	availabilityStatus int
	omitSlots          bool
	bookingStatus      int
	bookingResponse    models.Response
	lookup             models.BookingLookup
	lookupStatus       int
	cancelResponse     models.Response

	// availabilityHook runs inside the availability handler before it
	// answers.
	availabilityHook func(r *http.Request)

	calls    map[string]int
	queries  []string
	bookings []models.BookingPayload
	cancels  []models.CancelRequest
}

func newFakeBackend(t *testing.T) (*fakeBackend, *Client) {
	t.Helper()
	fb := &fakeBackend{
		slots:           map[string][]models.TimeSlot{},
		calls:           map[string]int{},
		bookingResponse: models.Response{Success: true},
		cancelResponse:  models.Response{Success: true},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/public/bookings/config", func(w http.ResponseWriter, r *http.Request) {
		fb.record("config", r)
		fb.mu.Lock()
		status, cfg := fb.configStatus, fb.config
		fb.mu.Unlock()
		if status != 0 {
			writeJSON(w, status, map[string]string{"error": "config unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"config": cfg})
	})
	mux.HandleFunc("GET /api/public/bookings/availability", func(w http.ResponseWriter, r *http.Request) {
		fb.record("availability", r)
		if fb.availabilityHook != nil {
			fb.availabilityHook(r)
		}
		fb.mu.Lock()
		defer fb.mu.Unlock()
		if fb.availabilityStatus != 0 {
			w.WriteHeader(fb.availabilityStatus)
			return
		}
		if fb.omitSlots {
			writeJSON(w, http.StatusOK, map[string]any{})
			return
		}
		slots := fb.slots[r.URL.Query().Get("date")+"_"+r.URL.Query().Get("resourceId")]
		if slots == nil {
			slots = []models.TimeSlot{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"slots": slots})
	})
	mux.HandleFunc("POST /api/public/bookings", func(w http.ResponseWriter, r *http.Request) {
		fb.record("create", r)
		var p models.BookingPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		fb.mu.Lock()
		defer fb.mu.Unlock()
		fb.bookings = append(fb.bookings, p)
		status := fb.bookingStatus
		if status == 0 {
			status = http.StatusCreated
		}
		writeJSON(w, status, fb.bookingResponse)
	})
	mux.HandleFunc("GET /api/public/bookings/lookup/{token}", func(w http.ResponseWriter, r *http.Request) {
		fb.record("lookup", r)
		fb.mu.Lock()
		defer fb.mu.Unlock()
		if fb.lookupStatus != 0 {
			writeJSON(w, fb.lookupStatus, map[string]any{"success": false, "error": "upstream unavailable"})
			return
		}
		if !fb.lookup.Success {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Booking not found"})
			return
		}
		writeJSON(w, http.StatusOK, fb.lookup)
	})
	mux.HandleFunc("POST /api/public/bookings/cancel/{token}", func(w http.ResponseWriter, r *http.Request) {
		fb.record("cancel", r)
		var req models.CancelRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		fb.mu.Lock()
		defer fb.mu.Unlock()
		fb.cancels = append(fb.cancels, req)
		writeJSON(w, http.StatusOK, fb.cancelResponse)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return fb, NewClient(srv.URL+"/api", srv.Client())
}

func (fb *fakeBackend) record(name string, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.calls[name]++
	fb.queries = append(fb.queries, r.URL.RawQuery)
}

func (fb *fakeBackend) count(name string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.calls[name]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// gymConfig has a reservation-type entry step choosing between personal
// training (trainer, slot, details) and a group class (party size, slot,
// details).
func gymConfig() models.BookingConfig {
	cfg := DefaultBookingConfig()
	cfg.MaxAdvanceBookingDays = 14
	cfg.CancellationWindow = 24
	cfg.Resources = append(cfg.Resources, models.Resource{ID: "trainer-3", Name: "Trainer C", Active: boolp(false)})
	cfg.FlowStartStepID = "kind"

	order := func(i int) *int { return &i }
	cfg.FlowSteps = []models.FlowStep{
		{
			ID: "kind", Type: models.StepReservationType, Order: order(0),
			Config: models.StepConfig{Options: []models.ChoiceOption{
				{ID: "pt", Label: "Personal training"},
				{ID: "class", Label: "Group class"},
			}},
		},
		{ID: "pt-date", Type: models.StepCalendar, Branch: "option:pt", Order: order(1)},
		{ID: "pt-trainer", Type: models.StepResource, Branch: "option:pt", Order: order(2)},
		{ID: "pt-time", Type: models.StepTimeSlot, Branch: "option:pt", Order: order(3)},
		{ID: "pt-info", Type: models.StepPersonalInfo, Branch: "option:pt", Order: order(4)},
		{ID: "pt-confirm", Type: models.StepConfirmation, Branch: "option:pt", Order: order(5)},
		{ID: "class-date", Type: models.StepCalendar, Branch: "option:class", Order: order(1)},
		{ID: "class-size", Type: models.StepPartySize, Branch: "option:class", Order: order(2)},
		{ID: "class-time", Type: models.StepTimeSlot, Branch: "option:class", Order: order(3)},
		{ID: "class-info", Type: models.StepPersonalInfo, Branch: "option:class", Order: order(4)},
		{ID: "class-confirm", Type: models.StepConfirmation, Branch: "option:class", Order: order(5)},
	}
	return cfg
}
