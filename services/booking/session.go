package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bookingflow/models"
	"bookingflow/services/cache"
	"bookingflow/services/flow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SessionNamespace  = "booking_session"
	DefaultSessionTTL = 30 * time.Minute

	MinPartySize = 1
	MaxPartySize = 20
)

const (
	messageConfirmed = "Booking confirmed! You will receive a confirmation email."
	messageRequested = "Your request has been sent! You will receive a confirmation once it has been approved."
	messageFailed    = "Booking failed. Please try again."
)

// SessionOptions tunes a SessionService. Zero values select the defaults.
type SessionOptions struct {
	TTL    time.Duration
	Clock  func() time.Time
	NewID  func() string
	Logger *zap.Logger
}

// SessionService owns the navigation state of every open widget. Sessions
// live in the session TTL cache; each write refreshes their lifetime.
type SessionService struct {
	api          API
	configs      *ConfigCache
	availability *AvailabilityService
	prefetcher   Prefetcher
	sessions     *cache.TTLCache[models.BookingSession]
	now          func() time.Time
	newID        func() string
	logger       *zap.Logger

	locksMu sync.Mutex
	locks   map[string]*sessionLock
}

// sessionLock serialises the operations on one session. It lives in the
// locks map only while some operation holds or waits for it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewSessionService wires a SessionService. prefetcher may be nil.
func NewSessionService(api API, configs *ConfigCache, availability *AvailabilityService, prefetcher Prefetcher, store cache.Store, opts SessionOptions) *SessionService {
	if opts.TTL <= 0 {
		opts.TTL = DefaultSessionTTL
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &SessionService{
		api:          api,
		configs:      configs,
		availability: availability,
		prefetcher:   prefetcher,
		sessions:     cache.NewTTLCache[models.BookingSession](store, SessionNamespace, opts.TTL, opts.Clock, opts.Logger),
		now:          opts.Clock,
		newID:        opts.NewID,
		logger:       opts.Logger,
		locks:        make(map[string]*sessionLock),
	}
}

// Open starts a session for the business named by id. A config whose flow
// cannot be normalized still opens a session; it carries the flow error and
// shows no steps. Open fails only when the session cannot be stored.
func (s *SessionService) Open(ctx context.Context, id models.Identifier) (*models.SessionView, error) {
	cfg, usedDefault := s.configs.Load(ctx, id)
	for _, w := range cfg.FlowWarnings {
		s.logger.Warn("booking flow warning", zap.String("identifier", id.Key()), zap.String("warning", w))
	}

	sess := models.BookingSession{
		SessionID:  s.newID(),
		Identifier: id,
		Config:     cfg,
		Form:       models.NewFormData(),
		CreatedAt:  s.now(),
	}

	steps, err := flow.Normalize(cfg.FlowSteps, cfg.FlowStartStepID)
	if err != nil {
		sess.FlowError = ErrorMessage(err)
		s.logger.Warn("booking flow unusable", zap.String("identifier", id.Key()), zap.Error(err))
	} else {
		sess.Steps = steps
	}

	if err := s.save(ctx, &sess); err != nil {
		return nil, err
	}
	s.logger.Info("booking session opened",
		zap.String("sessionId", sess.SessionID),
		zap.String("identifier", id.Key()),
		zap.Bool("defaultConfig", usedDefault))
	return s.view(sess), nil
}

// Get returns the current view of a session.
func (s *SessionService) Get(ctx context.Context, sessionID string) (*models.SessionView, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// ChooseOption answers the reservation-type entry step and enters the
// option's branch.
func (s *SessionService) ChooseOption(ctx context.Context, sessionID, optionID string) (*models.SessionView, error) {
	return s.update(ctx, sessionID, func(sess *models.BookingSession, nav *flow.Navigator) error {
		cur, ok := nav.Current()
		if !ok || !nav.ActiveBranch().IsRoot() || cur.Type != models.StepReservationType {
			return flow.NewValidationError("no option can be chosen at this step")
		}
		if _, ok := cur.Option(optionID); !ok {
			return flow.NewValidationError("unknown option: " + optionID)
		}
		sess.Form.ReservationType = optionID
		nav.EnterBranch(models.OptionBranch(optionID))
		return nil
	})
}

// UpdateForm applies a partial form update. The update is all or nothing:
// one invalid field rejects the whole patch. Changing the date or resource
// drops the selected slot and outdates in-flight slot loads.
func (s *SessionService) UpdateForm(ctx context.Context, sessionID string, patch models.FormPatch) (*models.SessionView, error) {
	var prefetch *models.AvailabilityRequest

	view, err := s.update(ctx, sessionID, func(sess *models.BookingSession, nav *flow.Navigator) error {
		form := sess.Form
		slotInputsChanged := false
		dateChanged := false

		if patch.Date != nil && *patch.Date != form.Date {
			if *patch.Date != "" {
				if err := ValidateDate(sess.Config, *patch.Date, s.now()); err != nil {
					return err
				}
			}
			form.Date = *patch.Date
			slotInputsChanged, dateChanged = true, true
		}

		if patch.ResourceID != nil && *patch.ResourceID != resourceID(form.Resource) {
			if *patch.ResourceID == "" {
				form.Resource = nil
			} else {
				r, ok := sess.Config.ActiveResource(*patch.ResourceID)
				if !ok {
					return flow.NewValidationError("the selected option is not available")
				}
				form.Resource = &r
			}
			slotInputsChanged = true
		}

		if slotInputsChanged {
			form.Slot = nil
			sess.AvailableSlots = nil
			sess.SlotsGeneration++
		}

		if patch.Slot != nil {
			if patch.Slot.StartTime == "" {
				form.Slot = nil
			} else {
				if _, err := parseClock(patch.Slot.StartTime); err != nil {
					return flow.NewValidationError("the selected time is not valid")
				}
				slot := *patch.Slot
				form.Slot = &slot
			}
		}

		if patch.PartySize != nil {
			if *patch.PartySize < MinPartySize || *patch.PartySize > MaxPartySize {
				return flow.NewValidationError(fmt.Sprintf("party size must be between %d and %d", MinPartySize, MaxPartySize))
			}
			form.PartySize = *patch.PartySize
		}

		if patch.Name != nil {
			form.Name = *patch.Name
		}
		if patch.Email != nil {
			form.Email = *patch.Email
		}
		if patch.Phone != nil {
			form.Phone = *patch.Phone
		}
		if patch.Notes != nil {
			form.Notes = *patch.Notes
		}

		if len(patch.CustomFields) > 0 {
			fields := make(map[string]string, len(form.CustomFields)+len(patch.CustomFields))
			for k, v := range form.CustomFields {
				fields[k] = v
			}
			for k, v := range patch.CustomFields {
				if v == "" {
					delete(fields, k)
					continue
				}
				fields[k] = v
			}
			form.CustomFields = fields
		}

		sess.Form = form

		if dateChanged && form.Date != "" {
			cur, ok := nav.Current()
			if ok && cur.Type == models.StepCalendar && (form.Resource != nil || !sess.Config.RequiresResource()) {
				prefetch = &models.AvailabilityRequest{
					Identifier: sess.Identifier,
					Date:       form.Date,
					ResourceID: resourceID(form.Resource),
				}
			}
		}
		return nil
	})

	if err == nil && prefetch != nil && s.prefetcher != nil {
		s.prefetcher.Prefetch(ctx, prefetch.Identifier, prefetch.Date, prefetch.ResourceID)
	}
	return view, err
}

// Next advances past the current step if its gate passes.
func (s *SessionService) Next(ctx context.Context, sessionID string) (*models.SessionView, error) {
	return s.update(ctx, sessionID, func(sess *models.BookingSession, nav *flow.Navigator) error {
		_, err := nav.Advance(sess.Form)
		return err
	})
}

// Back retreats one step. Leaving a branch forgets the chosen option.
func (s *SessionService) Back(ctx context.Context, sessionID string) (*models.SessionView, error) {
	return s.update(ctx, sessionID, func(sess *models.BookingSession, nav *flow.Navigator) error {
		if nav.Retreat() {
			sess.Form.ReservationType = ""
		}
		return nil
	})
}

// LoadSlots fetches availability for the selected date and resource. The
// session is not locked during the fetch; if the date or resource changed
// meanwhile the result is dropped.
func (s *SessionService) LoadSlots(ctx context.Context, sessionID string) (*models.SessionView, error) {
	unlock := s.lock(sessionID)
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		unlock()
		return nil, err
	}
	if sess.FlowError != "" {
		unlock()
		return nil, flow.NewConfigurationError(sess.FlowError)
	}
	if sess.Form.Date == "" || (sess.Config.RequiresResource() && sess.Form.Resource == nil) {
		unlock()
		return s.view(sess), nil
	}

	generation := sess.SlotsGeneration
	cfg := sess.Config
	req := models.AvailabilityRequest{
		Identifier: sess.Identifier,
		Date:       sess.Form.Date,
		ResourceID: resourceID(sess.Form.Resource),
	}
	unlock()

	slots := s.availability.Slots(ctx, req, &cfg)

	unlock = s.lock(sessionID)
	defer unlock()
	sess, err = s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.SlotsGeneration != generation {
		s.logger.Debug("discarding stale availability",
			zap.String("sessionId", sessionID),
			zap.Uint64("generation", generation),
			zap.Uint64("current", sess.SlotsGeneration))
		return s.view(sess), nil
	}
	sess.AvailableSlots = slots
	if err := s.save(ctx, &sess); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// Submit sends the booking. Temporal guards run before any network call. On
// success the session is reset and carries the success message; on a
// backend rejection the state is kept so the customer can retry.
func (s *SessionService) Submit(ctx context.Context, sessionID string) (*models.SessionView, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.FlowError != "" {
		return nil, flow.NewConfigurationError(sess.FlowError)
	}
	if err := CheckTemporalGuards(sess.Form, s.now()); err != nil {
		return nil, err
	}
	nav := s.navigator(sess)
	if !nav.IsTerminal() {
		return nil, flow.NewValidationError("complete every step before confirming the booking")
	}

	payload := BuildPayload(nav.Traversed(), sess.Form, sess.Identifier)
	res, err := s.api.CreateBooking(ctx, payload)
	if err != nil {
		msg := messageFailed
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			msg = apiErr.Error()
		}
		s.logger.Warn("booking submission failed", zap.String("sessionId", sessionID), zap.Error(err))
		return nil, NewSubmissionError(msg, err)
	}
	if !res.Success && res.Error != "" {
		return nil, NewSubmissionError(res.Error, nil)
	}

	if _, err := s.availability.InvalidateDate(ctx, sess.Identifier, sess.Form.Date); err != nil {
		s.logger.Warn("invalidate availability after booking", zap.String("identifier", sess.Identifier.Key()), zap.Error(err))
	}
	s.logger.Info("booking submitted",
		zap.String("sessionId", sessionID),
		zap.String("identifier", sess.Identifier.Key()),
		zap.String("date", payload.BookingDate),
		zap.String("startTime", payload.StartTime))

	sess.SuccessMessage = messageConfirmed
	if sess.Config.RequireApproval {
		sess.SuccessMessage = messageRequested
	}
	sess.Navigation = models.NavigationState{}
	sess.Form = models.NewFormData()
	sess.AvailableSlots = nil
	sess.SlotsGeneration++
	if err := s.save(ctx, &sess); err != nil {
		// The booking exists; only the reset view is lost.
		s.logger.Warn("reset session after booking", zap.String("sessionId", sessionID), zap.Error(err))
	}
	return s.view(sess), nil
}

// Close discards a session. Closing an unknown session is not an error.
func (s *SessionService) Close(ctx context.Context, sessionID string) error {
	unlock := s.lock(sessionID)
	defer unlock()

	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, cache.ErrNotFound) {
		return fmt.Errorf("close session %s: %w", sessionID, err)
	}
	return nil
}

// ValidateDate checks a calendar choice against the config: not in the past,
// not today unless same-day booking is allowed, and not beyond the booking
// horizon.
func ValidateDate(cfg models.BookingConfig, date string, now time.Time) error {
	day, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return flow.NewValidationError("dates must be formatted as YYYY-MM-DD")
	}
	today := startOfDay(now)
	switch {
	case day.Before(today):
		return flow.NewValidationError("the selected date is in the past")
	case day.Equal(today) && !cfg.AllowSameDayBooking:
		return flow.NewValidationError("same-day bookings are not possible")
	case day.After(today.AddDate(0, 0, cfg.MaxAdvanceDays())):
		return flow.NewValidationError(fmt.Sprintf("bookings can be made at most %d days ahead", cfg.MaxAdvanceDays()))
	}
	return nil
}

func (s *SessionService) update(ctx context.Context, sessionID string, fn func(*models.BookingSession, *flow.Navigator) error) (*models.SessionView, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.FlowError != "" {
		return nil, flow.NewConfigurationError(sess.FlowError)
	}

	sess.SuccessMessage = ""
	nav := s.navigator(sess)
	if err := fn(&sess, nav); err != nil {
		return nil, err
	}
	sess.Navigation = nav.State()
	if err := s.save(ctx, &sess); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// lock acquires the session's mutex. The returned func releases it and
// forgets the mutex once nobody else holds or awaits it, so abandoned
// sessions leave nothing behind.
func (s *SessionService) lock(sessionID string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		s.locks[sessionID] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, sessionID)
		}
		s.locksMu.Unlock()
	}
}

func (s *SessionService) heldLocks() int {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	return len(s.locks)
}

func (s *SessionService) load(ctx context.Context, sessionID string) (models.BookingSession, error) {
	sess, ok := s.sessions.Get(ctx, sessionID)
	if !ok {
		return models.BookingSession{}, newError(CodeSessionNotFound, "booking session not found or expired", nil)
	}
	return sess, nil
}

func (s *SessionService) save(ctx context.Context, sess *models.BookingSession) error {
	sess.UpdatedAt = s.now()
	if err := s.sessions.Set(ctx, sess.SessionID, *sess); err != nil {
		return fmt.Errorf("save session %s: %w", sess.SessionID, err)
	}
	return nil
}

func (s *SessionService) navigator(sess models.BookingSession) *flow.Navigator {
	return flow.RestoreNavigator(sess.Steps, sess.Config.FlowStartStepID, sess.Navigation)
}

func (s *SessionService) view(sess models.BookingSession) *models.SessionView {
	nav := s.navigator(sess)
	visible := nav.Visible()
	if visible == nil {
		visible = []models.FlowStep{}
	}

	v := &models.SessionView{
		SessionID:      sess.SessionID,
		VisibleSteps:   visible,
		Index:          nav.Index(),
		ActiveBranch:   nav.ActiveBranch(),
		IsTerminal:     nav.IsTerminal(),
		Form:           sess.Form,
		Slots:          nonNil(sess.AvailableSlots),
		FlowError:      sess.FlowError,
		SuccessMessage: sess.SuccessMessage,
		ResourceLabel:  sess.Config.ResourceLabel(),
		Resources:      sess.Config.ActiveResources(),
	}
	if cur, ok := nav.Current(); ok {
		v.CurrentStep = &cur
		v.CanAdvance = flow.CanAdvance(cur, sess.Form)
	}
	return v
}

func resourceID(r *models.Resource) string {
	if r == nil {
		return ""
	}
	return r.ID
}
