package booking

import (
	"context"
	"errors"
	"time"

	"bookingflow/models"
	"bookingflow/services/cache"

	"go.uber.org/zap"
)

const (
	AvailabilityCacheNamespace = "booking_availability_cache"
	DefaultAvailabilityTTL     = 3 * time.Minute
)

var errNoSlots = errors.New("backend returned no slot list")

// AvailabilityKey is the cache key of one availability query:
// "<identifier>_<date>_<resourceOrEmpty>".
func AvailabilityKey(id models.Identifier, date, resourceID string) string {
	return id.Key() + "_" + date + "_" + resourceID
}

// AvailabilityService answers slot queries from the cache, the backend, or
// the local slot generator, in that order.
type AvailabilityService struct {
	api    API
	cache  *cache.TTLCache[[]models.TimeSlot]
	logger *zap.Logger
}

func NewAvailabilityService(api API, store cache.Store, ttl time.Duration, clock func() time.Time, logger *zap.Logger) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultAvailabilityTTL
	}
	return &AvailabilityService{
		api:    api,
		cache:  cache.NewTTLCache[[]models.TimeSlot](store, AvailabilityCacheNamespace, ttl, clock, logger),
		logger: logger,
	}
}

// Slots never fails: a fetch failure falls back to GenerateSlots over cfg,
// and a nil cfg yields no slots.
func (s *AvailabilityService) Slots(ctx context.Context, req models.AvailabilityRequest, cfg *models.BookingConfig) []models.TimeSlot {
	key := AvailabilityKey(req.Identifier, req.Date, req.ResourceID)
	if slots, ok := s.cache.Get(ctx, key); ok {
		return nonNil(slots)
	}

	slots, err := s.fetch(ctx, req)
	if err == nil {
		_ = s.cache.Set(ctx, key, slots)
		return slots
	}

	s.logger.Warn("availability fetch failed, generating slots locally",
		zap.String("key", key), zap.Error(err))
	if cfg == nil {
		return []models.TimeSlot{}
	}
	return GenerateSlots(*cfg, req.Date)
}

// Warm fetches and caches one query unless a fresh entry exists. Generated
// slots are never cached.
func (s *AvailabilityService) Warm(ctx context.Context, req models.AvailabilityRequest) error {
	key := AvailabilityKey(req.Identifier, req.Date, req.ResourceID)
	if _, ok := s.cache.Get(ctx, key); ok {
		return nil
	}
	slots, err := s.fetch(ctx, req)
	if err != nil {
		return err
	}
	_ = s.cache.Set(ctx, key, slots)
	return nil
}

// InvalidateDate drops every cached query of id on date, for all resources.
func (s *AvailabilityService) InvalidateDate(ctx context.Context, id models.Identifier, date string) (int, error) {
	return s.cache.InvalidatePrefix(ctx, id.Key()+"_"+date+"_")
}

// InvalidateIdentifier drops every cached query of id.
func (s *AvailabilityService) InvalidateIdentifier(ctx context.Context, id models.Identifier) (int, error) {
	return s.cache.InvalidatePrefix(ctx, id.Key()+"_")
}

func (s *AvailabilityService) fetch(ctx context.Context, req models.AvailabilityRequest) ([]models.TimeSlot, error) {
	resp, err := s.api.GetAvailability(ctx, req)
	if err != nil {
		return nil, newError(CodeAvailabilityFetch, "could not load availability", err)
	}
	if resp.Slots == nil {
		return nil, newError(CodeAvailabilityFetch, "could not load availability", errNoSlots)
	}
	return nonNil(*resp.Slots), nil
}

func nonNil(slots []models.TimeSlot) []models.TimeSlot {
	if slots == nil {
		return []models.TimeSlot{}
	}
	return slots
}
