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
	ConfigCacheNamespace = "booking_config_cache"
	DefaultConfigTTL     = 10 * time.Minute
)

// DefaultConfigVersion identifies the built-in fallback configuration.
// Bump it whenever DefaultBookingConfig changes.
const DefaultConfigVersion = "2025-01-gym"

// DefaultBookingConfig is served when neither the cache nor the backend can
// supply a configuration, so the widget stays usable offline. Each call
// returns a fresh copy.
func DefaultBookingConfig() models.BookingConfig {
	weekday := models.DayHours{Open: "09:00", Close: "17:00"}
	weekend := models.DayHours{Open: "10:00", Close: "16:00"}

	entry := 0
	return models.BookingConfig{
		Enabled:             true,
		BusinessType:        "gym",
		SlotDuration:        60,
		BufferTime:          0,
		AllowSameDayBooking: true,
		CapacityType:        "per_resource",
		Resources: []models.Resource{
			{ID: "trainer-1", Name: "Trainer A"},
			{ID: "trainer-2", Name: "Trainer B"},
		},
		OperatingHours: map[string]models.DayHours{
			"monday":    weekday,
			"tuesday":   weekday,
			"wednesday": weekday,
			"thursday":  weekday,
			"friday":    weekday,
			"saturday":  weekend,
			"sunday":    {Open: "10:00", Close: "16:00", Closed: true},
		},
		FlowStartStepID: "date",
		FlowSteps: []models.FlowStep{
			{
				ID: "date", Type: models.StepCalendar, Title: "Choose a date", Order: &entry,
				Next: []models.FlowEdge{{Target: "trainer", IsFallback: true}},
			},
			defaultStep("trainer", models.StepResource, "Choose your trainer", 1),
			defaultStep("time", models.StepTimeSlot, "Choose a time", 2),
			defaultStep("details", models.StepPersonalInfo, "Your details", 3),
			defaultStep("confirm", models.StepConfirmation, "Confirm", 4),
		},
	}
}

func defaultStep(id string, typ models.StepType, title string, order int) models.FlowStep {
	return models.FlowStep{ID: id, Type: typ, Title: title, Branch: models.FallbackBranch, Order: &order}
}

var errNoConfig = errors.New("backend returned no config")

// ConfigCache serves booking configurations per identifier, fetching on a
// miss and falling back to DefaultBookingConfig when the fetch fails.
type ConfigCache struct {
	api    API
	cache  *cache.TTLCache[models.BookingConfig]
	logger *zap.Logger
}

func NewConfigCache(api API, store cache.Store, ttl time.Duration, clock func() time.Time, logger *zap.Logger) *ConfigCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultConfigTTL
	}
	return &ConfigCache{
		api:    api,
		cache:  cache.NewTTLCache[models.BookingConfig](store, ConfigCacheNamespace, ttl, clock, logger),
		logger: logger,
	}
}

// Load never fails. The returned flag is true when the default config was
// used.
func (c *ConfigCache) Load(ctx context.Context, id models.Identifier) (models.BookingConfig, bool) {
	key := id.Key()
	if cfg, ok := c.cache.Get(ctx, key); ok {
		return cfg, false
	}

	cfg, err := c.fetch(ctx, id)
	if err != nil {
		c.logger.Warn("using default booking config",
			zap.String("identifier", key),
			zap.String("version", DefaultConfigVersion),
			zap.Error(err))
		return DefaultBookingConfig(), true
	}

	_ = c.cache.Set(ctx, key, cfg)
	return cfg, false
}

// Invalidate drops the cached config of id.
func (c *ConfigCache) Invalidate(ctx context.Context, id models.Identifier) error {
	return c.cache.Delete(ctx, id.Key())
}

func (c *ConfigCache) fetch(ctx context.Context, id models.Identifier) (models.BookingConfig, error) {
	cfg, err := c.api.GetConfig(ctx, id)
	if err != nil {
		return models.BookingConfig{}, newError(CodeConfigFetch, "could not load booking config", err)
	}
	if cfg == nil {
		return models.BookingConfig{}, newError(CodeConfigFetch, "could not load booking config", errNoConfig)
	}
	return *cfg, nil
}
