// Package theme serves client branding for the embedded widget.
package theme

import (
	"context"
	"time"

	"bookingflow/models"
	"bookingflow/services/cache"

	"go.uber.org/zap"
)

const (
	CacheNamespace = "booking_theme_cache"
	DefaultTTL     = 10 * time.Minute
)

// Source fetches a client's theme. A nil theme means the client has none.
type Source interface {
	GetClientTheme(ctx context.Context, email string) (*models.Theme, error)
}

// DefaultTheme is the branding used when a client has no usable theme.
func DefaultTheme() models.Theme {
	return models.Theme{
		Colors: &models.ThemeColors{
			Primary:       "#56642D",
			Secondary:     "#FFD700",
			Background:    "#F9FAFB",
			Surface:       "#FFFFFF",
			Text:          "#111827",
			TextSecondary: "#6B7280",
			Border:        "#E5E7EB",
			Error:         "#EF4444",
			Success:       "#10B981",
			Warning:       "#F59E0B",
			Info:          "#3B82F6",
		},
		Branding: models.Branding{AppName: "Gym"},
	}
}

type Service struct {
	source Source
	cache  *cache.TTLCache[models.Theme]
	logger *zap.Logger
}

func NewService(source Source, store cache.Store, ttl time.Duration, clock func() time.Time, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		source: source,
		cache:  cache.NewTTLCache[models.Theme](store, CacheNamespace, ttl, clock, logger),
		logger: logger,
	}
}

// ClientTheme never fails: fetch errors and themes without colors yield
// DefaultTheme. Only real client themes are cached.
func (s *Service) ClientTheme(ctx context.Context, email string) models.Theme {
	if email == "" {
		return DefaultTheme()
	}
	if t, ok := s.cache.Get(ctx, email); ok {
		return t
	}

	t, err := s.source.GetClientTheme(ctx, email)
	if err != nil {
		s.logger.Warn("theme fetch failed, using default", zap.String("email", email), zap.Error(err))
		return DefaultTheme()
	}
	if t == nil || t.Colors == nil {
		return DefaultTheme()
	}

	_ = s.cache.Set(ctx, email, *t)
	return *t
}
