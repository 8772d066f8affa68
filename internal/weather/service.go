package weather

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// primaryForecastDays is what the WeatherAPI plan returns; the rest is synthesized.
const primaryForecastDays = 3

// Service runs the aggregation pipeline: query the primary provider, fall back
// to the secondary, and gap-fill a short primary forecast.
type Service struct {
	primary   PrimaryProvider
	secondary SecondaryProvider
	estimator SunEstimator
	cache     Cache
	now       Clock
	logger    *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables snapshot caching keyed by the normalized location.
func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides time.Now.
func WithClock(c Clock) Option {
	return func(s *Service) { s.now = c }
}

// WithEstimator replaces the sunrise/sunset drift used for synthesized days.
func WithEstimator(e SunEstimator) Option {
	return func(s *Service) { s.estimator = e }
}

// NewService creates a new Service. Either provider may be nil.
func NewService(primary PrimaryProvider, secondary SecondaryProvider, opts ...Option) *Service {
	s := &Service{
		primary:   primary,
		secondary: secondary,
		estimator: GapFillDrift,
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) primaryEnabled() bool {
	return s.primary != nil && s.primary.Configured()
}

func (s *Service) secondaryEnabled() bool {
	return s.secondary != nil && s.secondary.Configured()
}

// Forecast resolves q into a normalized snapshot.
func (s *Service) Forecast(ctx context.Context, q Query) (WeatherSnapshot, error) {
	loc := q.Location()
	if loc == "" {
		return WeatherSnapshot{}, ErrInvalidRequest
	}
	if !s.primaryEnabled() && !s.secondaryEnabled() {
		s.logger.Error("no weather provider credentials configured")
		return WeatherSnapshot{}, ErrNotConfigured
	}

	if s.cache != nil {
		if snap, ok := s.cache.Get(q.Key()); ok {
			s.logger.Debug("serving cached forecast", zap.String("location", loc))
			return snap, nil
		}
	}

	snap, err := s.resolve(ctx, loc)
	if err != nil {
		return WeatherSnapshot{}, err
	}

	if s.cache != nil {
		s.cache.Save(q.Key(), snap)
	}
	return snap, nil
}

// Refresh queries the providers for q and replaces any cached snapshot.
func (s *Service) Refresh(ctx context.Context, q Query) error {
	loc := q.Location()
	if loc == "" {
		return ErrInvalidRequest
	}
	if !s.primaryEnabled() && !s.secondaryEnabled() {
		return ErrNotConfigured
	}

	snap, err := s.resolve(ctx, loc)
	if err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Save(q.Key(), snap)
	}
	return nil
}

func (s *Service) resolve(ctx context.Context, loc string) (WeatherSnapshot, error) {
	if s.primaryEnabled() {
		snap, err := s.fetchPrimary(ctx, loc)
		if err == nil {
			return s.fillGaps(ctx, loc, snap), nil
		}
		s.logger.Warn("primary provider failed, falling back",
			zap.String("provider", s.primary.Name()),
			zap.String("location", loc),
			zap.Error(err))
	}

	if !s.secondaryEnabled() {
		return WeatherSnapshot{}, ErrNoWeatherData
	}

	snap, err := s.fetchSecondary(ctx, loc)
	if err != nil {
		s.logger.Warn("secondary provider failed",
			zap.String("provider", s.secondary.Name()),
			zap.String("location", loc),
			zap.Error(err))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return WeatherSnapshot{}, ctxErr
		}
		return WeatherSnapshot{}, ErrNoWeatherData
	}
	return snap, nil
}

func (s *Service) fetchPrimary(ctx context.Context, loc string) (WeatherSnapshot, error) {
	resp, err := s.primary.FetchForecast(ctx, loc, primaryForecastDays)
	if err != nil {
		return WeatherSnapshot{}, &ProviderError{Provider: s.primary.Name(), Err: err}
	}
	snap, err := Normalize(resp, s.now())
	if err != nil {
		return WeatherSnapshot{}, &ProviderError{Provider: s.primary.Name(), Err: err}
	}
	return snap, nil
}

func (s *Service) fetchSecondary(ctx context.Context, loc string) (WeatherSnapshot, error) {
	resp, err := s.secondary.FetchForecast(ctx, loc)
	if err != nil {
		return WeatherSnapshot{}, &ProviderError{Provider: s.secondary.Name(), Err: err}
	}
	snap, err := Normalize(resp, s.now())
	if err != nil {
		return WeatherSnapshot{}, &ProviderError{Provider: s.secondary.Name(), Err: err}
	}
	return snap, nil
}

// fillGaps extends a three-day primary forecast with secondary data. Failures
// are logged and the primary snapshot is returned as is.
func (s *Service) fillGaps(ctx context.Context, loc string, snap WeatherSnapshot) WeatherSnapshot {
	if len(snap.Daily) != primaryForecastDays || !s.secondaryEnabled() {
		return snap
	}

	s.logger.Info("extending forecast from secondary provider",
		zap.String("location", loc),
		zap.Int("days", len(snap.Daily)))

	extra, err := s.fetchSecondary(ctx, loc)
	if err != nil {
		s.logger.Warn("forecast gap-filling skipped",
			zap.String("location", loc),
			zap.Error(err))
		return snap
	}

	snap.Daily = Synthesize(snap.Daily, extra.Daily, s.estimator)
	return snap
}
