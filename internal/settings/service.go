package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"solarsmart/internal/config"
	"solarsmart/internal/model"
	"solarsmart/internal/store"

	"go.uber.org/zap"
)

// Service resolves the settings in effect: values saved by an admin merged
// over the configured defaults.
type Service struct {
	store    store.SettingsStore
	defaults model.Settings
	cache    *cache
	log      *zap.Logger
}

func NewService(st store.SettingsStore, defaults model.Settings, cacheTTL time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, defaults: defaults, cache: newCache(cacheTTL), log: log}
}

// Current returns the effective settings. Unsaved settings fall back to the defaults.
func (s *Service) Current(ctx context.Context) (model.Settings, error) {
	v, gen, ok := s.cache.get()
	if ok {
		return v, nil
	}
	stored, err := s.store.GetSettings(ctx)
	switch {
	case errors.Is(err, model.ErrNotFound):
		stored = model.Settings{}
	case err != nil:
		return model.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	current := config.MergeSettings(s.defaults, stored)
	s.cache.set(current, gen)
	return current, nil
}

// Update validates and persists a complete settings record.
func (s *Service) Update(ctx context.Context, next model.Settings) (model.Settings, error) {
	if err := next.Validate(); err != nil {
		return model.Settings{}, err
	}
	if err := s.store.SaveSettings(ctx, next); err != nil {
		return model.Settings{}, err
	}
	s.cache.clear()
	s.log.Info("settings updated",
		zap.Float64("usd_rate", next.UsdRate),
		zap.Float64("electricity_price", next.ElectricityPrice),
		zap.Float64("panel_wattage", next.PanelWattage),
		zap.Float64("system_cost_per_kw", next.SystemCostPerKw),
	)
	return next, nil
}
