package settings

import (
	"context"
	"encoding/json"
	"time"

	settingsRepo "innkeep/database/repository/settings"
	"innkeep/models"
	"innkeep/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	cacheKey = "settings:billing"
	cacheTTL = 5 * time.Minute
)

// Service exposes the hotel-wide billing settings with a short-lived cache.
type Service interface {
	// Get returns the current settings, falling back to defaults when no
	// document exists yet.
	Get() (models.BillingSettings, error)
	// Update validates and persists new settings, invalidating the cache.
	Update(s models.BillingSettings) (models.BillingSettings, error)
}

// DefaultService implements Service over Mongo with a Redis read-through.
type DefaultService struct {
	Repo  settingsRepo.SettingsRepository
	Cache *redis.Client
}

// NewService creates a new instance of Service.
func NewService(repo settingsRepo.SettingsRepository) Service {
	return &DefaultService{Repo: repo, Cache: utils.GetCacheClient()}
}

// Get returns the current settings.
func (s *DefaultService) Get() (models.BillingSettings, error) {
	logger := utils.GetLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if raw, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
		var cached models.BillingSettings
		if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
			return cached, nil
		}
	}

	doc, err := s.Repo.Get()
	if err != nil {
		return models.BillingSettings{}, utils.Errf(500, "failed to load billing settings: %v", err)
	}
	out := models.DefaultBillingSettings()
	if doc != nil {
		out = *doc
	}

	if raw, err := json.Marshal(out); err == nil {
		if err := s.Cache.Set(ctx, cacheKey, raw, cacheTTL).Err(); err != nil {
			logger.Warn("failed to cache billing settings", zap.Error(err))
		}
	}
	return out, nil
}

// Update validates and persists new settings.
func (s *DefaultService) Update(in models.BillingSettings) (models.BillingSettings, error) {
	if in.TaxRate < 0 || in.TaxRate > 100 {
		return models.BillingSettings{}, utils.Errf(400, "tax rate must be between 0 and 100")
	}
	if in.MattressRate < 0 {
		return models.BillingSettings{}, utils.Errf(400, "mattress rate must not be negative")
	}
	if in.Currency == "" {
		return models.BillingSettings{}, utils.Errf(400, "currency is required")
	}

	if err := s.Repo.Upsert(&in); err != nil {
		return models.BillingSettings{}, utils.Errf(500, "failed to save billing settings: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Cache.Del(ctx, cacheKey).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate settings cache", zap.Error(err))
	}
	return in, nil
}
