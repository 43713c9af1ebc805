// Package resources отдаёт статический справочник юридических ресурсов
// и контактов. Данные неизменны в пределах процесса; выборки по категории
// кешируются в redis, чтобы разгрузить горячий маршрут.
package resources

import (
	"context"
	"log/slog"
	"time"
)

// Resource — один элемент справочника.
type Resource struct {
	ID          int    `json:"id"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Contact     string `json:"contact"`
	URL         string `json:"url"`
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service отдаёт справочник ресурсов.
type Service struct {
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(cache Cache, log *slog.Logger) *Service {
	return &Service{
		cache: cache,
		log:   log,
	}
}

var catalog = []Resource{
	{1, "legal_aid", "Regional Legal Aid Bureau", "Free consultations for low-income applicants", "+1-800-555-0134", "https://example.org/legal-aid"},
	{2, "legal_aid", "Pro Bono Lawyers Network", "Volunteer attorneys for civil matters", "probono@example.org", "https://example.org/pro-bono"},
	{3, "courts", "District Court Self-Help Center", "Filing guidance and form templates", "+1-800-555-0178", "https://example.org/court-help"},
	{4, "courts", "Small Claims Court Guide", "Step-by-step guide for claims under the threshold", "", "https://example.org/small-claims"},
	{5, "mediation", "Community Mediation Service", "Neutral third-party dispute resolution", "mediation@example.org", "https://example.org/mediation"},
	{6, "hotlines", "Tenant Rights Hotline", "Housing and eviction questions", "+1-800-555-0199", "https://example.org/tenants"},
	{7, "hotlines", "Workers' Rights Hotline", "Employment disputes and unpaid wages", "+1-800-555-0142", "https://example.org/workers"},
}

// List возвращает ресурсы, опционально отфильтрованные по категории.
func (s *Service) List(ctx context.Context, category string) ([]Resource, error) {
	if category == "" {
		return catalog, nil
	}

	key := "resources:" + category
	var cached []Resource
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("resource cache read failed", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	var result []Resource
	for _, r := range catalog {
		if r.Category == category {
			result = append(result, r)
		}
	}
	if err := s.cache.Set(ctx, key, result, 12*time.Hour); err != nil {
		s.log.Warn("resource cache write failed", slog.Any("err", err))
	}
	return result, nil
}
