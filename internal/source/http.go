// Package source содержит реализации внешнего источника точек маршрута.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"tripboard/internal/models"
)

var ErrUpstream = errors.New("upstream request failed")

const (
	cachePrefix     = "tripboard_"
	DefaultCacheTTL = time.Hour
)

// Ресурсы внешнего API.
const (
	ResourcePoints       = "points"
	ResourceDestinations = "destinations"
	ResourceOffers       = "offers"
)

var resources = []string{ResourcePoints, ResourceDestinations, ResourceOffers}

type HTTPConfig struct {
	BaseURL       string
	Authorization string
	Client        *http.Client
	Cache         Cache // nil отключает кэш
	TTL           time.Duration
}

// HTTP читает данные маршрута из REST API, кэшируя тела ответов.
type HTTP struct {
	baseURL       string
	authorization string
	client        *http.Client
	cache         Cache
	ttl           time.Duration
}

func NewHTTP(cfg HTTPConfig) *HTTP {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &HTTP{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		authorization: cfg.Authorization,
		client:        client,
		cache:         cfg.Cache,
		ttl:           ttl,
	}
}

func (s *HTTP) Points(ctx context.Context) ([]models.RawPoint, error) {
	var points []models.RawPoint
	if err := s.fetch(ctx, ResourcePoints, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (s *HTTP) Destinations(ctx context.Context) ([]models.Destination, error) {
	var destinations []models.Destination
	if err := s.fetch(ctx, ResourceDestinations, &destinations); err != nil {
		return nil, err
	}
	return destinations, nil
}

func (s *HTTP) Offers(ctx context.Context) ([]models.OfferCatalogEntry, error) {
	var offers []models.OfferCatalogEntry
	if err := s.fetch(ctx, ResourceOffers, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

// Refresh перекачивает все ресурсы в кэш в обход сохранённых значений.
func (s *HTTP) Refresh(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	for _, resource := range resources {
		body, err := s.download(ctx, resource)
		if err != nil {
			return err
		}
		if !json.Valid(body) {
			return fmt.Errorf("%w: %s: ответ не является JSON", ErrUpstream, resource)
		}
		if err := s.cache.Set(ctx, cachePrefix+resource, string(body), s.ttl); err != nil {
			return fmt.Errorf("кэширование %s: %w", resource, err)
		}
	}
	return nil
}

// Invalidate удаляет закэшированные ответы.
func (s *HTTP) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	keys := make([]string, 0, len(resources))
	for _, resource := range resources {
		keys = append(keys, cachePrefix+resource)
	}
	return s.cache.Del(ctx, keys...)
}

func (s *HTTP) fetch(ctx context.Context, resource string, out any) error {
	key := cachePrefix + resource

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil && cached != "" {
			if err := json.Unmarshal([]byte(cached), out); err == nil {
				return nil
			}
		}
	}

	body, err := s.download(ctx, resource)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: декодирование %s: %v", ErrUpstream, resource, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, string(body), s.ttl); err != nil {
			log.Printf("Не удалось закэшировать %s: %v", resource, err)
		}
	}
	return nil
}

func (s *HTTP) download(ctx context.Context, resource string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/"+resource, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if s.authorization != "" {
		req.Header.Set("Authorization", s.authorization)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: статус %d", ErrUpstream, resource, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: чтение %s: %v", ErrUpstream, resource, err)
	}
	return body, nil
}
