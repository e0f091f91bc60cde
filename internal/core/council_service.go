package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"citizen-portal-backend/internal/models"
	"citizen-portal-backend/pkg/cache"
)

const councilCacheKey = "council:members"

// councilRosterPath is the open-data export consumed for the roster.
const councilRosterPath = "/dadosabertosexportar?d=vereadores&a=&f=json"

// councilService implements the CouncilService interface. The upstream
// open-data endpoint is slow and rate-limited, so responses are served
// from a TTL cache; cache failures fall through to the upstream.
type councilService struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache // nil disables caching
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewCouncilService creates a new CouncilService instance. cache may be
// nil when no Redis is configured.
func NewCouncilService(baseURL string, httpClient *http.Client, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) CouncilService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &councilService{
		baseURL:    baseURL,
		httpClient: httpClient,
		cache:      c,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// ListMembers returns the council-member roster.
func (s *councilService) ListMembers(ctx context.Context) ([]models.CouncilMember, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, councilCacheKey)
		if err != nil {
			s.logger.Warn("council roster cache read failed", zap.Error(err))
		} else if cached != "" {
			var members []models.CouncilMember
			if err := json.Unmarshal([]byte(cached), &members); err == nil {
				return members, nil
			}
			s.logger.Warn("council roster cache entry is corrupt, refetching", zap.Error(err))
		}
	}

	members, raw, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, councilCacheKey, string(raw), s.cacheTTL); err != nil {
			s.logger.Warn("council roster cache write failed", zap.Error(err))
		}
	}
	return members, nil
}

func (s *councilService) fetch(ctx context.Context) ([]models.CouncilMember, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+councilRosterPath, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build council roster request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch council roster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("council roster endpoint returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read council roster response: %w", err)
	}

	var members []models.CouncilMember
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, nil, fmt.Errorf("failed to decode council roster: %w", err)
	}
	return members, raw, nil
}
