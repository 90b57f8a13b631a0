package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Edney2025/edyfinance-pro/domain"
	"github.com/Edney2025/edyfinance-pro/repository"
)

// PricingAPI is the outbound contract to the pricing/renegotiation
// service.
type PricingAPI interface {
	FetchAnalysis(ctx context.Context, clienteID uuid.UUID) (*domain.Analysis, error)
	RequestProposal(ctx context.Context, loanIDs []string) (*domain.Proposal, error)
}

// RegistryService loads the read-only loan registry snapshot, once per
// page load. Snapshots are mirrored into the cache so the offline CLI
// path can quote the last known state; the cache never substitutes for a
// fresh fetch.
type RegistryService struct {
	api    PricingAPI
	cache  repository.CacheRepository
	logger *zap.Logger
}

func NewRegistryService(
	api PricingAPI,
	cache repository.CacheRepository,
	logger *zap.Logger,
) *RegistryService {
	return &RegistryService{api: api, cache: cache, logger: logger}
}

func cacheKey(clienteID uuid.UUID) string {
	return "analise:" + clienteID.String()
}

// Load fetches the current snapshot for one client. Cache writes are
// best-effort and never fail the load.
func (s *RegistryService) Load(ctx context.Context, clienteID uuid.UUID) (*domain.Analysis, error) {
	analysis, err := s.api.FetchAnalysis(ctx, clienteID)
	if err != nil {
		return nil, err
	}

	if data, merr := json.Marshal(analysis); merr == nil {
		if cerr := s.cache.Set(ctx, cacheKey(clienteID), string(data), registryCacheTTL); cerr != nil {
			s.logger.Debug("falha ao gravar snapshot no cache", zap.Error(cerr))
		}
	}
	return analysis, nil
}

// LastKnown returns the most recent cached snapshot, if any. Used only to
// annotate failures; the interactive portal never renders from it.
func (s *RegistryService) LastKnown(ctx context.Context, clienteID uuid.UUID) (*domain.Analysis, bool) {
	raw, ok := s.cache.Get(ctx, cacheKey(clienteID))
	if !ok {
		return nil, false
	}
	var analysis domain.Analysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		s.logger.Debug("snapshot em cache ilegível", zap.Error(err))
		return nil, false
	}
	return &analysis, true
}
