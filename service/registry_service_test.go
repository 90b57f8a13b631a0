package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Edney2025/edyfinance-pro/domain"
	"github.com/Edney2025/edyfinance-pro/repository"
)

type MockRegistryAPI struct {
	Analysis   *domain.Analysis
	ForceError error
	Calls      int
}

func (m *MockRegistryAPI) FetchAnalysis(ctx context.Context, clienteID uuid.UUID) (*domain.Analysis, error) {
	m.Calls++
	if m.ForceError != nil {
		return nil, m.ForceError
	}
	return m.Analysis, nil
}

func (m *MockRegistryAPI) RequestProposal(ctx context.Context, loanIDs []string) (*domain.Proposal, error) {
	return nil, errors.New("not used")
}

func TestLoad_CachesSnapshot(t *testing.T) {

	clienteID := uuid.New()
	api := &MockRegistryAPI{Analysis: &domain.Analysis{
		TotalDue: 800,
		Loans:    []domain.Loan{{ID: "1", OutstandingBalance: 500}},
	}}
	cache := repository.NewMemoryCache()
	svc := NewRegistryService(api, cache, zap.NewNop())

	analysis, err := svc.Load(context.Background(), clienteID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(analysis.Loans) != 1 {
		t.Fatalf("expected one loan, got %d", len(analysis.Loans))
	}

	last, ok := svc.LastKnown(context.Background(), clienteID)
	if !ok {
		t.Fatalf("expected a cached snapshot")
	}
	if last.TotalDue != 800 || len(last.Loans) != 1 {
		t.Errorf("cached snapshot does not match: %+v", last)
	}
}

func TestLoad_FetchFailure(t *testing.T) {

	clienteID := uuid.New()
	api := &MockRegistryAPI{ForceError: errors.New("network error")}
	svc := NewRegistryService(api, repository.NewMemoryCache(), zap.NewNop())

	_, err := svc.Load(context.Background(), clienteID)

	if err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := svc.LastKnown(context.Background(), clienteID); ok {
		t.Errorf("a failed fetch must not populate the cache")
	}
}

func TestLastKnown_MissingOrCorrupt(t *testing.T) {

	clienteID := uuid.New()
	cache := repository.NewMemoryCache()
	svc := NewRegistryService(&MockRegistryAPI{}, cache, zap.NewNop())

	if _, ok := svc.LastKnown(context.Background(), clienteID); ok {
		t.Errorf("expected no snapshot for a cold cache")
	}

	_ = cache.Set(context.Background(), "analise:"+clienteID.String(), "{not json", 0)

	if _, ok := svc.LastKnown(context.Background(), clienteID); ok {
		t.Errorf("a corrupt snapshot must be ignored")
	}
}
