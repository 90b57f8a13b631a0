package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Edney2025/edyfinance-pro/domain"
)

type MockPricingAPI struct {
	Calls      int
	LastIDs    []string
	Proposal   *domain.Proposal
	ForceError error
	Started    chan struct{}
	Block      chan struct{}
}

func (m *MockPricingAPI) FetchAnalysis(ctx context.Context, clienteID uuid.UUID) (*domain.Analysis, error) {
	return nil, errors.New("not used")
}

func (m *MockPricingAPI) RequestProposal(ctx context.Context, loanIDs []string) (*domain.Proposal, error) {
	m.Calls++
	m.LastIDs = loanIDs
	if m.Started != nil {
		close(m.Started)
		m.Started = nil
	}
	if m.Block != nil {
		<-m.Block
	}
	if m.ForceError != nil {
		return nil, m.ForceError
	}
	return m.Proposal, nil
}

func validProposal() *domain.Proposal {
	return &domain.Proposal{
		TotalOutstanding: 800,
		Options: []domain.InstallmentOption{
			{Count: 12, Amount: 75.50},
			{Count: 6, Amount: 145.20},
		},
	}
}

func TestRequestProposal_EmptySelection(t *testing.T) {

	api := &MockPricingAPI{Proposal: validProposal()}
	svc := NewProposalService(api, zap.NewNop())

	_, err := svc.RequestProposal(context.Background(), domain.NewSelectionSet())

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if api.Calls != 0 {
		t.Errorf("remote service must not be contacted, got %d calls", api.Calls)
	}
}

func TestRequestProposal_OK(t *testing.T) {

	api := &MockPricingAPI{Proposal: validProposal()}
	svc := NewProposalService(api, zap.NewNop())

	selection := domain.NewSelectionSet()
	selection.Toggle("b")
	selection.Toggle("a")

	proposal, err := svc.RequestProposal(context.Background(), selection)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(proposal.Options) != 2 {
		t.Errorf("expected 2 options, got %d", len(proposal.Options))
	}
	if api.Calls != 1 {
		t.Errorf("expected exactly one request, got %d", api.Calls)
	}
	if len(api.LastIDs) != 2 || api.LastIDs[0] != "a" || api.LastIDs[1] != "b" {
		t.Errorf("unexpected ids sent: %v", api.LastIDs)
	}
	if svc.InFlight() {
		t.Errorf("lock must be released after completion")
	}
}

func TestRequestProposal_SecondSubmissionWhileInFlight(t *testing.T) {

	api := &MockPricingAPI{
		Proposal: validProposal(),
		Started:  make(chan struct{}),
		Block:    make(chan struct{}),
	}
	started := api.Started
	svc := NewProposalService(api, zap.NewNop())

	selection := domain.NewSelectionSet()
	selection.Toggle("a")

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := svc.RequestProposal(context.Background(), selection); err != nil {
			t.Errorf("first request failed: %v", err)
		}
	}()

	<-started

	_, err := svc.RequestProposal(context.Background(), selection)
	if !errors.Is(err, ErrRequestInFlight) {
		t.Fatalf("expected ErrRequestInFlight, got %v", err)
	}

	close(api.Block)
	<-done

	if api.Calls != 1 {
		t.Errorf("second submission must not issue a network call, got %d", api.Calls)
	}
}

func TestRequestProposal_MalformedResponse(t *testing.T) {

	api := &MockPricingAPI{Proposal: &domain.Proposal{
		TotalOutstanding: 800,
		Options: []domain.InstallmentOption{
			{Count: 12, Amount: 75.50},
			{Count: 12, Amount: 80.00},
		},
	}}
	svc := NewProposalService(api, zap.NewNop())

	selection := domain.NewSelectionSet()
	selection.Toggle("a")

	_, err := svc.RequestProposal(context.Background(), selection)

	if !errors.Is(err, ErrMalformedProposal) {
		t.Fatalf("expected ErrMalformedProposal, got %v", err)
	}
	if svc.InFlight() {
		t.Errorf("lock must be released after failure")
	}
}

func TestRequestProposal_RemoteFailure(t *testing.T) {

	remoteErr := errors.New("connection refused")
	api := &MockPricingAPI{ForceError: remoteErr}
	svc := NewProposalService(api, zap.NewNop())

	selection := domain.NewSelectionSet()
	selection.Toggle("a")

	_, err := svc.RequestProposal(context.Background(), selection)

	if !errors.Is(err, remoteErr) {
		t.Fatalf("expected remote error passthrough, got %v", err)
	}
	if svc.InFlight() {
		t.Errorf("lock must be released after failure")
	}
}

func TestRequestProposal_TooManyLoans(t *testing.T) {

	api := &MockPricingAPI{Proposal: validProposal()}
	svc := NewProposalService(api, zap.NewNop())

	selection := domain.NewSelectionSet()
	for i := 0; i <= MaxSelectedLoans; i++ {
		selection.Toggle(uuid.NewString())
	}

	_, err := svc.RequestProposal(context.Background(), selection)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if api.Calls != 0 {
		t.Errorf("remote service must not be contacted")
	}
}
