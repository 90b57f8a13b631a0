package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Edney2025/edyfinance-pro/domain"
)

// ProposalService converts a non-empty selection into a single
// renegotiation request. At most one request is in flight at a time and
// nothing is ever retried implicitly.
type ProposalService struct {
	api    PricingAPI
	logger *zap.Logger

	mu       sync.Mutex
	inFlight bool
}

func NewProposalService(api PricingAPI, logger *zap.Logger) *ProposalService {
	return &ProposalService{api: api, logger: logger}
}

// InFlight reports whether a proposal request is currently outstanding.
func (s *ProposalService) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// RequestProposal issues exactly one request for the selected loans.
// An empty selection is a local validation error: the remote service is
// not contacted. A second call while one is outstanding returns
// ErrRequestInFlight without issuing a request.
func (s *ProposalService) RequestProposal(ctx context.Context, selection domain.SelectionSet) (*domain.Proposal, error) {
	ids := selection.SelectedIDs()
	if len(ids) == 0 {
		return nil, &ValidationError{Message: "Por favor, selecione pelo menos um empréstimo."}
	}
	if len(ids) > MaxSelectedLoans {
		return nil, &ValidationError{
			Message: fmt.Sprintf("Selecione no máximo %d empréstimos por proposta.", MaxSelectedLoans),
		}
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrRequestInFlight
	}
	s.inFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	proposal, err := s.api.RequestProposal(ctx, ids)
	if err != nil {
		return nil, err
	}

	if verr := proposal.Validate(); verr != nil {
		s.logger.Warn("proposta malformada descartada",
			zap.Strings("loan_ids", ids),
			zap.Error(verr))
		return nil, fmt.Errorf("%w: %v", ErrMalformedProposal, verr)
	}

	s.logger.Info("proposta recebida",
		zap.Int("emprestimos", len(ids)),
		zap.Int("opcoes", len(proposal.Options)))
	return proposal, nil
}
