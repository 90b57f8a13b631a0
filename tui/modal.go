package tui

import "github.com/Edney2025/edyfinance-pro/domain"

// ModalState is the review modal's state machine:
// Closed | Open(proposal) | OptionChosen(proposal, option).
// Illegal states (open without a proposal, share without a chosen
// option) are unrepresentable.
type ModalState interface {
	modalState()
}

type ModalClosed struct{}

type ModalOpen struct {
	Proposal *domain.Proposal
}

type ModalOptionChosen struct {
	Proposal *domain.Proposal
	Option   domain.InstallmentOption
}

func (ModalClosed) modalState()       {}
func (ModalOpen) modalState()         {}
func (ModalOptionChosen) modalState() {}

// OpenModal enters Open with a fresh proposal and no option chosen.
func OpenModal(proposal *domain.Proposal) ModalState {
	return ModalOpen{Proposal: proposal}
}

// Choose picks one installment option. Valid from Open and from
// OptionChosen, where it replaces the current selection. Any other state
// is returned unchanged.
func Choose(state ModalState, option domain.InstallmentOption) ModalState {
	switch s := state.(type) {
	case ModalOpen:
		return ModalOptionChosen{Proposal: s.Proposal, Option: option}
	case ModalOptionChosen:
		return ModalOptionChosen{Proposal: s.Proposal, Option: option}
	default:
		return state
	}
}

// ShareTarget returns the proposal and chosen option when sharing is
// allowed, which requires OptionChosen.
func ShareTarget(state ModalState) (*domain.Proposal, *domain.InstallmentOption, bool) {
	chosen, ok := state.(ModalOptionChosen)
	if !ok {
		return nil, nil, false
	}
	option := chosen.Option
	return chosen.Proposal, &option, true
}

// CurrentProposal exposes the proposal while the modal is not Closed.
func CurrentProposal(state ModalState) (*domain.Proposal, bool) {
	switch s := state.(type) {
	case ModalOpen:
		return s.Proposal, true
	case ModalOptionChosen:
		return s.Proposal, true
	default:
		return nil, false
	}
}
