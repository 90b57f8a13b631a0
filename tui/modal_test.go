package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Edney2025/edyfinance-pro/domain"
)

func proposalFixture() *domain.Proposal {
	return &domain.Proposal{
		TotalOutstanding: 800,
		Options: []domain.InstallmentOption{
			{Count: 12, Amount: 75.50},
			{Count: 6, Amount: 145.20},
		},
	}
}

func TestModal_OpenCarriesProposalWithoutChoice(t *testing.T) {
	state := OpenModal(proposalFixture())

	proposal, ok := CurrentProposal(state)
	require.True(t, ok)
	assert.Equal(t, 800.0, proposal.TotalOutstanding)

	_, _, canShare := ShareTarget(state)
	assert.False(t, canShare, "share must be impossible before an option is chosen")
}

func TestModal_ChooseThenReplace(t *testing.T) {
	p := proposalFixture()
	state := OpenModal(p)

	state = Choose(state, p.Options[0])
	_, option, ok := ShareTarget(state)
	require.True(t, ok)
	assert.Equal(t, 12, option.Count)

	// selecting a different option replaces, it does not stack
	state = Choose(state, p.Options[1])
	_, option, ok = ShareTarget(state)
	require.True(t, ok)
	assert.Equal(t, 6, option.Count)
}

func TestModal_ChooseFromClosedIsNoOp(t *testing.T) {
	state := Choose(ModalClosed{}, domain.InstallmentOption{Count: 12})

	assert.IsType(t, ModalClosed{}, state)
	_, ok := CurrentProposal(state)
	assert.False(t, ok)
}

func TestModal_NothingSurvivesClose(t *testing.T) {
	p := proposalFixture()
	state := Choose(OpenModal(p), p.Options[0])

	state = ModalState(ModalClosed{})

	_, ok := CurrentProposal(state)
	assert.False(t, ok)
	_, _, canShare := ShareTarget(state)
	assert.False(t, canShare)
}
