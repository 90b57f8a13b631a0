package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Edney2025/edyfinance-pro/domain"
	"github.com/Edney2025/edyfinance-pro/service"
)

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case accessMsg:
		return a.applyAccess(msg.access)

	case authChangedMsg:
		return a.applyAccess(msg.access)

	case loginDoneMsg:
		a.loggingIn = false
		if msg.err != nil {
			a.errMsg = "CPF ou senha inválidos. Por favor, tente novamente."
			return a, nil
		}
		a.errMsg = ""
		// the gate subscription delivers the new access; resolve anyway
		// in case the program missed the transition
		return a, a.resolveAccessCmd()

	case registryMsg:
		a.state = statePortal
		a.analysis = msg.analysis
		a.errMsg = ""
		// a selection made before the fetch resolved is preserved and
		// re-validated against the fresh snapshot
		a.selection.Prune(msg.analysis.Loans)
		if a.cursor >= len(msg.analysis.Loans) {
			a.cursor = 0
		}
		return a, nil

	case registryErrMsg:
		a.state = statePortal
		a.analysis = nil
		a.errMsg = service.FailureMessage(msg.err)
		return a, nil

	case proposalMsg:
		a.negotiating = false
		a.modal = OpenModal(msg.proposal)
		a.modalCursor = 0
		a.notice = ""
		return a, nil

	case proposalErrMsg:
		a.negotiating = false
		a.errMsg = service.FailureMessage(msg.err)
		return a, nil

	case shareDoneMsg:
		if msg.err != nil {
			a.errMsg = service.FailureMessage(msg.err)
			return a, nil
		}
		// the proposal is discarded with the modal; a new one requires a
		// fresh request
		a.modal = ModalClosed{}
		a.notice = "Proposta compartilhada."
		return a, nil

	case signedOutMsg:
		return a.applyAccess(domain.Access{})

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// applyAccess drives the view transitions that follow an authorization
// change: authenticated visitors get the registry, everyone else the
// login entry point. No registry fetch is attempted while unauthenticated.
func (a *App) applyAccess(access domain.Access) (tea.Model, tea.Cmd) {
	previous := a.access
	a.access = access

	if !access.Authenticated {
		a.state = stateLogin
		a.analysis = nil
		a.selection = domain.NewSelectionSet()
		a.modal = ModalClosed{}
		a.negotiating = false
		a.notice = ""
		return a, nil
	}

	if previous.Authenticated && previous.UserID == access.UserID &&
		(a.state == statePortal || a.state == stateLoading) {
		// token refresh or duplicate notification: nothing to reload
		return a, nil
	}

	a.state = stateLoading
	a.errMsg = ""
	return a, a.loadRegistryCmd(access.UserID)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.state {
	case stateLogin:
		return a.handleLoginKey(msg)
	case statePortal:
		if _, open := CurrentProposal(a.modal); open {
			return a.handleModalKey(msg)
		}
		return a.handlePortalKey(msg)
	default:
		return a, nil
	}
}

func (a *App) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		a.focusPIM = !a.focusPIM
		if a.focusPIM {
			a.cpfInput.Blur()
			return a, a.pimInput.Focus()
		}
		a.pimInput.Blur()
		return a, a.cpfInput.Focus()

	case "enter":
		if a.loggingIn {
			return a, nil
		}
		if a.cpfInput.Value() == "" || a.pimInput.Value() == "" {
			a.errMsg = "Informe CPF e senha."
			return a, nil
		}
		a.loggingIn = true
		a.errMsg = ""
		return a, a.loginCmd(a.cpfInput.Value(), a.pimInput.Value())

	case "esc":
		return a, tea.Quit
	}

	var cmd tea.Cmd
	if a.focusPIM {
		a.pimInput, cmd = a.pimInput.Update(msg)
	} else {
		a.cpfInput, cmd = a.cpfInput.Update(msg)
	}
	return a, cmd
}

func (a *App) handlePortalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	loans := a.loans()

	switch msg.String() {
	case "q":
		return a, tea.Quit

	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}

	case "down", "j":
		if a.cursor < len(loans)-1 {
			a.cursor++
		}

	case " ":
		if len(loans) > 0 {
			a.selection.Toggle(loans[a.cursor].ID)
			a.notice = ""
		}

	case "enter", "r":
		// one in-flight request at most: a second submission is a no-op
		if a.negotiating || a.proposals.InFlight() {
			return a, nil
		}
		if a.selection.IsEmpty() {
			a.errMsg = "Por favor, selecione pelo menos um empréstimo."
			return a, nil
		}
		a.negotiating = true
		a.errMsg = ""
		return a, a.requestProposalCmd(a.snapshotSelection())

	case "a":
		if a.errMsg != "" && a.analysis == nil {
			// manual retry of a failed registry fetch
			a.state = stateLoading
			a.errMsg = ""
			return a, a.loadRegistryCmd(a.access.UserID)
		}

	case "s":
		return a, a.signOutCmd()
	}

	return a, nil
}

func (a *App) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	proposal, _ := CurrentProposal(a.modal)

	switch msg.String() {
	case "up", "k":
		if a.modalCursor > 0 {
			a.modalCursor--
		}

	case "down", "j":
		if a.modalCursor < len(proposal.Options)-1 {
			a.modalCursor++
		}

	case "enter", " ":
		if a.modalCursor < len(proposal.Options) {
			a.modal = Choose(a.modal, proposal.Options[a.modalCursor])
			a.notice = ""
		}

	case "c":
		target, option, ok := ShareTarget(a.modal)
		if !ok {
			a.notice = "Por favor, selecione uma opção de parcelamento para compartilhar."
			return a, nil
		}
		return a, a.shareCmd(target, option)

	case "esc", "f":
		a.modal = ModalClosed{}
		a.notice = ""
	}

	return a, nil
}

func (a *App) loans() []domain.Loan {
	if a.analysis == nil {
		return nil
	}
	return a.analysis.Loans
}

// snapshotSelection copies the current set so the outbound request is
// unaffected by toggles made while it is in flight.
func (a *App) snapshotSelection() domain.SelectionSet {
	copied := domain.NewSelectionSet()
	for id, selected := range a.selection {
		copied[id] = selected
	}
	return copied
}
