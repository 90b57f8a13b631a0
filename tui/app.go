// Package tui implements the interactive portal: login, the loan
// registry view with multi-selection, and the proposal review modal.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Edney2025/edyfinance-pro/client"
	"github.com/Edney2025/edyfinance-pro/domain"
	"github.com/Edney2025/edyfinance-pro/service"
)

type viewState int

const (
	stateResolving viewState = iota
	stateLogin
	stateLoading
	statePortal
)

// App is the top-level Bubble Tea model. All state mutation happens on
// the program's single update loop; network calls run as commands and
// come back as messages.
type App struct {
	gate        *service.SessionGate
	identity    client.IdentityService
	registry    *service.RegistryService
	proposals   *service.ProposalService
	share       *service.ShareService
	logger      *zap.Logger
	loginDomain string

	state     viewState
	access    domain.Access
	analysis  *domain.Analysis
	selection domain.SelectionSet
	cursor    int

	modal       ModalState
	modalCursor int

	cpfInput  textinput.Model
	pimInput  textinput.Model
	focusPIM  bool
	loggingIn bool

	negotiating bool
	errMsg      string
	notice      string

	spinner spinner.Model
	width   int
	height  int
}

func NewApp(
	gate *service.SessionGate,
	identity client.IdentityService,
	registry *service.RegistryService,
	proposals *service.ProposalService,
	share *service.ShareService,
	loginDomain string,
	logger *zap.Logger,
) *App {
	cpf := textinput.New()
	cpf.Placeholder = "Digite seu CPF"
	cpf.CharLimit = 14
	cpf.Focus()

	pim := textinput.New()
	pim.Placeholder = "Senha de 4 dígitos"
	pim.EchoMode = textinput.EchoPassword
	pim.CharLimit = 8

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = titleStyle

	return &App{
		gate:        gate,
		identity:    identity,
		registry:    registry,
		proposals:   proposals,
		share:       share,
		logger:      logger,
		loginDomain: loginDomain,
		state:       stateResolving,
		selection:   domain.NewSelectionSet(),
		modal:       ModalClosed{},
		cpfInput:    cpf,
		pimInput:    pim,
		spinner:     sp,
	}
}

// Run starts the program and wires the session gate subscription. The
// subscription is released when the program exits, so no callback ever
// fires into a torn-down view.
func Run(app *App) error {
	p := tea.NewProgram(app, tea.WithAltScreen())

	release := app.gate.OnChange(func(access domain.Access) {
		p.Send(authChangedMsg{access: access})
	})
	defer release()

	_, err := p.Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.resolveAccessCmd())
}

// messages

type accessMsg struct{ access domain.Access }
type authChangedMsg struct{ access domain.Access }
type registryMsg struct{ analysis *domain.Analysis }
type registryErrMsg struct{ err error }
type loginDoneMsg struct{ err error }
type proposalMsg struct{ proposal *domain.Proposal }
type proposalErrMsg struct{ err error }
type shareDoneMsg struct{ err error }
type signedOutMsg struct{}

// commands

func (a *App) resolveAccessCmd() tea.Cmd {
	return func() tea.Msg {
		return accessMsg{access: a.gate.ResolveAccess(context.Background())}
	}
}

func (a *App) loadRegistryCmd(userID string) tea.Cmd {
	return func() tea.Msg {
		clienteID, err := uuid.Parse(userID)
		if err != nil {
			return registryErrMsg{err: err}
		}
		analysis, err := a.registry.Load(context.Background(), clienteID)
		if err != nil {
			return registryErrMsg{err: err}
		}
		return registryMsg{analysis: analysis}
	}
}

func (a *App) loginCmd(cpf, password string) tea.Cmd {
	return func() tea.Msg {
		email := client.CPFEmail(cpf, a.loginDomain)
		_, err := a.identity.SignIn(context.Background(), email, password)
		return loginDoneMsg{err: err}
	}
}

func (a *App) requestProposalCmd(selection domain.SelectionSet) tea.Cmd {
	return func() tea.Msg {
		proposal, err := a.proposals.RequestProposal(context.Background(), selection)
		if err != nil {
			return proposalErrMsg{err: err}
		}
		return proposalMsg{proposal: proposal}
	}
}

func (a *App) shareCmd(proposal *domain.Proposal, option *domain.InstallmentOption) tea.Cmd {
	return func() tea.Msg {
		return shareDoneMsg{err: a.share.Share(proposal, option)}
	}
}

func (a *App) signOutCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.identity.SignOut(context.Background()); err != nil {
			a.logger.Warn("falha ao sair", zap.Error(err))
		}
		return signedOutMsg{}
	}
}
