package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Edney2025/edyfinance-pro/domain"
)

func (a *App) View() string {
	switch a.state {
	case stateResolving, stateLoading:
		return a.viewLoading()
	case stateLogin:
		return a.viewLogin()
	default:
		if proposal, open := CurrentProposal(a.modal); open {
			return a.viewModal(proposal)
		}
		return a.viewPortal()
	}
}

func (a *App) viewLoading() string {
	label := "Carregando..."
	if a.state == stateLoading {
		label = "Carregando seus empréstimos..."
	}
	return "\n  " + a.spinner.View() + " " + subtitleStyle.Render(label) + "\n"
}

func (a *App) viewLogin() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Acessar Portal") + "\n\n")
	b.WriteString("  CPF\n  " + a.cpfInput.View() + "\n\n")
	b.WriteString("  Senha (PIM)\n  " + a.pimInput.View() + "\n\n")

	if a.loggingIn {
		b.WriteString("  " + a.spinner.View() + " Entrando...\n")
	}
	if a.errMsg != "" {
		b.WriteString("  " + errorStyle.Render(a.errMsg) + "\n")
	}
	b.WriteString("\n  " + helpStyle.Render("[tab] alternar campo  [enter] entrar  [esc] sair") + "\n")
	return b.String()
}

func (a *App) viewPortal() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Meus Empréstimos") + "\n\n")

	if a.errMsg != "" && a.analysis == nil {
		b.WriteString("  " + errorStyle.Render("Erro ao carregar dados: "+a.errMsg) + "\n")
		b.WriteString("\n  " + helpStyle.Render("[a] tentar novamente  [s] sair da conta  [q] fechar") + "\n")
		return b.String()
	}

	loans := a.loans()
	if a.analysis != nil {
		b.WriteString("  " + subtitleStyle.Render(fmt.Sprintf(
			"Emprestado: %s   Pago: %s   A vencer: %s",
			domain.FormatBRL(a.analysis.TotalBorrowed),
			domain.FormatBRL(a.analysis.TotalPaid),
			domain.FormatBRL(a.analysis.TotalDue),
		)) + "\n\n")
	}

	if len(loans) == 0 {
		b.WriteString("  " + subtitleStyle.Render("Nenhum empréstimo encontrado.") + "\n")
	}

	for i, loan := range loans {
		mark := "[ ]"
		if a.selection[loan.ID] {
			mark = "[x]"
		}
		row := fmt.Sprintf("%s %s  %d/%d parcelas de %s  saldo %s  próx. %s",
			mark,
			shortID(loan.ID),
			loan.PaidInstallments,
			loan.InstallmentCount,
			domain.FormatBRL(loan.InstallmentAmount),
			domain.FormatBRL(loan.OutstandingBalance),
			blankFallback(loan.NextInstallment),
		)
		if i == a.cursor {
			b.WriteString("  " + selectedRowStyle.Render("> "+row) + "\n")
		} else {
			b.WriteString("    " + row + "\n")
		}
	}

	// derived on every render, never stored
	total := a.selection.Total(loans)
	b.WriteString("\n  " + totalStyle.Render("Total Selecionado: "+domain.FormatBRL(total)) + "\n")

	if a.negotiating {
		b.WriteString("  " + a.spinner.View() + " Gerando proposta...\n")
	}
	if a.errMsg != "" {
		b.WriteString("  " + errorStyle.Render(a.errMsg) + "\n")
	}
	if a.notice != "" {
		b.WriteString("  " + noticeStyle.Render(a.notice) + "\n")
	}

	b.WriteString("\n  " + helpStyle.Render(
		"[espaço] selecionar  [enter] renegociar  [s] sair da conta  [q] fechar") + "\n")
	return b.String()
}

func (a *App) viewModal(proposal *domain.Proposal) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Proposta de Refinanciamento") + "\n\n")
	b.WriteString("Saldo a Refinanciar:\n")
	b.WriteString(totalStyle.Render(domain.FormatBRL(proposal.TotalOutstanding)) + "\n\n")
	b.WriteString("Selecione uma Opção de Parcelamento:\n\n")

	_, chosen, hasChosen := ShareTarget(a.modal)

	for i, option := range proposal.Options {
		line := fmt.Sprintf("%3dx  %s", option.Count, domain.FormatBRL(option.Amount))
		switch {
		case hasChosen && chosen.Count == option.Count:
			line = chosenOptionStyle.Render(" " + line + " ")
		case i == a.modalCursor:
			line = selectedRowStyle.Render("> " + line)
		default:
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if a.notice != "" {
		b.WriteString("\n" + errorStyle.Render(a.notice) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("[enter] escolher  [c] compartilhar  [esc] fechar"))

	box := modalStyle.Render(b.String())
	if a.width > 0 && a.height > 0 {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// blankFallback keeps a single missing field from discarding the row.
func blankFallback(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
