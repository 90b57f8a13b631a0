package service

import (
	"fmt"
	"strings"

	"github.com/Edney2025/edyfinance-pro/client"
	"github.com/Edney2025/edyfinance-pro/domain"
)

// ShareService formats the accepted simulation and hands it to the
// external sharing channel.
type ShareService struct {
	channel client.ShareChannel
}

func NewShareService(channel client.ShareChannel) *ShareService {
	return &ShareService{channel: channel}
}

// ComposeMessage renders the summary sent through the sharing channel.
func (s *ShareService) ComposeMessage(proposal *domain.Proposal, option domain.InstallmentOption) string {
	var b strings.Builder
	b.WriteString("*Proposta de Renegociação*\n\n")
	b.WriteString("Olá! Segue a simulação da minha renegociação:\n\n")
	fmt.Fprintf(&b, "*Saldo Devedor Total:* %s\n", domain.FormatBRL(proposal.TotalOutstanding))
	b.WriteString("*Opção de Parcelamento Escolhida:*\n")
	fmt.Fprintf(&b, "*- Parcelas:* %dx\n", option.Count)
	fmt.Fprintf(&b, "*- Valor da Parcela:* %s\n\n", domain.FormatBRL(option.Amount))
	b.WriteString("_Simulação gerada pelo Portal Financeiro._")
	return b.String()
}

// Share exports the chosen option. Calling it without a chosen option is
// a local validation error; no export is attempted.
func (s *ShareService) Share(proposal *domain.Proposal, option *domain.InstallmentOption) error {
	if option == nil {
		return &ValidationError{
			Message: "Por favor, selecione uma opção de parcelamento para compartilhar.",
		}
	}
	return s.channel.Share(s.ComposeMessage(proposal, *option))
}
