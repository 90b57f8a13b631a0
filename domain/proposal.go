package domain

import (
	"errors"
	"fmt"
)

// InstallmentOption is one (count, amount) pairing within a Proposal.
// The installment count is the natural key among a proposal's options.
type InstallmentOption struct {
	Count  int     `json:"numero_parcelas"`
	Amount float64 `json:"valor_parcela"`
}

// Proposal is the server-computed renegotiation offer for a set of loans.
// It is a one-shot, read-only artifact: never persisted, discarded when
// the review modal closes.
type Proposal struct {
	TotalOutstanding float64             `json:"saldo_devedor_total"`
	InterestRate     string              `json:"taxa_juros_aplicada,omitempty"`
	Options          []InstallmentOption `json:"opcoes_parcelamento"`
}

// Validate checks structural well-formedness of a proposal. The
// amortization math itself belongs to the pricing service and is not
// re-checked here.
func (p *Proposal) Validate() error {
	if len(p.Options) == 0 {
		return errors.New("proposta sem opções de parcelamento")
	}
	seen := make(map[int]struct{}, len(p.Options))
	for _, opt := range p.Options {
		if opt.Count <= 0 {
			return fmt.Errorf("número de parcelas inválido: %d", opt.Count)
		}
		if opt.Amount < 0 {
			return fmt.Errorf("valor de parcela negativo para %dx", opt.Count)
		}
		if _, dup := seen[opt.Count]; dup {
			return fmt.Errorf("número de parcelas duplicado: %d", opt.Count)
		}
		seen[opt.Count] = struct{}{}
	}
	return nil
}
