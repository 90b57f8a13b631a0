package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/Edney2025/edyfinance-pro/domain"
)

type MockChannel struct {
	Sent []string
}

func (m *MockChannel) Share(text string) error {
	m.Sent = append(m.Sent, text)
	return nil
}

func TestComposeMessage(t *testing.T) {

	svc := NewShareService(&MockChannel{})
	proposal := &domain.Proposal{
		TotalOutstanding: 800,
		Options: []domain.InstallmentOption{
			{Count: 12, Amount: 75.50},
			{Count: 6, Amount: 145.20},
		},
	}

	message := svc.ComposeMessage(proposal, proposal.Options[0])

	for _, want := range []string{"R$800,00", "12x", "R$75,50"} {
		if !strings.Contains(message, want) {
			t.Errorf("message missing %q:\n%s", want, message)
		}
	}
	if !strings.HasSuffix(message, "_Simulação gerada pelo Portal Financeiro._") {
		t.Errorf("message missing footer:\n%s", message)
	}
}

func TestShare_RequiresChosenOption(t *testing.T) {

	channel := &MockChannel{}
	svc := NewShareService(channel)

	err := svc.Share(&domain.Proposal{TotalOutstanding: 800}, nil)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(channel.Sent) != 0 {
		t.Errorf("no export may be attempted without a chosen option")
	}
}

func TestShare_SendsPayload(t *testing.T) {

	channel := &MockChannel{}
	svc := NewShareService(channel)
	option := domain.InstallmentOption{Count: 12, Amount: 75.50}

	if err := svc.Share(&domain.Proposal{TotalOutstanding: 800}, &option); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(channel.Sent) != 1 {
		t.Fatalf("expected one payload, got %d", len(channel.Sent))
	}
}
