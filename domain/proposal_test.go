package domain

import "testing"

func TestValidate_OK(t *testing.T) {

	p := Proposal{
		TotalOutstanding: 800,
		Options: []InstallmentOption{
			{Count: 12, Amount: 75.50},
			{Count: 6, Amount: 145.20},
		},
	}

	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_NoOptions(t *testing.T) {

	p := Proposal{TotalOutstanding: 800}

	if err := p.Validate(); err == nil {
		t.Errorf("expected error for proposal without options")
	}
}

func TestValidate_NonPositiveCount(t *testing.T) {

	p := Proposal{Options: []InstallmentOption{{Count: 0, Amount: 10}}}

	if err := p.Validate(); err == nil {
		t.Errorf("expected error for zero installment count")
	}
}

func TestValidate_NegativeAmount(t *testing.T) {

	p := Proposal{Options: []InstallmentOption{{Count: 3, Amount: -1}}}

	if err := p.Validate(); err == nil {
		t.Errorf("expected error for negative amount")
	}
}

func TestValidate_DuplicateCounts(t *testing.T) {

	p := Proposal{Options: []InstallmentOption{
		{Count: 12, Amount: 10},
		{Count: 12, Amount: 20},
	}}

	if err := p.Validate(); err == nil {
		t.Errorf("expected error for duplicated installment count")
	}
}
