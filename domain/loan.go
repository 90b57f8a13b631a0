package domain

// Loan is an immutable snapshot of a single loan as returned by the
// analysis endpoint. It is never mutated client-side, only re-fetched.
type Loan struct {
	ID                 string  `json:"id"`
	Description        string  `json:"descricao,omitempty"`
	PrincipalAmount    float64 `json:"valor_total_emprestimo"`
	InstallmentCount   int     `json:"quantidade_parcelas"`
	InstallmentAmount  float64 `json:"valor_parcela"`
	PaidInstallments   int     `json:"parcelas_pagas"`
	DueInstallments    int     `json:"a_vencer"`
	AmountPaid         float64 `json:"valor_ja_pago"`
	OutstandingBalance float64 `json:"valor_a_vencer"`
	FirstInstallment   string  `json:"primeira_parcela,omitempty"`
	NextInstallment    string  `json:"proxima_parcela,omitempty"`
	LastInstallment    string  `json:"data_ultima_parcela,omitempty"`
}

// Analysis is the registry snapshot for one client: the loans plus the
// portfolio summary computed by the service.
type Analysis struct {
	TotalBorrowed float64 `json:"total_emprestado"`
	TotalPaid     float64 `json:"total_pago"`
	TotalDue      float64 `json:"total_a_vencer"`
	Loans         []Loan  `json:"emprestimos"`
}
