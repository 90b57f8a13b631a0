package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Edney2025/edyfinance-pro/domain"
)

// PricingClient talks to the pricing/renegotiation HTTP service. It never
// retries: every retry in this portal is an explicit user action.
type PricingClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewPricingClient(baseURL string, logger *zap.Logger) *PricingClient {
	return &PricingClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// FetchAnalysis loads the loan registry snapshot for one client.
func (c *PricingClient) FetchAnalysis(ctx context.Context, clienteID uuid.UUID) (*domain.Analysis, error) {
	url := fmt.Sprintf("%s/api/cliente/analise/%s", c.baseURL, clienteID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &RequestError{Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.requestError(resp)
	}

	var analysis domain.Analysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return nil, &RequestError{Status: resp.StatusCode, Err: err}
	}
	return &analysis, nil
}

// RequestProposal issues exactly one renegotiation request for the given
// loan ids and returns the raw proposal. Structural validation belongs to
// the caller.
func (c *PricingClient) RequestProposal(ctx context.Context, loanIDs []string) (*domain.Proposal, error) {
	body, err := json.Marshal(map[string][]string{"loan_ids": loanIDs})
	if err != nil {
		return nil, &RequestError{Err: err}
	}

	url := c.baseURL + "/api/proposta/renegociar-multiplos"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.requestError(resp)
	}

	var proposal domain.Proposal
	if err := json.NewDecoder(resp.Body).Decode(&proposal); err != nil {
		return nil, &RequestError{Status: resp.StatusCode, Err: err}
	}
	return &proposal, nil
}

// requestError extracts the optional {"error": "..."} reason from a
// non-success response.
func (c *PricingClient) requestError(resp *http.Response) *RequestError {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Debug("corpo de erro ilegível", zap.Int("status", resp.StatusCode), zap.Error(err))
	}
	return &RequestError{Status: resp.StatusCode, Reason: body.Error}
}
