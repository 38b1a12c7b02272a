package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fabianodasilvalira/tatystore-billing/internal/domain"
	customError "github.com/fabianodasilvalira/tatystore-billing/pkg/errors"
)

// Credential is the explicit per-call credential context. There is no
// ambient token state: every gateway call receives one, and a 401 from
// the server means the caller must reacquire it.
type Credential struct {
	// Token is the bearer token attached to every request.
	Token string
	// AdminSecret is the elevated credential required by the
	// mark-overdue batch endpoint.
	AdminSecret string
}

// Gateway defines the remote installment/payment API operations the
// core depends on. The server is the only writer of truth; the gateway
// never mutates anything locally.
type Gateway interface {
	// GetInstallmentDetail fetches the authoritative payment ledger
	// for one installment.
	GetInstallmentDetail(ctx context.Context, cred Credential, installmentID string) (*domain.InstallmentDetail, error)

	// CreatePayment records a payment against an installment. Callers
	// re-fetch detail afterwards rather than trusting an echoed body.
	CreatePayment(ctx context.Context, cred Credential, req domain.CreatePaymentRequest) error

	// ListCustomerInstallments returns every installment belonging to
	// a customer, across all of their sales.
	ListCustomerInstallments(ctx context.Context, cred Credential, customerID string) ([]domain.Installment, error)

	// GetCustomer fetches one customer with the server-computed debt
	// rollup.
	GetCustomer(ctx context.Context, cred Credential, customerID string) (*domain.Customer, error)

	// GetSale fetches one sale with its installment plan.
	GetSale(ctx context.Context, cred Credential, saleID string) (*domain.Sale, error)

	// MarkOverdue triggers the server-owned batch that flips eligible
	// pending installments to overdue. Requires the elevated
	// credential. The returned count is informational only.
	MarkOverdue(ctx context.Context, cred Credential) (*domain.MarkOverdueResult, error)
}

// Client is the HTTP implementation of Gateway.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "api-client").Logger(),
	}
}

func (c *Client) GetInstallmentDetail(ctx context.Context, cred Credential, installmentID string) (*domain.InstallmentDetail, error) {
	var detail domain.InstallmentDetail
	path := fmt.Sprintf("/installments/%s/detail", installmentID)
	if err := c.do(ctx, cred, http.MethodGet, path, nil, false, &detail); err != nil {
		return nil, err
	}
	c.warnUnknownStatus(detail.Installment)
	return &detail, nil
}

func (c *Client) CreatePayment(ctx context.Context, cred Credential, req domain.CreatePaymentRequest) error {
	return c.do(ctx, cred, http.MethodPost, "/payments", req, false, nil)
}

func (c *Client) ListCustomerInstallments(ctx context.Context, cred Credential, customerID string) ([]domain.Installment, error) {
	var pg page
	path := fmt.Sprintf("/customers/%s/installments", customerID)
	if err := c.do(ctx, cred, http.MethodGet, path, nil, false, &pg); err != nil {
		return nil, err
	}

	var installments []domain.Installment
	if err := json.Unmarshal(pg.Items, &installments); err != nil {
		return nil, customError.WrapServerError("malformed installment list payload", http.StatusOK)
	}
	c.warnUnknownStatus(installments...)
	return installments, nil
}

func (c *Client) GetCustomer(ctx context.Context, cred Credential, customerID string) (*domain.Customer, error) {
	var customer domain.Customer
	path := fmt.Sprintf("/customers/%s", customerID)
	if err := c.do(ctx, cred, http.MethodGet, path, nil, false, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) GetSale(ctx context.Context, cred Credential, saleID string) (*domain.Sale, error) {
	var sale domain.Sale
	path := fmt.Sprintf("/sales/%s", saleID)
	if err := c.do(ctx, cred, http.MethodGet, path, nil, false, &sale); err != nil {
		return nil, err
	}
	c.warnUnknownStatus(sale.Installments...)
	return &sale, nil
}

func (c *Client) MarkOverdue(ctx context.Context, cred Credential) (*domain.MarkOverdueResult, error) {
	var result domain.MarkOverdueResult
	if err := c.do(ctx, cred, http.MethodPost, "/cron/mark-overdue", nil, true, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// do performs one API call: attaches the credential, decodes the
// canonical envelope exactly once, and maps failures onto the error
// taxonomy. out, when non-nil, receives the envelope's data payload.
func (c *Client) do(ctx context.Context, cred Credential, method, path string, body interface{}, elevated bool, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return customError.NewBusinessError(customError.ErrCodeValidation, "could not encode request body", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return customError.WrapNetworkError(err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+cred.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if elevated {
		req.Header.Set("X-Admin-Secret", cred.AdminSecret)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Str("request_id", requestID).Str("path", path).Err(err).Msg("transport failure")
		return customError.WrapNetworkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return customError.WrapNetworkError(err)
	}

	var env envelope
	// The envelope is best-effort on error statuses: the server
	// message is preferred when it decodes, the status code decides
	// the classification either way.
	envErr := json.Unmarshal(raw, &env)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return customError.WrapUnauthorized(env.detail())
	case resp.StatusCode == http.StatusNotFound:
		msg := env.detail()
		if msg == "" {
			msg = "resource not found"
		}
		return customError.NewBusinessError(customError.ErrCodeNotFound, msg, customError.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return customError.WrapServerError(env.detail(), resp.StatusCode)
	}

	if envErr != nil || !env.Success {
		c.log.Warn().Str("request_id", requestID).Str("path", path).Msg("response outside the canonical envelope")
		return customError.WrapServerError(env.detail(), resp.StatusCode)
	}

	if out != nil {
		if len(env.Data) == 0 {
			return customError.WrapServerError("envelope carried no data", resp.StatusCode)
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return customError.WrapServerError("malformed data payload", resp.StatusCode)
		}
	}

	return nil
}

// warnUnknownStatus logs the defensive fallback so a drifting backend
// enum shows up in diagnostics instead of crashing a view.
func (c *Client) warnUnknownStatus(installments ...domain.Installment) {
	for _, inst := range installments {
		if inst.Status == domain.StatusUnknown {
			c.log.Warn().Str("installment_id", inst.ID).Msg("installment carries an unknown status")
		}
	}
}
