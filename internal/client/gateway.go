package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/marcodesign21/chaset-tracker/internal/models"
)

// Gateway is the client's view of the REST API.
type Gateway interface {
	Login(ctx context.Context, username, password string) (LoginReply, error)
	ListTransactions(ctx context.Context, userID int) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, in TransactionPayload) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, id int) error
	ListCredentials(ctx context.Context, userID int) ([]models.Credential, error)
	CreateCredential(ctx context.Context, in CredentialPayload) (models.Credential, error)
	DeleteCredential(ctx context.Context, id int) error
}

// LoginReply is a successful login. Message is the welcome text, set only
// when the call registered the user.
type LoginReply struct {
	Success bool               `json:"success"`
	User    models.SessionUser `json:"user"`
	Message string             `json:"message,omitempty"`
}

type TransactionPayload struct {
	UserID      int                    `json:"user_id"`
	Description string                 `json:"description"`
	Amount      models.Money           `json:"amount"`
	Type        models.TransactionType `json:"type"`
	Category    models.Category        `json:"category"`
	Date        string                 `json:"date"`
}

type CredentialPayload struct {
	UserID   int     `json:"user_id"`
	Service  string  `json:"service"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Notes    *string `json:"notes"`
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HTTPGateway talks to the API over HTTP/JSON.
type HTTPGateway struct {
	baseURL string
	http    *http.Client
}

// NewHTTPGateway returns a gateway rooted at baseURL. A nil hc uses
// http.DefaultClient, so timeouts are the transport defaults.
func NewHTTPGateway(baseURL string, hc *http.Client) *HTTPGateway {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPGateway{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

func (g *HTTPGateway) Login(ctx context.Context, username, password string) (LoginReply, error) {
	var out LoginReply
	err := g.do(ctx, http.MethodPost, "/api/auth/login", loginPayload{Username: username, Password: password}, &out)
	return out, err
}

func (g *HTTPGateway) ListTransactions(ctx context.Context, userID int) ([]models.Transaction, error) {
	out := []models.Transaction{}
	err := g.do(ctx, http.MethodGet, "/api/transactions/"+strconv.Itoa(userID), nil, &out)
	return out, err
}

func (g *HTTPGateway) CreateTransaction(ctx context.Context, in TransactionPayload) (models.Transaction, error) {
	var out models.Transaction
	err := g.do(ctx, http.MethodPost, "/api/transactions", in, &out)
	return out, err
}

func (g *HTTPGateway) DeleteTransaction(ctx context.Context, id int) error {
	return g.do(ctx, http.MethodDelete, "/api/transactions/"+strconv.Itoa(id), nil, nil)
}

func (g *HTTPGateway) ListCredentials(ctx context.Context, userID int) ([]models.Credential, error) {
	out := []models.Credential{}
	err := g.do(ctx, http.MethodGet, "/api/credentials/"+strconv.Itoa(userID), nil, &out)
	return out, err
}

func (g *HTTPGateway) CreateCredential(ctx context.Context, in CredentialPayload) (models.Credential, error) {
	var out models.Credential
	err := g.do(ctx, http.MethodPost, "/api/credentials", in, &out)
	return out, err
}

func (g *HTTPGateway) DeleteCredential(ctx context.Context, id int) error {
	return g.do(ctx, http.MethodDelete, "/api/credentials/"+strconv.Itoa(id), nil, nil)
}

// do sends one request and decodes a 2xx body into out (when non-nil).
// Non-2xx replies become *APIError; transport failures wrap ErrNetwork.
func (g *HTTPGateway) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		if derr := json.NewDecoder(resp.Body).Decode(&e); derr != nil || e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", ErrNetwork, method, path, err)
	}
	return nil
}
