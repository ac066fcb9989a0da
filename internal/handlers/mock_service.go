package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/marcodesign21/chaset-tracker/internal/models"
	"github.com/marcodesign21/chaset-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	result service.LoginResult
	err    error

	lastUsername string
	lastPassword string
	calls        int
}

func (m *mockAuth) Login(_ context.Context, username, password string) (service.LoginResult, error) {
	m.calls++
	m.lastUsername = username
	m.lastPassword = password
	return m.result, m.err
}

type mockLedger struct {
	list      []models.Transaction
	listErr   error
	created   models.Transaction
	createErr error
	deleteErr error

	lastListUser int
	lastInput    service.TransactionInput
	lastDeleteID int
	createCalls  int
}

func (m *mockLedger) ListTransactions(_ context.Context, userID int) ([]models.Transaction, error) {
	m.lastListUser = userID
	return m.list, m.listErr
}

func (m *mockLedger) CreateTransaction(_ context.Context, in service.TransactionInput) (models.Transaction, error) {
	m.createCalls++
	m.lastInput = in
	return m.created, m.createErr
}

func (m *mockLedger) DeleteTransaction(_ context.Context, id int) error {
	m.lastDeleteID = id
	return m.deleteErr
}

type mockVault struct {
	list      []models.Credential
	listErr   error
	created   models.Credential
	createErr error
	deleteErr error

	lastListUser int
	lastInput    service.CredentialInput
	lastDeleteID int
}

func (m *mockVault) ListCredentials(_ context.Context, userID int) ([]models.Credential, error) {
	m.lastListUser = userID
	return m.list, m.listErr
}

func (m *mockVault) CreateCredential(_ context.Context, in service.CredentialInput) (models.Credential, error) {
	m.lastInput = in
	return m.created, m.createErr
}

func (m *mockVault) DeleteCredential(_ context.Context, id int) error {
	m.lastDeleteID = id
	return m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, "")
	return h.InitRoutes()
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}
