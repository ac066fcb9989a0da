package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/marcodesign21/chaset-tracker/internal/models"
)

// fakeGateway is a scripted Gateway. Reload calls it from two goroutines,
// so call recording is guarded.
type fakeGateway struct {
	loginReply LoginReply
	loginErr   error
	loginGate  chan struct{}

	txs     []models.Transaction
	txsErr  error
	creds   []models.Credential
	credErr error

	createdTx     models.Transaction
	createTxErr   error
	createdCred   models.Credential
	createCredErr error
	deleteErr     error

	mu          sync.Mutex
	calls       []string
	lastTx      TransactionPayload
	lastCred    CredentialPayload
	lastDeleted int
}

func (f *fakeGateway) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeGateway) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeGateway) Login(_ context.Context, _, _ string) (LoginReply, error) {
	f.record("login")
	if f.loginGate != nil {
		<-f.loginGate
	}
	return f.loginReply, f.loginErr
}

func (f *fakeGateway) ListTransactions(_ context.Context, _ int) ([]models.Transaction, error) {
	f.record("list_tx")
	return f.txs, f.txsErr
}

func (f *fakeGateway) CreateTransaction(_ context.Context, in TransactionPayload) (models.Transaction, error) {
	f.record("create_tx")
	f.mu.Lock()
	f.lastTx = in
	f.mu.Unlock()
	return f.createdTx, f.createTxErr
}

func (f *fakeGateway) DeleteTransaction(_ context.Context, id int) error {
	f.record("delete_tx")
	f.mu.Lock()
	f.lastDeleted = id
	f.mu.Unlock()
	return f.deleteErr
}

func (f *fakeGateway) ListCredentials(_ context.Context, _ int) ([]models.Credential, error) {
	f.record("list_cred")
	return f.creds, f.credErr
}

func (f *fakeGateway) CreateCredential(_ context.Context, in CredentialPayload) (models.Credential, error) {
	f.record("create_cred")
	f.mu.Lock()
	f.lastCred = in
	f.mu.Unlock()
	return f.createdCred, f.createCredErr
}

func (f *fakeGateway) DeleteCredential(_ context.Context, id int) error {
	f.record("delete_cred")
	f.mu.Lock()
	f.lastDeleted = id
	f.mu.Unlock()
	return f.deleteErr
}

// notices collects Notifier messages.
type notices struct {
	mu   sync.Mutex
	msgs []string
}

func (n *notices) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *notices) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.msgs...)
}

var fixedNow = func() time.Time { return time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC) }

func newTestController(gw *fakeGateway) (*Controller, *MemorySessionStore, *notices) {
	store := &MemorySessionStore{}
	n := &notices{}
	return NewController(gw, store, n, WithClock(fixedNow)), store, n
}

func loggedIn(t *testing.T, gw *fakeGateway) (*Controller, *MemorySessionStore, *notices) {
	t.Helper()
	gw.loginReply = LoginReply{Success: true, User: models.SessionUser{ID: 1, Username: "alice"}}
	c, store, n := newTestController(gw)
	if err := c.Login(context.Background(), "alice", "pw1"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	return c, store, n
}

func TestNewController_InitialState(t *testing.T) {
	c, _, _ := newTestController(&fakeGateway{})
	st := c.Snapshot()

	if st.LoggedIn() {
		t.Errorf("expected logged out")
	}
	if st.VaultNotice != models.VaultNotice {
		t.Errorf("vault notice missing")
	}
	d := st.DraftTransaction
	if d.Type != models.TypeExpense || d.Category != models.CategoryOther || d.Date != "2024-03-15" {
		t.Errorf("unexpected default draft %+v", d)
	}
}

func TestLogin_RejectsBlankWithoutRequest(t *testing.T) {
	gw := &fakeGateway{}
	c, _, n := newTestController(gw)

	err := c.Login(context.Background(), "  ", "pw")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if gw.called("login") != 0 {
		t.Errorf("no request must be sent")
	}
	if len(n.all()) != 1 {
		t.Errorf("expected one notice, got %v", n.all())
	}
}

func TestLogin_WelcomePersistsAndLoads(t *testing.T) {
	gw := &fakeGateway{
		loginReply: LoginReply{Success: true, User: models.SessionUser{ID: 1, Username: "alice"}, Message: "account created"},
		txs:        []models.Transaction{{ID: 1, Type: models.TypeIncome, Amount: models.MustMoney("10")}},
		creds:      []models.Credential{{ID: 4}},
	}
	c, store, n := newTestController(gw)

	if err := c.Login(context.Background(), " alice ", " pw1 "); err != nil {
		t.Fatalf("Login: %v", err)
	}

	st := c.Snapshot()
	if !st.LoggedIn() || st.User.ID != 1 {
		t.Fatalf("expected logged in as 1, got %+v", st.User)
	}
	if len(st.Transactions) != 1 || len(st.Credentials) != 1 {
		t.Errorf("expected both lists loaded, got %d/%d", len(st.Transactions), len(st.Credentials))
	}
	saved, _ := store.Load()
	if saved == nil || saved.Username != "alice" {
		t.Errorf("session not persisted: %+v", saved)
	}
	if msgs := n.all(); len(msgs) != 1 || msgs[0] != "account created" {
		t.Errorf("expected welcome notice, got %v", msgs)
	}
}

func TestLogin_FailureNotifiesAndKeepsState(t *testing.T) {
	gw := &fakeGateway{loginErr: &APIError{Status: 401, Message: "invalid credentials"}}
	c, store, n := newTestController(gw)

	err := c.Login(context.Background(), "alice", "wrongpw")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if c.Snapshot().LoggedIn() {
		t.Errorf("must stay logged out")
	}
	if u, _ := store.Load(); u != nil {
		t.Errorf("no session must be persisted")
	}
	if msgs := n.all(); len(msgs) != 1 || msgs[0] != "login failed: invalid credentials" {
		t.Errorf("unexpected notices %v", msgs)
	}
}

func TestLogin_OneAtATime(t *testing.T) {
	gw := &fakeGateway{
		loginReply: LoginReply{Success: true, User: models.SessionUser{ID: 1, Username: "alice"}},
		loginGate:  make(chan struct{}),
	}
	c, _, _ := newTestController(gw)

	done := make(chan error, 1)
	go func() { done <- c.Login(context.Background(), "alice", "pw") }()

	for gw.called("login") == 0 {
		time.Sleep(time.Millisecond)
	}
	if err := c.Login(context.Background(), "alice", "pw"); !errors.Is(err, ErrLoginInProgress) {
		t.Errorf("expected ErrLoginInProgress, got %v", err)
	}
	close(gw.loginGate)
	if err := <-done; err != nil {
		t.Fatalf("first login: %v", err)
	}
	if gw.called("login") != 1 {
		t.Errorf("expected a single login request, got %d", gw.called("login"))
	}
}

func TestStart_RestoresSession(t *testing.T) {
	gw := &fakeGateway{txs: []models.Transaction{{ID: 9}}}
	c, store, _ := newTestController(gw)
	_ = store.Save(models.SessionUser{ID: 3, Username: "bob"})

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	st := c.Snapshot()
	if st.User == nil || st.User.ID != 3 {
		t.Fatalf("expected restored user, got %+v", st.User)
	}
	if gw.called("list_tx") != 1 || gw.called("list_cred") != 1 {
		t.Errorf("expected an unconditional reload, calls=%v", gw.calls)
	}
}

func TestStart_NoSession(t *testing.T) {
	gw := &fakeGateway{}
	c, _, _ := newTestController(gw)

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(gw.calls) != 0 {
		t.Errorf("expected no requests, got %v", gw.calls)
	}
}

func TestReload_IndependentResults(t *testing.T) {
	gw := &fakeGateway{
		loginReply: LoginReply{Success: true, User: models.SessionUser{ID: 1, Username: "alice"}},
		txsErr:     ErrNetwork,
		creds:      []models.Credential{{ID: 8}},
	}
	c, _, n := newTestController(gw)

	err := c.Login(context.Background(), "alice", "pw1")
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected the ledger load error, got %v", err)
	}

	st := c.Snapshot()
	if len(st.Credentials) != 1 {
		t.Errorf("credentials must load despite the ledger failure")
	}
	if st.Transactions != nil {
		t.Errorf("failed ledger load must leave the cache unchanged, got %v", st.Transactions)
	}
	if msgs := n.all(); len(msgs) != 1 || msgs[0] != "could not load transactions: could not reach the server" {
		t.Errorf("unexpected notices %v", msgs)
	}
}

// slowNotifier flags any overlapping Notify calls.
type slowNotifier struct {
	inFlight atomic.Int32
	overlap  atomic.Bool
	count    atomic.Int32
}

func (n *slowNotifier) Notify(string) {
	if n.inFlight.Add(1) > 1 {
		n.overlap.Store(true)
	}
	time.Sleep(20 * time.Millisecond)
	n.inFlight.Add(-1)
	n.count.Add(1)
}

func TestReload_NotifiesOneAtATime(t *testing.T) {
	gw := &fakeGateway{txsErr: ErrNetwork, credErr: ErrNetwork}
	store := &MemorySessionStore{}
	if err := store.Save(models.SessionUser{ID: 1, Username: "alice"}); err != nil {
		t.Fatal(err)
	}
	n := &slowNotifier{}
	c := NewController(gw, store, n, WithClock(fixedNow))

	if err := c.Start(context.Background()); !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected both load errors, got %v", err)
	}
	if got := n.count.Load(); got != 2 {
		t.Fatalf("expected 2 notices, got %d", got)
	}
	if n.overlap.Load() {
		t.Errorf("Notify was called concurrently")
	}
}

func TestReload_NotLoggedIn(t *testing.T) {
	c, _, _ := newTestController(&fakeGateway{})
	if err := c.Reload(context.Background()); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestAddTransaction_PrependsCanonicalAndResetsDraft(t *testing.T) {
	gw := &fakeGateway{txs: []models.Transaction{{ID: 1, Type: models.TypeIncome, Amount: models.MustMoney("100")}}}
	c, _, _ := loggedIn(t, gw)

	gw.createdTx = models.Transaction{ID: 2, Type: models.TypeExpense, Amount: models.MustMoney("3.50"), Description: "Coffee"}
	c.SetTransactionDraft(TransactionDraft{
		Description: " Coffee ",
		Amount:      "3.5",
		Type:        models.TypeExpense,
		Category:    models.CategoryFood,
		Date:        "2024-01-01",
	})

	tx, err := c.AddTransaction(context.Background())
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if tx.ID != 2 {
		t.Errorf("expected canonical record, got %+v", tx)
	}
	if gw.lastTx.Description != "Coffee" || gw.lastTx.Amount.String() != "3.50" || gw.lastTx.UserID != 1 {
		t.Errorf("unexpected payload %+v", gw.lastTx)
	}

	st := c.Snapshot()
	if len(st.Transactions) != 2 || st.Transactions[0].ID != 2 {
		t.Fatalf("expected canonical record prepended, got %+v", st.Transactions)
	}
	if st.DraftTransaction != newTransactionDraft("2024-03-15") {
		t.Errorf("draft not reset: %+v", st.DraftTransaction)
	}
	if got := c.Balance().String(); got != "96.50" {
		t.Errorf("balance = %s, want 96.50", got)
	}
	if gw.called("list_tx") != 1 {
		t.Errorf("create must not re-fetch the list")
	}
}

func TestAddTransaction_FailureLeavesStateUnchanged(t *testing.T) {
	gw := &fakeGateway{txs: []models.Transaction{{ID: 1}}}
	c, _, n := loggedIn(t, gw)

	gw.createTxErr = &APIError{Status: 400, Message: "validation failed: unknown category"}
	draft := TransactionDraft{Description: "x", Amount: "1", Type: models.TypeExpense, Category: "gifts", Date: "2024-01-01"}
	c.SetTransactionDraft(draft)
	before := c.Snapshot()

	if _, err := c.AddTransaction(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	after := c.Snapshot()
	if len(after.Transactions) != len(before.Transactions) || after.DraftTransaction != draft {
		t.Errorf("state changed after failure: %+v", after)
	}
	if msgs := n.all(); len(msgs) != 1 || msgs[0] != "could not add transaction: validation failed: unknown category" {
		t.Errorf("unexpected notices %v", msgs)
	}
}

func TestAddTransaction_DraftValidation(t *testing.T) {
	gw := &fakeGateway{}
	c, _, _ := loggedIn(t, gw)

	for _, d := range []TransactionDraft{
		{Description: "", Amount: "1"},
		{Description: "x", Amount: " "},
		{Description: "x", Amount: "abc"},
	} {
		c.SetTransactionDraft(d)
		if _, err := c.AddTransaction(context.Background()); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("draft %+v: expected ErrInvalidInput, got %v", d, err)
		}
	}
	if gw.called("create_tx") != 0 {
		t.Errorf("invalid drafts must not be sent")
	}
}

func TestDeleteTransaction(t *testing.T) {
	gw := &fakeGateway{txs: []models.Transaction{{ID: 2}, {ID: 1}}}
	c, _, n := loggedIn(t, gw)

	gw.deleteErr = ErrNetwork
	if err := c.DeleteTransaction(context.Background(), 2); err == nil {
		t.Fatalf("expected error")
	}
	if len(c.Snapshot().Transactions) != 2 {
		t.Errorf("failed delete must not touch the cache")
	}
	if len(n.all()) != 1 {
		t.Errorf("expected one notice, got %v", n.all())
	}

	gw.deleteErr = nil
	if err := c.DeleteTransaction(context.Background(), 2); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	st := c.Snapshot()
	if len(st.Transactions) != 1 || st.Transactions[0].ID != 1 {
		t.Errorf("unexpected cache %+v", st.Transactions)
	}

	// the server reports success for ids it does not have
	if err := c.DeleteTransaction(context.Background(), 42); err != nil {
		t.Fatalf("DeleteTransaction(42): %v", err)
	}
	if len(c.Snapshot().Transactions) != 1 {
		t.Errorf("deleting an unknown id changed the cache")
	}
}

func TestCredentials_AddToggleDelete(t *testing.T) {
	gw := &fakeGateway{}
	c, _, _ := loggedIn(t, gw)

	gw.createdCred = models.Credential{ID: 5, Service: "GitHub", Email: "a@x.io", Password: "pw"}
	c.SetCredentialDraft(CredentialDraft{Service: "GitHub", Email: "a@x.io", Password: "pw"})
	if _, err := c.AddCredential(context.Background()); err != nil {
		t.Fatalf("AddCredential: %v", err)
	}
	if gw.lastCred.Notes != nil {
		t.Errorf("empty notes must be sent as null")
	}

	st := c.Snapshot()
	if len(st.Credentials) != 1 || st.Credentials[0].ID != 5 {
		t.Fatalf("unexpected credentials %+v", st.Credentials)
	}
	if st.DraftCredential != (CredentialDraft{}) {
		t.Errorf("credential draft not reset")
	}

	if !c.TogglePasswordVisibility(5) {
		t.Errorf("first toggle must reveal")
	}
	if c.TogglePasswordVisibility(5) {
		t.Errorf("second toggle must hide")
	}
	c.TogglePasswordVisibility(5)
	callsBefore := len(gw.calls)

	if err := c.DeleteCredential(context.Background(), 5); err != nil {
		t.Fatalf("DeleteCredential: %v", err)
	}
	st = c.Snapshot()
	if len(st.Credentials) != 0 {
		t.Errorf("credential not removed")
	}
	if _, ok := st.ShowPasswords[5]; ok {
		t.Errorf("visibility flag must be dropped with the credential")
	}
	if len(gw.calls) != callsBefore+1 {
		t.Errorf("toggling must not call the server")
	}
}

func TestAddCredential_RequiresServiceAndEmail(t *testing.T) {
	gw := &fakeGateway{}
	c, _, _ := loggedIn(t, gw)

	c.SetCredentialDraft(CredentialDraft{Service: "GitHub"})
	if _, err := c.AddCredential(context.Background()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if gw.called("create_cred") != 0 {
		t.Errorf("invalid draft must not be sent")
	}
}

func TestLogout_ClearsEverything(t *testing.T) {
	gw := &fakeGateway{
		txs:   []models.Transaction{{ID: 1}},
		creds: []models.Credential{{ID: 2}},
	}
	c, store, _ := loggedIn(t, gw)
	c.TogglePasswordVisibility(2)

	if err := c.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	st := c.Snapshot()
	if st.LoggedIn() || len(st.Transactions) != 0 || len(st.Credentials) != 0 || len(st.ShowPasswords) != 0 {
		t.Errorf("state not cleared: %+v", st)
	}
	if st.VaultNotice != models.VaultNotice {
		t.Errorf("vault notice must survive logout")
	}
	if u, _ := store.Load(); u != nil {
		t.Errorf("persisted session not cleared")
	}
	if _, err := c.AddTransaction(context.Background()); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn after logout, got %v", err)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	gw := &fakeGateway{txs: []models.Transaction{{ID: 1}}}
	c, _, _ := loggedIn(t, gw)

	st := c.Snapshot()
	st.Transactions[0].ID = 99
	st.ShowPasswords[1] = true
	st.User.Username = "mallory"

	again := c.Snapshot()
	if again.Transactions[0].ID != 1 || again.ShowPasswords[1] || again.User.Username != "alice" {
		t.Errorf("snapshot aliases controller state: %+v", again)
	}
}
