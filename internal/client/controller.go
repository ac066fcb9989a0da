package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/marcodesign21/chaset-tracker/internal/ledger"
	"github.com/marcodesign21/chaset-tracker/internal/logger"
	"github.com/marcodesign21/chaset-tracker/internal/models"
)

const (
	msgCredentialsRequired = "username and password are required"
	msgLoginFailed         = "login failed"
	msgConnection          = "could not reach the server"
)

// Controller owns the client State and routes every mutation through the
// Gateway. Server replies are applied to the cache only on success; a
// failure is logged, passed to the Notifier and leaves State untouched.
type Controller struct {
	gw       Gateway
	sessions SessionStore
	notifier Notifier
	log      *logger.Logger
	now      func() time.Time

	loginMu sync.Mutex

	// notifyMu serializes Notifier calls; Reload reports from two goroutines.
	notifyMu sync.Mutex

	mu    sync.RWMutex
	state State
}

type Option func(*Controller)

// WithClock sets the clock used for the default draft date.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) { c.log = l }
}

func NewController(gw Gateway, sessions SessionStore, notifier Notifier, opts ...Option) *Controller {
	c := &Controller{
		gw:       gw,
		sessions: sessions,
		notifier: notifier,
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notifier == nil {
		c.notifier = NotifierFunc(func(string) {})
	}
	c.state = c.emptyState()
	return c
}

func (c *Controller) today() string {
	return models.NewDate(c.now()).String()
}

func (c *Controller) emptyState() State {
	return State{
		ShowPasswords:    map[int]bool{},
		DraftTransaction: newTransactionDraft(c.today()),
		VaultNotice:      models.VaultNotice,
	}
}

// Snapshot returns a copy of the current state, safe to read while the
// controller keeps mutating.
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.clone()
}

// Summary derives the totals from the cached ledger.
func (c *Controller) Summary() ledger.Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Summary()
}

// Balance is Summary().Balance.
func (c *Controller) Balance() models.Money {
	return c.Summary().Balance
}

func (c *Controller) currentUser() *models.SessionUser {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state.User == nil {
		return nil
	}
	u := *c.state.User
	return &u
}

// sameUser reports whether id is still the logged-in user. Callers hold mu.
func (c *Controller) sameUser(id int) bool {
	return c.state.User != nil && c.state.User.ID == id
}

func (c *Controller) notify(msg string) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	c.notifier.Notify(msg)
}

func (c *Controller) fail(event, msg string, err error, kv ...interface{}) error {
	c.log.Warnw(event, append([]interface{}{"err", err}, kv...)...)
	c.notify(describe(msg, err))
	return err
}

// describe renders err for the user: server messages verbatim, transport
// failures as a generic connection notice.
func describe(prefix string, err error) string {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return prefix + ": " + apiErr.Message
	case errors.Is(err, ErrNetwork):
		return prefix + ": " + msgConnection
	default:
		return prefix + ": " + err.Error()
	}
}

// Start restores a persisted session and, when present, reloads both lists.
func (c *Controller) Start(ctx context.Context) error {
	u, err := c.sessions.Load()
	if err != nil {
		c.log.Warnw("session_load_failed", "err", err)
		return err
	}
	if u == nil {
		return nil
	}
	c.mu.Lock()
	c.state.User = u
	c.mu.Unlock()
	return c.Reload(ctx)
}

// Login trims both fields, rejects empties without a request, then logs in
// or registers. On success the session is persisted, data is loaded and a
// welcome message, when the server sent one, is passed to the Notifier.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	if !c.loginMu.TryLock() {
		return ErrLoginInProgress
	}
	defer c.loginMu.Unlock()

	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		c.notify(msgCredentialsRequired)
		return fmt.Errorf("%w: %s", ErrInvalidInput, msgCredentialsRequired)
	}

	reply, err := c.gw.Login(ctx, username, password)
	if err != nil {
		return c.fail("client_login_failed", msgLoginFailed, err, "username", username)
	}

	if err := c.sessions.Save(reply.User); err != nil {
		c.log.Warnw("session_save_failed", "err", err, "user_id", reply.User.ID)
	}

	c.mu.Lock()
	c.state = c.emptyState()
	user := reply.User
	c.state.User = &user
	c.mu.Unlock()

	loadErr := c.Reload(ctx)
	if reply.Message != "" {
		c.notify(reply.Message)
	}
	return loadErr
}

// Logout forgets the session, both caches, drafts and visibility toggles.
func (c *Controller) Logout() error {
	c.mu.Lock()
	c.state = c.emptyState()
	c.mu.Unlock()

	if err := c.sessions.Clear(); err != nil {
		c.log.Warnw("session_clear_failed", "err", err)
		return err
	}
	return nil
}

// Reload replaces both caches with the server's lists. The two fetches run
// concurrently and each result is applied as soon as it arrives, so one
// failing does not hold back or discard the other.
func (c *Controller) Reload(ctx context.Context) error {
	user := c.currentUser()
	if user == nil {
		return ErrNotLoggedIn
	}

	var (
		wg              sync.WaitGroup
		txErr, credErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		txs, err := c.gw.ListTransactions(ctx, user.ID)
		if err != nil {
			txErr = c.fail("client_load_transactions_failed", "could not load transactions", err, "user_id", user.ID)
			return
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.sameUser(user.ID) {
			c.state.Transactions = txs
		}
	}()
	go func() {
		defer wg.Done()
		creds, err := c.gw.ListCredentials(ctx, user.ID)
		if err != nil {
			credErr = c.fail("client_load_credentials_failed", "could not load credentials", err, "user_id", user.ID)
			return
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.sameUser(user.ID) {
			c.state.Credentials = creds
		}
	}()
	wg.Wait()

	return errors.Join(txErr, credErr)
}

// SetTransactionDraft replaces the pending ledger input.
func (c *Controller) SetTransactionDraft(d TransactionDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.DraftTransaction = d
}

// SetCredentialDraft replaces the pending vault input.
func (c *Controller) SetCredentialDraft(d CredentialDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.DraftCredential = d
}

// AddTransaction submits the current draft. The canonical record returned by
// the server is prepended to the cache and the draft is reset.
func (c *Controller) AddTransaction(ctx context.Context) (models.Transaction, error) {
	user := c.currentUser()
	if user == nil {
		return models.Transaction{}, ErrNotLoggedIn
	}
	c.mu.RLock()
	draft := c.state.DraftTransaction
	c.mu.RUnlock()

	payload, err := draft.payload(user.ID)
	if err != nil {
		c.notify(err.Error())
		return models.Transaction{}, err
	}

	tx, err := c.gw.CreateTransaction(ctx, payload)
	if err != nil {
		return models.Transaction{}, c.fail("client_add_transaction_failed", "could not add transaction", err, "user_id", user.ID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sameUser(user.ID) {
		c.state.Transactions = PrependTransaction(c.state.Transactions, tx)
		c.state.DraftTransaction = newTransactionDraft(c.today())
	}
	return tx, nil
}

// DeleteTransaction removes id on the server, then from the cache.
func (c *Controller) DeleteTransaction(ctx context.Context, id int) error {
	user := c.currentUser()
	if user == nil {
		return ErrNotLoggedIn
	}
	if err := c.gw.DeleteTransaction(ctx, id); err != nil {
		return c.fail("client_delete_transaction_failed", "could not delete transaction", err, "id", id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sameUser(user.ID) {
		c.state.Transactions = RemoveTransaction(c.state.Transactions, id)
	}
	return nil
}

// AddCredential submits the current credential draft.
func (c *Controller) AddCredential(ctx context.Context) (models.Credential, error) {
	user := c.currentUser()
	if user == nil {
		return models.Credential{}, ErrNotLoggedIn
	}
	c.mu.RLock()
	draft := c.state.DraftCredential
	c.mu.RUnlock()

	payload, err := draft.payload(user.ID)
	if err != nil {
		c.notify(err.Error())
		return models.Credential{}, err
	}

	cred, err := c.gw.CreateCredential(ctx, payload)
	if err != nil {
		return models.Credential{}, c.fail("client_add_credential_failed", "could not add credential", err, "user_id", user.ID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sameUser(user.ID) {
		c.state.Credentials = PrependCredential(c.state.Credentials, cred)
		c.state.DraftCredential = CredentialDraft{}
	}
	return cred, nil
}

func (c *Controller) DeleteCredential(ctx context.Context, id int) error {
	user := c.currentUser()
	if user == nil {
		return ErrNotLoggedIn
	}
	if err := c.gw.DeleteCredential(ctx, id); err != nil {
		return c.fail("client_delete_credential_failed", "could not delete credential", err, "id", id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sameUser(user.ID) {
		c.state.Credentials = RemoveCredential(c.state.Credentials, id)
		delete(c.state.ShowPasswords, id)
	}
	return nil
}

// TogglePasswordVisibility flips the per-id reveal flag and returns its new value.
// It never touches the server.
func (c *Controller) TogglePasswordVisibility(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ShowPasswords[id] = !c.state.ShowPasswords[id]
	return c.state.ShowPasswords[id]
}

func (d TransactionDraft) payload(userID int) (TransactionPayload, error) {
	desc := strings.TrimSpace(d.Description)
	if desc == "" || strings.TrimSpace(d.Amount) == "" {
		return TransactionPayload{}, fmt.Errorf("%w: description and amount are required", ErrInvalidInput)
	}
	amount, err := models.ParseMoney(strings.TrimSpace(d.Amount))
	if err != nil {
		return TransactionPayload{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return TransactionPayload{
		UserID:      userID,
		Description: desc,
		Amount:      amount,
		Type:        d.Type,
		Category:    d.Category,
		Date:        d.Date,
	}, nil
}

func (d CredentialDraft) payload(userID int) (CredentialPayload, error) {
	svc := strings.TrimSpace(d.Service)
	email := strings.TrimSpace(d.Email)
	if svc == "" || email == "" {
		return CredentialPayload{}, fmt.Errorf("%w: service and email are required", ErrInvalidInput)
	}
	p := CredentialPayload{
		UserID:   userID,
		Service:  svc,
		Email:    email,
		Password: d.Password,
	}
	if notes := strings.TrimSpace(d.Notes); notes != "" {
		p.Notes = &notes
	}
	return p, nil
}
