package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rml/bookkeeper/internal/application/datacache"
	"github.com/rml/bookkeeper/internal/application/identitysvc"
	"github.com/rml/bookkeeper/internal/application/ledgersvc"
	"github.com/rml/bookkeeper/internal/application/reportsvc"
	"github.com/rml/bookkeeper/internal/domain/identity"
	"github.com/rml/bookkeeper/internal/domain/ledger"
	"github.com/rml/bookkeeper/internal/domain/shared"
	"github.com/rml/bookkeeper/internal/infrastructure/config"
	"github.com/rml/bookkeeper/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// liveStore is an in-memory document store whose subscriptions see every
// write, so reads through the cache behave like the real change streams.
type liveStore struct {
	mu    sync.Mutex
	data  map[string]map[string]ledger.Document
	feeds map[string][]*liveFeed
}

func newLiveStore() *liveStore {
	return &liveStore{
		data:  make(map[string]map[string]ledger.Document),
		feeds: make(map[string][]*liveFeed),
	}
}

func toDocument(record any) ledger.Document {
	raw, _ := json.Marshal(record)
	var m map[string]any
	_ = json.Unmarshal(raw, &m)
	if id, ok := m["id"]; ok {
		m["_id"] = id
		delete(m, "id")
	}
	return ledger.Document(m)
}

func (s *liveStore) snapshotLocked(collection string) []ledger.Document {
	docs := make([]ledger.Document, 0, len(s.data[collection]))
	for _, d := range s.data[collection] {
		docs = append(docs, d)
	}
	return docs
}

func (s *liveStore) broadcastLocked(collection string) {
	docs := s.snapshotLocked(collection)
	for _, f := range s.feeds[collection] {
		f.push(docs)
	}
}

func (s *liveStore) Snapshot(_ context.Context, _, collection string) ([]ledger.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(collection), nil
}

func (s *liveStore) Watch(_ context.Context, _, collection string) (ledger.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := &liveFeed{ch: make(chan []ledger.Document, 1)}
	f.push(s.snapshotLocked(collection))
	s.feeds[collection] = append(s.feeds[collection], f)
	return f, nil
}

func (s *liveStore) Get(_ context.Context, _, collection, id string) (ledger.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.data[collection][id]; ok {
		return d, nil
	}
	return nil, shared.ErrNotFound
}

func (s *liveStore) Find(_ context.Context, _, collection, field string, value any) ([]ledger.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ledger.Document
	for _, d := range s.data[collection] {
		if d[field] == value {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *liveStore) Insert(_ context.Context, _, collection string, record any) error {
	doc := toDocument(record)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[collection] == nil {
		s.data[collection] = make(map[string]ledger.Document)
	}
	s.data[collection][doc.String("_id")] = doc
	s.broadcastLocked(collection)
	return nil
}

func (s *liveStore) Update(_ context.Context, _, collection, id string, record any) error {
	doc := toDocument(record)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[collection][id]; !ok {
		return shared.ErrNotFound
	}
	s.data[collection][id] = doc
	s.broadcastLocked(collection)
	return nil
}

func (s *liveStore) Delete(_ context.Context, _, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[collection][id]; !ok {
		return shared.ErrNotFound
	}
	delete(s.data[collection], id)
	s.broadcastLocked(collection)
	return nil
}

type liveFeed struct {
	mu     sync.Mutex
	ch     chan []ledger.Document
	closed bool
}

func (f *liveFeed) Updates() <-chan []ledger.Document { return f.ch }

func (f *liveFeed) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.ch)
	}
}

func (f *liveFeed) push(docs []ledger.Document) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	select {
	case <-f.ch:
	default:
	}
	f.ch <- docs
}

type memoryAccounts struct {
	mu       sync.Mutex
	accounts map[string]*identity.Account
}

func (m *memoryAccounts) FindByEmail(_ context.Context, email string) (*identity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memoryAccounts) FindByID(_ context.Context, id string) (*identity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memoryAccounts) Insert(_ context.Context, account *identity.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == account.Email {
			return shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
		}
	}
	m.accounts[account.ID] = account
	return nil
}

func newTestEngine(t *testing.T) http.Handler {
	t.Helper()
	log := zap.NewNop()
	store := newLiveStore()

	caches := datacache.NewManager(store, nil, log)
	t.Cleanup(caches.Shutdown)

	jwtCfg := config.JWTConfig{Secret: "test-secret", Issuer: "bookkeeper", Expiration: time.Hour}
	reportCfg := config.ReportConfig{
		OrgName: "RML Business Services", OrgSuffix: "RML",
		Currency: "UGX", Confidential: "CONFIDENTIAL",
	}

	identitySvc := identitysvc.NewService(&memoryAccounts{accounts: make(map[string]*identity.Account)}, jwtCfg, log)
	sales := ledgersvc.NewSaleService(store, log)
	debts := ledgersvc.NewDebtService(store, log)
	expenses := ledgersvc.NewExpenseService(store, log)
	supplies := ledgersvc.NewSupplyService(store, log)
	deposits := ledgersvc.NewDepositService(store, log)
	refs := ledgersvc.NewReferenceService(store, log)
	reports := reportsvc.NewService(caches, reportCfg, log)

	return New("development", identitySvc, Handlers{
		Auth:       handler.NewAuthHandler(identitySvc, caches),
		Sales:      handler.NewSalesHandler(sales, caches),
		Debts:      handler.NewDebtsHandler(debts, caches),
		Expenses:   handler.NewExpensesHandler(expenses, caches),
		Supplies:   handler.NewSuppliesHandler(supplies, caches),
		References: handler.NewReferencesHandler(refs, caches),
		Deposits:   handler.NewDepositsHandler(deposits, caches),
		Reports:    handler.NewReportsHandler(reports, "today"),
	}, log)
}

func doJSON(t *testing.T, engine http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success, "body: %s", rec.Body.String())
	return resp.Data
}

func loginTestUser(t *testing.T, engine http.Handler) string {
	t.Helper()
	rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email": "owner@shop.tz", "name": "Owner", "password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "owner@shop.tz", "password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := decodeData(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// fetchList reads a list endpoint; ok is false while the cache is still warming
func fetchList(engine http.Handler, path, token string) ([]map[string]any, bool) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		return nil, false
	}
	var resp struct {
		Success bool             `json:"success"`
		Data    []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || !resp.Success {
		return nil, false
	}
	return resp.Data, true
}

// waitForList polls a list endpoint until the live snapshot holds n records
func waitForList(t *testing.T, engine http.Handler, path, token string, n int) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.Eventually(t, func() bool {
		list, ok := fetchList(engine, path, token)
		if !ok || len(list) != n {
			return false
		}
		out = list
		return true
	}, 2*time.Second, 10*time.Millisecond)
	return out
}

// ============================================
// Auth Flow Tests
// ============================================

func TestRouter_Health(t *testing.T) {
	engine := newTestEngine(t)
	rec := doJSON(t, engine, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouter_EchoesIncomingRequestID(t *testing.T) {
	engine := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

func TestRouter_RejectsMissingToken(t *testing.T) {
	engine := newTestEngine(t)

	for _, path := range []string{"/api/v1/sales", "/api/v1/debts", "/api/v1/dashboard/quick-stats"} {
		rec := doJSON(t, engine, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := doJSON(t, engine, http.MethodGet, "/api/v1/sales", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RegisterLoginLogout(t *testing.T) {
	engine := newTestEngine(t)
	token := loginTestUser(t, engine)

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_LoginRejectsWrongPassword(t *testing.T) {
	engine := newTestEngine(t)
	loginTestUser(t, engine)

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "owner@shop.tz", "password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ============================================
// Business Flow Tests
// ============================================

func TestRouter_SaleToDebtToSettlementFlow(t *testing.T) {
	engine := newTestEngine(t)
	token := loginTestUser(t, engine)

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/products", token, map[string]any{
		"name": "Straws", "price": 1000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	productID, _ := decodeData(t, rec)["id"].(string)
	require.NotEmpty(t, productID)

	// Underpaid sale opens a debt for the balance
	rec = doJSON(t, engine, http.MethodPost, "/api/v1/sales", token, map[string]any{
		"client": "alice", "product_id": productID, "quantity": 10,
		"unit_price": 1000, "discount": 500, "amount_paid": 4000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	waitForList(t, engine, "/api/v1/sales", token, 1)
	debtsList := waitForList(t, engine, "/api/v1/debts", token, 1)
	assert.Equal(t, "alice", debtsList[0]["client"])
	assert.Equal(t, "5500", fmt.Sprint(debtsList[0]["amount"]))
	debtID, _ := debtsList[0]["id"].(string)
	require.NotEmpty(t, debtID)

	// Settling the debt marks the sale fully paid and keeps the debt on the
	// books at zero
	rec = doJSON(t, engine, http.MethodPost, "/api/v1/debts/"+debtID+"/payments", token, map[string]any{
		"amount": 5500,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Eventually(t, func() bool {
		salesList, ok := fetchList(engine, "/api/v1/sales", token)
		return ok && len(salesList) == 1 && salesList[0]["payment_status"] == "paid"
	}, 2*time.Second, 10*time.Millisecond)

	debtsList = waitForList(t, engine, "/api/v1/debts", token, 1)
	assert.Equal(t, "0", fmt.Sprint(debtsList[0]["amount"]))
}

func TestRouter_OverpaymentRejected(t *testing.T) {
	engine := newTestEngine(t)
	token := loginTestUser(t, engine)

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/sales", token, map[string]any{
		"client": "bob", "product_id": "prod-1", "quantity": 2,
		"unit_price": 1000, "amount_paid": 500,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	debtsList := waitForList(t, engine, "/api/v1/debts", token, 1)
	debtID, _ := debtsList[0]["id"].(string)

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/debts/"+debtID+"/payments", token, map[string]any{
		"amount": 9999,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestRouter_ExpensesCRUD(t *testing.T) {
	engine := newTestEngine(t)
	token := loginTestUser(t, engine)

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/expenses", token, map[string]any{
		"category": "Fuel", "amount": 3000, "payee": "Station",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	expenseID, _ := decodeData(t, rec)["id"].(string)

	list := waitForList(t, engine, "/api/v1/expenses", token, 1)
	assert.Equal(t, "Fuel", list[0]["category"])

	rec = doJSON(t, engine, http.MethodPut, "/api/v1/expenses/"+expenseID, token, map[string]any{
		"category": "Transport", "amount": 3500,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, engine, http.MethodDelete, "/api/v1/expenses/"+expenseID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	waitForList(t, engine, "/api/v1/expenses", token, 0)
}

// ============================================
// Dashboard and Report Tests
// ============================================

func TestRouter_QuickStats(t *testing.T) {
	engine := newTestEngine(t)
	token := loginTestUser(t, engine)

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/sales", token, map[string]any{
		"client": "alice", "product_id": "prod-1", "quantity": 10,
		"unit_price": 1000, "discount": 500, "amount_paid": 4000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = doJSON(t, engine, http.MethodPost, "/api/v1/expenses", token, map[string]any{
		"category": "Fuel", "amount": 3000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	waitForList(t, engine, "/api/v1/sales", token, 1)
	waitForList(t, engine, "/api/v1/expenses", token, 1)

	rec = doJSON(t, engine, http.MethodGet, "/api/v1/dashboard/quick-stats?filter=all", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stats := decodeData(t, rec)
	assert.Equal(t, "9500", fmt.Sprint(stats["sales_total"]))
	assert.Equal(t, "1000", fmt.Sprint(stats["balance"]))
	assert.Equal(t, float64(1), stats["unpaid_count"])
}

func TestRouter_ReportDownload(t *testing.T) {
	engine := newTestEngine(t)
	token := loginTestUser(t, engine)

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/expenses", token, map[string]any{
		"category": "Fuel", "amount": 3000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	waitForList(t, engine, "/api/v1/expenses", token, 1)

	rec = doJSON(t, engine, http.MethodGet, "/api/v1/reports/expenses?filter=all", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	disposition := rec.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, "Expenses_Report_")
	assert.True(t, strings.HasSuffix(disposition, `_RML.pdf"`), disposition)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}
