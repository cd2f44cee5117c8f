package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAMMd/internal/core/tx"
	_ "github.com/LeJamon/goAMMd/internal/core/tx/all"
	"github.com/LeJamon/goAMMd/internal/storage/statedb"
	"github.com/LeJamon/goAMMd/internal/tokenledger"
)

type testServer struct {
	e      *echo.Echo
	engine *tx.Engine
	tokens *tokenledger.MemoryLedger
	admin  solana.PublicKey
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	view, err := statedb.Open(t.TempDir(), statedb.Options{CacheSize: 16})
	require.NoError(t, err)
	t.Cleanup(func() { view.Close() })

	tokens := tokenledger.NewMemoryLedger()
	engine := tx.NewEngine(view, tokens, nil, tx.EngineConfig{})

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	e := echo.New()
	RegisterRoutes(e, &Handlers{Engine: engine, Logger: log})

	var admin [32]byte
	admin[0] = 0xA0

	return &testServer{e: e, engine: engine, tokens: tokens, admin: solana.PublicKey(admin)}
}

func (s *testServer) request(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) submit(t *testing.T, body string) TxResponse {
	t.Helper()
	rec := s.request(http.MethodPost, "/v1/tx", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp TxResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(http.MethodGet, "/v1/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestSubmitInitialize(t *testing.T) {
	s := newTestServer(t)

	resp := s.submit(t, fmt.Sprintf(`{"TransactionType":"Initialize","Account":%q}`, s.admin))
	assert.Equal(t, "tesSUCCESS", resp.Result)
	assert.True(t, resp.Applied)

	// A second initialization is rejected but still a valid submission.
	resp = s.submit(t, fmt.Sprintf(`{"TransactionType":"Initialize","Account":%q}`, s.admin))
	assert.Equal(t, "tefALREADY_INITIALIZED", resp.Result)
	assert.False(t, resp.Applied)
}

func TestSubmitRejectsBadPayloads(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(http.MethodPost, "/v1/tx", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.request(http.MethodPost, "/v1/tx", `{"TransactionType":"Teleport","Account":"11111111111111111111111111111111"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParameters(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(http.MethodGet, "/v1/parameters", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	s.submit(t, fmt.Sprintf(`{"TransactionType":"Initialize","Account":%q}`, s.admin))
	resp := s.submit(t, fmt.Sprintf(
		`{"TransactionType":"SetParameters","Account":%q,"ProtocolFeeBps":30,"ReferrerFeeBps":5,"ReferrerFeeDiscountBps":10}`, s.admin))
	require.Equal(t, "tesSUCCESS", resp.Result)

	rec = s.request(http.MethodGet, "/v1/parameters", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var params ParametersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &params))
	assert.Equal(t, uint64(30), params.ProtocolFeeBps)
	assert.Equal(t, uint64(5), params.ReferrerFeeBps)
	assert.Equal(t, uint64(10), params.ReferrerFeeDiscountBps)
	assert.Equal(t, s.admin.String(), params.Admin)
	assert.Empty(t, params.ProposedAdmin)
}

func TestPoolLookup(t *testing.T) {
	s := newTestServer(t)

	var baseMint, quoteMint, shareMint [32]byte
	baseMint[0], quoteMint[0], shareMint[0] = 1, 2, 3
	base := solana.PublicKey(baseMint)
	quote := solana.PublicKey(quoteMint)
	share := solana.PublicKey(shareMint)

	s.submit(t, fmt.Sprintf(`{"TransactionType":"Initialize","Account":%q}`, s.admin))

	// The fee receiver must be an admin-owned quote token account.
	feeReceiver := tokenledger.AssociatedAccount(s.admin, quote)
	require.NoError(t, s.tokens.CreateAccount(feeReceiver, quote, s.admin))

	resp := s.submit(t, fmt.Sprintf(
		`{"TransactionType":"PoolCreate","Account":%q,"BaseMint":%q,"QuoteMint":%q,"ShareMint":%q,"FeeReceiverAccount":%q}`,
		s.admin, base, quote, share, feeReceiver))
	require.Equal(t, "tesSUCCESS", resp.Result, resp.Message)

	rec := s.request(http.MethodGet, fmt.Sprintf("/v1/pools/%s/%s/%s", s.admin, base, quote), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var pool PoolResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pool))
	assert.Equal(t, s.admin.String(), pool.Creator)
	assert.Equal(t, base.String(), pool.BaseMint)
	assert.Equal(t, quote.String(), pool.QuoteMint)
	assert.Equal(t, feeReceiver.String(), pool.FeeReceiverAccount)
	assert.Zero(t, pool.BaseReserve)
	assert.Zero(t, pool.QuoteReserve)
	assert.Zero(t, pool.TotalShares)

	// Same creator, different quote mint: no such pool.
	rec = s.request(http.MethodGet, fmt.Sprintf("/v1/pools/%s/%s/%s", s.admin, base, share), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.request(http.MethodGet, "/v1/pools/not-base58/x/y", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(http.MethodGet, "/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found","code":404}`, rec.Body.String())
}
