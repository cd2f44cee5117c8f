package server

import (
	"io"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/LeJamon/goAMMd/internal/core/ledger/entry/entries"
	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx"
)

const maxTxBodySize = 1 << 16

// Handlers contains all dependencies for API endpoint handlers
type Handlers struct {
	Engine *tx.Engine
	Logger *logrus.Logger
}

// err returns a standardized JSON error response
func (h *Handlers) err(c echo.Context, code int, msg string) error {
	return c.JSON(code, ErrorResponse{Error: msg, Code: code})
}

// Health returns a simple health check endpoint
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{OK: true})
}

// SubmitTx decodes a transaction from the request body and applies it.
// Transaction-level failures are reported in the response body with a 200
// status; only undecodable submissions are client errors.
func (h *Handlers) SubmitTx(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxTxBodySize))
	if err != nil {
		return h.err(c, http.StatusBadRequest, "failed to read request body")
	}

	t, err := tx.FromJSON(body)
	if err != nil {
		return h.err(c, http.StatusBadRequest, err.Error())
	}

	res := h.Engine.Apply(t)
	h.Logger.WithFields(logrus.Fields{
		"type":    t.TxType().String(),
		"account": t.GetCommon().Account.String(),
		"result":  res.Result.String(),
		"applied": res.Applied,
	}).Info("transaction submitted")

	return c.JSON(http.StatusOK, TxResponse{
		Result:  res.Result.String(),
		Applied: res.Applied,
		Message: res.Message,
	})
}

// Parameters returns the global fee schedule, or 404 before initialization
func (h *Handlers) Parameters(c echo.Context) error {
	data, err := h.Engine.View().Read(keylet.GlobalParameters())
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "failed to read parameters")
	}
	if data == nil {
		return h.err(c, http.StatusNotFound, "parameters not initialized")
	}

	params, err := entries.ParseGlobalParameters(data)
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "corrupt parameters entry")
	}

	resp := ParametersResponse{
		ProtocolFeeBps:         params.ProtocolFeeBps,
		ReferrerFeeBps:         params.ReferrerFeeBps,
		ReferrerFeeDiscountBps: params.ReferrerFeeDiscountBps,
		Admin:                  params.Admin.String(),
	}
	if !params.ProposedAdmin.IsZero() {
		resp.ProposedAdmin = params.ProposedAdmin.String()
	}
	return c.JSON(http.StatusOK, resp)
}

// Pool returns the pool identified by creator, base mint and quote mint
func (h *Handlers) Pool(c echo.Context) error {
	creator, err := solana.PublicKeyFromBase58(c.Param("creator"))
	if err != nil {
		return h.err(c, http.StatusBadRequest, "invalid creator")
	}
	baseMint, err := solana.PublicKeyFromBase58(c.Param("base"))
	if err != nil {
		return h.err(c, http.StatusBadRequest, "invalid base mint")
	}
	quoteMint, err := solana.PublicKeyFromBase58(c.Param("quote"))
	if err != nil {
		return h.err(c, http.StatusBadRequest, "invalid quote mint")
	}

	data, err := h.Engine.View().Read(keylet.Pool(creator, baseMint, quoteMint))
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "failed to read pool")
	}
	if data == nil {
		return h.err(c, http.StatusNotFound, "pool not found")
	}

	pool, err := entries.ParsePool(data)
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "corrupt pool entry")
	}

	return c.JSON(http.StatusOK, PoolResponse{
		Creator:             pool.Creator.String(),
		BaseMint:            pool.BaseMint.String(),
		QuoteMint:           pool.QuoteMint.String(),
		ShareMint:           pool.ShareMint.String(),
		BaseReserveAccount:  pool.BaseReserveAccount.String(),
		QuoteReserveAccount: pool.QuoteReserveAccount.String(),
		FeeReceiverAccount:  pool.FeeReceiverAccount.String(),
		BaseReserve:         pool.BaseReserve,
		QuoteReserve:        pool.QuoteReserve,
		TotalShares:         pool.TotalShares,
	})
}
