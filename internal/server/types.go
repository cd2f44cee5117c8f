package server

// ErrorResponse represents a standardized error response format
type ErrorResponse struct {
	Error string `json:"error"` // Human-readable error message
	Code  int    `json:"code"`  // HTTP status code
}

// HealthResponse represents the health check response
type HealthResponse struct {
	OK bool `json:"ok"`
}

// TxResponse reports the outcome of a submitted transaction
type TxResponse struct {
	Result  string `json:"result"`  // Result code name, e.g. "tesSUCCESS"
	Applied bool   `json:"applied"` // Whether the ledger changed
	Message string `json:"message"` // Human-readable result message
}

// ParametersResponse describes the global fee schedule and admin keys
type ParametersResponse struct {
	ProtocolFeeBps         uint64 `json:"protocol_fee_bps"`
	ReferrerFeeBps         uint64 `json:"referrer_fee_bps"`
	ReferrerFeeDiscountBps uint64 `json:"referrer_fee_discount_bps"`
	Admin                  string `json:"admin"`
	ProposedAdmin          string `json:"proposed_admin,omitempty"`
}

// PoolResponse describes a single pool's identity and reserves
type PoolResponse struct {
	Creator             string `json:"creator"`
	BaseMint            string `json:"base_mint"`
	QuoteMint           string `json:"quote_mint"`
	ShareMint           string `json:"share_mint"`
	BaseReserveAccount  string `json:"base_reserve_account"`
	QuoteReserveAccount string `json:"quote_reserve_account"`
	FeeReceiverAccount  string `json:"fee_receiver_account"`
	BaseReserve         uint64 `json:"base_reserve"`
	QuoteReserve        uint64 `json:"quote_reserve"`
	TotalShares         uint64 `json:"total_shares"`
}
