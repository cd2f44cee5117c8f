package tx

import "fmt"

// Result represents a transaction result code
type Result int

// Transaction result codes, organized by category:
//
//	tes (0)            success
//	tec (100-199)      rejected against current state
//	tef (-199 to -100) failed, can never succeed
//	tem (-299 to -200) malformed transaction
const (
	// tesSUCCESS (0)
	TesSUCCESS Result = 0

	// tec codes (100-199): well-formed but rejected by ledger state
	TecINSUFFICIENT_LIQUIDITY   Result = 100
	TecQUOTE_AMOUNT_TOO_LOW     Result = 101
	TecBASE_AMOUNT_TOO_LOW      Result = 102
	TecINSUFFICIENT_QUOTE       Result = 103
	TecINSUFFICIENT_SHARES      Result = 104
	TecINSUFFICIENT_RESERVE     Result = 105
	TecMATH_OVERFLOW            Result = 106
	TecTOKEN_TRANSFER_FAILED    Result = 107
	TecDUPLICATE                Result = 108
	TecNO_ENTRY                 Result = 109
	TecNO_PERMISSION            Result = 110
	TecBAD_FEE_RECEIVER         Result = 111

	// tef codes (-199 to -100): hard failures
	TefFAILURE             Result = -199
	TefALREADY_INITIALIZED Result = -198
	TefINTERNAL            Result = -192

	// tem codes (-299 to -200): malformed transactions
	TemMALFORMED                     Result = -299
	TemBAD_AMOUNT                    Result = -298
	TemBAD_SRC_ACCOUNT               Result = -281
	TemINVALID                       Result = -277
	TemBAD_POOL_TOKENS               Result = -262
	TemREFERRER_DISCOUNT_EXCEEDS_FEE Result = -261
	TemINVALID_FEE_CONFIGURATION     Result = -260
)

// String returns the canonical code name
func (r Result) String() string {
	switch r {
	case TesSUCCESS:
		return "tesSUCCESS"
	case TecINSUFFICIENT_LIQUIDITY:
		return "tecINSUFFICIENT_LIQUIDITY"
	case TecQUOTE_AMOUNT_TOO_LOW:
		return "tecQUOTE_AMOUNT_TOO_LOW"
	case TecBASE_AMOUNT_TOO_LOW:
		return "tecBASE_AMOUNT_TOO_LOW"
	case TecINSUFFICIENT_QUOTE:
		return "tecINSUFFICIENT_QUOTE"
	case TecINSUFFICIENT_SHARES:
		return "tecINSUFFICIENT_SHARES"
	case TecINSUFFICIENT_RESERVE:
		return "tecINSUFFICIENT_RESERVE"
	case TecMATH_OVERFLOW:
		return "tecMATH_OVERFLOW"
	case TecTOKEN_TRANSFER_FAILED:
		return "tecTOKEN_TRANSFER_FAILED"
	case TecDUPLICATE:
		return "tecDUPLICATE"
	case TecNO_ENTRY:
		return "tecNO_ENTRY"
	case TecNO_PERMISSION:
		return "tecNO_PERMISSION"
	case TecBAD_FEE_RECEIVER:
		return "tecBAD_FEE_RECEIVER"
	case TefFAILURE:
		return "tefFAILURE"
	case TefALREADY_INITIALIZED:
		return "tefALREADY_INITIALIZED"
	case TefINTERNAL:
		return "tefINTERNAL"
	case TemMALFORMED:
		return "temMALFORMED"
	case TemBAD_AMOUNT:
		return "temBAD_AMOUNT"
	case TemBAD_SRC_ACCOUNT:
		return "temBAD_SRC_ACCOUNT"
	case TemINVALID:
		return "temINVALID"
	case TemBAD_POOL_TOKENS:
		return "temBAD_POOL_TOKENS"
	case TemREFERRER_DISCOUNT_EXCEEDS_FEE:
		return "temREFERRER_DISCOUNT_EXCEEDS_FEE"
	case TemINVALID_FEE_CONFIGURATION:
		return "temINVALID_FEE_CONFIGURATION"
	default:
		return fmt.Sprintf("Unknown(%d)", r)
	}
}

// IsSuccess returns true if the result indicates success
func (r Result) IsSuccess() bool {
	return r == TesSUCCESS
}

// IsTec returns true if this is a tec (state rejection) code
func (r Result) IsTec() bool {
	return r >= 100 && r < 200
}

// IsTef returns true if this is a tef (failure) code
func (r Result) IsTef() bool {
	return r >= -199 && r <= -100
}

// IsTem returns true if this is a tem (malformed) code
func (r Result) IsTem() bool {
	return r >= -299 && r <= -200
}

// Message returns a human-readable message for the result
func (r Result) Message() string {
	switch r {
	case TesSUCCESS:
		return "The transaction was applied."
	case TecINSUFFICIENT_LIQUIDITY:
		return "Deposit would produce fewer shares than the requested minimum."
	case TecQUOTE_AMOUNT_TOO_LOW:
		return "Quote amount is below the requested minimum."
	case TecBASE_AMOUNT_TOO_LOW:
		return "Base amount is below the requested minimum."
	case TecINSUFFICIENT_QUOTE:
		return "Required quote amount exceeds the stated maximum."
	case TecINSUFFICIENT_SHARES:
		return "Withdrawal exceeds the outstanding shares."
	case TecINSUFFICIENT_RESERVE:
		return "Requested amount meets or exceeds the pool reserve."
	case TecMATH_OVERFLOW:
		return "Arithmetic overflow or division by zero."
	case TecTOKEN_TRANSFER_FAILED:
		return "A token transfer leg could not be settled."
	case TecDUPLICATE:
		return "The entry already exists."
	case TecNO_ENTRY:
		return "A required entry does not exist."
	case TecNO_PERMISSION:
		return "The signer is not permitted to perform this operation."
	case TecBAD_FEE_RECEIVER:
		return "The fee receiver does not hold the pool's quote mint."
	case TefALREADY_INITIALIZED:
		return "The protocol has already been initialized."
	case TemBAD_AMOUNT:
		return "Amounts must be positive."
	case TemBAD_SRC_ACCOUNT:
		return "The source account is malformed."
	case TemBAD_POOL_TOKENS:
		return "Base and quote mint must be distinct and non-zero."
	case TemREFERRER_DISCOUNT_EXCEEDS_FEE:
		return "Referrer fee discount must exceed the referrer fee."
	case TemINVALID_FEE_CONFIGURATION:
		return "Protocol fee must exceed referrer fee plus discount."
	case TemINVALID:
		return "The transaction is ill-formed."
	default:
		return r.String()
	}
}

// resultError carries a Result through the error return of Validate.
type resultError struct {
	code Result
	msg  string
}

func (e *resultError) Error() string {
	if e.msg == "" {
		return e.code.String()
	}
	return e.code.String() + ": " + e.msg
}

// ErrResult builds a validation error carrying the given result code.
func ErrResult(code Result, msg string) error {
	return &resultError{code: code, msg: msg}
}

// ResultFromError extracts the result code from a validation error,
// defaulting to temMALFORMED for plain errors.
func ResultFromError(err error) Result {
	if re, ok := err.(*resultError); ok {
		return re.code
	}
	return TemMALFORMED
}
