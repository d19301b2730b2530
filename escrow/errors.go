package escrow

import "errors"

// Failure kinds surfaced by the client. Callers match with errors.Is; the
// wrapped chain keeps the underlying cause.
var (
	// ErrInvalidSeedLength means a derivation seed exceeded the scheme's
	// 32-byte per-seed limit. Programmer error, not retryable.
	ErrInvalidSeedLength = errors.New("seed exceeds max seed length")

	// ErrDerivationExhausted means no bump in [0,255] produced an off-curve
	// address. Practically unreachable; treated as fatal.
	ErrDerivationExhausted = errors.New("program address derivation exhausted")

	// ErrOwnerOffCurve means an associated token address was requested for a
	// PDA owner without allowOwnerOffCurve.
	ErrOwnerOffCurve = errors.New("token account owner is off curve")

	// ErrTokenProgramMismatch means the two legs of a swap live under
	// different token programs. The escrow program services both legs with
	// one account layout, so mixed-program offers are rejected up front.
	ErrTokenProgramMismatch = errors.New("token programs do not match")

	// ErrUnsupportedTokenProgram means a mint is owned by something other
	// than spl-token or spl-token-2022.
	ErrUnsupportedTokenProgram = errors.New("owner is not a recognized token program")

	// ErrInvalidAmount means a non-positive offer amount.
	ErrInvalidAmount = errors.New("amount must be greater than 0")

	// ErrMintNotFound means the mint account does not exist on the ledger.
	ErrMintNotFound = errors.New("mint not found")

	// ErrOfferNotFound means the offer account does not exist; the offer was
	// never made, already taken, or refunded.
	ErrOfferNotFound = errors.New("offer not found")

	// ErrPortfolioFetch wraps any failure inside a portfolio aggregation
	// pass. The whole pass aborts; retrying the operation is safe.
	ErrPortfolioFetch = errors.New("portfolio fetch failed")
)
