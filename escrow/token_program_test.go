package escrow

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTokenProgram(t *testing.T) {
	ledger := newFakeLedger()
	client := newTestClient(ledger)
	ctx := context.Background()

	legacyMint := solana.NewWallet().PublicKey()
	extendedMint := solana.NewWallet().PublicKey()
	strayAccount := solana.NewWallet().PublicKey()

	ledger.setMint(t, legacyMint, solana.TokenProgramID, 6)
	ledger.setMint(t, extendedMint, solana.Token2022ProgramID, 9)
	ledger.setMint(t, strayAccount, solana.SystemProgramID, 0)

	program, err := client.ResolveTokenProgram(ctx, legacyMint)
	require.NoError(t, err)
	assert.Equal(t, TokenProgramLegacy, program)

	program, err = client.ResolveTokenProgram(ctx, extendedMint)
	require.NoError(t, err)
	assert.Equal(t, TokenProgram2022, program)

	_, err = client.ResolveTokenProgram(ctx, strayAccount)
	assert.ErrorIs(t, err, ErrUnsupportedTokenProgram)

	_, err = client.ResolveTokenProgram(ctx, solana.NewWallet().PublicKey())
	assert.ErrorIs(t, err, ErrMintNotFound)
}

func TestResolveAndMatch(t *testing.T) {
	ledger := newFakeLedger()
	client := newTestClient(ledger)
	ctx := context.Background()

	legacyA := solana.NewWallet().PublicKey()
	legacyB := solana.NewWallet().PublicKey()
	extended := solana.NewWallet().PublicKey()

	ledger.setMint(t, legacyA, solana.TokenProgramID, 6)
	ledger.setMint(t, legacyB, solana.TokenProgramID, 9)
	ledger.setMint(t, extended, solana.Token2022ProgramID, 9)

	program, err := client.ResolveAndMatch(ctx, legacyA, legacyB)
	require.NoError(t, err)
	assert.Equal(t, TokenProgramLegacy, program)

	_, err = client.ResolveAndMatch(ctx, legacyA, extended)
	assert.ErrorIs(t, err, ErrTokenProgramMismatch)

	_, err = client.ResolveAndMatch(ctx, extended, legacyA)
	assert.ErrorIs(t, err, ErrTokenProgramMismatch)

	_, err = client.ResolveAndMatch(ctx, legacyA, solana.NewWallet().PublicKey())
	assert.ErrorIs(t, err, ErrMintNotFound)
}

func TestResolveAndMatchUnrecognizedPair(t *testing.T) {
	ledger := newFakeLedger()
	client := newTestClient(ledger)

	strayA := solana.NewWallet().PublicKey()
	strayB := solana.NewWallet().PublicKey()
	ledger.setMint(t, strayA, solana.SystemProgramID, 0)
	ledger.setMint(t, strayB, solana.SystemProgramID, 0)

	// Same owner, but not a token program: matching is not enough.
	_, err := client.ResolveAndMatch(context.Background(), strayA, strayB)
	assert.ErrorIs(t, err, ErrUnsupportedTokenProgram)
}
