package escrow

import (
	"context"
	"math/big"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	escrowgen "github.com/offerbook/escrow-go/gen/escrow"
)

func TestBuildTakeOffer(t *testing.T) {
	ledger := newFakeLedger()
	client := newTestClient(ledger)
	ctx := context.Background()

	maker := solana.NewWallet().PublicKey()
	taker := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()
	ledger.setMint(t, mintA, solana.TokenProgramID, 6)
	ledger.setMint(t, mintB, solana.TokenProgramID, 6)

	offerAddress, _, err := DeriveOfferAddress(maker, 99, client.ProgramID())
	require.NoError(t, err)

	take, err := client.BuildTakeOffer(ctx, taker, maker, offerAddress, mintA, mintB)
	require.NoError(t, err)

	assert.Equal(t, TokenProgramLegacy, take.TokenProgram)

	// Only mint A is resolved; mint B's program is implied by the
	// make-time match.
	assert.Equal(t, 1, ledger.accountInfoCalls[mintA])
	assert.Zero(t, ledger.accountInfoCalls[mintB])

	require.NotNil(t, take.Instruction)
	data, err := take.Instruction.Data()
	require.NoError(t, err)
	assert.Equal(t, escrowgen.Instruction_TakeOffer[:], data)

	accounts := take.Instruction.Accounts()
	require.Len(t, accounts, 12)
	assert.Equal(t, taker, accounts[0].PublicKey)
	assert.True(t, accounts[0].IsSigner)
	assert.Equal(t, maker, accounts[1].PublicKey)
	assert.Equal(t, take.TakerTokenAccountA, accounts[4].PublicKey)
	assert.Equal(t, take.TakerTokenAccountB, accounts[5].PublicKey)
	assert.Equal(t, take.MakerTokenAccountB, accounts[6].PublicKey)
	assert.Equal(t, offerAddress, accounts[7].PublicKey)
	assert.Equal(t, take.Vault, accounts[8].PublicKey)
}

func TestMakeAndTakeDeriveSameVault(t *testing.T) {
	ledger := newFakeLedger()
	client := newTestClient(ledger)
	ctx := context.Background()

	maker := solana.NewWallet().PublicKey()
	taker := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()
	ledger.setMint(t, mintA, solana.Token2022ProgramID, 6)
	ledger.setMint(t, mintB, solana.Token2022ProgramID, 9)

	made, err := client.BuildMakeOffer(ctx, maker, mintA, mintB, big.NewInt(1000), big.NewInt(2000))
	require.NoError(t, err)

	// The taker re-derives the same offer address and vault from scratch.
	offerAddress, _, err := DeriveOfferAddress(made.Maker, made.OfferID, client.ProgramID())
	require.NoError(t, err)
	require.Equal(t, made.OfferAddress, offerAddress)

	take, err := client.BuildTakeOffer(ctx, taker, maker, offerAddress, mintA, mintB)
	require.NoError(t, err)
	assert.Equal(t, made.Vault, take.Vault)
	assert.Equal(t, made.TokenProgram, take.TokenProgram)
}
