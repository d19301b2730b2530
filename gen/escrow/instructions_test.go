package escrowgen

import (
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMakeOfferInstruction(t *testing.T) {
	ix, err := NewMakeOfferInstruction(
		MakeOfferArgs{ID: 7, TokenAOfferedAmount: 100, TokenBWantedAmount: 200},
		solanago.NewWallet().PublicKey(),
		solanago.NewWallet().PublicKey(),
		solanago.NewWallet().PublicKey(),
		solanago.NewWallet().PublicKey(),
		solanago.NewWallet().PublicKey(),
		solanago.NewWallet().PublicKey(),
		solanago.TokenProgramID,
	)
	require.NoError(t, err)

	assert.Equal(t, ProgramID, ix.ProgramID())

	data, err := ix.Data()
	require.NoError(t, err)
	require.Len(t, data, 32)
	assert.Equal(t, Instruction_MakeOffer[:], data[:8])

	accounts := ix.Accounts()
	require.Len(t, accounts, 9)
	assert.Equal(t, associatedtokenaccount.ProgramID, accounts[6].PublicKey)
	assert.Equal(t, solanago.TokenProgramID, accounts[7].PublicKey)
	assert.Equal(t, system.ProgramID, accounts[8].PublicKey)
}

func TestNewTakeOfferInstruction(t *testing.T) {
	ix, err := NewTakeOfferInstruction(
		solanago.NewWallet().PublicKey(),
		solanago.NewWallet().PublicKey(),
		solanago.NewWallet().PublicKey(),
		solanago.NewWallet().PublicKey(),
		solanago.NewWallet().PublicKey(),
		solanago.NewWallet().PublicKey(),
		solanago.NewWallet().PublicKey(),
		solanago.NewWallet().PublicKey(),
		solanago.NewWallet().PublicKey(),
		solanago.Token2022ProgramID,
	)
	require.NoError(t, err)

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, Instruction_TakeOffer[:], data)
	assert.Len(t, ix.Accounts(), 12)
}
