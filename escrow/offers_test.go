package escrow

import (
	"bytes"
	"context"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	escrowgen "github.com/offerbook/escrow-go/gen/escrow"
	solanago "github.com/offerbook/escrow-go/solana"
)

func offerAccountData(t *testing.T, state *escrowgen.Offer) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	_, err := buf.Write(escrowgen.Account_Offer[:])
	require.NoError(t, err)
	require.NoError(t, bin.NewBorshEncoder(buf).Encode(state))
	return buf.Bytes()
}

func vaultAccountData(t *testing.T, mint, owner solana.PublicKey, amount uint64) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, bin.NewBinEncoder(buf).Encode(&solanago.TokenAccount{
		Mint:   mint,
		Owner:  owner,
		Amount: amount,
	}))
	return buf.Bytes()
}

func TestFetchOffer(t *testing.T) {
	ledger := newFakeLedger()
	client := newTestClient(ledger)
	ctx := context.Background()

	maker := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()
	ledger.setMint(t, mintA, solana.TokenProgramID, 6)
	ledger.setMint(t, mintB, solana.TokenProgramID, 6)

	offerAddress, bump, err := DeriveOfferAddress(maker, 123, client.ProgramID())
	require.NoError(t, err)

	state := &escrowgen.Offer{
		ID:                 123,
		Maker:              maker,
		TokenMintA:         mintA,
		TokenMintB:         mintB,
		TokenBWantedAmount: 2000,
		Bump:               bump,
	}
	ledger.accounts[offerAddress] = &rpc.Account{
		Owner: client.ProgramID(),
		Data:  dataFromBytes(t, offerAccountData(t, state)),
	}

	vault, err := TokenProgramLegacy.AssociatedTokenAddress(offerAddress, mintA, true)
	require.NoError(t, err)
	ledger.accounts[vault] = &rpc.Account{
		Owner: solana.TokenProgramID,
		Data:  dataFromBytes(t, vaultAccountData(t, mintA, offerAddress, 1000)),
	}

	offer, err := client.FetchOffer(ctx, offerAddress)
	require.NoError(t, err)

	assert.Equal(t, offerAddress, offer.Address)
	assert.Equal(t, uint64(123), offer.State.ID)
	assert.Equal(t, maker, offer.State.Maker)
	assert.Equal(t, uint64(2000), offer.State.TokenBWantedAmount)
	assert.Equal(t, TokenProgramLegacy, offer.TokenProgram)
	assert.Equal(t, vault, offer.Vault)
	assert.Equal(t, uint64(1000), offer.EscrowedAmount)
}

func TestFetchOfferNotFound(t *testing.T) {
	ledger := newFakeLedger()
	client := newTestClient(ledger)

	_, err := client.FetchOffer(context.Background(), solana.NewWallet().PublicKey())
	assert.ErrorIs(t, err, ErrOfferNotFound)
}

func TestFetchOpenOffers(t *testing.T) {
	ledger := newFakeLedger()
	client := newTestClient(ledger)
	ctx := context.Background()

	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()
	ledger.setMint(t, mintA, solana.Token2022ProgramID, 6)
	ledger.setMint(t, mintB, solana.Token2022ProgramID, 9)

	makers := []solana.PublicKey{
		solana.NewWallet().PublicKey(),
		solana.NewWallet().PublicKey(),
	}
	for i, maker := range makers {
		offerAddress, bump, err := DeriveOfferAddress(maker, uint64(i), client.ProgramID())
		require.NoError(t, err)
		state := &escrowgen.Offer{
			ID:                 uint64(i),
			Maker:              maker,
			TokenMintA:         mintA,
			TokenMintB:         mintB,
			TokenBWantedAmount: 500,
			Bump:               bump,
		}
		ledger.programAccs = append(ledger.programAccs, &rpc.KeyedAccount{
			Pubkey: offerAddress,
			Account: &rpc.Account{
				Owner: client.ProgramID(),
				Data:  dataFromBytes(t, offerAccountData(t, state)),
			},
		})

		vault, err := TokenProgram2022.AssociatedTokenAddress(offerAddress, mintA, true)
		require.NoError(t, err)
		ledger.accounts[vault] = &rpc.Account{
			Owner: solana.Token2022ProgramID,
			Data:  dataFromBytes(t, vaultAccountData(t, mintA, offerAddress, uint64(100*(i+1)))),
		}
	}

	offers, err := client.FetchOpenOffers(ctx)
	require.NoError(t, err)
	require.Len(t, offers, 2)

	for i, offer := range offers {
		assert.Equal(t, makers[i], offer.State.Maker)
		assert.Equal(t, TokenProgram2022, offer.TokenProgram)
		assert.Equal(t, uint64(100*(i+1)), offer.EscrowedAmount)
	}

	// Two offers, one mint A: the token program resolves once and the
	// vaults load in a single batched read.
	assert.Equal(t, 1, ledger.accountInfoCalls[mintA])
	assert.Equal(t, 1, ledger.multipleAccountsCalls)
}
