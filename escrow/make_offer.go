package escrow

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	escrowgen "github.com/offerbook/escrow-go/gen/escrow"
)

// Offer identifiers are drawn uniformly from [0, 1e12) with no client-side
// uniqueness check against the maker's open offers. A colliding identifier
// derives an already-existing offer PDA, which the program rejects
// deterministically; callers retry with a fresh BuildMakeOffer call. The
// collision probability across a maker's open offers is accepted.
const offerIDRange = 1_000_000_000_000

// MakeOffer is a fully addressed, unsubmitted offer creation. Submission,
// signing and fee payment stay with the caller.
type MakeOffer struct {
	OfferID uint64
	Maker   solana.PublicKey

	TokenMintA solana.PublicKey
	TokenMintB solana.PublicKey
	AmountA    uint64
	AmountB    uint64

	TokenProgram       *TokenProgram
	MakerTokenAccountA solana.PublicKey
	OfferAddress       solana.PublicKey
	OfferBump          uint8
	Vault              solana.PublicKey

	Instruction solana.Instruction
}

// BuildMakeOffer assembles a make_offer request: maker escrows amountA of
// mintA and asks amountB of mintB in return. Amounts are validated before
// any ledger read; both mints must live under the same token program.
func (c *Client) BuildMakeOffer(ctx context.Context, maker, tokenMintA, tokenMintB solana.PublicKey, amountA, amountB *big.Int) (*MakeOffer, error) {
	if err := checkAmount("amountA", amountA); err != nil {
		return nil, err
	}
	if err := checkAmount("amountB", amountB); err != nil {
		return nil, err
	}

	tokenProgram, err := c.ResolveAndMatch(ctx, tokenMintA, tokenMintB)
	if err != nil {
		return nil, err
	}

	offerID, err := randomOfferID()
	if err != nil {
		return nil, err
	}

	makerTokenAccountA, err := tokenProgram.AssociatedTokenAddress(maker, tokenMintA, false)
	if err != nil {
		return nil, err
	}

	offerAddress, bump, err := DeriveOfferAddress(maker, offerID, c.programID)
	if err != nil {
		return nil, err
	}

	// The vault is owned by the offer PDA, not a wallet.
	vault, err := tokenProgram.AssociatedTokenAddress(offerAddress, tokenMintA, true)
	if err != nil {
		return nil, err
	}

	ix, err := escrowgen.NewMakeOfferInstruction(
		escrowgen.MakeOfferArgs{
			ID:                  offerID,
			TokenAOfferedAmount: amountA.Uint64(),
			TokenBWantedAmount:  amountB.Uint64(),
		},
		maker,
		tokenMintA,
		tokenMintB,
		makerTokenAccountA,
		offerAddress,
		vault,
		tokenProgram.ID(),
	)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"maker":   maker,
		"offer":   offerAddress,
		"offerId": offerID,
		"program": tokenProgram,
	}).Debug("built make_offer")

	return &MakeOffer{
		OfferID:            offerID,
		Maker:              maker,
		TokenMintA:         tokenMintA,
		TokenMintB:         tokenMintB,
		AmountA:            amountA.Uint64(),
		AmountB:            amountB.Uint64(),
		TokenProgram:       tokenProgram,
		MakerTokenAccountA: makerTokenAccountA,
		OfferAddress:       offerAddress,
		OfferBump:          bump,
		Vault:              vault,
		Instruction:        ix,
	}, nil
}

func checkAmount(name string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return fmt.Errorf("%s: %w", name, ErrInvalidAmount)
	}
	if !amount.IsUint64() {
		return fmt.Errorf("%s exceeds u64: %w", name, ErrInvalidAmount)
	}
	return nil
}

func randomOfferID() (uint64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(offerIDRange))
	if err != nil {
		return 0, fmt.Errorf("generate offer id: %w", err)
	}
	return n.Uint64(), nil
}
