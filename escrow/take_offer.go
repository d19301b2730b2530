package escrow

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	escrowgen "github.com/offerbook/escrow-go/gen/escrow"
)

// TakeOffer is a fully addressed, unsubmitted offer acceptance.
type TakeOffer struct {
	Taker        solana.PublicKey
	Maker        solana.PublicKey
	OfferAddress solana.PublicKey

	TokenMintA solana.PublicKey
	TokenMintB solana.PublicKey

	TokenProgram       *TokenProgram
	MakerTokenAccountB solana.PublicKey
	TakerTokenAccountA solana.PublicKey
	TakerTokenAccountB solana.PublicKey
	Vault              solana.PublicKey

	Instruction solana.Instruction
}

// BuildTakeOffer assembles a take_offer request against an existing offer.
//
// Only mint A's token program is resolved. Mint B sharing it is an invariant
// established at make time: BuildMakeOffer rejects mixed-program pairs and a
// mint's owning program never changes, so a live offer's two mints are
// always under one program.
func (c *Client) BuildTakeOffer(ctx context.Context, taker, maker, offerAddress, tokenMintA, tokenMintB solana.PublicKey) (*TakeOffer, error) {
	tokenProgram, err := c.ResolveTokenProgram(ctx, tokenMintA)
	if err != nil {
		return nil, err
	}

	makerTokenAccountB, err := tokenProgram.AssociatedTokenAddress(maker, tokenMintB, false)
	if err != nil {
		return nil, err
	}

	takerTokenAccountA, err := tokenProgram.AssociatedTokenAddress(taker, tokenMintA, false)
	if err != nil {
		return nil, err
	}

	takerTokenAccountB, err := tokenProgram.AssociatedTokenAddress(taker, tokenMintB, false)
	if err != nil {
		return nil, err
	}

	vault, err := tokenProgram.AssociatedTokenAddress(offerAddress, tokenMintA, true)
	if err != nil {
		return nil, err
	}

	ix, err := escrowgen.NewTakeOfferInstruction(
		taker,
		maker,
		tokenMintA,
		tokenMintB,
		takerTokenAccountA,
		takerTokenAccountB,
		makerTokenAccountB,
		offerAddress,
		vault,
		tokenProgram.ID(),
	)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"taker":   taker,
		"offer":   offerAddress,
		"program": tokenProgram,
	}).Debug("built take_offer")

	return &TakeOffer{
		Taker:              taker,
		Maker:              maker,
		OfferAddress:       offerAddress,
		TokenMintA:         tokenMintA,
		TokenMintB:         tokenMintB,
		TokenProgram:       tokenProgram,
		MakerTokenAccountB: makerTokenAccountB,
		TakerTokenAccountA: takerTokenAccountA,
		TakerTokenAccountB: takerTokenAccountB,
		Vault:              vault,
		Instruction:        ix,
	}, nil
}
