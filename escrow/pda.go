package escrow

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

const offerSeed = "offer"

// DeriveOfferAddress computes the offer PDA for (maker, offerID) under the
// escrow program. Pure: the same triple always yields the same address, so
// no lookup table is ever needed to rediscover an offer.
func DeriveOfferAddress(maker solana.PublicKey, offerID uint64, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	idBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(idBytes, offerID)

	seeds := [][]byte{[]byte(offerSeed), maker.Bytes(), idBytes}
	if err := checkSeeds(seeds); err != nil {
		return solana.PublicKey{}, 0, err
	}

	addr, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("offer address for maker %s id %d: %w", maker, offerID, ErrDerivationExhausted)
	}
	return addr, bump, nil
}

// DeriveAssociatedTokenAddress computes the ATA for (owner, mint) under the
// given token program. allowOwnerOffCurve must be true when owner is a
// derived address (an offer PDA owning its vault) and false for wallet
// owners; passing false with an off-curve owner is a contract violation.
func DeriveAssociatedTokenAddress(owner, mint solana.PublicKey, allowOwnerOffCurve bool, tokenProgramID solana.PublicKey) (solana.PublicKey, error) {
	if !allowOwnerOffCurve && !owner.IsOnCurve() {
		return solana.PublicKey{}, fmt.Errorf("owner %s: %w", owner, ErrOwnerOffCurve)
	}

	seeds := [][]byte{owner.Bytes(), tokenProgramID.Bytes(), mint.Bytes()}
	if err := checkSeeds(seeds); err != nil {
		return solana.PublicKey{}, err
	}

	addr, _, err := solana.FindProgramAddress(seeds, solana.SPLAssociatedTokenAccountProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("ata for owner %s mint %s: %w", owner, mint, ErrDerivationExhausted)
	}
	return addr, nil
}

func checkSeeds(seeds [][]byte) error {
	for _, seed := range seeds {
		if len(seed) > solana.MaxSeedLength {
			return fmt.Errorf("seed of %d bytes: %w", len(seed), ErrInvalidSeedLength)
		}
	}
	return nil
}
