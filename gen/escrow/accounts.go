package escrowgen

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

// Account_Offer is the anchor account discriminator, sha256("account:Offer")[:8].
var Account_Offer = [8]byte{215, 88, 60, 71, 170, 162, 73, 229}

// Offer mirrors the program's Offer account state. The offered amount is not
// stored here; it lives in the vault's token balance.
type Offer struct {
	ID                 uint64
	Maker              solanago.PublicKey
	TokenMintA         solanago.PublicKey
	TokenMintB         solanago.PublicKey
	TokenBWantedAmount uint64
	Bump               uint8
}

// ParseOffer decodes an Offer account, checking the discriminator first.
func ParseOffer(data []byte) (*Offer, error) {
	if len(data) < 8 || !bytes.Equal(data[:8], Account_Offer[:]) {
		return nil, fmt.Errorf("not an Offer account")
	}
	offer := new(Offer)
	if err := bin.NewBorshDecoder(data[8:]).Decode(offer); err != nil {
		return nil, fmt.Errorf("decode Offer account: %w", err)
	}
	return offer, nil
}
