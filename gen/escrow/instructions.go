package escrowgen

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
)

// Anchor instruction discriminators, sha256("global:<name>")[:8].
var (
	Instruction_MakeOffer = [8]byte{214, 98, 97, 35, 59, 12, 44, 178}
	Instruction_TakeOffer = [8]byte{128, 156, 242, 207, 237, 192, 103, 240}
)

// MakeOfferArgs are the borsh-encoded scalar arguments of make_offer.
type MakeOfferArgs struct {
	ID                  uint64
	TokenAOfferedAmount uint64
	TokenBWantedAmount  uint64
}

// NewMakeOfferInstruction builds a make_offer instruction.
//
// Account order follows the program's MakeOffer context: the maker signs and
// funds the offer account, the vault is the offer PDA's associated token
// account for mint A.
func NewMakeOfferInstruction(
	args MakeOfferArgs,

	// Accounts:
	maker solanago.PublicKey,
	tokenMintA solanago.PublicKey,
	tokenMintB solanago.PublicKey,
	makerTokenAccountA solanago.PublicKey,
	offer solanago.PublicKey,
	vault solanago.PublicKey,
	tokenProgram solanago.PublicKey,
) (solanago.Instruction, error) {
	data, err := encodeInstruction(Instruction_MakeOffer, args)
	if err != nil {
		return nil, fmt.Errorf("encode make_offer: %w", err)
	}

	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(maker, true, true),
		solanago.NewAccountMeta(tokenMintA, false, false),
		solanago.NewAccountMeta(tokenMintB, false, false),
		solanago.NewAccountMeta(makerTokenAccountA, true, false),
		solanago.NewAccountMeta(offer, true, false),
		solanago.NewAccountMeta(vault, true, false),
		solanago.NewAccountMeta(associatedtokenaccount.ProgramID, false, false),
		solanago.NewAccountMeta(tokenProgram, false, false),
		solanago.NewAccountMeta(system.ProgramID, false, false),
	}
	return solanago.NewInstruction(ProgramID, accounts, data), nil
}

// NewTakeOfferInstruction builds a take_offer instruction. take_offer carries
// no scalar arguments; everything it needs lives in the offer account.
func NewTakeOfferInstruction(
	// Accounts:
	taker solanago.PublicKey,
	maker solanago.PublicKey,
	tokenMintA solanago.PublicKey,
	tokenMintB solanago.PublicKey,
	takerTokenAccountA solanago.PublicKey,
	takerTokenAccountB solanago.PublicKey,
	makerTokenAccountB solanago.PublicKey,
	offer solanago.PublicKey,
	vault solanago.PublicKey,
	tokenProgram solanago.PublicKey,
) (solanago.Instruction, error) {
	data, err := encodeInstruction(Instruction_TakeOffer, nil)
	if err != nil {
		return nil, fmt.Errorf("encode take_offer: %w", err)
	}

	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(taker, true, true),
		solanago.NewAccountMeta(maker, true, false),
		solanago.NewAccountMeta(tokenMintA, false, false),
		solanago.NewAccountMeta(tokenMintB, false, false),
		solanago.NewAccountMeta(takerTokenAccountA, true, false),
		solanago.NewAccountMeta(takerTokenAccountB, true, false),
		solanago.NewAccountMeta(makerTokenAccountB, true, false),
		solanago.NewAccountMeta(offer, true, false),
		solanago.NewAccountMeta(vault, true, false),
		solanago.NewAccountMeta(associatedtokenaccount.ProgramID, false, false),
		solanago.NewAccountMeta(tokenProgram, false, false),
		solanago.NewAccountMeta(system.ProgramID, false, false),
	}
	return solanago.NewInstruction(ProgramID, accounts, data), nil
}

func encodeInstruction(discriminator [8]byte, args interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.WriteBytes(discriminator[:], false); err != nil {
		return nil, err
	}
	if args != nil {
		if err := enc.Encode(args); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
