package solana

import (
	"context"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// Token is a mint's on-chain state plus the program that owns the mint
// account. The owner distinguishes spl-token from spl-token-2022 mints.
type Token struct {
	token.Mint
	Owner solana.PublicKey
}

// GetToken fetches and decodes a mint account. Returns rpc.ErrNotFound when
// the mint does not exist.
func GetToken(ctx context.Context, client Ledger, mint solana.PublicKey, commitment rpc.CommitmentType) (*Token, error) {
	acc, err := GetAccountInfo(ctx, client, mint, commitment)
	if err != nil {
		return nil, err
	}
	if acc == nil || acc.Value == nil {
		return nil, rpc.ErrNotFound
	}

	out := &Token{Owner: acc.Value.Owner}
	if err := out.Mint.Decode(acc.Value.Data.GetBinary()); err != nil {
		return nil, fmt.Errorf("decode mint %s: %w", mint, err)
	}
	return out, nil
}

// TokenAccount is the slice of the token-account layout this module reads.
// Both token programs share the base layout, so vault balances decode the
// same way under either.
type TokenAccount struct {
	Mint   solana.PublicKey
	Owner  solana.PublicKey
	Amount uint64
}

// DecodeTokenAccount decodes the leading fields of a token account. Extension
// data past the base layout (token-2022) is ignored.
func DecodeTokenAccount(data []byte) (*TokenAccount, error) {
	acc := new(TokenAccount)
	if err := binary.NewBinDecoder(data).Decode(acc); err != nil {
		return nil, fmt.Errorf("decode token account: %w", err)
	}
	return acc, nil
}
