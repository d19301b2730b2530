package escrow

import (
	"context"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	solanago "github.com/offerbook/escrow-go/solana"
)

// TokenProgram is one of the two token standards a mint can live under.
// Resolution picks the variant once per operation; everything downstream
// (ATA derivation, instruction accounts) goes through it instead of
// re-branching on the program ID.
type TokenProgram struct {
	id   solana.PublicKey
	name string
}

var (
	TokenProgramLegacy = &TokenProgram{id: solana.TokenProgramID, name: "spl-token"}
	TokenProgram2022   = &TokenProgram{id: solana.Token2022ProgramID, name: "spl-token-2022"}
)

func (p *TokenProgram) ID() solana.PublicKey { return p.id }

func (p *TokenProgram) Name() string { return p.name }

func (p *TokenProgram) String() string { return p.name }

// AssociatedTokenAddress derives the ATA for (owner, mint) under this
// program. allowOwnerOffCurve must be true when the owner is itself a PDA,
// such as an offer address owning its vault.
func (p *TokenProgram) AssociatedTokenAddress(owner, mint solana.PublicKey, allowOwnerOffCurve bool) (solana.PublicKey, error) {
	return DeriveAssociatedTokenAddress(owner, mint, allowOwnerOffCurve, p.id)
}

// tokenProgramFor maps an account owner to its variant, nil if unrecognized.
func tokenProgramFor(id solana.PublicKey) *TokenProgram {
	switch {
	case id.Equals(solana.TokenProgramID):
		return TokenProgramLegacy
	case id.Equals(solana.Token2022ProgramID):
		return TokenProgram2022
	default:
		return nil
	}
}

// ResolveTokenProgram classifies a mint by the program that owns its account.
func (c *Client) ResolveTokenProgram(ctx context.Context, mint solana.PublicKey) (*TokenProgram, error) {
	owner, err := c.mintOwner(ctx, mint)
	if err != nil {
		return nil, err
	}
	program := tokenProgramFor(owner)
	if program == nil {
		return nil, fmt.Errorf("mint %s owned by %s: %w", mint, owner, ErrUnsupportedTokenProgram)
	}
	return program, nil
}

// ResolveAndMatch fetches both mints' owners concurrently and requires them
// to be the same recognized token program.
func (c *Client) ResolveAndMatch(ctx context.Context, mintA, mintB solana.PublicKey) (*TokenProgram, error) {
	var (
		wg             sync.WaitGroup
		ownerA, ownerB solana.PublicKey
		errA, errB     error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		ownerA, errA = c.mintOwner(ctx, mintA)
	}()
	go func() {
		defer wg.Done()
		ownerB, errB = c.mintOwner(ctx, mintB)
	}()
	wg.Wait()

	if errA != nil {
		return nil, errA
	}
	if errB != nil {
		return nil, errB
	}

	if !ownerA.Equals(ownerB) {
		return nil, fmt.Errorf("mint %s under %s, mint %s under %s: %w",
			mintA, ownerA, mintB, ownerB, ErrTokenProgramMismatch)
	}
	program := tokenProgramFor(ownerA)
	if program == nil {
		return nil, fmt.Errorf("mints owned by %s: %w", ownerA, ErrUnsupportedTokenProgram)
	}
	return program, nil
}

func (c *Client) mintOwner(ctx context.Context, mint solana.PublicKey) (solana.PublicKey, error) {
	acc, err := solanago.GetAccountInfo(ctx, c.rpcClient, mint, c.commitment)
	if err != nil {
		if err == rpc.ErrNotFound {
			return solana.PublicKey{}, fmt.Errorf("%s: %w", mint, ErrMintNotFound)
		}
		return solana.PublicKey{}, fmt.Errorf("get mint %s: %w", mint, err)
	}
	if acc == nil || acc.Value == nil {
		return solana.PublicKey{}, fmt.Errorf("%s: %w", mint, ErrMintNotFound)
	}
	return acc.Value.Owner, nil
}
