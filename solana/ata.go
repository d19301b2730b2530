package solana

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
)

// FindAssociatedTokenAddress derives the ATA for (wallet, mint) under the
// given token program. solana-go's own helper hardcodes the legacy token
// program, so token-2022 mints need this variant.
func FindAssociatedTokenAddress(wallet, mint, tokenProgram solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindProgramAddress(
		[][]byte{wallet.Bytes(), tokenProgram.Bytes(), mint.Bytes()},
		solana.SPLAssociatedTokenAccountProgramID,
	)
	return ata, err
}

// CreateAssociatedTokenAccountInstruction builds an ATA create instruction
// that supports custom token programs (spl-token / spl-token-2022).
func CreateAssociatedTokenAccountInstruction(payer, ata, owner, mint, tokenProgram solana.PublicKey) solana.Instruction {
	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(ata, true, false),
		solana.NewAccountMeta(owner, false, false),
		solana.NewAccountMeta(mint, false, false),
		solana.NewAccountMeta(system.ProgramID, false, false),
		solana.NewAccountMeta(tokenProgram, false, false),
	}
	return solana.NewInstruction(solana.SPLAssociatedTokenAccountProgramID, accounts, nil)
}

// GetOrCreateATAInstruction returns the ATA pubkey plus a create instruction
// when the account does not exist yet.
func GetOrCreateATAInstruction(ctx context.Context, client Ledger, mint, owner, payer, tokenProgram solana.PublicKey, commitment rpc.CommitmentType) (solana.PublicKey, solana.Instruction, error) {
	ata, err := FindAssociatedTokenAddress(owner, mint, tokenProgram)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}

	acc, err := GetAccountInfo(ctx, client, ata, commitment)
	if err != nil && err != rpc.ErrNotFound {
		return solana.PublicKey{}, nil, err
	}
	if acc != nil && acc.Value != nil {
		return ata, nil, nil
	}
	return ata, CreateAssociatedTokenAccountInstruction(payer, ata, owner, mint, tokenProgram), nil
}
