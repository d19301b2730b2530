package solana

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

func GetAccountInfo(ctx context.Context, client Ledger, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetAccountInfoResult, error) {
	return client.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{Commitment: commitment})
}

func GetMultipleAccountInfo(ctx context.Context, client Ledger, commitment rpc.CommitmentType, accounts []solana.PublicKey) (*rpc.GetMultipleAccountsResult, error) {
	return client.GetMultipleAccountsWithOpts(ctx, accounts, &rpc.GetMultipleAccountsOpts{Commitment: commitment, Encoding: solana.EncodingBase64})
}

// GenProgramAccountFilter builds a getProgramAccounts filter matching the
// given account discriminator, optionally narrowed by an owner memcmp filter.
func GenProgramAccountFilter(discriminator [8]byte, commitment rpc.CommitmentType, filter *Filter) *rpc.GetProgramAccountsOpts {
	opt := &rpc.GetProgramAccountsOpts{
		Commitment: commitment,
		Encoding:   solana.EncodingBase64,
		Filters: []rpc.RPCFilter{
			{
				Memcmp: &rpc.RPCFilterMemcmp{
					Offset: 0,
					Bytes:  discriminator[:],
				},
			},
		},
	}
	if filter == nil || filter.Owner.Equals(solana.PublicKey{}) {
		return opt
	}

	opt.Filters = append(opt.Filters, rpc.RPCFilter{
		Memcmp: &rpc.RPCFilterMemcmp{
			Offset: filter.Offset,
			Bytes:  filter.Owner[:],
		},
	})
	return opt
}
