package escrowgo

import (
	"github.com/offerbook/escrow-go/escrow"
)

// NewClient creates a new escrow client.
//
// Example:
//
// client := escrowgo.NewClient(rpcClient, escrow.WithCommitment(rpc.CommitmentConfirmed))
//
// client.BuildMakeOffer(ctx, maker, mintA, mintB, amountA, amountB)
//
// client.FetchPortfolio(ctx, wallet)
var NewClient = escrow.NewClient
