package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"

	"github.com/offerbook/escrow-go/config"
	"github.com/offerbook/escrow-go/escrow"
)

// escrow-cli lists a wallet's token holdings and the program's open offers.
//
//	escrow-cli <wallet-address>
func main() {
	logger := logrus.New()

	if len(os.Args) < 2 {
		logger.Fatal("usage: escrow-cli <wallet-address>")
	}
	owner, err := solana.PublicKeyFromBase58(os.Args[1])
	if err != nil {
		logger.WithError(err).Fatal("invalid wallet address")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []escrow.Option{
		escrow.WithCommitment(cfg.Commitment),
		escrow.WithLogger(logger),
	}
	if !cfg.ProgramID.IsZero() {
		opts = append(opts, escrow.WithProgramID(cfg.ProgramID))
	}
	client := escrow.NewClient(rpc.New(cfg.RPCUrl), opts...)

	tokens, err := client.FetchPortfolio(ctx, owner)
	if err != nil {
		logger.WithError(err).Fatal("fetch portfolio")
	}
	for _, token := range tokens {
		logger.WithFields(logrus.Fields{
			"mint":    token.Mint,
			"balance": token.Balance,
			"program": token.Program,
		}).Info("holding")
	}

	offers, err := client.FetchOpenOffers(ctx)
	if err != nil {
		logger.WithError(err).Fatal("fetch offers")
	}
	for _, offer := range offers {
		logger.WithFields(logrus.Fields{
			"offer":    offer.Address,
			"maker":    offer.State.Maker,
			"offered":  offer.EscrowedAmount,
			"mintA":    offer.State.TokenMintA,
			"wanted":   offer.State.TokenBWantedAmount,
			"mintB":    offer.State.TokenMintB,
			"standard": offer.TokenProgram,
		}).Info("open offer")
	}
}
