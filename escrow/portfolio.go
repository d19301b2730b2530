package escrow

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	solanago "github.com/offerbook/escrow-go/solana"
)

// UserToken is one wallet holding: a mint, its raw balance, and the token
// program the account lives under. Rebuilt on every FetchPortfolio pass,
// never cached.
type UserToken struct {
	Mint     solana.PublicKey
	Account  solana.PublicKey
	Amount   uint64
	Decimals uint8
	// Balance is Amount shifted by the mint's decimals, for display.
	Balance decimal.Decimal
	Program *TokenProgram
}

type taggedAccount struct {
	account solana.PublicKey
	mint    solana.PublicKey
	amount  uint64
	program *TokenProgram
}

// FetchPortfolio aggregates owner's holdings across both token programs into
// one list. Zero balances are dropped; decimals are looked up once per
// distinct mint within the pass. Ordering across the two programs is not
// stable between calls.
//
// Any failure aborts the whole pass with ErrPortfolioFetch; no partial list
// is returned. Cancelling ctx (wallet disconnect, view teardown) likewise
// discards the in-flight result.
func (c *Client) FetchPortfolio(ctx context.Context, owner solana.PublicKey) ([]UserToken, error) {
	programs := []*TokenProgram{TokenProgramLegacy, TokenProgram2022}

	var (
		wg      sync.WaitGroup
		results = make([][]taggedAccount, len(programs))
		errs    = make([]error, len(programs))
	)
	wg.Add(len(programs))
	for i, program := range programs {
		go func(i int, program *TokenProgram) {
			defer wg.Done()
			results[i], errs[i] = c.tokenAccountsUnder(ctx, owner, program)
		}(i, program)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPortfolioFetch, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPortfolioFetch, err)
	}

	var held []taggedAccount
	for _, accounts := range results {
		for _, acc := range accounts {
			if acc.amount == 0 {
				continue
			}
			held = append(held, acc)
		}
	}
	if len(held) == 0 {
		return nil, nil
	}

	decimals, err := c.fetchDecimals(ctx, held)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPortfolioFetch, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPortfolioFetch, err)
	}

	tokens := make([]UserToken, 0, len(held))
	for _, acc := range held {
		dec := decimals[acc.mint]
		tokens = append(tokens, UserToken{
			Mint:     acc.mint,
			Account:  acc.account,
			Amount:   acc.amount,
			Decimals: dec,
			Balance:  decimal.NewFromBigInt(new(big.Int).SetUint64(acc.amount), -int32(dec)),
			Program:  acc.program,
		})
	}

	c.logger.WithFields(logrus.Fields{
		"owner":  owner,
		"tokens": len(tokens),
	}).Debug("portfolio fetched")

	return tokens, nil
}

// tokenAccountsUnder lists owner's token accounts under one program. The
// query is program-scoped, so the tag is exact rather than inferred.
func (c *Client) tokenAccountsUnder(ctx context.Context, owner solana.PublicKey, program *TokenProgram) ([]taggedAccount, error) {
	programID := program.ID()
	resp, err := c.rpcClient.GetTokenAccountsByOwner(ctx, owner, &rpc.GetTokenAccountsConfig{
		ProgramId: &programID,
	}, &rpc.GetTokenAccountsOpts{
		Encoding:   solana.EncodingJSONParsed,
		Commitment: c.commitment,
	})
	if err != nil {
		return nil, fmt.Errorf("token accounts under %s: %w", program, err)
	}

	accounts := make([]taggedAccount, 0, len(resp.Value))
	for _, v := range resp.Value {
		raw := v.Account.Data.GetRawJSON()
		mintStr := gjson.GetBytes(raw, "parsed.info.mint").String()
		amount := gjson.GetBytes(raw, "parsed.info.tokenAmount.amount").Uint()

		mint, err := solana.PublicKeyFromBase58(mintStr)
		if err != nil {
			return nil, fmt.Errorf("account %s: bad mint %q: %w", v.Pubkey, mintStr, err)
		}
		accounts = append(accounts, taggedAccount{
			account: v.Pubkey,
			mint:    mint,
			amount:  amount,
			program: program,
		})
	}
	return accounts, nil
}

// fetchDecimals resolves decimals for every distinct mint concurrently.
// One lookup per mint regardless of how many accounts share it.
func (c *Client) fetchDecimals(ctx context.Context, held []taggedAccount) (map[solana.PublicKey]uint8, error) {
	distinct := make([]solana.PublicKey, 0, len(held))
	seen := make(map[solana.PublicKey]struct{}, len(held))
	for _, acc := range held {
		if _, ok := seen[acc.mint]; ok {
			continue
		}
		seen[acc.mint] = struct{}{}
		distinct = append(distinct, acc.mint)
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		out  = make(map[solana.PublicKey]uint8, len(distinct))
		errs = make([]error, len(distinct))
	)
	wg.Add(len(distinct))
	for i, mint := range distinct {
		go func(i int, mint solana.PublicKey) {
			defer wg.Done()
			tok, err := solanago.GetToken(ctx, c.rpcClient, mint, c.commitment)
			if err != nil {
				if err == rpc.ErrNotFound {
					err = fmt.Errorf("%s: %w", mint, ErrMintNotFound)
				}
				errs[i] = fmt.Errorf("decimals for mint %s: %w", mint, err)
				return
			}
			mu.Lock()
			out[mint] = tok.Decimals
			mu.Unlock()
		}(i, mint)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
