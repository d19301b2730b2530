package escrow

import (
	"context"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	escrowgen "github.com/offerbook/escrow-go/gen/escrow"
	solanago "github.com/offerbook/escrow-go/solana"
)

// makerFieldOffset is the byte offset of Offer.Maker: 8 discriminator + 8 id.
const makerFieldOffset = 16

// OfferInfo pairs an offer's address with its decoded state. Vault and
// EscrowedAmount are filled by the enrichment step: the offered amount is
// not part of the account state, it is the vault's token balance.
type OfferInfo struct {
	Address        solana.PublicKey
	State          *escrowgen.Offer
	TokenProgram   *TokenProgram
	Vault          solana.PublicKey
	EscrowedAmount uint64
}

// FetchOffer reads one offer account and enriches it with its vault balance.
func (c *Client) FetchOffer(ctx context.Context, offerAddress solana.PublicKey) (*OfferInfo, error) {
	acc, err := solanago.GetAccountInfo(ctx, c.rpcClient, offerAddress, c.commitment)
	if err != nil {
		if err == rpc.ErrNotFound {
			return nil, fmt.Errorf("%s: %w", offerAddress, ErrOfferNotFound)
		}
		return nil, fmt.Errorf("get offer %s: %w", offerAddress, err)
	}
	if acc == nil || acc.Value == nil {
		return nil, fmt.Errorf("%s: %w", offerAddress, ErrOfferNotFound)
	}

	state, err := escrowgen.ParseOffer(acc.Value.Data.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("offer %s: %w", offerAddress, err)
	}

	offers := []*OfferInfo{{Address: offerAddress, State: state}}
	if err := c.enrichOffers(ctx, offers); err != nil {
		return nil, err
	}
	return offers[0], nil
}

// FetchOpenOffers lists every open offer of the program.
func (c *Client) FetchOpenOffers(ctx context.Context) ([]*OfferInfo, error) {
	return c.fetchOffers(ctx, nil)
}

// FetchOffersByMaker lists a maker's open offers.
func (c *Client) FetchOffersByMaker(ctx context.Context, maker solana.PublicKey) ([]*OfferInfo, error) {
	return c.fetchOffers(ctx, &solanago.Filter{Owner: maker, Offset: makerFieldOffset})
}

func (c *Client) fetchOffers(ctx context.Context, filter *solanago.Filter) ([]*OfferInfo, error) {
	opts := solanago.GenProgramAccountFilter(escrowgen.Account_Offer, c.commitment, filter)
	accs, err := c.rpcClient.GetProgramAccountsWithOpts(ctx, c.programID, opts)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}

	offers := make([]*OfferInfo, 0, len(accs))
	for _, acc := range accs {
		state, err := escrowgen.ParseOffer(acc.Account.Data.GetBinary())
		if err != nil {
			continue
		}
		offers = append(offers, &OfferInfo{Address: acc.Pubkey, State: state})
	}

	if err := c.enrichOffers(ctx, offers); err != nil {
		return nil, err
	}
	return offers, nil
}

// enrichOffers resolves each distinct mint A's token program, derives every
// offer's vault and reads all vault balances in one batched account fetch.
func (c *Client) enrichOffers(ctx context.Context, offers []*OfferInfo) error {
	if len(offers) == 0 {
		return nil
	}

	distinct := make([]solana.PublicKey, 0, len(offers))
	seen := make(map[solana.PublicKey]struct{}, len(offers))
	for _, offer := range offers {
		if _, ok := seen[offer.State.TokenMintA]; ok {
			continue
		}
		seen[offer.State.TokenMintA] = struct{}{}
		distinct = append(distinct, offer.State.TokenMintA)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		programs = make(map[solana.PublicKey]*TokenProgram, len(distinct))
		errs     = make([]error, len(distinct))
	)
	wg.Add(len(distinct))
	for i, mint := range distinct {
		go func(i int, mint solana.PublicKey) {
			defer wg.Done()
			program, err := c.ResolveTokenProgram(ctx, mint)
			if err != nil {
				errs[i] = err
				return
			}
			mu.Lock()
			programs[mint] = program
			mu.Unlock()
		}(i, mint)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	vaults := make([]solana.PublicKey, len(offers))
	for i, offer := range offers {
		program := programs[offer.State.TokenMintA]
		vault, err := program.AssociatedTokenAddress(offer.Address, offer.State.TokenMintA, true)
		if err != nil {
			return err
		}
		offer.TokenProgram = program
		offer.Vault = vault
		vaults[i] = vault
	}

	resp, err := solanago.GetMultipleAccountInfo(ctx, c.rpcClient, c.commitment, vaults)
	if err != nil {
		return fmt.Errorf("get vaults: %w", err)
	}
	for i, acc := range resp.Value {
		if acc == nil {
			continue
		}
		vault, err := solanago.DecodeTokenAccount(acc.Data.GetBinary())
		if err != nil {
			return fmt.Errorf("vault %s: %w", vaults[i], err)
		}
		offers[i].EscrowedAmount = vault.Amount
	}
	return nil
}
