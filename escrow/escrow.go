package escrow

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"

	escrowgen "github.com/offerbook/escrow-go/gen/escrow"
	solanago "github.com/offerbook/escrow-go/solana"
)

// Client talks to the escrow program: it derives the addresses an offer
// needs, assembles unsubmitted make/take instructions and reads wallet and
// offer state. It never submits transactions; signing and sending stay with
// the caller.
type Client struct {
	rpcClient  solanago.Ledger
	programID  solana.PublicKey
	commitment rpc.CommitmentType
	logger     *logrus.Logger
}

// NewClient wires a client around an RPC connection. The connection is a
// caller-owned dependency, never ambient module state.
func NewClient(rpcClient solanago.Ledger, opts ...Option) *Client {
	c := &Client{
		rpcClient:  rpcClient,
		programID:  escrowgen.ProgramID,
		commitment: rpc.CommitmentConfirmed,
		logger:     logrus.New(),
	}
	for _, fn := range opts {
		fn(c)
	}
	return c
}

type Option func(*Client)

// WithProgramID targets a non-default escrow program deployment.
func WithProgramID(programID solana.PublicKey) Option {
	return func(c *Client) {
		c.programID = programID
	}
}

func WithCommitment(commitment rpc.CommitmentType) Option {
	return func(c *Client) {
		c.commitment = commitment
	}
}

func WithLogger(logger *logrus.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// ProgramID returns the escrow program this client targets.
func (c *Client) ProgramID() solana.PublicKey {
	return c.programID
}

// EnsureTokenAccount derives owner's ATA for mint under the given token
// program and, when the account does not exist yet, returns the create
// instruction to prepend to the submission transaction.
func (c *Client) EnsureTokenAccount(ctx context.Context, owner, mint, payer solana.PublicKey, program *TokenProgram) (solana.PublicKey, solana.Instruction, error) {
	return solanago.GetOrCreateATAInstruction(ctx, c.rpcClient, mint, owner, payer, program.ID(), c.commitment)
}
