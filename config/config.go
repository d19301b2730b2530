package config

import (
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"
)

// Config carries the connection settings for the escrow client.
type Config struct {
	RPCUrl     string
	ProgramID  solana.PublicKey
	Commitment rpc.CommitmentType
}

// Load reads configuration from a .env file (if present) and the
// environment. ESCROW_PROGRAM_ID is optional; an empty value keeps the
// default deployment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		RPCUrl:     getEnv("SOLANA_RPC_URL", rpc.DevNet_RPC),
		Commitment: rpc.CommitmentType(getEnv("SOLANA_COMMITMENT", string(rpc.CommitmentConfirmed))),
	}

	if raw := os.Getenv("ESCROW_PROGRAM_ID"); raw != "" {
		programID, err := solana.PublicKeyFromBase58(raw)
		if err != nil {
			return nil, fmt.Errorf("ESCROW_PROGRAM_ID: %w", err)
		}
		cfg.ProgramID = programID
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
