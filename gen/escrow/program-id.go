package escrowgen

import solanago "github.com/gagliardetto/solana-go"

// ProgramID is the on-chain escrow program address. Deployments on other
// clusters can override it with SetProgramID before building instructions.
var ProgramID = solanago.MustPublicKeyFromBase58("FWraExnWAfMcxLyfQgh6hAnX5NbfqTyVU5vtKdfvfjfk")

func SetProgramID(id solanago.PublicKey) {
	ProgramID = id
}
