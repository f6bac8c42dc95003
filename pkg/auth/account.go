package auth

import (
	"fmt"

	"github.com/chainsafe/dao-indexer/pkg/casper"
)

// NormalizePublicKey validates a tagged account public key ("01…" Ed25519,
// "02…" secp256k1) and returns its canonical lower-case hex form.
func NormalizePublicKey(s string) (string, error) {
	pk, err := casper.ParsePublicKey(s)
	if err != nil {
		return "", fmt.Errorf("invalid public key: %w", err)
	}
	return pk.Hex(), nil
}
