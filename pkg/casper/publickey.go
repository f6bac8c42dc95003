package casper

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/blake2b"
)

// Algorithm tags prefixed to public keys and signatures.
const (
	AlgorithmEd25519   byte = 0x01
	AlgorithmSecp256k1 byte = 0x02
)

const signatureSize = 64

// ErrInvalidSignature is returned when an approval does not verify against its signer.
var ErrInvalidSignature = errors.New("invalid signature")

// PublicKey is an algorithm-tagged public key.
type PublicKey struct {
	Algorithm byte
	Raw       []byte
}

// ParsePublicKey parses the tagged hex form ("01…" for Ed25519, "02…" for secp256k1).
func ParsePublicKey(s string) (PublicKey, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return PublicKey{}, fmt.Errorf("invalid public key hex: %w", err)
	}
	if len(b) == 0 {
		return PublicKey{}, fmt.Errorf("empty public key")
	}

	pk := PublicKey{Algorithm: b[0], Raw: b[1:]}
	switch pk.Algorithm {
	case AlgorithmEd25519:
		if len(pk.Raw) != ed25519.PublicKeySize {
			return PublicKey{}, fmt.Errorf("ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pk.Raw))
		}
	case AlgorithmSecp256k1:
		if len(pk.Raw) != 33 {
			return PublicKey{}, fmt.Errorf("secp256k1 public key must be 33 bytes, got %d", len(pk.Raw))
		}
	default:
		return PublicKey{}, fmt.Errorf("unsupported key algorithm tag %#x", pk.Algorithm)
	}
	return pk, nil
}

// Hex returns the tagged hex form.
func (pk PublicKey) Hex() string {
	return hex.EncodeToString(append([]byte{pk.Algorithm}, pk.Raw...))
}

// String implements fmt.Stringer.
func (pk PublicKey) String() string {
	return pk.Hex()
}

// AccountHash derives the account hash the chain assigns to this key.
func (pk PublicKey) AccountHash() Hash {
	var name string
	switch pk.Algorithm {
	case AlgorithmEd25519:
		name = "ed25519"
	case AlgorithmSecp256k1:
		name = "secp256k1"
	}
	preimage := make([]byte, 0, len(name)+1+len(pk.Raw))
	preimage = append(preimage, name...)
	preimage = append(preimage, 0)
	preimage = append(preimage, pk.Raw...)
	return blake2b.Sum256(preimage)
}

func (pk PublicKey) appendBytes(e *encoder) {
	e.u8(pk.Algorithm)
	e.raw(pk.Raw)
}

// MarshalText implements encoding.TextMarshaler.
func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}

// Verify checks a tagged signature over msg.
// secp256k1 signatures are ECDSA over SHA-256(msg), as produced by the node's signer.
func (pk PublicKey) Verify(msg, signature []byte) error {
	if len(signature) != signatureSize+1 {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSignature, signatureSize+1, len(signature))
	}
	if signature[0] != pk.Algorithm {
		return fmt.Errorf("%w: signature algorithm %#x does not match key %#x", ErrInvalidSignature, signature[0], pk.Algorithm)
	}
	sig := signature[1:]

	switch pk.Algorithm {
	case AlgorithmEd25519:
		if !ed25519.Verify(ed25519.PublicKey(pk.Raw), msg, sig) {
			return ErrInvalidSignature
		}
	case AlgorithmSecp256k1:
		digest := sha256.Sum256(msg)
		if !crypto.VerifySignature(pk.Raw, digest[:], sig) {
			return ErrInvalidSignature
		}
	default:
		return fmt.Errorf("%w: unsupported algorithm %#x", ErrInvalidSignature, pk.Algorithm)
	}
	return nil
}

// Signer produces tagged signatures for a single key pair.
type Signer interface {
	PublicKey() PublicKey
	Sign(msg []byte) ([]byte, error)
}
