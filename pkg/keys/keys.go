// Package keys loads the backend signing key used for deploy approvals and
// provides at-rest encryption for raw private keys.
package keys

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/asn1"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/chainsafe/dao-indexer/pkg/casper"
)

// Supported algorithm names, as used in configuration.
const (
	AlgorithmEd25519   = "ed25519"
	AlgorithmSecp256k1 = "secp256k1"
)

var secp256k1OID = asn1.ObjectIdentifier{1, 3, 132, 0, 10}

// Ed25519Signer signs deploys with an Ed25519 key.
type Ed25519Signer struct {
	priv ed25519.PrivateKey
}

// NewEd25519Signer wraps an Ed25519 private key.
func NewEd25519Signer(priv ed25519.PrivateKey) (*Ed25519Signer, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("ed25519 private key must be %d bytes, got %d", ed25519.PrivateKeySize, len(priv))
	}
	return &Ed25519Signer{priv: priv}, nil
}

// GenerateEd25519 creates a random Ed25519 signer.
func GenerateEd25519() (*Ed25519Signer, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ed25519 key: %w", err)
	}
	return &Ed25519Signer{priv: priv}, nil
}

// PublicKey implements casper.Signer.
func (s *Ed25519Signer) PublicKey() casper.PublicKey {
	return casper.PublicKey{
		Algorithm: casper.AlgorithmEd25519,
		Raw:       []byte(s.priv.Public().(ed25519.PublicKey)),
	}
}

// Sign implements casper.Signer.
func (s *Ed25519Signer) Sign(msg []byte) ([]byte, error) {
	return append([]byte{casper.AlgorithmEd25519}, ed25519.Sign(s.priv, msg)...), nil
}

// Secp256k1Signer signs deploys with a secp256k1 key.
type Secp256k1Signer struct {
	priv *ecdsa.PrivateKey
}

// NewSecp256k1Signer wraps a raw 32-byte secp256k1 private key.
func NewSecp256k1Signer(raw []byte) (*Secp256k1Signer, error) {
	priv, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to create private key: %w", err)
	}
	return &Secp256k1Signer{priv: priv}, nil
}

// GenerateSecp256k1 creates a random secp256k1 signer.
func GenerateSecp256k1() (*Secp256k1Signer, error) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate secp256k1 keypair: %w", err)
	}
	return &Secp256k1Signer{priv: priv}, nil
}

// PublicKey implements casper.Signer.
func (s *Secp256k1Signer) PublicKey() casper.PublicKey {
	return casper.PublicKey{
		Algorithm: casper.AlgorithmSecp256k1,
		Raw:       crypto.CompressPubkey(&s.priv.PublicKey),
	}
}

// Sign implements casper.Signer. The message is hashed with SHA-256 and the
// recovery byte of the signature is dropped.
func (s *Secp256k1Signer) Sign(msg []byte) ([]byte, error) {
	digest := sha256.Sum256(msg)
	sig, err := crypto.Sign(digest[:], s.priv)
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	return append([]byte{casper.AlgorithmSecp256k1}, sig[:64]...), nil
}

// PrivateKeyBytes returns the raw 32-byte private key.
func (s *Secp256k1Signer) PrivateKeyBytes() []byte {
	return crypto.FromECDSA(s.priv)
}

// ecPrivateKey is the SEC 1 structure. x509 does not know the secp256k1 curve.
type ecPrivateKey struct {
	Version       int
	PrivateKey    []byte
	NamedCurveOID asn1.ObjectIdentifier `asn1:"optional,explicit,tag:0"`
	PublicKey     asn1.BitString        `asn1:"optional,explicit,tag:1"`
}

// ParsePEM parses a secret key file as written by the node's keygen tool.
func ParsePEM(data []byte, algorithm string) (casper.Signer, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}

	switch algorithm {
	case AlgorithmEd25519:
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ed25519 key: %w", err)
		}
		priv, ok := key.(ed25519.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("PEM key is %T, not ed25519", key)
		}
		return NewEd25519Signer(priv)
	case AlgorithmSecp256k1:
		var ec ecPrivateKey
		if _, err := asn1.Unmarshal(block.Bytes, &ec); err != nil {
			return nil, fmt.Errorf("failed to parse secp256k1 key: %w", err)
		}
		if len(ec.NamedCurveOID) > 0 && !ec.NamedCurveOID.Equal(secp256k1OID) {
			return nil, fmt.Errorf("unexpected curve %s", ec.NamedCurveOID)
		}
		return NewSecp256k1Signer(ec.PrivateKey)
	default:
		return nil, fmt.Errorf("unsupported key algorithm %q", algorithm)
	}
}

// EncodePEM renders a signer's private key in the format ParsePEM reads.
func EncodePEM(s casper.Signer) ([]byte, error) {
	switch k := s.(type) {
	case *Ed25519Signer:
		der, err := x509.MarshalPKCS8PrivateKey(k.priv)
		if err != nil {
			return nil, err
		}
		return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
	case *Secp256k1Signer:
		der, err := asn1.Marshal(ecPrivateKey{
			Version:       1,
			PrivateKey:    k.PrivateKeyBytes(),
			NamedCurveOID: secp256k1OID,
		})
		if err != nil {
			return nil, err
		}
		return pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}), nil
	default:
		return nil, fmt.Errorf("unsupported signer %T", s)
	}
}

// LoadSigner reads the signing key at path. With a master key the file holds
// the output of EncryptPrivateKey over the raw private key; otherwise it is PEM.
func LoadSigner(path, algorithm string, masterKey []byte) (casper.Signer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read signing key: %w", err)
	}
	if masterKey == nil {
		return ParsePEM(data, algorithm)
	}

	raw, err := DecryptPrivateKey(strings.TrimSpace(string(data)), masterKey)
	if err != nil {
		return nil, err
	}
	switch algorithm {
	case AlgorithmEd25519:
		return NewEd25519Signer(ed25519.NewKeyFromSeed(raw))
	case AlgorithmSecp256k1:
		return NewSecp256k1Signer(raw)
	default:
		return nil, fmt.Errorf("unsupported key algorithm %q", algorithm)
	}
}

// RawPrivateKey returns the 32-byte secret of a signer, the input EncryptPrivateKey expects.
func RawPrivateKey(s casper.Signer) ([]byte, error) {
	switch k := s.(type) {
	case *Ed25519Signer:
		return k.priv.Seed(), nil
	case *Secp256k1Signer:
		return k.PrivateKeyBytes(), nil
	default:
		return nil, fmt.Errorf("unsupported signer %T", s)
	}
}

// EncryptPrivateKey encrypts the private key using AES-256-GCM with the provided master key.
// Returns the encrypted key as a base64-encoded string containing: nonce || ciphertext || tag
func EncryptPrivateKey(privateKey []byte, masterKey []byte) (string, error) {
	if len(masterKey) != 32 {
		return "", fmt.Errorf("master key must be 32 bytes (AES-256)")
	}
	if len(privateKey) != 32 {
		return "", fmt.Errorf("private key must be 32 bytes")
	}

	gcm, err := newGCM(masterKey)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, privateKey, nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptPrivateKey decrypts a key produced by EncryptPrivateKey.
func DecryptPrivateKey(encrypted string, masterKey []byte) ([]byte, error) {
	if len(masterKey) != 32 {
		return nil, fmt.Errorf("master key must be 32 bytes (AES-256)")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	gcm, err := newGCM(masterKey)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	if len(plaintext) != 32 {
		return nil, fmt.Errorf("decrypted key has wrong size: got %d, want 32", len(plaintext))
	}
	return plaintext, nil
}

func newGCM(masterKey []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(masterKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// GenerateMasterKey generates a new random 32-byte master key.
func GenerateMasterKey() ([]byte, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}
	return key, nil
}

// MasterKeyFromBase64 decodes a base64-encoded master key. An empty string
// yields a nil key.
func MasterKeyFromBase64(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode master key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("master key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}

// MasterKeyToBase64 encodes a master key as base64 for storage
func MasterKeyToBase64(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}
