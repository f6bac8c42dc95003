package keys

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/chainsafe/dao-indexer/pkg/casper"
)

func TestSigners_SignAndVerify(t *testing.T) {
	ed, err := GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519 failed: %v", err)
	}
	secp, err := GenerateSecp256k1()
	if err != nil {
		t.Fatalf("GenerateSecp256k1 failed: %v", err)
	}

	message := []byte("deploy hash bytes")
	for _, s := range []casper.Signer{ed, secp} {
		sig, err := s.Sign(message)
		if err != nil {
			t.Fatalf("Sign failed: %v", err)
		}
		if len(sig) != 65 {
			t.Errorf("expected 65-byte tagged signature, got %d", len(sig))
		}
		if err := s.PublicKey().Verify(message, sig); err != nil {
			t.Errorf("signature from %T failed verification: %v", s, err)
		}
		if err := s.PublicKey().Verify([]byte("other"), sig); err == nil {
			t.Errorf("signature from %T verified for a different message", s)
		}
	}

	if got := len(secp.PublicKey().Raw); got != 33 {
		t.Errorf("expected compressed secp256k1 key, got %d bytes", got)
	}
}

func TestParsePEM_RoundTrip(t *testing.T) {
	ed, _ := GenerateEd25519()
	secp, _ := GenerateSecp256k1()

	tests := []struct {
		algorithm string
		signer    casper.Signer
	}{
		{AlgorithmEd25519, ed},
		{AlgorithmSecp256k1, secp},
	}
	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			data, err := EncodePEM(tt.signer)
			if err != nil {
				t.Fatalf("EncodePEM failed: %v", err)
			}
			loaded, err := ParsePEM(data, tt.algorithm)
			if err != nil {
				t.Fatalf("ParsePEM failed: %v", err)
			}
			if loaded.PublicKey().Hex() != tt.signer.PublicKey().Hex() {
				t.Errorf("public key changed: %s != %s", loaded.PublicKey(), tt.signer.PublicKey())
			}
		})
	}

	edPEM, _ := EncodePEM(ed)
	if _, err := ParsePEM(edPEM, AlgorithmSecp256k1); err == nil {
		t.Error("expected error parsing ed25519 PEM as secp256k1")
	}
	if _, err := ParsePEM([]byte("not pem"), AlgorithmEd25519); err == nil {
		t.Error("expected error for non-PEM input")
	}
}

func TestLoadSigner(t *testing.T) {
	dir := t.TempDir()
	secp, _ := GenerateSecp256k1()

	pemPath := filepath.Join(dir, "secret_key.pem")
	data, err := EncodePEM(secp)
	if err != nil {
		t.Fatalf("EncodePEM failed: %v", err)
	}
	if err := os.WriteFile(pemPath, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	s, err := LoadSigner(pemPath, AlgorithmSecp256k1, nil)
	if err != nil {
		t.Fatalf("LoadSigner (pem) failed: %v", err)
	}
	if s.PublicKey().Hex() != secp.PublicKey().Hex() {
		t.Error("PEM signer has different public key")
	}

	masterKey, err := GenerateMasterKey()
	if err != nil {
		t.Fatalf("GenerateMasterKey failed: %v", err)
	}
	ed, _ := GenerateEd25519()
	raw, err := RawPrivateKey(ed)
	if err != nil {
		t.Fatalf("RawPrivateKey failed: %v", err)
	}
	encrypted, err := EncryptPrivateKey(raw, masterKey)
	if err != nil {
		t.Fatalf("EncryptPrivateKey failed: %v", err)
	}
	encPath := filepath.Join(dir, "secret_key.enc")
	if err := os.WriteFile(encPath, []byte(encrypted+"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	s, err = LoadSigner(encPath, AlgorithmEd25519, masterKey)
	if err != nil {
		t.Fatalf("LoadSigner (encrypted) failed: %v", err)
	}
	if s.PublicKey().Hex() != ed.PublicKey().Hex() {
		t.Error("encrypted signer has different public key")
	}

	if _, err := LoadSigner(filepath.Join(dir, "missing.pem"), AlgorithmEd25519, nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDecryptWithWrongKey(t *testing.T) {
	secp, _ := GenerateSecp256k1()
	masterKey1, _ := GenerateMasterKey()
	masterKey2, _ := GenerateMasterKey()

	encrypted, err := EncryptPrivateKey(secp.PrivateKeyBytes(), masterKey1)
	if err != nil {
		t.Fatalf("EncryptPrivateKey failed: %v", err)
	}
	if _, err := DecryptPrivateKey(encrypted, masterKey2); err == nil {
		t.Error("Expected error decrypting with wrong key, got nil")
	}
}

func TestEncryptInvalidMasterKeySize(t *testing.T) {
	secp, _ := GenerateSecp256k1()

	if _, err := EncryptPrivateKey(secp.PrivateKeyBytes(), make([]byte, 16)); err == nil {
		t.Error("Expected error for short master key")
	}
	if _, err := EncryptPrivateKey(secp.PrivateKeyBytes(), make([]byte, 64)); err == nil {
		t.Error("Expected error for long master key")
	}
}

func TestMasterKeyFromBase64(t *testing.T) {
	masterKey, err := GenerateMasterKey()
	if err != nil {
		t.Fatalf("GenerateMasterKey failed: %v", err)
	}
	recovered, err := MasterKeyFromBase64(MasterKeyToBase64(masterKey))
	if err != nil {
		t.Fatalf("MasterKeyFromBase64 failed: %v", err)
	}
	if string(recovered) != string(masterKey) {
		t.Error("Recovered key mismatch")
	}

	if key, err := MasterKeyFromBase64(""); err != nil || key != nil {
		t.Errorf("expected nil key for empty input, got %v, %v", key, err)
	}
	if _, err := MasterKeyFromBase64("not-valid-base64!!!"); err == nil {
		t.Error("Expected error for invalid base64")
	}
	if _, err := MasterKeyFromBase64(base64.StdEncoding.EncodeToString([]byte("short"))); err == nil {
		t.Error("Expected error for wrong key length")
	}
}
