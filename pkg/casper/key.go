package casper

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// KeyTag identifies the kind of a global state key.
type KeyTag uint8

const (
	KeyTagAccount KeyTag = 0
	KeyTagHash    KeyTag = 1
	KeyTagURef    KeyTag = 2
)

const (
	accountHashPrefix = "account-hash-"
	hashPrefix        = "hash-"
	urefPrefix        = "uref-"
)

// Key is a global state key: an account hash, a contract hash or a URef.
type Key struct {
	Tag    KeyTag
	Hash   [32]byte
	Access uint8 // URef access rights
}

// ParseKey parses the formatted representation used in RPC payloads.
func ParseKey(s string) (Key, error) {
	var (
		k   Key
		hx  string
		err error
	)
	switch {
	case strings.HasPrefix(s, accountHashPrefix):
		k.Tag = KeyTagAccount
		hx = strings.TrimPrefix(s, accountHashPrefix)
	case strings.HasPrefix(s, hashPrefix):
		k.Tag = KeyTagHash
		hx = strings.TrimPrefix(s, hashPrefix)
	case strings.HasPrefix(s, urefPrefix):
		k.Tag = KeyTagURef
		body := strings.TrimPrefix(s, urefPrefix)
		idx := strings.LastIndex(body, "-")
		if idx < 0 {
			return Key{}, fmt.Errorf("invalid uref %q", s)
		}
		access, perr := strconv.ParseUint(body[idx+1:], 8, 8)
		if perr != nil {
			return Key{}, fmt.Errorf("invalid uref access rights in %q: %w", s, perr)
		}
		k.Access = uint8(access)
		hx = body[:idx]
	default:
		return Key{}, fmt.Errorf("unsupported key %q", s)
	}

	k.Hash, err = parseHash32(hx)
	if err != nil {
		return Key{}, fmt.Errorf("invalid key %q: %w", s, err)
	}
	return k, nil
}

// String returns the formatted representation of the key.
func (k Key) String() string {
	h := hex.EncodeToString(k.Hash[:])
	switch k.Tag {
	case KeyTagAccount:
		return accountHashPrefix + h
	case KeyTagHash:
		return hashPrefix + h
	case KeyTagURef:
		return fmt.Sprintf("%s%s-%03o", urefPrefix, h, k.Access)
	default:
		return fmt.Sprintf("key(%d)-%s", k.Tag, h)
	}
}

func (k Key) appendBytes(e *encoder) {
	e.u8(uint8(k.Tag))
	e.raw(k.Hash[:])
	if k.Tag == KeyTagURef {
		e.u8(k.Access)
	}
}

func decodeKey(d *decoder) (Key, error) {
	tag, err := d.u8()
	if err != nil {
		return Key{}, err
	}
	k := Key{Tag: KeyTag(tag)}
	switch k.Tag {
	case KeyTagAccount, KeyTagHash, KeyTagURef:
	default:
		return Key{}, fmt.Errorf("unsupported key tag %d", tag)
	}
	h, err := d.take(32)
	if err != nil {
		return Key{}, err
	}
	copy(k.Hash[:], h)
	if k.Tag == KeyTagURef {
		if k.Access, err = d.u8(); err != nil {
			return Key{}, err
		}
	}
	return k, nil
}

// Hash is a 32-byte digest rendered as lower-case hex.
type Hash [32]byte

// ParseHash parses a 64-character hex digest, with or without a "hash-" prefix.
func ParseHash(s string) (Hash, error) {
	h, err := parseHash32(strings.TrimPrefix(s, hashPrefix))
	return Hash(h), err
}

// String returns the hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether the hash is unset.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

func parseHash32(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(b) != 32 {
		return out, fmt.Errorf("expected 32 bytes, got %d", len(b))
	}
	copy(out[:], b)
	return out, nil
}
