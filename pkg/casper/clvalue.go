package casper

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ErrTypeMismatch is returned when a CLValue is read as a type it does not hold.
var ErrTypeMismatch = errors.New("cl value type mismatch")

// CLValue is a typed value in the chain's binary representation.
// Bytes is authoritative. Parsed is the node's human-readable rendering.
type CLValue struct {
	Type   CLType
	Bytes  []byte
	Parsed json.RawMessage
}

type clValueJSON struct {
	CLType CLType          `json:"cl_type"`
	Bytes  string          `json:"bytes"`
	Parsed json.RawMessage `json:"parsed,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (v CLValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(clValueJSON{
		CLType: v.Type,
		Bytes:  hex.EncodeToString(v.Bytes),
		Parsed: v.Parsed,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *CLValue) UnmarshalJSON(data []byte) error {
	var raw clValueJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b, err := hex.DecodeString(raw.Bytes)
	if err != nil {
		return fmt.Errorf("invalid cl value bytes: %w", err)
	}
	*v = CLValue{Type: raw.CLType, Bytes: b, Parsed: raw.Parsed}
	return nil
}

func (v CLValue) appendBytes(e *encoder) {
	e.bytes(v.Bytes)
	v.Type.appendBytes(e)
}

func newCLValue(t CLType, b []byte, parsed any) CLValue {
	p, _ := json.Marshal(parsed)
	return CLValue{Type: t, Bytes: b, Parsed: p}
}

// NewU64 builds a U64 value.
func NewU64(n uint64) CLValue {
	e := &encoder{}
	e.u64(n)
	return newCLValue(TypeU64, e.buf, n)
}

// NewBool builds a Bool value.
func NewBool(b bool) CLValue {
	e := &encoder{}
	e.bool(b)
	return newCLValue(TypeBool, e.buf, b)
}

// NewString builds a String value.
func NewString(s string) CLValue {
	e := &encoder{}
	e.string(s)
	return newCLValue(TypeString, e.buf, s)
}

// NewByteArray builds a fixed-size ByteArray value.
func NewByteArray(b []byte) CLValue {
	cp := append([]byte(nil), b...)
	return newCLValue(ByteArrayType(uint32(len(cp))), cp, hex.EncodeToString(cp))
}

// NewU512 builds a U512 value from a non-negative integer amount.
func NewU512(amount decimal.Decimal) (CLValue, error) {
	if amount.IsNegative() || !amount.Equal(amount.Truncate(0)) {
		return CLValue{}, fmt.Errorf("u512 amount must be a non-negative integer, got %s", amount)
	}
	e := &encoder{}
	e.bigUint(amount.BigInt())
	return newCLValue(TypeU512, e.buf, amount.String()), nil
}

// NewKey builds a Key value.
func NewKey(k Key) CLValue {
	e := &encoder{}
	k.appendBytes(e)
	return newCLValue(TypeKey, e.buf, k.String())
}

func (v CLValue) decoder(want ...CLTypeKind) (*decoder, error) {
	for _, k := range want {
		if v.Type.Kind == k {
			return &decoder{buf: v.Bytes}, nil
		}
	}
	return nil, fmt.Errorf("%w: have %s", ErrTypeMismatch, v.Type)
}

// hasBytes reports whether the canonical encoding is present. Some producers
// only fill in the parsed form.
func (v CLValue) hasBytes() bool {
	return len(v.Bytes) > 0
}

// AsU64 reads an unsigned integer of at most 64 bits.
func (v CLValue) AsU64() (uint64, error) {
	if !v.hasBytes() {
		return v.parsedU64()
	}
	d, err := v.decoder(CLU8, CLU32, CLU64)
	if err != nil {
		return 0, err
	}
	var n uint64
	switch v.Type.Kind {
	case CLU8:
		b, derr := d.u8()
		n, err = uint64(b), derr
	case CLU32:
		b, derr := d.u32()
		n, err = uint64(b), derr
	default:
		n, err = d.u64()
	}
	if err != nil {
		return 0, err
	}
	return n, d.done()
}

func (v CLValue) parsedU64() (uint64, error) {
	switch v.Type.Kind {
	case CLU8, CLU32, CLU64:
	default:
		return 0, fmt.Errorf("%w: have %s", ErrTypeMismatch, v.Type)
	}
	var num json.Number
	if err := json.Unmarshal(v.Parsed, &num); err != nil {
		var s string
		if serr := json.Unmarshal(v.Parsed, &s); serr != nil {
			return 0, fmt.Errorf("invalid parsed integer: %w", err)
		}
		num = json.Number(s)
	}
	return strconv.ParseUint(num.String(), 10, 64)
}

// AsBool reads a Bool.
func (v CLValue) AsBool() (bool, error) {
	if !v.hasBytes() {
		if v.Type.Kind != CLBool {
			return false, fmt.Errorf("%w: have %s", ErrTypeMismatch, v.Type)
		}
		var b bool
		if err := json.Unmarshal(v.Parsed, &b); err != nil {
			var s string
			if serr := json.Unmarshal(v.Parsed, &s); serr != nil {
				return false, fmt.Errorf("invalid parsed bool: %w", err)
			}
			return strconv.ParseBool(s)
		}
		return b, nil
	}
	d, err := v.decoder(CLBool)
	if err != nil {
		return false, err
	}
	b, err := d.bool()
	if err != nil {
		return false, err
	}
	return b, d.done()
}

// AsString reads a String.
func (v CLValue) AsString() (string, error) {
	if !v.hasBytes() {
		if v.Type.Kind != CLString {
			return "", fmt.Errorf("%w: have %s", ErrTypeMismatch, v.Type)
		}
		var s string
		if err := json.Unmarshal(v.Parsed, &s); err != nil {
			return "", fmt.Errorf("invalid parsed string: %w", err)
		}
		return s, nil
	}
	d, err := v.decoder(CLString)
	if err != nil {
		return "", err
	}
	s, err := d.string()
	if err != nil {
		return "", err
	}
	return s, d.done()
}

// AsByteArray reads a fixed-size ByteArray or a List of U8.
func (v CLValue) AsByteArray() ([]byte, error) {
	switch v.Type.Kind {
	case CLByteArray:
		if uint32(len(v.Bytes)) != v.Type.Size {
			return nil, fmt.Errorf("byte array of declared size %d has %d bytes", v.Type.Size, len(v.Bytes))
		}
		return append([]byte(nil), v.Bytes...), nil
	case CLList:
		if len(v.Type.Inner) != 1 || v.Type.Inner[0].Kind != CLU8 {
			return nil, fmt.Errorf("%w: have %s", ErrTypeMismatch, v.Type)
		}
		d := &decoder{buf: v.Bytes}
		b, err := d.bytes()
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), b...), d.done()
	default:
		return nil, fmt.Errorf("%w: have %s", ErrTypeMismatch, v.Type)
	}
}

// AsBigUint reads a U128, U256 or U512.
func (v CLValue) AsBigUint() (decimal.Decimal, error) {
	max := map[CLTypeKind]int{CLU128: 16, CLU256: 32, CLU512: 64}[v.Type.Kind]
	d, err := v.decoder(CLU128, CLU256, CLU512)
	if err != nil {
		return decimal.Zero, err
	}
	n, err := d.bigUint(max)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromBigInt(n, 0), d.done()
}

// AsKey reads a Key.
func (v CLValue) AsKey() (Key, error) {
	d, err := v.decoder(CLKey)
	if err != nil {
		return Key{}, err
	}
	k, err := decodeKey(d)
	if err != nil {
		return Key{}, err
	}
	return k, d.done()
}

// AsPublicKey reads a PublicKey.
func (v CLValue) AsPublicKey() (PublicKey, error) {
	if _, err := v.decoder(CLPublicKey); err != nil {
		return PublicKey{}, err
	}
	return ParsePublicKey(hex.EncodeToString(v.Bytes))
}

// AsText renders integers, strings, keys, public keys and byte arrays as text.
// Identifiers such as dao_id are compared in this form.
func (v CLValue) AsText() (string, error) {
	switch v.Type.Kind {
	case CLU8, CLU32, CLU64:
		n, err := v.AsU64()
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(n, 10), nil
	case CLI32, CLI64:
		d, err := v.decoder(CLI32, CLI64)
		if err != nil {
			return "", err
		}
		if v.Type.Kind == CLI32 {
			n, err := d.u32()
			if err != nil {
				return "", err
			}
			return strconv.FormatInt(int64(int32(n)), 10), d.done()
		}
		n, err := d.u64()
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(int64(n), 10), d.done()
	case CLU128, CLU256, CLU512:
		n, err := v.AsBigUint()
		if err != nil {
			return "", err
		}
		return n.String(), nil
	case CLString:
		return v.AsString()
	case CLKey:
		k, err := v.AsKey()
		if err != nil {
			return "", err
		}
		return k.String(), nil
	case CLPublicKey:
		pk, err := v.AsPublicKey()
		if err != nil {
			return "", err
		}
		return pk.Hex(), nil
	case CLByteArray, CLList:
		b, err := v.AsByteArray()
		if err != nil {
			return "", err
		}
		return hex.EncodeToString(b), nil
	case CLBool:
		b, err := v.AsBool()
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	default:
		return "", fmt.Errorf("%w: %s has no text form", ErrTypeMismatch, v.Type)
	}
}
