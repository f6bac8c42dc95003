package casper

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"unicode/utf8"
)

var errShortBuffer = errors.New("bytesrepr: unexpected end of input")

// encoder appends values in the chain's little-endian binary representation.
type encoder struct {
	buf []byte
}

func (e *encoder) u8(v uint8)   { e.buf = append(e.buf, v) }
func (e *encoder) u32(v uint32) { e.buf = binary.LittleEndian.AppendUint32(e.buf, v) }
func (e *encoder) u64(v uint64) { e.buf = binary.LittleEndian.AppendUint64(e.buf, v) }
func (e *encoder) raw(b []byte) { e.buf = append(e.buf, b...) }

func (e *encoder) bytes(b []byte) {
	e.u32(uint32(len(b)))
	e.raw(b)
}

func (e *encoder) string(s string) {
	e.bytes([]byte(s))
}

func (e *encoder) bool(v bool) {
	if v {
		e.u8(1)
		return
	}
	e.u8(0)
}

// bigUint writes U128/U256/U512 as a length byte followed by the minimal
// little-endian magnitude.
func (e *encoder) bigUint(v *big.Int) {
	be := v.Bytes()
	e.u8(uint8(len(be)))
	for i := len(be) - 1; i >= 0; i-- {
		e.u8(be[i])
	}
}

// decoder reads values written by encoder.
type decoder struct {
	buf []byte
	off int
}

func (d *decoder) take(n int) ([]byte, error) {
	if n < 0 || d.off+n > len(d.buf) {
		return nil, errShortBuffer
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *decoder) u8() (uint8, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *decoder) u32() (uint32, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *decoder) u64() (uint64, error) {
	b, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (d *decoder) bytes() ([]byte, error) {
	n, err := d.u32()
	if err != nil {
		return nil, err
	}
	return d.take(int(n))
}

func (d *decoder) string() (string, error) {
	b, err := d.bytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("bytesrepr: invalid utf-8 string")
	}
	return string(b), nil
}

func (d *decoder) bool() (bool, error) {
	b, err := d.u8()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("bytesrepr: invalid bool byte %d", b)
	}
}

func (d *decoder) bigUint(maxBytes int) (*big.Int, error) {
	n, err := d.u8()
	if err != nil {
		return nil, err
	}
	if int(n) > maxBytes {
		return nil, fmt.Errorf("bytesrepr: integer of %d bytes exceeds %d", n, maxBytes)
	}
	le, err := d.take(int(n))
	if err != nil {
		return nil, err
	}
	be := make([]byte, len(le))
	for i := range le {
		be[len(le)-1-i] = le[i]
	}
	return new(big.Int).SetBytes(be), nil
}

func (d *decoder) done() error {
	if d.off != len(d.buf) {
		return fmt.Errorf("bytesrepr: %d trailing bytes", len(d.buf)-d.off)
	}
	return nil
}
