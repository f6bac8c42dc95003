package casper

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/blake2b"
)

// ErrHashMismatch is returned when a deploy's hashes do not match its contents.
var ErrHashMismatch = errors.New("deploy hash mismatch")

// Deploy is a signed unit of work submitted to the chain.
type Deploy struct {
	Hash      Hash                 `json:"hash"`
	Header    DeployHeader         `json:"header"`
	Payment   ExecutableDeployItem `json:"payment"`
	Session   ExecutableDeployItem `json:"session"`
	Approvals []Approval           `json:"approvals"`
}

// DeployHeader is the hashed header of a deploy.
type DeployHeader struct {
	Account      PublicKey `json:"account"`
	Timestamp    Timestamp `json:"timestamp"`
	TTL          Duration  `json:"ttl"`
	GasPrice     uint64    `json:"gas_price"`
	BodyHash     Hash      `json:"body_hash"`
	Dependencies []Hash    `json:"dependencies"`
	ChainName    string    `json:"chain_name"`
}

// Approval is a signature over the deploy hash.
type Approval struct {
	Signer    PublicKey `json:"signer"`
	Signature HexBytes  `json:"signature"`
}

// HexBytes marshals as lower-case hex.
type HexBytes []byte

// MarshalText implements encoding.TextMarshaler.
func (b HexBytes) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(b)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *HexBytes) UnmarshalText(text []byte) error {
	out, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	*b = out
	return nil
}

func (h DeployHeader) appendBytes(e *encoder) {
	h.Account.appendBytes(e)
	e.u64(uint64(time.Time(h.Timestamp).UnixMilli()))
	e.u64(uint64(time.Duration(h.TTL).Milliseconds()))
	e.u64(h.GasPrice)
	e.raw(h.BodyHash[:])
	e.u32(uint32(len(h.Dependencies)))
	for _, d := range h.Dependencies {
		e.raw(d[:])
	}
	e.string(h.ChainName)
}

// BodyHash computes the digest of the payment and session items.
func BodyHash(payment, session ExecutableDeployItem) Hash {
	e := &encoder{}
	payment.appendBytes(e)
	session.appendBytes(e)
	return blake2b.Sum256(e.buf)
}

// HeaderHash computes the deploy hash of a header.
func HeaderHash(h DeployHeader) Hash {
	e := &encoder{}
	h.appendBytes(e)
	return blake2b.Sum256(e.buf)
}

// NewDeploy assembles an unsigned deploy and fills in both hashes.
func NewDeploy(header DeployHeader, payment, session ExecutableDeployItem) *Deploy {
	if header.Dependencies == nil {
		header.Dependencies = []Hash{}
	}
	header.BodyHash = BodyHash(payment, session)
	return &Deploy{
		Hash:      HeaderHash(header),
		Header:    header,
		Payment:   payment,
		Session:   session,
		Approvals: []Approval{},
	}
}

// ContractCall describes a stored contract invocation.
type ContractCall struct {
	Account    PublicKey
	ChainName  string
	Contract   Hash
	EntryPoint string
	Args       Args
	Payment    decimal.Decimal
	GasPrice   uint64
	TTL        time.Duration
	Timestamp  time.Time
}

// NewContractCall builds an unsigned deploy calling a contract by hash with the
// standard payment.
func NewContractCall(c ContractCall) (*Deploy, error) {
	if c.EntryPoint == "" {
		return nil, fmt.Errorf("entry point is required")
	}
	amount, err := NewU512(c.Payment)
	if err != nil {
		return nil, fmt.Errorf("payment: %w", err)
	}
	if c.GasPrice == 0 {
		c.GasPrice = 1
	}
	if c.TTL == 0 {
		c.TTL = 30 * time.Minute
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now()
	}

	payment := ExecutableDeployItem{
		Kind:        ItemModuleBytes,
		ModuleBytes: []byte{},
		Args:        Args{{Name: "amount", Value: amount}},
	}
	session := ExecutableDeployItem{
		Kind:       ItemStoredContractByHash,
		Hash:       c.Contract,
		EntryPoint: c.EntryPoint,
		Args:       c.Args,
	}
	header := DeployHeader{
		Account:   c.Account,
		Timestamp: Timestamp(c.Timestamp.UTC().Truncate(time.Millisecond)),
		TTL:       Duration(c.TTL),
		GasPrice:  c.GasPrice,
		ChainName: c.ChainName,
	}
	return NewDeploy(header, payment, session), nil
}

// Sign appends an approval from signer.
func (d *Deploy) Sign(signer Signer) error {
	sig, err := signer.Sign(d.Hash[:])
	if err != nil {
		return fmt.Errorf("sign deploy %s: %w", d.Hash, err)
	}
	d.Approvals = append(d.Approvals, Approval{Signer: signer.PublicKey(), Signature: sig})
	return nil
}

// Validate recomputes both hashes and verifies every approval.
func (d *Deploy) Validate() error {
	if body := BodyHash(d.Payment, d.Session); body != d.Header.BodyHash {
		return fmt.Errorf("%w: body hash %s, computed %s", ErrHashMismatch, d.Header.BodyHash, body)
	}
	if h := HeaderHash(d.Header); h != d.Hash {
		return fmt.Errorf("%w: deploy hash %s, computed %s", ErrHashMismatch, d.Hash, h)
	}
	if len(d.Approvals) == 0 {
		return fmt.Errorf("%w: deploy has no approvals", ErrInvalidSignature)
	}
	for i, a := range d.Approvals {
		if err := a.Signer.Verify(d.Hash[:], a.Signature); err != nil {
			return fmt.Errorf("approval %d from %s: %w", i, a.Signer, err)
		}
	}
	return nil
}

// ItemKind is the variant of an ExecutableDeployItem.
type ItemKind uint8

const (
	ItemModuleBytes ItemKind = iota
	ItemStoredContractByHash
	ItemStoredContractByName
	ItemStoredVersionedContractByHash
	ItemStoredVersionedContractByName
	ItemTransfer
)

var itemNames = map[ItemKind]string{
	ItemModuleBytes:                   "ModuleBytes",
	ItemStoredContractByHash:          "StoredContractByHash",
	ItemStoredContractByName:          "StoredContractByName",
	ItemStoredVersionedContractByHash: "StoredVersionedContractByHash",
	ItemStoredVersionedContractByName: "StoredVersionedContractByName",
	ItemTransfer:                      "Transfer",
}

// ExecutableDeployItem is the payment or session code of a deploy.
// Which fields are meaningful depends on Kind.
type ExecutableDeployItem struct {
	Kind        ItemKind
	ModuleBytes []byte
	Hash        Hash
	Name        string
	Version     *uint32
	EntryPoint  string
	Args        Args
}

func (it ExecutableDeployItem) appendBytes(e *encoder) {
	e.u8(uint8(it.Kind))
	switch it.Kind {
	case ItemModuleBytes:
		e.bytes(it.ModuleBytes)
	case ItemStoredContractByHash:
		e.raw(it.Hash[:])
		e.string(it.EntryPoint)
	case ItemStoredContractByName:
		e.string(it.Name)
		e.string(it.EntryPoint)
	case ItemStoredVersionedContractByHash, ItemStoredVersionedContractByName:
		if it.Kind == ItemStoredVersionedContractByHash {
			e.raw(it.Hash[:])
		} else {
			e.string(it.Name)
		}
		if it.Version == nil {
			e.u8(0)
		} else {
			e.u8(1)
			e.u32(*it.Version)
		}
		e.string(it.EntryPoint)
	}
	it.Args.appendBytes(e)
}

type itemJSON struct {
	ModuleBytes *HexBytes `json:"module_bytes,omitempty"`
	Hash        *Hash     `json:"hash,omitempty"`
	Name        string    `json:"name,omitempty"`
	Version     *uint32   `json:"version"`
	EntryPoint  string    `json:"entry_point,omitempty"`
	Args        Args      `json:"args"`
}

// MarshalJSON renders the item as a single-key object named after its variant.
func (it ExecutableDeployItem) MarshalJSON() ([]byte, error) {
	name, ok := itemNames[it.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown deploy item kind %d", it.Kind)
	}
	args := it.Args
	if args == nil {
		args = Args{}
	}

	var body any
	switch it.Kind {
	case ItemModuleBytes:
		mb := HexBytes(it.ModuleBytes)
		body = struct {
			ModuleBytes HexBytes `json:"module_bytes"`
			Args        Args     `json:"args"`
		}{mb, args}
	case ItemStoredContractByHash:
		body = struct {
			Hash       Hash   `json:"hash"`
			EntryPoint string `json:"entry_point"`
			Args       Args   `json:"args"`
		}{it.Hash, it.EntryPoint, args}
	case ItemStoredContractByName:
		body = struct {
			Name       string `json:"name"`
			EntryPoint string `json:"entry_point"`
			Args       Args   `json:"args"`
		}{it.Name, it.EntryPoint, args}
	case ItemStoredVersionedContractByHash:
		body = struct {
			Hash       Hash    `json:"hash"`
			Version    *uint32 `json:"version"`
			EntryPoint string  `json:"entry_point"`
			Args       Args    `json:"args"`
		}{it.Hash, it.Version, it.EntryPoint, args}
	case ItemStoredVersionedContractByName:
		body = struct {
			Name       string  `json:"name"`
			Version    *uint32 `json:"version"`
			EntryPoint string  `json:"entry_point"`
			Args       Args    `json:"args"`
		}{it.Name, it.Version, it.EntryPoint, args}
	case ItemTransfer:
		body = struct {
			Args Args `json:"args"`
		}{args}
	}
	return json.Marshal(map[string]any{name: body})
}

// UnmarshalJSON implements json.Unmarshaler.
func (it *ExecutableDeployItem) UnmarshalJSON(data []byte) error {
	var obj map[string]itemJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid deploy item: %w", err)
	}
	if len(obj) != 1 {
		return fmt.Errorf("deploy item must have exactly one variant, got %d", len(obj))
	}
	for name, body := range obj {
		var kind ItemKind = 255
		for k, n := range itemNames {
			if n == name {
				kind = k
			}
		}
		if kind == 255 {
			return fmt.Errorf("unknown deploy item %q", name)
		}
		out := ExecutableDeployItem{
			Kind:       kind,
			Name:       body.Name,
			Version:    body.Version,
			EntryPoint: body.EntryPoint,
			Args:       body.Args,
		}
		if body.ModuleBytes != nil {
			out.ModuleBytes = []byte(*body.ModuleBytes)
		}
		if kind == ItemModuleBytes && out.ModuleBytes == nil {
			out.ModuleBytes = []byte{}
		}
		if body.Hash != nil {
			out.Hash = *body.Hash
		}
		*it = out
	}
	return nil
}

// NamedArg is one runtime argument.
type NamedArg struct {
	Name  string
	Value CLValue
}

// MarshalJSON renders the argument as a [name, value] pair.
func (a NamedArg) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{a.Name, a.Value})
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *NamedArg) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("invalid named arg: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("named arg must be a [name, value] pair")
	}
	if err := json.Unmarshal(pair[0], &a.Name); err != nil {
		return fmt.Errorf("invalid named arg name: %w", err)
	}
	if err := json.Unmarshal(pair[1], &a.Value); err != nil {
		return fmt.Errorf("invalid value for arg %q: %w", a.Name, err)
	}
	return nil
}

// Args is an ordered runtime argument list.
type Args []NamedArg

// Get returns the first argument with the given name.
func (a Args) Get(name string) (CLValue, bool) {
	for _, arg := range a {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return CLValue{}, false
}

func (a Args) appendBytes(e *encoder) {
	e.u32(uint32(len(a)))
	for _, arg := range a {
		e.string(arg.Name)
		arg.Value.appendBytes(e)
	}
}

// Timestamp is a millisecond-precision instant rendered as RFC 3339.
type Timestamp time.Time

const timestampLayout = "2006-01-02T15:04:05.000Z"

// Time returns the timestamp as a time.Time.
func (t Timestamp) Time() time.Time { return time.Time(t) }

// MarshalText implements encoding.TextMarshaler.
func (t Timestamp) MarshalText() ([]byte, error) {
	return []byte(time.Time(t).UTC().Format(timestampLayout)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Timestamp) UnmarshalText(text []byte) error {
	parsed, err := time.Parse(time.RFC3339Nano, string(text))
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", text, err)
	}
	*t = Timestamp(parsed.UTC())
	return nil
}

// Duration is a TTL in the human readable form the node uses ("30m", "1h 30m", "1day").
type Duration time.Duration

var durationUnits = []struct {
	names []string
	unit  time.Duration
}{
	{[]string{"days", "day", "d"}, 24 * time.Hour},
	{[]string{"hours", "hour", "hrs", "hr", "h"}, time.Hour},
	{[]string{"minutes", "minute", "mins", "min", "m"}, time.Minute},
	{[]string{"seconds", "second", "secs", "sec", "s"}, time.Second},
	{[]string{"msec", "ms"}, time.Millisecond},
}

// ParseDuration parses the node's TTL format.
func ParseDuration(s string) (Duration, error) {
	var total time.Duration
	rest := strings.TrimSpace(s)
	if rest == "" {
		return 0, fmt.Errorf("empty duration")
	}
	for rest != "" {
		i := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsDigit(r) })
		if i <= 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		n, err := strconv.ParseUint(rest[:i], 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		rest = rest[i:]
		j := strings.IndexFunc(rest, func(r rune) bool { return unicode.IsDigit(r) || unicode.IsSpace(r) })
		if j < 0 {
			j = len(rest)
		}
		unitName := rest[:j]
		rest = strings.TrimSpace(rest[j:])

		var unit time.Duration
		for _, u := range durationUnits {
			for _, name := range u.names {
				if name == unitName {
					unit = u.unit
				}
			}
		}
		if unit == 0 {
			return 0, fmt.Errorf("invalid duration unit %q in %q", unitName, s)
		}
		total += time.Duration(n) * unit
	}
	return Duration(total), nil
}

// String renders the duration in the node's format.
func (d Duration) String() string {
	ms := time.Duration(d).Milliseconds()
	if ms == 0 {
		return "0s"
	}
	var parts []string
	for _, u := range []struct {
		suffix string
		unit   int64
	}{
		{"day", 24 * 3600 * 1000},
		{"h", 3600 * 1000},
		{"m", 60 * 1000},
		{"s", 1000},
		{"ms", 1},
	} {
		if n := ms / u.unit; n > 0 {
			suffix := u.suffix
			if suffix == "day" && n > 1 {
				suffix = "days"
			}
			parts = append(parts, strconv.FormatInt(n, 10)+suffix)
			ms -= n * u.unit
		}
	}
	return strings.Join(parts, " ")
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
