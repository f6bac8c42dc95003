package casper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// CLTypeKind is the tag of a CLType.
type CLTypeKind uint8

const (
	CLBool CLTypeKind = iota
	CLI32
	CLI64
	CLU8
	CLU32
	CLU64
	CLU128
	CLU256
	CLU512
	CLUnit
	CLString
	CLKey
	CLURef
	CLOption
	CLList
	CLByteArray
	CLResult
	CLMap
	CLTuple1
	CLTuple2
	CLTuple3
	CLAny
	CLPublicKey
)

var simpleTypeNames = map[CLTypeKind]string{
	CLBool:      "Bool",
	CLI32:       "I32",
	CLI64:       "I64",
	CLU8:        "U8",
	CLU32:       "U32",
	CLU64:       "U64",
	CLU128:      "U128",
	CLU256:      "U256",
	CLU512:      "U512",
	CLUnit:      "Unit",
	CLString:    "String",
	CLKey:       "Key",
	CLURef:      "URef",
	CLAny:       "Any",
	CLPublicKey: "PublicKey",
}

var simpleTypesByName = func() map[string]CLTypeKind {
	m := make(map[string]CLTypeKind, len(simpleTypeNames))
	for k, v := range simpleTypeNames {
		m[v] = k
	}
	return m
}()

// CLType describes the type of a CLValue.
// Inner holds the element type for Option and List, key and value for Map,
// ok and err for Result, and the members of a tuple.
type CLType struct {
	Kind  CLTypeKind
	Size  uint32
	Inner []CLType
}

// Simple type constructors.
var (
	TypeBool      = CLType{Kind: CLBool}
	TypeU64       = CLType{Kind: CLU64}
	TypeU512      = CLType{Kind: CLU512}
	TypeString    = CLType{Kind: CLString}
	TypeKey       = CLType{Kind: CLKey}
	TypePublicKey = CLType{Kind: CLPublicKey}
)

// ByteArrayType returns the fixed-size byte array type of length n.
func ByteArrayType(n uint32) CLType {
	return CLType{Kind: CLByteArray, Size: n}
}

// String returns the JSON name of the type.
func (t CLType) String() string {
	b, err := json.Marshal(t)
	if err != nil {
		return fmt.Sprintf("CLType(%d)", t.Kind)
	}
	return string(b)
}

func (t CLType) appendBytes(e *encoder) {
	e.u8(uint8(t.Kind))
	switch t.Kind {
	case CLByteArray:
		e.u32(t.Size)
	case CLOption, CLList, CLResult, CLMap, CLTuple1, CLTuple2, CLTuple3:
		for _, in := range t.Inner {
			in.appendBytes(e)
		}
	}
}

func (t CLType) arity() int {
	switch t.Kind {
	case CLOption, CLList, CLTuple1:
		return 1
	case CLResult, CLMap, CLTuple2:
		return 2
	case CLTuple3:
		return 3
	default:
		return 0
	}
}

// MarshalJSON renders the type the way node RPC responses do.
func (t CLType) MarshalJSON() ([]byte, error) {
	if name, ok := simpleTypeNames[t.Kind]; ok {
		return json.Marshal(name)
	}
	if len(t.Inner) != t.arity() {
		return nil, fmt.Errorf("cltype %d expects %d inner types, got %d", t.Kind, t.arity(), len(t.Inner))
	}

	switch t.Kind {
	case CLByteArray:
		return json.Marshal(map[string]uint32{"ByteArray": t.Size})
	case CLOption:
		return json.Marshal(map[string]CLType{"Option": t.Inner[0]})
	case CLList:
		return json.Marshal(map[string]CLType{"List": t.Inner[0]})
	case CLResult:
		return json.Marshal(map[string]map[string]CLType{"Result": {"ok": t.Inner[0], "err": t.Inner[1]}})
	case CLMap:
		return json.Marshal(map[string]map[string]CLType{"Map": {"key": t.Inner[0], "value": t.Inner[1]}})
	case CLTuple1:
		return json.Marshal(map[string][]CLType{"Tuple1": t.Inner})
	case CLTuple2:
		return json.Marshal(map[string][]CLType{"Tuple2": t.Inner})
	case CLTuple3:
		return json.Marshal(map[string][]CLType{"Tuple3": t.Inner})
	default:
		return nil, fmt.Errorf("unknown cltype tag %d", t.Kind)
	}
}

// UnmarshalJSON accepts both the bare string form and the object form.
func (t *CLType) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		kind, ok := simpleTypesByName[name]
		if !ok {
			return fmt.Errorf("unknown cltype %q", name)
		}
		*t = CLType{Kind: kind}
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid cltype: %w", err)
	}
	if len(obj) != 1 {
		return fmt.Errorf("invalid cltype object with %d keys", len(obj))
	}

	for name, body := range obj {
		switch name {
		case "ByteArray":
			n, err := strconv.ParseUint(string(bytes.TrimSpace(body)), 10, 32)
			if err != nil {
				return fmt.Errorf("invalid ByteArray size: %w", err)
			}
			*t = ByteArrayType(uint32(n))
		case "Option", "List":
			var inner CLType
			if err := json.Unmarshal(body, &inner); err != nil {
				return err
			}
			kind := CLOption
			if name == "List" {
				kind = CLList
			}
			*t = CLType{Kind: kind, Inner: []CLType{inner}}
		case "Result":
			var r struct {
				Ok  CLType `json:"ok"`
				Err CLType `json:"err"`
			}
			if err := json.Unmarshal(body, &r); err != nil {
				return err
			}
			*t = CLType{Kind: CLResult, Inner: []CLType{r.Ok, r.Err}}
		case "Map":
			var m struct {
				Key   CLType `json:"key"`
				Value CLType `json:"value"`
			}
			if err := json.Unmarshal(body, &m); err != nil {
				return err
			}
			*t = CLType{Kind: CLMap, Inner: []CLType{m.Key, m.Value}}
		case "Tuple1", "Tuple2", "Tuple3":
			var members []CLType
			if err := json.Unmarshal(body, &members); err != nil {
				return err
			}
			kind := map[string]CLTypeKind{"Tuple1": CLTuple1, "Tuple2": CLTuple2, "Tuple3": CLTuple3}[name]
			nt := CLType{Kind: kind, Inner: members}
			if len(members) != nt.arity() {
				return fmt.Errorf("%s expects %d members, got %d", name, nt.arity(), len(members))
			}
			*t = nt
		default:
			return fmt.Errorf("unknown cltype %q", name)
		}
	}
	return nil
}
