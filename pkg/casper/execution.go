package casper

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NamedKey is a storage key added to an account or contract by an execution.
type NamedKey struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// ExecutionResult is the normalised outcome of executing a deploy. It accepts
// the 1.x form ({"Success": …} or {"Failure": …}) and the versioned 2.x
// envelope ({"Version1": …} or {"Version2": …}).
type ExecutionResult struct {
	Success      bool
	ErrorMessage string
	// AddedKeys lists AddKeys transforms in the order they were reported.
	AddedKeys []NamedKey
	// TouchedKeys lists every global state key an effect was recorded against.
	TouchedKeys []string
}

type transformV1 struct {
	Key       string          `json:"key"`
	Transform json.RawMessage `json:"transform"`
}

type executionV1 struct {
	Effect struct {
		Transforms []transformV1 `json:"transforms"`
	} `json:"effect"`
	ErrorMessage string `json:"error_message"`
}

type effectV2 struct {
	Key  string          `json:"key"`
	Kind json.RawMessage `json:"kind"`
}

type executionV2 struct {
	ErrorMessage *string    `json:"error_message"`
	Effects      []effectV2 `json:"effects"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *ExecutionResult) UnmarshalJSON(data []byte) error {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("invalid execution result: %w", err)
	}
	if env == nil {
		return nil
	}

	if body, ok := env["Version1"]; ok {
		return r.UnmarshalJSON(body)
	}
	if body, ok := env["Version2"]; ok {
		var v2 executionV2
		if err := json.Unmarshal(body, &v2); err != nil {
			return fmt.Errorf("invalid Version2 execution result: %w", err)
		}
		out := ExecutionResult{Success: v2.ErrorMessage == nil || *v2.ErrorMessage == ""}
		if !out.Success {
			out.ErrorMessage = *v2.ErrorMessage
		}
		for _, eff := range v2.Effects {
			if err := out.addEffect(eff.Key, eff.Kind); err != nil {
				return err
			}
		}
		*r = out
		return nil
	}

	var (
		body    json.RawMessage
		success bool
	)
	if b, ok := env["Success"]; ok {
		body, success = b, true
	} else if b, ok := env["Failure"]; ok {
		body = b
	} else {
		return fmt.Errorf("unrecognised execution result shape")
	}

	var v1 executionV1
	if err := json.Unmarshal(body, &v1); err != nil {
		return fmt.Errorf("invalid execution result body: %w", err)
	}
	out := ExecutionResult{Success: success, ErrorMessage: v1.ErrorMessage}
	if !success && out.ErrorMessage == "" {
		out.ErrorMessage = "execution failed"
	}
	for _, tr := range v1.Effect.Transforms {
		if err := out.addEffect(tr.Key, tr.Transform); err != nil {
			return err
		}
	}
	*r = out
	return nil
}

// addEffect records the key and any AddKeys payload of one transform.
// Transforms other than AddKeys are bare strings or objects this indexer does
// not need to interpret.
func (r *ExecutionResult) addEffect(key string, kind json.RawMessage) error {
	r.TouchedKeys = append(r.TouchedKeys, key)
	kind = bytes.TrimSpace(kind)
	if len(kind) == 0 || kind[0] != '{' {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(kind, &obj); err != nil {
		return fmt.Errorf("invalid transform for %s: %w", key, err)
	}
	added, ok := obj["AddKeys"]
	if !ok {
		return nil
	}
	var keys []NamedKey
	if err := json.Unmarshal(added, &keys); err != nil {
		return fmt.Errorf("invalid AddKeys for %s: %w", key, err)
	}
	r.AddedKeys = append(r.AddedKeys, keys...)
	return nil
}

// DeployProcessed is the event-stream notification emitted once a deploy has
// been executed in a block.
type DeployProcessed struct {
	DeployHash      Hash                  `json:"deploy_hash"`
	Account         PublicKey             `json:"account"`
	Timestamp       Timestamp             `json:"timestamp"`
	TTL             Duration              `json:"ttl"`
	BlockHash       Hash                  `json:"block_hash"`
	ExecutionResult ExecutionResult       `json:"execution_result"`
	Session         *ExecutableDeployItem `json:"deploy_session,omitempty"`
}

// DeployInfo is the info_get_deploy result.
type DeployInfo struct {
	APIVersion       string                 `json:"api_version"`
	Deploy           Deploy                 `json:"deploy"`
	ExecutionResults []BlockExecutionResult `json:"execution_results,omitempty"`
	ExecutionInfo    *ExecutionInfo         `json:"execution_info,omitempty"`
}

// BlockExecutionResult is a 1.x execution result paired with its block.
type BlockExecutionResult struct {
	BlockHash Hash            `json:"block_hash"`
	Result    ExecutionResult `json:"result"`
}

// ExecutionInfo is the 2.x execution summary. ExecutionResult is nil until
// the deploy has been executed.
type ExecutionInfo struct {
	BlockHash       Hash             `json:"block_hash"`
	BlockHeight     uint64           `json:"block_height"`
	ExecutionResult *ExecutionResult `json:"execution_result"`
}

// Result returns the execution result and the block it landed in, or false
// while the deploy is still pending.
func (i *DeployInfo) Result() (*ExecutionResult, Hash, bool) {
	if i.ExecutionInfo != nil && i.ExecutionInfo.ExecutionResult != nil {
		return i.ExecutionInfo.ExecutionResult, i.ExecutionInfo.BlockHash, true
	}
	if len(i.ExecutionResults) > 0 {
		r := i.ExecutionResults[0]
		return &r.Result, r.BlockHash, true
	}
	return nil, Hash{}, false
}
