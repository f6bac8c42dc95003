// Package node implements the chain node client: JSON-RPC calls with ordered
// endpoint failover and the server-sent event stream.
package node

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainsafe/dao-indexer/internal/metrics"
	"github.com/chainsafe/dao-indexer/pkg/casper"
)

const (
	defaultRequestTimeout = 15 * time.Second

	// Limit error-body reads so we don't accidentally slurp huge responses.
	maxErrBodyBytes = 4096

	methodPutDeploy        = "account_put_deploy"
	methodGetDeploy        = "info_get_deploy"
	methodGetStatus        = "info_get_status"
	methodGetStateRootHash = "chain_get_state_root_hash"
	methodQueryGlobalState = "query_global_state"
)

// ErrAllEndpointsFailed is returned when no configured endpoint could serve a request.
var ErrAllEndpointsFailed = errors.New("all node endpoints failed")

// RPCError is a JSON-RPC application error. The node understood the request
// and rejected it, so it is not retried on another endpoint.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	if len(e.Data) > 0 {
		return fmt.Sprintf("rpc error %d: %s (%s)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Client is a JSON-RPC client over an ordered list of node endpoints.
type Client struct {
	endpoints  []string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client. Endpoints are tried in the given order.
func NewClient(endpoints []string, opts ...Option) (*Client, error) {
	if len(endpoints) == 0 {
		return nil, errors.New("at least one node endpoint is required")
	}
	s := applyOptions(opts)
	return &Client{
		endpoints:  append([]string(nil), endpoints...),
		httpClient: s.httpClient,
		logger:     s.logger,
	}, nil
}

// Status is the subset of info_get_status the indexer uses.
type Status struct {
	APIVersion         string `json:"api_version"`
	ChainspecName      string `json:"chainspec_name"`
	LastAddedBlockInfo *struct {
		Hash      casper.Hash      `json:"hash"`
		Height    uint64           `json:"height"`
		Timestamp casper.Timestamp `json:"timestamp"`
	} `json:"last_added_block_info"`
}

// StoredValue is a query_global_state value. Only the variants the indexer
// reads are decoded.
type StoredValue struct {
	CLValue  *casper.CLValue `json:"CLValue,omitempty"`
	Contract *struct {
		NamedKeys []casper.NamedKey `json:"named_keys"`
	} `json:"Contract,omitempty"`
	Account *struct {
		NamedKeys []casper.NamedKey `json:"named_keys"`
	} `json:"Account,omitempty"`
}

// PutDeploy submits a signed deploy given as its JSON encoding. The bytes are
// forwarded as received. Each endpoint is probed with info_get_status before
// it is used; a deploy rejected by the node is returned without failover.
func (c *Client) PutDeploy(ctx context.Context, deploy json.RawMessage) (casper.Hash, error) {
	params := make([]byte, 0, len(deploy)+16)
	params = append(params, `{"deploy":`...)
	params = append(params, deploy...)
	params = append(params, '}')

	var errs []error
	for _, ep := range c.endpoints {
		var status Status
		if err := c.callEndpoint(ctx, ep, methodGetStatus, nil, &status); err != nil {
			c.logger.Warn("Node endpoint failed status probe",
				zap.String("endpoint", ep),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: status probe: %w", ep, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}

		var res struct {
			DeployHash casper.Hash `json:"deploy_hash"`
		}
		err := c.callEndpoint(ctx, ep, methodPutDeploy, params, &res)
		if err == nil {
			return res.DeployHash, nil
		}
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			return casper.Hash{}, fmt.Errorf("deploy rejected by %s: %w", ep, err)
		}
		c.logger.Warn("Deploy submission failed, trying next endpoint",
			zap.String("endpoint", ep),
			zap.Error(err))
		errs = append(errs, fmt.Errorf("%s: %w", ep, err))
		if ctx.Err() != nil {
			break
		}
	}
	return casper.Hash{}, fmt.Errorf("%w: %s: %w", ErrAllEndpointsFailed, methodPutDeploy, errors.Join(errs...))
}

// GetDeploy fetches a deploy and its execution result, if any.
func (c *Client) GetDeploy(ctx context.Context, hash casper.Hash) (*casper.DeployInfo, error) {
	params, err := json.Marshal(map[string]any{
		"deploy_hash":         hash.String(),
		"finalized_approvals": false,
	})
	if err != nil {
		return nil, err
	}
	var info casper.DeployInfo
	if err := c.call(ctx, methodGetDeploy, params, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetStatus returns the status of the first responsive endpoint.
func (c *Client) GetStatus(ctx context.Context) (*Status, error) {
	var status Status
	if err := c.call(ctx, methodGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetStateRootHash returns the state root of the latest block.
func (c *Client) GetStateRootHash(ctx context.Context) (casper.Hash, error) {
	var res struct {
		StateRootHash casper.Hash `json:"state_root_hash"`
	}
	if err := c.call(ctx, methodGetStateRootHash, nil, &res); err != nil {
		return casper.Hash{}, err
	}
	return res.StateRootHash, nil
}

// QueryGlobalState reads the value under key (optionally following path) at a state root.
func (c *Client) QueryGlobalState(ctx context.Context, stateRoot casper.Hash, key string, path []string) (*StoredValue, error) {
	if path == nil {
		path = []string{}
	}
	params, err := json.Marshal(map[string]any{
		"state_identifier": map[string]string{"StateRootHash": stateRoot.String()},
		"key":              key,
		"path":             path,
	})
	if err != nil {
		return nil, err
	}
	var res struct {
		StoredValue StoredValue `json:"stored_value"`
	}
	if err := c.call(ctx, methodQueryGlobalState, params, &res); err != nil {
		return nil, err
	}
	return &res.StoredValue, nil
}

// ContractNamedKeys lists the named keys of a contract at the latest state root.
func (c *Client) ContractNamedKeys(ctx context.Context, contract casper.Hash) (casper.Hash, []casper.NamedKey, error) {
	root, err := c.GetStateRootHash(ctx)
	if err != nil {
		return casper.Hash{}, nil, fmt.Errorf("get state root: %w", err)
	}
	v, err := c.QueryGlobalState(ctx, root, "hash-"+contract.String(), nil)
	if err != nil {
		return casper.Hash{}, nil, fmt.Errorf("query contract %s: %w", contract, err)
	}
	if v.Contract == nil {
		return casper.Hash{}, nil, fmt.Errorf("key hash-%s does not hold a contract", contract)
	}
	return root, v.Contract.NamedKeys, nil
}

// call tries each endpoint in order until one answers.
func (c *Client) call(ctx context.Context, method string, params json.RawMessage, out any) error {
	var errs []error
	for _, ep := range c.endpoints {
		err := c.callEndpoint(ctx, ep, method, params, out)
		if err == nil {
			return nil
		}
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			return err
		}
		c.logger.Debug("Node endpoint failed",
			zap.String("endpoint", ep),
			zap.String("method", method),
			zap.Error(err))
		errs = append(errs, fmt.Errorf("%s: %w", ep, err))
		if ctx.Err() != nil {
			break
		}
	}
	return fmt.Errorf("%w: %s: %w", ErrAllEndpointsFailed, method, errors.Join(errs...))
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

func (c *Client) callEndpoint(ctx context.Context, endpoint, method string, params json.RawMessage, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "success"
		var rpcErr *RPCError
		switch {
		case err == nil:
		case errors.As(err, &rpcErr):
			outcome = "rpc_error"
		default:
			outcome = "transport_error"
		}
		metrics.RPCRequests.WithLabelValues(method, outcome).Inc()
		metrics.RPCDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}()

	var body bytes.Buffer
	body.WriteString(`{"jsonrpc":"2.0","id":`)
	body.WriteString(strconv.Quote(uuid.NewString()))
	body.WriteString(`,"method":`)
	body.WriteString(strconv.Quote(method))
	if len(params) > 0 {
		body.WriteString(`,"params":`)
		body.Write(params)
	}
	body.WriteByte('}')

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBodyBytes))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}
