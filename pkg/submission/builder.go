// Package submission builds the DAO contract deploys and rate-limits their
// submission.
package submission

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chainsafe/dao-indexer/pkg/casper"
	"github.com/chainsafe/dao-indexer/pkg/config"
	"github.com/chainsafe/dao-indexer/pkg/governance"
)

// Contract entry points.
const (
	EntryPointCreateDAO      = "create_dao"
	EntryPointCreateProposal = "create_proposal"
	EntryPointVote           = "vote"
)

// ErrSigningDisabled is returned by backend-signed operations when no signing
// key is configured.
var ErrSigningDisabled = errors.New("backend signing is disabled")

// ErrTokenNotConfigured is returned by CreateDAO when no governance token is configured.
var ErrTokenNotConfigured = errors.New("token contract is not configured")

// Builder assembles unsigned DAO contract deploys.
type Builder struct {
	chainName string
	contract  casper.Hash
	token     *casper.Key
	tokenType string
	mode      governance.ProposalMode
	ttl       time.Duration
	gasPrice  uint64
	now       func() time.Time

	createDAOPayment      decimal.Decimal
	createProposalPayment decimal.Decimal
	votePayment           decimal.Decimal
}

// NewBuilder creates a Builder from the chain and submission settings.
func NewBuilder(chain config.ChainConfig, sub config.SubmissionConfig, mode governance.ProposalMode) (*Builder, error) {
	contract, err := casper.ParseKey(chain.DAOContractHash)
	if err != nil {
		return nil, fmt.Errorf("invalid dao contract hash: %w", err)
	}

	b := &Builder{
		chainName: chain.ChainName,
		contract:  contract.Hash,
		tokenType: chain.TokenType,
		mode:      mode,
		ttl:       sub.DeployTTL,
		gasPrice:  sub.GasPrice,
		now:       time.Now,
	}
	if chain.TokenContractHash != "" {
		token, err := casper.ParseKey(chain.TokenContractHash)
		if err != nil {
			return nil, fmt.Errorf("invalid token contract hash: %w", err)
		}
		b.token = &token
	}

	payments := []struct {
		raw string
		dst *decimal.Decimal
	}{
		{sub.CreateDAOPayment, &b.createDAOPayment},
		{sub.CreateProposalPayment, &b.createProposalPayment},
		{sub.VotePayment, &b.votePayment},
	}
	for _, p := range payments {
		if *p.dst, err = decimal.NewFromString(p.raw); err != nil {
			return nil, fmt.Errorf("invalid payment amount %q: %w", p.raw, err)
		}
	}
	return b, nil
}

// Mode returns the proposal mode votes are built for.
func (b *Builder) Mode() governance.ProposalMode {
	return b.mode
}

// CreateDAO builds create_dao{name, token_address, token_type}.
func (b *Builder) CreateDAO(account casper.PublicKey, name string) (*casper.Deploy, error) {
	if b.token == nil {
		return nil, ErrTokenNotConfigured
	}
	return b.call(account, EntryPointCreateDAO, b.createDAOPayment, casper.Args{
		{Name: "name", Value: casper.NewString(name)},
		{Name: "token_address", Value: casper.NewKey(*b.token)},
		{Name: "token_type", Value: casper.NewString(b.tokenType)},
	})
}

// CreateProposal builds create_proposal{dao_id, title, description, voting_duration}.
// A zero duration omits the argument so the contract default applies.
func (b *Builder) CreateProposal(account casper.PublicKey, daoID, title, description string, votingDuration time.Duration) (*casper.Deploy, error) {
	id, err := parseID("dao id", daoID)
	if err != nil {
		return nil, err
	}
	args := casper.Args{
		{Name: "dao_id", Value: casper.NewU64(id)},
		{Name: "title", Value: casper.NewString(title)},
		{Name: "description", Value: casper.NewString(description)},
	}
	if votingDuration > 0 {
		args = append(args, casper.NamedArg{Name: "voting_duration", Value: casper.NewU64(uint64(votingDuration.Milliseconds()))})
	}
	return b.call(account, EntryPointCreateProposal, b.createProposalPayment, args)
}

// Vote builds vote{dao_id, proposal_id, choice}. In legacy mode an empty
// proposal id selects the DAO's single proposal.
func (b *Builder) Vote(account casper.PublicKey, daoID, proposalID string, choice bool) (*casper.Deploy, error) {
	id, err := parseID("dao id", daoID)
	if err != nil {
		return nil, err
	}
	if proposalID == "" {
		if b.mode != governance.ProposalModeLegacy {
			return nil, fmt.Errorf("proposal id is required in %s mode", b.mode)
		}
		proposalID = governance.LegacyProposalID
	}
	pid, err := parseID("proposal id", proposalID)
	if err != nil {
		return nil, err
	}
	return b.call(account, EntryPointVote, b.votePayment, casper.Args{
		{Name: "dao_id", Value: casper.NewU64(id)},
		{Name: "proposal_id", Value: casper.NewU64(pid)},
		{Name: "choice", Value: casper.NewBool(choice)},
	})
}

func (b *Builder) call(account casper.PublicKey, entryPoint string, payment decimal.Decimal, args casper.Args) (*casper.Deploy, error) {
	return casper.NewContractCall(casper.ContractCall{
		Account:    account,
		ChainName:  b.chainName,
		Contract:   b.contract,
		EntryPoint: entryPoint,
		Args:       args,
		Payment:    payment,
		GasPrice:   b.gasPrice,
		TTL:        b.ttl,
		Timestamp:  b.now(),
	})
}

func parseID(what, s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a number", what, s)
	}
	return n, nil
}
