// Package extractor turns raw execution payloads into governance facts.
//
// Extraction never performs I/O and is deterministic: the same payload always
// yields the same Result. Recognition is two-tiered. Storage keys added by the
// contract (event_dao_created_<id>, event_proposal_created_<dao>_<pid>,
// event_vote_<dao>_<pid>_<voter>) are scanned first; session arguments are the
// fallback. Anything unrecognised is ignored.
package extractor

import (
	"fmt"
	"strings"
	"time"

	"github.com/chainsafe/dao-indexer/pkg/casper"
	"github.com/chainsafe/dao-indexer/pkg/governance"
)

// Storage key prefixes written by the DAO contract.
const (
	PrefixDAOCreated      = "event_dao_created_"
	PrefixProposalCreated = "event_proposal_created_"
	PrefixVote            = "event_vote_"
)

// Session argument names.
const (
	ArgDAOID          = "dao_id"
	ArgProposalID     = "proposal_id"
	ArgChoice         = "choice"
	ArgName           = "name"
	ArgTitle          = "title"
	ArgDescription    = "description"
	ArgTokenAddress   = "token_address"
	ArgVotingDuration = "voting_duration"
)

// EntryPointCreateProposal is the contract entry point that creates proposals.
const EntryPointCreateProposal = "create_proposal"

// Result is the outcome of extracting one payload.
type Result struct {
	DeployHash string
	// Pending is set when the deploy has not been executed yet.
	Pending bool
	// Failed is set when execution failed; ErrorMessage holds the contract's reason.
	Failed       bool
	ErrorMessage string
	Facts        governance.Facts
	// Skipped collects soft errors for facts that could not be decoded.
	Skipped []error
}

// Extractor holds the per-deployment extraction settings.
type Extractor struct {
	mode                  governance.ProposalMode
	defaultVotingDuration time.Duration
}

// New creates an Extractor.
func New(mode governance.ProposalMode, defaultVotingDuration time.Duration) *Extractor {
	if mode == "" {
		mode = governance.ProposalModeLegacy
	}
	return &Extractor{mode: mode, defaultVotingDuration: defaultVotingDuration}
}

// Mode returns the configured proposal mode.
func (x *Extractor) Mode() governance.ProposalMode {
	return x.mode
}

// execution is the common view of push and pull payloads.
type execution struct {
	deployHash string
	account    string
	timestamp  time.Time
	session    *casper.ExecutableDeployItem
	result     *casper.ExecutionResult
}

// FromDeployProcessed extracts facts from an event-stream notification.
func (x *Extractor) FromDeployProcessed(ev *casper.DeployProcessed) Result {
	return x.extract(execution{
		deployHash: ev.DeployHash.String(),
		account:    ev.Account.Hex(),
		timestamp:  ev.Timestamp.Time(),
		session:    ev.Session,
		result:     &ev.ExecutionResult,
	})
}

// FromDeployInfo extracts facts from an info_get_deploy result.
func (x *Extractor) FromDeployInfo(info *casper.DeployInfo) Result {
	res, _, ok := info.Result()
	if !ok {
		return Result{DeployHash: info.Deploy.Hash.String(), Pending: true}
	}
	return x.extract(execution{
		deployHash: info.Deploy.Hash.String(),
		account:    info.Deploy.Header.Account.Hex(),
		timestamp:  info.Deploy.Header.Timestamp.Time(),
		session:    &info.Deploy.Session,
		result:     res,
	})
}

func (x *Extractor) extract(e execution) Result {
	r := Result{DeployHash: e.deployHash}
	if !e.result.Success || e.result.ErrorMessage != "" {
		r.Failed = true
		r.ErrorMessage = e.result.ErrorMessage
		return r
	}

	args := casper.Args(nil)
	entryPoint := ""
	if e.session != nil {
		args = e.session.Args
		entryPoint = e.session.EntryPoint
	}

	for _, nk := range e.result.AddedKeys {
		switch {
		case strings.HasPrefix(nk.Name, PrefixDAOCreated):
			x.daoFromKey(&r, e, args, strings.TrimPrefix(nk.Name, PrefixDAOCreated))
		case strings.HasPrefix(nk.Name, PrefixProposalCreated):
			x.proposalFromKey(&r, e, args, strings.TrimPrefix(nk.Name, PrefixProposalCreated))
		case strings.HasPrefix(nk.Name, PrefixVote):
			x.voteFromKey(&r, e, args, strings.TrimPrefix(nk.Name, PrefixVote))
		}
	}

	if len(r.Facts.Proposals) == 0 && entryPoint == EntryPointCreateProposal && x.mode == governance.ProposalModeLegacy {
		x.proposalFromArgs(&r, e, args)
	}
	if len(r.Facts.Votes) == 0 {
		x.voteFromArgs(&r, e, args)
	}
	return r
}

func (x *Extractor) skip(r *Result, format string, a ...any) {
	r.Skipped = append(r.Skipped, fmt.Errorf(format, a...))
}

func (x *Extractor) daoFromKey(r *Result, e execution, args casper.Args, id string) {
	if id == "" {
		x.skip(r, "storage key %s has no dao id", PrefixDAOCreated)
		return
	}
	dao := governance.DAO{
		DAOID:      id,
		Creator:    e.account,
		DeployHash: e.deployHash,
		CreatedAt:  e.timestamp,
	}
	var err error
	if dao.Name, err = optionalString(args, ArgName); err != nil {
		x.skip(r, "dao %s: %w", id, err)
		return
	}
	if dao.Description, err = optionalString(args, ArgDescription); err != nil {
		x.skip(r, "dao %s: %w", id, err)
		return
	}
	if dao.TokenAddress, err = optionalText(args, ArgTokenAddress); err != nil {
		x.skip(r, "dao %s: %w", id, err)
		return
	}
	r.Facts.DAOs = append(r.Facts.DAOs, dao)
}

func (x *Extractor) proposalFromKey(r *Result, e execution, args casper.Args, rest string) {
	daoID, proposalID, ok := strings.Cut(rest, "_")
	if !ok || daoID == "" || proposalID == "" {
		x.skip(r, "malformed proposal key %s%s", PrefixProposalCreated, rest)
		return
	}
	x.addProposal(r, e, args, daoID, proposalID)
}

func (x *Extractor) proposalFromArgs(r *Result, e execution, args casper.Args) {
	daoID, err := optionalText(args, ArgDAOID)
	if err != nil {
		x.skip(r, "create_proposal: %w", err)
		return
	}
	if daoID == "" {
		return
	}
	x.addProposal(r, e, args, daoID, governance.LegacyProposalID)
}

func (x *Extractor) addProposal(r *Result, e execution, args casper.Args, daoID, proposalID string) {
	p := governance.Proposal{
		DAOID:      daoID,
		ProposalID: proposalID,
		StartTime:  e.timestamp,
		DeployHash: e.deployHash,
	}
	var err error
	if p.Title, err = optionalString(args, ArgTitle); err != nil {
		x.skip(r, "proposal %s/%s: %w", daoID, proposalID, err)
		return
	}
	if p.Description, err = optionalString(args, ArgDescription); err != nil {
		x.skip(r, "proposal %s/%s: %w", daoID, proposalID, err)
		return
	}

	duration := x.defaultVotingDuration
	if v, ok := args.Get(ArgVotingDuration); ok {
		ms, err := v.AsU64()
		if err != nil {
			x.skip(r, "proposal %s/%s: %s: %w", daoID, proposalID, ArgVotingDuration, err)
			return
		}
		duration = time.Duration(ms) * time.Millisecond
	}
	p.EndTime = p.StartTime.Add(duration)
	r.Facts.Proposals = append(r.Facts.Proposals, p)
}

func (x *Extractor) voteFromKey(r *Result, e execution, args casper.Args, rest string) {
	parts := strings.SplitN(rest, "_", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		x.skip(r, "malformed vote key %s%s", PrefixVote, rest)
		return
	}
	v, ok := args.Get(ArgChoice)
	if !ok {
		x.skip(r, "vote %s/%s: %s argument not available", parts[0], parts[1], ArgChoice)
		return
	}
	choice, err := v.AsBool()
	if err != nil {
		x.skip(r, "vote %s/%s: %s: %w", parts[0], parts[1], ArgChoice, err)
		return
	}
	r.Facts.Votes = append(r.Facts.Votes, governance.Vote{
		DeployHash:   e.deployHash,
		DAOID:        parts[0],
		ProposalID:   parts[1],
		VoterAddress: parts[2],
		Choice:       choice,
		Timestamp:    e.timestamp,
	})
}

func (x *Extractor) voteFromArgs(r *Result, e execution, args casper.Args) {
	daoArg, hasDAO := args.Get(ArgDAOID)
	choiceArg, hasChoice := args.Get(ArgChoice)
	if !hasDAO || !hasChoice {
		return
	}

	daoID, err := daoArg.AsText()
	if err != nil {
		x.skip(r, "vote: %s: %w", ArgDAOID, err)
		return
	}
	choice, err := choiceArg.AsBool()
	if err != nil {
		x.skip(r, "vote %s: %s: %w", daoID, ArgChoice, err)
		return
	}

	proposalID, err := optionalText(args, ArgProposalID)
	if err != nil {
		x.skip(r, "vote %s: %w", daoID, err)
		return
	}
	if proposalID == "" {
		if x.mode != governance.ProposalModeLegacy {
			x.skip(r, "vote %s: %s argument required in %s mode", daoID, ArgProposalID, x.mode)
			return
		}
		proposalID = governance.LegacyProposalID
	}

	r.Facts.Votes = append(r.Facts.Votes, governance.Vote{
		DeployHash:   e.deployHash,
		DAOID:        daoID,
		ProposalID:   proposalID,
		VoterAddress: e.account,
		Choice:       choice,
		Timestamp:    e.timestamp,
	})
}

func optionalString(args casper.Args, name string) (string, error) {
	v, ok := args.Get(name)
	if !ok {
		return "", nil
	}
	s, err := v.AsString()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}

func optionalText(args casper.Args, name string) (string, error) {
	v, ok := args.Get(name)
	if !ok {
		return "", nil
	}
	s, err := v.AsText()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}
