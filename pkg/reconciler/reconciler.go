// Package reconciler periodically compares the DAO contract's named keys with
// the store and inserts DAOs and proposals that both ingestion paths missed.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/dao-indexer/internal/metrics"
	"github.com/chainsafe/dao-indexer/pkg/casper"
	"github.com/chainsafe/dao-indexer/pkg/casper/node"
	"github.com/chainsafe/dao-indexer/pkg/extractor"
	"github.com/chainsafe/dao-indexer/pkg/governance"
	"github.com/chainsafe/dao-indexer/pkg/govstore"
)

// ChainReader reads contract state at the latest state root.
type ChainReader interface {
	ContractNamedKeys(ctx context.Context, contract casper.Hash) (casper.Hash, []casper.NamedKey, error)
	QueryGlobalState(ctx context.Context, stateRoot casper.Hash, key string, path []string) (*node.StoredValue, error)
}

// Store is the subset of the governance store the sweep needs.
type Store interface {
	GetDAO(ctx context.Context, daoID string) (*governance.DAO, error)
	ListProposals(ctx context.Context, daoID string) ([]*govstore.ProposalWithTally, error)
	InsertDAO(ctx context.Context, dao *governance.DAO) (bool, error)
	InsertProposal(ctx context.Context, proposal *governance.Proposal) (bool, error)
}

// Summary reports what one sweep found.
type Summary struct {
	NamedKeys         int
	DAOsInserted      int
	ProposalsInserted int
}

// Reconciler runs the named-key sweep.
type Reconciler struct {
	chain                 ChainReader
	store                 Store
	contract              casper.Hash
	defaultVotingDuration time.Duration
	logger                *zap.Logger
	now                   func() time.Time

	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// New creates a new Reconciler
func New(chain ChainReader, store Store, contract casper.Hash, defaultVotingDuration time.Duration, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		chain:                 chain,
		store:                 store,
		contract:              contract,
		defaultVotingDuration: defaultVotingDuration,
		logger:                logger,
		now:                   time.Now,
		stopCh:                make(chan struct{}),
	}
}

// ReconcileAll reads the contract's named keys once and inserts every DAO and
// proposal that is not stored yet.
func (r *Reconciler) ReconcileAll(ctx context.Context) (*Summary, error) {
	start := time.Now()

	root, keys, err := r.chain.ContractNamedKeys(ctx, r.contract)
	if err != nil {
		return nil, fmt.Errorf("failed to read contract named keys: %w", err)
	}

	sum := &Summary{NamedKeys: len(keys)}
	known := make(map[string]map[string]bool)

	for _, nk := range keys {
		switch {
		case strings.HasPrefix(nk.Name, extractor.PrefixDAOCreated):
			id := strings.TrimPrefix(nk.Name, extractor.PrefixDAOCreated)
			if id == "" {
				continue
			}
			inserted, err := r.reconcileDAO(ctx, root, id, nk.Key)
			if err != nil {
				return sum, err
			}
			if inserted {
				sum.DAOsInserted++
			}

		case strings.HasPrefix(nk.Name, extractor.PrefixProposalCreated):
			daoID, proposalID, ok := strings.Cut(strings.TrimPrefix(nk.Name, extractor.PrefixProposalCreated), "_")
			if !ok || daoID == "" || proposalID == "" {
				continue
			}
			if _, loaded := known[daoID]; !loaded {
				ids, err := r.proposalIDs(ctx, daoID)
				if err != nil {
					return sum, err
				}
				known[daoID] = ids
			}
			if known[daoID][proposalID] {
				continue
			}
			inserted, err := r.reconcileProposal(ctx, daoID, proposalID)
			if err != nil {
				return sum, err
			}
			known[daoID][proposalID] = true
			if inserted {
				sum.ProposalsInserted++
			}
		}
	}

	r.logger.Info("Named-key reconciliation completed",
		zap.Int("named_keys", sum.NamedKeys),
		zap.Int("daos_inserted", sum.DAOsInserted),
		zap.Int("proposals_inserted", sum.ProposalsInserted),
		zap.Duration("duration", time.Since(start)))
	return sum, nil
}

func (r *Reconciler) reconcileDAO(ctx context.Context, root casper.Hash, daoID, key string) (bool, error) {
	_, err := r.store.GetDAO(ctx, daoID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, govstore.ErrDAONotFound) {
		return false, fmt.Errorf("failed to look up dao %s: %w", daoID, err)
	}

	dao := &governance.DAO{
		DAOID:     daoID,
		Name:      r.storedName(ctx, root, key),
		CreatedAt: r.createdAt(daoID),
	}
	inserted, err := r.store.InsertDAO(ctx, dao)
	if err != nil {
		return false, err
	}
	if inserted {
		r.logger.Info("Recovered missing DAO from named keys", zap.String("dao_id", daoID))
	}
	return inserted, nil
}

// reconcileProposal stores a placeholder timed from now. It has no deploy
// hash, so the store replaces it with the first chain fact for the proposal.
func (r *Reconciler) reconcileProposal(ctx context.Context, daoID, proposalID string) (bool, error) {
	start := r.now().UTC()
	inserted, err := r.store.InsertProposal(ctx, &governance.Proposal{
		DAOID:      daoID,
		ProposalID: proposalID,
		StartTime:  start,
		EndTime:    start.Add(r.defaultVotingDuration),
	})
	if err != nil {
		return false, err
	}
	if inserted {
		r.logger.Info("Recovered missing proposal from named keys",
			zap.String("dao_id", daoID),
			zap.String("proposal_id", proposalID))
	}
	return inserted, nil
}

func (r *Reconciler) proposalIDs(ctx context.Context, daoID string) (map[string]bool, error) {
	proposals, err := r.store.ListProposals(ctx, daoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals of dao %s: %w", daoID, err)
	}
	ids := make(map[string]bool, len(proposals))
	for _, p := range proposals {
		ids[p.ProposalID] = true
	}
	return ids, nil
}

// storedName reads the String value behind a DAO's named key. Any failure
// leaves the name blank.
func (r *Reconciler) storedName(ctx context.Context, root casper.Hash, key string) string {
	v, err := r.chain.QueryGlobalState(ctx, root, key, nil)
	if err != nil || v == nil || v.CLValue == nil {
		r.logger.Debug("No stored value for DAO key", zap.String("key", key), zap.Error(err))
		return ""
	}
	name, err := v.CLValue.AsString()
	if err != nil {
		return ""
	}
	return name
}

// createdAt interprets a numeric DAO id as the block time in milliseconds.
func (r *Reconciler) createdAt(daoID string) time.Time {
	if ms, err := strconv.ParseInt(daoID, 10, 64); err == nil && ms > 0 {
		return time.UnixMilli(ms).UTC()
	}
	return r.now().UTC()
}

// StartPeriodicReconciliation starts a background goroutine that reconciles periodically
func (r *Reconciler) StartPeriodicReconciliation(interval, timeout time.Duration) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		r.logger.Info("Started periodic reconciliation", zap.Duration("interval", interval))

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				if _, err := r.ReconcileAll(ctx); err != nil {
					metrics.ReconcileRuns.WithLabelValues("error").Inc()
					r.logger.Error("Periodic reconciliation failed", zap.Error(err))
				} else {
					metrics.ReconcileRuns.WithLabelValues("success").Inc()
				}
				cancel()
			case <-r.stopCh:
				r.logger.Info("Stopping periodic reconciliation")
				return
			}
		}
	}()
}

// Stop stops the periodic reconciliation
func (r *Reconciler) Stop() {
	r.once.Do(func() {
		close(r.stopCh)
		r.wg.Wait()
	})
}
