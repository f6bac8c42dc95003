package ingestion

import (
	"context"

	"go.uber.org/zap"

	"github.com/chainsafe/dao-indexer/internal/metrics"
	"github.com/chainsafe/dao-indexer/pkg/extractor"
	"github.com/chainsafe/dao-indexer/pkg/governance"
)

const (
	kindDAO      = "dao"
	kindProposal = "proposal"
	kindVote     = "vote"
)

// persist merges the intent into the extracted facts and writes each one.
// Failed inserts are logged and skipped. It returns the number of rows written.
func (e *Engine) persist(ctx context.Context, source string, res extractor.Result, intent *governance.Intent) int {
	logger := e.logger.With(zap.String("deploy_hash", res.DeployHash), zap.String("source", source))

	for _, err := range res.Skipped {
		metrics.ErrorsTotal.WithLabelValues("extractor", "decode").Inc()
		logger.Warn("Skipped undecodable fact", zap.Error(err))
	}

	facts := intent.Apply(res.Facts)
	written := 0
	for i := range facts.DAOs {
		d := &facts.DAOs[i]
		if e.write(logger, source, kindDAO, d.DAOID, func() (bool, error) {
			return e.store.InsertDAO(ctx, d)
		}) {
			written++
		}
	}
	for i := range facts.Proposals {
		p := &facts.Proposals[i]
		if e.write(logger, source, kindProposal, p.DAOID+"/"+p.ProposalID, func() (bool, error) {
			return e.store.InsertProposal(ctx, p)
		}) {
			written++
		}
	}
	for i := range facts.Votes {
		v := &facts.Votes[i]
		if e.write(logger, source, kindVote, v.DAOID+"/"+v.ProposalID, func() (bool, error) {
			return e.store.InsertVote(ctx, v)
		}) {
			written++
		}
	}
	return written
}

func (e *Engine) write(logger *zap.Logger, source, kind, id string, insert func() (bool, error)) bool {
	metrics.FactsExtracted.WithLabelValues(kind, source).Inc()

	inserted, err := insert()
	switch {
	case err != nil:
		metrics.FactsPersisted.WithLabelValues(kind, "error").Inc()
		metrics.ErrorsTotal.WithLabelValues("store", "insert").Inc()
		logger.Error("Failed to store fact", zap.String("kind", kind), zap.String("id", id), zap.Error(err))
		return false
	case !inserted:
		metrics.FactsPersisted.WithLabelValues(kind, "duplicate").Inc()
		logger.Debug("Fact already stored", zap.String("kind", kind), zap.String("id", id))
		return false
	default:
		metrics.FactsPersisted.WithLabelValues(kind, "inserted").Inc()
		logger.Info("Stored fact", zap.String("kind", kind), zap.String("id", id))
		return true
	}
}
