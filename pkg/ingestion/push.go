package ingestion

import (
	"encoding/json"
	"slices"

	"go.uber.org/zap"

	"github.com/chainsafe/dao-indexer/internal/metrics"
	"github.com/chainsafe/dao-indexer/pkg/casper"
	"github.com/chainsafe/dao-indexer/pkg/casper/node"
)

const sourceStream = "stream"

// subscribe runs the stream until shutdown, handing DeployProcessed events to
// the worker pool so a slow insert never stalls receipt.
func (e *Engine) subscribe() {
	defer e.wg.Done()
	defer close(e.events)

	err := e.stream.Run(e.ctx, func(ev node.Event) {
		if ev.Type != node.EventDeployProcessed {
			return
		}
		select {
		case e.events <- ev:
		case <-e.ctx.Done():
		}
	})
	if err != nil {
		e.logger.Error("Event stream stopped", zap.Error(err))
	}
}

func (e *Engine) worker() {
	defer e.wg.Done()

	for ev := range e.events {
		if e.ctx.Err() != nil {
			continue
		}
		e.handleDeployProcessed(ev)
	}
}

func (e *Engine) handleDeployProcessed(ev node.Event) {
	var dp casper.DeployProcessed
	if err := json.Unmarshal(ev.Data, &dp); err != nil {
		metrics.ErrorsTotal.WithLabelValues("stream", "decode").Inc()
		e.logger.Warn("Failed to decode DeployProcessed event",
			zap.Uint64("event_id", ev.ID),
			zap.Error(err))
		return
	}

	if !e.concernsContract(&dp) {
		return
	}

	hash := dp.DeployHash.String()
	if dp.Session == nil {
		// Without the session args only the pull path can recover names and choices.
		if dp.ExecutionResult.Success {
			e.logger.Debug("Event carries no session, handing deploy to poller", zap.String("deploy_hash", hash))
			e.Track(dp.DeployHash, nil)
		}
		return
	}

	res := e.extractor.FromDeployProcessed(&dp)
	if res.Failed {
		e.logger.Info("Contract deploy failed",
			zap.String("deploy_hash", hash),
			zap.String("error_message", res.ErrorMessage))
		return
	}
	n := e.persist(e.ctx, sourceStream, res, e.jobs.intent(hash))
	if n > 0 {
		e.logger.Debug("Indexed deploy from stream",
			zap.String("deploy_hash", hash),
			zap.Uint64("event_id", ev.ID),
			zap.Int("facts", n))
	}
}

// concernsContract reports whether the deploy called the DAO contract or
// recorded an effect against it.
func (e *Engine) concernsContract(dp *casper.DeployProcessed) bool {
	if s := dp.Session; s != nil && s.Kind == casper.ItemStoredContractByHash {
		key := casper.Key{Tag: casper.KeyTagHash, Hash: s.Hash}
		if key.String() == e.daoContract {
			return true
		}
	}
	return slices.Contains(dp.ExecutionResult.TouchedKeys, e.daoContract)
}
