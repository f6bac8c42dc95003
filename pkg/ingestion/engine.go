// Package ingestion drives the two paths that feed the governance store: a
// long-lived subscription to the node's event stream (push) and per-deploy
// poll jobs against the node RPC (pull). Both converge on the extractor and
// write through the idempotent store, so overlapping observations are safe.
package ingestion

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/dao-indexer/internal/metrics"
	"github.com/chainsafe/dao-indexer/pkg/casper"
	"github.com/chainsafe/dao-indexer/pkg/casper/node"
	"github.com/chainsafe/dao-indexer/pkg/config"
	"github.com/chainsafe/dao-indexer/pkg/extractor"
	"github.com/chainsafe/dao-indexer/pkg/governance"
	"github.com/chainsafe/dao-indexer/pkg/govstore"
)

const (
	pruneInterval = time.Minute

	errEngineStopped = "ingestion engine stopped"
)

// DeployFetcher reads a deploy and its execution result from the node.
type DeployFetcher interface {
	GetDeploy(ctx context.Context, hash casper.Hash) (*casper.DeployInfo, error)
}

// EventSource is the node's server-sent event stream.
type EventSource interface {
	Run(ctx context.Context, handle func(node.Event)) error
	Connected() bool
}

// Engine owns the stream subscription, its worker pool and the poll jobs.
type Engine struct {
	cfg         config.IngestionConfig
	daoContract string
	client      DeployFetcher
	stream      EventSource
	store       govstore.Writer
	extractor   *extractor.Extractor
	logger      *zap.Logger

	jobs   *registry
	events chan node.Event

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewEngine creates an ingestion engine. stream may be nil, which disables the
// push path. daoContract is the contract hash whose effects are indexed.
func NewEngine(
	cfg config.IngestionConfig,
	daoContract casper.Hash,
	client DeployFetcher,
	stream EventSource,
	store govstore.Writer,
	ext *extractor.Extractor,
	logger *zap.Logger,
) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	workers := cfg.StreamWorkers
	if workers < 1 {
		workers = 1
	}
	cfg.StreamWorkers = workers
	return &Engine{
		cfg:         cfg,
		daoContract: casper.Key{Tag: casper.KeyTagHash, Hash: daoContract}.String(),
		client:      client,
		stream:      stream,
		store:       store,
		extractor:   ext,
		logger:      logger,
		jobs:        newRegistry(cfg.JobRetention, time.Now),
		events:      make(chan node.Event, workers*4),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start launches the stream subscriber, its workers and the job pruner.
// The engine stops when ctx is cancelled or Stop is called.
func (e *Engine) Start(ctx context.Context) error {
	e.logger.Info("Starting ingestion engine",
		zap.Bool("stream_enabled", e.stream != nil),
		zap.Int("stream_workers", e.cfg.StreamWorkers),
		zap.String("proposal_mode", string(e.extractor.Mode())))

	go func() {
		select {
		case <-ctx.Done():
			e.cancel()
		case <-e.ctx.Done():
		}
	}()

	if e.stream != nil {
		for i := 0; i < e.cfg.StreamWorkers; i++ {
			e.wg.Add(1)
			go e.worker()
		}
		e.wg.Add(1)
		go e.subscribe()
	}

	e.wg.Add(1)
	go e.pruneJobs()

	e.logger.Info("Ingestion engine started")
	return nil
}

// Stop cancels the stream and every poll job and waits for them to exit.
func (e *Engine) Stop() {
	e.once.Do(func() {
		e.logger.Info("Stopping ingestion engine")
		e.cancel()
		e.wg.Wait()
		e.logger.Info("Ingestion engine stopped")
	})
}

// IsReady reports whether the push path is connected, or disabled.
func (e *Engine) IsReady() bool {
	return e.stream == nil || e.stream.Connected()
}

// Track registers a poll job for a submitted deploy. Tracking a hash that is
// already being polled returns the existing job. intent may be nil.
func (e *Engine) Track(hash casper.Hash, intent *governance.Intent) JobSnapshot {
	snap, created := e.jobs.register(hash.String(), e.cfg.MaxPollAttempts, intent)
	if !created {
		return snap
	}
	if e.ctx.Err() != nil {
		e.logger.Warn("Ingestion engine stopped, deploy not polled", zap.String("deploy_hash", snap.DeployHash))
		return e.jobs.update(snap.DeployHash, func(s *JobSnapshot) {
			s.State = JobFailed
			s.ErrorMessage = errEngineStopped
		})
	}

	e.logger.Info("Tracking deploy",
		zap.String("deploy_hash", snap.DeployHash),
		zap.String("job_id", snap.ID),
		zap.Bool("has_intent", intent != nil))

	e.wg.Add(1)
	go e.poll(hash)
	return snap
}

// Job returns the current snapshot of the poll job for hash.
func (e *Engine) Job(hash casper.Hash) (JobSnapshot, bool) {
	return e.jobs.get(hash.String())
}

func (e *Engine) pruneJobs() {
	defer e.wg.Done()

	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.ctx.Done():
			return
		case <-ticker.C:
			if n := e.jobs.prune(); n > 0 {
				e.logger.Debug("Pruned finished poll jobs", zap.Int("count", n))
			}
			metrics.ActivePollJobs.Set(float64(e.jobs.active()))
		}
	}
}
