package ingestion

import (
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/dao-indexer/internal/metrics"
	"github.com/chainsafe/dao-indexer/pkg/casper"
)

const sourcePoll = "poll"

// poll drives one job: submitted -> polling -> finalized | failed | timed_out.
// Every RPC request counts as an attempt, transient errors included.
func (e *Engine) poll(hash casper.Hash) {
	defer e.wg.Done()

	key := hash.String()
	logger := e.logger.With(zap.String("deploy_hash", key))
	metrics.ActivePollJobs.Inc()
	defer metrics.ActivePollJobs.Dec()

	ticker := time.NewTicker(e.cfg.PollInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= e.cfg.MaxPollAttempts; attempt++ {
		select {
		case <-e.ctx.Done():
			logger.Debug("Poll job cancelled", zap.Int("attempts", attempt-1))
			return
		case <-ticker.C:
		}

		e.jobs.update(key, func(s *JobSnapshot) {
			s.State = JobPolling
			s.Attempts = attempt
		})

		if e.pollOnce(hash, logger, attempt) {
			return
		}
	}

	e.jobs.update(key, func(s *JobSnapshot) {
		s.State = JobTimedOut
		s.ErrorMessage = "deploy not executed within the polling window"
	})
	metrics.PollJobs.WithLabelValues(string(JobTimedOut)).Inc()
	logger.Warn("Gave up polling deploy; recover manually with POST /track/"+key,
		zap.Int("attempts", e.cfg.MaxPollAttempts),
		zap.Duration("interval", e.cfg.PollInterval))
}

// pollOnce performs one request and reports whether the job reached a terminal state.
func (e *Engine) pollOnce(hash casper.Hash, logger *zap.Logger, attempt int) bool {
	key := hash.String()

	info, err := e.client.GetDeploy(e.ctx, hash)
	if err != nil {
		if e.ctx.Err() != nil {
			return true
		}
		metrics.ErrorsTotal.WithLabelValues("poller", "rpc").Inc()
		logger.Debug("Deploy lookup failed, will retry", zap.Int("attempt", attempt), zap.Error(err))
		return false
	}

	res := e.extractor.FromDeployInfo(info)
	switch {
	case res.Pending:
		logger.Debug("Deploy not executed yet", zap.Int("attempt", attempt))
		return false

	case res.Failed:
		e.jobs.update(key, func(s *JobSnapshot) {
			s.State = JobFailed
			s.ErrorMessage = res.ErrorMessage
		})
		metrics.PollJobs.WithLabelValues(string(JobFailed)).Inc()
		logger.Warn("Deploy execution failed", zap.String("error_message", res.ErrorMessage))
		return true

	default:
		n := e.persist(e.ctx, sourcePoll, res, e.jobs.intent(key))
		e.jobs.update(key, func(s *JobSnapshot) {
			s.State = JobFinalized
			s.Facts = n
		})
		metrics.PollJobs.WithLabelValues(string(JobFinalized)).Inc()
		logger.Info("Deploy finalized", zap.Int("facts", n), zap.Int("attempts", attempt))
		return true
	}
}
