// Package indexer implements app.Runner for the DAO indexer process.
package indexer

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/dao-indexer/pkg/app/http"
	"github.com/chainsafe/dao-indexer/pkg/auth"
	"github.com/chainsafe/dao-indexer/pkg/casper"
	"github.com/chainsafe/dao-indexer/pkg/casper/node"
	"github.com/chainsafe/dao-indexer/pkg/config"
	"github.com/chainsafe/dao-indexer/pkg/extractor"
	"github.com/chainsafe/dao-indexer/pkg/governance"
	readservice "github.com/chainsafe/dao-indexer/pkg/governance/service"
	"github.com/chainsafe/dao-indexer/pkg/govstore"
	"github.com/chainsafe/dao-indexer/pkg/ingestion"
	"github.com/chainsafe/dao-indexer/pkg/keys"
	"github.com/chainsafe/dao-indexer/pkg/pgutil"
	reconcilerpkg "github.com/chainsafe/dao-indexer/pkg/reconciler"
	"github.com/chainsafe/dao-indexer/pkg/submission"
	submitservice "github.com/chainsafe/dao-indexer/pkg/submission/service"
)

// Server holds cfg to init the indexer.
type Server struct {
	cfg *config.Config
}

// NewServer initializes a new indexer server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("indexer config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting DAO indexer",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("chain", cfg.Chain.ChainName),
		zap.String("dao_contract", cfg.Chain.DAOContractHash),
	)

	mode, err := governance.ParseProposalMode(cfg.Ingestion.ProposalMode)
	if err != nil {
		return err
	}
	contract, err := casper.ParseKey(cfg.Chain.DAOContractHash)
	if err != nil {
		return fmt.Errorf("invalid dao contract hash: %w", err)
	}

	db, err := pgutil.ConnectDB(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	logger.Info("Connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
	)
	store := govstore.NewStore(db)

	client, err := node.NewClient(cfg.Chain.RPCEndpoints,
		node.WithHTTPClient(&http.Client{Timeout: cfg.Chain.RequestTimeout}),
		node.WithLogger(logger.Named("node")),
	)
	if err != nil {
		return fmt.Errorf("create node client: %w", err)
	}

	stream, err := s.openStream(logger)
	if err != nil {
		return err
	}

	ext := extractor.New(mode, cfg.Ingestion.DefaultVotingDuration)
	var source ingestion.EventSource
	if stream != nil {
		source = stream
	}
	engine := ingestion.NewEngine(cfg.Ingestion, contract.Hash, client, source, store, ext, logger.Named("ingestion"))
	if err := engine.Start(ctx); err != nil {
		return fmt.Errorf("start ingestion engine: %w", err)
	}
	// Stopped explicitly after ServeAndWait; the defer is a safety net.
	defer engine.Stop()

	rec := reconcilerpkg.New(client, store, contract.Hash, cfg.Ingestion.DefaultVotingDuration, logger.Named("reconciler"))
	s.runInitialReconcile(ctx, rec, logger)
	stopReconcile := s.startPeriodicReconcile(rec, logger)
	defer stopReconcile()

	signer, err := s.loadSigner(logger)
	if err != nil {
		return err
	}
	builder, err := submission.NewBuilder(cfg.Chain, cfg.Submission, mode)
	if err != nil {
		return fmt.Errorf("create deploy builder: %w", err)
	}

	readSvc := readservice.NewLog(readservice.NewService(store, time.Now), logger)
	submitSvc := submitservice.NewLog(submitservice.NewService(
		client,
		engine,
		builder,
		ext,
		submission.NewCooldown(cfg.Submission.Cooldown),
		signer,
		contract.Hash,
		logger,
	), logger)

	validator := auth.NewJWTValidator(cfg.Auth.AdminJWTSecret, cfg.Auth.AdminJWTIssuer)
	if !validator.IsConfigured() {
		logger.Warn("Admin token not configured, backend-signed routes are open")
	}

	router := s.setupRouter(engine, readSvc, submitSvc, validator.Middleware, logger)

	err = apphttp.ServeAndWait(ctx, router, logger, &cfg.Server)

	// Stop background work before deferred DB close kicks in.
	stopReconcile()
	engine.Stop()

	return err
}

// openStream returns nil when the push path is disabled.
func (s *Server) openStream(logger *zap.Logger) (*node.Stream, error) {
	if !s.cfg.Ingestion.StreamEnabled {
		logger.Info("Event stream disabled, relying on deploy polling")
		return nil, nil
	}
	stream, err := node.NewStream(s.cfg.Chain.EventStreamURL,
		node.WithReconnectDelay(s.cfg.Ingestion.ReconnectInitialDelay, s.cfg.Ingestion.ReconnectMaxDelay),
		node.WithLogger(logger.Named("stream")),
	)
	if err != nil {
		return nil, fmt.Errorf("create event stream: %w", err)
	}
	return stream, nil
}

// loadSigner returns nil when no signing key is configured.
func (s *Server) loadSigner(logger *zap.Logger) (casper.Signer, error) {
	sub := s.cfg.Submission
	if sub.SigningKeyPath == "" {
		logger.Info("No signing key configured, backend-signed submission disabled")
		return nil, nil
	}

	var masterKey []byte
	if sub.SigningKeyMasterKey != "" {
		var err error
		if masterKey, err = keys.MasterKeyFromBase64(sub.SigningKeyMasterKey); err != nil {
			return nil, fmt.Errorf("invalid signing key master key: %w", err)
		}
	}

	signer, err := keys.LoadSigner(sub.SigningKeyPath, sub.KeyAlgorithm, masterKey)
	if err != nil {
		return nil, fmt.Errorf("load signing key: %w", err)
	}
	logger.Info("Backend signing enabled", zap.String("account", signer.PublicKey().Hex()))
	return signer, nil
}

func (s *Server) runInitialReconcile(
	ctx context.Context,
	reconciler *reconcilerpkg.Reconciler,
	logger *zap.Logger,
) {
	if s.cfg.Ingestion.ReconcileTimeout <= 0 {
		return
	}

	logger.Info("Running initial reconciliation",
		zap.Duration("timeout", s.cfg.Ingestion.ReconcileTimeout),
	)

	startupCtx, cancel := context.WithTimeout(ctx, s.cfg.Ingestion.ReconcileTimeout)
	defer cancel()

	summary, err := reconciler.ReconcileAll(startupCtx)
	if err != nil {
		logger.Warn("Initial reconciliation failed (will retry periodically)", zap.Error(err))
		return
	}

	logger.Info("Initial reconciliation completed",
		zap.Int("daos_inserted", summary.DAOsInserted),
		zap.Int("proposals_inserted", summary.ProposalsInserted),
	)
}

func (s *Server) startPeriodicReconcile(
	reconciler *reconcilerpkg.Reconciler,
	logger *zap.Logger,
) func() {
	if s.cfg.Ingestion.ReconcileInterval <= 0 {
		return func() {}
	}

	logger.Info("Starting periodic reconciliation", zap.Duration("interval", s.cfg.Ingestion.ReconcileInterval))
	reconciler.StartPeriodicReconciliation(s.cfg.Ingestion.ReconcileInterval, s.cfg.Ingestion.ReconcileTimeout)

	return func() { reconciler.Stop() }
}

func (s *Server) setupRouter(
	engine *ingestion.Engine,
	readSvc readservice.Service,
	submitSvc submitservice.Service,
	adminOnly func(http.Handler) http.Handler,
	logger *zap.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	r.Use(apphttp.CORS(s.cfg.Server.CORSAllowedOrigins))
	r.NotFound(apphttp.NotFound)
	r.MethodNotAllowed(apphttp.MethodNotAllowed)

	// Liveness
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Readiness: 503 while the event stream is disconnected
	r.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
		if !engine.IsReady() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT_READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	})

	if s.cfg.Monitoring.Enabled {
		r.Handle("/metrics", promhttp.Handler())
		logger.Info("Metrics enabled", zap.String("path", "/metrics"))
	}

	readservice.RegisterRoutes(r, readSvc, logger)
	submitservice.RegisterRoutes(r, submitSvc, adminOnly, logger)

	return r
}
