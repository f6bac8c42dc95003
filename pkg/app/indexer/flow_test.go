package indexer

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"

	"github.com/chainsafe/dao-indexer/pkg/casper"
	"github.com/chainsafe/dao-indexer/pkg/config"
	"github.com/chainsafe/dao-indexer/pkg/extractor"
	"github.com/chainsafe/dao-indexer/pkg/governance"
	readservice "github.com/chainsafe/dao-indexer/pkg/governance/service"
	"github.com/chainsafe/dao-indexer/pkg/govstore"
	"github.com/chainsafe/dao-indexer/pkg/ingestion"
	"github.com/chainsafe/dao-indexer/pkg/migrations/govdb"
	"github.com/chainsafe/dao-indexer/pkg/pgutil"
	submitmocks "github.com/chainsafe/dao-indexer/pkg/submission/service/mocks"
)

var (
	flowContract = casper.Hash{0xda, 0x02}
	flowAccount  = casper.PublicKey{Algorithm: casper.AlgorithmEd25519, Raw: make([]byte, 32)}
	flowTime     = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
)

// chainFixture serves executed deploys by hash.
type chainFixture struct {
	mu      sync.Mutex
	deploys map[casper.Hash]*casper.DeployInfo
}

func (c *chainFixture) GetDeploy(_ context.Context, hash casper.Hash) (*casper.DeployInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	info, ok := c.deploys[hash]
	if !ok {
		return &casper.DeployInfo{Deploy: casper.Deploy{Hash: hash}}, nil
	}
	return info, nil
}

func (c *chainFixture) add(hash casper.Hash, entryPoint string, args casper.Args, addedKeys ...string) {
	result := casper.ExecutionResult{Success: true}
	for _, name := range addedKeys {
		result.AddedKeys = append(result.AddedKeys, casper.NamedKey{Name: name, Key: "uref-" + hash.String() + "-007"})
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deploys[hash] = &casper.DeployInfo{
		Deploy: casper.Deploy{
			Hash: hash,
			Header: casper.DeployHeader{
				Account:   flowAccount,
				Timestamp: casper.Timestamp(flowTime),
			},
			Session: casper.ExecutableDeployItem{
				Kind:       casper.ItemStoredContractByHash,
				Hash:       flowContract,
				EntryPoint: entryPoint,
				Args:       args,
			},
		},
		ExecutionResults: []casper.BlockExecutionResult{{Result: result}},
	}
}

func setupFlow(t *testing.T) (*chainFixture, *ingestion.Engine, http.Handler) {
	t.Helper()
	ctx := context.Background()

	db, cleanup := pgutil.SetupTestDB(t)
	t.Cleanup(cleanup)

	migrator := migrate.NewMigrator(db, govdb.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	store := govstore.NewStore(db)

	chain := &chainFixture{deploys: map[casper.Hash]*casper.DeployInfo{}}
	ingestCfg := config.IngestionConfig{
		StreamWorkers:         1,
		PollInterval:          5 * time.Millisecond,
		MaxPollAttempts:       100,
		JobRetention:          time.Hour,
		DefaultVotingDuration: 24 * time.Hour,
	}
	engine := ingestion.NewEngine(ingestCfg, flowContract, chain, nil, store,
		extractor.New(governance.ProposalModeLegacy, ingestCfg.DefaultVotingDuration), zap.NewNop())
	if err := engine.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(engine.Stop)

	cfg := &config.Config{Server: config.ServerConfig{RequestTimeout: 5 * time.Second}}
	readSvc := readservice.NewService(store, func() time.Time { return flowTime.Add(time.Hour) })
	router := NewServer(cfg).setupRouter(engine, readSvc, submitmocks.NewService(t), nil, zap.NewNop())
	return chain, engine, router
}

func trackUntilFinalized(t *testing.T, engine *ingestion.Engine, hash casper.Hash) {
	t.Helper()
	engine.Track(hash, nil)
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if snap, ok := engine.Job(hash); ok && snap.State.Terminal() {
			if snap.State != ingestion.JobFinalized {
				t.Fatalf("job %s ended as %s: %s", hash, snap.State, snap.ErrorMessage)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s did not finalize", hash)
}

func getJSON(t *testing.T, h http.Handler, path string, out any) {
	t.Helper()
	rec := get(h, path)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: status %d, body %s", path, rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("GET %s: failed to decode response JSON: %v", path, err)
	}
}

func TestFlow_CreateDAOThenVote(t *testing.T) {
	chain, engine, h := setupFlow(t)

	createHash := casper.Hash{0xc1}
	chain.add(createHash, "create_dao",
		casper.Args{{Name: extractor.ArgName, Value: casper.NewString("Builders")}},
		extractor.PrefixDAOCreated+"17000000")
	trackUntilFinalized(t, engine, createHash)

	var daos governance.DAOListResponse
	getJSON(t, h, "/daos", &daos)
	if len(daos.DAOs) != 1 {
		t.Fatalf("expected 1 dao, got %+v", daos.DAOs)
	}
	if d := daos.DAOs[0]; d.DAOID != "17000000" || d.Name != "Builders" || d.DeployHash != createHash.String() {
		t.Fatalf("unexpected dao %+v", d)
	}

	voteHash := casper.Hash{0xd2}
	chain.add(voteHash, "vote", casper.Args{
		{Name: extractor.ArgDAOID, Value: casper.NewString("17000000")},
		{Name: extractor.ArgChoice, Value: casper.NewBool(false)},
	})
	trackUntilFinalized(t, engine, voteHash)

	var votes governance.VoteListResponse
	getJSON(t, h, "/votes/1", &votes)
	if len(votes.Votes) != 1 {
		t.Fatalf("expected 1 vote, got %+v", votes.Votes)
	}
	if v := votes.Votes[0]; v.DeployHash != voteHash.String() || v.DAOID != "17000000" || v.Choice || v.VoterAddress != flowAccount.Hex() {
		t.Fatalf("unexpected vote %+v", v)
	}

	var tally governance.TallyResponse
	getJSON(t, h, "/stats/17000000/1", &tally)
	if tally != (governance.TallyResponse{Yes: 0, No: 1, Total: 1}) {
		t.Fatalf("unexpected tally %+v", tally)
	}

	// Observing the same vote again leaves the tally unchanged.
	trackUntilFinalized(t, engine, voteHash)
	getJSON(t, h, "/stats/17000000/1", &tally)
	if tally.Total != 1 {
		t.Fatalf("replayed vote was counted twice: %+v", tally)
	}
}
