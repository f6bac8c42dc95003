package migrations

import (
	"context"
	"testing"

	"github.com/uptrace/bun/migrate"

	"github.com/chainsafe/dao-indexer/pkg/migrations/govdb"
	mghelper "github.com/chainsafe/dao-indexer/pkg/pgutil"
	mgrunner "github.com/chainsafe/dao-indexer/pkg/pgutil/migrations"
)

func TestGovDBMigrations_Apply(t *testing.T) {
	db, cleanup := mghelper.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, govdb.Migrations)

	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	if group.IsZero() {
		t.Error("Expected migrations to run, but none were applied")
	}

	for _, table := range []string{"daos", "proposals", "votes", "bun_migrations"} {
		mghelper.AssertTableExists(t, db, table)
	}

	mghelper.AssertIndexExists(t, db, "idx_daos_created_at")
	mghelper.AssertIndexExists(t, db, "idx_proposals_dao_id")
	mghelper.AssertIndexExists(t, db, "idx_votes_dao_id")
	mghelper.AssertIndexExists(t, db, "idx_votes_proposal_id")
	mghelper.AssertIndexExists(t, db, "idx_votes_voter_address")
}

func TestMigrations_Idempotency(t *testing.T) {
	db, cleanup := mghelper.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, govdb.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("First Migrate() failed: %v", err)
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		t.Fatalf("Second Migrate() failed: %v", err)
	}
	if !group.IsZero() {
		t.Error("Expected no new migrations on second run")
	}

	mghelper.AssertTableExists(t, db, "votes")
}

func TestMigrations_Rollback(t *testing.T) {
	db, cleanup := mghelper.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, govdb.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}

	// All migrations run in one group, so one rollback drops every table.
	group, err := migrator.Rollback(ctx)
	if err != nil {
		t.Fatalf("Rollback() failed: %v", err)
	}
	if group.IsZero() {
		t.Error("Expected rollback to process a migration")
	}

	mghelper.AssertTableNotExists(t, db, "votes")
	mghelper.AssertTableNotExists(t, db, "proposals")
	mghelper.AssertTableNotExists(t, db, "daos")
}

func TestVotes_NoForeignKeys(t *testing.T) {
	db, cleanup := mghelper.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, govdb.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}

	_, err := db.ExecContext(ctx, `INSERT INTO votes (deploy_hash, dao_id, proposal_id, voter_address, choice, "timestamp")
		VALUES ('aa', 'unknown-dao', '1', '01ab', true, now())`)
	if err != nil {
		t.Fatalf("vote for unknown dao should be accepted: %v", err)
	}
	mghelper.AssertRowCount(t, db, "votes", 1)
}

func TestRunMigrations_Commands(t *testing.T) {
	db, cleanup := mghelper.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, govdb.Migrations)

	for _, cmd := range []string{"init", "up", "status"} {
		if err := mgrunner.RunMigrations(ctx, migrator, cmd); err != nil {
			t.Fatalf("RunMigrations(%s) failed: %v", cmd, err)
		}
	}
	mghelper.AssertTableExists(t, db, "daos")

	if err := mgrunner.RunMigrations(ctx, migrator, "down"); err != nil {
		t.Fatalf("RunMigrations(down) failed: %v", err)
	}
	mghelper.AssertTableNotExists(t, db, "daos")

	if err := mgrunner.RunMigrations(ctx, migrator, "sideways"); err == nil {
		t.Error("expected unknown command to fail")
	}
	if err := mgrunner.RunMigrations(ctx, migrator); err == nil {
		t.Error("expected missing command to fail")
	}
}
