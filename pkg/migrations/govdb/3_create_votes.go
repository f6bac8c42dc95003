package govdb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/chainsafe/dao-indexer/pkg/govstore"
	mghelper "github.com/chainsafe/dao-indexer/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating votes table...")
		if err := mghelper.CreateSchema(ctx, db, &govstore.VoteDao{}); err != nil {
			return err
		}
		// No foreign keys: votes may arrive before their DAO or proposal.
		return mghelper.CreateModelIndexes(ctx, db, &govstore.VoteDao{}, "dao_id", "proposal_id", "voter_address")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping votes table...")
		return mghelper.DropTables(ctx, db, &govstore.VoteDao{})
	})
}
