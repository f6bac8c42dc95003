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
		log.Println("creating proposals table...")
		if err := mghelper.CreateSchema(ctx, db, &govstore.ProposalDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &govstore.ProposalDao{}, "dao_id")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping proposals table...")
		return mghelper.DropTables(ctx, db, &govstore.ProposalDao{})
	})
}
