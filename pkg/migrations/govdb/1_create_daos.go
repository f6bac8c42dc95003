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
		log.Println("creating daos table...")
		if err := mghelper.CreateSchema(ctx, db, &govstore.DAODao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &govstore.DAODao{}, "created_at")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping daos table...")
		return mghelper.DropTables(ctx, db, &govstore.DAODao{})
	})
}
