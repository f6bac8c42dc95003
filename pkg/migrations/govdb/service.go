// Package govdb holds all the migrations for the governance database
package govdb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the collection of all migrations for the governance database
var Migrations = migrate.NewMigrations()
