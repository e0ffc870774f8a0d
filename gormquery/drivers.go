package gormquery

import (
	// Registered with database/sql under "mysql" so gorm.io/driver/mysql
	// (which opens through database/sql) can dial real MySQL DSNs.
	_ "github.com/go-sql-driver/mysql"
	// Registered under "sqlite" — a pure-Go (cgo-free) alternative to
	// gorm.io/driver/sqlite's default mattn/go-sqlite3 backend, wired in
	// via sqlite.Dialector.DriverName below.
	_ "modernc.org/sqlite"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenPostgres opens a *gorm.DB against dsn using gorm's pgx-backed
// postgres driver.
func OpenPostgres(dsn string, cfg *gorm.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), configOrDefault(cfg))
}

// OpenMySQL opens a *gorm.DB against dsn using go-sql-driver/mysql.
func OpenMySQL(dsn string, cfg *gorm.Config) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), configOrDefault(cfg))
}

// OpenSQLite opens a *gorm.DB against dsn through the pure-Go
// modernc.org/sqlite driver rather than gorm's default cgo backend, so
// this module's SQLite path stays cgo-free end to end.
func OpenSQLite(dsn string, cfg *gorm.Config) (*gorm.DB, error) {
	dialector := sqlite.Dialector{DSN: dsn, DriverName: "sqlite"}
	return gorm.Open(dialector, configOrDefault(cfg))
}

func configOrDefault(cfg *gorm.Config) *gorm.Config {
	if cfg != nil {
		return cfg
	}
	return &gorm.Config{}
}

// MSSQL is deliberately not given an Open helper here: the pack carries
// github.com/microsoft/go-mssqldb (wired for paging/dialect's SQL
// emission, see dialect/mssql.go) but no gorm sqlserver driver
// (gorm.io/driver/sqlserver) is part of this module's dependency set,
// and introducing it purely to open a connection no test in this
// repo exercises would be exactly the kind of unwired dependency this
// module avoids. A caller wiring MSSQL through gorm would import
// gorm.io/driver/sqlserver themselves and pass the resulting *gorm.DB
// to New like any other dialect.
