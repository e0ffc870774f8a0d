package dialect

import "github.com/nrfta/keyset-go"

var (
	_ paging.Dialect = Postgres{}
	_ paging.Dialect = MySQL{}
	_ paging.Dialect = MSSQL{}
	_ paging.Dialect = SQLite{}
)
