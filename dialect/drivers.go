package dialect

// Registered with database/sql under "sqlserver" — a caller opening a
// *sql.DB (or a *gorm.DB through gorm.io/driver/sqlserver) against
// MSSQL to drive this package's Query adapter needs the driver
// registered somewhere in the import graph; this package is the
// natural place since it's the one that knows MSSQL's paging quirks.
import _ "github.com/microsoft/go-mssqldb"
