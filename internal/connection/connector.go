package connection

import (
	"context"
	"database/sql"
)

// SQLConnector opens database/sql handles against the warehouse using a
// registered driver. The DSN carries host, warehouse path and credentials;
// catalog/schema binding stays on the Manager.
type SQLConnector struct {
	driver string
	dsn    string
}

func NewSQLConnector(driver, dsn string) *SQLConnector {
	return &SQLConnector{driver: driver, dsn: dsn}
}

func (c *SQLConnector) Connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(c.driver, c.dsn)
	if err != nil {
		return nil, err
	}
	// the shared session serves concurrent read statements; the pool size
	// bounds how many run against the warehouse at once
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(0)
	return db, nil
}
