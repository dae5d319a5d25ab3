package mysql

import (
	"fmt"
	"time"

	driver "github.com/go-sql-driver/mysql"
)

// NormalizeDSN forces parseTime and UTC on an operator-supplied DSN;
// ListByLocation scans fetched_at into time.Time.
func NormalizeDSN(dsn string) (string, error) {
	cfg, err := driver.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}
