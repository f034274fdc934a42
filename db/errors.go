package db

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// IsDupKeyErr reports whether err is a unique-key violation. Callers treat
// these as "row already exists" rather than failures (idempotent follows,
// repeated profile creation).
func IsDupKeyErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	return strings.Contains(mysqlErr.Error(), "Duplicate")
}
