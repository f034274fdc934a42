package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestIsDupKeyErr(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a-b' for key 'follows.uniq_edge'"}
	assert.True(t, IsDupKeyErr(dup))
	assert.True(t, IsDupKeyErr(fmt.Errorf("insert failed: %w", dup)))

	assert.False(t, IsDupKeyErr(&mysql.MySQLError{Number: 1146, Message: "Table 'posts' doesn't exist"}))
	assert.False(t, IsDupKeyErr(errors.New("Duplicate but not a mysql error")))
	assert.False(t, IsDupKeyErr(nil))
}
