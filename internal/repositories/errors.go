package repositories

import (
	"errors"
	"fmt"

	"github.com/docuvault/backend/internal/models"
	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers surfaced as typed violations
const (
	mysqlErrDuplicateEntry   = 1062
	mysqlErrForeignKeyFailed = 1452
)

// translateError maps MySQL constraint errors onto the model error kinds so
// services and handlers can match them with errors.Is. Other errors pass
// through unchanged.
func translateError(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrDuplicateEntry:
			return fmt.Errorf("%w: %s", models.ErrDuplicateEntry, mysqlErr.Message)
		case mysqlErrForeignKeyFailed:
			return fmt.Errorf("%w: %s", models.ErrForeignKey, mysqlErr.Message)
		}
	}
	return err
}
