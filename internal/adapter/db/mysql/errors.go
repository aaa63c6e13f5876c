package mysql

import (
	"errors"

	driver "github.com/go-sql-driver/mysql"
)

const errDuplicateEntry = 1062

func isDuplicateEntry(err error) bool {
	var mysqlErr *driver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == errDuplicateEntry
}
