// Package repository implements persistence for customers, products and licenses.
// Repositories support both PostgreSQL and MySQL and participate in transactions
// started by database.TxManager.
package repository

import (
	"encoding/json"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	apperrors "github.com/allisson/license-manager/internal/errors"
)

func marshalAttributes(m map[string]string) ([]byte, error) {
	if m == nil {
		m = map[string]string{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal attributes")
	}
	return data, nil
}

func unmarshalAttributes(data []byte) (map[string]string, error) {
	m := map[string]string{}
	if len(data) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal attributes")
	}
	return m, nil
}

// isPostgreSQLUniqueViolation reports a unique_violation (SQLSTATE 23505).
func isPostgreSQLUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// isMySQLUniqueViolation reports a duplicate entry error (MySQL error 1062).
func isMySQLUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
