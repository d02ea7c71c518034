package mysqlops

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	clog "prover-node-mgr/utils/log"
)

// ExecQuery runs a statement that returns no result set (INSERT, UPDATE,
// DELETE).
func ExecQuery(db *sql.DB, query string, args ...interface{}) (sql.Result, error) {
	result, err := db.Exec(query, args...)
	if err != nil {
		clog.Error("Query execution failed", "query", query, "args", args, "err", err)
		return nil, fmt.Errorf("query execution failed: %w", err)
	}

	return result, nil
}

// SelectQueryRowsToStructs scans all result rows into T, mapping columns to
// struct fields by `db` tag or field name (case-insensitive). Columns with
// no matching field are discarded.
func SelectQueryRowsToStructs[T any](db *sql.DB, query string, args ...interface{}) ([]T, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		clog.Error("Query failed", "query", query, "args", args, "err", err)
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []T
	for rows.Next() {
		var obj T
		objVal := reflect.ValueOf(&obj).Elem()
		objType := objVal.Type()

		fieldMap := make(map[string]reflect.Value)
		for i := 0; i < objType.NumField(); i++ {
			field := objType.Field(i)
			colName := field.Tag.Get("db")
			if colName == "" {
				colName = field.Name
			}
			fieldMap[strings.ToLower(colName)] = objVal.Field(i)
		}

		fields := make([]interface{}, len(columns))
		for i, col := range columns {
			if f, ok := fieldMap[strings.ToLower(col)]; ok && f.CanSet() {
				fields[i] = f.Addr().Interface()
			} else {
				var dummy interface{}
				fields[i] = &dummy
			}
		}

		if err := rows.Scan(fields...); err != nil {
			return nil, err
		}
		results = append(results, obj)
	}

	return results, rows.Err()
}
