package mysqlops

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"prover-node-mgr/config"
	clog "prover-node-mgr/utils/log"
)

func MysqlConnection(mysqlConfig *config.DBConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?parseTime=true&allowNativePasswords=true",
		mysqlConfig.User,
		mysqlConfig.Password,
		mysqlConfig.Host,
		mysqlConfig.Port,
		mysqlConfig.Database,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("mysql ping failed: %w", err)
	}

	clog.Info("MySQL connected", "addr", mysqlConfig.Addr())
	return db, nil
}
