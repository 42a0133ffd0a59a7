package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/hostelpower/usage-dashboard/services/dashboard/dataset"
)

// OpenMySQL opens a mariadb:// or mysql:// URL, or a native driver DSN.
func OpenMySQL(dsn string) (*sql.DB, error) {
	mysqlDSN, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

func toMySQLDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		user, pass := "", ""
		if u.User != nil {
			user = u.User.Username()
			pass, _ = u.User.Password()
		}
		host := u.Host
		name := strings.TrimPrefix(u.Path, "/")
		if user == "" || host == "" || name == "" {
			return "", fmt.Errorf("incomplete dsn (user/host/db)")
		}
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC", user, pass, host, name), nil
	}
	return dsn, nil
}

const listReadingsMySQL = `
    SELECT reading_date, room, units_consumed
    FROM readings
    ORDER BY id
`

// LoadTableMySQL reads the readings table of a MySQL/MariaDB database.
func LoadTableMySQL(ctx context.Context, db *sql.DB) (*dataset.Table, error) {
	rows, err := db.QueryContext(ctx, listReadingsMySQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	readings := make([]dataset.Reading, 0)
	for rows.Next() {
		var r dataset.Reading
		if err := rows.Scan(&r.Date, &r.Room, &r.UnitsConsumed); err != nil {
			return nil, err
		}
		readings = append(readings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dataset.NewTable(readings), nil
}
