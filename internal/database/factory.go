package database

import (
	"github.com/arnavk07/mocksmith/internal/database/mysql"
	"github.com/arnavk07/mocksmith/internal/database/postgres"
	"github.com/arnavk07/mocksmith/internal/database/sqlite"
)

func NewAdapter(provider string) Adapter {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New()
	case "mysql":
		return mysql.New()
	case "sqlite", "sqlite3":
		return sqlite.New()
	default:
		return postgres.New()
	}
}
