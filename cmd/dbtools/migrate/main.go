// cmd/dbtools/migrate/main.go
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aikya/companion/internal/db"
)

func main() {
	var (
		dbPath  = flag.String("db", "", "Path to SQLite database")
		command = flag.String("command", "", "Command to run (up, down, version)")
		steps   = flag.Int("steps", 1, "Number of migrations to roll back with down")
	)
	flag.Parse()

	if *dbPath == "" || *command == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	sqlDB, err := sql.Open("sqlite3", *dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer sqlDB.Close()

	// Execute command
	switch *command {
	case "up":
		if err := db.RunMigrations(sqlDB); err != nil {
			log.Fatalf("Migration up failed: %v", err)
		}
	case "down":
		if err := db.RollbackMigrations(sqlDB, *steps); err != nil {
			log.Fatalf("Migration down failed: %v", err)
		}
	case "version":
	default:
		log.Fatalf("Unknown command: %s", *command)
	}

	version, dirty, err := db.MigrationVersion(sqlDB)
	if err != nil {
		log.Fatalf("Get version failed: %v", err)
	}
	fmt.Printf("Version: %d, Dirty: %v\n", version, dirty)
}
