package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"stockroom/internal/config"
)

const migrationsDir = "migrations"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded, relying on environment")
	}

	command := flag.String("command", "up", "Migration command: up, down, down-to, status, create")
	name := flag.String("name", "", "Migration name (required for create)")
	targetVersion := flag.Int64("version", 0, "Target version for down-to command")
	flag.Parse()

	cfg := config.Load()

	db, err := open(cfg, *command == "up")
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("migrate: set dialect: %v", err)
	}

	if err := run(db, *command, *name, *targetVersion); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func run(db *sql.DB, command, name string, targetVersion int64) error {
	switch command {
	case "up":
		if err := goose.Up(db, migrationsDir); err != nil {
			return err
		}
		log.Println("migrations applied")
	case "down":
		if err := goose.Down(db, migrationsDir); err != nil {
			return err
		}
		log.Println("last migration rolled back")
	case "down-to":
		if err := goose.DownTo(db, migrationsDir, targetVersion); err != nil {
			return err
		}
		log.Printf("rolled back to version %d", targetVersion)
	case "status":
		return goose.Status(db, migrationsDir)
	case "create":
		if name == "" {
			return errors.New("migration name is required for create")
		}
		if err := goose.Create(db, migrationsDir, name, "sql"); err != nil {
			return err
		}
		log.Printf("created migration %s", name)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}

// open connects to the configured database. On "up" a missing database is
// created first so a fresh environment bootstraps with one command.
func open(cfg *config.Config, createMissing bool) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err == nil {
		return db, nil
	}
	db.Close()

	if !createMissing || !isDatabaseMissing(err) {
		return nil, err
	}
	if err := createDatabase(cfg); err != nil {
		return nil, err
	}

	db, err = sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func isDatabaseMissing(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "3D000"
}

func createDatabase(cfg *config.Config) error {
	db, err := sql.Open("postgres", cfg.Database.DSN("postgres"))
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE %s", cfg.Database.Name)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "42P04" {
			return nil
		}
		return fmt.Errorf("create database %s: %w", cfg.Database.Name, err)
	}

	log.Printf("database %q created", cfg.Database.Name)
	return nil
}
