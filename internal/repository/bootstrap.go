package repository

import (
	"log"
	"time"

	"stockroom/internal/config"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

// Open selects the storage backend once at process start. It tries the
// durable postgres store first; when the database is unreachable it falls
// back to the in-memory store so the service keeps running in an explicit
// non-persistent mode. The choice is final for the process lifetime.
func Open(cfg *config.Config) Store {
	db, err := connectPostgres(cfg)
	if err != nil {
		log.Printf("storage: database unavailable, serving from in-memory store (data will NOT persist): %v", err)
		return NewMemoryStore()
	}

	log.Println("storage: connected to postgres")
	return NewPostgresStore(db)
}
