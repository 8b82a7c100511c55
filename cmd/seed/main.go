package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"mentorlink/internal/config"
	"mentorlink/internal/database/migration"
	"mentorlink/internal/database/postgres"
	"mentorlink/internal/database/seeder"
)

func main() {
	skipReset := flag.Bool("skip-reset", false, "keep existing rows instead of wiping the database first")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	runner := migration.Runner{Dir: os.Getenv("MIGRATIONS_DIR")}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	seeders := seeder.Defaults()
	if *skipReset {
		filtered := seeders[:0]
		for _, s := range seeders {
			if _, ok := s.(seeder.ResetSeeder); ok {
				continue
			}
			filtered = append(filtered, s)
		}
		seeders = filtered
	}

	if err := (seeder.Runner{Seeders: seeders}).Run(ctx, db); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("database seeded")
}
