package main

import (
	"context"
	"database/sql"
	"delivery-zone-service/internal/adapters/repositories"
	"delivery-zone-service/internal/config"
	"delivery-zone-service/internal/platform/db"
	"log"
	"os"
	"strings"
)

func main() {
	config.LoadDotEnv()

	ctx := context.Background()

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	dbPath := config.Get("DB_PATH", "data/stores.db")
	if databaseURL == "" {
		log.Printf("DATABASE_URL not set; using sqlite at %s", dbPath)
	}

	database, err := db.Open(ctx, databaseURL, dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/stores.json")
	if err := initAndSeed(ctx, database, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, database *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, database); err != nil {
		return err
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	if err := repositories.SeedFromJSON(ctx, database, seedPath); err != nil {
		return err
	}
	log.Println("Seeding complete.")

	return nil
}
