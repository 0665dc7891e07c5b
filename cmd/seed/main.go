package main

import (
	"flag"
	"log"

	"github.com/oggyb/muzz-matching/internal/config"
	"github.com/oggyb/muzz-matching/internal/db"
)

func main() {
	users := flag.Int("users", db.DefaultSeedUsers, "number of user ids to generate swipes for")
	flag.Parse()

	// Load configuration
	cfg := config.New()

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}

	if err := db.SeedTestData(database, *users); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	log.Printf("Seeding completed for %d users.", *users)
}
