package main

import (
	"context"
	"flag"
	"log"

	"trackhub/pkg/config"
	"trackhub/pkg/database/postgresql"
	"trackhub/seeders"
)

func main() {
	runDictionaries := flag.Bool("dictionaries", false, "seed the reference tables (types, statuses, outcomes)")
	runUsers := flag.Bool("users", false, "seed demo accounts")
	runEquipment := flag.Bool("equipment", false, "seed demo locations and equipment")
	runAll := flag.Bool("all", false, "run every seeder")
	flag.Parse()

	if !*runDictionaries && !*runUsers && !*runEquipment && !*runAll {
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	ctx := context.Background()

	pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if *runAll || *runDictionaries {
		if err := seeders.SeedDictionaries(ctx, pool); err != nil {
			log.Fatalf("dictionaries: %v", err)
		}
		log.Println("dictionaries seeded")
	}

	if *runAll || *runUsers {
		if err := seeders.SeedUsers(ctx, pool); err != nil {
			log.Fatalf("users: %v", err)
		}
		log.Println("users seeded")
	}

	if *runAll || *runEquipment {
		if err := seeders.SeedLocations(ctx, pool); err != nil {
			log.Fatalf("locations: %v", err)
		}
		if err := seeders.SeedEquipments(ctx, pool); err != nil {
			log.Fatalf("equipment: %v", err)
		}
		log.Println("locations and equipment seeded")
	}
}
