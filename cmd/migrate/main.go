package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"bilim-chat/config"
	"bilim-chat/pkg/database"
)

const usage = `
Bilim Chat - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Run all migrations (GORM + SQL constraints)
  status      Show database connection status and row counts
  seed-dev    Seed with development data
  truncate    Delete every row from all tables (DANGEROUS)

Flags:
  -migrations string   Path to migrations directory (default from MIGRATIONS_DIR)

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go seed-dev
`

func main() {
	cfg := config.LoadConfig()

	migrationsDir := flag.String("migrations", cfg.MigrationsDir, "Path to migrations directory")
	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer database.Close(db)

	ctx := context.Background()

	switch command := flag.Arg(0); command {
	case "up":
		log.Println("Running migrations...")
		if err := database.RunFullMigration(db, *migrationsDir); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations completed")
	case "status":
		if err := database.HealthCheck(ctx, db); err != nil {
			log.Fatalf("Database connection failed: %v", err)
		}
		log.Println("Database connection: OK")
		for _, table := range []string{"users", "chats", "messages"} {
			if !database.TableExists(db, table) {
				log.Printf("Table %-10s does not exist", table)
				continue
			}
			count, err := database.GetTableCount(db, table)
			if err != nil {
				log.Printf("Table %-10s count failed: %v", table, err)
				continue
			}
			log.Printf("Table %-10s exists (%d rows)", table, count)
		}
	case "seed-dev":
		result, err := database.SeedDevelopment(ctx, db)
		if err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		log.Printf("Seeded %d users, %d chats, %d messages", len(result.Users), len(result.Chats), len(result.Messages))
	case "truncate":
		log.Println("WARNING: deleting all rows")
		if err := database.TruncateAllTables(db); err != nil {
			log.Fatalf("Truncate failed: %v", err)
		}
		log.Println("All tables truncated")
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}
