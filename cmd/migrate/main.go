package main

import (
	"context"
	"fmt"
	"log"

	"golang-sms-dispatch/internal/adapters/db/postgres"
	"golang-sms-dispatch/internal/config"
	"golang-sms-dispatch/internal/domain"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	if conf.DatabaseURL == "" {
		log.Fatal("❌ DATABASE_URL is not set")
	}

	fmt.Println("🔗 Connecting to database...")

	repo, err := postgres.New(conf.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect: %v", err)
	}
	defer repo.Close()

	fmt.Println("✅ Connected to database")
	fmt.Println("🔄 Running migrations...")

	if err := repo.Migrate(); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	fmt.Println("✅ Migration complete!")
	fmt.Println("")
	fmt.Println("📊 Deliveries so far:")

	ctx := context.Background()
	for _, status := range []domain.Status{domain.StatusSent, domain.StatusFailed} {
		n, err := repo.CountByStatus(ctx, status)
		if err != nil {
			log.Fatalf("❌ Count failed: %v", err)
		}
		fmt.Printf("  - %s: %d\n", status, n)
	}
}
