package main

import (
	"context"
	"log"
	"os"

	mongorepo "github.com/giftwheel/giveaway-backend/internal/repositories/mongodb"
	"github.com/giftwheel/giveaway-backend/internal/utils"
	"github.com/giftwheel/giveaway-backend/pkg/mongodb"
	"github.com/joho/godotenv"
)

// Backfills members and purchases from an exported purchase-history CSV.
// Usage: import_purchases <file.csv>
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable is required")
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "giftwheel"
	}

	if len(os.Args) < 2 {
		log.Fatal("CSV file path is required as a command line argument")
	}
	csvFilePath := os.Args[1]

	client, err := mongodb.NewClient(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(dbName)

	importer := utils.NewCSVImporter(
		mongorepo.NewMemberRepository(db),
		mongorepo.NewPurchaseRepository(db),
	)
	result, err := importer.ImportPurchases(context.Background(), csvFilePath)
	if err != nil {
		log.Fatalf("Failed to import purchases: %v", err)
	}

	log.Printf("Import completed: %d rows, %d members created, %d members updated, %d purchases, %d entries awarded",
		result.TotalRows, result.MembersCreated, result.MembersUpdated, result.PurchasesCreated, result.EntriesAwarded)
	for _, e := range result.Errors {
		log.Printf("row error: %s", e)
	}
}
