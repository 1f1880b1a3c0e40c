package main

import (
	"fmt"
	"log"
	"os"

	"codeberg.org/docqa/server/internal/auth"
	"github.com/joho/godotenv"
)

func main() {
	// load environment
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/gen_download_token.go <report_id>")
		fmt.Println("Example: go run scripts/gen_download_token.go comparison_report_20250101_120000")
		os.Exit(1)
	}

	reportID := os.Args[1]

	secret := os.Getenv("REPORT_TOKEN_SECRET")
	if secret == "" {
		log.Fatal("REPORT_TOKEN_SECRET not set")
	}

	token, err := auth.GenerateDownloadToken(secret, reportID)
	if err != nil {
		log.Fatalf("Failed to generate download token: %v", err)
	}

	fmt.Printf("\n🔑 Download token for %s:\n%s\n\n", reportID, token)
	fmt.Printf("Fetch the report with:\ncurl -o report.pdf \"http://localhost:8080/api/v1/reports/%s/download?token=%s\"\n", reportID, token)
}
