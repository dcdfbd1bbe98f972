//go:build integration

package sheets

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"
)

// Integration tests require real Google Sheets credentials
// Run with: go test -tags=integration ./internal/store/sheets

func TestIntegration_SheetsFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	spreadsheetID := os.Getenv("GOOGLE_SPREADSHEET_ID")
	if spreadsheetID == "" {
		t.Skip("GOOGLE_SPREADSHEET_ID not set, skipping integration test")
	}
	if os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON") == "" && os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE") == "" {
		t.Skip("service account credentials not configured, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := New(ctx, Config{
		SpreadsheetID:      spreadsheetID,
		ComplaintsSheet:    os.Getenv("GOOGLE_COMPLAINTS_SHEET"),
		CategoriesSheet:    os.Getenv("GOOGLE_CATEGORIES_SHEET"),
		CategoriesHeader:   os.Getenv("GOOGLE_CATEGORIES_HEADER") == "true",
		ServiceAccountJSON: os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"),
		ServiceAccountFile: os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"),
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	t.Run("ListSubmissions", func(t *testing.T) {
		subs, err := client.ListSubmissions(ctx)
		if err != nil {
			t.Fatalf("Failed to read complaints: %v", err)
		}
		t.Logf("Found %d submissions", len(subs))
	})

	t.Run("AppendAndListCategories", func(t *testing.T) {
		before, err := client.ListCategories(ctx)
		if err != nil {
			t.Fatalf("Failed to read categories: %v", err)
		}
		label := fmt.Sprintf("it-%d", time.Now().UnixNano())
		if err := client.AppendCategory(ctx, label); err != nil {
			t.Fatalf("Failed to append category: %v", err)
		}
		after, err := client.ListCategories(ctx)
		if err != nil {
			t.Fatalf("Failed to re-read categories: %v", err)
		}
		if len(after) != len(before)+1 || after[len(after)-1] != label {
			t.Errorf("expected %q appended at the end, got %v", label, after)
		}
	})
}
