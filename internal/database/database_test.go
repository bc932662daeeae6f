package database

import (
	"context"
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) *DBClient {
	t.Helper()

	dbClient, err := InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	t.Cleanup(func() { _ = dbClient.Close() })

	return dbClient
}

func TestPreferenceLifecycle(t *testing.T) {
	dbClient := setupTestDB(t)
	ctx := context.Background()

	if _, found, err := dbClient.GetPreference(ctx, "favoriteCityKey"); err != nil || found {
		t.Fatalf("expected empty table, found=%v err=%v", found, err)
	}

	if err := dbClient.SetPreference(ctx, "favoriteCityKey", "Tokyo"); err != nil {
		t.Fatalf("SetPreference failed: %v", err)
	}
	if err := dbClient.SetPreference(ctx, "favoriteCityKey", "Osaka"); err != nil {
		t.Fatalf("SetPreference overwrite failed: %v", err)
	}

	value, found, err := dbClient.GetPreference(ctx, "favoriteCityKey")
	if err != nil {
		t.Fatalf("GetPreference failed: %v", err)
	}
	if !found || value != "Osaka" {
		t.Fatalf("expected Osaka, got %q (found=%v)", value, found)
	}

	if err := dbClient.DeletePreference(ctx, "favoriteCityKey"); err != nil {
		t.Fatalf("DeletePreference failed: %v", err)
	}
	if _, found, _ := dbClient.GetPreference(ctx, "favoriteCityKey"); found {
		t.Fatal("expected preference to be deleted")
	}

	// deleting twice is fine
	if err := dbClient.DeletePreference(ctx, "favoriteCityKey"); err != nil {
		t.Fatalf("second DeletePreference failed: %v", err)
	}
}

func TestPreferencesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	first, err := InitDB(path)
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	if err := first.SetPreference(ctx, "favoriteCityKey", "Lima"); err != nil {
		t.Fatalf("SetPreference failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := InitDB(path)
	if err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}
	defer second.Close()

	value, found, err := second.GetPreference(ctx, "favoriteCityKey")
	if err != nil || !found || value != "Lima" {
		t.Fatalf("expected Lima after reopen, got %q found=%v err=%v", value, found, err)
	}
}

func TestHealthCheck(t *testing.T) {
	dbClient := setupTestDB(t)

	if err := dbClient.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}
}
