package main

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB points the global DB at a fresh sqlite file in a temp dir.
func setupTestDB(t *testing.T) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&Leader{}, &Activity{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	DB = db
}

func uintPtr(v uint) *uint { return &v }

// mustCreateLeader is a shorthand for tests that need a leader to exist.
func mustCreateLeader(t *testing.T, name string) *Leader {
	t.Helper()
	leader, err := CreateLeader(name)
	if err != nil {
		t.Fatalf("failed to create leader %q: %v", name, err)
	}
	return leader
}

// mustCreateActivity inserts an activity and fails the test on rejection.
func mustCreateActivity(t *testing.T, a Activity) Activity {
	t.Helper()
	if err := CreateActivity(&a); err != nil {
		t.Fatalf("failed to create activity: %v", err)
	}
	return a
}
