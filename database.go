package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	godotenv.Load()

	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "schedule.db"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open database %s: %v", path, err)
	}

	DB = db

	// Migrate all models
	if err := DB.AutoMigrate(&Leader{}, &Activity{}); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	log.Printf("database ready at %s", path)
}
