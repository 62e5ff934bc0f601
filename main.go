package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var notifier *Notifier

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, using system environment variables")
	}
}

func main() {

	// Load .env variables
	LoadEnv()

	// Connect DB
	InitDB()

	// Background upcoming-activity sweep
	notifier = NewNotifier()
	notifier.Start()

	// Start Gin
	r := gin.Default()

	// CORS
	r.Use(CORSMiddleware())

	// Routes
	SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		log.Printf("server running on http://localhost:%s", port)
		if err := r.Run(":" + port); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	// Block until interrupted, then stop the notifier cleanly.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("signal %s received, shutting down", sig)
	notifier.Stop()
}
