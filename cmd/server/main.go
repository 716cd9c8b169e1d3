package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/irabeny89/ebbs2022-sub000/internal/server"
	"github.com/irabeny89/ebbs2022-sub000/internal/server/config"
)

func main() {
	// Missing .env is fine: real environments set variables directly.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
