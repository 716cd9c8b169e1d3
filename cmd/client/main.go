package main

import (
	"context"
	"log"

	"github.com/irabeny89/ebbs2022-sub000/internal/client/cli"
	"github.com/irabeny89/ebbs2022-sub000/internal/client/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}
