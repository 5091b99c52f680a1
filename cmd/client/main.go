package main

import (
	"context"
	"log"

	"github.com/mkazymov/dealerdesk/internal/client/cli"
	"github.com/mkazymov/dealerdesk/internal/client/config"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()
	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
