package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/prescreen/internal/buildinfo"
	"github.com/dmitrijs2005/prescreen/internal/logging"
	"github.com/dmitrijs2005/prescreen/internal/server"
	"github.com/dmitrijs2005/prescreen/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(os.Stdout, "json", cfg.LogLevel)

	app, err := server.NewApp(cfg, logger)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
