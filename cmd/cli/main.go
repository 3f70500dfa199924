package main

import (
	"context"
	"log"
	"os"

	"github.com/prestoapp/presto-server/internal/buildinfo"
	"github.com/prestoapp/presto-server/internal/client/cli"
	"github.com/prestoapp/presto-server/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
