package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/skirt/pkg/log"
	"github.com/df07/skirt/web/server"
)

var logger = log.New("web")

func main() {
	app := cli.NewApp()
	app.Name = "skirt-web"
	app.Usage = "serve rendered tiles and streamed renders over HTTP"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "port, p",
			Value: 8080,
			Usage: "port to serve on",
		},
		cli.StringFlag{
			Name:  "scenes",
			Value: "scenes",
			Usage: "directory containing YAML scene descriptions",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
	}
	app.Action = func(ctx *cli.Context) error {
		if ctx.Bool("v") {
			log.SetLevel(log.Info)
		}

		webServer := server.NewServer(ctx.Int("port"), ctx.String("scenes"))
		logger.Noticef("visit http://localhost:%d/api/scenes to list scenes", ctx.Int("port"))
		return webServer.Start()
	}

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("error starting server: %v", err)
		os.Exit(1)
	}
}
