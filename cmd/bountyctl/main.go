package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/bountyboard/bountyboard-backend/internal/bootstrap"
	"github.com/bountyboard/bountyboard-backend/internal/config"
	"github.com/bountyboard/bountyboard-backend/pkg/logging"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "bountyctl",
		Usage:   "operate the bounty board database, outbox and chain",
		Version: version,
		Before: func(_ *cli.Context) error {
			return config.Init()
		},
		Commands: []*cli.Command{
			migrateCmd,
			reputationCmd,
			relayOnceCmd,
			requestCmd,
			txStatusCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() logging.Logger {
	return bootstrap.Logger(logging.CLIProcess)
}

func printJSON(cctx *cli.Context, v interface{}) error {
	enc := json.NewEncoder(cctx.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
