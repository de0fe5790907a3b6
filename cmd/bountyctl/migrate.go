package main

import (
	"github.com/urfave/cli/v2"

	"github.com/bountyboard/bountyboard-backend/internal/bootstrap"
)

var migrateCmd = &cli.Command{
	Name:  "migrate",
	Usage: "create or update the bounties, requests and reputation_events tables",
	Action: func(cctx *cli.Context) error {
		logger := newLogger()
		store, err := bootstrap.Datastore(cctx.Context, logger, true)
		if err != nil {
			return err
		}
		store.Close()
		return nil
	},
}
