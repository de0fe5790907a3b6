package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/bountyboard/bountyboard-backend/internal/bootstrap"
	"github.com/bountyboard/bountyboard-backend/internal/relay"
)

var relayOnceCmd = &cli.Command{
	Name:  "relay-once",
	Usage: "deliver one batch of pending reputation events and exit",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "batch-size", Usage: "override RELAY_BATCH_SIZE"},
	},
	Action: func(cctx *cli.Context) error {
		logger := newLogger()

		relayConfig := bootstrap.RelayConfig()
		if cctx.IsSet("batch-size") {
			relayConfig.BatchSize = cctx.Int("batch-size")
		}

		store, err := bootstrap.Datastore(cctx.Context, logger, false)
		if err != nil {
			return err
		}
		defer store.Close()

		chainClient, err := bootstrap.OperatorChain(cctx.Context, logger)
		if err != nil {
			return err
		}
		defer chainClient.Close()

		r, err := relay.New(store.Outbox(), chainClient, relayConfig, logger)
		if err != nil {
			return err
		}
		result, err := r.RunOnce(cctx.Context)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cctx.App.Writer, "delivered=%d failed=%d pending=%d\n", result.Delivered, result.Failed, result.Pending)
		return err
	},
}
