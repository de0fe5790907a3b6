package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/bountyboard/bountyboard-backend/internal/bootstrap"
	"github.com/bountyboard/bountyboard-backend/internal/lifecycle"
	"github.com/bountyboard/bountyboard-backend/pkg/logging"
)

// withCoordinator runs fn against a coordinator wired like the api process, without pinning or notification
func withCoordinator(cctx *cli.Context, fn func(*lifecycle.Coordinator) error) error {
	logger := newLogger()

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

	notifier := lifecycle.NewDirectNotifier(chainClient, logging.NewNoOpLogger())
	return fn(lifecycle.NewCoordinator(store, chainClient, nil, notifier, logger))
}

var reputationCmd = &cli.Command{
	Name:      "reputation",
	Usage:     "print a creator's on-chain reputation",
	ArgsUsage: "<creator address>",
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 1 {
			return fmt.Errorf("expected exactly one creator address")
		}
		return withCoordinator(cctx, func(c *lifecycle.Coordinator) error {
			rep, err := c.GetReputation(cctx.Context, cctx.Args().First())
			if err != nil {
				return err
			}
			return printJSON(cctx, rep)
		})
	},
}

var txStatusCmd = &cli.Command{
	Name:      "tx-status",
	Usage:     "print the status and receipt of a transaction",
	ArgsUsage: "<tx hash>",
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 1 {
			return fmt.Errorf("expected exactly one transaction hash")
		}
		return withCoordinator(cctx, func(c *lifecycle.Coordinator) error {
			status, err := c.TransactionStatus(cctx.Context, cctx.Args().First())
			if err != nil {
				return err
			}
			return printJSON(cctx, status)
		})
	},
}
