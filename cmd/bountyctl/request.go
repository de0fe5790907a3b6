package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/bountyboard/bountyboard-backend/internal/lifecycle"
)

var requestCmd = &cli.Command{
	Name:  "request",
	Usage: "inspect commission requests",
	Subcommands: []*cli.Command{
		{
			Name:      "inspect",
			Usage:     "print a request with its bounty",
			ArgsUsage: "<request id>",
			Action: func(cctx *cli.Context) error {
				if cctx.NArg() != 1 {
					return fmt.Errorf("expected exactly one request id")
				}
				return withCoordinator(cctx, func(c *lifecycle.Coordinator) error {
					request, err := c.GetRequest(cctx.Context, cctx.Args().First())
					if err != nil {
						return err
					}
					return printJSON(cctx, request)
				})
			},
		},
		{
			Name:  "list",
			Usage: "list requests by supporter or by creator",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "supporter", Usage: "supporter wallet address"},
				&cli.StringFlag{Name: "creator", Usage: "creator wallet address"},
			},
			Action: func(cctx *cli.Context) error {
				supporter, creator := cctx.String("supporter"), cctx.String("creator")
				if (supporter == "") == (creator == "") {
					return fmt.Errorf("exactly one of --supporter or --creator is required")
				}
				return withCoordinator(cctx, func(c *lifecycle.Coordinator) error {
					if supporter != "" {
						requests, err := c.ListRequestsBySupporter(cctx.Context, supporter)
						if err != nil {
							return err
						}
						return printJSON(cctx, requests)
					}
					requests, err := c.ListRequestsByCreator(cctx.Context, creator)
					if err != nil {
						return err
					}
					return printJSON(cctx, requests)
				})
			},
		},
	},
}
