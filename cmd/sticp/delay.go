package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/urfave/cli/v2"

	"github.com/stakedicp/wallet-client/pkg/icpunits"
	"github.com/stakedicp/wallet-client/pkg/liquidity"
)

var delay = cli.Command{
	Name:  "delay",
	Usage: "estimate the withdrawal delay for an amount of ICP",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "the amount to withdraw, as a decimal ICP value",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "schedule",
			Usage: "path of a JSON file holding [[delaySeconds, available], ...] pairs; fetched from the deposits canister if omitted",
		},
	},
	Action: delayAction,
}

func delayAction(ctx *cli.Context) error {
	amount, err := icpunits.ParseE8s(ctx.String("amount"))
	if err != nil {
		return err
	}

	var schedule []liquidity.Entry
	if path := ctx.String("schedule"); path != "" {
		schedule, err = readSchedule(path)
	} else {
		schedule, err = fetchSchedule(context.Background())
	}
	if err != nil {
		return err
	}

	seconds := liquidity.EstimateDelay(schedule, amount)
	if amount > liquidity.TotalAvailable(schedule) {
		fmt.Println("note: amount exceeds available liquidity, the estimate is a lower bound")
	}
	fmt.Printf("%d seconds (%s)\n", seconds, liquidity.FormatDelay(seconds))
	return nil
}

func readSchedule(path string) ([]liquidity.Entry, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pairs [][2]uint64
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("invalid schedule file: %w", err)
	}

	schedule := make([]liquidity.Entry, 0, len(pairs))
	for _, p := range pairs {
		schedule = append(schedule, liquidity.Entry{Delay: p[0], Available: p[1]})
	}
	return schedule, nil
}
