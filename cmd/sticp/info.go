package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/stakedicp/wallet-client/internal/config"
	"github.com/stakedicp/wallet-client/internal/core/ports"
	"github.com/stakedicp/wallet-client/internal/infrastructure/agent"
	"github.com/stakedicp/wallet-client/pkg/liquidity"
)

var (
	rate = cli.Command{
		Name:   "rate",
		Usage:  "print the current stICP to ICP exchange rate",
		Action: rateAction,
	}

	liquidityCmd = cli.Command{
		Name:   "liquidity",
		Usage:  "print the deposits canister's liquidity schedule",
		Action: liquidityAction,
	}
)

func rateAction(ctx *cli.Context) error {
	actor, err := depositsActor(context.Background())
	if err != nil {
		return err
	}

	raw, err := actor.Call(context.Background(), "exchangeRate", nil)
	if err != nil {
		return err
	}
	printRespJSON(raw)
	return nil
}

func liquidityAction(ctx *cli.Context) error {
	actor, err := depositsActor(context.Background())
	if err != nil {
		return err
	}

	schedule, err := fetchScheduleFrom(context.Background(), actor)
	if err != nil {
		return err
	}

	for _, entry := range schedule {
		fmt.Printf("%12d e8s available within %s\n",
			entry.Available, liquidity.FormatDelay(entry.Delay))
	}
	fmt.Printf("%12d e8s total\n", liquidity.TotalAvailable(schedule))
	return nil
}

func fetchSchedule(ctx context.Context) ([]liquidity.Entry, error) {
	actor, err := depositsActor(ctx)
	if err != nil {
		return nil, err
	}
	return fetchScheduleFrom(ctx, actor)
}

func fetchScheduleFrom(ctx context.Context, actor ports.Actor) ([]liquidity.Entry, error) {
	raw, err := actor.Call(ctx, "availableLiquidityGraph", nil)
	if err != nil {
		return nil, err
	}
	var pairs [][2]uint64
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, fmt.Errorf("decoding liquidity schedule: %w", err)
	}

	schedule := make([]liquidity.Entry, 0, len(pairs))
	for _, p := range pairs {
		schedule = append(schedule, liquidity.Entry{Delay: p[0], Available: p[1]})
	}
	return schedule, nil
}

func depositsActor(ctx context.Context) (ports.Actor, error) {
	if err := config.InitConfig(); err != nil {
		return nil, err
	}

	factory := agent.NewFactory(
		config.GetString(config.HostKey), config.GetBool(config.DevKey),
	)
	return factory.CreateActor(ctx, ports.ActorConfig{
		CanisterID: config.GetString(config.DepositsCanisterKey),
		Interface: ports.InterfaceDescription{
			Name:    "deposits",
			Methods: []string{"availableLiquidityGraph", "exchangeRate"},
		},
	})
}

func printRespJSON(raw json.RawMessage) {
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		fmt.Println(string(raw))
		return
	}
	pretty, _ := json.MarshalIndent(out, "", "\t")
	fmt.Println(string(pretty))
}
