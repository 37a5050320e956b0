package main

import (
	"fmt"
	"math/big"

	"github.com/urfave/cli/v2"

	"github.com/stakedicp/wallet-client/pkg/icpunits"
)

var (
	format = cli.Command{
		Name:      "format",
		Usage:     "render a base-unit amount as a decimal string",
		ArgsUsage: "<amount>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "decimals",
				Usage: "number of decimal places of the token",
				Value: icpunits.Decimals,
			},
			&cli.BoolFlag{
				Name:  "pad",
				Usage: "keep trailing zeros up to the full precision",
			},
		},
		Action: formatAction,
	}

	parse = cli.Command{
		Name:      "parse",
		Usage:     "parse a decimal string into a base-unit amount",
		ArgsUsage: "<value>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "decimals",
				Usage: "number of decimal places of the token",
				Value: icpunits.Decimals,
			},
		},
		Action: parseAction,
	}
)

func formatAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one amount argument")
	}
	amount, ok := new(big.Int).SetString(ctx.Args().First(), 10)
	if !ok {
		return fmt.Errorf("invalid amount %q", ctx.Args().First())
	}

	decimals := ctx.Int("decimals")
	if ctx.Bool("pad") {
		fmt.Println(icpunits.FormatPadded(amount, decimals))
		return nil
	}
	fmt.Println(icpunits.Format(amount, decimals))
	return nil
}

func parseAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one value argument")
	}

	amount, err := icpunits.Parse(ctx.Args().First(), ctx.Int("decimals"))
	if err != nil {
		return err
	}
	fmt.Println(amount.String())
	return nil
}
