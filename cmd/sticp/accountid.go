package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/stakedicp/wallet-client/pkg/accountid"
)

var (
	accountID = cli.Command{
		Name:      "accountid",
		Usage:     "derive the ledger account identifier of a principal",
		ArgsUsage: "<principal>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "subaccount",
				Usage: "hex-encoded 32-byte subaccount, default subaccount if omitted",
			},
		},
		Action: accountIDAction,
	}

	principal = cli.Command{
		Name:  "principal",
		Usage: "inspect principal encodings",
		Subcommands: []*cli.Command{
			{
				Name:      "decode",
				Usage:     "decode a textual principal to hex bytes",
				ArgsUsage: "<principal>",
				Action:    principalDecodeAction,
			},
			{
				Name:      "encode",
				Usage:     "encode hex bytes to a textual principal",
				ArgsUsage: "<hex>",
				Action:    principalEncodeAction,
			},
			{
				Name:      "short",
				Usage:     "shorten a principal for display",
				ArgsUsage: "<principal>",
				Action:    principalShortAction,
			},
		},
	}
)

func accountIDAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one principal argument")
	}

	var subaccount []byte
	if s := ctx.String("subaccount"); s != "" {
		decoded, err := hex.DecodeString(s)
		if err != nil {
			return fmt.Errorf("invalid subaccount: %w", err)
		}
		subaccount = decoded
	}

	id, err := accountid.FromPrincipalText(ctx.Args().First(), subaccount)
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

func principalDecodeAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one principal argument")
	}
	raw, err := accountid.DecodePrincipal(ctx.Args().First())
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(raw))
	return nil
}

func principalEncodeAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one hex argument")
	}
	raw, err := hex.DecodeString(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	fmt.Println(accountid.EncodePrincipal(raw))
	return nil
}

func principalShortAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one principal argument")
	}
	fmt.Println(accountid.ShortPrincipal(ctx.Args().First()))
	return nil
}
