package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "sticp CLI"
	app.Usage = "command line interface for the staking wallet client"
	app.Commands = append(
		app.Commands,
		&format,
		&parse,
		&accountID,
		&principal,
		&delay,
		&rate,
		&liquidityCmd,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[sticp] %v\n", err)
	os.Exit(1)
}
