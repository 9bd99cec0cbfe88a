package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"product-catalog/cmd/api"
	"product-catalog/cmd/notificationservice"
	"product-catalog/cmd/orderworker"
	"product-catalog/internal/cli"
	"product-catalog/internal/shared/config"
)

func main() {
	// check for help flag first
	if len(os.Args) == 2 && (os.Args[1] == "--help" || os.Args[1] == "-h") {
		cli.PrintUsage(os.Stdout)
		os.Exit(0)
	}

	mode, rest, err := cli.ParseMode(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cli.PrintUsage(os.Stderr)
		os.Exit(2)
	}
	if mode == "" || len(rest) != 0 {
		cli.PrintUsage(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}

	// context cancelled on SIGINT/SIGTERM for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch mode {
	case cli.ModeAPI:
		err = api.Run(ctx, cfg)
	case cli.ModeWorker:
		err = orderworker.Run(ctx, cfg)
	case cli.ModeNotify:
		err = notificationservice.Run(ctx, cfg)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
