package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"bizexpense/internal/cli"
	"bizexpense/internal/log"
)

func main() {
	ctx, cancel := cli.SignalContext(context.Background(), log.New(log.DefaultConfig()).WithComponent(log.ComponentCLI))
	defer cancel()

	root := newRootCmd(os.Stdout, os.Stderr, time.Now)
	if err := root.ExecuteContext(ctx); err != nil {
		cancel()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
