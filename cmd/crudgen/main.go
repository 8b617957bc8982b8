package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"crudgen/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "crudgen:", err)
		os.Exit(1)
	}
}
