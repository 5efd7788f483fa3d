package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/glex/cli"
	"github.com/ardnew/glex/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Error(
			"glex failed",
			slog.Any("error", err),
		) // slog automatically uses LogValue()
		os.Exit(1)
	}
}
