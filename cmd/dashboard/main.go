package main

import (
	"context"
	"log/slog"
	"os"

	"cardiopulse/internal/app"
	"cardiopulse/web"
)

func main() {
	ctx := context.Background()

	application, err := app.NewApplication(ctx, web.Files)
	if err != nil {
		slog.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
