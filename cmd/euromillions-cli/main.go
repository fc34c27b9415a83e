package main

import (
	"context"
	"euromillions-backend/cmd/euromillions-cli/commands"
	"euromillions-backend/lib/telemetry"
)

func main() {
	ctx := context.Background()
	telemetry.InitSlog(false)
	tel, err := telemetry.SetupFromEnv(ctx, "euromillions-cli")
	if err == nil {
		defer tel.Shutdown(ctx)
	}
	telemetry.InstrumentPerfStats(ctx)
	commands.ExecuteContext(ctx)
}
