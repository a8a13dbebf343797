package logging

import (
	"log/slog"
	"os"
)

// Setup initializes the global slog logger with JSON output to stdout.
func Setup() {
	slog.SetDefault(slog.New(stdoutHandler()))
}

// AttachSink keeps stdout logging and also routes ERROR+ records to pg.
func AttachSink(pg *PGHandler) {
	slog.SetDefault(slog.New(NewMultiHandler(stdoutHandler(), pg)))
}

func stdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}
