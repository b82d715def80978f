package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pycst/internal/trace"
)

// setupTracing inspects trace-related flags and initializes the tracer.
// It returns a cleanup function and an error if initialization fails.
func setupTracing(cmd *cobra.Command) (func(), error) {
	traceOutput := viper.GetString("trace")

	level, err := trace.ParseLevel(viper.GetString("trace-level"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid trace level")
	}

	// --trace без уровня означает phase
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	mode, err := trace.ParseMode(viper.GetString("trace-mode"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid trace mode")
	}
	format, err := trace.ParseFormat(viper.GetString("trace-format"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid trace format")
	}

	heartbeatInterval := viper.GetDuration("trace-heartbeat")
	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   viper.GetInt("trace-ring-size"),
		Session:    state.session,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tracer")
	}
	state.log.Info().Str("level", level.String()).Str("mode", mode.String()).
		Str("output", valueOr(traceOutput, "stderr")).Msg("tracing enabled")

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)

	stopHeartbeat := trace.StartHeartbeat(tracer, heartbeatInterval)

	cleanup := func() {
		stopHeartbeat()
		if ring := trace.RingOf(tracer); ring != nil && mode == trace.ModeRing {
			ring.Dump(cmd.ErrOrStderr(), format)
		}
		if err := tracer.Flush(); err != nil {
			state.log.Error().Err(err).Msg("trace flush")
		}
		if err := tracer.Close(); err != nil {
			state.log.Error().Err(err).Msg("trace close")
		}
	}
	return cleanup, nil
}
