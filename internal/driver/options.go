package driver

import (
	"pycst/internal/metrics"
	"pycst/internal/observ"
	"pycst/internal/parser"
	"pycst/internal/project"
)

// Options configures tokenizing and parsing in the driver.
type Options struct {
	MaxDiagnostics int
	Parse          project.ParseConfig
	Check          project.CheckConfig
	Jobs           int  // <= 0: GOMAXPROCS
	KeepTrees      bool // keep *cst.Module in FileResult; off for plain checks

	Cache    *ParseCache      // nil: no cache
	Metrics  *metrics.Metrics // nil: no metrics
	Timer    *observ.Timer    // nil: no timings
	Observer Observer         // nil: no progress events
}

// OptionsFrom fills parse, check and diagnostics settings from cfg.
func OptionsFrom(cfg project.Config) Options {
	return Options{
		MaxDiagnostics: cfg.Diagnostics.Max,
		Parse:          cfg.Parse,
		Check:          cfg.Check,
		Jobs:           cfg.Check.Jobs,
	}
}

func (o *Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

func (o *Options) parserOptions() parser.Options {
	return parser.Options{
		MaxDepth: o.Parse.MaxDepth,
		TabSize:  o.Parse.TabSize,
	}
}
