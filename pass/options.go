package pass

import (
	"go.uber.org/zap"

	"github.com/wippyai/wasm-blockmerge/effects"
)

// Options configures a Pass.
type Options struct {
	// Analyzer decides side effects and reordering safety. Defaults to
	// effects.Reference{} when nil.
	Analyzer effects.Analyzer

	// Logger receives structured diagnostics about rewrites performed.
	// Defaults to the package logger (a no-op) when nil.
	Logger *zap.Logger

	// Workers bounds how many functions a RunModule call transforms
	// concurrently. Zero or negative means runtime.GOMAXPROCS(0).
	Workers int
}

func (o Options) analyzer() effects.Analyzer {
	if o.Analyzer != nil {
		return o.Analyzer
	}
	return effects.Reference{}
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return Logger()
}
