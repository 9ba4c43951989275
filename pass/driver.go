package pass

import (
	"runtime"
	"sync"

	"go.uber.org/zap"

	pkgerrors "github.com/wippyai/wasm-blockmerge/errors"
	"github.com/wippyai/wasm-blockmerge/ir"
)

// RunModule transforms every function in mod concurrently. Functions share
// no mutable state with each other (each owns its own body tree), so they
// are safe to rewrite in parallel; only the fan-out itself is synchronized.
//
// If any function's rewrite fails, RunModule returns the first error seen
// but still lets every in-flight function finish, so a partial module is
// never left half-transformed mid-function.
func RunModule(mod *ir.Module, opts Options) error {
	if mod == nil {
		return pkgerrors.NilPointer(pkgerrors.PhaseValidate, []string{"module"}, "module must not be nil")
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := New(opts)
	log := opts.logger()

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, fn := range mod.Functions {
		fn := fn
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			log.Debug("running block merge", zap.String("function", fn.Name))
			if err := p.Run(fn.Body); err != nil {
				log.Warn("block merge failed", zap.String("function", fn.Name), zap.Error(err))
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return firstErr
}
