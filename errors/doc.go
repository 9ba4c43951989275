// Package errors provides structured error types for the blockmerge library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseSetup, errors.KindInvalidInput).
//		Detail("EffectAnalyzer must not be nil").
//		Build()
//
// Or use a convenience constructor:
//
//	err := errors.InvalidInput(errors.PhaseSetup, "EffectAnalyzer must not be nil")
//
// All errors implement the standard error interface and support errors.Is.
//
// Within this module the only errors raised are PhaseValidate/KindNilPointer
// errors for a nil function body (pass.Run) or a nil module
// (pass.RunModule); Options are never rejected. The pass itself has no recoverable error
// modes once it starts rewriting a well-typed function body; violations
// discovered mid-rewrite are programming errors in the caller and are
// reported by assertion (see pass.assertf), not by this package.
package errors
