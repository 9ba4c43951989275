package pass

import "fmt"

// assertf panics on a violated invariant of the rewrite itself (as opposed
// to a bad caller input, which is reported as an *errors.Error from Run).
// Hitting this means the tree arrived in a shape the algorithm assumed
// could never occur.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("pass: "+format, args...))
	}
}
