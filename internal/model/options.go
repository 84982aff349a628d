// Package model holds the plain data types shared between the adapters,
// the analysis domain and the UI controllers.
package model

import "errors"

// Path represents a file system path.
type Path string

// ErrConflictingFilters is returned when both variable filters are enabled
// at once; restricting the statistics to formal parameters and to local
// variables at the same time would leave nothing to score.
var ErrConflictingFilters = errors.New(
	"incompatible arguments: specifying both --only-formal-parameters and --only-variables is not allowed")

// Options selects which debug entries contribute to the statistics. The
// struct is built once from the command line and never mutated afterwards;
// the walker and scorer only ever read it.
type Options struct {
	// OnlyFormalParameters restricts scoring to formal-parameter entries.
	OnlyFormalParameters bool
	// OnlyVariables restricts scoring to local-variable entries.
	OnlyVariables bool
	// IgnoreInlined skips entire inlined-subroutine subtrees.
	IgnoreInlined bool
	// IgnoreEntryValues excludes entry-value location intervals from
	// coverage sums.
	IgnoreEntryValues bool
}

// Validate reports configuration conflicts. It must be called before any
// input file is opened.
func (o Options) Validate() error {
	if o.OnlyFormalParameters && o.OnlyVariables {
		return ErrConflictingFilters
	}

	return nil
}
