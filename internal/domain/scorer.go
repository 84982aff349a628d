package domain

import (
	m "github.com/mouse-blink/locov/internal/model"
)

// scoreEntry computes one variable's or parameter's coverage percentage
// and files it into the histogram. Excluded entries leave the histogram
// untouched.
func scoreEntry(entry *m.DebugEntry, bytesInScope uint64, opts m.Options, hist *m.Histogram) {
	if entry.Tag == m.TagVariable && opts.OnlyFormalParameters {
		return
	}
	if entry.Tag == m.TagFormalParameter && opts.OnlyVariables {
		return
	}

	// Declarations and compiler-generated variables have nothing the user
	// could inspect in a debugger.
	if entry.Declaration || entry.Artificial {
		return
	}

	// Extern declarations without a location have no storage to measure.
	if entry.External && entry.Location == nil {
		return
	}

	// A parameter of a subroutine type belongs to a type signature, not to
	// code, so there is no scope to measure it against.
	if entry.Tag == m.TagFormalParameter &&
		entry.Parent != nil && entry.Parent.Tag == m.TagSubroutineType {
		return
	}

	hist.Record(coverageFor(entry, bytesInScope, opts))
}

func coverageFor(entry *m.DebugEntry, bytesInScope uint64, opts m.Options) float64 {
	// A compile-time constant is always available. This catches constant
	// members as well as variables.
	if entry.ConstValue {
		return 100
	}

	if entry.Location == nil {
		return 0
	}

	if !entry.Location.IsList {
		// A single location expression is assumed to cover the entire
		// scope; without a list there is nothing finer to measure.
		return 100
	}

	var covered uint64
	for _, le := range entry.Location.List {
		if opts.IgnoreEntryValues && le.EntryValue {
			continue
		}

		covered += le.Width()
	}

	// A list summing past the scope width is producer damage; clamp
	// rather than reject.
	if covered > bytesInScope {
		covered = bytesInScope
	}

	if bytesInScope == 0 {
		return 0
	}

	return 100 * float64(covered) / float64(bytesInScope)
}
