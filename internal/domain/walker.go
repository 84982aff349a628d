// Package domain implements the debug-location coverage analysis: a
// depth-first walk of the debug-entry tree that scores every variable and
// formal parameter against its innermost enclosing scope.
package domain

import (
	m "github.com/mouse-blink/locov/internal/model"
)

// AnalyzeDebugInfo runs the coverage walk over every compile unit of one
// binary and returns the filled histogram. Each binary gets its own
// histogram; nothing carries over between calls.
func AnalyzeDebugInfo(info *m.DebugInfo, opts m.Options) m.Histogram {
	var hist m.Histogram

	for _, unit := range info.Units {
		if unit.Root == nil {
			continue
		}

		collectStats(unit.Root, 0, 0, opts, &hist)
	}

	return hist
}

// collectStats recurses depth-first through the entry tree. Entering a
// function, inlined instance or lexical block replaces the scope context;
// variables and parameters are scored against the scope in effect when
// they are reached. Every other tag passes the context through unchanged,
// so a compile-unit root starts its functions from a zero-byte scope.
func collectStats(entry *m.DebugEntry, scopeLowPC, bytesInScope uint64, opts m.Options, hist *m.Histogram) {
	switch entry.Tag {
	case m.TagSubprogram, m.TagInlinedSubroutine, m.TagLexicalBlock:
		// Forward declarations carry no code and produce no statistics.
		if entry.Declaration {
			return
		}

		// An entry with DW_AT_inline is the abstract template of an
		// inlined routine, not an instance of it; its variables have no
		// addresses to measure.
		if entry.Inline {
			return
		}

		if opts.IgnoreInlined && entry.Tag == m.TagInlinedSubroutine {
			return
		}

		// A failed range lookup means the scope's extent is unknown.
		if entry.BadRanges {
			return
		}

		bytesInScope = entry.ScopeBytes()
		scopeLowPC = entry.ScopeLowPC()

	case m.TagVariable, m.TagFormalParameter:
		scoreEntry(entry, bytesInScope, opts, hist)
	}

	for _, child := range entry.Children {
		collectStats(child, scopeLowPC, bytesInScope, opts, hist)
	}
}
