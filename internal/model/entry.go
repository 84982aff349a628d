package model

// Tag classifies a debug entry. Only the tags the analysis distinguishes
// get their own value; everything else is TagOther.
type Tag int

// Recognized debug entry tags.
const (
	TagOther Tag = iota
	TagCompileUnit
	TagSubprogram
	TagInlinedSubroutine
	TagLexicalBlock
	TagVariable
	TagFormalParameter
	TagSubroutineType
)

// AddressRange is one contiguous program-counter interval of a scope.
type AddressRange struct {
	Low  uint64
	High uint64
}

// Width returns the byte width of the range. Inverted ranges (High < Low)
// are malformed producer output and contribute nothing.
func (r AddressRange) Width() uint64 {
	if r.High < r.Low {
		return 0
	}

	return r.High - r.Low
}

// LocationEntry is one interval of a location list: the program-counter
// window during which the raw expression describes the variable.
type LocationEntry struct {
	Begin uint64
	End   uint64
	Expr  []byte
	// EntryValue is true when Expr contains a DW_OP_entry_value or
	// DW_OP_GNU_entry_value operation. Detected once while the tree is
	// built so the scorer never has to decode expressions.
	EntryValue bool
}

// Width returns the byte width of the interval.
func (e LocationEntry) Width() uint64 {
	if e.End < e.Begin {
		return 0
	}

	return e.End - e.Begin
}

// Location is the decoded DW_AT_location attribute of a variable or
// parameter. Exactly one representation applies: a single expression that
// is assumed to cover the whole scope, or a list of covered intervals.
type Location struct {
	// List holds the resolved location-list intervals when IsList is true.
	// A nil List with IsList set means the list offset could not be
	// resolved; the entry then counts as uncovered rather than failing the
	// analysis.
	List   []LocationEntry
	Expr   []byte
	IsList bool
}

// DebugEntry is a read-only node of the debug information tree. It is
// built once per binary by the adapter layer and never mutated by the
// analysis.
type DebugEntry struct {
	Tag  Tag
	Name string

	Declaration bool
	Artificial  bool
	External    bool
	Inline      bool
	ConstValue  bool

	Location *Location
	Ranges   []AddressRange
	// LowPC is the DW_AT_low_pc attribute, used as the scope anchor when
	// the entry carries no ranges.
	LowPC uint64
	// BadRanges marks an entry whose address-range lookup failed. The
	// walker skips such scopes entirely, mirroring how damaged range data
	// yields no statistics rather than an aborted run.
	BadRanges bool

	Parent   *DebugEntry
	Children []*DebugEntry
}

// ScopeBytes returns the total byte width of the entry's address ranges.
func (e *DebugEntry) ScopeBytes() uint64 {
	var total uint64
	for _, r := range e.Ranges {
		total += r.Width()
	}

	return total
}

// ScopeLowPC returns the first range's low address, falling back to the
// low-pc attribute for range-less entries.
func (e *DebugEntry) ScopeLowPC() uint64 {
	if len(e.Ranges) > 0 {
		return e.Ranges[0].Low
	}

	return e.LowPC
}

// Unit is one compile unit of a binary's debug information.
type Unit struct {
	Name string
	Root *DebugEntry
	// AddrSize is the unit's address byte size, needed to decode address
	// operands inside location expressions.
	AddrSize int
}

// DebugInfo is the parsed debug information of one binary.
type DebugInfo struct {
	Path  Path
	Units []Unit
}
