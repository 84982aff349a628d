package adapter

import (
	"debug/dwarf"

	m "github.com/mouse-blink/locov/internal/model"
)

// buildDebugInfo walks the DWARF entry stream into one model tree per
// compile unit. Damage confined to a single entry (bad ranges, an
// unresolvable location-list offset) degrades that entry instead of
// failing the binary; a broken entry stream simply ends the walk with
// whatever was read so far.
func buildDebugInfo(path m.Path, obj *objectData) (*m.DebugInfo, error) {
	info := &m.DebugInfo{Path: path}

	r := obj.dwarf.Reader()

	var stack []*m.DebugEntry

	addrSize := 8

	for {
		entry, err := r.Next()
		if err != nil || entry == nil {
			break
		}

		if entry.Tag == 0 {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

			continue
		}

		if len(stack) == 0 {
			// Unit-level entry. Only full compile units contribute
			// statistics; skeleton, partial and type units are skipped.
			if entry.Tag != dwarf.TagCompileUnit {
				r.SkipChildren()
				continue
			}

			addrSize = r.AddressSize()
			node := convertEntry(entry, obj, addrSize)
			name, _ := entry.Val(dwarf.AttrName).(string)
			info.Units = append(info.Units, m.Unit{Name: name, Root: node, AddrSize: addrSize})

			if entry.Children {
				stack = append(stack, node)
			}

			continue
		}

		node := convertEntry(entry, obj, addrSize)
		parent := stack[len(stack)-1]
		node.Parent = parent
		parent.Children = append(parent.Children, node)

		if entry.Children {
			stack = append(stack, node)
		}
	}

	return info, nil
}

// convertEntry translates one dwarf.Entry into the read-only model node the
// analysis consumes. Attribute flags record presence, not value: a
// DW_AT_declaration that is explicitly false still marks a declaration,
// which is how the coverage policy treats it.
func convertEntry(entry *dwarf.Entry, obj *objectData, addrSize int) *m.DebugEntry {
	node := &m.DebugEntry{
		Tag:         convertTag(entry.Tag),
		Declaration: entry.AttrField(dwarf.AttrDeclaration) != nil,
		Artificial:  entry.AttrField(dwarf.AttrArtificial) != nil,
		External:    entry.AttrField(dwarf.AttrExternal) != nil,
		Inline:      entry.AttrField(dwarf.AttrInline) != nil,
		ConstValue:  entry.AttrField(dwarf.AttrConstValue) != nil,
	}
	node.Name, _ = entry.Val(dwarf.AttrName).(string)
	node.LowPC, _ = entry.Val(dwarf.AttrLowpc).(uint64)

	if loc := entry.AttrField(dwarf.AttrLocation); loc != nil {
		node.Location = convertLocation(loc, obj, addrSize)
	}

	switch node.Tag {
	case m.TagSubprogram, m.TagInlinedSubroutine, m.TagLexicalBlock:
		ranges, err := obj.dwarf.Ranges(entry)
		if err != nil {
			node.BadRanges = true
			break
		}
		for _, r := range ranges {
			node.Ranges = append(node.Ranges, m.AddressRange{Low: r[0], High: r[1]})
		}
	}

	return node
}

func convertLocation(loc *dwarf.Field, obj *objectData, addrSize int) *m.Location {
	switch loc.Class {
	case dwarf.ClassExprLoc:
		expr, _ := loc.Val.([]byte)
		return &m.Location{Expr: expr}

	case dwarf.ClassLocListPtr:
		off, ok := loc.Val.(int64)
		if !ok {
			return &m.Location{IsList: true}
		}

		list, err := readLocationList(obj, off, addrSize)
		if err != nil {
			// Unresolvable list offset: the entry counts as uncovered.
			return &m.Location{IsList: true}
		}

		return &m.Location{IsList: true, List: list}

	default:
		// DW_FORM_loclistx indices need the unit's loclists base to
		// resolve, which debug/dwarf does not surface. Treat as a list
		// with no usable intervals.
		return &m.Location{IsList: true}
	}
}

func convertTag(tag dwarf.Tag) m.Tag {
	switch tag {
	case dwarf.TagCompileUnit:
		return m.TagCompileUnit
	case dwarf.TagSubprogram:
		return m.TagSubprogram
	case dwarf.TagInlinedSubroutine:
		return m.TagInlinedSubroutine
	case dwarf.TagLexDwarfBlock:
		return m.TagLexicalBlock
	case dwarf.TagVariable:
		return m.TagVariable
	case dwarf.TagFormalParameter:
		return m.TagFormalParameter
	case dwarf.TagSubroutineType:
		return m.TagSubroutineType
	default:
		return m.TagOther
	}
}
