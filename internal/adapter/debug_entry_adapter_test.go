package adapter

import (
	"debug/dwarf"
	"encoding/binary"
	"testing"

	m "github.com/mouse-blink/locov/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variableEntry(fields ...dwarf.Field) *dwarf.Entry {
	return &dwarf.Entry{Tag: dwarf.TagVariable, Field: fields}
}

func TestConvertEntry_AttributeFlags(t *testing.T) {
	obj := &objectData{byteOrder: binary.LittleEndian}

	entry := variableEntry(
		dwarf.Field{Attr: dwarf.AttrName, Val: "counter", Class: dwarf.ClassString},
		dwarf.Field{Attr: dwarf.AttrArtificial, Val: true, Class: dwarf.ClassFlag},
		dwarf.Field{Attr: dwarf.AttrExternal, Val: false, Class: dwarf.ClassFlag},
	)

	node := convertEntry(entry, obj, 8)

	assert.Equal(t, m.TagVariable, node.Tag)
	assert.Equal(t, "counter", node.Name)
	assert.True(t, node.Artificial)
	assert.True(t, node.External, "flag presence counts, not the flag's value")
	assert.False(t, node.Declaration)
	assert.Nil(t, node.Location)
}

func TestConvertEntry_SingleExpressionLocation(t *testing.T) {
	obj := &objectData{byteOrder: binary.LittleEndian}

	entry := variableEntry(
		dwarf.Field{Attr: dwarf.AttrLocation, Val: []byte{0x91, 0x7c}, Class: dwarf.ClassExprLoc},
	)

	node := convertEntry(entry, obj, 8)

	require.NotNil(t, node.Location)
	assert.False(t, node.Location.IsList)
	assert.Equal(t, []byte{0x91, 0x7c}, node.Location.Expr)
}

func TestConvertEntry_LocationListResolved(t *testing.T) {
	data := locEntry2(0x1000, 0x1010, 0x9c)
	data = append(data, locEntry2(0x1010, 0x1030, opEntryValue, 0x01, 0x50)...)
	data = append(data, locEntry2(0, 0)...)

	obj := &objectData{loc: data, byteOrder: binary.LittleEndian}

	entry := variableEntry(
		dwarf.Field{Attr: dwarf.AttrLocation, Val: int64(0), Class: dwarf.ClassLocListPtr},
	)

	node := convertEntry(entry, obj, 8)

	require.NotNil(t, node.Location)
	assert.True(t, node.Location.IsList)
	require.Len(t, node.Location.List, 2)
	assert.False(t, node.Location.List[0].EntryValue)
	assert.True(t, node.Location.List[1].EntryValue)
}

func TestConvertEntry_UnresolvableListDegrades(t *testing.T) {
	obj := &objectData{loc: []byte{0x01}, byteOrder: binary.LittleEndian}

	entry := variableEntry(
		dwarf.Field{Attr: dwarf.AttrLocation, Val: int64(0x4000), Class: dwarf.ClassLocListPtr},
	)

	node := convertEntry(entry, obj, 8)

	require.NotNil(t, node.Location)
	assert.True(t, node.Location.IsList)
	assert.Empty(t, node.Location.List, "bad list offset means no measurable intervals")
}

func TestConvertTag(t *testing.T) {
	tests := []struct {
		in   dwarf.Tag
		want m.Tag
	}{
		{in: dwarf.TagCompileUnit, want: m.TagCompileUnit},
		{in: dwarf.TagSubprogram, want: m.TagSubprogram},
		{in: dwarf.TagInlinedSubroutine, want: m.TagInlinedSubroutine},
		{in: dwarf.TagLexDwarfBlock, want: m.TagLexicalBlock},
		{in: dwarf.TagVariable, want: m.TagVariable},
		{in: dwarf.TagFormalParameter, want: m.TagFormalParameter},
		{in: dwarf.TagSubroutineType, want: m.TagSubroutineType},
		{in: dwarf.TagTypedef, want: m.TagOther},
		{in: dwarf.TagBaseType, want: m.TagOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, convertTag(tt.in))
	}
}
