// Package adapter contains the object-file and debug-information adapters
// for the locov CLI.
package adapter

import (
	"debug/dwarf"
	"debug/elf"
	"debug/macho"
	"debug/pe"
	"encoding/binary"
	"fmt"
	"os"

	m "github.com/mouse-blink/locov/internal/model"
)

// ObjectFileAdapter abstracts loading a compiled binary's debug information
// into the model tree. It hides the object-file formats and the DWARF
// container so the domain layer can be tested without real binaries.
type ObjectFileAdapter interface {
	// Load opens the binary at path and returns its debug-entry tree.
	Load(path m.Path) (*m.DebugInfo, error)
}

// objectData is what the analysis needs from one opened binary: the DWARF
// container plus the raw location-list sections the stdlib does not decode.
type objectData struct {
	dwarf     *dwarf.Data
	loc       []byte // .debug_loc (DWARF v4 and earlier)
	locLists  []byte // .debug_loclists (DWARF v5)
	byteOrder binary.ByteOrder
}

// LocalObjectFileAdapter reads binaries from the local filesystem. It
// recognizes ELF, Mach-O and PE images.
type LocalObjectFileAdapter struct{}

// NewLocalObjectFileAdapter constructs a LocalObjectFileAdapter ready to be
// wired into the workflow.
func NewLocalObjectFileAdapter() *LocalObjectFileAdapter {
	return &LocalObjectFileAdapter{}
}

// Load opens the binary at path and builds its debug-entry tree. Errors at
// this level carry the file name and cause the whole run to stop; damage
// inside individual debug entries is absorbed later, during tree building.
func (a *LocalObjectFileAdapter) Load(path m.Path) (*m.DebugInfo, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer f.Close()

	obj, err := openObject(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return buildDebugInfo(path, obj)
}

// openObject sniffs the object-file format. All sections the analysis needs
// are read eagerly so the caller can close the file afterwards.
func openObject(f *os.File) (*objectData, error) {
	if ef, err := elf.NewFile(f); err == nil {
		return openELF(ef)
	}

	if mf, err := macho.NewFile(f); err == nil {
		return openMachO(mf)
	}

	if pf, err := pe.NewFile(f); err == nil {
		return openPE(pf)
	}

	return nil, fmt.Errorf("unrecognized object file format")
}

func openELF(ef *elf.File) (*objectData, error) {
	d, err := ef.DWARF()
	if err != nil {
		return nil, fmt.Errorf("no debug information: %w", err)
	}

	obj := &objectData{dwarf: d, byteOrder: ef.ByteOrder}
	if sec := ef.Section(".debug_loc"); sec != nil {
		obj.loc, _ = sec.Data()
	}
	if sec := ef.Section(".debug_loclists"); sec != nil {
		obj.locLists, _ = sec.Data()
	}

	return obj, nil
}

func openMachO(mf *macho.File) (*objectData, error) {
	d, err := mf.DWARF()
	if err != nil {
		return nil, fmt.Errorf("no debug information: %w", err)
	}

	obj := &objectData{dwarf: d, byteOrder: mf.ByteOrder}
	if sec := mf.Section("__debug_loc"); sec != nil {
		obj.loc, _ = sec.Data()
	}
	if sec := mf.Section("__debug_loclists"); sec != nil {
		obj.locLists, _ = sec.Data()
	}

	return obj, nil
}

func openPE(pf *pe.File) (*objectData, error) {
	d, err := pf.DWARF()
	if err != nil {
		return nil, fmt.Errorf("no debug information: %w", err)
	}

	obj := &objectData{dwarf: d, byteOrder: binary.LittleEndian}
	obj.loc = peSectionData(pf, ".debug_loc")
	obj.locLists = peSectionData(pf, ".debug_loclists")

	return obj, nil
}

// peSectionData reads a PE section, trimming the file-alignment padding
// past the section's virtual size.
func peSectionData(pf *pe.File, name string) []byte {
	sec := pf.Section(name)
	if sec == nil {
		return nil
	}

	data, err := sec.Data()
	if err != nil {
		return nil
	}
	if 0 < sec.VirtualSize && sec.VirtualSize < sec.Size && int(sec.VirtualSize) <= len(data) {
		data = data[:sec.VirtualSize]
	}

	return data
}
