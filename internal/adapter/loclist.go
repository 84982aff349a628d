package adapter

import (
	"fmt"

	m "github.com/mouse-blink/locov/internal/model"
)

// DWARF v5 location list entry encodings (.debug_loclists).
const (
	lleEndOfList    = 0x00
	lleBaseAddressx = 0x01
	lleStartxEndx   = 0x02
	lleStartxLength = 0x03
	lleOffsetPair   = 0x04
	lleDefaultLoc   = 0x05
	lleBaseAddress  = 0x06
	lleStartEnd     = 0x07
	lleStartLength  = 0x08
)

// readLocationList resolves a DW_AT_location section offset into its list of
// covered intervals. Binaries carry either .debug_loclists (DWARF v5) or
// .debug_loc (earlier versions); when both are present the v5 section wins,
// matching what a single-version producer emits.
func readLocationList(obj *objectData, off int64, addrSize int) ([]m.LocationEntry, error) {
	if obj.locLists != nil {
		return readLocLists5(obj, off, addrSize)
	}
	if obj.loc != nil {
		return readLocList2(obj, off, addrSize)
	}

	return nil, fmt.Errorf("no location list section")
}

// readLocList2 decodes the DWARF v2-v4 .debug_loc format: address pairs
// followed by a 2-byte expression length, with base-address selection
// entries (begin == max address) and a double-zero terminator.
func readLocList2(obj *objectData, off int64, addrSize int) ([]m.LocationEntry, error) {
	data := obj.loc
	if off < 0 || off >= int64(len(data)) {
		return nil, fmt.Errorf("location list offset 0x%x out of range", off)
	}

	baseSelection := ^uint64(0)
	if addrSize < 8 {
		baseSelection = 1<<(uint(addrSize)*8) - 1
	}

	var (
		list []m.LocationEntry
		base uint64
	)

	pos := int(off)
	for {
		if pos+2*addrSize > len(data) {
			return nil, fmt.Errorf("truncated location list at offset 0x%x", off)
		}

		begin := readAddr(data[pos:], obj, addrSize)
		end := readAddr(data[pos+addrSize:], obj, addrSize)
		pos += 2 * addrSize

		if begin == 0 && end == 0 {
			return list, nil
		}

		if begin == baseSelection {
			base = end
			continue
		}

		if pos+2 > len(data) {
			return nil, fmt.Errorf("truncated location list at offset 0x%x", off)
		}

		exprLen := int(obj.byteOrder.Uint16(data[pos:]))
		pos += 2
		if pos+exprLen > len(data) {
			return nil, fmt.Errorf("truncated location expression at offset 0x%x", off)
		}

		list = append(list, newLocationEntry(base+begin, base+end, data[pos:pos+exprLen], addrSize))
		pos += exprLen
	}
}

// readLocLists5 decodes the DWARF v5 .debug_loclists entry encodings.
// Entries that need the .debug_addr index table (startx_endx) cannot be
// measured without it and are dropped, degrading to "no information" for
// that interval.
func readLocLists5(obj *objectData, off int64, addrSize int) ([]m.LocationEntry, error) {
	data := obj.locLists
	if off < 0 || off >= int64(len(data)) {
		return nil, fmt.Errorf("location list offset 0x%x out of range", off)
	}

	var (
		list []m.LocationEntry
		base uint64
	)

	pos := int(off)
	for pos < len(data) {
		kind := data[pos]
		pos++

		switch kind {
		case lleEndOfList:
			return list, nil

		case lleBaseAddressx:
			_, n, err := readULEB(data[pos:])
			if err != nil {
				return nil, err
			}
			pos += n
			base = 0

		case lleBaseAddress:
			if pos+addrSize > len(data) {
				return nil, fmt.Errorf("truncated location list at offset 0x%x", off)
			}
			base = readAddr(data[pos:], obj, addrSize)
			pos += addrSize

		case lleOffsetPair:
			begin, n, err := readULEB(data[pos:])
			if err != nil {
				return nil, err
			}
			pos += n
			end, n, err := readULEB(data[pos:])
			if err != nil {
				return nil, err
			}
			pos += n
			expr, n, err := readCountedExpr(data[pos:])
			if err != nil {
				return nil, err
			}
			pos += n
			list = append(list, newLocationEntry(base+begin, base+end, expr, addrSize))

		case lleStartEnd:
			if pos+2*addrSize > len(data) {
				return nil, fmt.Errorf("truncated location list at offset 0x%x", off)
			}
			begin := readAddr(data[pos:], obj, addrSize)
			end := readAddr(data[pos+addrSize:], obj, addrSize)
			pos += 2 * addrSize
			expr, n, err := readCountedExpr(data[pos:])
			if err != nil {
				return nil, err
			}
			pos += n
			list = append(list, newLocationEntry(begin, end, expr, addrSize))

		case lleStartLength:
			if pos+addrSize > len(data) {
				return nil, fmt.Errorf("truncated location list at offset 0x%x", off)
			}
			begin := readAddr(data[pos:], obj, addrSize)
			pos += addrSize
			length, n, err := readULEB(data[pos:])
			if err != nil {
				return nil, err
			}
			pos += n
			expr, n, err := readCountedExpr(data[pos:])
			if err != nil {
				return nil, err
			}
			pos += n
			list = append(list, newLocationEntry(begin, begin+length, expr, addrSize))

		case lleStartxLength:
			_, n, err := readULEB(data[pos:])
			if err != nil {
				return nil, err
			}
			pos += n
			length, n, err := readULEB(data[pos:])
			if err != nil {
				return nil, err
			}
			pos += n
			expr, n, err := readCountedExpr(data[pos:])
			if err != nil {
				return nil, err
			}
			pos += n
			list = append(list, newLocationEntry(0, length, expr, addrSize))

		case lleStartxEndx:
			for i := 0; i < 2; i++ {
				_, n, err := readULEB(data[pos:])
				if err != nil {
					return nil, err
				}
				pos += n
			}
			_, n, err := readCountedExpr(data[pos:])
			if err != nil {
				return nil, err
			}
			pos += n

		case lleDefaultLoc:
			_, n, err := readCountedExpr(data[pos:])
			if err != nil {
				return nil, err
			}
			pos += n

		default:
			return nil, fmt.Errorf("unknown location list entry kind 0x%x", kind)
		}
	}

	return nil, fmt.Errorf("unterminated location list at offset 0x%x", off)
}

func newLocationEntry(begin, end uint64, expr []byte, addrSize int) m.LocationEntry {
	return m.LocationEntry{
		Begin:      begin,
		End:        end,
		Expr:       expr,
		EntryValue: exprHasEntryValue(expr, addrSize),
	}
}

func readAddr(data []byte, obj *objectData, addrSize int) uint64 {
	if addrSize == 4 {
		return uint64(obj.byteOrder.Uint32(data))
	}

	return obj.byteOrder.Uint64(data)
}

// readCountedExpr reads a ULEB128 length followed by that many expression
// bytes, returning the expression and the total bytes consumed.
func readCountedExpr(data []byte) ([]byte, int, error) {
	length, n, err := readULEB(data)
	if err != nil {
		return nil, 0, err
	}
	if uint64(len(data)-n) < length {
		return nil, 0, fmt.Errorf("truncated location expression")
	}

	return data[n : n+int(length)], n + int(length), nil
}

func readULEB(data []byte) (uint64, int, error) {
	var (
		value uint64
		shift uint
	)

	for i, b := range data {
		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, i + 1, nil
		}

		shift += 7
		if shift >= 64 {
			break
		}
	}

	return 0, 0, fmt.Errorf("truncated uleb128")
}
