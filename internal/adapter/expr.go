package adapter

// DWARF expression opcodes the scanner has to recognize, either because
// they are the operator being searched for or because their operands must
// be skipped to keep scanning.
const (
	opAddr          = 0x03
	opConst1u       = 0x08
	opConst1s       = 0x09
	opConst2u       = 0x0a
	opConst2s       = 0x0b
	opConst4u       = 0x0c
	opConst4s       = 0x0d
	opConst8u       = 0x0e
	opConst8s       = 0x0f
	opConstu        = 0x10
	opConsts        = 0x11
	opPick          = 0x15
	opPlusUconst    = 0x23
	opBra           = 0x28
	opSkip          = 0x2f
	opLit0          = 0x30
	opLit31         = 0x4f
	opReg0          = 0x50
	opReg31         = 0x6f
	opBreg0         = 0x70
	opBreg31        = 0x8f
	opRegx          = 0x90
	opFbreg         = 0x91
	opBregx         = 0x92
	opPiece         = 0x93
	opDerefSize     = 0x94
	opXderefSize    = 0x95
	opCall2         = 0x98
	opCall4         = 0x99
	opCallRef       = 0x9a
	opBitPiece      = 0x9d
	opImplicitValue = 0x9e
	opImplicitPtr   = 0xa0
	opAddrx         = 0xa1
	opConstx        = 0xa2
	opEntryValue    = 0xa3
	opConstType     = 0xa4
	opRegvalType    = 0xa5
	opDerefType     = 0xa6
	opXderefType    = 0xa7
	opConvert       = 0xa8
	opReinterpret   = 0xa9
	opGNUEntryValue = 0xf3
)

// exprHasEntryValue reports whether the DWARF expression contains an
// entry-value operation, in either its standard or its legacy GNU
// encoding. Operands are decoded just far enough to be skipped; an opcode
// outside the table ends the scan, since guessing operand sizes could
// produce false matches on operand bytes.
func exprHasEntryValue(expr []byte, addrSize int) bool {
	pos := 0
	for pos < len(expr) {
		op := expr[pos]
		pos++

		if op == opEntryValue || op == opGNUEntryValue {
			return true
		}

		n, ok := operandSize(expr[pos:], op, addrSize)
		if !ok {
			return false
		}
		pos += n
	}

	return false
}

// operandSize returns the byte length of op's operands within rest.
func operandSize(rest []byte, op byte, addrSize int) (int, bool) {
	switch {
	case op >= opLit0 && op <= opLit31, op >= opReg0 && op <= opReg31:
		return 0, true
	case op >= opBreg0 && op <= opBreg31:
		return lebLen(rest)
	}

	switch op {
	case opAddr:
		return addrSize, true
	case opConst1u, opConst1s, opPick, opDerefSize, opXderefSize:
		return 1, true
	case opConst2u, opConst2s, opBra, opSkip, opCall2:
		return 2, true
	case opConst4u, opConst4s, opCall4, opCallRef:
		return 4, true
	case opConst8u, opConst8s:
		return 8, true
	case opConstu, opConsts, opPlusUconst, opRegx, opFbreg, opPiece,
		opAddrx, opConstx, opConvert, opReinterpret:
		return lebLen(rest)
	case opBregx, opBitPiece, opRegvalType:
		return lebLen2(rest)
	case opImplicitValue:
		return countedLen(rest)
	case opImplicitPtr:
		// Reference (offset size, assume 4) plus an SLEB offset.
		if len(rest) < 4 {
			return 0, false
		}
		n, ok := lebLen(rest[4:])
		return 4 + n, ok
	case opDerefType, opXderefType:
		if len(rest) < 1 {
			return 0, false
		}
		n, ok := lebLen(rest[1:])
		return 1 + n, ok
	case opConstType:
		return constTypeLen(rest)
	default:
		if op < opImplicitPtr {
			// Remaining standard opcodes below the typed-operation range
			// take no operands.
			return 0, true
		}

		return 0, false
	}
}

// lebLen returns the encoded length of one LEB128 operand (the scanner
// never needs its value, so signed and unsigned read the same).
func lebLen(data []byte) (int, bool) {
	for i, b := range data {
		if b&0x80 == 0 {
			return i + 1, true
		}
	}

	return 0, false
}

func lebLen2(data []byte) (int, bool) {
	first, ok := lebLen(data)
	if !ok {
		return 0, false
	}

	second, ok := lebLen(data[first:])
	if !ok {
		return 0, false
	}

	return first + second, true
}

// countedLen skips a ULEB length followed by that many bytes.
func countedLen(data []byte) (int, bool) {
	length, n, err := readULEB(data)
	if err != nil || uint64(len(data)-n) < length {
		return 0, false
	}

	return n + int(length), true
}

// constTypeLen skips DW_OP_const_type's operands: a ULEB type reference, a
// one-byte size and that many constant bytes.
func constTypeLen(data []byte) (int, bool) {
	n, ok := lebLen(data)
	if !ok || len(data) < n+1 {
		return 0, false
	}

	size := int(data[n])
	if len(data) < n+1+size {
		return 0, false
	}

	return n + 1 + size, true
}
