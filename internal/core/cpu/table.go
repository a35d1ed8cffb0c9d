package cpu

// Shorthand constructors keep the 256-entry table below legible: one
// line per opcode instead of a struct literal's worth of field names.
func r(name string, mode addrMode, fn func(c *CPU, v uint8)) opEntry {
	return opEntry{name: name, mode: mode, kind: kindRead, read: fn}
}
func w(name string, mode addrMode, fn func(c *CPU) uint8) opEntry {
	return opEntry{name: name, mode: mode, kind: kindWrite, write: fn}
}
func m(name string, mode addrMode, fn func(c *CPU, v uint8) uint8) opEntry {
	return opEntry{name: name, mode: mode, kind: kindRMW, rmw: fn}
}
func im(name string, fn func(c *CPU)) opEntry {
	return opEntry{name: name, kind: kindImplied, impl: fn}
}
func acc(name string, fn func(c *CPU, v uint8) uint8) opEntry {
	return opEntry{name: name, kind: kindAccumulator, rmw: fn}
}
func br(name string, cond func(c *CPU) bool) opEntry {
	return opEntry{name: name, kind: kindBranch, branchCond: cond}
}
func kil(name string) opEntry { return opEntry{name: name, kind: kindKIL} }

// opcodeTable is indexed directly by opcode byte. Every one of the 256
// entries is defined; unofficial opcodes are named the way the NES
// community conventionally names them (SLO, DCP, XAA, ...) since that's
// what any cross-reference material and test ROMs call them.
var opcodeTable = [256]opEntry{
	0x00: {name: "BRK", kind: kindBRK},
	0x01: r("ORA", modeIndirectX, opORA),
	0x02: kil("KIL"),
	0x03: m("SLO", modeIndirectX, opSLO),
	0x04: r("NOP", modeZeroPage, opNOPRead),
	0x05: r("ORA", modeZeroPage, opORA),
	0x06: m("ASL", modeZeroPage, opASL),
	0x07: m("SLO", modeZeroPage, opSLO),
	0x08: {name: "PHP", kind: kindPush, write: opPHPValue},
	0x09: r("ORA", modeImmediate, opORA),
	0x0A: acc("ASL", opASL),
	0x0B: r("ANC", modeImmediate, opANC),
	0x0C: r("NOP", modeAbsolute, opNOPRead),
	0x0D: r("ORA", modeAbsolute, opORA),
	0x0E: m("ASL", modeAbsolute, opASL),
	0x0F: m("SLO", modeAbsolute, opSLO),

	0x10: br("BPL", condBPL),
	0x11: r("ORA", modeIndirectY, opORA),
	0x12: kil("KIL"),
	0x13: m("SLO", modeIndirectY, opSLO),
	0x14: r("NOP", modeZeroPageX, opNOPRead),
	0x15: r("ORA", modeZeroPageX, opORA),
	0x16: m("ASL", modeZeroPageX, opASL),
	0x17: m("SLO", modeZeroPageX, opSLO),
	0x18: im("CLC", opCLC),
	0x19: r("ORA", modeAbsoluteY, opORA),
	0x1A: im("NOP", opNOP),
	0x1B: m("SLO", modeAbsoluteY, opSLO),
	0x1C: r("NOP", modeAbsoluteX, opNOPRead),
	0x1D: r("ORA", modeAbsoluteX, opORA),
	0x1E: m("ASL", modeAbsoluteX, opASL),
	0x1F: m("SLO", modeAbsoluteX, opSLO),

	0x20: {name: "JSR", kind: kindJSR},
	0x21: r("AND", modeIndirectX, opAND),
	0x22: kil("KIL"),
	0x23: m("RLA", modeIndirectX, opRLA),
	0x24: r("BIT", modeZeroPage, opBIT),
	0x25: r("AND", modeZeroPage, opAND),
	0x26: m("ROL", modeZeroPage, opROL),
	0x27: m("RLA", modeZeroPage, opRLA),
	0x28: {name: "PLP", kind: kindPull, read: opPLP},
	0x29: r("AND", modeImmediate, opAND),
	0x2A: acc("ROL", opROL),
	0x2B: r("ANC", modeImmediate, opANC),
	0x2C: r("BIT", modeAbsolute, opBIT),
	0x2D: r("AND", modeAbsolute, opAND),
	0x2E: m("ROL", modeAbsolute, opROL),
	0x2F: m("RLA", modeAbsolute, opRLA),

	0x30: br("BMI", condBMI),
	0x31: r("AND", modeIndirectY, opAND),
	0x32: kil("KIL"),
	0x33: m("RLA", modeIndirectY, opRLA),
	0x34: r("NOP", modeZeroPageX, opNOPRead),
	0x35: r("AND", modeZeroPageX, opAND),
	0x36: m("ROL", modeZeroPageX, opROL),
	0x37: m("RLA", modeZeroPageX, opRLA),
	0x38: im("SEC", opSEC),
	0x39: r("AND", modeAbsoluteY, opAND),
	0x3A: im("NOP", opNOP),
	0x3B: m("RLA", modeAbsoluteY, opRLA),
	0x3C: r("NOP", modeAbsoluteX, opNOPRead),
	0x3D: r("AND", modeAbsoluteX, opAND),
	0x3E: m("ROL", modeAbsoluteX, opROL),
	0x3F: m("RLA", modeAbsoluteX, opRLA),

	0x40: {name: "RTI", kind: kindRTI},
	0x41: r("EOR", modeIndirectX, opEOR),
	0x42: kil("KIL"),
	0x43: m("SRE", modeIndirectX, opSRE),
	0x44: r("NOP", modeZeroPage, opNOPRead),
	0x45: r("EOR", modeZeroPage, opEOR),
	0x46: m("LSR", modeZeroPage, opLSR),
	0x47: m("SRE", modeZeroPage, opSRE),
	0x48: {name: "PHA", kind: kindPush, write: opPHAValue},
	0x49: r("EOR", modeImmediate, opEOR),
	0x4A: acc("LSR", opLSR),
	0x4B: r("ALR", modeImmediate, opALR),
	0x4C: {name: "JMP", kind: kindJumpAbs},
	0x4D: r("EOR", modeAbsolute, opEOR),
	0x4E: m("LSR", modeAbsolute, opLSR),
	0x4F: m("SRE", modeAbsolute, opSRE),

	0x50: br("BVC", condBVC),
	0x51: r("EOR", modeIndirectY, opEOR),
	0x52: kil("KIL"),
	0x53: m("SRE", modeIndirectY, opSRE),
	0x54: r("NOP", modeZeroPageX, opNOPRead),
	0x55: r("EOR", modeZeroPageX, opEOR),
	0x56: m("LSR", modeZeroPageX, opLSR),
	0x57: m("SRE", modeZeroPageX, opSRE),
	0x58: im("CLI", opCLI),
	0x59: r("EOR", modeAbsoluteY, opEOR),
	0x5A: im("NOP", opNOP),
	0x5B: m("SRE", modeAbsoluteY, opSRE),
	0x5C: r("NOP", modeAbsoluteX, opNOPRead),
	0x5D: r("EOR", modeAbsoluteX, opEOR),
	0x5E: m("LSR", modeAbsoluteX, opLSR),
	0x5F: m("SRE", modeAbsoluteX, opSRE),

	0x60: {name: "RTS", kind: kindRTS},
	0x61: r("ADC", modeIndirectX, opADC),
	0x62: kil("KIL"),
	0x63: m("RRA", modeIndirectX, opRRA),
	0x64: r("NOP", modeZeroPage, opNOPRead),
	0x65: r("ADC", modeZeroPage, opADC),
	0x66: m("ROR", modeZeroPage, opROR),
	0x67: m("RRA", modeZeroPage, opRRA),
	0x68: {name: "PLA", kind: kindPull, read: opPLA},
	0x69: r("ADC", modeImmediate, opADC),
	0x6A: acc("ROR", opROR),
	0x6B: r("ARR", modeImmediate, opARR),
	0x6C: {name: "JMP", kind: kindJumpInd},
	0x6D: r("ADC", modeAbsolute, opADC),
	0x6E: m("ROR", modeAbsolute, opROR),
	0x6F: m("RRA", modeAbsolute, opRRA),

	0x70: br("BVS", condBVS),
	0x71: r("ADC", modeIndirectY, opADC),
	0x72: kil("KIL"),
	0x73: m("RRA", modeIndirectY, opRRA),
	0x74: r("NOP", modeZeroPageX, opNOPRead),
	0x75: r("ADC", modeZeroPageX, opADC),
	0x76: m("ROR", modeZeroPageX, opROR),
	0x77: m("RRA", modeZeroPageX, opRRA),
	0x78: im("SEI", opSEI),
	0x79: r("ADC", modeAbsoluteY, opADC),
	0x7A: im("NOP", opNOP),
	0x7B: m("RRA", modeAbsoluteY, opRRA),
	0x7C: r("NOP", modeAbsoluteX, opNOPRead),
	0x7D: r("ADC", modeAbsoluteX, opADC),
	0x7E: m("ROR", modeAbsoluteX, opROR),
	0x7F: m("RRA", modeAbsoluteX, opRRA),

	0x80: r("NOP", modeImmediate, opNOPRead),
	0x81: w("STA", modeIndirectX, opSTA),
	0x82: r("NOP", modeImmediate, opNOPRead),
	0x83: w("SAX", modeIndirectX, opSAX),
	0x84: w("STY", modeZeroPage, opSTY),
	0x85: w("STA", modeZeroPage, opSTA),
	0x86: w("STX", modeZeroPage, opSTX),
	0x87: w("SAX", modeZeroPage, opSAX),
	0x88: im("DEY", opDEY),
	0x89: r("NOP", modeImmediate, opNOPRead),
	0x8A: im("TXA", opTXA),
	0x8B: r("XAA", modeImmediate, opXAA),
	0x8C: w("STY", modeAbsolute, opSTY),
	0x8D: w("STA", modeAbsolute, opSTA),
	0x8E: w("STX", modeAbsolute, opSTX),
	0x8F: w("SAX", modeAbsolute, opSAX),

	0x90: br("BCC", condBCC),
	0x91: w("STA", modeIndirectY, opSTA),
	0x92: kil("KIL"),
	0x93: w("SHA", modeIndirectY, opSHA),
	0x94: w("STY", modeZeroPageX, opSTY),
	0x95: w("STA", modeZeroPageX, opSTA),
	0x96: w("STX", modeZeroPageY, opSTX),
	0x97: w("SAX", modeZeroPageY, opSAX),
	0x98: im("TYA", opTYA),
	0x99: w("STA", modeAbsoluteY, opSTA),
	0x9A: im("TXS", opTXS),
	0x9B: w("TAS", modeAbsoluteY, opTAS),
	0x9C: w("SHY", modeAbsoluteX, opSHY),
	0x9D: w("STA", modeAbsoluteX, opSTA),
	0x9E: w("SHX", modeAbsoluteY, opSHX),
	0x9F: w("SHA", modeAbsoluteY, opSHA),

	0xA0: r("LDY", modeImmediate, opLDY),
	0xA1: r("LDA", modeIndirectX, opLDA),
	0xA2: r("LDX", modeImmediate, opLDX),
	0xA3: r("LAX", modeIndirectX, opLAX),
	0xA4: r("LDY", modeZeroPage, opLDY),
	0xA5: r("LDA", modeZeroPage, opLDA),
	0xA6: r("LDX", modeZeroPage, opLDX),
	0xA7: r("LAX", modeZeroPage, opLAX),
	0xA8: im("TAY", opTAY),
	0xA9: r("LDA", modeImmediate, opLDA),
	0xAA: im("TAX", opTAX),
	0xAB: r("LAX", modeImmediate, opLAX),
	0xAC: r("LDY", modeAbsolute, opLDY),
	0xAD: r("LDA", modeAbsolute, opLDA),
	0xAE: r("LDX", modeAbsolute, opLDX),
	0xAF: r("LAX", modeAbsolute, opLAX),

	0xB0: br("BCS", condBCS),
	0xB1: r("LDA", modeIndirectY, opLDA),
	0xB2: kil("KIL"),
	0xB3: r("LAX", modeIndirectY, opLAX),
	0xB4: r("LDY", modeZeroPageX, opLDY),
	0xB5: r("LDA", modeZeroPageX, opLDA),
	0xB6: r("LDX", modeZeroPageY, opLDX),
	0xB7: r("LAX", modeZeroPageY, opLAX),
	0xB8: im("CLV", opCLV),
	0xB9: r("LDA", modeAbsoluteY, opLDA),
	0xBA: im("TSX", opTSX),
	0xBB: r("LAS", modeAbsoluteY, opLAS),
	0xBC: r("LDY", modeAbsoluteX, opLDY),
	0xBD: r("LDA", modeAbsoluteX, opLDA),
	0xBE: r("LDX", modeAbsoluteY, opLDX),
	0xBF: r("LAX", modeAbsoluteY, opLAX),

	0xC0: r("CPY", modeImmediate, opCPY),
	0xC1: r("CMP", modeIndirectX, opCMP),
	0xC2: r("NOP", modeImmediate, opNOPRead),
	0xC3: m("DCP", modeIndirectX, opDCP),
	0xC4: r("CPY", modeZeroPage, opCPY),
	0xC5: r("CMP", modeZeroPage, opCMP),
	0xC6: m("DEC", modeZeroPage, opDEC),
	0xC7: m("DCP", modeZeroPage, opDCP),
	0xC8: im("INY", opINY),
	0xC9: r("CMP", modeImmediate, opCMP),
	0xCA: im("DEX", opDEX),
	0xCB: r("SBX", modeImmediate, opSBX),
	0xCC: r("CPY", modeAbsolute, opCPY),
	0xCD: r("CMP", modeAbsolute, opCMP),
	0xCE: m("DEC", modeAbsolute, opDEC),
	0xCF: m("DCP", modeAbsolute, opDCP),

	0xD0: br("BNE", condBNE),
	0xD1: r("CMP", modeIndirectY, opCMP),
	0xD2: kil("KIL"),
	0xD3: m("DCP", modeIndirectY, opDCP),
	0xD4: r("NOP", modeZeroPageX, opNOPRead),
	0xD5: r("CMP", modeZeroPageX, opCMP),
	0xD6: m("DEC", modeZeroPageX, opDEC),
	0xD7: m("DCP", modeZeroPageX, opDCP),
	0xD8: im("CLD", opCLD),
	0xD9: r("CMP", modeAbsoluteY, opCMP),
	0xDA: im("NOP", opNOP),
	0xDB: m("DCP", modeAbsoluteY, opDCP),
	0xDC: r("NOP", modeAbsoluteX, opNOPRead),
	0xDD: r("CMP", modeAbsoluteX, opCMP),
	0xDE: m("DEC", modeAbsoluteX, opDEC),
	0xDF: m("DCP", modeAbsoluteX, opDCP),

	0xE0: r("CPX", modeImmediate, opCPX),
	0xE1: r("SBC", modeIndirectX, opSBC),
	0xE2: r("NOP", modeImmediate, opNOPRead),
	0xE3: m("ISC", modeIndirectX, opISC),
	0xE4: r("CPX", modeZeroPage, opCPX),
	0xE5: r("SBC", modeZeroPage, opSBC),
	0xE6: m("INC", modeZeroPage, opINC),
	0xE7: m("ISC", modeZeroPage, opISC),
	0xE8: im("INX", opINX),
	0xE9: r("SBC", modeImmediate, opSBC),
	0xEA: im("NOP", opNOP),
	0xEB: r("SBC", modeImmediate, opSBC),
	0xEC: r("CPX", modeAbsolute, opCPX),
	0xED: r("SBC", modeAbsolute, opSBC),
	0xEE: m("INC", modeAbsolute, opINC),
	0xEF: m("ISC", modeAbsolute, opISC),

	0xF0: br("BEQ", condBEQ),
	0xF1: r("SBC", modeIndirectY, opSBC),
	0xF2: kil("KIL"),
	0xF3: m("ISC", modeIndirectY, opISC),
	0xF4: r("NOP", modeZeroPageX, opNOPRead),
	0xF5: r("SBC", modeZeroPageX, opSBC),
	0xF6: m("INC", modeZeroPageX, opINC),
	0xF7: m("ISC", modeZeroPageX, opISC),
	0xF8: im("SED", opSED),
	0xF9: r("SBC", modeAbsoluteY, opSBC),
	0xFA: im("NOP", opNOP),
	0xFB: m("ISC", modeAbsoluteY, opISC),
	0xFC: r("NOP", modeAbsoluteX, opNOPRead),
	0xFD: r("SBC", modeAbsoluteX, opSBC),
	0xFE: m("INC", modeAbsoluteX, opINC),
	0xFF: m("ISC", modeAbsoluteX, opISC),
}
