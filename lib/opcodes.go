package lib

type operation func(cpu *CPU, step *Step)

/* one entry per opcode byte. entries without an operation are opcodes
 * this cpu does not implement (the unofficial ones), which execute as a
 * one byte, one cycle no-op
 */
type Opcode struct {
    Name string
    Mode AddressingMode
    /* base cycle cost */
    Cycles int
    /* indexed reads take one more cycle when the effective address is on
     * a different page than the base address. stores never do.
     */
    PageCycle bool
    execute operation
}

func (opcode *Opcode) Implemented() bool {
    return opcode.execute != nil
}

func (opcode *Opcode) Length() uint16 {
    return 1 + uint16(opcode.Mode.Operands())
}

func op(name string, mode AddressingMode, cycles int, execute operation) Opcode {
    return Opcode{Name: name, Mode: mode, Cycles: cycles, execute: execute}
}

/* same as op, but with the page crossing penalty */
func opPage(name string, mode AddressingMode, cycles int, execute operation) Opcode {
    return Opcode{Name: name, Mode: mode, Cycles: cycles, PageCycle: true, execute: execute}
}

func LookupOpcode(value byte) Opcode {
    return opcodeTable[value]
}

var opcodeTable = [256]Opcode{
    0x69: op("adc", ModeImmediate, 2, (*CPU).adc),
    0x65: op("adc", ModeZeroPage, 3, (*CPU).adc),
    0x75: op("adc", ModeZeroPageX, 4, (*CPU).adc),
    0x6d: op("adc", ModeAbsolute, 4, (*CPU).adc),
    0x7d: opPage("adc", ModeAbsoluteX, 4, (*CPU).adc),
    0x79: opPage("adc", ModeAbsoluteY, 4, (*CPU).adc),
    0x61: op("adc", ModeIndirectX, 6, (*CPU).adc),
    0x71: opPage("adc", ModeIndirectY, 5, (*CPU).adc),

    0x29: op("and", ModeImmediate, 2, (*CPU).and),
    0x25: op("and", ModeZeroPage, 3, (*CPU).and),
    0x35: op("and", ModeZeroPageX, 4, (*CPU).and),
    0x2d: op("and", ModeAbsolute, 4, (*CPU).and),
    0x3d: opPage("and", ModeAbsoluteX, 4, (*CPU).and),
    0x39: opPage("and", ModeAbsoluteY, 4, (*CPU).and),
    0x21: op("and", ModeIndirectX, 6, (*CPU).and),
    0x31: opPage("and", ModeIndirectY, 5, (*CPU).and),

    0x0a: op("asl", ModeAccumulator, 2, (*CPU).asl),
    0x06: op("asl", ModeZeroPage, 5, (*CPU).asl),
    0x16: op("asl", ModeZeroPageX, 6, (*CPU).asl),
    0x0e: op("asl", ModeAbsolute, 6, (*CPU).asl),
    0x1e: op("asl", ModeAbsoluteX, 7, (*CPU).asl),

    0x90: op("bcc", ModeRelative, 2, (*CPU).bcc),
    0xb0: op("bcs", ModeRelative, 2, (*CPU).bcs),
    0xf0: op("beq", ModeRelative, 2, (*CPU).beq),
    0x30: op("bmi", ModeRelative, 2, (*CPU).bmi),
    0xd0: op("bne", ModeRelative, 2, (*CPU).bne),
    0x10: op("bpl", ModeRelative, 2, (*CPU).bpl),
    0x50: op("bvc", ModeRelative, 2, (*CPU).bvc),
    0x70: op("bvs", ModeRelative, 2, (*CPU).bvs),

    0x24: op("bit", ModeZeroPage, 3, (*CPU).bit),
    0x2c: op("bit", ModeAbsolute, 4, (*CPU).bit),

    0x00: op("brk", ModeImplied, 7, (*CPU).brk),

    0x18: op("clc", ModeImplied, 2, (*CPU).clc),
    0xd8: op("cld", ModeImplied, 2, (*CPU).cld),
    0x58: op("cli", ModeImplied, 2, (*CPU).cli),
    0xb8: op("clv", ModeImplied, 2, (*CPU).clv),

    0xc9: op("cmp", ModeImmediate, 2, (*CPU).cmp),
    0xc5: op("cmp", ModeZeroPage, 3, (*CPU).cmp),
    0xd5: op("cmp", ModeZeroPageX, 4, (*CPU).cmp),
    0xcd: op("cmp", ModeAbsolute, 4, (*CPU).cmp),
    0xdd: opPage("cmp", ModeAbsoluteX, 4, (*CPU).cmp),
    0xd9: opPage("cmp", ModeAbsoluteY, 4, (*CPU).cmp),
    0xc1: op("cmp", ModeIndirectX, 6, (*CPU).cmp),
    0xd1: opPage("cmp", ModeIndirectY, 5, (*CPU).cmp),

    0xe0: op("cpx", ModeImmediate, 2, (*CPU).cpx),
    0xe4: op("cpx", ModeZeroPage, 3, (*CPU).cpx),
    0xec: op("cpx", ModeAbsolute, 4, (*CPU).cpx),

    0xc0: op("cpy", ModeImmediate, 2, (*CPU).cpy),
    0xc4: op("cpy", ModeZeroPage, 3, (*CPU).cpy),
    0xcc: op("cpy", ModeAbsolute, 4, (*CPU).cpy),

    0xc6: op("dec", ModeZeroPage, 5, (*CPU).dec),
    0xd6: op("dec", ModeZeroPageX, 6, (*CPU).dec),
    0xce: op("dec", ModeAbsolute, 6, (*CPU).dec),
    0xde: op("dec", ModeAbsoluteX, 7, (*CPU).dec),

    0xca: op("dex", ModeImplied, 2, (*CPU).dex),
    0x88: op("dey", ModeImplied, 2, (*CPU).dey),

    0x49: op("eor", ModeImmediate, 2, (*CPU).eor),
    0x45: op("eor", ModeZeroPage, 3, (*CPU).eor),
    0x55: op("eor", ModeZeroPageX, 4, (*CPU).eor),
    0x4d: op("eor", ModeAbsolute, 4, (*CPU).eor),
    0x5d: opPage("eor", ModeAbsoluteX, 4, (*CPU).eor),
    0x59: opPage("eor", ModeAbsoluteY, 4, (*CPU).eor),
    0x41: op("eor", ModeIndirectX, 6, (*CPU).eor),
    0x51: opPage("eor", ModeIndirectY, 5, (*CPU).eor),

    0xe6: op("inc", ModeZeroPage, 5, (*CPU).inc),
    0xf6: op("inc", ModeZeroPageX, 6, (*CPU).inc),
    0xee: op("inc", ModeAbsolute, 6, (*CPU).inc),
    0xfe: op("inc", ModeAbsoluteX, 7, (*CPU).inc),

    0xe8: op("inx", ModeImplied, 2, (*CPU).inx),
    0xc8: op("iny", ModeImplied, 2, (*CPU).iny),

    0x4c: op("jmp", ModeAbsolute, 3, (*CPU).jmp),
    0x6c: op("jmp", ModeIndirect, 5, (*CPU).jmp),

    0x20: op("jsr", ModeAbsolute, 6, (*CPU).jsr),

    0xa9: op("lda", ModeImmediate, 2, (*CPU).lda),
    0xa5: op("lda", ModeZeroPage, 3, (*CPU).lda),
    0xb5: op("lda", ModeZeroPageX, 4, (*CPU).lda),
    0xad: op("lda", ModeAbsolute, 4, (*CPU).lda),
    0xbd: opPage("lda", ModeAbsoluteX, 4, (*CPU).lda),
    0xb9: opPage("lda", ModeAbsoluteY, 4, (*CPU).lda),
    0xa1: op("lda", ModeIndirectX, 6, (*CPU).lda),
    0xb1: opPage("lda", ModeIndirectY, 5, (*CPU).lda),

    0xa2: op("ldx", ModeImmediate, 2, (*CPU).ldx),
    0xa6: op("ldx", ModeZeroPage, 3, (*CPU).ldx),
    0xb6: op("ldx", ModeZeroPageY, 4, (*CPU).ldx),
    0xae: op("ldx", ModeAbsolute, 4, (*CPU).ldx),
    0xbe: opPage("ldx", ModeAbsoluteY, 4, (*CPU).ldx),

    0xa0: op("ldy", ModeImmediate, 2, (*CPU).ldy),
    0xa4: op("ldy", ModeZeroPage, 3, (*CPU).ldy),
    0xb4: op("ldy", ModeZeroPageX, 4, (*CPU).ldy),
    0xac: op("ldy", ModeAbsolute, 4, (*CPU).ldy),
    0xbc: opPage("ldy", ModeAbsoluteX, 4, (*CPU).ldy),

    0x4a: op("lsr", ModeAccumulator, 2, (*CPU).lsr),
    0x46: op("lsr", ModeZeroPage, 5, (*CPU).lsr),
    0x56: op("lsr", ModeZeroPageX, 6, (*CPU).lsr),
    0x4e: op("lsr", ModeAbsolute, 6, (*CPU).lsr),
    0x5e: op("lsr", ModeAbsoluteX, 7, (*CPU).lsr),

    0xea: op("nop", ModeImplied, 2, (*CPU).nop),

    0x09: op("ora", ModeImmediate, 2, (*CPU).ora),
    0x05: op("ora", ModeZeroPage, 3, (*CPU).ora),
    0x15: op("ora", ModeZeroPageX, 4, (*CPU).ora),
    0x0d: op("ora", ModeAbsolute, 4, (*CPU).ora),
    0x1d: opPage("ora", ModeAbsoluteX, 4, (*CPU).ora),
    0x19: opPage("ora", ModeAbsoluteY, 4, (*CPU).ora),
    0x01: op("ora", ModeIndirectX, 6, (*CPU).ora),
    0x11: opPage("ora", ModeIndirectY, 5, (*CPU).ora),

    0x48: op("pha", ModeImplied, 3, (*CPU).pha),
    0x08: op("php", ModeImplied, 3, (*CPU).php),
    0x68: op("pla", ModeImplied, 4, (*CPU).pla),
    0x28: op("plp", ModeImplied, 4, (*CPU).plp),

    0x2a: op("rol", ModeAccumulator, 2, (*CPU).rol),
    0x26: op("rol", ModeZeroPage, 5, (*CPU).rol),
    0x36: op("rol", ModeZeroPageX, 6, (*CPU).rol),
    0x2e: op("rol", ModeAbsolute, 6, (*CPU).rol),
    0x3e: op("rol", ModeAbsoluteX, 7, (*CPU).rol),

    0x6a: op("ror", ModeAccumulator, 2, (*CPU).ror),
    0x66: op("ror", ModeZeroPage, 5, (*CPU).ror),
    0x76: op("ror", ModeZeroPageX, 6, (*CPU).ror),
    0x6e: op("ror", ModeAbsolute, 6, (*CPU).ror),
    0x7e: op("ror", ModeAbsoluteX, 7, (*CPU).ror),

    0x40: op("rti", ModeImplied, 6, (*CPU).rti),
    0x60: op("rts", ModeImplied, 6, (*CPU).rts),

    0xe9: op("sbc", ModeImmediate, 2, (*CPU).sbc),
    0xe5: op("sbc", ModeZeroPage, 3, (*CPU).sbc),
    0xf5: op("sbc", ModeZeroPageX, 4, (*CPU).sbc),
    0xed: op("sbc", ModeAbsolute, 4, (*CPU).sbc),
    0xfd: opPage("sbc", ModeAbsoluteX, 4, (*CPU).sbc),
    0xf9: opPage("sbc", ModeAbsoluteY, 4, (*CPU).sbc),
    0xe1: op("sbc", ModeIndirectX, 6, (*CPU).sbc),
    0xf1: opPage("sbc", ModeIndirectY, 5, (*CPU).sbc),

    0x38: op("sec", ModeImplied, 2, (*CPU).sec),
    0xf8: op("sed", ModeImplied, 2, (*CPU).sed),
    0x78: op("sei", ModeImplied, 2, (*CPU).sei),

    0x85: op("sta", ModeZeroPage, 3, (*CPU).sta),
    0x95: op("sta", ModeZeroPageX, 4, (*CPU).sta),
    0x8d: op("sta", ModeAbsolute, 4, (*CPU).sta),
    0x9d: op("sta", ModeAbsoluteX, 5, (*CPU).sta),
    0x99: op("sta", ModeAbsoluteY, 5, (*CPU).sta),
    0x81: op("sta", ModeIndirectX, 6, (*CPU).sta),
    0x91: op("sta", ModeIndirectY, 6, (*CPU).sta),

    0x86: op("stx", ModeZeroPage, 3, (*CPU).stx),
    0x96: op("stx", ModeZeroPageY, 4, (*CPU).stx),
    0x8e: op("stx", ModeAbsolute, 4, (*CPU).stx),

    0x84: op("sty", ModeZeroPage, 3, (*CPU).sty),
    0x94: op("sty", ModeZeroPageX, 4, (*CPU).sty),
    0x8c: op("sty", ModeAbsolute, 4, (*CPU).sty),

    0xaa: op("tax", ModeImplied, 2, (*CPU).tax),
    0xa8: op("tay", ModeImplied, 2, (*CPU).tay),
    0xba: op("tsx", ModeImplied, 2, (*CPU).tsx),
    0x8a: op("txa", ModeImplied, 2, (*CPU).txa),
    0x9a: op("txs", ModeImplied, 2, (*CPU).txs),
    0x98: op("tya", ModeImplied, 2, (*CPU).tya),
}
