package lib

/* https://www.masswerk.at/6502/6502_instruction_set.html
 * A = accumulator
 * abs = absolute
 * # = immediate
 * impl = implied
 * ind = indirect
 * rel = relative
 * zpg = zeropage
 */
type AddressingMode int

const (
    ModeImplied AddressingMode = iota
    ModeAccumulator
    ModeImmediate
    ModeZeroPage
    ModeZeroPageX
    ModeZeroPageY
    ModeAbsolute
    ModeAbsoluteX
    ModeAbsoluteY
    ModeIndirect
    ModeIndirectX
    ModeIndirectY
    ModeRelative
)

func (mode AddressingMode) String() string {
    switch mode {
        case ModeImplied: return "impl"
        case ModeAccumulator: return "A"
        case ModeImmediate: return "#"
        case ModeZeroPage: return "zpg"
        case ModeZeroPageX: return "zpg,X"
        case ModeZeroPageY: return "zpg,Y"
        case ModeAbsolute: return "abs"
        case ModeAbsoluteX: return "abs,X"
        case ModeAbsoluteY: return "abs,Y"
        case ModeIndirect: return "ind"
        case ModeIndirectX: return "X,ind"
        case ModeIndirectY: return "ind,Y"
        case ModeRelative: return "rel"
    }
    return "?"
}

/* how many bytes follow the opcode */
func (mode AddressingMode) Operands() int {
    switch mode {
        case ModeImplied, ModeAccumulator:
            return 0
        case ModeAbsolute, ModeAbsoluteX, ModeAbsoluteY, ModeIndirect:
            return 2
        default:
            return 1
    }
}

/* the high byte of an address moved to a different 256 byte page */
func pageCrossed(base uint16, address uint16) bool {
    return (base >> 8) != (address >> 8)
}

/* read a pointer out of the zero page. the high byte comes from
 * (zero+1) mod 256, keeping 'zero' as a byte makes that wrap happen
 */
func (cpu *CPU) readZeroPagePointer(zero byte) uint16 {
    low := uint16(cpu.Bus.Read(uint16(zero)))
    high := uint16(cpu.Bus.Read(uint16(zero + 1)))
    return (high << 8) | low
}

/* Compute the effective address of the instruction at PC for the given
 * mode, along with the un-indexed base address used to detect page
 * crossings. Registers are not modified. Implied and accumulator modes
 * have no address and return 0.
 */
func (cpu *CPU) ResolveAddress(mode AddressingMode) (uint16, uint16) {
    operand := cpu.PC + 1
    switch mode {
        case ModeImmediate:
            return operand, operand
        case ModeZeroPage:
            address := uint16(cpu.Bus.Read(operand))
            return address, address
        case ModeZeroPageX:
            zero := cpu.Bus.Read(operand)
            return uint16(zero + cpu.X), uint16(zero)
        case ModeZeroPageY:
            zero := cpu.Bus.Read(operand)
            return uint16(zero + cpu.Y), uint16(zero)
        case ModeAbsolute:
            address := cpu.Bus.Read16(operand)
            return address, address
        case ModeAbsoluteX:
            base := cpu.Bus.Read16(operand)
            return base + uint16(cpu.X), base
        case ModeAbsoluteY:
            base := cpu.Bus.Read16(operand)
            return base + uint16(cpu.Y), base
        case ModeIndirect:
            pointer := cpu.Bus.Read16(operand)
            low := uint16(cpu.Bus.Read(pointer))
            /* adding 1 to the address used to get the high byte does
             * not use carry, so if pointer=0x30FF then the address
             * used to load the high byte is 0x3000 and not 0x3100
             * http://www.6502.org/tutorials/6502opcodes.html#JMP
             */
            xhigh := (pointer & 0xff00) | uint16(byte(pointer) + 1)
            high := uint16(cpu.Bus.Read(xhigh))
            address := (high << 8) | low
            return address, address
        case ModeIndirectX:
            zero := cpu.Bus.Read(operand)
            address := cpu.readZeroPagePointer(zero + cpu.X)
            return address, address
        case ModeIndirectY:
            zero := cpu.Bus.Read(operand)
            base := cpu.readZeroPagePointer(zero)
            return base + uint16(cpu.Y), base
        case ModeRelative:
            next := cpu.PC + 2
            offset := int8(cpu.Bus.Read(operand))
            return uint16(int(next) + int(offset)), next
    }

    return 0, 0
}
