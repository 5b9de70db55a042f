package lib

import (
    "bytes"
    "errors"
    "fmt"
    "io"
    "strings"
)

var ErrUnknownOpcode = errors.New("unknown instruction")

type Instruction struct {
    Name string
    Kind byte
    Mode AddressingMode
    Operands []byte
}

func (instruction *Instruction) Length() uint16 {
    return 1 + uint16(len(instruction.Operands))
}

func (instruction *Instruction) OperandByte() (byte, error) {
    if len(instruction.Operands) != 1 {
        return 0, fmt.Errorf("dont have one operand for %v, only have %v", instruction.Name, len(instruction.Operands))
    }
    return instruction.Operands[0], nil
}

func (instruction *Instruction) OperandWord() (uint16, error) {
    if len(instruction.Operands) != 2 {
        return 0, fmt.Errorf("dont have two operands for %v, only have %v", instruction.Name, len(instruction.Operands))
    }
    high := instruction.Operands[1]
    low := instruction.Operands[0]
    return (uint16(high) << 8) | uint16(low), nil
}

func (instruction *Instruction) String() string {
    var out bytes.Buffer
    out.WriteString(fmt.Sprintf("%02X ", instruction.Kind))
    out.WriteString(instruction.Name)
    for _, operand := range instruction.Operands {
        out.WriteRune(' ')
        out.WriteString(fmt.Sprintf("0x%x", operand))
    }
    return out.String()
}

/* assembler syntax, e.g. "LDA ($80),Y". pc is the address of the
 * instruction and is needed to print the target of a branch
 */
func (instruction *Instruction) Assembly(pc uint16) string {
    name := strings.ToUpper(instruction.Name)
    value, _ := instruction.OperandByte()
    word, _ := instruction.OperandWord()

    switch instruction.Mode {
        case ModeAccumulator: return name + " A"
        case ModeImmediate: return fmt.Sprintf("%v #$%02X", name, value)
        case ModeZeroPage: return fmt.Sprintf("%v $%02X", name, value)
        case ModeZeroPageX: return fmt.Sprintf("%v $%02X,X", name, value)
        case ModeZeroPageY: return fmt.Sprintf("%v $%02X,Y", name, value)
        case ModeAbsolute: return fmt.Sprintf("%v $%04X", name, word)
        case ModeAbsoluteX: return fmt.Sprintf("%v $%04X,X", name, word)
        case ModeAbsoluteY: return fmt.Sprintf("%v $%04X,Y", name, word)
        case ModeIndirect: return fmt.Sprintf("%v ($%04X)", name, word)
        case ModeIndirectX: return fmt.Sprintf("%v ($%02X,X)", name, value)
        case ModeIndirectY: return fmt.Sprintf("%v ($%02X),Y", name, value)
        case ModeRelative:
            target := uint16(int(pc) + 2 + int(int8(value)))
            return fmt.Sprintf("%v $%04X", name, target)
    }

    return name
}

func makeInstruction(kind byte, opcode Opcode, operands []byte) Instruction {
    return Instruction{
        Name: opcode.Name,
        Kind: kind,
        Mode: opcode.Mode,
        Operands: operands,
    }
}

type InstructionReader struct {
    data io.Reader
}

func NewInstructionReader(data []byte) *InstructionReader {
    return &InstructionReader{
        data: bytes.NewReader(data),
    }
}

/* instructions can vary in their size */
func (reader *InstructionReader) ReadInstruction() (Instruction, error) {
    first := make([]byte, 1)
    _, err := io.ReadFull(reader.data, first)
    if err != nil {
        return Instruction{}, err
    }

    opcode := LookupOpcode(first[0])
    if !opcode.Implemented() {
        return Instruction{}, fmt.Errorf("%w: 0x%x", ErrUnknownOpcode, first[0])
    }

    operands := make([]byte, opcode.Mode.Operands())
    _, err = io.ReadFull(reader.data, operands)
    if err != nil {
        return Instruction{}, fmt.Errorf("unable to read %v operands for instruction %v", len(operands), opcode.Name)
    }

    return makeInstruction(first[0], opcode, operands), nil
}

/* decode the instruction at PC without executing it */
func (cpu *CPU) Fetch() (Instruction, error) {
    first := cpu.LoadMemory(cpu.PC)
    opcode := LookupOpcode(first)
    if !opcode.Implemented() {
        return Instruction{}, fmt.Errorf("%w: 0x%x at 0x%x", ErrUnknownOpcode, first, cpu.PC)
    }

    operands := make([]byte, opcode.Mode.Operands())
    for i := range operands {
        operands[i] = cpu.LoadMemory(cpu.PC + uint16(i + 1))
    }

    return makeInstruction(first, opcode, operands), nil
}

/* one line per instruction, "8000: A9 12     LDA #$12". unknown bytes are
 * printed as data and skipped
 */
func Disassemble(code []byte, origin uint16) []string {
    var out []string
    pc := origin
    for offset := 0; offset < len(code); {
        opcode := LookupOpcode(code[offset])
        length := int(opcode.Length())
        if !opcode.Implemented() || offset + length > len(code) {
            out = append(out, fmt.Sprintf("%04X: %02X        .byte $%02X", pc, code[offset], code[offset]))
            offset += 1
            pc += 1
            continue
        }

        instruction := makeInstruction(code[offset], opcode, code[offset+1:offset+length])
        var raw strings.Builder
        for _, value := range code[offset:offset+length] {
            raw.WriteString(fmt.Sprintf("%02X ", value))
        }
        out = append(out, fmt.Sprintf("%04X: %-9v %v", pc, raw.String(), instruction.Assembly(pc)))
        offset += length
        pc += uint16(length)
    }

    return out
}
