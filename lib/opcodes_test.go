package lib

import (
    "testing"
)

func TestOpcodeTable(test *testing.T){
    implemented := 0
    for value := 0; value < 256; value++ {
        opcode := LookupOpcode(byte(value))
        if !opcode.Implemented() {
            continue
        }
        implemented += 1

        if opcode.Cycles < 2 || opcode.Cycles > 7 {
            test.Errorf("opcode 0x%02x %v has %v cycles", value, opcode.Name, opcode.Cycles)
        }

        if opcode.PageCycle {
            switch opcode.Mode {
                case ModeAbsoluteX, ModeAbsoluteY, ModeIndirectY:
                default:
                    test.Errorf("opcode 0x%02x %v has a page penalty in mode %v", value, opcode.Name, opcode.Mode)
            }

            switch opcode.Name {
                case "sta", "stx", "sty", "asl", "lsr", "rol", "ror", "inc", "dec":
                    test.Errorf("opcode 0x%02x %v writes memory and should not have a page penalty", value, opcode.Name)
            }
        }
    }

    /* the 151 documented opcodes */
    if implemented != 151 {
        test.Fatalf("expected 151 implemented opcodes but found %v", implemented)
    }
}

func TestOpcodeLengths(test *testing.T){
    lengths := map[byte]uint16{
        0xea: 1, 0x0a: 1, 0xa9: 2, 0xa5: 2, 0xb1: 2, 0xd0: 2,
        0xad: 3, 0x6c: 3, 0x20: 3, 0xbd: 3,
    }

    for value, length := range lengths {
        opcode := LookupOpcode(value)
        if opcode.Length() != length {
            test.Errorf("opcode 0x%02x expected length %v but was %v", value, length, opcode.Length())
        }
    }
}

/* every unofficial opcode behaves as a single byte, single cycle no-op */
func TestOpcodeUnimplemented(test *testing.T){
    for value := 0; value < 256; value++ {
        opcode := LookupOpcode(byte(value))
        if opcode.Implemented() {
            continue
        }

        cpu := makeTestCPU()
        err := cpu.Load([]byte{byte(value)})
        if err != nil {
            test.Fatalf("could not load: %v", err)
        }
        cpu.Reset()
        cpu.A = 0x33

        cpu.Cycle()
        if cpu.PC != 0x8001 {
            test.Fatalf("opcode 0x%02x: expected PC 0x8001 but was 0x%x", value, cpu.PC)
        }
        if !cpu.Fetching() {
            test.Fatalf("opcode 0x%02x: expected no pending cycles", value)
        }
        if cpu.A != 0x33 || cpu.Status != 0 || cpu.SP != 0xfd {
            test.Fatalf("opcode 0x%02x changed registers: %v", value, cpu.String())
        }
    }
}

func TestAddressingModeOperands(test *testing.T){
    counts := map[AddressingMode]int{
        ModeImplied: 0, ModeAccumulator: 0,
        ModeImmediate: 1, ModeZeroPage: 1, ModeZeroPageX: 1, ModeZeroPageY: 1,
        ModeIndirectX: 1, ModeIndirectY: 1, ModeRelative: 1,
        ModeAbsolute: 2, ModeAbsoluteX: 2, ModeAbsoluteY: 2, ModeIndirect: 2,
    }

    for mode, count := range counts {
        if mode.Operands() != count {
            test.Errorf("mode %v expected %v operands but has %v", mode, count, mode.Operands())
        }
    }
}

func TestResolveAddress(test *testing.T){
    cpu := loadProgram(test, []byte{0x00, 0xf0, 0x20})
    cpu.X = 0x20
    cpu.Y = 0x30

    check := func(mode AddressingMode, address uint16, base uint16){
        gotAddress, gotBase := cpu.ResolveAddress(mode)
        if gotAddress != address || gotBase != base {
            test.Errorf("mode %v: expected 0x%x/0x%x but got 0x%x/0x%x", mode, address, base, gotAddress, gotBase)
        }
    }

    check(ModeImmediate, 0x8001, 0x8001)
    check(ModeZeroPage, 0xf0, 0xf0)
    check(ModeZeroPageX, 0x10, 0xf0)
    check(ModeZeroPageY, 0x20, 0xf0)
    check(ModeAbsolute, 0x20f0, 0x20f0)
    check(ModeAbsoluteX, 0x2110, 0x20f0)
    check(ModeAbsoluteY, 0x2120, 0x20f0)
    /* 0xf0 is -16 relative to 0x8002 */
    check(ModeRelative, 0x7ff2, 0x8002)

    /* pointers at 0x10 (for X) and 0xf0 (for Y) */
    cpu.Bus.Write(0x10, 0x00)
    cpu.Bus.Write(0x11, 0x03)
    cpu.Bus.Write(0xf0, 0xff)
    cpu.Bus.Write(0xf1, 0x04)
    check(ModeIndirectX, 0x300, 0x300)
    check(ModeIndirectY, 0x052f, 0x04ff)

    if cpu.PC != 0x8000 || cpu.X != 0x20 || cpu.Y != 0x30 {
        test.Fatalf("resolving addresses changed registers: %v", cpu.String())
    }
}

func TestPageCrossed(test *testing.T){
    if pageCrossed(0x10ff, 0x10fe) {
        test.Errorf("same page reported as crossed")
    }
    if !pageCrossed(0x10ff, 0x1100) {
        test.Errorf("page cross not detected")
    }
    if !pageCrossed(0xfff0, 0x000f) {
        test.Errorf("wrap around the top of memory should cross a page")
    }
}
