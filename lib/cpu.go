package lib

import (
    "errors"
    "fmt"
    "log"
)

/* opcode references
 * http://wiki.nesdev.com/w/index.php/CPU_unofficial_opcodes -- nice table of opcodes
 * https://www.masswerk.at/6502/6502_instruction_set.html
 * http://www.6502.org/tutorials/6502opcodes.html
 */

const NMIVector uint16 = 0xfffa
const ResetVector uint16 = 0xfffc
const IRQVector uint16 = 0xfffe

const StackBase uint16 = 0x100
const ProgramStart uint16 = 0x8000

/* http://wiki.nesdev.com/w/index.php/Cycle_reference_chart#Clock_rates
 * NTSC 2c0c clock speed is 21.47~ MHz / 12 = 1.789773 MHz
 * Every second we should run this many cycles
 */
const CPUSpeed float64 = 1.789773e6

var ErrProgramTooLarge = errors.New("program too large")

type CPU struct {
    A byte
    X byte
    Y byte
    SP byte
    PC uint16
    Status StatusFlags

    /* cycles left before the current instruction is finished. while this
     * is non-zero Cycle() only counts down
     */
    Pending int
    /* total ticks since the cpu was created */
    Cycles uint64

    Debug uint

    Bus *Bus
}

/* What an executing instruction sees: its effective address and the
 * address of the next instruction. Control flow instructions set Jumped
 * after writing PC themselves, branches add their extra cycles to Extra.
 */
type Step struct {
    Address uint16
    Base uint16
    Mode AddressingMode
    Next uint16
    Jumped bool
    Extra int
}

func NewCPU(bus *Bus) *CPU {
    return &CPU{
        SP: 0xfd,
        Bus: bus,
    }
}

func (cpu *CPU) Reset() {
    cpu.SP = 0xfd
    cpu.A = 0
    cpu.X = 0
    cpu.Y = 0
    cpu.Status = 0
    cpu.Pending = 0
    cpu.PC = cpu.Bus.Read16(ResetVector)
}

/* Inject a raw program at 0x8000 and point the reset vector at it. This
 * writes the cartridge bank directly, the bus would reject the writes.
 */
func (cpu *CPU) Load(program []byte) error {
    /* leave room for the nmi/reset/irq vectors at the top of the window */
    limit := cpu.Bus.Mapper().ProgramSize() - 6
    if len(program) > limit {
        return fmt.Errorf("%w: %v bytes, at most %v fit before the vectors", ErrProgramTooLarge, len(program), limit)
    }

    for i, value := range program {
        err := cpu.Bus.StoreProgram(ProgramStart + uint16(i), value)
        if err != nil {
            return err
        }
    }

    err := cpu.Bus.StoreProgram(ResetVector, byte(ProgramStart & 0xff))
    if err != nil {
        return err
    }
    return cpu.Bus.StoreProgram(ResetVector + 1, byte(ProgramStart >> 8))
}

/* true when the next tick will fetch a new instruction */
func (cpu *CPU) Fetching() bool {
    return cpu.Pending == 0
}

func (cpu *CPU) String() string {
    return fmt.Sprintf("A:0x%X X:0x%X Y:0x%X SP:0x%X P:0x%X PC:0x%X Cycle:%v", cpu.A, cpu.X, cpu.Y, cpu.SP, byte(cpu.Status), cpu.PC, cpu.Cycles)
}

/* One clock pulse. Either burn a cycle of the instruction in flight, or
 * fetch, decode and fully execute the next instruction.
 */
func (cpu *CPU) Cycle() {
    cpu.Cycles += 1

    if cpu.Pending > 0 {
        cpu.Pending -= 1
        return
    }

    value := cpu.Bus.Read(cpu.PC)
    opcode := &opcodeTable[value]

    if !opcode.Implemented() {
        if cpu.Debug > 0 {
            log.Printf("Warning: unknown opcode 0x%02X at PC 0x%04X, skipping it", value, cpu.PC)
        }
        cpu.PC += 1
        return
    }

    if cpu.Debug > 0 {
        instruction, err := cpu.Fetch()
        if err == nil {
            log.Printf("PC: 0x%x Execute instruction %v A:%X X:%X Y:%X P:%X SP:%X CYC:%v\n", cpu.PC, instruction.String(), cpu.A, cpu.X, cpu.Y, byte(cpu.Status), cpu.SP, cpu.Cycles)
        }
    }

    address, base := cpu.ResolveAddress(opcode.Mode)
    step := Step{
        Address: address,
        Base: base,
        Mode: opcode.Mode,
        Next: cpu.PC + 1 + uint16(opcode.Mode.Operands()),
    }

    cycles := opcode.Cycles
    if opcode.PageCycle && pageCrossed(base, address) {
        cycles += 1
    }

    opcode.execute(cpu, &step)

    cycles += step.Extra
    if !step.Jumped {
        cpu.PC = step.Next
    }

    cpu.Pending = cycles - 1
}

/* run ticks until the instruction that starts at the current PC has
 * completely finished, returns the number of ticks used
 */
func (cpu *CPU) RunInstruction() int {
    ticks := 0
    for {
        cpu.Cycle()
        ticks += 1
        if cpu.Fetching() {
            return ticks
        }
    }
}

func (cpu *CPU) LoadMemory(address uint16) byte {
    return cpu.Bus.Read(address)
}

/* failed writes leave memory untouched and the cpu keeps going */
func (cpu *CPU) StoreMemory(address uint16, value byte) {
    err := cpu.Bus.Write(address, value)
    if err != nil {
        log.Printf("Warning: could not store 0x%x at 0x%x: %v", value, address, err)
    }
}

func (cpu *CPU) PushStack(value byte) {
    cpu.StoreMemory(StackBase + uint16(cpu.SP), value)
    cpu.SP -= 1
}

func (cpu *CPU) PopStack() byte {
    cpu.SP += 1
    return cpu.LoadMemory(StackBase + uint16(cpu.SP))
}

func (cpu *CPU) pushAddress(address uint16) {
    cpu.PushStack(byte(address >> 8))
    cpu.PushStack(byte(address & 0xff))
}

func (cpu *CPU) popAddress() uint16 {
    low := uint16(cpu.PopStack())
    high := uint16(cpu.PopStack())
    return (high << 8) | low
}

/* common entry for nmi, irq and brk. like php, the pushed status always
 * has the break and unused bits set
 */
func (cpu *CPU) interrupt(returnAddress uint16, vector uint16) {
    cpu.pushAddress(returnAddress)
    cpu.PushStack(cpu.Status.Pushed())
    cpu.Status.Set(FlagInterruptDisable)
    cpu.PC = cpu.Bus.Read16(vector)
}

/* NMI was raised, jump to the NMI routine. Call this between
 * instructions, the 7 cycles of the interrupt sequence become pending.
 */
func (cpu *CPU) NMI() {
    cpu.interrupt(cpu.PC, NMIVector)
    cpu.Pending += 7
}

/* maskable interrupt, returns false if the interrupt disable flag blocked it */
func (cpu *CPU) IRQ() bool {
    if cpu.Status.InterruptDisable() {
        return false
    }

    cpu.interrupt(cpu.PC, IRQVector)
    cpu.Pending += 7
    return true
}
