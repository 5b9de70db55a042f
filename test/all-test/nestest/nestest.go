package nestest

import (
    "bufio"
    "errors"
    "fmt"
    "io"
    "log"
    "os"
    "regexp"
    "strconv"
    "strings"

    nes "github.com/kazzmir/nescore/lib"
)

/* Run kevtris' nestest.nes in automation mode: start at 0xc000 instead of
 * the reset vector and compare every instruction against the golden log.
 * Only the documented opcodes are checked, the run stops at the first
 * unofficial one.
 */

const DefaultRom = "test-roms/nestest.nes"
const DefaultLog = "test-roms/nestest.log"

const StartAddress uint16 = 0xc000

/* nestest writes an error code for the documented opcode tests here, 0 means
 * everything passed
 */
const ResultAddress uint16 = 0x02

/* the golden log has 8991 lines, anything past this is a runaway program */
const MaxInstructions = 20000

type Expected struct {
    Line int
    PC uint16
    A byte
    X byte
    Y byte
    P byte
    SP byte
    Cycle uint64
    Unofficial bool
}

func (expected *Expected) Matches(cpu *nes.CPU) bool {
    return expected.PC == cpu.PC &&
           expected.A == cpu.A &&
           expected.X == cpu.X &&
           expected.Y == cpu.Y &&
           expected.P == byte(cpu.Status) &&
           expected.SP == cpu.SP &&
           expected.Cycle == cpu.Cycles
}

func (expected *Expected) String() string {
    return fmt.Sprintf("%04X A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%v", expected.PC, expected.A, expected.X, expected.Y, expected.P, expected.SP, expected.Cycle)
}

var registerPattern = regexp.MustCompile(`A:([0-9A-F]{2}) X:([0-9A-F]{2}) Y:([0-9A-F]{2}) P:([0-9A-F]{2}) SP:([0-9A-F]{2}).*CYC:(\d+)`)

func parseHex(text string) uint64 {
    value, _ := strconv.ParseUint(text, 16, 16)
    return value
}

/* C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 21 CYC:7 */
func parseLine(line string, number int) (Expected, error) {
    if len(line) < 20 {
        return Expected{}, fmt.Errorf("line %v is too short", number)
    }

    pc, err := strconv.ParseUint(line[0:4], 16, 16)
    if err != nil {
        return Expected{}, fmt.Errorf("line %v: bad pc: %w", number, err)
    }

    match := registerPattern.FindStringSubmatch(line)
    if match == nil {
        return Expected{}, fmt.Errorf("line %v: no registers found", number)
    }

    cycle, err := strconv.ParseUint(match[6], 10, 64)
    if err != nil {
        return Expected{}, fmt.Errorf("line %v: bad cycle: %w", number, err)
    }

    return Expected{
        Line: number,
        PC: uint16(pc),
        A: byte(parseHex(match[1])),
        X: byte(parseHex(match[2])),
        Y: byte(parseHex(match[3])),
        P: byte(parseHex(match[4])),
        SP: byte(parseHex(match[5])),
        Cycle: cycle,
        /* unofficial opcodes are marked with a * before the mnemonic */
        Unofficial: strings.Contains(line[:20], "*"),
    }, nil
}

func ParseLog(reader io.Reader) ([]Expected, error) {
    var out []Expected
    scanner := bufio.NewScanner(reader)
    number := 0
    for scanner.Scan() {
        number += 1
        line := strings.TrimSpace(scanner.Text())
        if line == "" {
            continue
        }
        expected, err := parseLine(line, number)
        if err != nil {
            return nil, err
        }
        out = append(out, expected)
    }
    return out, scanner.Err()
}

/* one line in the same layout as the golden log, without the ppu column */
func TraceLine(cpu *nes.CPU) string {
    var raw strings.Builder
    text := ""
    instruction, err := cpu.Fetch()
    if err == nil {
        raw.WriteString(fmt.Sprintf("%02X", instruction.Kind))
        for _, operand := range instruction.Operands {
            raw.WriteString(fmt.Sprintf(" %02X", operand))
        }
        text = instruction.Assembly(cpu.PC)
    } else {
        raw.WriteString(fmt.Sprintf("%02X", cpu.LoadMemory(cpu.PC)))
        text = "???"
    }

    return fmt.Sprintf("%04X  %-8v  %-31v A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%v",
                       cpu.PC, raw.String(), text, cpu.A, cpu.X, cpu.Y, byte(cpu.Status), cpu.SP, cpu.Cycles)
}

/* the power up state nestest's log starts from */
func MakeCPU(cartridge *nes.Cartridge) (*nes.CPU, error) {
    bus, err := nes.NewCartridgeBus(cartridge, nes.BusConfig{})
    if err != nil {
        return nil, err
    }

    cpu := nes.NewCPU(bus)
    cpu.Reset()
    cpu.PC = StartAddress
    cpu.Status = 0x24
    cpu.Cycles = 7
    return cpu, nil
}

/* run until the first unofficial opcode. golden may be nil, trace may be nil.
 * returns the number of instructions executed
 */
func Execute(cpu *nes.CPU, golden []Expected, trace io.Writer) (int, error) {
    count := 0
    for count < MaxInstructions {
        if count < len(golden) {
            expected := &golden[count]
            if expected.Unofficial {
                return count, nil
            }
            if !expected.Matches(cpu) {
                return count, fmt.Errorf("log line %v: expected %v but have %v", expected.Line, expected.String(), TraceLine(cpu))
            }
        } else if golden != nil {
            return count, nil
        }

        _, err := cpu.Fetch()
        if errors.Is(err, nes.ErrUnknownOpcode) {
            return count, nil
        }

        if trace != nil {
            fmt.Fprintln(trace, TraceLine(cpu))
        }

        cpu.RunInstruction()
        count += 1
    }

    return count, fmt.Errorf("no end after %v instructions", count)
}

func Run(debug bool) (bool, error) {
    return RunFiles(DefaultRom, DefaultLog, "", debug)
}

/* tracePath is optional, the log is only compared when it exists */
func RunFiles(romPath string, logPath string, tracePath string, debug bool) (bool, error) {
    cartridge, err := nes.ParseNesFile(romPath)
    if err != nil {
        return false, err
    }

    cpu, err := MakeCPU(cartridge)
    if err != nil {
        return false, err
    }

    var golden []Expected
    logFile, err := os.Open(logPath)
    if err == nil {
        golden, err = ParseLog(logFile)
        logFile.Close()
        if err != nil {
            return false, err
        }
    } else if debug {
        log.Printf("No golden log at %v, only checking the result code", logPath)
    }

    var trace io.Writer
    if tracePath != "" {
        file, err := os.Create(tracePath)
        if err != nil {
            return false, err
        }
        defer file.Close()
        buffered := bufio.NewWriter(file)
        defer buffered.Flush()
        trace = buffered
    }

    count, err := Execute(cpu, golden, trace)
    if debug {
        log.Printf("Executed %v instructions", count)
    }
    if err != nil {
        return false, err
    }

    result := cpu.LoadMemory(ResultAddress)
    if result != 0 {
        return false, fmt.Errorf("nestest reported error code 0x%x", result)
    }

    return true, nil
}
