package programs

import (
    "fmt"
    "log"

    "github.com/kazzmir/nescore/cmd/nes/common"
    "github.com/kazzmir/nescore/data"
    nes "github.com/kazzmir/nescore/lib"
    test_utils "github.com/kazzmir/nescore/test/all-test/utils"
)

/* every program ends in a jmp-to-self or branch-to-self loop well before this */
const MaxCycles = 5000

type Check func(cpu *nes.CPU) error

func expectMemory(address uint16, values ...byte) Check {
    return func(cpu *nes.CPU) error {
        for i, value := range values {
            got := cpu.LoadMemory(address + uint16(i))
            if got != value {
                return fmt.Errorf("expected 0x%x at 0x%x but found 0x%x", value, address + uint16(i), got)
            }
        }
        return nil
    }
}

func expectStack(sp byte) Check {
    return func(cpu *nes.CPU) error {
        if cpu.SP != sp {
            return fmt.Errorf("expected SP 0x%x but was 0x%x", sp, cpu.SP)
        }
        return nil
    }
}

type Program struct {
    Name string
    Checks []Check
}

var Programs = []Program{
    {"sum.hex", []Check{expectMemory(0x00, 55)}},
    {"fibonacci.hex", []Check{expectMemory(0x200, 1, 1, 2, 3, 5, 8, 13, 21, 34, 55)}},
    {"subroutine.hex", []Check{expectMemory(0x01, 7), expectStack(0xfd)}},
    {"copy.hex", []Check{expectMemory(0x300, 0xde, 0xad, 0xbe, 0xef)}},
}

/* load a listing from the data package, run it and apply its checks */
func RunProgram(program Program, debug bool) (*nes.CPU, error) {
    text, err := data.ReadProgram(program.Name)
    if err != nil {
        return nil, err
    }

    code, err := common.ParseProgram(text)
    if err != nil {
        return nil, fmt.Errorf("%v: %w", program.Name, err)
    }

    config := nes.BusConfig{StrictStubs: true}
    if debug {
        config.Debug = 1
    }

    cpu, err := common.SetupCPU(nil, code, config)
    if err != nil {
        return nil, err
    }

    for cpu.Cycles < MaxCycles {
        cpu.Cycle()
    }

    for _, check := range program.Checks {
        err := check(cpu)
        if err != nil {
            return cpu, fmt.Errorf("%v: %w", program.Name, err)
        }
    }

    return cpu, nil
}

/* every listing embedded in the data package must have an entry in Programs */
func unusedListings(programs []Program) ([]string, error) {
    names, err := data.ListPrograms()
    if err != nil {
        return nil, err
    }

    known := make(map[string]bool)
    for _, program := range programs {
        known[program.Name] = true
    }

    var out []string
    for _, name := range names {
        if !known[name] {
            out = append(out, name)
        }
    }
    return out, nil
}

func Run(debug bool) (bool, error) {
    unused, err := unusedListings(Programs)
    if err != nil {
        return false, err
    }

    ok := true
    for _, name := range unused {
        ok = test_utils.Report(fmt.Sprintf("program %v", name), false, fmt.Errorf("no checks for this listing")) && ok
    }

    for _, program := range Programs {
        _, err := RunProgram(program, debug)
        if err != nil {
            log.Printf("Error: %v", err)
        }
        ok = test_utils.Report(fmt.Sprintf("program %v", program.Name), err == nil, nil) && ok
    }
    return ok, nil
}
