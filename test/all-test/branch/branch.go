package branch

import (
    "fmt"
    "log"
    nes "github.com/kazzmir/nescore/lib"
    test_utils "github.com/kazzmir/nescore/test/all-test/utils"
)

/* Branch timing checks in the spirit of blargg's branch_timing_tests:
 *   not taken: 2 cycles
 *   taken, same page: 3 cycles
 *   taken, crossing a page: 4 cycles
 * for both forward and backward branches.
 */

type Case struct {
    Name string
    /* where the flag setup instruction lives, the branch follows it */
    Address uint16
    Setup byte
    Branch byte
    Offset byte
    Cycles int
    Target uint16
}

const clc = 0x18
const sec = 0x38
const bcc = 0x90
const bcs = 0xb0

var Cases = []Case{
    {"not taken", 0x8000, clc, bcs, 0x10, 2, 0x8003},
    {"forward", 0x8000, clc, bcc, 0x10, 3, 0x8013},
    {"forward across a page", 0x80ef, sec, bcs, 0x20, 4, 0x8112},
    {"backward", 0x8080, sec, bcs, 0xf0, 3, 0x8073},
    {"backward across a page", 0x9000, clc, bcc, 0xf0, 4, 0x8ff3},
}

func storeBytes(bus *nes.Bus, address uint16, values ...byte) error {
    for i, value := range values {
        err := bus.StoreProgram(address + uint16(i), value)
        if err != nil {
            return err
        }
    }
    return nil
}

/* run one case and return the number of cycles the branch took */
func doTest(check Case) (int, error) {
    bus := nes.NewBus(nil, nes.BusConfig{})

    err := storeBytes(bus, check.Address, check.Setup, check.Branch, check.Offset)
    if err != nil {
        return 0, err
    }

    err = storeBytes(bus, nes.ResetVector, byte(check.Address & 0xff), byte(check.Address >> 8))
    if err != nil {
        return 0, err
    }

    cpu := nes.NewCPU(bus)
    cpu.Reset()

    cpu.RunInstruction()
    cycles := cpu.RunInstruction()

    if cpu.PC != check.Target {
        return cycles, fmt.Errorf("expected PC 0x%x after the branch but was 0x%x", check.Target, cpu.PC)
    }

    return cycles, nil
}

func Run(debug bool) (bool, error) {
    ok := true
    for _, check := range Cases {
        cycles, err := doTest(check)
        if err == nil && debug {
            log.Printf("branch %v took %v cycles", check.Name, cycles)
        }
        ok = test_utils.Report(fmt.Sprintf("Branch %v", check.Name), err == nil && cycles == check.Cycles, err) && ok
    }

    return ok, nil
}
