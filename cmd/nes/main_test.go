package main

import (
    "os"
    "path/filepath"
    "testing"

    "github.com/kazzmir/nescore/cmd/nes/common"
    nes "github.com/kazzmir/nescore/lib"
)

func makeMainCPU(test *testing.T) *nes.CPU {
    /* lda #$42, sta $10, jmp $8004 */
    cpu, err := common.SetupCPU(nil, []byte{0xa9, 0x42, 0x85, 0x10, 0x4c, 0x04, 0x80}, nes.BusConfig{})
    if err != nil {
        test.Fatalf("could not set up cpu: %v", err)
    }
    return cpu
}

func TestLoadState(test *testing.T){
    cpu := makeMainCPU(test)
    cpu.RunInstruction()
    cpu.RunInstruction()

    path := filepath.Join(test.TempDir(), "state.json")
    file, err := os.Create(path)
    if err != nil {
        test.Fatalf("could not create state file: %v", err)
    }
    state := cpu.Snapshot()
    err = state.Serialize(file)
    file.Close()
    if err != nil {
        test.Fatalf("could not write state: %v", err)
    }

    other := makeMainCPU(test)
    err = loadState(other, path)
    if err != nil {
        test.Fatalf("could not load state: %v", err)
    }
    if other.A != 0x42 || other.PC != 0x8004 || other.Bus.Read(0x10) != 0x42 || other.Cycles != cpu.Cycles {
        test.Fatalf("state was not restored: %v", other.String())
    }

    err = loadState(other, filepath.Join(test.TempDir(), "missing.json"))
    if err == nil {
        test.Fatalf("expected an error for a missing file")
    }

    /* a state without ram would leave memory half restored */
    short := filepath.Join(test.TempDir(), "short.json")
    os.WriteFile(short, []byte(`{"a": 1, "pc": 32768}`), 0644)
    err = loadState(other, short)
    if err == nil {
        test.Fatalf("expected an error for a state without ram")
    }
}

func TestPeekMemory(test *testing.T){
    cpu := makeMainCPU(test)
    cpu.Bus.Write(0x10, 0x99)

    data := peekMemory(cpu, 0x8000, 3)
    if len(data) != 3 || data[0] != 0xa9 || data[1] != 0x42 || data[2] != 0x85 {
        test.Fatalf("unexpected program bytes % x", data)
    }

    if peekMemory(cpu, 0x0810, 1)[0] != 0x99 {
        test.Fatalf("ram mirror not used")
    }

    if len(peekMemory(cpu, 0xfffe, 8)) != 2 {
        test.Fatalf("peek should stop at the end of memory")
    }
}
