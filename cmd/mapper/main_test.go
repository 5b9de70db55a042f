package main

import (
    "os"
    "path/filepath"
    "testing"

    nes "github.com/kazzmir/nescore/lib"
)

func TestGetRoms(test *testing.T){
    directory := test.TempDir()

    nrom := nes.MakeBlankCartridge()
    other := nes.MakeBlankCartridge()
    other.Mapper = 0x12

    os.WriteFile(filepath.Join(directory, "a.nes"), nrom.Bytes(), 0644)
    os.WriteFile(filepath.Join(directory, "b.NES"), other.Bytes(), 0644)
    os.WriteFile(filepath.Join(directory, "c.txt"), nrom.Bytes(), 0644)
    os.WriteFile(filepath.Join(directory, "d.nes"), []byte("junk"), 0644)

    roms := getRoms(directory, 0)
    if len(roms) != 1 || filepath.Base(roms[0]) != "a.nes" {
        test.Fatalf("expected only a.nes but found %v", roms)
    }

    roms = getRoms(directory, 0x12)
    if len(roms) != 1 || filepath.Base(roms[0]) != "b.NES" {
        test.Fatalf("expected only b.NES but found %v", roms)
    }

    err := displayInfo(filepath.Join(directory, "b.NES"))
    if err != nil {
        test.Fatalf("info should report unsupported mappers without failing: %v", err)
    }
}
