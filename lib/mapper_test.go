package lib

import (
    "errors"
    "testing"
)

func TestMapper0Mirror(test *testing.T){
    mapper, err := MakeMapper0(MakeBlankCartridge())
    if err != nil {
        test.Fatalf("could not make mapper: %v", err)
    }

    if mapper.Name() != "nrom-128" || mapper.ProgramSize() != 0x4000 {
        test.Fatalf("unexpected mapper %v with size %v", mapper.Name(), mapper.ProgramSize())
    }

    err = mapper.Store(0x8123, 0x55)
    if err != nil {
        test.Fatalf("store failed: %v", err)
    }

    if mapper.Read(0xc123) != 0x55 {
        test.Fatalf("0xc123 should mirror 0x8123")
    }

    /* storing through the mirror lands in the same bank */
    mapper.Store(0xfffc, 0x11)
    if mapper.Read(0xbffc) != 0x11 {
        test.Fatalf("0xbffc should mirror 0xfffc")
    }
}

func TestMapper0Flat(test *testing.T){
    cartridge := &Cartridge{ProgramBanks: make([]ProgramBank, 2)}
    cartridge.ProgramBanks[0][0] = 0x01
    cartridge.ProgramBanks[1][0] = 0x02

    mapper, err := MakeMapper0(cartridge)
    if err != nil {
        test.Fatalf("could not make mapper: %v", err)
    }

    if mapper.Name() != "nrom-256" || mapper.ProgramSize() != 0x8000 {
        test.Fatalf("unexpected mapper %v with size %v", mapper.Name(), mapper.ProgramSize())
    }

    if mapper.Read(0x8000) != 0x01 || mapper.Read(0xc000) != 0x02 {
        test.Fatalf("banks not mapped flat: 0x%x 0x%x", mapper.Read(0x8000), mapper.Read(0xc000))
    }
}

func TestMapper0Errors(test *testing.T){
    _, err := MakeMapper0(&Cartridge{ProgramBanks: make([]ProgramBank, 3)})
    if !errors.Is(err, ErrInvalidFormat) {
        test.Fatalf("expected invalid format for 3 banks but got %v", err)
    }

    mapper, _ := MakeMapper0(MakeBlankCartridge())
    err = mapper.Write(0x8000, 1)
    if !errors.Is(err, ErrReadOnly) {
        test.Fatalf("expected read only but got %v", err)
    }

    err = mapper.Store(0x7fff, 1)
    if err == nil {
        test.Fatalf("store below the program window should fail")
    }
}

func TestMakeMapper(test *testing.T){
    cartridge := MakeBlankCartridge()
    mapper, err := MakeMapper(cartridge)
    if err != nil {
        test.Fatalf("could not make mapper 0: %v", err)
    }
    if mapper.Name() != "nrom-128" {
        test.Fatalf("unexpected mapper %v", mapper.Name())
    }

    cartridge.Mapper = 1
    _, err = MakeMapper(cartridge)
    if !errors.Is(err, ErrUnsupportedMapper) {
        test.Fatalf("expected unsupported mapper but got %v", err)
    }
}
