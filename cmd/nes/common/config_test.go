package common

import (
    "os"
    "path/filepath"
    "testing"

    nes "github.com/kazzmir/nescore/lib"
)

func TestConfigMissing(test *testing.T){
    data, err := LoadConfigFrom(filepath.Join(test.TempDir(), "config.json"))
    if err == nil {
        test.Fatalf("expected an error for a missing file")
    }

    if data.Version != CurrentVersion || data.ClockHz != nes.CPUSpeed || data.MaxCycles != 0 {
        test.Fatalf("expected defaults but got %+v", data)
    }
}

func TestConfigRoundTrip(test *testing.T){
    path := filepath.Join(test.TempDir(), "config.json")

    data := DefaultConfigData()
    data.ClockHz = 1000
    data.MaxCycles = 5000
    data.StrictStubs = true
    data.Monitor = true
    data.Breakpoints = []uint16{0x8002, 0xc000}

    err := SaveConfigTo(path, data)
    if err != nil {
        test.Fatalf("could not save: %v", err)
    }

    loaded, err := LoadConfigFrom(path)
    if err != nil {
        test.Fatalf("could not load: %v", err)
    }

    if loaded.ClockHz != 1000 || loaded.MaxCycles != 5000 || !loaded.StrictStubs || !loaded.Monitor {
        test.Fatalf("config did not survive a round trip: %+v", loaded)
    }
    if len(loaded.Breakpoints) != 2 || loaded.Breakpoints[1] != 0xc000 {
        test.Fatalf("breakpoints did not survive a round trip: %v", loaded.Breakpoints)
    }

    if !loaded.BusConfig().StrictStubs {
        test.Fatalf("bus config should be strict")
    }
}

func TestConfigOldVersion(test *testing.T){
    path := filepath.Join(test.TempDir(), "config.json")
    err := os.WriteFile(path, []byte(`{"version": 99, "max-cycles": 10}`), 0644)
    if err != nil {
        test.Fatalf("could not write: %v", err)
    }

    loaded, err := LoadConfigFrom(path)
    if err != nil {
        test.Fatalf("unexpected error: %v", err)
    }
    if loaded.MaxCycles != 0 {
        test.Fatalf("a config from another version should be ignored: %+v", loaded)
    }
}

func TestConfigUserDir(test *testing.T){
    directory := test.TempDir()
    test.Setenv("XDG_CONFIG_HOME", directory)
    test.Setenv("HOME", directory)

    data := DefaultConfigData()
    data.Debug = 2
    err := SaveConfigData(data)
    if err != nil {
        test.Fatalf("could not save: %v", err)
    }

    loaded, err := LoadConfigData()
    if err != nil {
        test.Fatalf("could not load: %v", err)
    }
    if loaded.Debug != 2 {
        test.Fatalf("expected debug 2 but got %v", loaded.Debug)
    }
}
