package main

/* CLI utility that helps find and inspect NES files by mapper */

import (
    "fmt"
    "flag"
    "log"
    "os"
    "strings"
    "path/filepath"

    "github.com/kazzmir/nescore/cmd/nes/common"
    nes "github.com/kazzmir/nescore/lib"

    "github.com/fatih/color"
)

/* read just the header, the loader refuses every mapper except 0 so the
 * selector is decoded here directly
 */
func readMapper(path string) (byte, error) {
    file, err := os.Open(path)
    if err != nil {
        return 0, err
    }
    defer file.Close()

    header := make([]byte, 16)
    _, err = file.Read(header)
    if err != nil {
        return 0, err
    }

    if string(header[0:4]) != "NES\x1a" {
        return 0, fmt.Errorf("%w: %v", nes.ErrInvalidFormat, path)
    }

    return (header[7] & 0xf0) | (header[6] >> 4), nil
}

func getRoms(root string, mapper byte) []string {
    /* walk filesystem looking for .nes files and return those that use the given mapper */

    var out []string

    filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
        if err != nil {
            return err
        }

        if strings.ToLower(filepath.Ext(path)) == ".nes" {
            found, err := readMapper(path)
            if err == nil && found == mapper {
                out = append(out, path)
            }
        }

        return nil
    })

    return out
}

func displayRoms(mapper byte) {
    roms := getRoms(".", mapper)
    fmt.Printf("Found %d ROMs for mapper %d\n", len(roms), mapper)
    for _, rom := range roms {
        fmt.Printf("%s\n", rom)
    }
}

func displayInfo(path string) error {
    hash, err := common.GetSha256(path)
    if err != nil {
        return err
    }

    fmt.Printf("%v\n", path)
    fmt.Printf("  sha256 %v\n", hash)

    cartridge, err := nes.ParseNesFile(path)
    if err != nil {
        mapper, headerErr := readMapper(path)
        if headerErr == nil {
            fmt.Printf("  mapper %v\n", mapper)
        }
        fmt.Printf("  %v\n", color.New(color.FgRed).Sprintf("not loadable: %v", err))
        return nil
    }

    fmt.Printf("  %v\n", cartridge.String())
    fmt.Printf("  %v\n", color.New(color.FgGreen).Sprint("loadable"))

    bus, err := nes.NewCartridgeBus(cartridge, nes.BusConfig{})
    if err != nil {
        return err
    }
    fmt.Printf("  %v, reset 0x%04X nmi 0x%04X irq 0x%04X\n", bus.Mapper().Name(), bus.Read16(nes.ResetVector), bus.Read16(nes.NMIVector), bus.Read16(nes.IRQVector))

    return nil
}

func main(){

    findMapper := flag.Int("find", -1, "Find all ROMs with a specific mapper")
    info := flag.String("info", "", "Show the header of a ROM and whether it can be loaded")

    flag.Parse()

    if *findMapper != -1 {
        displayRoms(byte(*findMapper))
    }

    if *info != "" {
        err := displayInfo(*info)
        if err != nil {
            log.Fatalf("Error: %v", err)
        }
    }
}
