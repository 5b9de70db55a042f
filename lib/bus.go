package lib

import (
    "errors"
    "fmt"
    "log"
)

var ErrUnmappedAddress = errors.New("unmapped address")

type BusConfig struct {
    /* fail accesses to the unimplemented peripheral regions instead of
     * reading 0 and ignoring writes
     */
    StrictStubs bool
    Debug uint
}

/* The bus owns ram and the cartridge mapper. The cpu only holds a pointer
 * to it for the lifetime of an emulation session.
 */
type Bus struct {
    ram RAM
    mapper Mapper
    Config BusConfig
}

func NewBus(mapper Mapper, config BusConfig) *Bus {
    if mapper == nil {
        /* a blank cartridge always has a valid bank count */
        mapper, _ = MakeMapper0(MakeBlankCartridge())
    }

    return &Bus{
        mapper: mapper,
        Config: config,
    }
}

/* build a bus directly from a cartridge, selecting its mapper */
func NewCartridgeBus(cartridge *Cartridge, config BusConfig) (*Bus, error) {
    mapper, err := MakeMapper(cartridge)
    if err != nil {
        return nil, err
    }
    return NewBus(mapper, config), nil
}

func (bus *Bus) Mapper() Mapper {
    return bus.mapper
}

func (bus *Bus) RAM() []byte {
    return bus.ram[:]
}

/* name of the stub region an address falls in */
func stubRegion(address uint16) string {
    switch {
        case address < 0x4000: return "ppu registers"
        case address < 0x4020: return "apu/io registers"
        case address < 0x6000: return "expansion rom"
        default: return "cartridge ram"
    }
}

func (bus *Bus) TryRead(address uint16) (byte, error) {
    switch {
        case address < 0x2000:
            return bus.ram.Load(address), nil
        case address < 0x8000:
            if bus.Config.StrictStubs {
                return 0, fmt.Errorf("%w: read from %v at 0x%x", ErrUnmappedAddress, stubRegion(address), address)
            }
            return 0, nil
        default:
            return bus.mapper.Read(address), nil
    }
}

func (bus *Bus) Read(address uint16) byte {
    value, err := bus.TryRead(address)
    if err != nil {
        log.Printf("Warning: %v", err)
    }
    return value
}

func (bus *Bus) Write(address uint16, value byte) error {
    switch {
        case address < 0x2000:
            bus.ram.Store(address, value)
            return nil
        case address < 0x8000:
            if bus.Config.StrictStubs {
                return fmt.Errorf("%w: write 0x%x to %v at 0x%x", ErrUnmappedAddress, value, stubRegion(address), address)
            }
            if bus.Config.Debug > 0 {
                log.Printf("Ignoring write of 0x%x to %v at 0x%x", value, stubRegion(address), address)
            }
            return nil
        default:
            return bus.mapper.Write(address, value)
    }
}

/* little endian, two separate byte accesses */
func (bus *Bus) Read16(address uint16) uint16 {
    low := uint16(bus.Read(address))
    high := uint16(bus.Read(address + 1))
    return (high << 8) | low
}

func (bus *Bus) Write16(address uint16, value uint16) error {
    err := bus.Write(address, byte(value & 0xff))
    if err != nil {
        return err
    }
    return bus.Write(address + 1, byte(value >> 8))
}

/* write into the backing store of the program window, bypassing the
 * read-only check
 */
func (bus *Bus) StoreProgram(address uint16, value byte) error {
    return bus.mapper.Store(address, value)
}
