package lib

import (
    "errors"
    "fmt"
)

var ErrReadOnly = errors.New("write to read-only memory")

/* A mapper decides which cartridge bank backs an address in 0x8000-0xffff.
 * The bus calls Read/Write for every access in that window. Store writes
 * into the backing bank directly and is only used to inject code before
 * emulation starts.
 */
type Mapper interface {
    Read(address uint16) byte
    Write(address uint16, value byte) error
    Store(address uint16, value byte) error
    /* number of distinct program bytes visible in the window */
    ProgramSize() int
    Name() string
}

func MakeMapper(cartridge *Cartridge) (Mapper, error) {
    switch cartridge.Mapper {
        case 0: return MakeMapper0(cartridge)
        default: return nil, fmt.Errorf("%w: %v", ErrUnsupportedMapper, cartridge.Mapper)
    }
}

/* http://wiki.nesdev.com/w/index.php/NROM
 * nrom-128: a single 16k bank at 0x8000, mirrored at 0xc000
 * nrom-256: two 16k banks mapped flat across 0x8000-0xffff
 */
type Mapper0 struct {
    Banks []ProgramBank
}

func MakeMapper0(cartridge *Cartridge) (*Mapper0, error) {
    count := len(cartridge.ProgramBanks)
    if count != 1 && count != 2 {
        return nil, fmt.Errorf("%w: mapper0 needs 1 or 2 program banks but was given %v", ErrInvalidFormat, count)
    }

    return &Mapper0{
        Banks: cartridge.ProgramBanks,
    }, nil
}

func (mapper *Mapper0) Name() string {
    if len(mapper.Banks) == 1 {
        return "nrom-128"
    }
    return "nrom-256"
}

func (mapper *Mapper0) ProgramSize() int {
    return len(mapper.Banks) * ProgramBankSize
}

/* which bank and offset back this address */
func (mapper *Mapper0) locate(address uint16) (*ProgramBank, uint16) {
    offset := address & 0x7fff
    /* with one bank the 0xc000 half is a mirror of 0x8000 */
    bank := int(offset / ProgramBankSize) % len(mapper.Banks)
    return &mapper.Banks[bank], offset % ProgramBankSize
}

func (mapper *Mapper0) Read(address uint16) byte {
    bank, offset := mapper.locate(address)
    return bank[offset]
}

func (mapper *Mapper0) Write(address uint16, value byte) error {
    return fmt.Errorf("%w: mapper0 does not support bank switching at address 0x%x: 0x%x", ErrReadOnly, address, value)
}

func (mapper *Mapper0) Store(address uint16, value byte) error {
    if address < 0x8000 {
        return fmt.Errorf("address 0x%x is outside the program window", address)
    }
    bank, offset := mapper.locate(address)
    bank[offset] = value
    return nil
}
