package lib

import (
    "bytes"
    "errors"
    "fmt"
    "log"
    "os"
)

var ErrInvalidFormat = errors.New("invalid nes file")
var ErrUnsupportedMapper = errors.New("unsupported mapper")

const nesHeaderSize = 16
const trainerSize = 512

func isINes(check []byte) bool {
    if len(check) != 4 {
        return false
    }

    return bytes.Equal(check, []byte{'N', 'E', 'S', 0x1a})
}

func isNes2(nesHeader []byte) bool {
    if len(nesHeader) < 8 {
        return false
    }

    /* this operation looks at bits 2 and 3, makes sure that bit 3 is 1
     * and bit 2 is 0
     */
    return nesHeader[7] & 0xc == 0x8
}

/* the low nibble of the mapper lives in the high nibble of byte 6,
 * the high nibble of the mapper lives in the high nibble of byte 7
 */
func readMapper(header []byte) byte {
    return (header[7] & 0xf0) | (header[6] >> 4)
}

type Cartridge struct {
    ProgramBanks []ProgramBank
    CharacterBanks []CharacterBank
    Mapper byte
    Trainer bool
    VerticalMirror bool
    Battery bool
    Nes2 bool
}

func (cartridge *Cartridge) ProgramSize() int {
    return len(cartridge.ProgramBanks) * ProgramBankSize
}

func (cartridge *Cartridge) CharacterSize() int {
    return len(cartridge.CharacterBanks) * CharacterBankSize
}

func (cartridge *Cartridge) String() string {
    return fmt.Sprintf("mapper %v, %v program banks (%vk), %v character banks (%vk), vertical mirror %v, battery %v, trainer %v, nes2 %v",
                       cartridge.Mapper,
                       len(cartridge.ProgramBanks), cartridge.ProgramSize() / 1024,
                       len(cartridge.CharacterBanks), cartridge.CharacterSize() / 1024,
                       cartridge.VerticalMirror, cartridge.Battery, cartridge.Trainer, cartridge.Nes2)
}

/* a blank nrom cartridge with a single program bank, used when code is
 * injected directly with CPU.Load instead of coming from a .nes file
 */
func MakeBlankCartridge() *Cartridge {
    return &Cartridge{
        ProgramBanks: make([]ProgramBank, 1),
        Mapper: 0,
    }
}

/* validate the header, skip the trainer and copy the banks out of raw */
func ReadNesBytes(raw []byte) (*Cartridge, error) {
    if len(raw) < nesHeaderSize {
        return nil, fmt.Errorf("%w: header is %v bytes, expected %v", ErrInvalidFormat, len(raw), nesHeaderSize)
    }

    header := raw[0:nesHeaderSize]
    if !isINes(header[0:4]) {
        return nil, fmt.Errorf("%w: bad signature % x", ErrInvalidFormat, header[0:4])
    }

    programCount := int(header[4])
    characterCount := int(header[5])
    mapper := readMapper(header)

    cartridge := Cartridge{
        Mapper: mapper,
        VerticalMirror: header[6] & 0x1 == 0x1,
        Battery: header[6] & 0x2 == 0x2,
        Trainer: header[6] & 0x4 == 0x4,
        Nes2: isNes2(header),
    }

    if cartridge.Nes2 {
        log.Printf("Warning: nes 2.0 header, only the ines fields will be used")
    }

    if mapper != 0 {
        return nil, fmt.Errorf("%w: %v", ErrUnsupportedMapper, mapper)
    }

    if programCount == 0 {
        return nil, fmt.Errorf("%w: no program banks", ErrInvalidFormat)
    }

    /* nrom-128 has one bank, nrom-256 has two */
    if programCount > 2 {
        return nil, fmt.Errorf("%w: mapper 0 supports 1 or 2 program banks but the header lists %v", ErrInvalidFormat, programCount)
    }

    offset := nesHeaderSize
    if cartridge.Trainer {
        offset += trainerSize
    }

    need := offset + programCount * ProgramBankSize + characterCount * CharacterBankSize
    if len(raw) < need {
        return nil, fmt.Errorf("%w: truncated data, have %v bytes but need %v", ErrInvalidFormat, len(raw), need)
    }

    cartridge.ProgramBanks = make([]ProgramBank, programCount)
    for i := 0; i < programCount; i++ {
        copy(cartridge.ProgramBanks[i][:], raw[offset:offset + ProgramBankSize])
        offset += ProgramBankSize
    }

    cartridge.CharacterBanks = make([]CharacterBank, characterCount)
    for i := 0; i < characterCount; i++ {
        copy(cartridge.CharacterBanks[i][:], raw[offset:offset + CharacterBankSize])
        offset += CharacterBankSize
    }

    return &cartridge, nil
}

func ParseNesFile(path string) (*Cartridge, error) {
    raw, err := os.ReadFile(path)
    if err != nil {
        return nil, err
    }

    cartridge, err := ReadNesBytes(raw)
    if err != nil {
        return nil, fmt.Errorf("%v: %w", path, err)
    }

    return cartridge, nil
}

/* build an ines image, the inverse of ReadNesBytes. useful for tests and tools
 * that synthesize cartridges
 */
func (cartridge *Cartridge) Bytes() []byte {
    var out bytes.Buffer
    flags6 := (cartridge.Mapper & 0xf) << 4
    if cartridge.VerticalMirror {
        flags6 |= 0x1
    }
    if cartridge.Battery {
        flags6 |= 0x2
    }
    if cartridge.Trainer {
        flags6 |= 0x4
    }
    flags7 := cartridge.Mapper & 0xf0

    out.Write([]byte{'N', 'E', 'S', 0x1a, byte(len(cartridge.ProgramBanks)), byte(len(cartridge.CharacterBanks)), flags6, flags7})
    out.Write(make([]byte, nesHeaderSize - 8))
    if cartridge.Trainer {
        out.Write(make([]byte, trainerSize))
    }
    for i := range cartridge.ProgramBanks {
        out.Write(cartridge.ProgramBanks[i][:])
    }
    for i := range cartridge.CharacterBanks {
        out.Write(cartridge.CharacterBanks[i][:])
    }
    return out.Bytes()
}
