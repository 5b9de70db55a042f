package lib

/* http://wiki.nesdev.com/w/index.php/CPU_memory_map
 * 0x0000-0x07ff is the 2k of internal ram, mirrored up to 0x1fff
 */
const RamSize = 0x800
const ProgramBankSize = 0x4000
const CharacterBankSize = 0x2000

type RAM [RamSize]byte

type ProgramBank [ProgramBankSize]byte

type CharacterBank [CharacterBankSize]byte

/* ram is mirrored every 2k, so only the low 11 bits matter */
func (ram *RAM) Load(address uint16) byte {
    return ram[address & (RamSize - 1)]
}

func (ram *RAM) Store(address uint16, value byte){
    ram[address & (RamSize - 1)] = value
}
