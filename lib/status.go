package lib

import (
    "strings"
)

/* NVUB DIZC
 * bit 5 is unused and reads as 1 whenever the status is pushed
 */
type StatusFlags byte

const (
    FlagCarry StatusFlags = 1 << 0
    FlagZero StatusFlags = 1 << 1
    FlagInterruptDisable StatusFlags = 1 << 2
    FlagDecimal StatusFlags = 1 << 3
    FlagBreak StatusFlags = 1 << 4
    FlagUnused StatusFlags = 1 << 5
    FlagOverflow StatusFlags = 1 << 6
    FlagNegative StatusFlags = 1 << 7
)

func (status StatusFlags) Has(flag StatusFlags) bool {
    return status & flag == flag
}

func (status *StatusFlags) Set(flag StatusFlags){
    *status |= flag
}

func (status *StatusFlags) Clear(flag StatusFlags){
    *status &= ^flag
}

func (status *StatusFlags) Assign(flag StatusFlags, set bool){
    if set {
        status.Set(flag)
    } else {
        status.Clear(flag)
    }
}

/* set zero and negative according to value, the most common flag update */
func (status *StatusFlags) SetZN(value byte){
    status.Assign(FlagZero, value == 0)
    status.Assign(FlagNegative, value & 0x80 == 0x80)
}

func (status StatusFlags) Carry() bool {
    return status.Has(FlagCarry)
}

func (status StatusFlags) Zero() bool {
    return status.Has(FlagZero)
}

func (status StatusFlags) InterruptDisable() bool {
    return status.Has(FlagInterruptDisable)
}

func (status StatusFlags) Decimal() bool {
    return status.Has(FlagDecimal)
}

func (status StatusFlags) Break() bool {
    return status.Has(FlagBreak)
}

func (status StatusFlags) Overflow() bool {
    return status.Has(FlagOverflow)
}

func (status StatusFlags) Negative() bool {
    return status.Has(FlagNegative)
}

/* the value written to the stack by php/brk: break and unused are always 1 */
func (status StatusFlags) Pushed() byte {
    return byte(status | FlagBreak | FlagUnused)
}

/* NV-BDIZC, upper case when the flag is set */
func (status StatusFlags) String() string {
    names := "nv-bdizc"
    var out strings.Builder
    for i := 0; i < 8; i++ {
        bit := StatusFlags(1 << (7 - i))
        letter := rune(names[i])
        if letter != '-' && status.Has(bit) {
            letter = rune(strings.ToUpper(string(letter))[0])
        }
        out.WriteRune(letter)
    }
    return out.String()
}
