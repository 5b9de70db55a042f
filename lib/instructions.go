package lib

/* the value an instruction operates on: the accumulator for accumulator
 * mode, otherwise the byte at the effective address
 */
func (cpu *CPU) operand(step *Step) byte {
    if step.Mode == ModeAccumulator {
        return cpu.A
    }
    return cpu.LoadMemory(step.Address)
}

/* write back the result of a read-modify-write instruction */
func (cpu *CPU) writeBack(step *Step, value byte) {
    if step.Mode == ModeAccumulator {
        cpu.A = value
        return
    }
    cpu.StoreMemory(step.Address, value)
}

func (cpu *CPU) loadA(value byte){
    cpu.A = value
    cpu.Status.SetZN(value)
}

func (cpu *CPU) loadX(value byte){
    cpu.X = value
    cpu.Status.SetZN(value)
}

func (cpu *CPU) loadY(value byte){
    cpu.Y = value
    cpu.Status.SetZN(value)
}

/* binary mode only, the 2a03 has no decimal unit */
func (cpu *CPU) doAdc(value byte){
    var carryBit uint16
    if cpu.Status.Carry() {
        carryBit = 1
    }

    full := uint16(cpu.A) + uint16(value) + carryBit
    result := byte(full)

    /* overflow when both inputs have the same sign and the result has a
     * different one
     * http://www.6502.org/tutorials/vflag.html
     */
    overflow := (cpu.A ^ value) & 0x80 == 0 && (cpu.A ^ result) & 0x80 != 0

    cpu.Status.Assign(FlagCarry, full > 0xff)
    cpu.Status.Assign(FlagOverflow, overflow)
    cpu.loadA(result)
}

func (cpu *CPU) doCompare(register byte, value byte){
    cpu.Status.Assign(FlagCarry, register >= value)
    cpu.Status.SetZN(register - value)
}

func (cpu *CPU) branch(step *Step, taken bool){
    if !taken {
        return
    }

    /* one more cycle for taking the branch, and another if the target is
     * on a different page than the next instruction
     */
    step.Extra += 1
    if pageCrossed(step.Base, step.Address) {
        step.Extra += 1
    }
    cpu.PC = step.Address
    step.Jumped = true
}

func (cpu *CPU) adc(step *Step){
    cpu.doAdc(cpu.operand(step))
}

/* a - m - (1 - c) is the same as a + ^m + c */
func (cpu *CPU) sbc(step *Step){
    cpu.doAdc(^cpu.operand(step))
}

func (cpu *CPU) and(step *Step){
    cpu.loadA(cpu.A & cpu.operand(step))
}

func (cpu *CPU) ora(step *Step){
    cpu.loadA(cpu.A | cpu.operand(step))
}

func (cpu *CPU) eor(step *Step){
    cpu.loadA(cpu.A ^ cpu.operand(step))
}

func (cpu *CPU) asl(step *Step){
    value := cpu.operand(step)
    out := value << 1
    cpu.Status.Assign(FlagCarry, value & 0x80 == 0x80)
    cpu.Status.SetZN(out)
    cpu.writeBack(step, out)
}

func (cpu *CPU) lsr(step *Step){
    value := cpu.operand(step)
    out := value >> 1
    cpu.Status.Assign(FlagCarry, value & 0x1 == 0x1)
    cpu.Status.SetZN(out)
    cpu.writeBack(step, out)
}

func (cpu *CPU) rol(step *Step){
    var carryBit byte
    if cpu.Status.Carry() {
        carryBit = 1
    }

    value := cpu.operand(step)
    out := (value << 1) | carryBit
    cpu.Status.Assign(FlagCarry, value & 0x80 == 0x80)
    cpu.Status.SetZN(out)
    cpu.writeBack(step, out)
}

func (cpu *CPU) ror(step *Step){
    var carryBit byte
    if cpu.Status.Carry() {
        carryBit = 1
    }

    value := cpu.operand(step)
    out := (value >> 1) | (carryBit << 7)
    cpu.Status.Assign(FlagCarry, value & 0x1 == 0x1)
    cpu.Status.SetZN(out)
    cpu.writeBack(step, out)
}

func (cpu *CPU) bit(step *Step){
    value := cpu.operand(step)
    cpu.Status.Assign(FlagZero, cpu.A & value == 0)
    cpu.Status.Assign(FlagNegative, value & 0x80 == 0x80)
    cpu.Status.Assign(FlagOverflow, value & 0x40 == 0x40)
}

func (cpu *CPU) bcc(step *Step){
    cpu.branch(step, !cpu.Status.Carry())
}

func (cpu *CPU) bcs(step *Step){
    cpu.branch(step, cpu.Status.Carry())
}

func (cpu *CPU) beq(step *Step){
    cpu.branch(step, cpu.Status.Zero())
}

func (cpu *CPU) bne(step *Step){
    cpu.branch(step, !cpu.Status.Zero())
}

func (cpu *CPU) bmi(step *Step){
    cpu.branch(step, cpu.Status.Negative())
}

func (cpu *CPU) bpl(step *Step){
    cpu.branch(step, !cpu.Status.Negative())
}

func (cpu *CPU) bvc(step *Step){
    cpu.branch(step, !cpu.Status.Overflow())
}

func (cpu *CPU) bvs(step *Step){
    cpu.branch(step, cpu.Status.Overflow())
}

/* brk skips a padding byte, so the return address is PC+2 */
func (cpu *CPU) brk(step *Step){
    cpu.interrupt(step.Next + 1, IRQVector)
    step.Jumped = true
}

func (cpu *CPU) clc(step *Step){
    cpu.Status.Clear(FlagCarry)
}

func (cpu *CPU) cld(step *Step){
    cpu.Status.Clear(FlagDecimal)
}

func (cpu *CPU) cli(step *Step){
    cpu.Status.Clear(FlagInterruptDisable)
}

func (cpu *CPU) clv(step *Step){
    cpu.Status.Clear(FlagOverflow)
}

func (cpu *CPU) sec(step *Step){
    cpu.Status.Set(FlagCarry)
}

func (cpu *CPU) sed(step *Step){
    cpu.Status.Set(FlagDecimal)
}

func (cpu *CPU) sei(step *Step){
    cpu.Status.Set(FlagInterruptDisable)
}

func (cpu *CPU) cmp(step *Step){
    cpu.doCompare(cpu.A, cpu.operand(step))
}

func (cpu *CPU) cpx(step *Step){
    cpu.doCompare(cpu.X, cpu.operand(step))
}

func (cpu *CPU) cpy(step *Step){
    cpu.doCompare(cpu.Y, cpu.operand(step))
}

func (cpu *CPU) dec(step *Step){
    value := cpu.operand(step) - 1
    cpu.Status.SetZN(value)
    cpu.writeBack(step, value)
}

func (cpu *CPU) inc(step *Step){
    value := cpu.operand(step) + 1
    cpu.Status.SetZN(value)
    cpu.writeBack(step, value)
}

func (cpu *CPU) dex(step *Step){
    cpu.loadX(cpu.X - 1)
}

func (cpu *CPU) dey(step *Step){
    cpu.loadY(cpu.Y - 1)
}

func (cpu *CPU) inx(step *Step){
    cpu.loadX(cpu.X + 1)
}

func (cpu *CPU) iny(step *Step){
    cpu.loadY(cpu.Y + 1)
}

func (cpu *CPU) jmp(step *Step){
    cpu.PC = step.Address
    step.Jumped = true
}

/* push the address of the last byte of the jsr instruction, rts adds 1 */
func (cpu *CPU) jsr(step *Step){
    cpu.pushAddress(step.Next - 1)
    cpu.PC = step.Address
    step.Jumped = true
}

func (cpu *CPU) rts(step *Step){
    cpu.PC = cpu.popAddress() + 1
    step.Jumped = true
}

/* the break and unused bits only exist on the stack copy of the status,
 * so pulling the status keeps whatever the register already had there
 */
func (cpu *CPU) pullStatus(){
    value := StatusFlags(cpu.PopStack())
    b_bits := FlagBreak | FlagUnused
    cpu.Status = (value & ^b_bits) | (cpu.Status & b_bits)
}

func (cpu *CPU) rti(step *Step){
    cpu.pullStatus()
    cpu.PC = cpu.popAddress()
    step.Jumped = true
}

func (cpu *CPU) lda(step *Step){
    cpu.loadA(cpu.operand(step))
}

func (cpu *CPU) ldx(step *Step){
    cpu.loadX(cpu.operand(step))
}

func (cpu *CPU) ldy(step *Step){
    cpu.loadY(cpu.operand(step))
}

func (cpu *CPU) nop(step *Step){
}

func (cpu *CPU) pha(step *Step){
    cpu.PushStack(cpu.A)
}

/* php always sets the B flags to 1
 * http://wiki.nesdev.com/w/index.php/CPU_ALL#The_B_flag
 */
func (cpu *CPU) php(step *Step){
    cpu.PushStack(cpu.Status.Pushed())
}

func (cpu *CPU) pla(step *Step){
    cpu.loadA(cpu.PopStack())
}

func (cpu *CPU) plp(step *Step){
    cpu.pullStatus()
}

func (cpu *CPU) sta(step *Step){
    cpu.StoreMemory(step.Address, cpu.A)
}

func (cpu *CPU) stx(step *Step){
    cpu.StoreMemory(step.Address, cpu.X)
}

func (cpu *CPU) sty(step *Step){
    cpu.StoreMemory(step.Address, cpu.Y)
}

func (cpu *CPU) tax(step *Step){
    cpu.loadX(cpu.A)
}

func (cpu *CPU) tay(step *Step){
    cpu.loadY(cpu.A)
}

func (cpu *CPU) tsx(step *Step){
    cpu.loadX(cpu.SP)
}

func (cpu *CPU) txa(step *Step){
    cpu.loadA(cpu.X)
}

/* the only transfer that leaves the flags alone */
func (cpu *CPU) txs(step *Step){
    cpu.SP = cpu.X
}

func (cpu *CPU) tya(step *Step){
    cpu.loadA(cpu.Y)
}
