package lib

import (
    "encoding/json"
    "fmt"
    "io"
)

/* A copy of the cpu registers and ram taken at one point in time. Other
 * threads (monitors, viewers) read these instead of the live cpu.
 */
type CPUState struct {
    A byte `json:"a"`
    X byte `json:"x"`
    Y byte `json:"y"`
    SP byte `json:"sp"`
    PC uint16 `json:"pc"`
    Status byte `json:"status"`
    Pending int `json:"pending"`
    Cycle uint64 `json:"cycle"`
    Ram []byte `json:"ram,omitempty"`
}

func copySlice(data []byte) []byte {
    out := make([]byte, len(data))
    copy(out, data)
    return out
}

func (cpu *CPU) Snapshot() CPUState {
    return CPUState{
        A: cpu.A,
        X: cpu.X,
        Y: cpu.Y,
        SP: cpu.SP,
        PC: cpu.PC,
        Status: byte(cpu.Status),
        Pending: cpu.Pending,
        Cycle: cpu.Cycles,
        Ram: copySlice(cpu.Bus.RAM()),
    }
}

/* put the registers and ram of a snapshot back into the cpu */
func (cpu *CPU) Restore(state CPUState) {
    cpu.A = state.A
    cpu.X = state.X
    cpu.Y = state.Y
    cpu.SP = state.SP
    cpu.PC = state.PC
    cpu.Status = StatusFlags(state.Status)
    cpu.Pending = state.Pending
    cpu.Cycles = state.Cycle
    copy(cpu.Bus.RAM(), state.Ram)
}

func (state *CPUState) Serialize(writer io.Writer) error {
    encoder := json.NewEncoder(writer)
    return encoder.Encode(state)
}

func DeserializeState(reader io.Reader) (CPUState, error) {
    var state CPUState
    decoder := json.NewDecoder(reader)
    err := decoder.Decode(&state)
    return state, err
}

func (state *CPUState) String() string {
    return fmt.Sprintf("A:0x%X X:0x%X Y:0x%X SP:0x%X P:0x%X PC:0x%X Cycle:%v", state.A, state.X, state.Y, state.SP, state.Status, state.PC, state.Cycle)
}
