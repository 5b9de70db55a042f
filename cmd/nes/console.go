package main

import (
    "context"
    "strings"
    "strconv"
    "fmt"
    "sync"
    "github.com/kazzmir/nescore/cmd/nes/common"
    "github.com/kazzmir/nescore/cmd/nes/debug"
    nes "github.com/kazzmir/nescore/lib"
)

/* Text commands typed into the monitor. The console only talks to the
 * emulator through the debugger, the action channel and snapshots.
 */
type Console struct {
    Lines []string
    Lock sync.Mutex

    cancel context.CancelFunc
    actions chan<- common.EmulatorAction
    debugger *debug.DefaultDebugger
    snapshot func() nes.CPUState
    /* count bytes read through the bus starting at address */
    peek func(address uint16, count int) []byte
}

func MakeConsole(cancel context.CancelFunc, actions chan<- common.EmulatorAction, debugger *debug.DefaultDebugger, snapshot func() nes.CPUState, peek func(uint16, int) []byte) *Console {
    return &Console{
        cancel: cancel,
        actions: actions,
        debugger: debugger,
        snapshot: snapshot,
        peek: peek,
    }
}

const helpText string = `
help, ?: this help text
exit, quit: quit the program
clear: clear console text
info: show cpu registers
mem <address> [count]: dump memory from the last snapshot (ram only)
dis [address] [count]: disassemble count instructions, default is the current PC
break <address>: stop when PC reaches address
list: show breakpoints
delete <id>: remove a breakpoint
step: run one instruction while stopped
continue: run until the next breakpoint
stop: stop before the next instruction
pause, unpause, turbo, normal: emulator speed
`

func (console *Console) AddLine(line string) {
    console.Lock.Lock()
    defer console.Lock.Unlock()
    console.Lines = append(console.Lines, line)
}

func (console *Console) ClearLines() {
    console.Lock.Lock()
    defer console.Lock.Unlock()
    console.Lines = nil
}

/* the last count lines */
func (console *Console) Tail(count int) []string {
    console.Lock.Lock()
    defer console.Lock.Unlock()
    start := len(console.Lines) - count
    if start < 0 {
        start = 0
    }
    out := make([]string, len(console.Lines) - start)
    copy(out, console.Lines[start:])
    return out
}

func (console *Console) sendAction(action common.EmulatorAction, message string){
    select {
        case console.actions <- action:
            console.AddLine(message)
        default:
            console.AddLine("Error: input dropped. Try again")
    }
}

func (console *Console) needDebugger() bool {
    if console.debugger == nil {
        console.AddLine("No debugger available")
        return false
    }
    return true
}

/* step and continue are only consumed while the debugger is stopped */
func (console *Console) needStopped() bool {
    if !console.needDebugger() {
        return false
    }
    if !console.debugger.IsStopped() {
        console.AddLine("Not stopped, use stop or a breakpoint first")
        return false
    }
    return true
}

func (console *Console) dumpMemory(args []string){
    if len(args) < 2 {
        console.AddLine("Give an address")
        return
    }

    address, err := common.ParseAddress(args[1])
    if err != nil {
        console.AddLine(err.Error())
        return
    }

    count := 16
    if len(args) > 2 {
        count, err = strconv.Atoi(args[2])
        if err != nil || count <= 0 {
            console.AddLine(fmt.Sprintf("Bad count '%v'", args[2]))
            return
        }
    }

    /* the dump stops at the top of the address space */
    if int(address) + count > 0x10000 {
        count = 0x10000 - int(address)
    }

    state := console.snapshot()
    for row := 0; row < count; row += 16 {
        var line strings.Builder
        line.WriteString(fmt.Sprintf("%04X:", int(address) + row))
        for i := row; i < row + 16 && i < count; i++ {
            where := int(address) + i
            if where >= 0x2000 {
                line.WriteString(" ??")
                continue
            }
            line.WriteString(fmt.Sprintf(" %02X", state.Ram[where % len(state.Ram)]))
        }
        console.AddLine(line.String())
    }
}

func (console *Console) disassemble(args []string){
    if console.peek == nil {
        console.AddLine("Memory is not available")
        return
    }

    address := console.snapshot().PC
    if len(args) > 1 {
        var err error
        address, err = common.ParseAddress(args[1])
        if err != nil {
            console.AddLine(err.Error())
            return
        }
    }

    count := 8
    if len(args) > 2 {
        var err error
        count, err = strconv.Atoi(args[2])
        if err != nil || count <= 0 {
            console.AddLine(fmt.Sprintf("Bad count '%v'", args[2]))
            return
        }
    }

    /* 3 bytes is the longest instruction */
    size := count * 3
    if int(address) + size > 0x10000 {
        size = 0x10000 - int(address)
    }

    lines := nes.Disassemble(console.peek(address, size), address)
    if len(lines) > count {
        lines = lines[:count]
    }
    for _, line := range lines {
        console.AddLine(line)
    }
}

func (console *Console) Execute(text string){
    parts := strings.Fields(text)
    if len(parts) == 0 {
        return
    }

    console.AddLine("> " + text)

    switch strings.ToLower(parts[0]) {
        case "exit", "quit":
            console.cancel()
        case "clear":
            console.ClearLines()
        case "info":
            state := console.snapshot()
            console.AddLine(state.String())
            console.AddLine(fmt.Sprintf("Flags: %v", nes.StatusFlags(state.Status)))
        case "mem":
            console.dumpMemory(parts)
        case "dis":
            console.disassemble(parts)
        case "pause":
            console.sendAction(common.EmulatorSetPause, "Paused")
        case "unpause":
            console.sendAction(common.EmulatorUnpause, "Unpaused")
        case "turbo":
            console.sendAction(common.EmulatorTurbo, "Turbo")
        case "normal":
            console.sendAction(common.EmulatorNormal, "Normal speed")
        case "break":
            if !console.needDebugger() {
                return
            }
            var pc uint16
            if len(parts) > 1 {
                var err error
                pc, err = common.ParseAddress(parts[1])
                if err != nil {
                    console.AddLine(err.Error())
                    return
                }
            } else {
                pc = console.snapshot().PC
            }
            id := console.debugger.AddPCBreakpoint(pc)
            console.AddLine(fmt.Sprintf("Breakpoint %v added at 0x%x", id, pc))
        case "list":
            if !console.needDebugger() {
                return
            }
            console.AddLine("Breakpoints")
            for _, breakpoint := range console.debugger.GetBreakpoints() {
                console.AddLine(fmt.Sprintf(" %v: 0x%x", breakpoint.Id, breakpoint.PC))
            }
        case "delete":
            if !console.needDebugger() {
                return
            }
            if len(parts) != 2 {
                console.AddLine("Give a breakpoint id to delete")
                return
            }
            id, err := strconv.Atoi(parts[1])
            if err != nil {
                console.AddLine(fmt.Sprintf("Bad breakpoint '%v'", parts[1]))
                return
            }
            console.debugger.RemoveBreakpoint(uint64(id))
            console.AddLine(fmt.Sprintf("Removed breakpoint %v", id))
        case "step":
            if console.needStopped() {
                console.debugger.Send(debug.DebugCommandStep)
                console.AddLine("Step")
            }
        case "continue":
            if console.needStopped() {
                console.debugger.Send(debug.DebugCommandContinue)
                console.AddLine("Continue")
            }
        case "stop":
            if console.needDebugger() {
                console.debugger.Stop()
                console.AddLine("Stopped")
            }
        case "help", "?":
            for _, line := range strings.Split(helpText, "\n") {
                if line != "" {
                    console.AddLine(line)
                }
            }
        default:
            console.AddLine(fmt.Sprintf("Unknown command '%v', try help", parts[0]))
    }
}
