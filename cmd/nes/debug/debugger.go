package debug

import (
    "context"
    "log"
    "sync"
    nes "github.com/kazzmir/nescore/lib"
)

type DebugCommand interface {
    Name() string
}

type DebugCommandSimple struct {
    name string
}

func (command *DebugCommandSimple) Name() string {
    return command.name
}

func makeCommand(name string) DebugCommand {
    return &DebugCommandSimple{name: name}
}

var DebugCommandStep DebugCommand = makeCommand("step")
var DebugCommandContinue DebugCommand = makeCommand("continue")

// break when the cpu's PC is at a specific value
type Breakpoint struct {
    PC uint16
    Id uint64
}

func (breakpoint *Breakpoint) Hit(cpu *nes.CPU) bool {
    return breakpoint.PC == cpu.PC
}

/* Handle is called by the driver before every instruction, without the cpu
 * lock held. It may block until the user decides what to do next.
 */
type Debugger interface {
    Handle(quit context.Context, cpu *nes.CPU)
}

type DefaultDebugger struct {
    Commands chan DebugCommand
    stopped bool
    Breakpoints []Breakpoint
    BreakpointId uint64
    lock sync.Mutex
}

func (debugger *DefaultDebugger) IsStopped() bool {
    debugger.lock.Lock()
    defer debugger.lock.Unlock()
    return debugger.stopped
}

func (debugger *DefaultDebugger) ContinueUntilBreak(){
    debugger.lock.Lock()
    defer debugger.lock.Unlock()
    debugger.stopped = false
}

func (debugger *DefaultDebugger) Stop(){
    debugger.lock.Lock()
    defer debugger.lock.Unlock()
    debugger.stopped = true
}

func (debugger *DefaultDebugger) AddPCBreakpoint(pc uint16) uint64 {
    debugger.lock.Lock()
    defer debugger.lock.Unlock()
    id := debugger.BreakpointId
    debugger.Breakpoints = append(debugger.Breakpoints, Breakpoint{
        PC: pc,
        Id: id,
    })
    debugger.BreakpointId += 1
    return id
}

func (debugger *DefaultDebugger) GetBreakpoints() []Breakpoint {
    debugger.lock.Lock()
    defer debugger.lock.Unlock()
    out := make([]Breakpoint, len(debugger.Breakpoints))
    copy(out, debugger.Breakpoints)
    return out
}

func (debugger *DefaultDebugger) RemoveBreakpoint(id uint64){
    debugger.lock.Lock()
    defer debugger.lock.Unlock()
    var out []Breakpoint
    for _, breakpoint := range debugger.Breakpoints {
        if breakpoint.Id != id {
            out = append(out, breakpoint)
        }
    }
    debugger.Breakpoints = out
}

/* non-blocking, a command sent while running is handled at the next stop */
func (debugger *DefaultDebugger) Send(command DebugCommand){
    select {
        case debugger.Commands <- command:
        default:
            log.Printf("Warning: debugger command %v dropped", command.Name())
    }
}

func (debugger *DefaultDebugger) checkBreakpoints(cpu *nes.CPU){
    debugger.lock.Lock()
    defer debugger.lock.Unlock()
    for _, breakpoint := range debugger.Breakpoints {
        if breakpoint.Hit(cpu) && !debugger.stopped {
            log.Printf("[debug] breakpoint %v hit at 0x%x", breakpoint.Id, cpu.PC)
            debugger.stopped = true
        }
    }
}

/* a breakpoint stops the cpu before the instruction at its PC runs */
func (debugger *DefaultDebugger) Handle(quit context.Context, cpu *nes.CPU){
    debugger.checkBreakpoints(cpu)

    if !debugger.IsStopped() {
        return
    }

    select {
        case <-quit.Done():
        case command := <-debugger.Commands:
            if command == DebugCommandStep {
                log.Printf("[debug] step at 0x%x", cpu.PC)
            }
            if command == DebugCommandContinue {
                log.Printf("[debug] continue")
                debugger.ContinueUntilBreak()
            }
    }
}

/* stopped starts the debugger paused before the first instruction */
func MakeDebugger(stopped bool) *DefaultDebugger {
    return &DefaultDebugger{
        Commands: make(chan DebugCommand, 5),
        stopped: stopped,
        BreakpointId: 1,
    }
}
