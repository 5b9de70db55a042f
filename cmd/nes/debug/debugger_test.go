package debug

import (
    "context"
    "testing"
    "time"
    nes "github.com/kazzmir/nescore/lib"
)

func TestDebuggerBreakpoint(test *testing.T){
    debugger := MakeDebugger(false)
    id := debugger.AddPCBreakpoint(0x8002)

    cpu := nes.NewCPU(nes.NewBus(nil, nes.BusConfig{}))
    cpu.PC = 0x8000

    quit, cancel := context.WithCancel(context.Background())
    defer cancel()

    debugger.Handle(quit, cpu)
    if debugger.IsStopped() {
        test.Fatalf("debugger should not stop at 0x8000")
    }

    cpu.PC = 0x8002
    done := make(chan bool)
    go func(){
        debugger.Handle(quit, cpu)
        done <- true
    }()

    select {
        case <-done:
            test.Fatalf("handle should block at a breakpoint")
        case <-time.After(20 * time.Millisecond):
    }

    if !debugger.IsStopped() {
        test.Fatalf("debugger should be stopped at the breakpoint")
    }

    debugger.Send(DebugCommandContinue)
    select {
        case <-done:
        case <-time.After(time.Second):
            test.Fatalf("continue did not release the debugger")
    }

    if debugger.IsStopped() {
        test.Fatalf("debugger should be running after continue")
    }

    debugger.RemoveBreakpoint(id)
    debugger.Handle(quit, cpu)
    if debugger.IsStopped() {
        test.Fatalf("removed breakpoint still stopped the debugger")
    }
}

func TestDebuggerStep(test *testing.T){
    debugger := MakeDebugger(true)
    cpu := nes.NewCPU(nes.NewBus(nil, nes.BusConfig{}))

    quit, cancel := context.WithCancel(context.Background())
    defer cancel()

    debugger.Send(DebugCommandStep)
    debugger.Handle(quit, cpu)
    if !debugger.IsStopped() {
        test.Fatalf("step should leave the debugger stopped")
    }

    /* cancelling releases a stopped debugger */
    cancel()
    debugger.Handle(quit, cpu)
}
