package main

import (
    "context"
    "errors"
    "fmt"
    "strings"
    "time"

    "github.com/kazzmir/nescore/cmd/nes/debug"
    nes "github.com/kazzmir/nescore/lib"

    "github.com/fatih/color"
    "github.com/jroimartin/gocui"
)

/* terminal ui: registers and the zero page on top, the console log on the
 * right and a command line at the bottom
 */
type Monitor struct {
    console *Console
    debugger *debug.DefaultDebugger
    snapshot func() nes.CPUState
}

func MakeMonitor(console *Console, debugger *debug.DefaultDebugger, snapshot func() nes.CPUState) *Monitor {
    return &Monitor{
        console: console,
        debugger: debugger,
        snapshot: snapshot,
    }
}

func formatRegisters(state nes.CPUState, stopped bool) string {
    status := color.New(color.FgGreen).Sprint("running")
    if stopped {
        status = color.New(color.FgRed).Sprint("STOPPED")
    }

    return fmt.Sprintf(" PC:%04X  A:%02X  X:%02X  Y:%02X  SP:%02X  P:%02X %v  cycle %v  %v",
                       state.PC, state.A, state.X, state.Y, state.SP, state.Status,
                       nes.StatusFlags(state.Status), state.Cycle, status)
}

/* 16 rows of 16 bytes */
func formatZeroPage(state nes.CPUState) string {
    var out strings.Builder
    for row := 0; row < 16; row++ {
        out.WriteString(fmt.Sprintf("%02X:", row * 16))
        for column := 0; column < 16; column++ {
            address := row * 16 + column
            var value byte
            if address < len(state.Ram) {
                value = state.Ram[address]
            }
            out.WriteString(fmt.Sprintf(" %02X", value))
        }
        out.WriteString("\n")
    }
    return out.String()
}

func (monitor *Monitor) stopped() bool {
    return monitor.debugger != nil && monitor.debugger.IsStopped()
}

/* the zero page view needs 54 columns including its frame */
const zeroPageWidth = 54

type viewBox struct {
    x0, y0, x1, y1 int
}

/* gocui refuses views where x0 >= x1 or y0 >= y1 */
func (box viewBox) clamp() viewBox {
    if box.x1 <= box.x0 {
        box.x1 = box.x0 + 1
    }
    if box.y1 <= box.y0 {
        box.y1 = box.y0 + 1
    }
    return box
}

/* zero page and console side by side, or stacked when the terminal is too
 * narrow for both
 */
func monitorLayout(maxX int, maxY int) map[string]viewBox {
    top := 3
    bottom := maxY - 4

    views := map[string]viewBox{
        "registers": {0, 0, maxX - 1, 2},
        "input": {0, maxY - 3, maxX - 1, maxY - 1},
    }

    if maxX > zeroPageWidth + 1 {
        views["zeropage"] = viewBox{0, top, zeroPageWidth - 1, min(top + 17, bottom)}
        views["console"] = viewBox{zeroPageWidth, top, maxX - 1, bottom}
    } else {
        split := top + (bottom - top) / 2
        views["zeropage"] = viewBox{0, top, maxX - 1, split}
        views["console"] = viewBox{0, split + 1, maxX - 1, bottom}
    }

    for name, box := range views {
        views[name] = box.clamp()
    }

    return views
}

func setView(gui *gocui.Gui, name string, box viewBox) (*gocui.View, error) {
    return gui.SetView(name, box.x0, box.y0, box.x1, box.y1)
}

func (monitor *Monitor) layout(gui *gocui.Gui) error {
    boxes := monitorLayout(gui.Size())

    registers, err := setView(gui, "registers", boxes["registers"])
    if err != nil && err != gocui.ErrUnknownView {
        return err
    }
    registers.Title = "cpu"

    zero, err := setView(gui, "zeropage", boxes["zeropage"])
    if err != nil && err != gocui.ErrUnknownView {
        return err
    }
    zero.Title = "zero page"

    console, err := setView(gui, "console", boxes["console"])
    if err != nil && err != gocui.ErrUnknownView {
        return err
    }
    console.Title = "console"
    console.Wrap = true

    input, err := setView(gui, "input", boxes["input"])
    if err != nil {
        if err != gocui.ErrUnknownView {
            return err
        }
        input.Title = "command (help, F5 continue, F10 step, ctrl-c quit)"
        input.Editable = true
        _, err = gui.SetCurrentView("input")
        if err != nil {
            return err
        }
    }

    return monitor.refresh(gui)
}

func (monitor *Monitor) refresh(gui *gocui.Gui) error {
    state := monitor.snapshot()

    registers, err := gui.View("registers")
    if err != nil {
        return err
    }
    registers.Clear()
    fmt.Fprint(registers, formatRegisters(state, monitor.stopped()))

    zero, err := gui.View("zeropage")
    if err != nil {
        return err
    }
    zero.Clear()
    fmt.Fprint(zero, formatZeroPage(state))

    console, err := gui.View("console")
    if err != nil {
        return err
    }
    _, height := console.Size()
    console.Clear()
    for _, line := range monitor.console.Tail(height) {
        fmt.Fprintln(console, line)
    }

    return nil
}

func (monitor *Monitor) execute(gui *gocui.Gui, view *gocui.View) error {
    line := strings.TrimSpace(view.Buffer())
    view.Clear()
    view.SetCursor(0, 0)
    view.SetOrigin(0, 0)
    monitor.console.Execute(line)
    return monitor.refresh(gui)
}

func (monitor *Monitor) bind(gui *gocui.Gui, cancel context.CancelFunc) error {
    quit := func(gui *gocui.Gui, view *gocui.View) error {
        cancel()
        return gocui.ErrQuit
    }

    command := func(text string) func(*gocui.Gui, *gocui.View) error {
        return func(gui *gocui.Gui, view *gocui.View) error {
            monitor.console.Execute(text)
            return monitor.refresh(gui)
        }
    }

    bindings := []struct {
        view string
        key interface{}
        handler func(*gocui.Gui, *gocui.View) error
    }{
        {"", gocui.KeyCtrlC, quit},
        {"", gocui.KeyF5, command("continue")},
        {"", gocui.KeyF10, command("step")},
        {"", gocui.KeyF9, command("stop")},
        {"input", gocui.KeyEnter, monitor.execute},
    }

    for _, binding := range bindings {
        err := gui.SetKeybinding(binding.view, binding.key, gocui.ModNone, binding.handler)
        if err != nil {
            return err
        }
    }

    return nil
}

/* blocks until the user quits or quit is cancelled */
func RunMonitor(quit context.Context, cancel context.CancelFunc, monitor *Monitor) error {
    gui, err := gocui.NewGui(gocui.OutputNormal)
    if err != nil {
        return err
    }
    defer gui.Close()

    gui.Cursor = true
    gui.SetManagerFunc(monitor.layout)

    err = monitor.bind(gui, cancel)
    if err != nil {
        return err
    }

    go func(){
        ticker := time.NewTicker(100 * time.Millisecond)
        defer ticker.Stop()
        for {
            select {
                case <-quit.Done():
                    gui.Update(func(*gocui.Gui) error {
                        return gocui.ErrQuit
                    })
                    return
                case <-ticker.C:
                    gui.Update(monitor.refresh)
            }
        }
    }()

    err = gui.MainLoop()
    cancel()
    if errors.Is(err, gocui.ErrQuit) {
        return nil
    }
    return err
}
