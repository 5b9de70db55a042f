package main

import (
    "bufio"
    "context"
    "errors"
    "flag"
    "fmt"
    "io"
    "log"
    "os"
    "os/signal"
    "path/filepath"
    "strings"
    "sync"

    "github.com/kazzmir/nescore/cmd/nes/common"
    "github.com/kazzmir/nescore/cmd/nes/debug"
    "github.com/kazzmir/nescore/cmd/nes/thread"
    nes "github.com/kazzmir/nescore/lib"

    "github.com/fatih/color"
    "golang.org/x/term"
)

type RunSettings struct {
    Config common.ConfigData
    View bool
    /* write the final cpu state as json here when set */
    StateFile string
    /* start from a state written by StateFile */
    LoadStateFile string
}

func loadState(cpu *nes.CPU, path string) error {
    file, err := os.Open(path)
    if err != nil {
        return err
    }
    defer file.Close()

    state, err := nes.DeserializeState(file)
    if err != nil {
        return fmt.Errorf("could not read state from %v: %w", path, err)
    }
    if len(state.Ram) != nes.RamSize {
        return fmt.Errorf("state in %v has %v bytes of ram, expected %v", path, len(state.Ram), nes.RamSize)
    }

    cpu.Restore(state)
    return nil
}

/* bytes as the cpu would read them, stub regions read as 0 */
func peekMemory(cpu *nes.CPU, address uint16, count int) []byte {
    out := make([]byte, 0, count)
    for i := 0; i < count && int(address) + i <= 0xffff; i++ {
        value, _ := cpu.Bus.TryRead(address + uint16(i))
        out = append(out, value)
    }
    return out
}

func isTerminal() bool {
    return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func banner(cpu *nes.CPU, source string){
    title := color.New(color.FgCyan, color.Bold).SprintFunc()
    fmt.Printf("%v %v on %v, reset vector 0x%04X\n", title("nescore"), source, cpu.Bus.Mapper().Name(), cpu.PC)
}

/* the gocui monitor owns the terminal, so logging goes to a file while it runs */
func redirectLog() (io.Closer, error) {
    directory, err := common.GetOrCreateConfigDir()
    if err != nil {
        return nil, err
    }
    file, err := os.Create(filepath.Join(directory, "nescore.log"))
    if err != nil {
        return nil, err
    }
    log.SetOutput(file)
    return file, nil
}

/* without the monitor, console commands are read line by line from stdin */
func readCommands(quit context.Context, console *Console){
    scanner := bufio.NewScanner(os.Stdin)
    shown := 0
    for scanner.Scan() {
        if quit.Err() != nil {
            return
        }
        console.Execute(scanner.Text())
        lines := console.Tail(1000)
        if shown > len(lines) {
            shown = 0
        }
        for _, line := range lines[shown:] {
            fmt.Println(line)
        }
        shown = len(lines)
    }
}

func Run(cartridge *nes.Cartridge, program []byte, source string, settings RunSettings) error {
    config := settings.Config

    cpu, err := common.SetupCPU(cartridge, program, config.BusConfig())
    if err != nil {
        return err
    }

    if settings.LoadStateFile != "" {
        err := loadState(cpu, settings.LoadStateFile)
        if err != nil {
            return err
        }
    }

    banner(cpu, source)

    quit, stop := signal.NotifyContext(context.Background(), os.Interrupt)
    defer stop()

    group := thread.NewThreadGroup(quit)

    var lock sync.Mutex
    snapshot := func() nes.CPUState {
        lock.Lock()
        defer lock.Unlock()
        return cpu.Snapshot()
    }

    actions := make(chan common.EmulatorAction, 5)

    var debugger *debug.DefaultDebugger
    if config.Monitor || len(config.Breakpoints) > 0 {
        debugger = debug.MakeDebugger(false)
        for _, breakpoint := range config.Breakpoints {
            debugger.AddPCBreakpoint(breakpoint)
        }
    }

    options := common.RunOptions{
        Hz: config.ClockHz,
        MaxCycles: config.MaxCycles,
        Verbose: int(config.Debug),
    }
    /* a nil *DefaultDebugger must not become a non-nil interface */
    if debugger != nil {
        options.Debugger = debugger
    }

    peek := func(address uint16, count int) []byte {
        lock.Lock()
        defer lock.Unlock()
        return peekMemory(cpu, address, count)
    }

    group.SpawnStopper(func(quit context.Context) error {
        return common.RunCPU(quit, cpu, &lock, options, actions)
    })

    console := MakeConsole(group.Cancel, actions, debugger, snapshot, peek)

    if config.Monitor {
        logFile, err := redirectLog()
        if err != nil {
            log.Printf("Warning: could not open a log file, logging is disabled: %v", err)
            log.SetOutput(io.Discard)
        } else {
            defer logFile.Close()
        }

        group.SpawnWithCancel(func(quit context.Context, cancel context.CancelFunc){
            err := RunMonitor(quit, cancel, MakeMonitor(console, debugger, snapshot))
            if err != nil {
                log.Printf("Error: monitor failed: %v", err)
            }
        })
    } else if debugger != nil {
        /* stdin reads cannot be interrupted, so this is not part of the group */
        go readCommands(group.Context(), console)
    }

    if settings.View {
        err := RunRamView(group.Context(), snapshot)
        if err != nil {
            log.Printf("Error: ram viewer failed: %v", err)
        }
        group.Cancel()
    }

    group.Wait()
    log.SetOutput(os.Stderr)

    runErr := group.Err()
    if errors.Is(runErr, common.MaxCyclesReached) {
        log.Printf("Stopped after %v cycles", config.MaxCycles)
        runErr = nil
    }

    final := cpu.Snapshot()
    done := color.New(color.FgGreen).SprintFunc()
    fmt.Printf("%v %v\n", done("finished"), final.String())

    if settings.StateFile != "" {
        file, err := os.Create(settings.StateFile)
        if err != nil {
            return err
        }
        defer file.Close()
        err = final.Serialize(file)
        if err != nil {
            return fmt.Errorf("could not write state to %v: %w", settings.StateFile, err)
        }
    }

    return runErr
}

func main(){
    log.SetFlags(log.Lshortfile | log.Lmicroseconds | log.Ldate)

    config, err := common.LoadConfigData()
    if err != nil && !errors.Is(err, os.ErrNotExist) {
        log.Printf("Warning: could not load config, using defaults: %v", err)
    }

    var defaultBreaks []string
    for _, breakpoint := range config.Breakpoints {
        defaultBreaks = append(defaultBreaks, fmt.Sprintf("0x%x", breakpoint))
    }

    programText := flag.String("program", "", "hex bytes to run at 0x8000 instead of a .nes file")
    debugFlag := flag.Bool("debug", config.Debug > 0, "trace every instruction")
    hz := flag.Float64("hz", config.ClockHz, "cpu cycles per second")
    maxCycles := flag.Uint64("cycles", config.MaxCycles, "stop after this many cycles, 0 runs forever")
    monitor := flag.Bool("monitor", config.Monitor, "show the terminal monitor")
    view := flag.Bool("view", false, "open a window that shows ram")
    strict := flag.Bool("strict", config.StrictStubs, "fail accesses to unimplemented hardware registers")
    breaks := flag.String("break", strings.Join(defaultBreaks, ","), "comma separated list of breakpoint addresses")
    stateFile := flag.String("state", "", "write the final cpu state as json to this file")
    loadStateFile := flag.String("load-state", "", "restore registers and ram from a file written by -state before running")
    saveConfig := flag.Bool("save-config", false, "store the given options as the new defaults")

    flag.Parse()

    config.ClockHz = *hz
    config.MaxCycles = *maxCycles
    config.Monitor = *monitor
    config.StrictStubs = *strict
    if *debugFlag && config.Debug == 0 {
        config.Debug = 1
    }
    if !*debugFlag {
        config.Debug = 0
    }

    config.Breakpoints, err = common.ParseAddressList(*breaks)
    if err != nil {
        log.Fatalf("Error: bad -break: %v", err)
    }

    if config.Monitor && !isTerminal() {
        log.Printf("Warning: not running in a terminal, the monitor is disabled")
        config.Monitor = false
    }

    if *saveConfig {
        err := common.SaveConfigData(config)
        if err != nil {
            log.Printf("Warning: could not save config: %v", err)
        }
    }

    program, err := common.ParseProgram(*programText)
    if err != nil {
        log.Fatalf("Error: bad -program: %v", err)
    }

    var cartridge *nes.Cartridge
    source := "program"
    if flag.NArg() > 0 {
        source = flag.Arg(0)
        cartridge, err = nes.ParseNesFile(source)
        if err != nil {
            log.Fatalf("Error: %v", err)
        }
        if config.Debug > 0 {
            log.Printf("Loaded %v", cartridge.String())
        }
    }

    if cartridge == nil && len(program) == 0 {
        fmt.Printf("Give a .nes argument or -program\n")
        flag.Usage()
        return
    }

    err = Run(cartridge, program, source, RunSettings{Config: config, View: *view, StateFile: *stateFile, LoadStateFile: *loadStateFile})
    if err != nil {
        log.Printf("Error: %v\n", err)
        os.Exit(1)
    }
}
