package common

import (
    "errors"
    "context"
    "fmt"
    "log"
    "time"
    "sync"
    nes "github.com/kazzmir/nescore/lib"
    "github.com/kazzmir/nescore/cmd/nes/debug"
)

type EmulatorAction int
const (
    EmulatorNothing EmulatorAction = iota // just a default value that has no behavior
    EmulatorNormal
    EmulatorTurbo
    EmulatorInfinite
    EmulatorSlowDown
    EmulatorSpeedUp
    EmulatorTogglePause
    EmulatorSetPause
    EmulatorUnpause
)

type RunOptions struct {
    /* target cycles per second, 0 means the ntsc cpu speed */
    Hz float64
    /* stop with MaxCyclesReached once the cpu has run this many cycles */
    MaxCycles uint64
    /* consulted before every instruction, may be nil */
    Debugger debug.Debugger
    Verbose int
}

/* Build a cpu on a bus for the given cartridge. If program is non-empty it
 * is injected at 0x8000 instead of using the cartridge's reset vector, and a
 * nil cartridge means a blank one.
 */
func SetupCPU(cartridge *nes.Cartridge, program []byte, config nes.BusConfig) (*nes.CPU, error) {
    if cartridge == nil {
        cartridge = nes.MakeBlankCartridge()
    }

    bus, err := nes.NewCartridgeBus(cartridge, config)
    if err != nil {
        return nil, err
    }

    cpu := nes.NewCPU(bus)
    cpu.Debug = config.Debug

    if len(program) > 0 {
        err = cpu.Load(program)
        if err != nil {
            return nil, fmt.Errorf("could not load program: %w", err)
        }
    }

    cpu.Reset()

    return cpu, nil
}

var MaxCyclesReached error = errors.New("maximum cycles reached")

/* Pace the cpu against the host clock. Every instruction runs with lock
 * held so other threads can take consistent snapshots between them.
 * Returns nil when quit is cancelled.
 */
func RunCPU(quit context.Context, cpu *nes.CPU, lock *sync.Mutex, options RunOptions, actions <-chan EmulatorAction) error {
    hz := options.Hz
    if hz <= 0 {
        hz = nes.CPUSpeed
    }

    var cycleCounter float64

    /* run the host timer at this frequency (in ms) so that the counter
     * doesn't tick too fast
     *
     * anything higher than 1 seems ok, with 10 probably being an upper limit
     */
    hostTickSpeed := 5
    cycleDiff := hz / (1000.0 / float64(hostTickSpeed))

    cycleTimer := time.NewTicker(time.Duration(hostTickSpeed) * time.Millisecond)
    defer cycleTimer.Stop()

    turboMultiplier := float64(1)

    paused := false

    /* run without delays when this is true */
    infiniteSpeed := false

    showTimings := options.Verbose > 1

    start := time.Now()
    cycleCheck := time.NewTicker(time.Second * 2)
    defer cycleCheck.Stop()
    cycleStart := cpu.Cycles

    for quit.Err() == nil {
        if options.MaxCycles > 0 && cpu.Cycles >= options.MaxCycles {
            if options.Verbose > 0 {
                log.Printf("Maximum cycles %v reached", options.MaxCycles)
            }
            return MaxCyclesReached
        }

        if showTimings {
            select {
                case <-cycleCheck.C:
                    diff := time.Now().Sub(start)
                    cycleDiff := cpu.Cycles - cycleStart
                    cyclesPerSecond := float64(cycleDiff) / (float64(diff)/float64(time.Second))
                    /* should be as close to 0 as possible */
                    log.Printf("Time=%v Cycles=%v Cycles/s=%v. Expected=%v. Diff=%v", diff, cycleDiff, cyclesPerSecond, hz * turboMultiplier, cyclesPerSecond - hz * turboMultiplier)

                    start = time.Now()
                    cycleStart = cpu.Cycles
                default:
            }
        }

        /* always run the system */
        if infiniteSpeed {
            cycleCounter = 1

            /* ignore anything on the actions channel, but dont let it fill up */
            select {
                case <-actions:
                default:
            }
        }

        for cycleCounter <= 0 {
            select {
                case <-quit.Done():
                    return nil
                case action := <-actions:
                    switch action {
                        case EmulatorNothing:
                            /* nothing */
                        case EmulatorTurbo:
                            turboMultiplier = 3
                        case EmulatorInfinite:
                            infiniteSpeed = true
                        case EmulatorNormal:
                            turboMultiplier = 1
                            if options.Verbose > 0 {
                                log.Printf("Emulator speed set to %v", turboMultiplier)
                            }
                        case EmulatorSlowDown:
                            turboMultiplier -= 0.1
                            if turboMultiplier < 0.1 {
                                turboMultiplier = 0.1
                            }
                            if options.Verbose > 0 {
                                log.Printf("Emulator speed set to %v", turboMultiplier)
                            }
                        case EmulatorSpeedUp:
                            turboMultiplier += 0.1
                            if options.Verbose > 0 {
                                log.Printf("Emulator speed set to %v", turboMultiplier)
                            }
                        case EmulatorTogglePause:
                            paused = !paused
                        case EmulatorSetPause:
                            paused = true
                        case EmulatorUnpause:
                            paused = false
                    }
                case <-cycleTimer.C:
                    cycleCounter += cycleDiff * turboMultiplier
            }

            if paused {
                cycleCounter = 0
            }
        }

        if options.Debugger != nil && cpu.Fetching() {
            options.Debugger.Handle(quit, cpu)
            if quit.Err() != nil {
                return nil
            }
        }

        lock.Lock()
        used := cpu.RunInstruction()
        lock.Unlock()

        cycleCounter -= float64(used)
    }

    return nil
}
