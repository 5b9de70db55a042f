package main

import (
    "flag"
    "log"

    "github.com/kazzmir/nescore/test/all-test/nestest"
    test_utils "github.com/kazzmir/nescore/test/all-test/utils"
)

func main(){
    log.SetFlags(log.Lshortfile | log.Lmicroseconds)

    rom := flag.String("rom", nestest.DefaultRom, "path to nestest.nes")
    logFile := flag.String("log", nestest.DefaultLog, "golden log to compare against")
    trace := flag.String("trace", "", "write a trace of every instruction to this file")
    debug := flag.Bool("debug", false, "verbose output")

    flag.Parse()

    ok, err := nestest.RunFiles(*rom, *logFile, *trace, *debug)
    if !test_utils.Report("nestest", ok, err) {
        log.Fatalf("nestest did not pass")
    }
}
