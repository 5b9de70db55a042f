package main

import (
    "flag"
    "log"
    "os"

    "github.com/kazzmir/nescore/cmd/nes/common"
    "github.com/kazzmir/nescore/test/all-test/nestest"
    branch "github.com/kazzmir/nescore/test/all-test/branch"
    programs "github.com/kazzmir/nescore/test/all-test/programs"
    test_utils "github.com/kazzmir/nescore/test/all-test/utils"
)

func main(){
    log.SetFlags(log.Lshortfile | log.Lmicroseconds)

    debug := flag.Bool("debug", false, "verbose output")
    flag.Parse()

    allOk := true

    if common.FileExists(nestest.DefaultRom) {
        ok, err := nestest.Run(*debug)
        allOk = test_utils.Report("nestest", ok, err) && allOk
    } else {
        log.Print(test_utils.Skipped("nestest (no " + nestest.DefaultRom + ")"))
    }

    ok, err := branch.Run(*debug)
    if err != nil {
        log.Printf("branch failed with an error: %v", err)
    }
    if !ok {
        log.Printf("branch tests failed")
        allOk = false
    }

    ok, err = programs.Run(*debug)
    if err != nil {
        log.Printf("programs failed with an error: %v", err)
    }
    if !ok {
        log.Printf("program tests failed")
        allOk = false
    }

    if !allOk {
        os.Exit(1)
    }
}
