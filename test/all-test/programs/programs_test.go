package programs

import (
    "testing"
)

func TestPrograms(test *testing.T){
    for _, program := range Programs {
        _, err := RunProgram(program, false)
        if err != nil {
            test.Errorf("program failed: %v", err)
        }
    }
}

func TestEveryListingHasChecks(test *testing.T){
    unused, err := unusedListings(Programs)
    if err != nil {
        test.Fatalf("could not list programs: %v", err)
    }
    if len(unused) != 0 {
        test.Fatalf("listings without checks: %v", unused)
    }

    /* dropping an entry must be noticed */
    unused, err = unusedListings(Programs[1:])
    if err != nil || len(unused) != 1 || unused[0] != Programs[0].Name {
        test.Fatalf("expected %v to be reported but got %v (%v)", Programs[0].Name, unused, err)
    }
}

func TestProgramFailure(test *testing.T){
    _, err := RunProgram(Program{Name: "sum.hex", Checks: []Check{expectMemory(0x00, 54)}}, false)
    if err == nil {
        test.Fatalf("expected the check to fail")
    }
}
