package common

import (
    "bytes"
    "os"
    "path/filepath"
    "testing"
)

func TestParseProgram(test *testing.T){
    program, err := ParseProgram("a9 01, 8d 00 02\n4c0080")
    if err != nil {
        test.Fatalf("could not parse: %v", err)
    }
    if !bytes.Equal(program, []byte{0xa9, 0x01, 0x8d, 0x00, 0x02, 0x4c, 0x00, 0x80}) {
        test.Fatalf("unexpected program % x", program)
    }

    program, err = ParseProgram("a9 01 ; lda #1\r\n; nothing here\nea")
    if err != nil || !bytes.Equal(program, []byte{0xa9, 0x01, 0xea}) {
        test.Fatalf("comments were not skipped: % x (%v)", program, err)
    }

    _, err = ParseProgram("a9 0")
    if err == nil {
        test.Fatalf("odd length should fail")
    }
}

func TestParseAddress(test *testing.T){
    for _, text := range []string{"0x8002", "$8002", "8002", "0X8002"} {
        address, err := ParseAddress(text)
        if err != nil || address != 0x8002 {
            test.Errorf("%v: expected 0x8002 but got 0x%x (%v)", text, address, err)
        }
    }

    _, err := ParseAddress("10000")
    if err == nil {
        test.Fatalf("address out of range should fail")
    }

    list, err := ParseAddressList("8000, 0xc000,")
    if err != nil || len(list) != 2 || list[1] != 0xc000 {
        test.Fatalf("unexpected list %v (%v)", list, err)
    }
}

func TestFileHelpers(test *testing.T){
    directory := test.TempDir()
    path := filepath.Join(directory, "file")
    if FileExists(path) {
        test.Fatalf("file should not exist yet")
    }

    os.WriteFile(path, []byte("abc"), 0644)
    if !FileExists(path) || FileExists(directory) {
        test.Fatalf("exists reported the wrong thing")
    }

    hash, err := GetSha256(path)
    if err != nil {
        test.Fatalf("could not hash: %v", err)
    }
    if hash != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
        test.Fatalf("unexpected hash %v", hash)
    }
}
