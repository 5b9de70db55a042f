package data

import (
    "embed"
    "io/fs"
    "path"
)

/* assembled listings of the cpu programs used by test/all-test */
//go:embed programs/*
var programsFS embed.FS

func ReadProgram(name string) (string, error) {
    raw, err := fs.ReadFile(programsFS, path.Join("programs", name))
    if err != nil {
        return "", err
    }
    return string(raw), nil
}

func ListPrograms() ([]string, error) {
    entries, err := fs.ReadDir(programsFS, "programs")
    if err != nil {
        return nil, err
    }

    var out []string
    for _, entry := range entries {
        if !entry.IsDir() {
            out = append(out, entry.Name())
        }
    }
    return out, nil
}
