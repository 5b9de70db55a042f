package common

import (
    "os"
    "io"
    "fmt"
    "strings"
    "strconv"
    "encoding/hex"
    "crypto/sha256"
)

func FileExists(path string) bool {
    info, err := os.Stat(path)
    if os.IsNotExist(err) {
        return false
    }

    // return true if exist and is not a directory
    return err == nil && !info.IsDir()
}

/* return the sha256 hash of a file given by the path */
func GetSha256(path string) (string, error){
    hash := sha256.New()
    data, err := os.Open(path)
    if err != nil {
        return "", err
    }
    defer data.Close()
    _, err = io.Copy(hash, data)
    if err != nil {
        return "", err
    }
    return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

/* "a9 01 8d 00 02" or "a9018d0002", whitespace and commas are ignored and
 * a ';' starts a comment that runs to the end of the line
 */
func ParseProgram(text string) ([]byte, error) {
    var code strings.Builder
    for _, line := range strings.Split(text, "\n") {
        comment := strings.IndexByte(line, ';')
        if comment != -1 {
            line = line[:comment]
        }
        code.WriteString(line)
    }

    clean := strings.Map(func(r rune) rune {
        switch r {
            case ' ', '\t', '\r', ',':
                return -1
        }
        return r
    }, code.String())

    return hex.DecodeString(clean)
}

/* accepts 0x8000, $8000 or plain hex like 8000 */
func ParseAddress(text string) (uint16, error) {
    text = strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(text), "0x"), "$")
    value, err := strconv.ParseUint(text, 16, 16)
    if err != nil {
        return 0, fmt.Errorf("invalid address '%v': %w", text, err)
    }
    return uint16(value), nil
}

/* a comma separated list of addresses, as given to -break */
func ParseAddressList(text string) ([]uint16, error) {
    var out []uint16
    for _, part := range strings.Split(text, ",") {
        part = strings.TrimSpace(part)
        if part == "" {
            continue
        }
        address, err := ParseAddress(part)
        if err != nil {
            return nil, err
        }
        out = append(out, address)
    }
    return out, nil
}
