package common

import (
    "os"
    "log"
    "encoding/json"
    "path/filepath"

    nes "github.com/kazzmir/nescore/lib"
)

const CurrentVersion = 1

type ConfigData struct {
    Version int `json:"version,omitempty"`
    /* cycles per second the driver aims for */
    ClockHz float64 `json:"clock-hz,omitempty"`
    /* stop after this many cycles, 0 runs forever */
    MaxCycles uint64 `json:"max-cycles,omitempty"`
    StrictStubs bool `json:"strict-stubs,omitempty"`
    Debug uint `json:"debug,omitempty"`
    Monitor bool `json:"monitor,omitempty"`
    Breakpoints []uint16 `json:"breakpoints,omitempty"`
}

/* make the directory where the config file lives, which is ~/.config/nescore on linux */
func GetOrCreateConfigDir() (string, error) {
    configDir, err := os.UserConfigDir()
    if err != nil {
        return "", err
    }
    configPath := filepath.Join(configDir, "nescore")
    err = os.MkdirAll(configPath, 0755)
    if err != nil {
        return "", err
    }

    return configPath, nil
}

func DefaultConfigData() ConfigData {
    return ConfigData{
        Version: CurrentVersion,
        ClockHz: nes.CPUSpeed,
    }
}

func (data ConfigData) BusConfig() nes.BusConfig {
    return nes.BusConfig{
        StrictStubs: data.StrictStubs,
        Debug: data.Debug,
    }
}

func configFile() (string, error) {
    configPath, err := GetOrCreateConfigDir()
    if err != nil {
        return "", err
    }
    return filepath.Join(configPath, "config.json"), nil
}

func LoadConfigData() (ConfigData, error) {
    path, err := configFile()
    if err != nil {
        return DefaultConfigData(), err
    }
    return LoadConfigFrom(path)
}

/* the defaults are returned along with any error, and also when the file
 * was written by a different version
 */
func LoadConfigFrom(path string) (ConfigData, error) {
    file, err := os.Open(path)
    if err != nil {
        return DefaultConfigData(), err
    }
    defer file.Close()

    var data ConfigData
    decoder := json.NewDecoder(file)
    err = decoder.Decode(&data)
    if err != nil {
        log.Printf("Could not load config data: %v", err)
        return DefaultConfigData(), err
    }

    if data.Version != CurrentVersion {
        return DefaultConfigData(), nil
    }

    if data.ClockHz <= 0 {
        data.ClockHz = nes.CPUSpeed
    }

    return data, nil
}

func SaveConfigData(data ConfigData) error {
    path, err := configFile()
    if err != nil {
        return err
    }
    return SaveConfigTo(path, data)
}

func SaveConfigTo(path string, data ConfigData) error {
    file, err := os.Create(path)
    if err != nil {
        return err
    }
    defer file.Close()

    data.Version = CurrentVersion

    encoder := json.NewEncoder(file)
    encoder.SetIndent("", "  ")
    return encoder.Encode(data)
}
