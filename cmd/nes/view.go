package main

import (
    "context"
    "fmt"
    nes "github.com/kazzmir/nescore/lib"

    "github.com/hajimehoshi/ebiten/v2"
    "github.com/hajimehoshi/ebiten/v2/ebitenutil"
    "github.com/hajimehoshi/ebiten/v2/inpututil"
)

/* the 2k of ram drawn as a 64x32 grid, one cell per byte */
const ramColumns = 64
const ramRows = nes.RamSize / ramColumns
const cellSize = 4
const textHeight = 52

type RamView struct {
    quit context.Context
    snapshot func() nes.CPUState
    pixels []byte
    grid *ebiten.Image
}

func MakeRamView(quit context.Context, snapshot func() nes.CPUState) *RamView {
    return &RamView{
        quit: quit,
        snapshot: snapshot,
        pixels: make([]byte, ramColumns * ramRows * 4),
    }
}

/* zero is black, everything else goes from blue (low values) to red */
func ramColor(value byte) (byte, byte, byte) {
    if value == 0 {
        return 0, 0, 0
    }
    return value, 64 + value / 4, 255 - value
}

func fillRamPixels(pixels []byte, ram []byte){
    for i := 0; i < ramColumns * ramRows; i++ {
        var value byte
        if i < len(ram) {
            value = ram[i]
        }
        red, green, blue := ramColor(value)
        pixels[i*4+0] = red
        pixels[i*4+1] = green
        pixels[i*4+2] = blue
        pixels[i*4+3] = 255
    }
}

func describeState(state nes.CPUState) string {
    return fmt.Sprintf("A:%02X X:%02X Y:%02X SP:%02X\nPC:%04X P:%v\nCycle:%v",
                       state.A, state.X, state.Y, state.SP,
                       state.PC, nes.StatusFlags(state.Status), state.Cycle)
}

func (view *RamView) Update() error {
    if view.quit.Err() != nil {
        return ebiten.Termination
    }

    if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
        return ebiten.Termination
    }

    return nil
}

func (view *RamView) Draw(screen *ebiten.Image) {
    if view.grid == nil {
        view.grid = ebiten.NewImage(ramColumns, ramRows)
    }

    state := view.snapshot()
    fillRamPixels(view.pixels, state.Ram)
    view.grid.WritePixels(view.pixels)

    var options ebiten.DrawImageOptions
    options.GeoM.Scale(cellSize, cellSize)
    screen.DrawImage(view.grid, &options)

    ebitenutil.DebugPrintAt(screen, describeState(state), 2, ramRows * cellSize + 2)
}

func (view *RamView) Layout(outsideWidth, outsideHeight int) (int, int) {
    return ramColumns * cellSize, ramRows * cellSize + textHeight
}

/* must be called from the main goroutine, returns when the window closes */
func RunRamView(quit context.Context, snapshot func() nes.CPUState) error {
    ebiten.SetWindowTitle("nescore ram")
    ebiten.SetWindowSize(ramColumns * cellSize * 3, (ramRows * cellSize + textHeight) * 3)
    ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

    return ebiten.RunGame(MakeRamView(quit, snapshot))
}
