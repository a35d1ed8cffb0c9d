package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"gones/internal/config"
	"gones/internal/core/ppu"
	"gones/internal/mailbox"
)

// renderGame implements ebiten.Game. It owns no emulation state of its
// own: every frame it pulls whatever the emulation thread last
// published to frames, pushes the keys it observed into input, and
// sends a close request to windowEvents when Escape is pressed; resize
// and focus changes are not relayed. It never touches the CPU/PPU/bus
// directly.
type renderGame struct {
	frames      *mailbox.FrameMailbox
	input       [2]*mailbox.ControllerInputMailbox
	windowEvents *mailbox.WindowEventMailbox

	cfg *config.Config

	image       *ebiten.Image
	pixelBuffer *image.RGBA
}

func newRenderGame(cfg *config.Config, frames *mailbox.FrameMailbox, input [2]*mailbox.ControllerInputMailbox, windowEvents *mailbox.WindowEventMailbox) *renderGame {
	return &renderGame{
		frames:       frames,
		input:        input,
		windowEvents: windowEvents,
		cfg:          cfg,
		image:        ebiten.NewImage(ppu.ScreenWidth, ppu.ScreenHeight),
		pixelBuffer:  image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight)),
	}
}

// keyMappings translates a config.KeyMapping into the ebiten keys that
// drive each of the eight NES buttons, in A,B,Select,Start,Up,Down,
// Left,Right order (the order ControllerInputMailbox.Send expects).
func keyMappings(km config.KeyMapping) [8]ebiten.Key {
	lookup := map[string]ebiten.Key{
		"W": ebiten.KeyW, "A": ebiten.KeyA, "S": ebiten.KeyS, "D": ebiten.KeyD,
		"J": ebiten.KeyJ, "K": ebiten.KeyK, "Enter": ebiten.KeyEnter, "Space": ebiten.KeySpace,
		"Up": ebiten.KeyArrowUp, "Down": ebiten.KeyArrowDown,
		"Left": ebiten.KeyArrowLeft, "Right": ebiten.KeyArrowRight,
		"Num1": ebiten.KeyDigit1, "Num2": ebiten.KeyDigit2,
		"Num3": ebiten.KeyDigit3, "Num4": ebiten.KeyDigit4,
	}
	resolve := func(name string) ebiten.Key {
		if k, ok := lookup[name]; ok {
			return k
		}
		return ebiten.KeyMax
	}
	return [8]ebiten.Key{
		resolve(km.A), resolve(km.B), resolve(km.Select), resolve(km.Start),
		resolve(km.Up), resolve(km.Down), resolve(km.Left), resolve(km.Right),
	}
}

func (g *renderGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.windowEvents.Send(mailbox.WindowEvent{Kind: mailbox.WindowCloseRequested})
	}

	p1 := keyMappings(g.cfg.Input.Player1)
	p2 := keyMappings(g.cfg.Input.Player2)
	var pressed1, pressed2 [8]bool
	for i, k := range p1 {
		pressed1[i] = ebiten.IsKeyPressed(k)
	}
	for i, k := range p2 {
		pressed2[i] = ebiten.IsKeyPressed(k)
	}
	g.input[0].Send(pressed1)
	g.input[1].Send(pressed2)
	return nil
}

func (g *renderGame) Draw(screen *ebiten.Image) {
	frame, isNew := g.frames.Latest()
	if isNew {
		for y := 0; y < ppu.ScreenHeight; y++ {
			for x := 0; x < ppu.ScreenWidth; x++ {
				px := frame[y*ppu.ScreenWidth+x]
				g.pixelBuffer.SetRGBA(x, y, color.RGBA{
					R: uint8(px >> 16), G: uint8(px >> 8), B: uint8(px), A: 0xFF,
				})
			}
		}
		g.image.WritePixels(g.pixelBuffer.Pix)
	}

	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	scaleX := float64(sw) / float64(ppu.ScreenWidth)
	scaleY := float64(sh) / float64(ppu.ScreenHeight)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	offX := (float64(sw) - float64(ppu.ScreenWidth)*scale) / 2
	offY := (float64(sh) - float64(ppu.ScreenHeight)*scale) / 2
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offX, offY)
	screen.DrawImage(g.image, op)
}

func (g *renderGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
