// Command gones is a cycle-accurate NES emulator: a single-threaded
// emulation core driven from its own goroutine, communicating with a
// render/input goroutine and the main goroutine purely through the
// lock-free mailboxes in internal/mailbox.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"

	"gones/internal/config"
	"gones/internal/core/clock"
	"gones/internal/core/emu"
	"gones/internal/mailbox"
	"gones/internal/version"
)

func main() {
	var (
		romFile    = flag.String("rom", "", "path to an iNES ROM file")
		configFile = flag.String("config", "", "path to a JSON config file")
		nogui      = flag.Bool("nogui", false, "run headlessly, for a fixed number of frames")
		frames     = flag.Int("frames", 600, "frames to run in -nogui mode")
		showVer    = flag.Bool("version", false, "print version information and exit")
	)
	flag.Parse()

	if *showVer {
		fmt.Println(version.GetDetailedVersion())
		return
	}

	configPath := *configFile
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	region := clock.NTSC
	if cfg.Emulation.Region == "PAL" {
		region = clock.PAL
	}
	state := emu.New(region)

	if *romFile != "" {
		f, err := os.Open(*romFile)
		if err != nil {
			log.Fatalf("opening ROM: %v", err)
		}
		err = state.LoadCartridge(f)
		f.Close()
		if err != nil {
			log.Fatalf("loading ROM: %v", err)
		}
	}
	state.PowerOn()

	if *nogui {
		runHeadless(state, *frames)
		return
	}

	runGUI(state, cfg)
}

// runHeadless drives the core directly on the calling goroutine, with
// no mailboxes and no second thread: there's nothing to hand frames or
// input off to.
func runHeadless(state *emu.EmulationState, frameCount int) {
	var fb [256 * 240]uint32
	for i := 0; i < frameCount; i++ {
		state.RunFrame(&fb)
	}
	snap := state.Snapshot()
	fmt.Printf("ran %d frames, PC=$%04X cycles=%d\n", frameCount, snap.PC, snap.CPUCycles)
}

// runGUI starts the emulation goroutine and runs ebiten's game loop
// (which must stay on the main goroutine) until the window closes or
// the emulation goroutine reports a fatal error.
func runGUI(state *emu.EmulationState, cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	frames := mailbox.NewFrameMailbox()
	input := [2]*mailbox.ControllerInputMailbox{
		mailbox.NewControllerInputMailbox(),
		mailbox.NewControllerInputMailbox(),
	}
	windowEvents := &mailbox.WindowEventMailbox{}
	status := &mailbox.StatusMailbox{}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		runEmulationThread(gctx, state, frames, input, windowEvents, status)
		return nil
	})

	scale := cfg.Window.Scale
	if scale < 1 {
		scale = 1
	}
	ebiten.SetWindowSize(256*scale, 240*scale)
	ebiten.SetWindowTitle("gones")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(cfg.Video.VSync)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)

	game := newRenderGame(cfg, frames, input, windowEvents)
	if err := ebiten.RunGame(game); err != nil {
		log.Printf("render loop exited: %v", err)
	}
	cancel()
	_ = group.Wait()
}

// runEmulationThread is the emulation goroutine's entire body: apply
// the latest controller input, run one frame, publish it, once per tick
// of a 60 Hz ticker, until the context is cancelled or the render
// thread asks the window to close.
func runEmulationThread(ctx context.Context, state *emu.EmulationState, frames *mailbox.FrameMailbox, input [2]*mailbox.ControllerInputMailbox, windowEvents *mailbox.WindowEventMailbox, status *mailbox.StatusMailbox) {
	var fb [256 * 240]uint32
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if ev, ok := windowEvents.Recv(); ok && ev.Kind == mailbox.WindowCloseRequested {
			return
		}

		input[0].Apply(state.Controller1())
		input[1].Apply(state.Controller2())
		state.RunFrame(&fb)
		frames.Publish(&fb)
		status.Publish(mailbox.Status{
			CPUCycles:  state.CPU.Cycles,
			FrameCount: state.FrameCount(),
		})
	}
}
