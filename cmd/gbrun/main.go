// Command gbrun loads a Game Boy ROM and runs it against the lr35902
// core. With -debug it opens an SDL2 window showing the current VRAM
// tile data (see the debugview package) so ROM data landing in VRAM
// can be confirmed visually; serial output is always echoed to
// stdout, which is enough to read a Blargg-style test ROM's PASS/FAIL
// banner headlessly.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/aeyoll/lr35902/debugview"
	"github.com/aeyoll/lr35902/system"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/draw"
)

var (
	rom    = flag.String("rom", "", "Path to the ROM image to run")
	debug  = flag.Bool("debug", false, "If true, open an SDL2 window showing the VRAM debug viewer")
	scale  = flag.Int("scale", 4, "Scale factor for the debug viewer window")
	frames = flag.Int("frames", 0, "Stop after this many frames (0 runs forever)")
)

// mCyclesPerFrame is 70224 T-cycles / 4 at the nominal 59.7Hz frame rate.
const mCyclesPerFrame = 70224 / 4

func main() {
	flag.Parse()
	if *rom == "" {
		log.Fatal("gbrun: -rom is required")
	}

	data, err := os.ReadFile(*rom)
	if err != nil {
		log.Fatalf("gbrun: can't read rom: %v", err)
	}

	sys, err := system.New(data, os.Stdout)
	if err != nil {
		log.Fatalf("gbrun: can't init system: %v", err)
	}

	if *debug {
		runWithWindow(sys)
		return
	}
	runHeadless(sys)
}

func runHeadless(sys *system.System) {
	for frame := 0; *frames == 0 || frame < *frames; frame++ {
		if err := runFrame(sys); err != nil {
			log.Fatalf("gbrun: %v", err)
		}
	}
}

func runFrame(sys *system.System) error {
	for spent := 0; spent < mCyclesPerFrame; {
		n, err := sys.Step()
		if err != nil {
			return err
		}
		spent += n
	}
	return nil
}

// runWithWindow drives the same frame loop as runHeadless but also
// blits the VRAM debug view into an SDL2 window after every frame,
// following the same sdl.Main/sdl.Do pattern the teacher's Atari
// front end uses to keep all SDL calls on the main thread.
func runWithWindow(sys *system.System) {
	w, h := debugview.Width**scale, debugview.Height**scale

	sdl.Main(func() {
		var window *sdl.Window
		var surface *sdl.Surface
		sdl.Do(func() {
			if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
				log.Fatalf("gbrun: can't init SDL: %v", err)
			}
			var err error
			window, err = sdl.CreateWindow("gbrun VRAM debug view",
				sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
				int32(w), int32(h), sdl.WINDOW_SHOWN)
			if err != nil {
				log.Fatalf("gbrun: can't create window: %v", err)
			}
			surface, err = window.GetSurface()
			if err != nil {
				log.Fatalf("gbrun: can't get window surface: %v", err)
			}
		})
		defer func() {
			sdl.Do(func() {
				window.Destroy()
				sdl.Quit()
			})
		}()

		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		for frame := 0; *frames == 0 || frame < *frames; frame++ {
			if err := runFrame(sys); err != nil {
				log.Fatalf("gbrun: %v", err)
			}
			tiles := debugview.Render(sys.VRAM())
			draw.NearestNeighbor.Scale(dst, dst.Bounds(), tiles, tiles.Bounds(), draw.Over, nil)
			sdl.Do(func() {
				sdlSurf, err := sdl.CreateRGBSurfaceFrom(dst.Pix, int32(w), int32(h), 32, dst.Stride,
					0x000000FF, 0x0000FF00, 0x00FF0000, 0xFF000000)
				if err != nil {
					log.Printf("gbrun: frame %d: %v", frame, err)
					return
				}
				defer sdlSurf.Free()
				if err := sdlSurf.Blit(nil, surface, nil); err != nil {
					log.Printf("gbrun: frame %d: blit: %v", frame, err)
					return
				}
				window.UpdateSurface()
			})
		}
		fmt.Println("gbrun: done")
	})
}
