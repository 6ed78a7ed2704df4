// Command nescore runs an iNES ROM under the emulator core, either as
// a windowed ebiten game or, with -bios, an interactive debug monitor.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kstenerud/nescore/console"
)

var (
	romFile = flag.String("rom", "", "Path to the iNES ROM to run.")
	bios    = flag.Bool("bios", false, "Start in the interactive debug monitor instead of the windowed game.")
)

func main() {
	flag.Parse()

	if *romFile == "" {
		log.Fatal("nescore: -rom is required")
	}
	f, err := os.Open(*romFile)
	if err != nil {
		log.Fatalf("nescore: %v", err)
	}
	defer f.Close()

	nes, err := console.Load(f)
	if err != nil {
		log.Fatalf("nescore: %v", err)
	}

	if *bios {
		runBIOS(nes)
		return
	}

	ebiten.SetWindowSize(512, 480)
	ebiten.SetWindowTitle("nescore")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	ctx, cancel := context.WithCancel(context.Background())
	go run(ctx, nes)

	if err := ebiten.RunGame(nes); err != nil {
		log.Fatal(err)
	}
	cancel()
}

// run drives the console's clock on its own goroutine; ebiten's
// Update is a no-op by design (see console.Console.Update).
func run(ctx context.Context, nes *console.Console) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			nes.Tick()
		}
	}
}

func readAddress(prompt string) uint16 {
	var a uint16
	fmt.Print(prompt)
	fmt.Scanf("%04x\n", &a)
	return a
}

// runBIOS is a headless debug monitor: breakpoints, single-stepping,
// and memory/stack/PPU inspection, for working out why a ROM
// misbehaves without a window in the loop.
func runBIOS(nes *console.Console) {
	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)

	breaks := make(map[uint16]struct{})

	for {
		fmt.Printf("%s\n\n", nes.Bus.CPU)
		fmt.Println("(B)reak - add breakpoint")
		fmt.Println("(C)lear - clear breakpoints")
		fmt.Println("(R)un - run to completion")
		fmt.Println("(S)tep - step the CPU one instruction")
		fmt.Println("R(e)set - hit the reset button")
		fmt.Println("(M)emory - display a memory range")
		fmt.Println("S(t)ack - show the top of the stack")
		fmt.Println("(P)C - set the program counter")
		fmt.Println("PP(U) - show PPU status")
		fmt.Println("(Q)uit - exit the monitor")
		fmt.Print("Choice: ")

		var in rune
		fmt.Scanf("%c\n", &in)

		switch in {
		case 'b', 'B':
			breaks[readAddress("Breakpoint (eg: ff15): ")] = struct{}{}
		case 'c', 'C':
			breaks = make(map[uint16]struct{})
		case 'p', 'P':
			nes.Bus.CPU.SetPC(readAddress("Set PC to what address (eg: 0400)?: "))
		case 'q', 'Q':
			return
		case 'r', 'R':
			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				select {
				case <-sigQuit:
					cancel()
				case <-ctx.Done():
				}
			}()
			runToBreak(ctx, nes, breaks)
			cancel()
		case 's', 'S':
			nes.StepInstruction()
		case 't', 'T':
			fmt.Println()
			sp := uint16(0x0100) | uint16(nes.Bus.CPU.SP)
			for i := uint16(0); i < 3 && sp+i <= 0x01FF; i++ {
				fmt.Printf("0x%04x: 0x%02x ", sp+i, nes.Bus.Read(sp+i))
			}
			fmt.Printf("\n\n")
		case 'u', 'U':
			fmt.Printf("\n%s\n\n", nes.Bus.PPU)
		case 'e', 'E':
			nes.Reset()
		case 'm', 'M':
			fmt.Println()
			low := readAddress("Low address (eg f00d): ")
			high := readAddress("High address (eg beef): ")
			fmt.Println()
			x := 0
			for i := uint32(low); ; i++ {
				fmt.Printf("0x%04x: 0x%02x ", i, nes.Bus.Read(uint16(i)))
				x++
				if x%5 == 0 {
					fmt.Println()
				}
				if i == uint32(high) || i == math.MaxUint16 {
					break
				}
			}
			fmt.Printf("\n\n")
		}
	}
}

func runToBreak(ctx context.Context, nes *console.Console, breaks map[uint16]struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			if _, hit := breaks[nes.Bus.CPU.PC]; hit {
				return
			}
			nes.Tick()
		}
	}
}
