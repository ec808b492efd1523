// Command gbdisasm loads a ROM image and disassembles it to stdout
// starting at a given PC, one line per instruction.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aeyoll/lr35902/disassemble"
	"github.com/aeyoll/lr35902/mmu"
)

var (
	startPC = flag.Int("start_pc", 0x0100, "PC value to start disassembling at (cartridge entry point is 0x0100)")
	count   = flag.Int("count", 0, "Number of instructions to print (0 disassembles to the end of the image)")
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("usage: %s [-start_pc <PC>] [-count <N>] <rom file>", os.Args[0])
	}
	fn := flag.Args()[0]

	b, err := os.ReadFile(fn)
	if err != nil {
		log.Fatalf("gbdisasm: can't open %s: %v", fn, err)
	}

	bank := mmu.NewFlatRAM()
	bank.PowerOn()
	mmu.Load(bank, 0, b)

	pc := uint16(*startPC)
	fmt.Printf("0x%04X bytes loaded, starting at PC %04X\n", len(b), pc)

	cnt := 0
	for int(pc) < len(b) && (*count == 0 || cnt < *count) {
		line, n := disassemble.Step(pc, bank)
		fmt.Println(line)
		pc += uint16(n)
		cnt++
	}
}
