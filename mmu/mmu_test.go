package mmu

import "testing"

func TestFlatRAMReadWrite(t *testing.T) {
	b := NewFlatRAM()
	b.Write(0xC000, 0x42)
	if got := b.Read(0xC000); got != 0x42 {
		t.Fatalf("Read(0xC000) = 0x%02X, want 0x42", got)
	}
}

func TestRead16Write16LittleEndian(t *testing.T) {
	b := NewFlatRAM()
	Write16(b, 0x8000, 0xBEEF)
	if got := b.Read(0x8000); got != 0xEF {
		t.Fatalf("low byte = 0x%02X, want 0xEF", got)
	}
	if got := b.Read(0x8001); got != 0xBE {
		t.Fatalf("high byte = 0x%02X, want 0xBE", got)
	}
	if got := Read16(b, 0x8000); got != 0xBEEF {
		t.Fatalf("Read16(0x8000) = 0x%04X, want 0xBEEF", got)
	}
}

func TestLoad(t *testing.T) {
	b := NewFlatRAM()
	Load(b, 0x0100, []byte{0x00, 0x01, 0x02})
	for i, want := range []uint8{0x00, 0x01, 0x02} {
		if got := b.Read(0x0100 + uint16(i)); got != want {
			t.Fatalf("mem[0x%04X] = 0x%02X, want 0x%02X", 0x0100+i, got, want)
		}
	}
}

func TestPowerOnClears(t *testing.T) {
	b := NewFlatRAM()
	b.Write(0x1234, 0xFF)
	b.PowerOn()
	if got := b.Read(0x1234); got != 0 {
		t.Fatalf("Read(0x1234) after PowerOn = 0x%02X, want 0", got)
	}
}
