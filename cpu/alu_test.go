package cpu

import "testing"

func TestAdd8(t *testing.T) {
	for a := 0; a < 256; a += 17 {
		for b := 0; b < 256; b += 23 {
			v, f := add8(uint8(a), uint8(b))
			wantSum := a + b
			if int(v) != wantSum%256 {
				t.Fatalf("add8(%d,%d) = %d, want %d", a, b, v, wantSum%256)
			}
			if f.C != (wantSum > 0xFF) {
				t.Errorf("add8(%d,%d).C = %v, want %v", a, b, f.C, wantSum > 0xFF)
			}
			wantH := (a&0x0F)+(b&0x0F) > 0x0F
			if f.H != wantH {
				t.Errorf("add8(%d,%d).H = %v, want %v", a, b, f.H, wantH)
			}
			if f.N {
				t.Errorf("add8(%d,%d).N = true, want false", a, b)
			}
			if f.Z != (v == 0) {
				t.Errorf("add8(%d,%d).Z = %v, want %v", a, b, f.Z, v == 0)
			}
		}
	}
}

func TestAdc8IncorporatesCarryIn(t *testing.T) {
	for a := 0; a < 256; a += 13 {
		for b := 0; b < 256; b += 19 {
			for ci := 0; ci < 2; ci++ {
				v, f := adc8(uint8(a), uint8(b), ci == 1)
				want := (a + b + ci) % 256
				if int(v) != want {
					t.Fatalf("adc8(%d,%d,%d) = %d, want %d", a, b, ci, v, want)
				}
				wantC := a+b+ci > 0xFF
				wantH := (a&0x0F)+(b&0x0F)+ci > 0x0F
				if f.C != wantC {
					t.Errorf("adc8(%d,%d,%d).C = %v, want %v", a, b, ci, f.C, wantC)
				}
				if f.H != wantH {
					t.Errorf("adc8(%d,%d,%d).H = %v, want %v", a, b, ci, f.H, wantH)
				}
			}
		}
	}
}

func TestSbc8IncorporatesCarryIn(t *testing.T) {
	for a := 0; a < 256; a += 7 {
		for b := 0; b < 256; b += 11 {
			for ci := 0; ci < 2; ci++ {
				v, f := sbc8(uint8(a), uint8(b), ci == 1)
				want := ((a - b - ci) % 256 + 256) % 256
				if int(v) != want {
					t.Fatalf("sbc8(%d,%d,%d) = %d, want %d", a, b, ci, v, want)
				}
				wantC := a < b+ci
				wantH := (a & 0x0F) < (b&0x0F)+ci
				if f.C != wantC {
					t.Errorf("sbc8(%d,%d,%d).C = %v, want %v", a, b, ci, f.C, wantC)
				}
				if f.H != wantH {
					t.Errorf("sbc8(%d,%d,%d).H = %v, want %v", a, b, ci, f.H, wantH)
				}
			}
		}
	}
}

func TestIncDecRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		inc, _ := inc8(uint8(v))
		dec, decFlags := dec8(inc)
		if dec != uint8(v) {
			t.Fatalf("dec8(inc8(%d)) = %d, want %d", v, dec, v)
		}
		if decFlags.Z != (dec == 0) {
			t.Errorf("dec8 Z flag wrong for v=%d", v)
		}

		dec2, _ := dec8(uint8(v))
		inc2, incFlags := inc8(dec2)
		if inc2 != uint8(v) {
			t.Fatalf("inc8(dec8(%d)) = %d, want %d", v, inc2, v)
		}
		if incFlags.Z != (inc2 == 0) {
			t.Errorf("inc8 Z flag wrong for v=%d", v)
		}
	}
}

func TestRotateIsIdentityAfterEightApplications(t *testing.T) {
	for v := 0; v < 256; v++ {
		r := uint8(v)
		for i := 0; i < 8; i++ {
			r, _ = rlc(r)
		}
		if r != uint8(v) {
			t.Fatalf("rlc iterated 8 times on %d = %d, want identity", v, r)
		}

		r = uint8(v)
		for i := 0; i < 8; i++ {
			r, _ = rrc(r)
		}
		if r != uint8(v) {
			t.Fatalf("rrc iterated 8 times on %d = %d, want identity", v, r)
		}
	}
}

func TestAddSPSignedUsesUnsignedLowByteForFlags(t *testing.T) {
	tests := []struct {
		sp   uint16
		e8   uint8
		want uint16
	}{
		{0x0000, 0x02, 0x0002},
		{0x0005, 0xFF, 0x0004}, // e8 = -1
		{0xFFFF, 0x01, 0x0000},
	}
	for _, tt := range tests {
		got, f := addSPSigned(tt.sp, tt.e8)
		if got != tt.want {
			t.Errorf("addSPSigned(0x%04X,0x%02X) = 0x%04X, want 0x%04X", tt.sp, tt.e8, got, tt.want)
		}
		lo := tt.sp & 0xFF
		wantH := (lo&0x0F)+(uint16(tt.e8)&0x0F) > 0x0F
		wantC := lo+uint16(tt.e8) > 0xFF
		if f.H != wantH || f.C != wantC {
			t.Errorf("addSPSigned(0x%04X,0x%02X) flags H=%v C=%v, want H=%v C=%v", tt.sp, tt.e8, f.H, f.C, wantH, wantC)
		}
		if f.Z || f.N {
			t.Errorf("addSPSigned(0x%04X,0x%02X) Z/N should always be false, got Z=%v N=%v", tt.sp, tt.e8, f.Z, f.N)
		}
	}
}

func TestDaaAfterAdd(t *testing.T) {
	// 0x45 + 0x38 = 0x7D in binary; decimal-adjusted that's 45+38=83 (0x83 BCD).
	a, f := add8(0x45, 0x38)
	got, gotF := daa(a, f)
	if got != 0x83 {
		t.Fatalf("DAA after 0x45+0x38 = 0x%02X, want 0x83", got)
	}
	if gotF.C || gotF.H || gotF.N || gotF.Z {
		t.Fatalf("DAA after 0x45+0x38 flags = %+v, want all clear", gotF)
	}
}

func TestDaaAfterSubtractWithBorrow(t *testing.T) {
	a, f := sub8(0x00, 0x01)
	got, gotF := daa(a, f)
	if got != 0x99 {
		t.Fatalf("DAA after 0x00-0x01 = 0x%02X, want 0x99", got)
	}
	if !gotF.N || !gotF.C || gotF.H || gotF.Z {
		t.Fatalf("DAA after 0x00-0x01 flags = %+v, want N=1 C=1 H=0 Z=0", gotF)
	}
}
