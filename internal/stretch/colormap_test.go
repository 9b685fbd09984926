package stretch

import "testing"

func TestBuildColormapMonotone(t *testing.T) {
	for low := -1; low <= 256; low += 3 {
		for high := -1; high <= 256; high += 5 {
			if low == high && (low < 0 || low > 255) {
				continue
			}
			cm := BuildColormap(Bounds{Low: low, High: high})
			for i := 0; i < 255; i++ {
				if cm[i] > cm[i+1] {
					t.Fatalf("bounds %d..%d: cm[%d]=%d > cm[%d]=%d", low, high, i, cm[i], i+1, cm[i+1])
				}
			}
		}
	}
}

func TestBuildColormapIdentity(t *testing.T) {
	cm := BuildColormap(Bounds{Low: 0, High: 255})
	for i := range cm {
		if int(cm[i]) != i {
			t.Fatalf("cm[%d] = %d, want identity", i, cm[i])
		}
	}
}

func TestBuildColormapSingleTone(t *testing.T) {
	cm := BuildColormap(Bounds{Low: 77, High: 77})
	for i := range cm {
		if cm[i] != 77 {
			t.Fatalf("cm[%d] = %d, want 77", i, cm[i])
		}
	}
}

func TestBuildColormapNotFound(t *testing.T) {
	cm := BuildColormap(Bounds{Low: NoLow, High: NoHigh})
	for i := range cm {
		if cm[i] != 0 {
			t.Fatalf("cm[%d] = %d, want 0", i, cm[i])
		}
	}
}

func TestBuildColormapStretch(t *testing.T) {
	cm := BuildColormap(Bounds{Low: 10, High: 20})
	cases := map[int]uint8{
		0:   0,
		10:  0,
		11:  26, // 25.5 округляется вверх
		15:  128,
		19:  230,
		20:  255,
		255: 255,
	}
	for in, want := range cases {
		if cm[in] != want {
			t.Errorf("cm[%d] = %d, want %d", in, cm[in], want)
		}
	}
}

func TestSat(t *testing.T) {
	cases := []struct{ x, y, want int }{
		{5, 3, 2},
		{3, 5, 0},
		{300, 0, 255},
		{255, -1, 255},
		{0, 0, 0},
	}
	for _, c := range cases {
		if got := sat(c.x, c.y); got != c.want {
			t.Errorf("sat(%d, %d) = %d, want %d", c.x, c.y, got, c.want)
		}
	}
}

func TestColormapApply(t *testing.T) {
	var cm Colormap
	for i := range cm {
		cm[i] = uint8(255 - i)
	}
	pix := randomPix(3, 3*chunkPixels+17)
	for _, workers := range []int{0, 1, 4} {
		out := cm.Apply(pix, workers)
		if len(out) != len(pix) {
			t.Fatalf("len = %d, want %d", len(out), len(pix))
		}
		for k := range pix {
			if out[k] != 255-pix[k] {
				t.Fatalf("workers=%d: out[%d] = %d, want %d", workers, k, out[k], 255-pix[k])
			}
		}
	}
}
