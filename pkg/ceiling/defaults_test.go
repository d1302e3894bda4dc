package ceiling

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDefaults(t *testing.T) {
	r := DefaultRoom()
	if r.Width != 12 || r.Length != 15 || r.Height != 9 {
		t.Fatalf("DefaultRoom = %+v", r)
	}

	p := DefaultPlain(r)
	if !approx(p.Width, 9.6) || !approx(p.Length, 12) || !approx(p.LeftOffset, 1.2) || !approx(p.TopOffset, 1.5) {
		t.Errorf("DefaultPlain = %+v", p)
	}

	band := DefaultPeripheral(r)
	if !approx(band.Width, 1.8) || band.Sides != AllSides {
		t.Errorf("DefaultPeripheral = %+v", band)
	}
	if wide := DefaultPeripheral(Room{Width: 30, Length: 40, Height: 9}); wide.Width != 2 {
		t.Errorf("band width = %v, want capped at 2", wide.Width)
	}

	i := DefaultIsland(r)
	if i.Shape != ShapeRectangle || !approx(i.Width, 4.8) || !approx(i.Length, 6) || !approx(i.LeftOffset, 3.6) || !approx(i.TopOffset, 4.5) {
		t.Errorf("DefaultIsland = %+v", i)
	}

	c := DefaultCombined(r)
	if !c.UsePlain || !c.UsePeripheral || c.UseIsland {
		t.Errorf("DefaultCombined flags = %v %v %v", c.UsePlain, c.UsePeripheral, c.UseIsland)
	}
	if c.Plain == nil || c.Peripheral == nil || c.Island == nil {
		t.Error("DefaultCombined should prepare all three layers")
	}
}

func TestNewConfig(t *testing.T) {
	for _, typ := range Types {
		t.Run(string(typ), func(t *testing.T) {
			cfg := NewConfig(DefaultRoom(), typ)
			if cfg.Type != typ {
				t.Errorf("type = %q", cfg.Type)
			}
			plain, peripheral, island := cfg.Layers()
			if plain == nil && peripheral == nil && island == nil {
				t.Error("no active layer")
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestWithShape(t *testing.T) {
	base := DefaultIsland(DefaultRoom()) // 4.8×6 at (3.6, 4.5)

	t.Run("Circle", func(t *testing.T) {
		c := base.WithShape(ShapeCircle)
		if !approx(c.Radius, 2.4) {
			t.Errorf("radius = %v, want 2.4", c.Radius)
		}
		if !approx(c.LeftOffset, 3.6) || !approx(c.TopOffset, 5.1) {
			t.Errorf("offset = (%v, %v), want (3.6, 5.1)", c.LeftOffset, c.TopOffset)
		}
		if c.LightCount != 7 {
			t.Errorf("light count = %d, want 7", c.LightCount)
		}
		if c.CutoutWidth != 0 {
			t.Errorf("cutout width = %v, want 0", c.CutoutWidth)
		}
	})

	t.Run("CircularCutout", func(t *testing.T) {
		c := base.WithShape(ShapeCircularCutout)
		if c.LightCount != 5 || c.CutoutWidth != DefaultCutoutWidth {
			t.Errorf("got count %d cutout %v", c.LightCount, c.CutoutWidth)
		}
	})

	t.Run("Oval", func(t *testing.T) {
		o := base.WithShape(ShapeOval)
		if !approx(o.RadiusX, 2.4) || !approx(o.RadiusY, 3) {
			t.Errorf("radii = (%v, %v), want (2.4, 3)", o.RadiusX, o.RadiusY)
		}
		if w, l := o.Bounds(); !approx(w, 4.8) || !approx(l, 6) {
			t.Errorf("bounds = %v×%v", w, l)
		}
	})

	t.Run("BackToRectangle", func(t *testing.T) {
		r := base.WithShape(ShapeCircle).WithShape(ShapeRectangularCutout)
		if !approx(r.Width, 4.8) || !approx(r.Length, 4.8) {
			t.Errorf("size = %v×%v, want the circle's bounding box", r.Width, r.Length)
		}
		if r.CutoutWidth != DefaultCutoutWidth {
			t.Errorf("cutout width = %v", r.CutoutWidth)
		}
	})
}

func TestRescale(t *testing.T) {
	room := Room{Width: 20, Length: 10, Height: 9}

	plain := NewConfig(DefaultRoom(), TypePlain).Rescale(room)
	if plain.Room != room || !approx(plain.Plain.Width, 16) || !approx(plain.Plain.TopOffset, 1) {
		t.Errorf("plain = %+v", plain.Plain)
	}

	orig := NewConfig(DefaultRoom(), TypeCombined)
	orig.Combined.Plain.LightCount = 4
	combined := orig.Rescale(room)
	if !approx(combined.Combined.Peripheral.Width, 1.5) {
		t.Errorf("band width = %v, want 1.5", combined.Combined.Peripheral.Width)
	}
	if !approx(combined.Combined.Island.Width, 8) || !approx(combined.Combined.Island.LeftOffset, 6) {
		t.Errorf("island = %+v", combined.Combined.Island)
	}
	if combined.Combined.Plain.LightCount != 4 {
		t.Error("light count should survive a rescale")
	}
	if !approx(orig.Combined.Plain.Width, 9.6) {
		t.Error("Rescale modified its receiver")
	}

	island := NewConfig(DefaultRoom(), TypeIsland)
	if got := island.Rescale(room); got.Island != island.Island {
		t.Error("island designs keep their geometry")
	}
}

func TestSides(t *testing.T) {
	if AllSides.Count() != 4 {
		t.Errorf("AllSides.Count() = %d", AllSides.Count())
	}
	if n := (Sides{Top: true, Left: true}).Count(); n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
	if (Island{}).EnabledSides() != AllSides {
		t.Error("nil sides should mean all four")
	}
}

func TestLayers(t *testing.T) {
	p, band, i := DefaultPlain(DefaultRoom()), DefaultPeripheral(DefaultRoom()), DefaultIsland(DefaultRoom())
	cfg := Config{Type: TypeCombined, Combined: &Combined{
		UsePlain: true, UseIsland: true, Plain: &p, Peripheral: &band, Island: &i,
	}}
	gotP, gotB, gotI := cfg.Layers()
	if gotP != &p || gotB != nil || gotI != &i {
		t.Errorf("Layers() = %v, %v, %v", gotP, gotB, gotI)
	}
}

func TestCoveHasCove(t *testing.T) {
	c := Cove{CoveLight: true, CovePositions: []CovePosition{CoveInner}}
	if !c.HasCove(CoveInner) || c.HasCove(CoveOuter) {
		t.Error("HasCove mismatch")
	}
	c.CoveLight = false
	if c.HasCove(CoveInner) {
		t.Error("disabled cove reported as present")
	}
}
