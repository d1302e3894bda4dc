package ceiling

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/ceilplan/pkg/errors"
)

func TestValidate(t *testing.T) {
	room := DefaultRoom()
	plain := func(mut func(*Plain)) *Plain {
		p := DefaultPlain(room)
		if mut != nil {
			mut(&p)
		}
		return &p
	}
	peripheral := func(mut func(*Peripheral)) *Peripheral {
		p := DefaultPeripheral(room)
		if mut != nil {
			mut(&p)
		}
		return &p
	}
	island := func(mut func(*Island)) *Island {
		i := DefaultIsland(room)
		if mut != nil {
			mut(&i)
		}
		return &i
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"DefaultPlain", NewConfig(room, TypePlain), ""},
		{"DefaultPeripheral", NewConfig(room, TypePeripheral), ""},
		{"DefaultIsland", NewConfig(room, TypeIsland), ""},
		{"DefaultCombined", NewConfig(room, TypeCombined), ""},
		{
			name:    "ZeroRoomWidth",
			cfg:     Config{Room: Room{Width: 0, Length: 15, Height: 9}, Type: TypePlain, Plain: plain(nil)},
			wantErr: "room dimensions must be positive",
		},
		{
			name:    "NaNRoomHeight",
			cfg:     Config{Room: Room{Width: 12, Length: 15, Height: math.NaN()}, Type: TypePlain, Plain: plain(nil)},
			wantErr: "room dimensions must be positive",
		},
		{
			name:    "UnknownType",
			cfg:     Config{Room: room, Type: "vaulted"},
			wantErr: "unknown ceiling type",
		},
		{
			name:    "MissingPlain",
			cfg:     Config{Room: room, Type: TypePlain},
			wantErr: "plain ceiling configuration is missing",
		},
		{
			name:    "PlainTooWide",
			cfg:     Config{Room: room, Type: TypePlain, Plain: plain(func(p *Plain) { p.LeftOffset = 3 })},
			wantErr: "exceeds room width",
		},
		{
			name:    "PlainTooLong",
			cfg:     Config{Room: room, Type: TypePlain, Plain: plain(func(p *Plain) { p.Length = 14.5 })},
			wantErr: "exceeds room length",
		},
		{
			name:    "PlainNegativeCount",
			cfg:     Config{Room: room, Type: TypePlain, Plain: plain(func(p *Plain) { p.LightCount = -1 })},
			wantErr: "cannot be negative",
		},
		{
			name: "PlainCoveWithoutPosition",
			cfg: Config{Room: room, Type: TypePlain, Plain: plain(func(p *Plain) {
				p.CoveLight = true
			})},
			wantErr: "at least one position",
		},
		{
			name:    "BandTooWide",
			cfg:     Config{Room: room, Type: TypePeripheral, Peripheral: peripheral(func(p *Peripheral) { p.Width = 6.5 })},
			wantErr: "half the shorter room side",
		},
		{
			name:    "BandNoSides",
			cfg:     Config{Room: room, Type: TypePeripheral, Peripheral: peripheral(func(p *Peripheral) { p.Sides = Sides{} })},
			wantErr: "at least one side",
		},
		{
			name:    "IslandUnknownShape",
			cfg:     Config{Room: room, Type: TypeIsland, Island: island(func(i *Island) { i.Shape = "hexagon" })},
			wantErr: "unknown island shape",
		},
		{
			name: "CircleWithoutRadius",
			cfg: Config{Room: room, Type: TypeIsland, Island: island(func(i *Island) {
				i.Shape = ShapeCircle
				i.Radius = 0
			})},
			wantErr: "island radius",
		},
		{
			name: "CutoutWithoutWidth",
			cfg: Config{Room: room, Type: TypeIsland, Island: island(func(i *Island) {
				i.Shape = ShapeRectangularCutout
			})},
			wantErr: "cutout width",
		},
		{
			name: "CutoutNoSides",
			cfg: Config{Room: room, Type: TypeIsland, Island: island(func(i *Island) {
				*i = i.WithShape(ShapeRectangularCutout)
				i.Sides = &Sides{}
			})},
			wantErr: "cutout side",
		},
		{
			name:    "IslandOutsideRoom",
			cfg:     Config{Room: room, Type: TypeIsland, Island: island(func(i *Island) { i.LeftOffset = 8 })},
			wantErr: "exceeds room width",
		},
		{
			name: "CircleOutsideRoom",
			cfg: Config{Room: room, Type: TypeIsland, Island: island(func(i *Island) {
				i.Shape = ShapeCircle
				i.Radius = 7
				i.LeftOffset = 0
				i.TopOffset = 0
			})},
			wantErr: "exceeds room width",
		},
		{
			name:    "IslandNegativeOffset",
			cfg:     Config{Room: room, Type: TypeIsland, Island: island(func(i *Island) { i.TopOffset = -1 })},
			wantErr: "offsets cannot be negative",
		},
		{
			name:    "CombinedNoLayers",
			cfg:     Config{Room: room, Type: TypeCombined, Combined: &Combined{}},
			wantErr: "enable at least one",
		},
		{
			name:    "CombinedMissingLayer",
			cfg:     Config{Room: room, Type: TypeCombined, Combined: &Combined{UseIsland: true}},
			wantErr: "island layer is enabled but not configured",
		},
		{
			name: "CombinedInvalidLayer",
			cfg: Config{Room: room, Type: TypeCombined, Combined: &Combined{
				UsePlain: true,
				Plain:    plain(func(p *Plain) { p.Width = 0 }),
			}},
			wantErr: "must be positive",
		},
		{
			name: "CombinedIgnoresDisabledLayer",
			cfg: Config{Room: room, Type: TypeCombined, Combined: &Combined{
				UsePeripheral: true,
				Peripheral:    peripheral(nil),
				Plain:         plain(func(p *Plain) { p.Width = 0 }),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want it to contain %q", err, tt.wantErr)
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}
