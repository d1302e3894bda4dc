package lighting_test

import (
	"fmt"

	"github.com/matzehuels/ceilplan/pkg/ceiling"
	"github.com/matzehuels/ceilplan/pkg/lighting"
)

func ExampleCalculate() {
	plain := ceiling.Plain{Width: 9.6, Length: 12, LeftOffset: 1.2, TopOffset: 1.5}
	cfg := ceiling.Config{
		Room:  ceiling.Room{Width: 12, Length: 15, Height: 9},
		Type:  ceiling.TypePlain,
		Plain: &plain,
	}

	for _, p := range lighting.Calculate(cfg) {
		fmt.Printf("(%.1f, %.1f)\n", p.X, p.Y)
	}
	// Output:
	// (3.2, 3.5)
	// (8.8, 3.5)
	// (3.2, 7.5)
	// (8.8, 7.5)
	// (3.2, 11.5)
	// (8.8, 11.5)
}

func ExamplePeripheral() {
	band := ceiling.Peripheral{Width: 1.5, Sides: ceiling.AllSides}
	counts := lighting.PeripheralCounts(band, 10, 10)
	fmt.Printf("top=%d right=%d bottom=%d left=%d\n", counts.Top, counts.Right, counts.Bottom, counts.Left)
	fmt.Println(len(lighting.Peripheral(band, 10, 10)), "fixtures")
	// Output:
	// top=2 right=2 bottom=2 left=2
	// 8 fixtures
}

func ExampleSummarize() {
	cfg := ceiling.NewConfig(ceiling.DefaultRoom(), ceiling.TypeCombined)
	s := lighting.Summarize(cfg)
	for _, l := range s.Layers {
		fmt.Printf("%s: %d\n", l.Layer, l.Placed)
	}
	fmt.Println("total:", s.Total)
	// Output:
	// plain: 6
	// peripheral: 14
	// total: 20
}
