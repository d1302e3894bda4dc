package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/ceilplan/pkg/ceiling"
	designio "github.com/matzehuels/ceilplan/pkg/io"
	"github.com/matzehuels/ceilplan/pkg/lighting"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAmber)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	errorStyle        = lipgloss.NewStyle().Foreground(colorRed)
	previewStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	fixtureStyle      = lipgloss.NewStyle().Foreground(colorAmber)
)

const (
	previewCols = 40
	previewRows = 16

	roomStep   = 0.5
	bandStep   = 0.25
	cutoutStep = 0.25
)

// =============================================================================
// DesignModel - interactive ceiling configurator
// =============================================================================

// field is one editable row of the configurator.
type field struct {
	label   string
	value   func(cfg ceiling.Config) string
	applies func(cfg ceiling.Config) bool
	adjust  func(cfg *ceiling.Config, delta int)
}

// DesignModel is the bubbletea model behind 'ceilplan design'. Arrow keys
// pick a field and change its value; the fixture preview and counts are
// recalculated on every change.
type DesignModel struct {
	Config ceiling.Config
	Path   string
	Cursor int
	Saved  bool
	Err    error

	fields []field
	layout lighting.Layout
}

// NewDesignModel starts the configurator from cfg. Saving writes to path.
func NewDesignModel(cfg ceiling.Config, path string) DesignModel {
	m := DesignModel{Config: cfg, Path: path, fields: designFields()}
	m.recalculate()
	return m
}

func (m DesignModel) Init() tea.Cmd {
	return nil
}

func (m DesignModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.fields)-1 {
			m.Cursor++
		}
	case "left", "h", "-":
		m.adjust(-1)
	case "right", "l", "+":
		m.adjust(1)
	case "enter", "s":
		if m.Err != nil {
			return m, nil
		}
		if err := designio.ExportDesign(m.Config, m.Path); err != nil {
			m.Err = err
			return m, nil
		}
		m.Saved = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *DesignModel) adjust(delta int) {
	f := m.fields[m.Cursor]
	if !f.applies(m.Config) {
		return
	}
	// Sub-configs are pointers; edit a deep copy.
	cfg := cloneConfig(m.Config)
	f.adjust(&cfg, delta)
	m.Config = cfg
	m.recalculate()
}

func (m *DesignModel) recalculate() {
	cfg := m.Config
	if err := cfg.Validate(); err != nil {
		m.Err = err
		m.layout = lighting.Layout{Config: m.Config}
		return
	}
	m.Err = nil
	m.layout = lighting.Plan(m.Config)
}

// Layout returns the layout of the current design. It is empty while the
// design is invalid.
func (m DesignModel) Layout() lighting.Layout { return m.layout }

func (m DesignModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Ceiling Designer"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ field  ←/→ change  ⏎ save  q quit"))
	b.WriteString("\n\n")

	var rows []string
	for i, f := range m.fields {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		value := "-"
		if f.applies(m.Config) {
			value = f.value(m.Config)
		}
		line := fmt.Sprintf("%s%-10s %s", cursor, f.label, value)
		switch {
		case !f.applies(m.Config):
			rows = append(rows, listDimStyle.Render(line))
		case i == m.Cursor:
			rows = append(rows, listSelectedStyle.Render(line))
		default:
			rows = append(rows, listNormalStyle.Render(line))
		}
	}
	rows = append(rows, "", m.status())

	form := lipgloss.NewStyle().Width(36).Render(strings.Join(rows, "\n"))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, form, previewStyle.Render(m.preview())))
	b.WriteString("\n")
	return b.String()
}

func (m DesignModel) status() string {
	if m.Err != nil {
		return errorStyle.Render(iconError + " " + m.Err.Error())
	}
	parts := []string{StyleHighlight.Render(fmt.Sprintf("%d fixtures", m.layout.Summary.Total))}
	for _, l := range m.layout.Summary.Layers {
		parts = append(parts, listDimStyle.Render(fmt.Sprintf("%s %d", l.Layer, l.Placed)))
	}
	return strings.Join(parts, listDimStyle.Render(" · "))
}

// preview plots fixture positions on a character grid scaled to the room.
func (m DesignModel) preview() string {
	grid := make([][]rune, previewRows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", previewCols))
	}
	w, l := m.Config.Room.Width, m.Config.Room.Length
	if w > 0 && l > 0 {
		for _, p := range m.layout.Positions {
			col := int(math.Round(p.X / w * float64(previewCols-1)))
			row := int(math.Round(p.Y / l * float64(previewRows-1)))
			if row >= 0 && row < previewRows && col >= 0 && col < previewCols {
				grid[row][col] = '●'
			}
		}
	}
	lines := make([]string, previewRows)
	for i, r := range grid {
		lines[i] = strings.ReplaceAll(string(r), "●", fixtureStyle.Render("●"))
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// Fields
// =============================================================================

func designFields() []field {
	always := func(ceiling.Config) bool { return true }
	return []field{
		{
			label:   "Type",
			value:   func(cfg ceiling.Config) string { return string(cfg.Type) },
			applies: always,
			adjust: func(cfg *ceiling.Config, d int) {
				t := cycle(ceiling.Types, cfg.Type, d)
				*cfg = ceiling.NewConfig(cfg.Room, t)
			},
		},
		{
			label:   "Width",
			value:   func(cfg ceiling.Config) string { return feet(cfg.Room.Width) },
			applies: always,
			adjust: func(cfg *ceiling.Config, d int) {
				r := cfg.Room
				r.Width = math.Max(roomStep, r.Width+float64(d)*roomStep)
				*cfg = cfg.Rescale(r)
			},
		},
		{
			label:   "Length",
			value:   func(cfg ceiling.Config) string { return feet(cfg.Room.Length) },
			applies: always,
			adjust: func(cfg *ceiling.Config, d int) {
				r := cfg.Room
				r.Length = math.Max(roomStep, r.Length+float64(d)*roomStep)
				*cfg = cfg.Rescale(r)
			},
		},
		{
			label: "Layers",
			value: func(cfg ceiling.Config) string {
				var on []string
				c := cfg.Combined
				if c.UsePlain {
					on = append(on, "plain")
				}
				if c.UsePeripheral {
					on = append(on, "peripheral")
				}
				if c.UseIsland {
					on = append(on, "island")
				}
				return strings.Join(on, "+")
			},
			applies: func(cfg ceiling.Config) bool { return cfg.Type == ceiling.TypeCombined && cfg.Combined != nil },
			adjust: func(cfg *ceiling.Config, d int) {
				c := cfg.Combined
				mask := 0
				for i, on := range []bool{c.UsePlain, c.UsePeripheral, c.UseIsland} {
					if on {
						mask |= 1 << i
					}
				}
				mask = (mask-1+d+7)%7 + 1
				c.UsePlain, c.UsePeripheral, c.UseIsland = mask&1 != 0, mask&2 != 0, mask&4 != 0
				ensureCombinedLayers(cfg)
			},
		},
		{
			label: "Lights",
			value: func(cfg ceiling.Config) string {
				if n := primaryCount(cfg); n > 0 {
					return fmt.Sprint(n)
				}
				return "auto"
			},
			applies: func(cfg ceiling.Config) bool { return cfg.Type != ceiling.TypeCombined },
			adjust: func(cfg *ceiling.Config, d int) {
				n := primaryCount(*cfg) + d
				if n < 0 {
					n = 0
				}
				plain, peripheral, island := cfg.Layers()
				switch {
				case plain != nil:
					plain.LightCount = n
				case peripheral != nil:
					peripheral.LightCount = n
				case island != nil:
					island.LightCount = n
				}
			},
		},
		{
			label: "Band",
			value: func(cfg ceiling.Config) string {
				_, p, _ := cfg.Layers()
				return feet(p.Width)
			},
			applies: func(cfg ceiling.Config) bool { _, p, _ := cfg.Layers(); return p != nil },
			adjust: func(cfg *ceiling.Config, d int) {
				_, p, _ := cfg.Layers()
				p.Width = math.Max(bandStep, p.Width+float64(d)*bandStep)
			},
		},
		{
			label: "Shape",
			value: func(cfg ceiling.Config) string {
				_, _, i := cfg.Layers()
				return string(i.Shape)
			},
			applies: func(cfg ceiling.Config) bool { _, _, i := cfg.Layers(); return i != nil },
			adjust: func(cfg *ceiling.Config, d int) {
				_, _, i := cfg.Layers()
				*i = i.WithShape(cycle(ceiling.Shapes, i.Shape, d))
			},
		},
		{
			label: "Cutout",
			value: func(cfg ceiling.Config) string {
				_, _, i := cfg.Layers()
				return feet(i.CutoutWidth)
			},
			applies: func(cfg ceiling.Config) bool {
				_, _, i := cfg.Layers()
				return i != nil && i.Shape.IsCutout()
			},
			adjust: func(cfg *ceiling.Config, d int) {
				_, _, i := cfg.Layers()
				i.CutoutWidth = math.Max(cutoutStep, i.CutoutWidth+float64(d)*cutoutStep)
			},
		},
		{
			label: "Sides",
			value: func(cfg ceiling.Config) string {
				_, p, i := cfg.Layers()
				if p != nil {
					return sidesString(p.Sides)
				}
				return sidesString(i.EnabledSides())
			},
			applies: func(cfg ceiling.Config) bool {
				_, p, i := cfg.Layers()
				return p != nil || (i != nil && i.Shape == ceiling.ShapeRectangularCutout)
			},
			adjust: func(cfg *ceiling.Config, d int) {
				s := editableSides(cfg)
				mask := sidesMask(*s)
				mask = (mask-1+d+15)%15 + 1
				*s = ceiling.Sides{Top: mask&1 != 0, Right: mask&2 != 0, Bottom: mask&4 != 0, Left: mask&8 != 0}
			},
		},
		{
			label: "Cove",
			value: func(cfg ceiling.Config) string {
				c := primaryCove(&cfg)
				if !c.CoveLight || len(c.CovePositions) == 0 {
					return "none"
				}
				return coveList(c.CovePositions)
			},
			applies: func(cfg ceiling.Config) bool { return primaryCove(&cfg) != nil },
			adjust: func(cfg *ceiling.Config, d int) {
				c := primaryCove(cfg)
				options := [][]ceiling.CovePosition{
					nil,
					{ceiling.CoveInner},
					{ceiling.CoveOuter},
					{ceiling.CoveInner, ceiling.CoveOuter},
				}
				cur := 0
				for i, o := range options {
					if c.CoveLight && coveList(o) == coveList(c.CovePositions) {
						cur = i
					}
				}
				next := options[(cur+d+len(options))%len(options)]
				*c = ceiling.Cove{CoveLight: len(next) > 0, CovePositions: next}
			},
		},
	}
}

// cycle steps through values from cur by d, wrapping around.
func cycle[T comparable](values []T, cur T, d int) T {
	idx := 0
	for i, v := range values {
		if v == cur {
			idx = i
		}
	}
	n := len(values)
	return values[((idx+d)%n+n)%n]
}

func feet(v float64) string {
	return fmt.Sprintf("%.2f ft", v)
}

func primaryCount(cfg ceiling.Config) int {
	plain, peripheral, island := cfg.Layers()
	switch {
	case plain != nil:
		return plain.LightCount
	case peripheral != nil:
		return peripheral.LightCount
	case island != nil:
		return island.LightCount
	}
	return 0
}

// primaryCove returns the cove settings of the first active layer.
func primaryCove(cfg *ceiling.Config) *ceiling.Cove {
	plain, peripheral, island := cfg.Layers()
	switch {
	case plain != nil:
		return &plain.Cove
	case peripheral != nil:
		return &peripheral.Cove
	case island != nil:
		return &island.Cove
	}
	return nil
}

// editableSides returns the band sides, or the ring sides of a
// rectangular cutout, or nil.
func editableSides(cfg *ceiling.Config) *ceiling.Sides {
	_, peripheral, island := cfg.Layers()
	if peripheral != nil {
		return &peripheral.Sides
	}
	if island != nil && island.Shape == ceiling.ShapeRectangularCutout {
		if island.Sides == nil {
			s := ceiling.AllSides
			island.Sides = &s
		}
		return island.Sides
	}
	return nil
}

func sidesMask(s ceiling.Sides) int {
	mask := 0
	for i, on := range []bool{s.Top, s.Right, s.Bottom, s.Left} {
		if on {
			mask |= 1 << i
		}
	}
	return mask
}

func sidesString(s ceiling.Sides) string {
	if s == ceiling.AllSides {
		return "all"
	}
	var on []string
	for i, name := range []string{"top", "right", "bottom", "left"} {
		if sidesMask(s)&(1<<i) != 0 {
			on = append(on, name)
		}
	}
	if len(on) == 0 {
		return "none"
	}
	return strings.Join(on, ",")
}

// ensureCombinedLayers fills in defaults for newly enabled layers.
func ensureCombinedLayers(cfg *ceiling.Config) {
	c, r := cfg.Combined, cfg.Room
	if c.UsePlain && c.Plain == nil {
		p := ceiling.DefaultPlain(r)
		c.Plain = &p
	}
	if c.UsePeripheral && c.Peripheral == nil {
		p := ceiling.DefaultPeripheral(r)
		c.Peripheral = &p
	}
	if c.UseIsland && c.Island == nil {
		i := ceiling.DefaultIsland(r)
		c.Island = &i
	}
}

// cloneConfig deep-copies the sub-config pointers of cfg.
func cloneConfig(cfg ceiling.Config) ceiling.Config {
	out := cfg
	if cfg.Plain != nil {
		p := *cfg.Plain
		out.Plain = &p
	}
	if cfg.Peripheral != nil {
		p := *cfg.Peripheral
		out.Peripheral = &p
	}
	if cfg.Island != nil {
		out.Island = cloneIsland(cfg.Island)
	}
	if cfg.Combined != nil {
		c := *cfg.Combined
		if c.Plain != nil {
			p := *c.Plain
			c.Plain = &p
		}
		if c.Peripheral != nil {
			p := *c.Peripheral
			c.Peripheral = &p
		}
		if c.Island != nil {
			c.Island = cloneIsland(c.Island)
		}
		out.Combined = &c
	}
	return out
}

func cloneIsland(i *ceiling.Island) *ceiling.Island {
	out := *i
	if i.Sides != nil {
		s := *i.Sides
		out.Sides = &s
	}
	out.CovePositions = append([]ceiling.CovePosition(nil), i.CovePositions...)
	return &out
}
