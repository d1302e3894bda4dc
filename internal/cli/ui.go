package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/ceilplan/pkg/ceiling"
	"github.com/matzehuels/ceilplan/pkg/lighting"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorAmber = lipgloss.Color("214") // fixtures, primary accent
	colorGreen = lipgloss.Color("35")  // success
	colorRed   = lipgloss.Color("167") // errors
	colorBlue  = lipgloss.Color("75")  // commands
	colorWhite = lipgloss.Color("255") // values
	colorGray  = lipgloss.Color("245") // secondary text
	colorDim   = lipgloss.Color("240") // muted text
)

// layerColors mirror the plan drawing: plain blue, peripheral green,
// island amber.
var layerColors = map[string]lipgloss.Color{
	lighting.LayerPlain:      lipgloss.Color("75"),
	lighting.LayerPeripheral: lipgloss.Color("78"),
	lighting.LayerIsland:     lipgloss.Color("214"),
}

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAmber)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAmber)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAmber)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented dim line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}

// =============================================================================
// Layout Output
// =============================================================================

// printStats prints the fixture total, one count per layer and the cache
// status on a single line.
func printStats(s lighting.Summary, cached bool) {
	fmt.Println("  " + statsLine(s, cached))
}

func statsLine(s lighting.Summary, cached bool) string {
	parts := []string{fmt.Sprintf("%d fixtures", s.Total)}
	for _, l := range s.Layers {
		parts = append(parts, fmt.Sprintf("%s %d", l.Layer, l.Placed))
	}

	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}

	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteString(StyleDim.Render(" · "))
		}
		b.WriteString(StyleDim.Render(p))
	}
	b.WriteString(StyleDim.Render(" · "))
	b.WriteString(statusStyle.Render(status))
	return b.String()
}

// summaryTable renders one row per ceiling layer.
func summaryTable(s lighting.Summary) string {
	rows := make([][]string, 0, len(s.Layers))
	for _, l := range s.Layers {
		rows = append(rows, []string{
			l.Layer,
			layerDetail(l),
			fmt.Sprint(l.Requested),
			fmt.Sprint(l.Placed),
			coveList(l.Coves),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Layer", "Layout", "Requested", "Placed", "Coves").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 && row < len(s.Layers) {
				return base.Foreground(layerColors[s.Layers[row].Layer])
			}
			if col == 3 && row < len(s.Layers) && s.Layers[row].Placed != s.Layers[row].Requested {
				return base.Foreground(colorAmber)
			}
			return base
		})
	return t.Render()
}

func layerDetail(l lighting.LayerSummary) string {
	switch {
	case l.Grid != nil:
		return fmt.Sprintf("%d×%d grid", l.Grid.Rows, l.Grid.Cols)
	case l.Sides != nil:
		return fmt.Sprintf("T%d R%d B%d L%d", l.Sides.Top, l.Sides.Right, l.Sides.Bottom, l.Sides.Left)
	case l.Shape != "":
		return string(l.Shape)
	}
	return "-"
}

func coveList(cs []ceiling.CovePosition) string {
	if len(cs) == 0 {
		return "-"
	}
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// fixtureTable lists every position, numbered from 1 in calculation order.
func fixtureTable(positions []ceiling.Position) string {
	rows := make([][]string, len(positions))
	for i, p := range positions {
		rows[i] = []string{
			fmt.Sprint(i + 1),
			fmt.Sprintf("%.2f", p.X),
			fmt.Sprintf("%.2f", p.Y),
			fmt.Sprintf("%.2f", p.Radius),
		}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("#", "X (ft)", "Y (ft)", "Radius").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			if col == 0 {
				return StyleDim.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
		}).
		Render()
}
