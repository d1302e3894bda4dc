package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// designCommand opens the interactive configurator.
func (c *CLI) designCommand() *cobra.Command {
	var (
		flags  designFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "design",
		Short: "Configure a ceiling interactively",
		Long: `Configure a ceiling interactively.

Pick the ceiling type, room size, light counts, band width, island shape,
cutout, sides and cove lights with the arrow keys. The fixture preview and
counts update on every change. Enter saves the design file.`,
		Example: `  ceilplan design
  ceilplan design -f kitchen.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.build(cmd)
			if err != nil {
				return err
			}
			path := output
			if path == "" {
				path = flags.file
			}
			if path == "" {
				path = defaultDesignFile
			}

			final, err := tea.NewProgram(NewDesignModel(cfg, path), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("designer: %w", err)
			}
			m, ok := final.(DesignModel)
			if !ok || !m.Saved {
				printDetail("Design not saved")
				return nil
			}

			printSuccess("Saved %s design with %d fixtures", m.Config.Type, m.Layout().Summary.Total)
			printFile(m.Path)
			printNewline()
			printNextStep("Render it", "ceilplan render -f "+m.Path+" --labels")
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "design file to save (default: --file or design.toml)")
	return cmd
}
