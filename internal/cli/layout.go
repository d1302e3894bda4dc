package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ceilplan/pkg/pipeline"
)

// layoutCommand computes fixture positions and prints them.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags   designFlags
		output  string
		refresh bool
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Calculate light positions for a design",
		Long: `Calculate light positions for a design and print them as a table.

The design comes from --file or from flags. With -o the layout document
(positions, per-layer summary and the design itself) is written as JSON;
it is the same document 'render -F json' produces.

Results are cached; --refresh recomputes.`,
		Example: `  ceilplan layout --room 12x15 --type plain --count 6
  ceilplan layout -f kitchen.toml -o kitchen.layout.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, &flags, output, refresh, quiet)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout document to this file")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "omit the per-fixture table")
	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, flags *designFlags, output string, refresh, quiet bool) error {
	ctx := cmd.Context()

	design, err := flags.build(cmd)
	if err != nil {
		return err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	l, hit, err := runner.LayoutWithCacheInfo(ctx, design, refresh)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done(fmt.Sprintf("Planned %d fixtures", l.Summary.Total))

	if output != "" {
		data, err := pipeline.MarshalLayout(l)
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
	}

	printSuccess("Layout for %.1f × %.1f ft %s ceiling", design.Room.Width, design.Room.Length, design.Type)
	printStats(l.Summary, hit)
	printNewline()
	fmt.Println(summaryTable(l.Summary))
	if !quiet && len(l.Positions) > 0 {
		fmt.Println(fixtureTable(l.Positions))
	}
	if output != "" {
		printFile(output)
	}
	return nil
}
