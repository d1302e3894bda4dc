package cli

import (
	"os"

	"github.com/spf13/cobra"

	cperrors "github.com/matzehuels/ceilplan/pkg/errors"
	designio "github.com/matzehuels/ceilplan/pkg/io"
)

const defaultDesignFile = "design.toml"

// initCommand writes a starter design file.
func (c *CLI) initCommand() *cobra.Command {
	var (
		flags designFlags
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init [design.toml|design.yaml|design.json]",
		Short: "Write a starter design file",
		Long: `Write a starter design file for a ceiling type.

The file format follows the extension. The defaults scale with --room: a
plain ceiling covers 80% of the room, an island 40%, and a peripheral band
15% of the shorter wall, at most 2 ft.`,
		Example: `  ceilplan init
  ceilplan init kitchen.yaml --type island --shape circular-cutout --room 14x16`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultDesignFile
			if len(args) == 1 {
				path = args[0]
			}
			if flags.file != "" {
				return cperrors.New(cperrors.ErrCodeInvalidInput, "init writes a new design; --file is not supported")
			}
			return c.runInit(cmd, &flags, path, force)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) runInit(cmd *cobra.Command, flags *designFlags, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return cperrors.New(cperrors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
	}

	cfg, err := flags.build(cmd)
	if err != nil {
		return err
	}
	if err := designio.ExportDesign(cfg, path); err != nil {
		return err
	}

	printSuccess("Wrote %s design", cfg.Type)
	printFile(path)
	printNewline()
	printNextStep("Plan it", "ceilplan layout -f "+path)
	return nil
}
