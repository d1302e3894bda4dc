package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	cperrors "github.com/matzehuels/ceilplan/pkg/errors"
)

// publishCommand sends a layout to the MQTT broker.
func (c *CLI) publishCommand() *cobra.Command {
	var (
		flags designFlags
		id    string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a layout to the MQTT broker",
		Long: `Calculate a layout and publish it, retained, to
<prefix>/layout/<id> on the configured MQTT broker, where a lighting
controller can pick it up.

Without --id a random design id is generated and printed.`,
		Example: `  ceilplan publish -f kitchen.toml --id kitchen
  CEILPLAN_MQTT_HOST=broker.local ceilplan publish --type peripheral --room 10x10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			design, err := flags.build(cmd)
			if err != nil {
				return err
			}
			if id == "" {
				id = uuid.NewString()
			}
			if err := cperrors.ValidateTopicSegment(id); err != nil {
				return fmt.Errorf("--id: %w", err)
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

			l, err := runner.Layout(ctx, design)
			if err != nil {
				return err
			}

			pub, err := c.connectPublisher(ctx, cfg)
			if err != nil {
				return err
			}
			defer pub.Close()

			if err := pub.PublishLayout(ctx, id, l); err != nil {
				return err
			}

			printSuccess("Published %d fixtures", l.Summary.Total)
			printKeyValue("Topic", pub.Topics().Layout(id))
			printKeyValue("Design", id)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "design id used in the topic (default: random uuid)")
	return cmd
}
