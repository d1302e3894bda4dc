package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand generates shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for ceilplan. Ceiling types and island
shapes complete for --type and --shape.

To load completions:

Bash:
  $ source <(ceilplan completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ ceilplan completion bash > /etc/bash_completion.d/ceilplan
  # macOS:
  $ ceilplan completion bash > $(brew --prefix)/etc/bash_completion.d/ceilplan

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ ceilplan completion zsh > "${fpath[1]}/_ceilplan"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ ceilplan completion fish | source

  # To load completions for each session, execute once:
  $ ceilplan completion fish > ~/.config/fish/completions/ceilplan.fish

PowerShell:
  PS> ceilplan completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> ceilplan completion powershell > ceilplan.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}
