package commands

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/stellar-xdr/cmd/stellar-xdr/cmdutil"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for stellar-xdr.

To load completions:

Bash:
  # Linux:
  $ stellar-xdr completion bash > /etc/bash_completion.d/stellar-xdr
  # macOS:
  $ stellar-xdr completion bash > $(brew --prefix)/etc/bash_completion.d/stellar-xdr

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  # Linux:
  $ stellar-xdr completion zsh > "${fpath[1]}/_stellar-xdr"
  # macOS:
  $ stellar-xdr completion zsh > $(brew --prefix)/share/zsh/site-functions/_stellar-xdr

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ stellar-xdr completion fish > ~/.config/fish/completions/stellar-xdr.fish

PowerShell:
  PS> stellar-xdr completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> stellar-xdr completion powershell > stellar-xdr.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	Annotations:           map[string]string{cmdutil.AnnotationNoSetup: "true"},
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
		case "zsh":
			return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		}
		return nil
	},
}
