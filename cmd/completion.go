package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/nutritrack/internal/cli"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate a shell completion script for nutri.

Examples:
  source <(nutri completion bash)
  nutri completion zsh > ~/.zsh/completion/_nutri
  nutri completion fish > ~/.config/fish/completions/nutri.fish
  nutri completion powershell | Out-String | Invoke-Expression`,
	ValidArgs: completionShells,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// generateCompletion writes the completion script for shell to stdout
func generateCompletion(shell string) {
	deps := cli.GetDeps()
	var err error

	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletionV2(deps.Stdout, true)
	case "zsh":
		err = rootCmd.GenZshCompletion(deps.Stdout)
	case "fish":
		err = rootCmd.GenFishCompletion(deps.Stdout, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(deps.Stdout)
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unsupported shell '%s'\n", shell)
		_, _ = fmt.Fprintf(deps.Stderr, "Supported shells: %s\n", strings.Join(completionShells, ", "))
		deps.Exit(1)
		return
	}

	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to generate %s completion: %v\n", shell, err)
		deps.Exit(1)
	}
}
