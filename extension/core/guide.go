// guide.go implements "anondocs guide". Pages are embedded in the binary.
// A terminal gets glamour rendering, a pipe gets raw markdown.

package core

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/anondocs/cmd"
	"github.com/jpl-au/anondocs/guide"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the anondocs usage guide",
		Long: `Outputs the anondocs guide.

  anondocs guide              # main guide
  anondocs guide encryption   # passwords and encryption
  anondocs guide share        # share links`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			names, _ := guide.List()
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			if errors.Is(err, guide.ErrNotFound) {
				available, _ := guide.List()
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}
			if err != nil {
				return cmd.PrintJSONError(err)
			}

			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"topic": name, "content": content})
			}
			if term.IsTerminal(int(os.Stdout.Fd())) {
				if rendered, err := glamour.Render(content, "dark"); err == nil {
					fmt.Fprint(cmd.Out(), rendered)
					return nil
				}
			}
			fmt.Fprint(cmd.Out(), content)
			return nil
		},
	}
}
