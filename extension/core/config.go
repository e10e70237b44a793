// config.go implements "anondocs config". Local config
// (.anondocs/config.yaml) takes precedence over global
// (~/.anondocs/config.yaml). --local forces the local file even before it
// exists.

package core

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jpl-au/anondocs/cmd"
	"github.com/jpl-au/anondocs/extension"
	"github.com/jpl-au/anondocs/internal/config"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  anondocs config                          # show config
  anondocs config share.base_url           # show one value
  anondocs config share.base_url https://x # set it

Configuration locations:
  Global: ~/.anondocs/config.yaml
  Local:  .anondocs/config.yaml

Uses local config if it exists, otherwise global. Writes go to the same
place reads come from.`,
		Args: cobra.MaximumNArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.ValidKeys(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.anondocs/config.yaml)")
	return c
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool(extension.FlagLocal)
	if len(args) > 0 && !config.IsValidKey(args[0]) {
		return cmd.PrintJSONError(fmt.Errorf("%w: %s (valid: %s)", config.ErrUnknownKey, args[0], strings.Join(config.ValidKeys(), ", ")))
	}

	var cfg *config.Config
	var err error
	if forceLocal {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	scope := "global"
	if cfg.Scope() == config.ScopeLocal {
		scope = "local"
	}

	switch len(args) {
	case 0:
		all := cfg.All()
		log.Event("core:config", "list").Author(cmd.Author()).Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(all)
		}
		for _, k := range slices.Sorted(maps.Keys(all)) {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, all[k])
		}

	case 1:
		b := log.Event("core:config", "get").Author(cmd.Author()).Detail("key", args[0])
		v, err := cfg.Get(args[0])
		if err != nil {
			return cmd.Fail(b, fmt.Errorf("config get %q: %w", args[0], err))
		}
		b.Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		// The value is not logged.
		b := log.Event("core:config", "set").Author(cmd.Author()).Detail("key", args[0]).Detail("scope", scope)
		if err := cfg.Set(args[0], args[1]); err != nil {
			return cmd.Fail(b, fmt.Errorf("config set %q: %w", args[0], err))
		}
		if err := cfg.Save(); err != nil {
			return cmd.Fail(b, fmt.Errorf("config save: %w", err))
		}
		b.Write(nil)
		if !cmd.JSON() {
			fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], args[1], scope)
		}
		return cmd.PrintJSON(map[string]string{"key": args[0], "value": args[1], "scope": scope})
	}
	return nil
}
