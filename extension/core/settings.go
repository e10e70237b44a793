// settings.go implements "anondocs settings", the application preferences
// stored in the database rather than the config file.

package core

import (
	"fmt"
	"os"

	"github.com/jpl-au/anondocs/cmd"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/jpl-au/anondocs/internal/settings"
	"github.com/spf13/cobra"
)

func (e *Extension) newSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings [field] [value]",
		Short: "View or change application settings",
		Long: `View or change application settings.

  anondocs settings                   # show all settings
  anondocs settings theme             # show one
  anondocs settings autoLockTime 10   # change one

Fields: theme, autoLock, autoLockTime, biometricEnabled.`,
		Args: cobra.MaximumNArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return settings.Fields(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: e.runSettings,
	}
}

func (e *Extension) runSettings(c *cobra.Command, args []string) error {
	ctx := c.Context()
	svc := e.ext.Service()

	b := log.Event("core:settings", "get").Author(cmd.Author())
	app, degraded, err := svc.Settings(ctx)
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("settings: %w", err))
	}
	if degraded {
		fmt.Fprintln(os.Stderr, "warning: storage unavailable, showing default settings")
	}

	switch len(args) {
	case 0:
		b.Detail("degraded", degraded).Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(app)
		}
		for _, f := range settings.Fields() {
			v, _ := app.Get(f)
			fmt.Fprintf(cmd.Out(), "%s: %s\n", f, v)
		}

	case 1:
		b.Detail("field", args[0])
		v, err := app.Get(args[0])
		if err != nil {
			return cmd.Fail(b, err)
		}
		b.Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		b = log.Event("core:settings", "set").Author(cmd.Author()).Detail("field", args[0])
		if err := app.Set(args[0], args[1]); err != nil {
			return cmd.Fail(b, err)
		}
		if err := svc.SaveSettings(ctx, app); err != nil {
			return cmd.Fail(b, fmt.Errorf("settings: %w", err))
		}
		b.Write(nil)
		if !cmd.JSON() {
			fmt.Fprintf(cmd.Out(), "%s = %s\n", args[0], args[1])
		}
		return cmd.PrintJSON(app)
	}
	return nil
}
