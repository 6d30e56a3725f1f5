package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/hue/internal/ui/style"
)

func (c *CLI) newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <attribute> <value>",
		Short: "Change a viewer control (display, popout_display, view, exposure, bypass, channel)",
		Long: "Change a viewer control. Display, popout display and view choices are\n" +
			"remembered per colour configuration in the state directory.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.controls.AttributeChanged(args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", style.Check, args[0], args[1])
			return nil
		},
	}
}

func (c *CLI) newScreenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screen <monitor>",
		Short: "Select the display configured for a monitor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popout, _ := cmd.Flags().GetBool("popout")
			matched, err := c.controls.ScreenChanged(!popout, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !matched {
				_, _ = fmt.Fprintf(out, "%s no display claims monitor %q\n", style.Warning, args[0])
				return nil
			}
			_, _ = fmt.Fprintf(out, "%s display updated for %q\n", style.Check, args[0])
			return nil
		},
	}
	cmd.Flags().Bool("popout", false, "Apply to the popout viewer")
	return cmd
}
