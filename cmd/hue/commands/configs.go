package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/hue/internal/ui/output"
	"go.trai.ch/hue/internal/ui/style"
)

func (c *CLI) newConfigsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configs [name]",
		Short: "List colour configurations, or the displays and views of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			lipgloss.SetColorProfile(output.New(w).Profile)

			if len(args) == 0 {
				for _, name := range c.app.Configs() {
					_, _ = fmt.Fprintln(w, name)
				}
				return nil
			}

			opts, err := c.app.DisplayOptions(args[0])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(w, style.Heading.Render(opts.Config))
			if opts.Description != "" {
				_, _ = fmt.Fprintln(w, style.Muted.Render(opts.Description))
			}
			_, _ = fmt.Fprintf(w, "working space: %s\n\n", opts.WorkingSpace)

			current := opts.Settings.Display
			if current == "" && len(opts.Displays) > 0 {
				current = opts.Displays[0].Display
			}
			_, _ = fmt.Fprintln(w, style.Heading.Render("Displays"))
			for _, d := range opts.Displays {
				marker := style.Circle
				if d.Display == current {
					marker = style.Dot
				}
				_, _ = fmt.Fprintf(w, "  %s %s %s %s\n", marker, d.Display, style.Arrow, strings.Join(d.Views, ", "))
			}

			_, _ = fmt.Fprintln(w)
			_, _ = fmt.Fprintln(w, style.Heading.Render("Colour spaces"))
			for _, cs := range opts.ColorSpaces {
				_, _ = fmt.Fprintf(w, "  %s\n", cs)
			}

			s := opts.Settings
			if s.Display != "" || s.PopoutDisplay != "" || s.View != "" {
				_, _ = fmt.Fprintln(w)
				_, _ = fmt.Fprintln(w, style.Heading.Render("Settings"))
				printSetting(w, "display", s.Display)
				printSetting(w, "popout display", s.PopoutDisplay)
				printSetting(w, "view", s.View)
			}
			return nil
		},
	}
}

func printSetting(w io.Writer, key, value string) {
	if value == "" {
		return
	}
	_, _ = fmt.Fprintf(w, "  %s: %s\n", key, value)
}
