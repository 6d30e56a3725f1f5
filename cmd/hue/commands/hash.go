package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/hue/internal/core/domain"
)

func (c *CLI) newHashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash [source]",
		Short: "Print the params hash and per-viewer pipeline keys of a source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			override, err := overrideFromFlags(cmd)
			if err != nil {
				return err
			}
			source := sourceArg(args)

			hash, err := c.app.ComputeHash(source, override)
			if err != nil {
				return err
			}
			media := domain.MediaDescriptor{SourceID: source, Params: override}
			main, err := c.app.FastDisplayTransformHash(media, domain.ViewerMain)
			if err != nil {
				return err
			}
			popout, err := c.app.FastDisplayTransformHash(media, domain.ViewerPopout)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "params  %s\n", hash)
			_, _ = fmt.Fprintf(out, "main    %s\n", main)
			_, _ = fmt.Fprintf(out, "popout  %s\n", popout)

			if show, _ := cmd.Flags().GetBool("resolved"); show {
				p, err := c.app.Params(source, override)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "\nconfig      %s\n", p.ConfigName)
				_, _ = fmt.Fprintf(out, "colorspace  %s\n", p.Colorspace)
				_, _ = fmt.Fprintf(out, "display     %s\n", p.Display)
				_, _ = fmt.Fprintf(out, "popout      %s\n", p.PopoutDisplay)
				_, _ = fmt.Fprintf(out, "view        %s\n", p.View)
			}
			return nil
		},
	}
	addParamsFlags(cmd)
	cmd.Flags().Bool("resolved", false, "Also print the resolved params")
	return cmd
}
