package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/hue/internal/core/domain"
)

func (c *CLI) newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample <r> <g> <b>",
		Short: "Run one colour through the display and view transform",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in domain.RGB
			for i, a := range args {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("channel %d: %w", i, err)
				}
				in[i] = v
			}

			override, err := overrideFromFlags(cmd)
			if err != nil {
				return err
			}
			source, _ := cmd.Flags().GetString("source")
			inverse, _ := cmd.Flags().GetBool("inverse")
			name, _ := cmd.Flags().GetString("viewer")
			viewer, err := domain.ParseViewer(name)
			if err != nil {
				return err
			}
			channelName, _ := cmd.Flags().GetString("channel")
			channel, ok := domain.ParseChannel(channelName)
			if !ok {
				return fmt.Errorf("unknown channel %q", channelName)
			}
			if inverse && channel != domain.ChannelRGB {
				return fmt.Errorf("channel %s cannot be combined with --inverse", channel)
			}

			out, err := c.app.SampleDisplay(domain.MediaDescriptor{SourceID: source, Params: override}, viewer, inverse, in)
			if err != nil {
				return err
			}
			out, _ = channel.Isolate(out, 1)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%.6f %.6f %.6f\n", out[0], out[1], out[2])
			return nil
		},
	}
	addParamsFlags(cmd)
	cmd.Flags().String("source", defaultSource, "Source id whose stored params apply")
	cmd.Flags().String("viewer", "main", "Viewer context: main or popout")
	cmd.Flags().Bool("inverse", false, "Map display values back to the working space")
	cmd.Flags().String("channel", "rgb", "Channel to isolate: rgb, red, green, blue, alpha or luminance")
	return cmd
}
