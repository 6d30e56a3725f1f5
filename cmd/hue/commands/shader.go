package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/hue/internal/core/domain"
)

func (c *CLI) newShaderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shader [source]",
		Short: "Print the generated WGSL display shader of a source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			override, err := overrideFromFlags(cmd)
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("viewer")
			viewer, err := domain.ParseViewer(name)
			if err != nil {
				return err
			}

			shader, err := c.app.Shader(cmd.Context(), sourceArg(args), override, viewer)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprint(out, shader.Source)

			if show, _ := cmd.Flags().GetBool("resources"); show {
				_, _ = fmt.Fprintf(out, "\n// key %s\n", shader.Key)
				for _, t := range shader.Textures {
					_, _ = fmt.Fprintf(out, "// texture %s binding %d: %dD %dx%dx%d\n",
						t.Name, t.Binding, t.Dim, t.Width, t.Height, t.Depth)
				}
				for _, h := range shader.Handles {
					_, _ = fmt.Fprintf(out, "// handle %s offset %d size %d\n", h.Name, h.Offset, h.Components)
				}
			}

			if path, _ := cmd.Flags().GetString("spirv"); path != "" {
				if err := os.WriteFile(path, shader.SPIRV, domain.FilePerm); err != nil {
					return err
				}
			}
			return nil
		},
	}
	addParamsFlags(cmd)
	cmd.Flags().String("viewer", "main", "Viewer context: main, popout or thumbnail")
	cmd.Flags().String("spirv", "", "Write the compiled SPIR-V module to this file")
	cmd.Flags().Bool("resources", false, "List textures and dynamic handles after the source")
	return cmd
}
