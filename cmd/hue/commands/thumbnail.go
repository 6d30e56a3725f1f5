package commands

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoding.
	_ "image/jpeg" // Register JPEG decoding.
	"image/png"
	"os"

	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"  // Register BMP decoding.
	_ "golang.org/x/image/tiff" // Register TIFF decoding.
	_ "golang.org/x/image/webp" // Register WebP decoding.

	"go.trai.ch/hue/internal/core/domain"
)

func (c *CLI) newThumbnailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thumbnail <in> <out.png>",
		Short: "Apply the baked display transform of a source to a still image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			override, err := overrideFromFlags(cmd)
			if err != nil {
				return err
			}
			source, _ := cmd.Flags().GetString("source")

			img, err := decodeImage(args[0])
			if err != nil {
				return err
			}

			out, err := c.app.ProcessThumbnail(cmd.Context(), domain.MediaDescriptor{
				SourceID: source,
				Params:   override,
			}, domain.ThumbnailFromImage(img))
			if err != nil {
				return err
			}

			if err := encodePNG(args[1], out.Image()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", args[1], out.Width, out.Height)
			return nil
		},
	}
	addParamsFlags(cmd)
	cmd.Flags().String("source", defaultSource, "Source id whose stored params apply")
	return cmd
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func encodePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
