// Package commands implements the CLI commands for hue.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/hue/internal/app"
	"go.trai.ch/hue/internal/build"
	"go.trai.ch/hue/internal/core/domain"
)

// Application represents the colour pipeline the commands drive.
type Application interface {
	Configure(opts app.Options)
	Params(sourceID string, override *domain.ParamsOverride) (domain.MediaParams, error)
	ComputeHash(sourceID string, override *domain.ParamsOverride) (string, error)
	FastDisplayTransformHash(media domain.MediaDescriptor, viewer domain.Viewer) (string, error)
	Shader(ctx context.Context, sourceID string, override *domain.ParamsOverride, viewer domain.Viewer) (*domain.CompiledShader, error)
	ProcessThumbnail(ctx context.Context, media domain.MediaDescriptor, buf *domain.ThumbnailBuffer) (*domain.ThumbnailBuffer, error)
	SampleDisplay(media domain.MediaDescriptor, viewer domain.Viewer, inverse bool, c domain.RGB) (domain.RGB, error)
	Configs() []string
	DisplayOptions(name string) (app.DisplayOptions, error)
}

// Controls receives viewer control changes.
type Controls interface {
	AttributeChanged(attr, value string) error
	ScreenChanged(primary bool, monitor string) (bool, error)
}

// CLI represents the command line interface for hue.
type CLI struct {
	app      Application
	controls Controls
	rootCmd  *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a Application, controls Controls) *CLI {
	rootCmd := &cobra.Command{
		Use:           "hue",
		Short:         "Colour pipeline and display shader tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringSlice("config-path", nil, "Directories searched for colour configurations before $"+domain.ConfigPathEnv)
	rootCmd.PersistentFlags().String("state-dir", "", "Directory holding persisted viewer settings")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	c := &CLI{
		app:      a,
		controls: controls,
		rootCmd:  rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		paths, _ := cmd.Flags().GetStringSlice("config-path")
		stateDir, _ := cmd.Flags().GetString("state-dir")
		jsonLogs, _ := cmd.Flags().GetBool("json")
		verbose, _ := cmd.Flags().GetBool("verbose")
		c.app.Configure(app.Options{
			ConfigPaths: paths,
			StateDir:    stateDir,
			JSON:        jsonLogs,
			Verbose:     verbose,
		})
	}

	rootCmd.AddCommand(c.newHashCmd())
	rootCmd.AddCommand(c.newShaderCmd())
	rootCmd.AddCommand(c.newThumbnailCmd())
	rootCmd.AddCommand(c.newSampleCmd())
	rootCmd.AddCommand(c.newConfigsCmd())
	rootCmd.AddCommand(c.newSetCmd())
	rootCmd.AddCommand(c.newScreenCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
