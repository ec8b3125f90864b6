package vacuum

import (
	"fmt"
	"os"

	"github.com/arthur-debert/vacuum/internal/version"
	"github.com/arthur-debert/vacuum/pkg/cobrax/topics"
	"github.com/arthur-debert/vacuum/pkg/commands"
	"github.com/arthur-debert/vacuum/pkg/config"
	"github.com/arthur-debert/vacuum/pkg/logging"
	"github.com/arthur-debert/vacuum/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags and the configuration they load
type globalOptions struct {
	verbosity  int
	configFile string
	format     string

	cfg *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "vacuum",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "", MsgFlagFormat)

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Add all commands
	rootCmd.AddCommand(newBackupCmd(opts))
	rootCmd.AddCommand(newDepsCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd(rootCmd))

	// Help topics replace the default help command
	if _, err := topics.Initialize(rootCmd, afero.FromIOFS{FS: topicsFS}, "topics", topics.Options{
		Renderer: topicRenderer(),
	}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// topicRenderer renders markdown topics only when stdout is a rich terminal
func topicRenderer() topics.Renderer {
	if ui.Resolve(ui.FormatAuto, os.Stdout) == ui.FormatTerminal {
		return topics.NewGlamourRenderer()
	}
	return &topics.PlainRenderer{}
}

// config loads the configuration once per invocation. --format overrides
// output.format from every other layer.
func (o *globalOptions) config(cmd *cobra.Command) (*config.Config, error) {
	if o.cfg != nil {
		return o.cfg, nil
	}

	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("format") {
		overrides["output.format"] = o.format
	}

	cfg, err := config.Load(config.LoadOptions{ConfigFile: o.configFile, Overrides: overrides})
	if err != nil {
		return nil, err
	}
	o.cfg = cfg
	return cfg, nil
}

// environment builds the command environment writing to the command's
// output streams.
func (o *globalOptions) environment(cmd *cobra.Command) (commands.Environment, error) {
	cfg, err := o.config(cmd)
	if err != nil {
		return commands.Environment{}, err
	}

	format, err := cfg.OutputFormat()
	if err != nil {
		return commands.Environment{}, err
	}
	sink, err := ui.NewSink(format, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return commands.Environment{}, err
	}

	return commands.Environment{Config: cfg, Sink: sink}, nil
}
