package vacuum

import (
	"fmt"
	"os"

	"github.com/arthur-debert/vacuum/internal/version"
	"github.com/arthur-debert/vacuum/pkg/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newBackupCmd(opts *globalOptions) *cobra.Command {
	var (
		source string
		target string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:     "backup <profile>",
		Short:   MsgBackupShort,
		Long:    MsgBackupLong,
		Example: MsgBackupExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.environment(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Backup(cmd.Context(), commands.BackupOptions{
				Environment: env,
				Profile:     args[0],
				Source:      source,
				Target:      target,
				DryRun:      dryRun,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Unwired() {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), MsgUnwiredNotice, result.ProfilePath, result.App.UnwiredActions)
				return nil
			}
			_, _ = fmt.Fprintf(out, MsgBackupDone, len(result.Results), result.App.Name, result.Target)
			if result.DryRun {
				_, _ = fmt.Fprintln(out, MsgDryRunNotice)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", MsgFlagSource)
	cmd.Flags().StringVar(&target, "target", "", MsgFlagTarget)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newDepsCmd(opts *globalOptions) *cobra.Command {
	var appDir string

	cmd := &cobra.Command{
		Use:     "deps <profile>",
		Short:   MsgDepsShort,
		Long:    MsgDepsLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.environment(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Deps(cmd.Context(), commands.DepsOptions{
				Environment: env,
				Profile:     args[0],
				AppDir:      appDir,
			})
			if err != nil {
				return err
			}

			if len(result.Triggered) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgNoDependencies, result.App.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&appDir, "app-dir", ".", MsgFlagAppDir)

	return cmd
}

func newCheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "check <profile>",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Check(commands.CheckOptions{
				Environment: commands.Environment{Config: cfg},
				Profile:     args[0],
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgCheckName, result.Name, result.ProfilePath)
			if len(result.Dependencies) > 0 {
				_, _ = fmt.Fprintf(out, MsgCheckSection, "dependencies")
				for _, dep := range result.Dependencies {
					_, _ = fmt.Fprintf(out, MsgCheckItem, dep)
				}
			}
			_, _ = fmt.Fprintf(out, MsgCheckSection, "actions")
			for _, action := range result.Actions {
				_, _ = fmt.Fprintf(out, MsgCheckItem, action)
			}
			if result.Unwired {
				_, _ = fmt.Fprint(out, MsgCheckUnwired)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd(root *cobra.Command) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			header := &doc.GenManHeader{
				Title:   "VACUUM",
				Section: "1",
				Source:  "vacuum " + version.Version,
				Manual:  "vacuum manual",
			}
			if err := doc.GenManTree(root, header, dir); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten, dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", MsgFlagManDir)

	return cmd
}
