package vacuum

import (
	"embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Back up application files with declarative profiles"
	MsgBackupShort     = "Apply a profile from a source tree into a target tree"
	MsgDepsShort       = "Show the dependency blocks a profile triggers"
	MsgDepsLong        = "Evaluate every dependency check of a profile against an application directory and show the blocks of the rules that fire. Nothing is copied or run."
	MsgCheckShort      = "Parse and validate a profile"
	MsgCheckLong       = "Load a profile with the configured grammar, validate it and print a summary."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	MsgBackupExample = `  # Copy the files the "zsh" profile names from / into ./backup
  vacuum backup zsh --source / --target ./backup

  # Preview without copying or running anything
  vacuum backup ./profiles/python.toml --source ~/code/app --target /tmp/out --dry-run`

	// Status messages
	MsgBackupDone     = "\nApplied %d action(s) of %s into %s\n"
	MsgDryRunNotice   = "\nDRY RUN MODE - No changes were made"
	MsgUnwiredNotice  = "Profile %s has %d unwired action(s). Set grammar.wire_actions to apply action blocks.\n"
	MsgNoDependencies = "No dependency rule fired for %s.\n"
	MsgCheckName      = "%s (%s)\n"
	MsgCheckSection   = "%s:\n"
	MsgCheckItem      = "  %s\n"
	MsgCheckUnwired   = "  action block validated but not wired\n"
	MsgManWritten     = "Man pages written to %s\n"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Config file (default is $XDG_CONFIG_HOME/vacuum/config.toml)"
	MsgFlagFormat  = "Output format: auto, term, text or json"
	MsgFlagSource  = "Directory the profile's files are read from"
	MsgFlagTarget  = "Directory the copies are written to"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagAppDir  = "Application directory to evaluate checks in"
	MsgFlagManDir  = "Directory to write man pages to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/backup-long.txt
	msgBackupLongRaw string
	MsgBackupLong    = strings.TrimSpace(msgBackupLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)

// topicsFS holds the documents served by "vacuum help <topic>"
//
//go:embed topics
var topicsFS embed.FS
