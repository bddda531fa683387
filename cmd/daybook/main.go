package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/cli/archive"
	"github.com/julianstephens/daybook/internal/cli/backups"
	"github.com/julianstephens/daybook/internal/cli/system"
	"github.com/julianstephens/daybook/internal/cli/tasks"
	"github.com/julianstephens/daybook/internal/config"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Config file path." default:"${config_path}"`
	DataDir  string `help:"Directory holding the entry and history files." name:"data-dir"`
	Timezone string `help:"IANA timezone used to decide today's date."`
	Debug    bool   `help:"Enable debug logging."`

	Tui          system.TuiCmd           `cmd:"" help:"Launch the interactive menu." default:"1"`
	Add          tasks.AddCmd            `cmd:"" help:"Add a task to today's entry."`
	Done         tasks.DoneCmd           `cmd:"" help:"Mark tasks done."`
	Undone       tasks.UndoneCmd         `cmd:"" help:"Mark tasks not done."`
	Change       tasks.ChangeCmd         `cmd:"" help:"Change a task's subject."`
	Delete       tasks.DeleteCmd         `cmd:"" help:"Delete a task."`
	List         tasks.ListCmd           `cmd:"" help:"Show today's entry."`
	Search       tasks.SearchCmd         `cmd:"" help:"Search today's tasks."`
	CheckAll     tasks.CheckAllCmd       `cmd:"" name:"check-all" help:"Mark every task done."`
	UncheckAll   tasks.UncheckAllCmd     `cmd:"" name:"uncheck-all" help:"Mark every task not done."`
	Reset        tasks.ResetCmd          `cmd:"" help:"Remove every task from today's entry."`
	History      archive.HistoryCmd      `cmd:"" help:"Show archived days."`
	Export       archive.ExportCmd       `cmd:"" help:"Export history and today's entry as JSON."`
	EraseHistory archive.EraseHistoryCmd `cmd:"" name:"erase-history" help:"Back up and then erase the archived history."`
	Backup       struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual history backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore the history from a backup."`
	} `cmd:"" help:"Manage history backups."`
	ShowConfig   system.ConfigCmd `cmd:"" name:"config" help:"Print the effective configuration."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A daily task tracker for the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	cfg, err := config.Load(CLI.Config, config.Overrides{
		DataDir:  CLI.DataDir,
		Timezone: CLI.Timezone,
		Debug:    CLI.Debug,
	})
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, DataDir: cfg.DataDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Starting", "command", ctx.Command(), "config", cfg.Path, "data_dir", cfg.DataDir)

	appCtx, err := cli.NewContext(cfg)
	if err != nil {
		errors.Fatal(err)
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
