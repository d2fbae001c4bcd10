package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/storage"
)

// Backup command flags.
var (
	backupFlagOutput string
	restoreFlagForce bool
)

// checkCmd scans the local store for damaged records.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the local store for damaged records",
	Long: `Read every record of the local store and report values that no longer
decode. Damaged records are skipped by every other command, so this is where
they show up.

Examples:
  careeros check
  careeros check --format json`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationSkipSeed: "true"},
	RunE:        runCheck,
}

// backupCmd writes a binary backup of the local store.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up the local store",
	Long: `Write a full backup of the local store, every account included.

Without --output the backup goes to a backups directory next to the store.

Examples:
  careeros backup
  careeros backup -o careeros.bak
  careeros backup restore careeros.bak`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationSkipSeed: "true"},
	RunE:        runBackup,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore FILE",
	Short: "Load a backup into the local store",
	Long: `Load a backup written by 'careeros backup'. The store must be empty unless
--force is passed, in which case records in the backup overwrite those with
the same key.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationSkipSeed: "true"},
	RunE:        runRestore,
}

func init() {
	backupCmd.Flags().StringVarP(&backupFlagOutput, "output", "o", "", "Backup file (default: backups directory next to the store)")
	backupRestoreCmd.Flags().BoolVar(&restoreFlagForce, "force", false, "Restore into a store that already has records")

	backupCmd.AddCommand(backupRestoreCmd)
	rootCmd.AddCommand(checkCmd, backupCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	db, err := ctx.LocalStore()
	if err != nil {
		return err
	}
	h, err := storage.CheckIntegrity(db)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(h)
	}

	cli := ctx.CLIFormatter()
	total := 0
	for _, n := range h.Records {
		total += n
	}
	if h.Healthy {
		cli.Success(fmt.Sprintf("Local store healthy (%d records)", total))
	} else {
		cli.Warning(fmt.Sprintf("%d damaged records (%d readable)", len(h.Corrupt), total))
		for _, key := range h.Corrupt {
			cli.Printf("  %s\n", key)
		}
	}
	if len(h.Unknown) > 0 {
		cli.Muted(fmt.Sprintf("%d keys outside known tables: %s", len(h.Unknown), strings.Join(h.Unknown, ", ")))
	}
	return nil
}

func runBackup(cmd *cobra.Command, args []string) error {
	db, err := ctx.LocalStore()
	if err != nil {
		return err
	}

	path := backupFlagOutput
	if path == "" {
		if db.Path() == "" {
			return errs.NewUserError("An in-memory store has no backups directory",
				"Pass --output to choose a file")
		}
		dir := filepath.Join(filepath.Dir(db.Path()), "backups")
		if err := storage.EnsureDirectory(dir); err != nil {
			return err
		}
		path = filepath.Join(dir, "careeros-"+time.Now().Format("20060102-150405")+".bak")
	}

	var buf bytes.Buffer
	if _, err := storage.Backup(db, &buf); err != nil {
		return err
	}
	if err := storage.WriteFileAtomic(path, buf.Bytes(), 0o600); err != nil {
		return errs.StoreError("backup", err)
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]any{"status": "backed_up", "path": path, "bytes": buf.Len()})
	}
	ctx.CLIFormatter().Success("Backed up to " + path)
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	db, err := ctx.LocalStore()
	if err != nil {
		return err
	}

	if !restoreFlagForce {
		keys, err := db.ListByPrefix("")
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			return errs.NewUserError(
				fmt.Sprintf("The local store already has %d records", len(keys)),
				"Pass --force to merge the backup into it")
		}
	}

	f, err := os.Open(args[0])
	if err != nil {
		return errs.NewUserErrorWithField("file", args[0], "Cannot open backup", err.Error())
	}
	defer f.Close()

	if err := storage.Restore(db, f); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]any{"status": "restored", "path": args[0]})
	}
	ctx.CLIFormatter().Success("Restored " + args[0])
	return nil
}
