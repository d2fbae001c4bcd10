package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/output"
	"github.com/manav03panchal/careeros/internal/storage"
	"github.com/manav03panchal/careeros/internal/validate"
)

// Export command flags.
var (
	exportFlagFormat string
	exportFlagOutput string
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"dump"},
	Short:   "Export the account's data",
	Long: `Export every record of the account as one JSON snapshot, or the company
pipeline as CSV.

When --output names a directory, the file is created inside it as
careeros-ACCOUNT-DATE.json (or .csv).

Examples:
  careeros export
  careeros export -o backup.json
  careeros export -o ~/backups
  careeros export --as csv -o pipeline.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFlagFormat, "as", "json", "Export format: json, csv (companies)")
	exportCmd.Flags().StringVarP(&exportFlagOutput, "output", "o", "", "Output file or directory (stdout if omitted)")
	exportCmd.RegisterFlagCompletionFunc("as", cobra.FixedCompletions([]string{"json", "csv"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFlagFormat != "json" && exportFlagFormat != "csv" {
		return errs.NewUserErrorWithField("as", exportFlagFormat, "Unknown export format", "Use json or csv")
	}

	snap, err := ctx.Snapshot(cmd.Context())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch exportFlagFormat {
	case "csv":
		err = exportCSV(&buf, snap.Companies)
	default:
		err = exportJSON(&buf, snap)
	}
	if err != nil {
		return err
	}

	if exportFlagOutput == "" {
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	path := exportPath(exportFlagOutput, exportFlagFormat)
	if err := storage.WriteFileAtomic(path, buf.Bytes(), 0o600); err != nil {
		return errs.StoreError("export", err)
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]any{"status": "exported", "path": path})
	}
	cli := ctx.CLIFormatter()
	cli.Success("Exported to " + path)
	cli.Printf("  KPIs: %d\n", len(snap.KPIs))
	cli.Printf("  Companies: %d\n", len(snap.Companies))
	cli.Printf("  Schedule blocks: %d\n", len(snap.Schedule))
	cli.Printf("  Checklist items: %d\n", len(snap.NonNegotiables))
	cli.Printf("  Completions: %d\n", len(snap.Completions))
	return nil
}

// exportPath names the export file, inside out when it is a directory.
func exportPath(out, format string) string {
	info, err := os.Stat(out)
	if err != nil || !info.IsDir() {
		return out
	}
	name := validate.SafeFilename("careeros-" + ctx.Account() + "-" + time.Now().Format(model.DateLayout))
	return filepath.Join(out, name+"."+format)
}

func exportJSON(w io.Writer, snap *output.Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snap)
}

func exportCSV(w io.Writer, companies []*model.Company) error {
	writer := csv.NewWriter(w)

	// Write header
	if err := writer.Write([]string{
		"id", "name", "tier", "status", "notes", "created_at", "updated_at",
	}); err != nil {
		return err
	}

	// Write rows
	for _, c := range companies {
		if err := writer.Write([]string{
			c.ID,
			c.Name,
			string(c.Tier),
			string(c.Status),
			c.Notes,
			c.CreatedAt.Format(time.RFC3339),
			c.UpdatedAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
