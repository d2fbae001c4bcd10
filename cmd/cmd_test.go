package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/logging"
	"github.com/manav03panchal/careeros/internal/model"
)

// testEnv points every run at a fresh on-disk store and config file.
type testEnv struct {
	t      *testing.T
	config string
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("account: test\nlog:\n  level: error\n"), 0o600))

	t.Setenv("CAREEROS_USE_MOCK", "1")
	t.Setenv("CAREEROS_REMOTE_URL", "")
	t.Setenv("CAREEROS_REMOTE_KEY", "")
	t.Setenv("CAREEROS_ACCOUNT", "")
	t.Setenv("CAREEROS_STORAGE_PATH", filepath.Join(dir, "db"))
	t.Setenv("CAREEROS_STORAGE_IN_MEMORY", "false")
	t.Setenv("CAREEROS_SEED_ON_START", "true")

	return &testEnv{t: t, config: cfg}
}

// run executes the CLI in-process and returns what it printed.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", e.config}, args...))

	err := Execute(context.Background())
	return out.String(), err
}

// mustRun fails the test when the command fails.
func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, out)
	return out
}

// runJSON decodes the JSON output of a command into v.
func (e *testEnv) runJSON(v any, args ...string) {
	e.t.Helper()
	out := e.mustRun(append(args, "--format", "json")...)
	require.NoError(e.t, json.Unmarshal([]byte(out), v), out)
}

// resetFlags restores every flag default between runs of the shared command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type kpiJSON struct {
	ID       string  `json:"id"`
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Phase    int     `json:"phase"`
	Current  float64 `json:"current"`
	Target   float64 `json:"target"`
	Progress float64 `json:"progress"`
}

type companiesJSON struct {
	Companies []*model.Company `json:"companies"`
	ByStatus  map[string]int   `json:"by_status"`
}

// =============================================================================
// Root Tests
// =============================================================================

func TestVersion(t *testing.T) {
	e := setup(t)
	out := e.mustRun("version")
	assert.Contains(t, out, "careeros dev")
}

func TestExecuteAttachesRequestID(t *testing.T) {
	e := setup(t)

	e.mustRun("version")
	first := logging.RequestIDFromContext(rootCmd.Context())
	assert.Len(t, first, 16)

	e.mustRun("version")
	assert.NotEqual(t, first, logging.RequestIDFromContext(rootCmd.Context()))
}

func TestCompletionScript(t *testing.T) {
	e := setup(t)
	out := e.mustRun("completion", "bash")
	assert.Contains(t, out, "careeros")
}

func TestDefaultShowsChecklist(t *testing.T) {
	e := setup(t)
	out := e.mustRun()
	assert.Contains(t, out, "Checklist for")
	assert.Contains(t, out, "MORNING")
	assert.Contains(t, out, "0/8 done")
}

func TestInvalidFormat(t *testing.T) {
	e := setup(t)
	_, err := e.run("mode", "--format", "xml")
	assert.True(t, errs.IsUserError(err))
}

func TestMissingConfigFile(t *testing.T) {
	e := setup(t)
	e.config = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := e.run("mode")
	assert.True(t, errs.IsUserError(err))
}

// =============================================================================
// Mode And Seed Tests
// =============================================================================

func TestMode(t *testing.T) {
	e := setup(t)

	out := e.mustRun("mode")
	assert.Contains(t, out, "mock")
	assert.Contains(t, out, "test")

	var info struct {
		Mode    string            `json:"mode"`
		Account string            `json:"account"`
		Seed    *model.SeedMarker `json:"seed"`
	}
	e.runJSON(&info, "mode")
	assert.Equal(t, "mock", info.Mode)
	assert.Equal(t, "test", info.Account)
	require.NotNil(t, info.Seed)
	assert.True(t, info.Seed.IsComplete())
	assert.ElementsMatch(t, model.SeedTables, info.Seed.Tables)
}

func TestSeedCommand(t *testing.T) {
	e := setup(t)

	out := e.mustRun("seed")
	assert.Contains(t, out, "Account seeded")
	assert.Contains(t, out, "kpis, companies, schedule_blocks, non_negotiables")

	out = e.mustRun("seed")
	assert.Contains(t, out, "already seeded")

	var res struct {
		Seeded bool     `json:"seeded"`
		Tables []string `json:"tables"`
	}
	e.runJSON(&res, "seed")
	assert.False(t, res.Seeded)
	assert.Empty(t, res.Tables)
}

func TestSeedOnStartDisabled(t *testing.T) {
	e := setup(t)
	t.Setenv("CAREEROS_SEED_ON_START", "false")

	var day struct {
		Total int `json:"total"`
	}
	e.runJSON(&day, "checklist")
	assert.Equal(t, 0, day.Total)

	e.mustRun("seed")
	e.runJSON(&day, "checklist")
	assert.Equal(t, 8, day.Total)
}

func TestReseed(t *testing.T) {
	e := setup(t)
	e.mustRun("seed")

	out := e.mustRun("seed", "--reseed", "companies")
	assert.Contains(t, out, "Inserted 15 companies")

	var list companiesJSON
	e.runJSON(&list, "company")
	assert.Len(t, list.Companies, 30)

	_, err := e.run("seed", "--reseed", "people")
	assert.ErrorIs(t, err, errs.ErrUnknownTable)
}

func TestAccountsAreIsolated(t *testing.T) {
	e := setup(t)

	e.mustRun("kpi", "add", "mock-trades", "Mock trades", "--target", "20", "--account", "other")

	var other, mine struct {
		KPIs []kpiJSON `json:"kpis"`
	}
	e.runJSON(&other, "kpi", "--account", "other")
	e.runJSON(&mine, "kpi")
	assert.Len(t, other.KPIs, 9)
	assert.Len(t, mine.KPIs, 8)

	var info struct {
		Account string `json:"account"`
	}
	e.runJSON(&info, "mode", "-a", "other")
	assert.Equal(t, "other", info.Account)
}

// =============================================================================
// KPI Tests
// =============================================================================

func TestKPICommands(t *testing.T) {
	e := setup(t)

	var list struct {
		KPIs []kpiJSON `json:"kpis"`
	}
	e.runJSON(&list, "kpi", "--phase", "2")
	require.Len(t, list.KPIs, 3)
	for _, k := range list.KPIs {
		assert.Equal(t, 2, k.Phase)
	}

	var k kpiJSON
	e.runJSON(&k, "kpi", "add", "Mock Trades", "Mock trades", "--phase", "1", "--target", "20", "--unit", "trades")
	assert.Equal(t, "mock-trades", k.Key)
	assert.Equal(t, 20.0, k.Target)

	_, err := e.run("kpi", "add", "mock-trades", "Again")
	assert.True(t, errs.IsUserError(err))

	e.runJSON(&k, "kpi", "set", "mock-trades", "--current", "5")
	assert.Equal(t, 5.0, k.Current)
	assert.Equal(t, 25.0, k.Progress)

	e.runJSON(&k, "kpi", "adjust", "mock-trades", "3")
	assert.Equal(t, 8.0, k.Current)

	e.runJSON(&k, "kpi", "adjust", "--", "mock-trades", "-20")
	assert.Equal(t, 0.0, k.Current)

	// Labels resolve too.
	e.runJSON(&k, "kpi", "Mock trades")
	assert.Equal(t, "mock-trades", k.Key)

	_, err = e.run("kpi", "set", "mock-trades")
	assert.True(t, errs.IsUserError(err))

	_, err = e.run("kpi", "set", "mock-trades", "--target", "-1")
	assert.True(t, errs.IsUserError(err))

	_, err = e.run("kpi", "adjust", "mock-trades", "lots")
	assert.True(t, errs.IsUserError(err))

	out := e.mustRun("kpi", "delete", "mock-trades")
	assert.Contains(t, out, "Deleted KPI mock-trades")

	_, err = e.run("kpi", "mock-trades")
	assert.ErrorIs(t, err, errs.ErrKPINotFound)
}

func TestKPIListCLI(t *testing.T) {
	e := setup(t)
	out := e.mustRun("kpi")
	assert.Contains(t, out, "Phase 1")
	assert.Contains(t, out, "cmt-study")
	assert.Contains(t, out, "0/60")
}

// =============================================================================
// Company Tests
// =============================================================================

func TestCompanyCommands(t *testing.T) {
	e := setup(t)

	var co model.Company
	e.runJSON(&co, "company", "add", "Acme Capital", "--tier", "Tier 1B", "--notes", "Referral")
	assert.Equal(t, model.TierT1B, co.Tier)
	assert.Equal(t, model.StatusLead, co.Status)
	assert.Equal(t, "test", co.AccountID)

	e.runJSON(&co, "company", "status", "acme capital", "applied")
	assert.Equal(t, model.StatusApplied, co.Status)
	assert.Equal(t, "Referral", co.Notes)

	var list companiesJSON
	e.runJSON(&list, "company", "--status", "Applied")
	require.Len(t, list.Companies, 1)
	assert.Equal(t, "Acme Capital", list.Companies[0].Name)

	short := co.ID[len(co.ID)-8:]
	e.runJSON(&co, "company", "update", short, "--notes", "Phone screen Friday", "--tier", "T1A")
	assert.Equal(t, "Phone screen Friday", co.Notes)
	assert.Equal(t, model.TierT1A, co.Tier)

	_, err := e.run("company", "status", short, "Ghosted")
	assert.ErrorIs(t, err, errs.ErrInvalidStatus)

	_, err = e.run("company", "add", "Nowhere", "--tier", "T9")
	assert.ErrorIs(t, err, errs.ErrInvalidTier)

	e.mustRun("company", "delete", co.ID)
	_, err = e.run("company", co.ID)
	assert.ErrorIs(t, err, errs.ErrCompanyNotFound)
}

func TestCompanyStatusScenario(t *testing.T) {
	e := setup(t)

	var list companiesJSON
	e.runJSON(&list, "company")
	require.Len(t, list.Companies, 15)
	assert.Equal(t, 15, list.ByStatus["Lead"])

	target := list.Companies[0]
	e.mustRun("company", "status", target.ID, "Interview")

	e.runJSON(&list, "company")
	assert.Len(t, list.Companies, 15)
	assert.Equal(t, 14, list.ByStatus["Lead"])
	assert.Equal(t, 1, list.ByStatus["Interview"])
}

// =============================================================================
// Schedule Tests
// =============================================================================

func TestScheduleCommands(t *testing.T) {
	e := setup(t)

	var b model.ScheduleBlock
	e.runJSON(&b, "schedule", "add", "tue", "5pm", "to", "6pm", "network", "Coffee", "chats", "with", "note", "'alumni list'")
	assert.Equal(t, model.Tuesday, b.Day)
	assert.Equal(t, "17:00", b.Start)
	assert.Equal(t, "18:00", b.End)
	assert.Equal(t, model.CategoryNetwork, b.Category)
	assert.Equal(t, "Coffee chats", b.Title)
	assert.Equal(t, "alumni list", b.Details)

	_, err := e.run("schedule", "add", "mon", "07:00-06:00", "gym", "Backwards")
	assert.ErrorIs(t, err, errs.ErrEndBeforeStart)

	_, err = e.run("schedule", "add", "mon", "06:00-07:00", "nap", "Sleep")
	assert.Error(t, err)

	_, err = e.run("schedule", "add")
	assert.True(t, errs.IsUserError(err))

	var sched struct {
		Blocks []*model.ScheduleBlock `json:"blocks"`
	}
	e.runJSON(&sched, "schedule", "--day", "tuesday")
	require.Len(t, sched.Blocks, 6)
	for _, blk := range sched.Blocks {
		assert.Equal(t, model.Tuesday, blk.Day)
	}

	e.runJSON(&b, "schedule", "update", b.ID, "--end", "18:30", "--day", "wed")
	assert.Equal(t, "18:30", b.End)
	assert.Equal(t, model.Wednesday, b.Day)

	_, err = e.run("schedule", "update", b.ID, "--end", "16:00")
	assert.ErrorIs(t, err, errs.ErrEndBeforeStart)

	e.mustRun("schedule", "delete", b.ID)
	e.runJSON(&sched, "schedule", "--day", "wed")
	assert.Len(t, sched.Blocks, 5)
}

// =============================================================================
// Checklist Tests
// =============================================================================

func TestChecklistToggleMovesKPI(t *testing.T) {
	e := setup(t)
	const date = "2026-03-14"

	out := e.mustRun("checklist", "toggle", "CMT Study", "--date", date)
	assert.Contains(t, out, "CMT Study done for 2026-03-14")
	assert.Contains(t, out, "cmt-study: 1/60")

	var k kpiJSON
	e.runJSON(&k, "kpi", "cmt-study")
	assert.Equal(t, 1.0, k.Current)

	var day struct {
		Date    string  `json:"date"`
		Done    int     `json:"done"`
		Total   int     `json:"total"`
		Percent float64 `json:"percent"`
	}
	e.runJSON(&day, "checklist", "--date", date)
	assert.Equal(t, date, day.Date)
	assert.Equal(t, 1, day.Done)
	assert.Equal(t, 12.5, day.Percent)

	// Event kinds resolve to the item carrying them.
	var res struct {
		Item       model.NonNegotiable   `json:"item"`
		Completion model.DailyCompletion `json:"completion"`
	}
	e.runJSON(&res, "checklist", "toggle", "study", "--date", date)
	assert.Equal(t, "CMT Study", res.Item.Text)
	assert.False(t, res.Completion.Completed)

	e.runJSON(&k, "kpi", "cmt-study")
	assert.Equal(t, 0.0, k.Current)
}

func TestChecklistDates(t *testing.T) {
	e := setup(t)

	var day struct {
		Date string `json:"date"`
	}
	e.runJSON(&day, "checklist", "--date", "yesterday")
	assert.Equal(t, time.Now().AddDate(0, 0, -1).Format(model.DateLayout), day.Date)

	_, err := e.run("checklist", "--date", "banana")
	assert.ErrorIs(t, err, errs.ErrInvalidDate)

	_, err = e.run("checklist", "toggle", "Juggling")
	assert.ErrorIs(t, err, errs.ErrNonNegotiableNotFound)
}

func TestChecklistItems(t *testing.T) {
	e := setup(t)

	var item model.NonNegotiable
	e.runJSON(&item, "checklist", "item", "add", "Read 10-K", "--time", "evening", "--minutes", "1h", "--event", "study")
	assert.Equal(t, model.Evening, item.TimeOfDay)
	assert.Equal(t, 60, item.Minutes)
	assert.Equal(t, 5, item.Order)
	assert.Equal(t, model.EventStudy, item.Event)

	_, err := e.run("checklist", "item", "add", "Nap", "--time", "afternoon")
	assert.True(t, errs.IsUserError(err))

	_, err = e.run("checklist", "item", "add", "Nap", "--minutes", "forever")
	assert.True(t, errs.IsUserError(err))

	_, err = e.run("checklist", "item", "add", "Nap", "--event", "sleep")
	assert.True(t, errs.IsUserError(err))

	e.mustRun("checklist", "toggle", "read 10-k")
	var k kpiJSON
	e.runJSON(&k, "kpi", "cmt-study")
	assert.Equal(t, 1.0, k.Current)

	var items []*model.NonNegotiable
	e.runJSON(&items, "checklist", "item")
	assert.Len(t, items, 9)

	out := e.mustRun("checklist", "item", "delete", "Read 10-K")
	assert.Contains(t, out, "Deleted Read 10-K")

	e.runJSON(&items, "checklist", "item")
	assert.Len(t, items, 8)
}

// =============================================================================
// Export Tests
// =============================================================================

func TestExportJSON(t *testing.T) {
	e := setup(t)
	e.mustRun("checklist", "toggle", "gym")

	var snap struct {
		Account        string                   `json:"account"`
		Mode           string                   `json:"mode"`
		KPIs           []*model.KPI             `json:"kpis"`
		Companies      []*model.Company         `json:"companies"`
		Schedule       []*model.ScheduleBlock   `json:"schedule_blocks"`
		NonNegotiables []*model.NonNegotiable   `json:"non_negotiables"`
		Completions    []*model.DailyCompletion `json:"daily_completions"`
	}
	out := e.mustRun("export")
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, "test", snap.Account)
	assert.Equal(t, "mock", snap.Mode)
	assert.Len(t, snap.KPIs, 8)
	assert.Len(t, snap.Companies, 15)
	assert.Len(t, snap.Schedule, 29)
	assert.Len(t, snap.NonNegotiables, 8)
	assert.Len(t, snap.Completions, 1)
}

func TestExportToDirectory(t *testing.T) {
	e := setup(t)
	dir := t.TempDir()

	out := e.mustRun("export", "-o", dir)
	assert.Contains(t, out, "Exported to")
	assert.Contains(t, out, "Companies: 15")

	want := filepath.Join(dir, "careeros-test-"+time.Now().Format(model.DateLayout)+".json")
	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestExportCSV(t *testing.T) {
	e := setup(t)

	out := e.mustRun("export", "--as", "csv")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 16)
	assert.Equal(t, "id,name,tier,status,notes,created_at,updated_at", lines[0])

	_, err := e.run("export", "--as", "xml")
	assert.True(t, errs.IsUserError(err))
}

// =============================================================================
// Check And Backup Tests
// =============================================================================

func TestCheck(t *testing.T) {
	e := setup(t)

	out := e.mustRun("check")
	assert.Contains(t, out, "Local store healthy (0 records)")

	e.mustRun("seed")
	var h struct {
		Healthy bool           `json:"healthy"`
		Records map[string]int `json:"records"`
	}
	e.runJSON(&h, "check")
	assert.True(t, h.Healthy)
	assert.Equal(t, 15, h.Records[model.TableCompanies])
	assert.Equal(t, 1, h.Records[model.TableSeedMarkers])
}

func TestBackupRestore(t *testing.T) {
	e := setup(t)
	e.mustRun("company", "add", "Acme Capital")

	file := filepath.Join(t.TempDir(), "careeros.bak")
	out := e.mustRun("backup", "-o", file)
	assert.Contains(t, out, "Backed up to "+file)

	// A fresh store gets the backup, seed marker included.
	fresh := setup(t)
	fresh.mustRun("backup", "restore", file)

	var list companiesJSON
	fresh.runJSON(&list, "company")
	assert.Len(t, list.Companies, 16)

	_, err := fresh.run("backup", "restore", file)
	assert.True(t, errs.IsUserError(err))

	fresh.mustRun("backup", "restore", file, "--force")
	fresh.runJSON(&list, "company")
	assert.Len(t, list.Companies, 16)
}

func TestBackupDefaultPath(t *testing.T) {
	e := setup(t)
	e.mustRun("seed")
	e.mustRun("backup")

	dir := filepath.Join(filepath.Dir(os.Getenv("CAREEROS_STORAGE_PATH")), "backups")
	files, err := filepath.Glob(filepath.Join(dir, "careeros-*.bak"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

// =============================================================================
// Resolve Tests
// =============================================================================

func TestResolveRecord(t *testing.T) {
	items := []*model.Company{
		{Record: model.Record{ID: "0190-aaaa-1111"}, Name: "Jane Street"},
		{Record: model.Record{ID: "0190-bbbb-2111"}, Name: "Citadel"},
	}
	id := func(c *model.Company) string { return c.ID }
	name := func(c *model.Company) string { return c.Name }

	got, err := resolveRecord(items, "0190-bbbb-2111", id, name, errs.ErrCompanyNotFound)
	require.NoError(t, err)
	assert.Equal(t, "Citadel", got.Name)

	got, err = resolveRecord(items, "a-1111", id, name, errs.ErrCompanyNotFound)
	require.NoError(t, err)
	assert.Equal(t, "Jane Street", got.Name)

	got, err = resolveRecord(items, "jane street", id, name, errs.ErrCompanyNotFound)
	require.NoError(t, err)
	assert.Equal(t, "Jane Street", got.Name)

	_, err = resolveRecord(items, "111", id, name, errs.ErrCompanyNotFound)
	assert.True(t, errs.IsUserError(err))

	_, err = resolveRecord(items, "Two Sigma", id, name, errs.ErrCompanyNotFound)
	assert.ErrorIs(t, err, errs.ErrCompanyNotFound)

	_, err = resolveRecord(items, " ", id, name, errs.ErrCompanyNotFound)
	assert.ErrorIs(t, err, errs.ErrCompanyNotFound)
}
