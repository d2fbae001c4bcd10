package output

import (
	"github.com/manav03panchal/careeros/internal/checklist"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/seed"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// KPIOutput represents a KPI in JSON output.
type KPIOutput struct {
	*model.KPI
	Progress float64 `json:"progress"`
}

// NewKPIOutput creates a KPIOutput from a KPI.
func NewKPIOutput(k *model.KPI) *KPIOutput {
	return &KPIOutput{KPI: k, Progress: k.Progress()}
}

// KPIsResponse represents the KPI list output in JSON.
type KPIsResponse struct {
	KPIs []*KPIOutput `json:"kpis"`
}

// CompaniesResponse represents the company list output in JSON.
type CompaniesResponse struct {
	Companies []*model.Company `json:"companies"`
	ByStatus  map[string]int   `json:"by_status"`
}

// ScheduleResponse represents the schedule output in JSON.
type ScheduleResponse struct {
	Blocks []*model.ScheduleBlock `json:"blocks"`
}

// ChecklistResponse represents one day of the checklist in JSON.
type ChecklistResponse struct {
	*checklist.Day
	Percent float64 `json:"percent"`
}

// SeedResponse represents a bootstrap result in JSON.
type SeedResponse struct {
	Seeded  bool     `json:"seeded"`
	Tables  []string `json:"tables"`
	Adopted []string `json:"adopted,omitempty"`
}

// ReseedResponse represents a single-table reseed in JSON.
type ReseedResponse struct {
	Table    string `json:"table"`
	Inserted int    `json:"inserted"`
}

// DeletedResponse represents a removal in JSON.
type DeletedResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Category   string `json:"category,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Snapshot is every record of one account.
type Snapshot struct {
	Account        string                   `json:"account"`
	Mode           string                   `json:"mode"`
	ExportedAt     string                   `json:"exported_at"`
	KPIs           []*model.KPI             `json:"kpis"`
	Companies      []*model.Company         `json:"companies"`
	Schedule       []*model.ScheduleBlock   `json:"schedule_blocks"`
	NonNegotiables []*model.NonNegotiable   `json:"non_negotiables"`
	Completions    []*model.DailyCompletion `json:"daily_completions"`
	Seed           *model.SeedMarker        `json:"seed_marker,omitempty"`
}

// PrintMode outputs the selected backend.
func (j *JSONFormatter) PrintMode(info ModeInfo) error {
	return j.JSON(info)
}

// PrintKPIs outputs KPIs with their progress.
func (j *JSONFormatter) PrintKPIs(kpis []*model.KPI) error {
	out := make([]*KPIOutput, len(kpis))
	for i, k := range kpis {
		out[i] = NewKPIOutput(k)
	}
	return j.JSON(KPIsResponse{KPIs: out})
}

// PrintKPI outputs one KPI.
func (j *JSONFormatter) PrintKPI(k *model.KPI) error {
	return j.JSON(NewKPIOutput(k))
}

// PrintCompanies outputs companies with per-status counts.
func (j *JSONFormatter) PrintCompanies(companies []*model.Company) error {
	resp := CompaniesResponse{
		Companies: nonNil(companies),
		ByStatus:  make(map[string]int),
	}
	for _, c := range companies {
		resp.ByStatus[string(c.Status)]++
	}
	return j.JSON(resp)
}

// PrintSchedule outputs schedule blocks.
func (j *JSONFormatter) PrintSchedule(blocks []*model.ScheduleBlock) error {
	return j.JSON(ScheduleResponse{Blocks: nonNil(blocks)})
}

// PrintDay outputs one day of the checklist.
func (j *JSONFormatter) PrintDay(d *checklist.Day) error {
	return j.JSON(ChecklistResponse{Day: d, Percent: d.Percent()})
}

// PrintSeedResult outputs a bootstrap result.
func (j *JSONFormatter) PrintSeedResult(res seed.Result) error {
	return j.JSON(SeedResponse{
		Seeded:  res.Seeded,
		Tables:  nonNil(res.Tables),
		Adopted: res.Adopted,
	})
}

// PrintDeleted outputs a removal confirmation.
func (j *JSONFormatter) PrintDeleted(id string) error {
	return j.JSON(DeletedResponse{Status: "deleted", ID: id})
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(resp ErrorResponse) error {
	if resp.Status == "" {
		resp.Status = "error"
	}
	return j.JSON(resp)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
