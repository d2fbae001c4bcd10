package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	// User input errors
	ErrKPINotFound:           "Use 'careeros kpi' to see KPI ids and keys.",
	ErrCompanyNotFound:       "Use 'careeros company' to see company ids.",
	ErrScheduleBlockNotFound: "Use 'careeros schedule' to see block ids.",
	ErrNonNegotiableNotFound: "Use 'careeros checklist' to see checklist item ids.",
	ErrAccountRequired:       "Pass --account or set 'account' in the config file.",
	ErrInvalidDate:           "Try formats like 'today', 'yesterday' or '2026-03-14'.",
	ErrInvalidTime:           "Use 24-hour HH:MM, like '06:30' or '18:00'.",
	ErrEndBeforeStart:        "The block's end time must come after its start time.",
	ErrInvalidTier:           "Valid tiers: T1A, T1B, T2.",
	ErrInvalidStatus:         "Valid statuses: Lead, Applied, Interview, Offer, Rejected.",
	ErrInvalidCategory:       "Valid categories: gym, market, study, network, content, meal, family.",
	ErrInvalidDay:            "Use 1-7 (Monday is 1) or a day name like 'mon'.",
	ErrUnknownTable:          "Valid tables: kpis, companies, schedule_blocks, non_negotiables.",

	// System errors
	ErrRemoteConfig:   "Check CAREEROS_REMOTE_URL and CAREEROS_REMOTE_KEY, or set CAREEROS_USE_MOCK=1.",
	ErrConflict:       "Another write touched the same record. Run the command again.",
	ErrDiskFull:       "Free up disk space and run the command again.",
	ErrStoreCorrupted: "Run 'careeros check' for details, then restore from 'careeros backup' or move the store directory aside.",
	ErrLocalOnly:      "Pass --mock to use the local store.",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	if _, ok := AsSeedError(err); ok {
		return "Run 'careeros seed' again to resume with the remaining tables."
	}

	return ""
}
