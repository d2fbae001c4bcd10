package remote

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/manav03panchal/careeros/internal/model"
)

// Column values come back as whatever the driver produces: sqlite yields
// int64, float64 and string, pgx may also yield int32 or time.Time. The
// helpers below normalize them.

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func asString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

func asInt(v any) (int, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return int(x), nil
	case int32:
		return int(x), nil
	case int:
		return x, nil
	case float64:
		return int(x), nil
	case bool:
		return boolToInt(x), nil
	case string:
		return strconv.Atoi(x)
	}
	return 0, fmt.Errorf("cannot read %T as integer", v)
}

func asFloat(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case string:
		return strconv.ParseFloat(x, 64)
	}
	return 0, fmt.Errorf("cannot read %T as number", v)
}

func asTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x.UTC(), nil
	case string:
		t, err := time.Parse(time.RFC3339Nano, x)
		if err != nil {
			return time.Time{}, err
		}
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("cannot read %T as time", v)
}

func asNullableTime(v any) (*time.Time, error) {
	if v == nil || asString(v) == "" {
		return nil, nil
	}
	t, err := asTime(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// rowReader accumulates the first conversion error so decoders stay linear.
type rowReader struct {
	row Row
	err error
}

func (r *rowReader) text(col string) string {
	return asString(r.row[col])
}

func (r *rowReader) integer(col string) int {
	n, err := asInt(r.row[col])
	r.fail(col, err)
	return n
}

func (r *rowReader) number(col string) float64 {
	f, err := asFloat(r.row[col])
	r.fail(col, err)
	return f
}

func (r *rowReader) timestamp(col string) time.Time {
	t, err := asTime(r.row[col])
	r.fail(col, err)
	return t
}

func (r *rowReader) nullableTimestamp(col string) *time.Time {
	t, err := asNullableTime(r.row[col])
	r.fail(col, err)
	return t
}

func (r *rowReader) fail(col string, err error) {
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("column %s: %w", col, err)
	}
}

func (r *rowReader) record() model.Record {
	return model.Record{
		ID:        r.text("id"),
		AccountID: r.text("account_id"),
		CreatedAt: r.timestamp("created_at"),
		UpdatedAt: r.timestamp("updated_at"),
	}
}

func recordRow(rec *model.Record) Row {
	return Row{
		"id":         rec.ID,
		"account_id": rec.AccountID,
		"created_at": formatTime(rec.CreatedAt),
		"updated_at": formatTime(rec.UpdatedAt),
	}
}

func merge(base Row, extra Row) Row {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// ============================================================================
// Entity codecs
// ============================================================================

func encodeKPI(k *model.KPI) Row {
	return merge(recordRow(&k.Record), Row{
		"phase":   k.Phase,
		"key":     k.Key,
		"label":   k.Label,
		"current": k.Current,
		"target":  k.Target,
		"unit":    k.Unit,
	})
}

func decodeKPI(row Row) (*model.KPI, error) {
	r := &rowReader{row: row}
	k := &model.KPI{
		Record:  r.record(),
		Phase:   r.integer("phase"),
		Key:     r.text("key"),
		Label:   r.text("label"),
		Current: r.number("current"),
		Target:  r.number("target"),
		Unit:    r.text("unit"),
	}
	return k, r.err
}

func encodeCompany(c *model.Company) Row {
	return merge(recordRow(&c.Record), Row{
		"name":   c.Name,
		"tier":   string(c.Tier),
		"status": string(c.Status),
		"notes":  c.Notes,
	})
}

func decodeCompany(row Row) (*model.Company, error) {
	r := &rowReader{row: row}
	c := &model.Company{
		Record: r.record(),
		Name:   r.text("name"),
		Tier:   model.Tier(r.text("tier")),
		Status: model.Status(r.text("status")),
		Notes:  r.text("notes"),
	}
	return c, r.err
}

func encodeScheduleBlock(b *model.ScheduleBlock) Row {
	return merge(recordRow(&b.Record), Row{
		"day":        b.Day,
		"start_time": b.Start,
		"end_time":   b.End,
		"category":   string(b.Category),
		"title":      b.Title,
		"details":    b.Details,
	})
}

func decodeScheduleBlock(row Row) (*model.ScheduleBlock, error) {
	r := &rowReader{row: row}
	b := &model.ScheduleBlock{
		Record:   r.record(),
		Day:      r.integer("day"),
		Start:    r.text("start_time"),
		End:      r.text("end_time"),
		Category: model.Category(r.text("category")),
		Title:    r.text("title"),
		Details:  r.text("details"),
	}
	return b, r.err
}

func encodeNonNegotiable(n *model.NonNegotiable) Row {
	return merge(recordRow(&n.Record), Row{
		"time_of_day": string(n.TimeOfDay),
		"text":        n.Text,
		"minutes":     n.Minutes,
		"order_index": n.Order,
		"event":       string(n.Event),
	})
}

func decodeNonNegotiable(row Row) (*model.NonNegotiable, error) {
	r := &rowReader{row: row}
	n := &model.NonNegotiable{
		Record:    r.record(),
		TimeOfDay: model.TimeOfDay(r.text("time_of_day")),
		Text:      r.text("text"),
		Minutes:   r.integer("minutes"),
		Order:     r.integer("order_index"),
		Event:     model.EventKind(r.text("event")),
	}
	return n, r.err
}

func encodeCompletion(c *model.DailyCompletion) Row {
	return merge(recordRow(&c.Record), Row{
		"item_id":      c.ItemID,
		"date":         c.Date,
		"completed":    boolToInt(c.Completed),
		"completed_at": nullableTime(c.CompletedAt),
	})
}

func decodeCompletion(row Row) (*model.DailyCompletion, error) {
	r := &rowReader{row: row}
	c := &model.DailyCompletion{
		Record:      r.record(),
		ItemID:      r.text("item_id"),
		Date:        r.text("date"),
		Completed:   r.integer("completed") != 0,
		CompletedAt: r.nullableTimestamp("completed_at"),
	}
	return c, r.err
}

func encodeMarker(m *model.SeedMarker) Row {
	return Row{
		"account_id":   m.AccountID,
		"tables":       strings.Join(m.Tables, ","),
		"created_at":   formatTime(m.CreatedAt),
		"completed_at": nullableTime(m.CompletedAt),
	}
}

func decodeMarker(row Row) (*model.SeedMarker, error) {
	r := &rowReader{row: row}
	m := &model.SeedMarker{
		AccountID:   r.text("account_id"),
		Tables:      []string{},
		CreatedAt:   r.timestamp("created_at"),
		CompletedAt: r.nullableTimestamp("completed_at"),
	}
	for _, t := range strings.Split(r.text("tables"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			m.Tables = append(m.Tables, t)
		}
	}
	return m, r.err
}
