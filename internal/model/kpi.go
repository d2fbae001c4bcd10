package model

// KPI is a tracked numeric goal.
type KPI struct {
	Record
	Phase   int     `json:"phase"`
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
	Unit    string  `json:"unit,omitempty"`
}

// Table returns the KPI table name.
func (*KPI) Table() string {
	return TableKPIs
}

// Progress returns the completion percentage. A non-positive target yields 0.
func (k *KPI) Progress() float64 {
	if k.Target <= 0 {
		return 0
	}
	return k.Current / k.Target * 100
}

// IsComplete reports whether the current value has reached the target.
func (k *KPI) IsComplete() bool {
	return k.Target > 0 && k.Current >= k.Target
}

// ClampedAdd returns current+delta, never below zero.
func ClampedAdd(current, delta float64) float64 {
	next := current + delta
	if next < 0 {
		return 0
	}
	return next
}

// KPIPatch holds the fields to change on a KPI. Nil fields are left untouched.
type KPIPatch struct {
	Phase   *int
	Key     *string
	Label   *string
	Current *float64
	Target  *float64
	Unit    *string
}

// Apply merges the patch into k.
func (p KPIPatch) Apply(k *KPI) {
	if p.Phase != nil {
		k.Phase = *p.Phase
	}
	if p.Key != nil {
		k.Key = *p.Key
	}
	if p.Label != nil {
		k.Label = *p.Label
	}
	if p.Current != nil {
		k.Current = *p.Current
	}
	if p.Target != nil {
		k.Target = *p.Target
	}
	if p.Unit != nil {
		k.Unit = *p.Unit
	}
}

// Fields returns the set fields keyed by column name.
func (p KPIPatch) Fields() map[string]any {
	f := make(map[string]any)
	if p.Phase != nil {
		f["phase"] = *p.Phase
	}
	if p.Key != nil {
		f["key"] = *p.Key
	}
	if p.Label != nil {
		f["label"] = *p.Label
	}
	if p.Current != nil {
		f["current"] = *p.Current
	}
	if p.Target != nil {
		f["target"] = *p.Target
	}
	if p.Unit != nil {
		f["unit"] = *p.Unit
	}
	return f
}
