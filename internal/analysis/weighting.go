package analysis

import "fmt"

// Weights is the theological weighting table: theme name to point value,
// theme category to multiplier, concern severity to penalty magnitude.
// Built once at startup and read-only afterwards, so every analysis can
// share one instance without locking.
type Weights struct {
	themePoints map[string]float64
	multipliers map[ThemeCategory]float64
	penalties   map[Severity]float64
}

// Default theme point values. Magnitudes are policy and overridable via
// config; the relative ordering (core gospel > character > neutral) is the
// invariant Validate enforces on overrides.
var defaultThemePoints = map[string]float64{
	"Christ-centered":     10,
	"Gospel presentation": 10,
	"Redemption":          9,
	"Sacrificial love":    9,
	"Light vs darkness":   7,

	"Endurance":          5,
	"Obedience":          5,
	"Justice":            5,
	"Mercy":              5,
	"Truth":              5,
	"Identity in Christ": 6,
	"Victory in Christ":  6,
	"Gratitude":          4,
	"Discipleship":       5,
	"Evangelistic zeal":  4,

	"Worship":     3,
	"Hope":        3,
	"Faith":       3,
	"Prayer":      3,
	"Peace":       3,
	"Joy":         3,
	"Love of God": 3,
	"Humility":    3,
	"Forgiveness": 3,
	"Creation":    2,
}

var defaultMultipliers = map[ThemeCategory]float64{
	CategoryCoreGospel:         1.5,
	CategoryCharacterSpiritual: 1.2,
	CategoryNeutral:            1.0,
}

// Penalty magnitudes by severity, subtracted after confidence scaling.
var defaultPenalties = map[Severity]float64{
	SeverityCritical: 30,
	SeverityHigh:     25,
	SeverityMedium:   15,
	SeverityLow:      10,
}

// DefaultWeights returns the built-in weighting table.
func DefaultWeights() *Weights {
	return &Weights{
		themePoints: defaultThemePoints,
		multipliers: defaultMultipliers,
		penalties:   defaultPenalties,
	}
}

// NewWeights builds a table from the defaults with the given overrides
// merged on top. Nil maps leave the defaults untouched.
func NewWeights(points map[string]float64, multipliers map[ThemeCategory]float64, penalties map[Severity]float64) (*Weights, error) {
	w := &Weights{
		themePoints: make(map[string]float64, len(defaultThemePoints)),
		multipliers: make(map[ThemeCategory]float64, len(defaultMultipliers)),
		penalties:   make(map[Severity]float64, len(defaultPenalties)),
	}
	for k, v := range defaultThemePoints {
		w.themePoints[k] = v
	}
	for k, v := range points {
		w.themePoints[k] = v
	}
	for k, v := range defaultMultipliers {
		w.multipliers[k] = v
	}
	for k, v := range multipliers {
		w.multipliers[k] = v
	}
	for k, v := range defaultPenalties {
		w.penalties[k] = v
	}
	for k, v := range penalties {
		w.penalties[k] = v
	}
	if err := w.validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// validate enforces the ordering invariants: severity tiers strictly
// ordered, category multipliers non-inverted.
func (w *Weights) validate() error {
	if !(w.penalties[SeverityCritical] > w.penalties[SeverityHigh] &&
		w.penalties[SeverityHigh] > w.penalties[SeverityMedium] &&
		w.penalties[SeverityMedium] > w.penalties[SeverityLow]) {
		return fmt.Errorf("concern penalties must be strictly ordered critical > high > medium > low")
	}
	if !(w.multipliers[CategoryCoreGospel] >= w.multipliers[CategoryCharacterSpiritual] &&
		w.multipliers[CategoryCharacterSpiritual] >= w.multipliers[CategoryNeutral]) {
		return fmt.Errorf("theme multipliers must not invert category ordering")
	}
	for sev, p := range w.penalties {
		if p < 0 {
			return fmt.Errorf("penalty for %s must be a non-negative magnitude", sev)
		}
	}
	return nil
}

// Theme returns (point value, multiplier) for a theme name. An unknown
// name contributes nothing: (0, 1.0), never an error.
func (w *Weights) Theme(name string) (points, multiplier float64) {
	points, ok := w.themePoints[name]
	if !ok {
		return 0, 1.0
	}
	cat, _ := ThemeCategoryFor(name)
	multiplier, ok = w.multipliers[cat]
	if !ok {
		multiplier = 1.0
	}
	return points, multiplier
}

// Penalty returns the penalty magnitude for a severity. Unknown severity
// strings contribute zero.
func (w *Weights) Penalty(sev Severity) float64 {
	return w.penalties[sev]
}
