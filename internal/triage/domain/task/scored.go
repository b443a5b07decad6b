package task

// PriorityLevel is the discrete label bucketed from a combined score.
type PriorityLevel int

const (
	LevelMinimal PriorityLevel = iota
	LevelLow
	LevelMedium
	LevelHigh
	LevelCritical
)

var levelNames = map[PriorityLevel]string{
	LevelMinimal:  "Minimal",
	LevelLow:      "Low",
	LevelMedium:   "Medium",
	LevelHigh:     "High",
	LevelCritical: "Critical",
}

// String returns the display label for the level.
func (l PriorityLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON encodes the level as its display label.
func (l PriorityLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// LevelForScore buckets a combined priority score into a level.
// Scores above 100 (overdue tasks) land in the Critical bucket.
func LevelForScore(score float64) PriorityLevel {
	switch {
	case score >= 85:
		return LevelCritical
	case score >= 65:
		return LevelHigh
	case score >= 40:
		return LevelMedium
	case score >= 20:
		return LevelLow
	default:
		return LevelMinimal
	}
}

// FactorScores holds the four sub-scores that feed the combined score.
// Each is nominally 0-100; urgency may exceed 100 for overdue tasks.
type FactorScores struct {
	Urgency    float64
	Importance float64
	Effort     float64
	Dependency float64
}

// ScoredTask is a task annotated with its computed priority.
type ScoredTask struct {
	Task
	Factors       FactorScores
	Score         float64
	Level         PriorityLevel
	Explanation   string
	BlockingCount int
}

// Suggestion is a ranked recommendation produced by the suggest operation.
type Suggestion struct {
	Rank   int
	Task   ScoredTask
	Reason string
}
