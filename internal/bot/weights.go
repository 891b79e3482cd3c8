package bot

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights tunes the bot heuristic. Zero values are meaningful, so start
// from DefaultWeights and override what you need.
type Weights struct {
	// PreferUnlock makes the bot unlock whenever a six allows it
	PreferUnlock bool `yaml:"prefer_unlock"`

	// Thresholds
	EndgameTokenCount      int     `yaml:"endgame_token_count"`
	EndgameScoreMultiplier float64 `yaml:"endgame_score_multiplier"`
	DefaultMultiplier      float64 `yaml:"default_multiplier"`
	SafetyTokenCount       int     `yaml:"safety_token_count"`
	SafetyScoreMultiplier  float64 `yaml:"safety_score_multiplier"`
	MaxChaseLookahead      int     `yaml:"max_chase_lookahead"`
	MaxThreatLookahead     int     `yaml:"max_threat_lookahead"`
	CriticalCombatRange    int     `yaml:"critical_combat_range"`
	RiskyAttackRange       int     `yaml:"risky_attack_range"`
	HighInvestmentDist     int     `yaml:"high_investment_dist"`

	// Scores
	UnlockBonus                  float64 `yaml:"unlock_bonus"`
	CaptureBase                  float64 `yaml:"capture_base"`
	OpponentProgressMultiplier   float64 `yaml:"opponent_progress_multiplier"`
	SafePositionBonus            float64 `yaml:"safe_position_bonus"`
	HomeEntryBonus               float64 `yaml:"home_entry_bonus"`
	SafeTokenMovePenalty         float64 `yaml:"safe_token_move_penalty"`
	GoalCompletionBonus          float64 `yaml:"goal_completion_bonus"`
	BaseDistancePenalty          float64 `yaml:"base_distance_penalty"`
	CrowdedExitBonus             float64 `yaml:"crowded_exit_bonus"`
	UnsafeStackingPenalty        float64 `yaml:"unsafe_stacking_penalty"`
	SafeHuntCriticalRangeBonus   float64 `yaml:"safe_hunt_critical_range_bonus"`
	SafeChaseBaseBonus           float64 `yaml:"safe_chase_base_bonus"`
	RiskyChaseBaseBonus          float64 `yaml:"risky_chase_base_bonus"`
	RiskyHuntCriticalRangeBonus  float64 `yaml:"risky_hunt_critical_range_bonus"`
	HighInvestmentEscapePriority float64 `yaml:"high_investment_escape_priority"`
	LowInvestmentEscapePriority  float64 `yaml:"low_investment_escape_priority"`
	EscapeDistanceMultiplier     float64 `yaml:"escape_distance_multiplier"`
	CriticalEscapeBonus          float64 `yaml:"critical_escape_bonus"`
	SafeHavenBonus               float64 `yaml:"safe_haven_bonus"`
	UnsafeEscapePenalty          float64 `yaml:"unsafe_escape_penalty"`
	SafeSpotAbandonmentPenalty   float64 `yaml:"safe_spot_abandonment_penalty"`
	SafeSpotExitPenalty          float64 `yaml:"safe_spot_exit_penalty"`
	StackSplitBonus              float64 `yaml:"stack_split_bonus"`
}

// DefaultWeights returns the tuning the bot plays with out of the box
func DefaultWeights() *Weights {
	return &Weights{
		PreferUnlock: true,

		EndgameTokenCount:      2,
		EndgameScoreMultiplier: 3,
		DefaultMultiplier:      1,
		SafetyTokenCount:       2,
		SafetyScoreMultiplier:  2,
		MaxChaseLookahead:      6,
		MaxThreatLookahead:     6,
		CriticalCombatRange:    3,
		RiskyAttackRange:       4,
		HighInvestmentDist:     25,

		UnlockBonus:                  500,
		CaptureBase:                  400,
		OpponentProgressMultiplier:   5,
		SafePositionBonus:            60,
		HomeEntryBonus:               150,
		SafeTokenMovePenalty:         100,
		GoalCompletionBonus:          1000,
		BaseDistancePenalty:          1,
		CrowdedExitBonus:             40,
		UnsafeStackingPenalty:        50,
		SafeHuntCriticalRangeBonus:   30,
		SafeChaseBaseBonus:           20,
		RiskyChaseBaseBonus:          10,
		RiskyHuntCriticalRangeBonus:  10,
		HighInvestmentEscapePriority: 60,
		LowInvestmentEscapePriority:  30,
		EscapeDistanceMultiplier:     8,
		CriticalEscapeBonus:          25,
		SafeHavenBonus:               50,
		UnsafeEscapePenalty:          10,
		SafeSpotAbandonmentPenalty:   40,
		SafeSpotExitPenalty:          30,
		StackSplitBonus:              10,
	}
}

// Validate checks the thresholds can drive the heuristic
func (w *Weights) Validate() error {
	if w.MaxChaseLookahead < 0 || w.MaxThreatLookahead < 0 {
		return errors.New("lookahead windows cannot be negative")
	}
	if w.CriticalCombatRange < 0 || w.RiskyAttackRange < 0 {
		return errors.New("combat ranges cannot be negative")
	}
	if w.DefaultMultiplier <= 0 || w.EndgameScoreMultiplier <= 0 || w.SafetyScoreMultiplier <= 0 {
		return errors.New("multipliers must be positive")
	}
	return nil
}

// LoadWeights reads YAML weights on top of the defaults.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadWeights(r io.Reader) (*Weights, error) {
	w := DefaultWeights()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(w); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode bot weights: %w", err)
	}

	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bot weights: %w", err)
	}
	return w, nil
}

// LoadWeightsFile reads YAML weights from path
func LoadWeightsFile(path string) (*Weights, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bot weights: %w", err)
	}
	defer f.Close()

	return LoadWeights(f)
}
