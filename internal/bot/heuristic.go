// Package bot picks moves for computer players by scoring every token the
// bot could play with an additive heuristic and sampling among the best.
package bot

import (
	"math"
	"math/rand"
	"time"

	"github.com/KirkDiggler/ludo/internal/board"
	"github.com/KirkDiggler/ludo/internal/engine"
	"github.com/KirkDiggler/ludo/internal/models"
	"github.com/sirupsen/logrus"
)

// Rand is the random source used to break ties
//
//go:generate mockgen -package=mocks -destination=mocks/mock_rand.go github.com/KirkDiggler/ludo/internal/bot Rand
type Rand interface {
	Intn(n int) int
}

// DecisionKind says what the bot wants to do with its roll
type DecisionKind string

const (
	// DecisionMove advances Decision.Token by the roll
	DecisionMove DecisionKind = "move"

	// DecisionUnlock brings Decision.Token onto its start cell
	DecisionUnlock DecisionKind = "unlock"

	// DecisionNone means no token can be played
	DecisionNone DecisionKind = "none"
)

// Decision is the bot's chosen action
type Decision struct {
	Kind  DecisionKind
	Token *models.Token
	Score float64
}

// Config holds the heuristic's dependencies
type Config struct {
	// Weights defaults to DefaultWeights
	Weights *Weights

	// Rand defaults to a time seeded source
	Rand Rand

	// Logger defaults to the logrus standard logger
	Logger logrus.FieldLogger
}

// Heuristic scores candidate tokens for a bot player
type Heuristic struct {
	weights *Weights
	rand    Rand
	log     logrus.FieldLogger
}

// New creates a heuristic from the config, filling in defaults
func New(cfg *Config) (*Heuristic, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	weights := cfg.Weights
	if weights == nil {
		weights = DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	random := cfg.Rand
	if random == nil {
		random = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Heuristic{
		weights: weights,
		rand:    random,
		log:     logger,
	}, nil
}

// candidate is a token under evaluation together with the cell it would end on
type candidate struct {
	token  *models.Token
	unlock bool
	final  models.Coordinate
}

// position is the board state shared by every candidate of one decision
type position struct {
	colour          models.Colour
	dice            int
	botTokens       []*models.Token
	movableBot      []*models.Token
	activeOpponents []*models.Token
	allTokens       []*models.Token
	tokensHome      int
}

func newPosition(colour models.Colour, dice int, tokens []*models.Token) *position {
	p := &position{colour: colour, dice: dice, allTokens: tokens}
	for _, t := range tokens {
		if t.Colour == colour {
			p.botTokens = append(p.botTokens, t)
			if t.HasReachedHome {
				p.tokensHome++
			}
			if engine.IsMovable(t, dice) {
				p.movableBot = append(p.movableBot, t)
			}
			continue
		}
		if !t.IsLocked && !t.HasReachedHome && board.IsOnGeneralPath(t.Coordinates) {
			p.activeOpponents = append(p.activeOpponents, t)
		}
	}
	return p
}

// SelectBestToken returns the bot's choice for the roll.
// tokens is every token on the board, the bot's own included.
func (h *Heuristic) SelectBestToken(colour models.Colour, dice int, tokens []*models.Token) Decision {
	pos := newPosition(colour, dice, tokens)

	candidates := pos.botTokens
	if h.weights.PreferUnlock && dice == engine.UnlockDiceValue {
		var unlockable []*models.Token
		for _, t := range pos.botTokens {
			if t.IsInBase() {
				unlockable = append(unlockable, t)
			}
		}
		if len(unlockable) > 0 {
			candidates = unlockable
		}
	}

	best := math.Inf(-1)
	var top []*models.Token
	for _, t := range candidates {
		score := h.score(pos, t)
		switch {
		case score > best:
			best = score
			top = []*models.Token{t}
		case score == best:
			top = append(top, t)
		}
	}

	if len(top) == 0 || math.IsInf(best, -1) {
		h.log.WithFields(logrus.Fields{
			"colour": colour,
			"dice":   dice,
		}).Debug("Bot has no playable token")
		return Decision{Kind: DecisionNone, Score: best}
	}

	chosen := top[0]
	if len(top) > 1 {
		chosen = top[h.rand.Intn(len(top))]
	}

	kind := DecisionMove
	if chosen.IsInBase() {
		kind = DecisionUnlock
	}

	h.log.WithFields(logrus.Fields{
		"colour": colour,
		"dice":   dice,
		"token":  chosen.ID,
		"kind":   kind,
		"score":  best,
		"ties":   len(top),
	}).Debug("Bot selected token")

	return Decision{Kind: kind, Token: chosen, Score: best}
}

// Score evaluates a single token for the roll, -Inf when it cannot be played
func (h *Heuristic) Score(colour models.Colour, dice int, token *models.Token, tokens []*models.Token) float64 {
	return h.score(newPosition(colour, dice, tokens), token)
}

func (h *Heuristic) score(pos *position, token *models.Token) float64 {
	w := h.weights
	c := candidate{token: token}

	switch {
	case token.IsInBase() && pos.dice == engine.UnlockDiceValue:
		c.unlock = true
		c.final = board.StartCoordinate(token.Colour)
	case engine.IsMovable(token, pos.dice):
		final, ok := board.CoordinateAfter(token.Colour, token.Coordinates, pos.dice)
		if !ok {
			return math.Inf(-1)
		}
		c.final = final
	default:
		return math.Inf(-1)
	}

	var score float64
	if c.unlock {
		score += w.UnlockBonus
	}

	finalSafe := board.IsSafeSpot(c.final)
	currentSafe := board.IsSafeSpot(token.Coordinates)

	endgameMultiplier := w.DefaultMultiplier
	if pos.tokensHome >= w.EndgameTokenCount {
		endgameMultiplier = w.EndgameScoreMultiplier
	}
	safetyMultiplier := w.DefaultMultiplier
	if pos.tokensHome > w.SafetyTokenCount {
		safetyMultiplier = w.SafetyScoreMultiplier
	}

	if !finalSafe {
		for _, t := range pos.allTokens {
			if t.Colour == pos.colour || t.IsLocked || !t.Coordinates.Equal(c.final) {
				continue
			}
			traveled := len(board.TokenPath(t.Colour)) - engine.StepsAvailable(t)
			score += w.CaptureBase + float64(traveled)*w.OpponentProgressMultiplier
		}
	}

	if finalSafe {
		score += w.SafePositionBonus
	}

	inLane := board.IsInHomeEntryLane(token.Coordinates, token.Colour)
	willBeInLane := board.IsInHomeEntryLane(c.final, token.Colour)
	if willBeInLane && !inLane {
		score += w.HomeEntryBonus
	}
	if inLane {
		score -= w.SafeTokenMovePenalty
	}

	if c.unlock {
		return score
	}

	distFromHome := engine.StepsAvailable(token)
	if distFromHome == pos.dice {
		score += w.GoalCompletionBonus
	}
	score -= float64(distFromHome) * w.BaseDistancePenalty * endgameMultiplier

	opponentsHere := 0
	for _, t := range pos.activeOpponents {
		if t.Coordinates.Equal(token.Coordinates) {
			opponentsHere++
		}
	}
	crowdedExit := pos.dice == engine.UnlockDiceValue && currentSafe && opponentsHere > 0
	if crowdedExit {
		score += w.CrowdedExitBonus
	}

	stackedHere, stackedThere := 0, 0
	for _, t := range pos.movableBot {
		if t.Coordinates.Equal(token.Coordinates) {
			stackedHere++
		}
		if t.Coordinates.Equal(c.final) {
			stackedThere++
		}
	}
	if stackedThere > 0 && !finalSafe {
		score -= w.UnsafeStackingPenalty
	}

	current := *token
	future := *token
	future.Coordinates = c.final

	safeLaunchHunter := false
	for _, opp := range pos.activeOpponents {
		aheadNow := board.IsAhead(current, *opp)
		aheadLater := board.IsAhead(future, *opp)
		currentDist := board.DistanceBetweenTokens(current, *opp)
		futureDist := board.DistanceBetweenTokens(future, *opp)

		// chasing an opponent in front of us
		if currentDist >= 1 && currentDist <= w.MaxChaseLookahead && !aheadNow {
			threatened := h.threatenedFromBehind(current, pos.activeOpponents)
			if !threatened || finalSafe {
				if currentDist <= w.CriticalCombatRange {
					score += w.SafeHuntCriticalRangeBonus
				}
				score += w.SafeChaseBaseBonus
				if !threatened {
					safeLaunchHunter = true
				}
			} else if currentDist <= w.RiskyAttackRange {
				score += w.RiskyChaseBaseBonus
				if currentDist <= w.CriticalCombatRange {
					score += w.RiskyHuntCriticalRangeBonus
				}
			}
		}

		// being chased
		if currentDist >= 1 && currentDist <= w.MaxThreatLookahead && aheadNow && !currentSafe {
			traveled := len(board.TokenPath(token.Colour)) - distFromHome
			if traveled > w.HighInvestmentDist {
				score += w.HighInvestmentEscapePriority
			} else {
				score += w.LowInvestmentEscapePriority
			}
		}

		if futureDist >= 1 && futureDist <= w.MaxThreatLookahead && aheadLater {
			escaping := aheadNow && futureDist > currentDist && !currentSafe
			if escaping {
				score += float64(futureDist-currentDist) * w.EscapeDistanceMultiplier
				if currentDist <= w.CriticalCombatRange {
					score += w.CriticalEscapeBonus
				}
				if finalSafe {
					score += w.SafeHavenBonus
				} else {
					score -= w.UnsafeEscapePenalty
				}
			} else if currentSafe && !finalSafe && !willBeInLane {
				score -= w.SafeSpotAbandonmentPenalty * safetyMultiplier
			}
		}
	}

	if currentSafe && !safeLaunchHunter && !crowdedExit {
		score -= w.SafeSpotExitPenalty
	} else if stackedHere > 1 {
		score += float64(stackedHere) * w.StackSplitBonus
	}

	return score
}

// threatenedFromBehind reports whether an opponent is close behind the token
func (h *Heuristic) threatenedFromBehind(token models.Token, opponents []*models.Token) bool {
	for _, opp := range opponents {
		dist := board.DistanceBetweenTokens(token, *opp)
		if dist >= 1 && dist <= h.weights.MaxThreatLookahead && board.IsAhead(token, *opp) {
			return true
		}
	}
	return false
}
