package messaging

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneSarcastic is a sarcastic tone
	ToneSarcastic MessageTone = "sarcastic"

	// ToneEncouraging is an encouraging tone
	ToneEncouraging MessageTone = "encouraging"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// RollKind says what happened to a roll
type RollKind string

const (
	// RollKindNormal is a roll the player gets to use
	RollKindNormal RollKind = "normal"

	// RollKindSix is a six, which unlocks and rolls again
	RollKindSix RollKind = "six"

	// RollKindForfeited is a third six in a row
	RollKindForfeited RollKind = "forfeited"

	// RollKindNoMove is a roll nothing could use
	RollKindNoMove RollKind = "no_move"
)

// Rand picks among candidate messages
type Rand interface {
	Intn(n int) int
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Rand defaults to a time seeded source
	Rand Rand

	// DefaultTone is used when an input does not ask for one
	DefaultTone MessageTone
}

// GetRollMessageInput contains parameters for a roll message
type GetRollMessageInput struct {
	// PlayerName is the name of the player who rolled
	PlayerName string

	// DiceValue is the rolled value
	DiceValue int

	// Kind says what happened to the roll
	Kind RollKind

	// PreferredTone is the tone to use, service default when empty
	PreferredTone MessageTone
}

// GetRollMessageOutput contains the roll message
type GetRollMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetCaptureMessageInput contains parameters for a capture message
type GetCaptureMessageInput struct {
	// AttackerName is the player who captured
	AttackerName string

	// VictimNames are the owners of the captured tokens, one entry per token
	VictimNames []string

	PreferredTone MessageTone
}

// GetCaptureMessageOutput contains the capture message
type GetCaptureMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetHomeMessageInput contains parameters for a home arrival message
type GetHomeMessageInput struct {
	PlayerName string

	// TokensHome counts the player's tokens home, this one included
	TokensHome int

	PreferredTone MessageTone
}

// GetHomeMessageOutput contains the home arrival message
type GetHomeMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetFinishMessageInput contains parameters for a finish message
type GetFinishMessageInput struct {
	PlayerName string

	// Position is the 1-based finishing place
	Position int

	PreferredTone MessageTone
}

// GetFinishMessageOutput contains the finish message
type GetFinishMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetGameOverMessageInput contains parameters for the game over message
type GetGameOverMessageInput struct {
	// Standings are player names in finishing order
	Standings []string

	PreferredTone MessageTone
}

// GetGameOverMessageOutput contains the game over message
type GetGameOverMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}
