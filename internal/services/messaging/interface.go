package messaging

import "context"

// Service is the interface for the narration service
type Service interface {
	// GetRollMessage returns a message for a player's dice roll
	GetRollMessage(ctx context.Context, input *GetRollMessageInput) (*GetRollMessageOutput, error)

	// GetCaptureMessage returns a message for tokens sent back to base
	GetCaptureMessage(ctx context.Context, input *GetCaptureMessageInput) (*GetCaptureMessageOutput, error)

	// GetHomeMessage returns a message for a token reaching home
	GetHomeMessage(ctx context.Context, input *GetHomeMessageInput) (*GetHomeMessageOutput, error)

	// GetFinishMessage returns a message for a player bringing all tokens home
	GetFinishMessage(ctx context.Context, input *GetFinishMessageInput) (*GetFinishMessageOutput, error)

	// GetGameOverMessage returns a message announcing the final standings
	GetGameOverMessage(ctx context.Context, input *GetGameOverMessageInput) (*GetGameOverMessageOutput, error)
}
