package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting random messages
	rand        Rand
	defaultTone MessageTone
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	if config == nil {
		config = &ServiceConfig{}
	}

	random := config.Rand
	if random == nil {
		random = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	tone := config.DefaultTone
	if tone == "" {
		tone = ToneFunny
	}

	return &service{
		rand:        random,
		defaultTone: tone,
	}, nil
}

func (s *service) tone(preferred MessageTone) MessageTone {
	if preferred == "" {
		return s.defaultTone
	}
	return preferred
}

func (s *service) pick(messages []string) string {
	return messages[s.rand.Intn(len(messages))]
}

// GetRollMessage returns a message for a player's dice roll
func (s *service) GetRollMessage(ctx context.Context, input *GetRollMessageInput) (*GetRollMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.DiceValue < 1 || input.DiceValue > 6 {
		return nil, fmt.Errorf("dice value %d out of range", input.DiceValue)
	}

	tone := s.tone(input.PreferredTone)
	name := input.PlayerName
	var messages []string

	switch input.Kind {
	case RollKindForfeited:
		messages = []string{
			fmt.Sprintf("Three sixes in a row, %s? The dice call that cheating. Turn over.", name),
			fmt.Sprintf("%s got greedy. A third six burns the whole turn.", name),
			fmt.Sprintf("Too lucky by half, %s. Pass the dice.", name),
		}
	case RollKindNoMove:
		messages = []string{
			fmt.Sprintf("%s rolled a %d and nothing can move. Next!", name, input.DiceValue),
			fmt.Sprintf("A %d does nothing for %s right now.", input.DiceValue, name),
			fmt.Sprintf("%s stares at a %d. The tokens stare back.", name, input.DiceValue),
		}
	case RollKindSix:
		switch tone {
		case ToneSarcastic:
			messages = []string{
				fmt.Sprintf("Oh look, %s rolled a six. How original.", name),
				fmt.Sprintf("A six for %s. Try to act surprised.", name),
			}
		case ToneEncouraging:
			messages = []string{
				fmt.Sprintf("Six! Great roll %s, and you go again.", name),
				fmt.Sprintf("%s rolls a six. Keep it going!", name),
			}
		default:
			messages = []string{
				fmt.Sprintf("SIX! %s unleashes chaos and rolls again.", name),
				fmt.Sprintf("%s found the six. Lock up your tokens, everyone.", name),
				fmt.Sprintf("A six for %s. The yard gates creak open.", name),
			}
		}
	default:
		switch tone {
		case ToneNeutral:
			messages = []string{
				fmt.Sprintf("%s rolled a %d.", name, input.DiceValue),
			}
		case ToneSarcastic:
			messages = []string{
				fmt.Sprintf("A %d. Truly the roll of a champion, %s.", input.DiceValue, name),
				fmt.Sprintf("%s rolls a %d. Riveting.", name, input.DiceValue),
			}
		default:
			messages = []string{
				fmt.Sprintf("%s rolls a %d. Choose wisely.", name, input.DiceValue),
				fmt.Sprintf("The die says %d for %s.", input.DiceValue, name),
				fmt.Sprintf("%d for %s. Somebody is getting nervous.", input.DiceValue, name),
			}
		}
	}

	return &GetRollMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetCaptureMessage returns a message for tokens sent back to base
func (s *service) GetCaptureMessage(ctx context.Context, input *GetCaptureMessageInput) (*GetCaptureMessageOutput, error) {
	if input == nil || len(input.VictimNames) == 0 {
		return nil, errors.New("capture needs at least one victim")
	}

	tone := s.tone(input.PreferredTone)
	victims := strings.Join(uniqueNames(input.VictimNames), " and ")

	var messages []string
	if len(input.VictimNames) > 1 {
		messages = []string{
			fmt.Sprintf("Double trouble! %s sends %d of %s's tokens home in one go.", input.AttackerName, len(input.VictimNames), victims),
			fmt.Sprintf("%s clears the whole stack. Sorry, %s.", input.AttackerName, victims),
		}
	} else {
		messages = []string{
			fmt.Sprintf("%s knocks %s back to base!", input.AttackerName, victims),
			fmt.Sprintf("Back to the yard, %s. Courtesy of %s.", victims, input.AttackerName),
			fmt.Sprintf("%s shows %s the way home. The long way.", input.AttackerName, victims),
		}
	}

	return &GetCaptureMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetHomeMessage returns a message for a token reaching home
func (s *service) GetHomeMessage(ctx context.Context, input *GetHomeMessageInput) (*GetHomeMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := s.tone(input.PreferredTone)
	remaining := 4 - input.TokensHome

	var messages []string
	if remaining == 1 {
		messages = []string{
			fmt.Sprintf("%s is one token away from glory.", input.PlayerName),
			fmt.Sprintf("Three home for %s. Everybody watch that last one.", input.PlayerName),
		}
	} else {
		messages = []string{
			fmt.Sprintf("A token makes it home for %s!", input.PlayerName),
			fmt.Sprintf("%s brings one home. %d to go.", input.PlayerName, remaining),
			fmt.Sprintf("Safe and sound. %s scores a token.", input.PlayerName),
		}
	}

	return &GetHomeMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetFinishMessage returns a message for a player bringing all tokens home
func (s *service) GetFinishMessage(ctx context.Context, input *GetFinishMessageInput) (*GetFinishMessageOutput, error) {
	if input == nil || input.Position < 1 {
		return nil, errors.New("finish position must be at least 1")
	}

	var messages []string
	tone := s.tone(input.PreferredTone)
	if input.Position == 1 {
		tone = ToneCelebration
		messages = []string{
			fmt.Sprintf("🎉 %s wins! All four tokens home.", input.PlayerName),
			fmt.Sprintf("Crown %s! First to bring everyone home.", input.PlayerName),
			fmt.Sprintf("%s takes the game. Bow accordingly.", input.PlayerName),
		}
	} else {
		messages = []string{
			fmt.Sprintf("%s finishes %s.", input.PlayerName, ordinal(input.Position)),
			fmt.Sprintf("%s is done, %s place.", input.PlayerName, ordinal(input.Position)),
		}
	}

	return &GetFinishMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetGameOverMessage returns a message announcing the final standings
func (s *service) GetGameOverMessage(ctx context.Context, input *GetGameOverMessageInput) (*GetGameOverMessageOutput, error) {
	if input == nil || len(input.Standings) == 0 {
		return nil, errors.New("standings cannot be empty")
	}

	tone := s.tone(input.PreferredTone)
	winner := input.Standings[0]
	last := input.Standings[len(input.Standings)-1]

	messages := []string{
		fmt.Sprintf("Game over. %s takes it, %s brings up the rear.", winner, last),
		fmt.Sprintf("That's the board! Congrats %s. Better luck next time, %s.", winner, last),
		fmt.Sprintf("%s rules the board. %s rules nothing.", winner, last),
	}

	var b strings.Builder
	b.WriteString(s.pick(messages))
	for i, name := range input.Standings {
		fmt.Fprintf(&b, "\n%d. %s", i+1, name)
	}

	return &GetGameOverMessageOutput{
		Title:   "Final Standings",
		Message: b.String(),
		Tone:    tone,
	}, nil
}

func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 10 {
	case 1:
		if n%100 != 11 {
			suffix = "st"
		}
	case 2:
		if n%100 != 12 {
			suffix = "nd"
		}
	case 3:
		if n%100 != 13 {
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
