package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/xela07ax/gcfin-panel/internal/closing"
	"github.com/xela07ax/gcfin-panel/internal/domain"
)

// BotClient is what the bot service needs from the closing client.
type BotClient interface {
	Trigger(ctx context.Context, cmd closing.Command) (json.RawMessage, error)
}

// BotService guards the closing-window control surface: only GC may drive the
// bot, and every command is tagged with the initiating user.
type BotService struct {
	client BotClient
	logger *zap.Logger
}

func NewBotService(client BotClient, logger *zap.Logger) *BotService {
	return &BotService{client: client, logger: logger.Named("bot-service")}
}

// BotRequest is the panel-side command body.
type BotRequest struct {
	Action      string           `json:"action"`
	Competencia string           `json:"competencia,omitempty"`
	Days        int              `json:"days,omitempty"`
	Rows        []map[string]any `json:"rows,omitempty"`
}

// Trigger forwards the command to the web app and returns its reply verbatim.
func (s *BotService) Trigger(ctx context.Context, role domain.Role, email string, req BotRequest) (json.RawMessage, error) {
	if role != domain.RoleGC {
		return nil, ErrForbidden
	}
	if !closing.ValidAction(req.Action) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, req.Action)
	}

	s.logger.Info("bot command",
		zap.String("action", req.Action),
		zap.String("competencia", req.Competencia),
		zap.String("initiator", email),
	)

	reply, err := s.client.Trigger(ctx, closing.Command{
		Action:      req.Action,
		Competencia: req.Competencia,
		Days:        req.Days,
		Rows:        req.Rows,
		Initiator:   email,
	})
	if err != nil {
		return nil, fmt.Errorf("bot_service: trigger failed: %w", err)
	}
	return reply, nil
}
