// Package discord exposes the session commands as Discord slash commands.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/tabletop-ledger/internal/dice"
	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/access"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/ledger"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/narration"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/summary"

	combatsvc "github.com/KirkDiggler/tabletop-ledger/internal/services/combat"
)

// DefaultCommandTimeout bounds the work done for one interaction
const DefaultCommandTimeout = 10 * time.Second

// Handler handles all Discord interactions
type Handler struct {
	combat    combatsvc.Service
	ledger    ledger.Service
	narration narration.Service
	summary   summary.Service
	access    access.Checker
	roller    dice.Roller
	ruleset   string
	timeout   time.Duration
	logger    *slog.Logger
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	Combat    combatsvc.Service
	Ledger    ledger.Service
	Narration narration.Service
	Summary   summary.Service
	Access    access.Checker // nil allows everyone
	Roller    dice.Roller
	Timeout   time.Duration
	Logger    *slog.Logger

	// DefaultRuleset is used by /combat start when no ruleset is given
	DefaultRuleset string
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg.Combat == nil {
		panic("combat service is required")
	}
	if cfg.Ledger == nil {
		panic("ledger service is required")
	}
	if cfg.Narration == nil {
		panic("narration service is required")
	}
	if cfg.Summary == nil {
		panic("summary service is required")
	}

	h := &Handler{
		combat:    cfg.Combat,
		ledger:    cfg.Ledger,
		narration: cfg.Narration,
		summary:   cfg.Summary,
		access:    cfg.Access,
		roller:    cfg.Roller,
		ruleset:   cfg.DefaultRuleset,
		timeout:   cfg.Timeout,
		logger:    cfg.Logger,
	}
	if h.access == nil {
		h.access = access.NewStaticChecker(nil)
	}
	if h.roller == nil {
		h.roller = dice.NewRandomRoller()
	}
	if h.timeout <= 0 {
		h.timeout = DefaultCommandTimeout
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}

	return h
}

// RegisterCommands registers the slash commands with Discord
func (h *Handler) RegisterCommands(s *discordgo.Session, guildID string) error {
	for _, cmd := range Commands() {
		_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd)
		if err != nil {
			return fmt.Errorf("failed to create command %s: %w", cmd.Name, err)
		}
		h.logger.Info("registered command", "command", cmd.Name, "guild_id", guildID)
	}
	return nil
}

// HandleInteraction handles Discord interactions
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	req := parseRequest(i)
	data, err := h.execute(ctx, req)
	if err != nil {
		h.logCommandError(ctx, req, err)
		respondWithError(s, i, userMessage(err))
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to respond to interaction",
			"command", req.Command,
			"error", err,
		)
	}
}

// execute runs one command and builds the reply
func (h *Handler) execute(ctx context.Context, req *request) (*discordgo.InteractionResponseData, error) {
	if req.WorldID == "" {
		return nil, apperr.Validation("commands only work inside a server")
	}

	if req.User != nil {
		ctx = access.WithUser(ctx, req.User)
	}
	user, err := h.access.ResolveCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.access.CheckWorldAccess(ctx, user, req.WorldID); err != nil {
		return nil, err
	}
	req.User = user

	var data *discordgo.InteractionResponseData
	switch req.Command {
	case CommandCombat:
		data, err = h.handleCombat(ctx, req)
	case CommandRoll:
		data, err = h.handleRoll(ctx, req)
	case CommandHP:
		data, err = h.handleHP(ctx, req)
	case CommandCondition:
		data, err = h.handleCondition(ctx, req)
	case CommandNote:
		data, err = h.handleNote(ctx, req)
	case CommandNarrate:
		data, err = h.handleNarrate(ctx, req)
	case CommandSummary:
		data, err = h.handleSummary(ctx, req)
	default:
		return nil, apperr.InvalidArgumentf("unknown command %s", req.Command)
	}
	if err != nil {
		return nil, err
	}

	if req.private() {
		data.Flags |= discordgo.MessageFlagsEphemeral
	}
	return data, nil
}

func (h *Handler) logCommandError(ctx context.Context, req *request, err error) {
	attrs := []any{
		"command", req.Command,
		"subcommand", req.Sub,
		"world_id", req.WorldID,
		"campaign_id", req.CampaignID,
		"code", apperr.GetCode(err),
		"error", err,
	}
	switch {
	case apperr.IsNotFound(err), apperr.IsValidation(err), apperr.IsInvalidArgument(err), apperr.IsPermissionDenied(err):
		h.logger.InfoContext(ctx, "command rejected", attrs...)
	default:
		h.logger.ErrorContext(ctx, "command failed", attrs...)
	}
}

// userMessage turns an error into text safe to show in a channel
func userMessage(err error) string {
	switch {
	case apperr.IsNotFound(err), apperr.IsValidation(err), apperr.IsInvalidArgument(err):
		var e *apperr.Error
		if errors.As(err, &e) {
			return e.Message
		}
		return err.Error()
	case apperr.IsPermissionDenied(err):
		return "You are not allowed to do that here."
	case apperr.IsConflict(err):
		return "Someone else changed the combat at the same time, try again."
	default:
		return "Something went wrong, please try again."
	}
}

func reply(content string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{Content: content}
}

func replyEmbed(embed *discordgo.MessageEmbed) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
}
