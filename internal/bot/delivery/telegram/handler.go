package telegram

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"smartgov-assistant/internal/dispatcher"
	"smartgov-assistant/internal/model"
	pkgLog "smartgov-assistant/pkg/log"
	pkgResponse "smartgov-assistant/pkg/response"
	pkgTelegram "smartgov-assistant/pkg/telegram"
)

type handler struct {
	l        pkgLog.Logger
	d        dispatcher.Dispatcher
	bot      *pkgTelegram.Bot
	cfg      Config
	limiters *chatLimiter
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the message in a
// background goroutine: Telegram expects an answer within a few seconds,
// but the slow classification path can take longer than that.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.verifySecret(c.GetHeader(secretTokenHeader)); err != nil {
		h.l.Warnf(ctx, "telegram handler: rejected delivery: %v", err)
		pkgResponse.Unauthorized(c)
		return
	}

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	scope, in, callbackID, ok := extract(&update)
	if !ok {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	if err := h.limiters.Allow(scope.UserID); err != nil {
		h.l.Warnf(ctx, "telegram handler: %v", err)
		pkgResponse.OK(c, map[string]string{"status": "throttled"})
		return
	}

	go func() {
		// Detach from the request context, which is cancelled on return.
		bgCtx := context.Background()
		h.process(bgCtx, scope, in, callbackID)
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// extract maps a raw update to a scope and inbound event. Callback button
// presses arrive as their intent tag in the text slot.
func extract(update *pkgTelegram.Update) (model.Scope, model.Inbound, string, bool) {
	if cq := update.CallbackQuery; cq != nil && cq.From != nil && cq.Message != nil {
		scope := model.Scope{
			UserID:   fmt.Sprintf("telegram_%d", cq.From.ID),
			Username: cq.From.Username,
			ChatID:   cq.Message.Chat.ID,
		}
		return scope, model.Inbound{Text: cq.Data}, cq.ID, true
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return model.Scope{}, model.Inbound{}, "", false
	}
	scope := model.Scope{
		UserID:   fmt.Sprintf("telegram_%d", msg.From.ID),
		Username: msg.From.Username,
		ChatID:   msg.Chat.ID,
	}

	in := model.Inbound{Text: msg.Text}
	if msg.Location != nil {
		in.Location = &model.Location{
			Latitude:  msg.Location.Latitude,
			Longitude: msg.Location.Longitude,
		}
	}
	if in.Text == "" && in.Location == nil {
		return model.Scope{}, model.Inbound{}, "", false
	}
	return scope, in, "", true
}

// process runs one update through the dispatcher and sends the reply.
func (h *handler) process(ctx context.Context, scope model.Scope, in model.Inbound, callbackID string) {
	if callbackID != "" {
		if err := h.bot.AnswerCallbackQuery(ctx, callbackID); err != nil {
			h.l.Warnf(ctx, "telegram handler: failed to answer callback: %v", err)
		}
	}

	resp := h.d.Handle(ctx, scope, in)
	if resp.Text == "" {
		return
	}

	payload := pkgTelegram.SendMessageRequest{
		ChatID:      scope.ChatID,
		Text:        resp.Text,
		ReplyMarkup: toMarkup(resp.Buttons),
	}
	if err := h.bot.Send(ctx, payload); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to send reply to chat %d: %v", scope.ChatID, err)
	}
}

func toMarkup(buttons [][]model.Button) *pkgTelegram.InlineKeyboardMarkup {
	if len(buttons) == 0 {
		return nil
	}
	rows := make([][]pkgTelegram.InlineKeyboardButton, 0, len(buttons))
	for _, row := range buttons {
		cells := make([]pkgTelegram.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			cells = append(cells, pkgTelegram.InlineKeyboardButton{Text: b.Label, CallbackData: b.Data})
		}
		rows = append(rows, cells)
	}
	return &pkgTelegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}
