// Package controllers contains the HTTP handlers. They translate between
// the transport layer and the engine; no graph traversal happens here.
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/syllabot/syllabot/internal/app/engine"
	"github.com/syllabot/syllabot/internal/app/models/dto"
)

// WebhookController answers structured course questions.
type WebhookController struct {
	engine *engine.Engine
	logger zerolog.Logger
}

// NewWebhookController creates a new WebhookController
func NewWebhookController(eng *engine.Engine, logger zerolog.Logger) *WebhookController {
	return &WebhookController{
		engine: eng,
		logger: logger,
	}
}

// Handle processes one conversation turn. Only a malformed request body
// produces a non-200 status; every resolvable question, including
// unknown actions and missing data, answers 200 with conversational
// text.
func (c *WebhookController) Handle(ctx *gin.Context) {
	var req dto.WebhookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse("INVALID_REQUEST", "action and conversationId are required"))
		return
	}

	reply := c.engine.Dispatch(ctx.Request.Context(), engine.Request{
		Action:         req.Action,
		Parameters:     req.Parameters,
		ConversationID: req.ConversationID,
	})

	ctx.JSON(http.StatusOK, dto.WebhookResponse{
		Text:                  reply.Text,
		EndOfConversationTurn: reply.EndOfConversationTurn,
	})
}
