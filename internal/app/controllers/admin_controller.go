package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/syllabot/syllabot/internal/app/engine"
	"github.com/syllabot/syllabot/internal/app/models/dto"
	"github.com/syllabot/syllabot/internal/graph"
	"github.com/syllabot/syllabot/internal/pkg/auth"
)

// AdminController handles token issuance and snapshot reloads.
type AdminController struct {
	store       *graph.Store
	source      graph.Source
	engine      *engine.Engine
	jwtService  *auth.JWTService
	adminSecret string
	logger      zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(store *graph.Store, source graph.Source, eng *engine.Engine,
	jwtService *auth.JWTService, adminSecret string, logger zerolog.Logger) *AdminController {
	return &AdminController{
		store:       store,
		source:      source,
		engine:      eng,
		jwtService:  jwtService,
		adminSecret: adminSecret,
		logger:      logger,
	}
}

// Token exchanges the shared admin secret for a signed token.
func (c *AdminController) Token(ctx *gin.Context) {
	var req dto.TokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("INVALID_REQUEST", "secret is required"))
		return
	}

	if req.Secret != c.adminSecret {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("UNAUTHORIZED", "Invalid admin secret"))
		return
	}

	token, expiresIn, err := c.jwtService.GenerateToken("admin")
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to generate admin token")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse("INTERNAL_ERROR", "Failed to generate token"))
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{Token: token, ExpiresIn: expiresIn})
}

// Reload rebuilds the snapshot from the configured source and swaps it
// in atomically. On failure the previous snapshot keeps serving and the
// answer cache is untouched; on success the cache is purged wholesale.
func (c *AdminController) Reload(ctx *gin.Context) {
	if err := c.store.Load(ctx.Request.Context(), c.source); err != nil {
		c.logger.Error().Err(err).Msg("Snapshot reload failed")
		ctx.JSON(http.StatusBadGateway,
			dto.NewErrorResponse("RELOAD_FAILED", "Snapshot reload failed; the previous snapshot is still serving"))
		return
	}

	if err := c.engine.PurgeCache(ctx.Request.Context()); err != nil {
		// The new snapshot is already live; a stale cache is worse than a
		// failed purge report.
		c.logger.Error().Err(err).Msg("Cache purge after reload failed")
		ctx.JSON(http.StatusInternalServerError,
			dto.NewErrorResponse("PURGE_FAILED", "Snapshot reloaded but cache purge failed"))
		return
	}

	stats := c.store.Snapshot().Stats()
	ctx.JSON(http.StatusOK, dto.ReloadResponse{
		Programs:    stats.Programs,
		Terms:       stats.Terms,
		Courses:     stats.Courses,
		Sessions:    stats.Sessions,
		Assessments: stats.Assessments,
		Instructors: stats.Instructors,
		LoadedAt:    stats.LoadedAt.Format(time.RFC3339),
	})
}
