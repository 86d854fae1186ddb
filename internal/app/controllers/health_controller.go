package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/syllabot/syllabot/internal/app/cache"
	"github.com/syllabot/syllabot/internal/app/engine"
	"github.com/syllabot/syllabot/internal/app/models/dto"
	"github.com/syllabot/syllabot/internal/graph"
)

// HealthController reports liveness plus snapshot and cache state.
type HealthController struct {
	store   *graph.Store
	answers cache.Cache[engine.Answer]
}

// NewHealthController creates a new HealthController
func NewHealthController(store *graph.Store, answers cache.Cache[engine.Answer]) *HealthController {
	return &HealthController{
		store:   store,
		answers: answers,
	}
}

// Health returns 200 once a snapshot is loaded and 503 before that, so
// orchestrators hold traffic until the service can actually answer.
func (c *HealthController) Health(ctx *gin.Context) {
	snap := c.store.Snapshot()
	if snap == nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "loading"})
		return
	}

	stats := snap.Stats()
	ctx.JSON(http.StatusOK, dto.HealthResponse{
		Status:        "ok",
		SnapshotAge:   time.Since(stats.LoadedAt).Round(time.Second).String(),
		Courses:       stats.Courses,
		CachedReplies: c.answers.Len(ctx.Request.Context()),
	})
}
