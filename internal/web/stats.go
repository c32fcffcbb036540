package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Shiziso/Bot/internal/repository"
)

// StatsHandler serves the JSON API behind the admin dashboard.
type StatsHandler struct {
	log *zap.Logger
}

func NewStatsHandler(log *zap.Logger) *StatsHandler {
	return &StatsHandler{log: log}
}

// daysParam reads the ?days= window, clamped to something sane.
func daysParam(c *gin.Context) int {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 {
		return 30
	}
	if days > 365 {
		return 365
	}
	return days
}

func (h *StatsHandler) Overview(c *gin.Context) {
	overview, err := repository.GetOverview(c)
	if err != nil {
		h.log.Error("Failed to load overview", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load overview"})
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *StatsHandler) Commands(c *gin.Context) {
	days := daysParam(c)
	counts, err := repository.GetCommandStats(c, days)
	if err != nil {
		h.log.Error("Failed to load command stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load command stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "commands": counts})
}

func (h *StatsHandler) Moods(c *gin.Context) {
	days := daysParam(c)
	distribution, err := repository.GetMoodDistribution(c, days)
	if err != nil {
		h.log.Error("Failed to load mood distribution", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load mood distribution"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "moods": distribution})
}
