package controller

import (
	"context"
	"net/http"
	"time"

	"edutech_backend/internal/repository"
	"edutech_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Store  repository.Pinger
	Driver string
}

func NewHealthController(store repository.Pinger, driver string) *HealthController {
	return &HealthController{Store: store, Driver: driver}
}

// @Summary 健康检查
// @Description 检查服务和存储连接状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.Store.Ping(pingCtx); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": gin.H{"driver": c.Driver, "status": "up"},
		},
		"time": time.Now().Format(util.TimeFormat),
	})
}
