package controller

import (
	"context"
	"exam_integrity_backend/internal/util"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger 数据库与 Redis 的连通性检查
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc 将普通函数适配为 Pinger
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type HealthController struct {
	DB    Pinger
	Redis Pinger
}

func NewHealthController(db, redis Pinger) *HealthController {
	return &HealthController{DB: db, Redis: redis}
}

// @Summary 健康检查
// @Description 检查数据库与缓存状态；缓存不可用时服务降级但仍可用
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.DB.Ping(pingCtx); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	cache := "up"
	if c.Redis == nil {
		cache = "disabled"
	} else if err := c.Redis.Ping(pingCtx); err != nil {
		cache = "down"
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": "up",
			"cache":    cache,
		},
	})
}
