package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"taskease/internal/adapter/http/middleware"
	"taskease/internal/core/ports"
)

const (
	StatusOk           = "ok"
	StatusDown         = "down"
	healthStoreTimeout = 2 * time.Second
)

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthAdvanced struct {
	AppName           string            `json:"app_name"`
	AppVersion        string            `json:"app_version"`
	CurrentSystemTime string            `json:"current_system_time"`
	Language          string            `json:"language"`
	Status            map[string]string `json:"status"`
}

type HealthHandler struct {
	checkers []ports.HealthChecker
}

func NewHealthHandler(checkers ...ports.HealthChecker) *HealthHandler {
	return &HealthHandler{checkers: checkers}
}

func (h *HealthHandler) CheckHealth(c *gin.Context) {
	statusCode := http.StatusOK
	message := StatusOk

	for _, status := range h.checkAll(c.Request.Context()) {
		if status != StatusOk {
			statusCode = http.StatusInternalServerError
			message = StatusDown
			break
		}
	}

	c.JSON(statusCode, HealthBasic{
		AppName:           appName(),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Message:           message,
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	c.JSON(http.StatusOK, HealthAdvanced{
		AppName:           appName(),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Language:          middleware.GetLang(c),
		Status:            h.checkAll(c.Request.Context()),
	})
}

func (h *HealthHandler) checkAll(ctx context.Context) map[string]string {
	statuses := make(map[string]string, len(h.checkers))
	for _, checker := range h.checkers {
		timeoutCtx, cancel := context.WithTimeout(ctx, healthStoreTimeout)
		status := StatusOk
		if err := checker.Ping(timeoutCtx); err != nil {
			status = StatusDown
		}
		cancel()
		statuses[checker.Name()] = status
	}
	return statuses
}

func appName() string {
	if name := os.Getenv("APP_NAME"); name != "" {
		return name
	}
	return "taskease"
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}
