package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskease/internal/adapter/http/dto"
	"taskease/internal/core/ports"
	"taskease/pkg/apierrors"
)

type SummaryHandler struct {
	digestService ports.DigestService
	now           func() time.Time
}

// NewSummaryHandler exposes the digest run over HTTP, for external keep-alive
// pingers. now decides the calendar day the digest is sent for.
func NewSummaryHandler(digestService ports.DigestService, now func() time.Time) *SummaryHandler {
	if now == nil {
		now = time.Now
	}
	return &SummaryHandler{digestService: digestService, now: now}
}

func (h *SummaryHandler) Ping(c *gin.Context) {
	report, err := h.digestService.SendDailySummaries(c.Request.Context(), h.now())
	if err != nil {
		respondError(c, err, apierrors.MsgFailSendSummaries, "failed to send daily summaries")
		return
	}

	c.JSON(http.StatusOK, dto.SummaryReport{
		Success: true,
		Users:   report.Users,
		Sent:    report.Sent,
		Skipped: report.Skipped,
		Failed:  report.Failed,
	})
}
