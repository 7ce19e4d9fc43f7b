package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xxz807/finscale/reports/internal/ledger/domain"
	"github.com/xxz807/finscale/reports/internal/ledger/engine"
)

// ReportService 处理器依赖的报表服务
type ReportService interface {
	TrialBalance(ctx context.Context, req domain.Request) (*engine.TrialBalance, error)
	Ledger(ctx context.Context, accountID int64, req domain.Request) (*engine.Ledger, error)
}

type ReportHandler struct {
	svc ReportService
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// RegisterRoutes 注册路由
func (h *ReportHandler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("/trial-balance", h.GetTrialBalance)
		reports.GET("/ledger/:account_id", h.GetLedger)
	}
}

// GetTrialBalance 试算平衡表
// GET /api/v1/reports/trial-balance?start=2023-02-01&end=2023-02-28&branch_id=1
func (h *ReportHandler) GetTrialBalance(c *gin.Context) {
	q, req, ok := bindRequest(c)
	if !ok {
		return
	}

	tb, err := h.svc.TrialBalance(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTrialBalanceResp(q, tb))
}

// GetLedger 科目明细账
// GET /api/v1/reports/ledger/:account_id?start=2023-02-01&end=2023-02-28
func (h *ReportHandler) GetLedger(c *gin.Context) {
	accountID, err := strconv.ParseInt(c.Param("account_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account_id"})
		return
	}
	_, req, ok := bindRequest(c)
	if !ok {
		return
	}

	l, err := h.svc.Ledger(c.Request.Context(), accountID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toLedgerResp(l))
}

// bindRequest 参数绑定与日期校验
// 引擎不校验日期，所以 start/end 必填、start <= end 都在这里检查
func bindRequest(c *gin.Context) (ReportQuery, domain.Request, bool) {
	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return q, domain.Request{}, false
	}

	start, errStart := time.Parse(dateLayout, q.Start)
	end, errEnd := time.Parse(dateLayout, q.End)
	if errStart != nil || errEnd != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: dates must be YYYY-MM-DD"})
		return q, domain.Request{}, false
	}

	req := domain.Request{Start: start, End: end, BranchID: q.BranchID}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: start must not be after end"})
		return q, domain.Request{}, false
	}
	return q, req, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrPostingSourceUnavailable), errors.Is(err, domain.ErrIncompleteFetch):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
