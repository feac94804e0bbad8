package controller

import (
	"context"
	"errors"
	"exam_integrity_backend/internal/integrity"
	"exam_integrity_backend/internal/model"
	"exam_integrity_backend/internal/service"
	"exam_integrity_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// IntegrityAnalyzer IntegrityController 依赖的服务能力
type IntegrityAnalyzer interface {
	GetAttemptReport(ctx context.Context, attemptID uint) (*model.AttemptIntegrityReport, error)
	SummarizeExam(ctx context.Context, examID uint) (*model.ExamIntegritySummary, error)
	ArchiveAttemptReport(ctx context.Context, attemptID uint) (*model.ArchivedReport, error)
	Preview(req service.PreviewRequest) (*integrity.Report, error)
	PreviewBodyLimit() int64
}

type IntegrityController struct {
	Service IntegrityAnalyzer
}

func NewIntegrityController(svc IntegrityAnalyzer) *IntegrityController {
	return &IntegrityController{Service: svc}
}

// @Summary 获取作答完整性报告
// @Description 根据监考事件与答题保存时间计算可疑度评分，作答中的记录返回 409
// @Tags 考试完整性
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作答ID"
// @Success 200 {object} util.Response{data=model.AttemptIntegrityReport}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /teacher/attempts/{id}/integrity [get]
func (c *IntegrityController) GetAttemptReport(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	report, err := c.Service.GetAttemptReport(ctx.Request.Context(), id)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	util.Success(ctx, report)
}

// @Summary 考试完整性汇总
// @Description 汇总同一考试下所有已提交作答的评分等级
// @Tags 考试完整性
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "考试ID"
// @Success 200 {object} util.Response{data=model.ExamIntegritySummary}
// @Failure 404 {object} util.Response
// @Router /teacher/exams/{id}/integrity [get]
func (c *IntegrityController) GetExamSummary(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	summary, err := c.Service.SummarizeExam(ctx.Request.Context(), id)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

// @Summary 归档完整性报告
// @Description 将报告快照写入对象存储
// @Tags 考试完整性
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作答ID"
// @Success 201 {object} util.Response{data=model.ArchivedReport}
// @Failure 409 {object} util.Response
// @Router /teacher/attempts/{id}/integrity/archive [post]
func (c *IntegrityController) ArchiveAttemptReport(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	archived, err := c.Service.ArchiveAttemptReport(ctx.Request.Context(), id)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	util.Created(ctx, archived)
}

// @Summary 预览完整性分析
// @Description 对请求体中的事件直接计算报告，不读取数据库
// @Tags 考试完整性
// @Accept json
// @Produce json
// @Param body body service.PreviewRequest true "事件与答题时间"
// @Success 200 {object} util.Response{data=integrity.Report}
// @Failure 400 {object} util.Response
// @Failure 413 {object} util.Response
// @Router /integrity/preview [post]
func (c *IntegrityController) Preview(ctx *gin.Context) {
	if limit := c.Service.PreviewBodyLimit(); limit > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, limit)
	}

	var req service.PreviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			util.Error(ctx, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}

	report, err := c.Service.Preview(req)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	util.Success(ctx, report)
}

func (c *IntegrityController) handleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidEventKind), errors.Is(err, util.ErrInvalidOptions),
		errors.Is(err, util.ErrPreviewTooLarge):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrAttemptNotFound), errors.Is(err, util.ErrExamNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrAttemptInProgress), errors.Is(err, util.ErrArchiveDisabled):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
