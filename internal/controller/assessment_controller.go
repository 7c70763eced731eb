package controller

import (
	"errors"
	"net/http"
	"strconv"

	"biocheck_backend/internal/engine"
	"biocheck_backend/internal/service"
	"biocheck_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
	ReportService     *service.ReportService
}

func NewAssessmentController(assessmentService *service.AssessmentService, reportService *service.ReportService) *AssessmentController {
	return &AssessmentController{
		AssessmentService: assessmentService,
		ReportService:     reportService,
	}
}

// writeEngineError maps engine failures onto HTTP statuses. Validation
// failures of the stored catalog surface as 500s because the client cannot
// repair them.
func writeEngineError(ctx *gin.Context, err error) {
	var incomplete *engine.IncompleteError
	var confErr *engine.ConfigurationError
	switch {
	case errors.Is(err, engine.ErrUnknownFocusArea):
		util.NotFound(ctx)
	case errors.Is(err, engine.ErrNotApplicable):
		util.Error(ctx, http.StatusUnprocessableEntity, "question is not applicable under the current answers")
	case errors.Is(err, engine.ErrFocusAreaCompleted):
		util.Conflict(ctx, "focus area already completed")
	case errors.Is(err, engine.ErrAssessmentCompleted):
		util.Conflict(ctx, "assessment already completed")
	case errors.As(err, &incomplete):
		ctx.JSON(http.StatusConflict, util.Response{
			Code:    http.StatusConflict,
			Message: "focus area has unanswered questions",
			Data:    gin.H{"focusArea": incomplete.FocusArea, "missing": incomplete.Missing},
		})
	case errors.As(err, &confErr):
		util.LogInternalError(ctx, err)
	case errors.Is(err, util.ErrCatalogUnavailable):
		util.Error(ctx, http.StatusServiceUnavailable, "question catalog unavailable")
	case errors.Is(err, util.ErrRecordNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

func focusAreaParam(ctx *gin.Context) (int, bool) {
	area, err := strconv.Atoi(ctx.Param("area"))
	if err != nil {
		util.BadRequest(ctx, "focus area must be a number")
		return 0, false
	}
	return area, true
}

// GetCurrent godoc
// @Summary Current assessment overview
// @Description Progress, per-area completion and scores of the active assessment
// @Tags assessment
// @Produce  json
// @Security BearerAuth
// @Param   lang query string false "Language code"
// @Success 200 {object} util.Response{data=service.AssessmentOverview}
// @Router /api/assessments/current [get]
func (c *AssessmentController) GetCurrent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	overview, err := c.AssessmentService.Current(claims.UserID, ctx.Query("lang"))
	if err != nil {
		writeEngineError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// GetQuestions godoc
// @Summary Applicable questions of a focus area
// @Description Returns the questions currently visible under the recorded answers
// @Tags assessment
// @Produce  json
// @Security BearerAuth
// @Param   area path int true "Focus area index"
// @Param   lang query string false "Language code"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/assessments/current/focus-areas/{area}/questions [get]
func (c *AssessmentController) GetQuestions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	area, ok := focusAreaParam(ctx)
	if !ok {
		return
	}

	questions, answers, err := c.AssessmentService.Questions(claims.UserID, area, ctx.Query("lang"))
	if err != nil {
		writeEngineError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"questions": questions,
		"answers":   answers,
	})
}

// PutAnswer godoc
// @Summary Record an answer
// @Description Stores or overwrites the answer for one visible question
// @Tags assessment
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   area path int true "Focus area index"
// @Param   questionId path string true "Question ID"
// @Param   body body engine.Answer true "Answer payload"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/assessments/current/focus-areas/{area}/answers/{questionId} [put]
func (c *AssessmentController) PutAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	area, ok := focusAreaParam(ctx)
	if !ok {
		return
	}

	var answer engine.Answer
	if err := ctx.ShouldBindJSON(&answer); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if answer.IsZero() {
		util.BadRequest(ctx, "answer kind is required")
		return
	}

	err := c.AssessmentService.RecordAnswer(claims.UserID, area, ctx.Param("questionId"), answer, ctx.Query("lang"))
	if err != nil {
		writeEngineError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CompleteFocusArea godoc
// @Summary Complete a focus area
// @Description Freezes the area and returns its score
// @Tags assessment
// @Produce  json
// @Security BearerAuth
// @Param   area path int true "Focus area index"
// @Success 200 {object} util.Response{data=object}
// @Failure 409 {object} util.Response
// @Router /api/assessments/current/focus-areas/{area}/complete [post]
func (c *AssessmentController) CompleteFocusArea(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	area, ok := focusAreaParam(ctx)
	if !ok {
		return
	}

	score, err := c.AssessmentService.CompleteFocusArea(claims.UserID, area, ctx.Query("lang"))
	if err != nil {
		writeEngineError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"focusArea": area, "score": score})
}

// CompleteAssessment godoc
// @Summary Complete the assessment
// @Description Aggregates all focus areas, grades the result and derives the risk report
// @Tags assessment
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=engine.CompletionResult}
// @Failure 409 {object} util.Response
// @Router /api/assessments/complete [post]
func (c *AssessmentController) CompleteAssessment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	result, err := c.AssessmentService.CompleteAssessment(claims.UserID, ctx.Query("lang"))
	if err != nil {
		writeEngineError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Reset godoc
// @Summary Reset the assessment
// @Description Discards every answer and starts over; the history is untouched
// @Tags assessment
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/assessments/reset [post]
func (c *AssessmentController) Reset(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.AssessmentService.Reset(claims.UserID, ctx.Query("lang")); err != nil {
		writeEngineError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// History godoc
// @Summary Completed assessment history
// @Tags assessment
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/assessments/history [get]
func (c *AssessmentController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	records, total, err := c.AssessmentService.History(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:  records,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetRecord godoc
// @Summary One history record
// @Tags assessment
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Record ID"
// @Success 200 {object} util.Response{data=model.AssessmentRecord}
// @Failure 404 {object} util.Response
// @Router /api/assessments/history/{id} [get]
func (c *AssessmentController) GetRecord(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	rec, err := c.AssessmentService.GetRecord(claims.UserID, ctx.Param("id"))
	if err != nil {
		writeEngineError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

// DeleteRecord godoc
// @Summary Delete a history record
// @Description Removes the record and its exported report
// @Tags assessment
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Record ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assessments/history/{id} [delete]
func (c *AssessmentController) DeleteRecord(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.ReportService.DeleteWithExport(ctx.Request.Context(), claims.UserID, ctx.Param("id")); err != nil {
		writeEngineError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ExportRecord godoc
// @Summary Export a history record
// @Description Uploads the report document to the object store and returns its URL
// @Tags assessment
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Record ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/assessments/history/{id}/export [get]
func (c *AssessmentController) ExportRecord(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	url, err := c.ReportService.Export(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		writeEngineError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
