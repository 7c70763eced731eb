package controller

import (
	"errors"
	"strconv"

	"biocheck_backend/internal/engine"
	"biocheck_backend/internal/model"
	"biocheck_backend/internal/service"
	"biocheck_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuestionController struct {
	CatalogService *service.CatalogService
}

func NewQuestionController(catalogService *service.CatalogService) *QuestionController {
	return &QuestionController{CatalogService: catalogService}
}

func writeCatalogError(ctx *gin.Context, err error) {
	var confErr *engine.ConfigurationError
	switch {
	case errors.As(err, &confErr):
		// A rejected mutation: the submitted definition broke validation and
		// was rolled back.
		util.BadRequest(ctx, confErr.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// List godoc
// @Summary List question definitions
// @Tags catalog
// @Produce  json
// @Security BearerAuth
// @Param   area query int true "Focus area index"
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	area, err := strconv.Atoi(ctx.Query("area"))
	if err != nil {
		util.BadRequest(ctx, "area query parameter must be a number")
		return
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	questions, total, err := c.CatalogService.ListQuestions(area, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:  questions,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Get godoc
// @Summary One question definition
// @Tags catalog
// @Produce  json
// @Security BearerAuth
// @Param   qid path string true "Question ID"
// @Success 200 {object} util.Response{data=model.QuestionDefinition}
// @Failure 404 {object} util.Response
// @Router /api/admin/questions/{qid} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	q, err := c.CatalogService.GetQuestion(ctx.Param("qid"))
	if err != nil {
		writeCatalogError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// Create godoc
// @Summary Create a question definition
// @Description The definition is validated against the whole catalog before it is accepted
// @Tags catalog
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body model.QuestionDefinition true "Question definition"
// @Success 201 {object} util.Response{data=model.QuestionDefinition}
// @Failure 400 {object} util.Response
// @Router /api/admin/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var q model.QuestionDefinition
	if err := ctx.ShouldBindJSON(&q); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if q.QID == "" {
		util.BadRequest(ctx, "qid is required")
		return
	}

	if err := c.CatalogService.CreateQuestion(&q); err != nil {
		writeCatalogError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// Update godoc
// @Summary Update a question definition
// @Tags catalog
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   qid path string true "Question ID"
// @Param   body body model.QuestionDefinition true "Question definition"
// @Success 200 {object} util.Response{data=model.QuestionDefinition}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/questions/{qid} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	var q model.QuestionDefinition
	if err := ctx.ShouldBindJSON(&q); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	q.QID = ctx.Param("qid")

	if err := c.CatalogService.UpdateQuestion(&q); err != nil {
		writeCatalogError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// Delete godoc
// @Summary Delete a question definition
// @Description Rejected when another question still references the deleted one
// @Tags catalog
// @Produce  json
// @Security BearerAuth
// @Param   qid path string true "Question ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/questions/{qid} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	if err := c.CatalogService.DeleteQuestion(ctx.Param("qid")); err != nil {
		writeCatalogError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UpsertTranslation godoc
// @Summary Create or replace a translation overlay
// @Tags catalog
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   qid path string true "Question ID"
// @Param   body body model.QuestionTranslation true "Translation overlay"
// @Success 200 {object} util.Response{data=model.QuestionTranslation}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/questions/{qid}/translations [put]
func (c *QuestionController) UpsertTranslation(ctx *gin.Context) {
	var t model.QuestionTranslation
	if err := ctx.ShouldBindJSON(&t); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	t.QID = ctx.Param("qid")
	if t.Language == "" {
		util.BadRequest(ctx, "language is required")
		return
	}

	if err := c.CatalogService.UpsertTranslation(&t); err != nil {
		writeCatalogError(ctx, err)
		return
	}
	util.Success(ctx, t)
}

// Rebuild godoc
// @Summary Rebuild the serving catalog
// @Description Drops the cache layers and reloads the catalog from the database
// @Tags catalog
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/admin/catalog/rebuild [post]
func (c *QuestionController) Rebuild(ctx *gin.Context) {
	if _, err := c.CatalogService.Rebuild(); err != nil {
		writeCatalogError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
