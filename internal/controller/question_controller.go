package controller

import (
	"errors"
	"gyanbrix_backend/internal/service"
	"gyanbrix_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuestionController struct {
	questionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// CreateBatch godoc
// @Summary Bulk-upload questions into a chapter
// @Description Validates every question first; one bad row rejects the whole upload.
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classId path string true "Class ID"
// @Param subjectId path string true "Subject ID"
// @Param chapterId path string true "Chapter ID"
// @Param request body service.BulkQuestionRequest true "Questions payload"
// @Success 201 {object} util.Response{data=[]model.Question}
// @Failure 400 {object} util.Response "Validation failure naming the offending row"
// @Router /admin/classes/{classId}/subjects/{subjectId}/chapters/{chapterId}/questions [post]
func (ctrl *QuestionController) CreateBatch(c *gin.Context) {
	var req service.BulkQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	claims := util.GetUserFromContext(c)
	questions, err := ctrl.questionService.CreateBatch(
		c.Param("classId"), c.Param("subjectId"), c.Param("chapterId"),
		&req, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, util.ErrScopeMismatch) {
			respondError(c, err)
			return
		}
		util.BadRequest(c, err.Error())
		return
	}

	util.Created(c, questions)
}

// ListByChapter godoc
// @Summary List a chapter's questions
// @Description Unknown hierarchy paths yield an empty list, not an error.
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param classId path string true "Class ID"
// @Param subjectId path string true "Subject ID"
// @Param chapterId path string true "Chapter ID"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /admin/classes/{classId}/subjects/{subjectId}/chapters/{chapterId}/questions [get]
func (ctrl *QuestionController) ListByChapter(c *gin.Context) {
	questions, err := ctrl.questionService.ListByChapter(
		c.Param("classId"), c.Param("subjectId"), c.Param("chapterId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, questions)
}

// Update godoc
// @Summary Edit a question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Param request body service.QuestionInput true "Question payload"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /admin/questions/{id} [put]
func (ctrl *QuestionController) Update(c *gin.Context) {
	var req service.QuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	question, err := ctrl.questionService.Update(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, question)
}

// Delete godoc
// @Summary Delete a question
// @Description Quizzes keep their references; sessions skip ids that no longer resolve.
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /admin/questions/{id} [delete]
func (ctrl *QuestionController) Delete(c *gin.Context) {
	if err := ctrl.questionService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, nil)
}
