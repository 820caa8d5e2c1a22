package controller

import (
	"gyanbrix_backend/internal/model"
	"gyanbrix_backend/internal/service"
	"gyanbrix_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	quizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

// Create godoc
// @Summary Create a quiz at a hierarchy scope
// @Description The quiz stores question references only; every picked question must sit inside the quiz's scope.
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.QuizRequest true "Quiz payload"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response
// @Router /admin/quizzes [post]
func (ctrl *QuizController) Create(c *gin.Context) {
	var req service.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	claims := util.GetUserFromContext(c)
	quiz, err := ctrl.quizService.Create(&req, claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, quiz)
}

// Update godoc
// @Summary Replace a quiz's definition
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Param request body service.QuizRequest true "Quiz payload"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /admin/quizzes/{id} [put]
func (ctrl *QuizController) Update(c *gin.Context) {
	var req service.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	quiz, err := ctrl.quizService.Update(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, quiz)
}

// Delete godoc
// @Summary Delete a quiz
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /admin/quizzes/{id} [delete]
func (ctrl *QuizController) Delete(c *gin.Context) {
	if err := ctrl.quizService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, nil)
}

// Get godoc
// @Summary Read one quiz definition
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /quizzes/{id} [get]
func (ctrl *QuizController) Get(c *gin.Context) {
	quiz, err := ctrl.quizService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, quiz)
}

// List godoc
// @Summary List quizzes at a scope
// @Description Scope comes from query params: classId alone lists class quizzes, adding subjectId lists subject quizzes, adding chapterId lists chapter quizzes.
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param classId query string true "Class ID"
// @Param subjectId query string false "Subject ID"
// @Param chapterId query string false "Chapter ID"
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Failure 400 {object} util.Response
// @Router /quizzes [get]
func (ctrl *QuizController) List(c *gin.Context) {
	classID := c.Query("classId")
	subjectID := c.Query("subjectId")
	chapterID := c.Query("chapterId")

	if classID == "" {
		util.BadRequest(c, "classId is required")
		return
	}

	var quizzes []model.Quiz
	var err error
	switch {
	case chapterID != "":
		if subjectID == "" {
			util.BadRequest(c, "subjectId is required with chapterId")
			return
		}
		quizzes, err = ctrl.quizService.ListByChapter(classID, subjectID, chapterID)
	case subjectID != "":
		quizzes, err = ctrl.quizService.ListBySubject(classID, subjectID)
	default:
		quizzes, err = ctrl.quizService.ListByClass(classID)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, quizzes)
}

// Candidates godoc
// @Summary List pickable questions for a quiz scope
// @Description Walks the hierarchy below the scope and tags each question with its subject and chapter.
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param type query string true "Quiz type" Enums(class, subject, chapter)
// @Param classId query string true "Class ID"
// @Param subjectId query string false "Subject ID"
// @Param chapterId query string false "Chapter ID"
// @Success 200 {object} util.Response{data=[]service.Candidate}
// @Failure 400 {object} util.Response
// @Router /admin/quizzes/candidates [get]
func (ctrl *QuizController) Candidates(c *gin.Context) {
	quizType := model.QuizType(c.Query("type"))
	classID := c.Query("classId")
	if classID == "" {
		util.BadRequest(c, "classId is required")
		return
	}

	pool, err := ctrl.quizService.AggregateCandidates(
		c.Request.Context(), quizType, classID, c.Query("subjectId"), c.Query("chapterId"))
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, pool)
}
