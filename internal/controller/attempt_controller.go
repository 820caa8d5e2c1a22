package controller

import (
	"gyanbrix_backend/internal/service"
	"gyanbrix_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	sessionService *service.SessionService
	attemptService *service.AttemptService
}

func NewAttemptController(sessionService *service.SessionService, attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{
		sessionService: sessionService,
		attemptService: attemptService,
	}
}

type selectAnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Option     *int   `json:"option" binding:"required"`
}

type navigateRequest struct {
	Index *int `json:"index" binding:"required"`
}

// Start godoc
// @Summary Start a timed attempt session for a quiz
// @Description Opens a server-held session whose deadline is fixed at start. Correct answers never appear in the response.
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Success 201 {object} util.Response{data=service.SessionView}
// @Failure 400 {object} util.Response "Quiz has no resolvable questions"
// @Failure 404 {object} util.Response
// @Router /quizzes/{id}/attempts [post]
func (ctrl *AttemptController) Start(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	view, err := ctrl.sessionService.Start(claims.UserID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, view)
}

// GetSession godoc
// @Summary Read the current session state
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 404 {object} util.Response
// @Router /attempts/{sessionId} [get]
func (ctrl *AttemptController) GetSession(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	view, err := ctrl.sessionService.Get(c.Param("sessionId"), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, view)
}

// SelectAnswer godoc
// @Summary Select or deselect an answer
// @Description Selecting the already-selected option clears it.
// @Tags attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Param request body selectAnswerRequest true "Answer payload"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 400 {object} util.Response "Option out of range or question not in quiz"
// @Failure 409 {object} util.Response "Session already completed"
// @Router /attempts/{sessionId}/answer [post]
func (ctrl *AttemptController) SelectAnswer(c *gin.Context) {
	var req selectAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	claims := util.GetUserFromContext(c)
	view, err := ctrl.sessionService.SelectAnswer(c.Param("sessionId"), claims.UserID, req.QuestionID, *req.Option)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, view)
}

// Navigate godoc
// @Summary Move the session cursor
// @Description Out-of-range targets are clamped to the first or last question.
// @Tags attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Param request body navigateRequest true "Navigation payload"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Router /attempts/{sessionId}/navigate [post]
func (ctrl *AttemptController) Navigate(c *gin.Context) {
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	claims := util.GetUserFromContext(c)
	view, err := ctrl.sessionService.Navigate(c.Param("sessionId"), claims.UserID, *req.Index)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, view)
}

// Submit godoc
// @Summary Submit the session and record the attempt
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} util.Response{data=model.Attempt}
// @Failure 409 {object} util.Response "Session already completed"
// @Router /attempts/{sessionId}/submit [post]
func (ctrl *AttemptController) Submit(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	attempt, err := ctrl.sessionService.Submit(c.Param("sessionId"), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, attempt)
}

// Abandon godoc
// @Summary Abandon the session without recording an attempt
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} util.Response
// @Router /attempts/{sessionId} [delete]
func (ctrl *AttemptController) Abandon(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	if err := ctrl.sessionService.Abandon(c.Param("sessionId"), claims.UserID); err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, nil)
}

// History godoc
// @Summary List the authenticated user's attempts, most recent first
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param quizId query string false "Only attempts of this quiz"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} util.Response{data=service.AttemptHistory}
// @Router /attempts/history [get]
func (ctrl *AttemptController) History(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	history, err := ctrl.attemptService.History(claims.UserID, c.Query("quizId"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, history)
}

// Detail godoc
// @Summary Read one stored attempt with its per-question review
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attempt ID"
// @Success 200 {object} util.Response{data=service.AttemptDetailView}
// @Failure 404 {object} util.Response
// @Router /attempts/history/{id} [get]
func (ctrl *AttemptController) Detail(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	view, err := ctrl.attemptService.Detail(claims.UserID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, view)
}
