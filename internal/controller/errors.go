package controller

import (
	"errors"
	"gyanbrix_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError maps service-layer sentinels onto HTTP statuses; anything
// unrecognized is logged and reported as a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(c)
	case errors.Is(err, util.ErrEmailRegistered):
		util.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(c, err.Error())
	case errors.Is(err, util.ErrClassNotEmpty),
		errors.Is(err, util.ErrSubjectNotEmpty),
		errors.Is(err, util.ErrChapterNotEmpty),
		errors.Is(err, util.ErrSessionCompleted):
		util.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrQuizNoQuestions),
		errors.Is(err, util.ErrQuestionNotInQuiz),
		errors.Is(err, util.ErrInvalidOption),
		errors.Is(err, util.ErrScopeMismatch):
		util.BadRequest(c, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}
