package controller

import (
	"gyanbrix_backend/internal/service"
	"gyanbrix_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	contentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{contentService: contentService}
}

// CreateClass godoc
// @Summary Create a class
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ClassRequest true "Class payload"
// @Success 201 {object} util.Response{data=model.Class}
// @Failure 400 {object} util.Response
// @Router /admin/classes [post]
func (ctrl *ContentController) CreateClass(c *gin.Context) {
	var req service.ClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	claims := util.GetUserFromContext(c)
	class, err := ctrl.contentService.CreateClass(&req, claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, class)
}

// ListClasses godoc
// @Summary List all classes
// @Tags content
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Class}
// @Router /classes [get]
func (ctrl *ContentController) ListClasses(c *gin.Context) {
	classes, err := ctrl.contentService.ListClasses()
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, classes)
}

// UpdateClass godoc
// @Summary Rename a class
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classId path string true "Class ID"
// @Param request body service.ClassRequest true "Class payload"
// @Success 200 {object} util.Response{data=model.Class}
// @Failure 404 {object} util.Response
// @Router /admin/classes/{classId} [put]
func (ctrl *ContentController) UpdateClass(c *gin.Context) {
	var req service.ClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	class, err := ctrl.contentService.UpdateClass(c.Param("classId"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, class)
}

// DeleteClass godoc
// @Summary Delete a class that has no subjects
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param classId path string true "Class ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "Class still has subjects"
// @Router /admin/classes/{classId} [delete]
func (ctrl *ContentController) DeleteClass(c *gin.Context) {
	if err := ctrl.contentService.DeleteClass(c.Param("classId")); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, nil)
}

// CreateSubject godoc
// @Summary Create a subject under a class
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classId path string true "Class ID"
// @Param request body service.SubjectRequest true "Subject payload"
// @Success 201 {object} util.Response{data=model.Subject}
// @Router /admin/classes/{classId}/subjects [post]
func (ctrl *ContentController) CreateSubject(c *gin.Context) {
	var req service.SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	claims := util.GetUserFromContext(c)
	subject, err := ctrl.contentService.CreateSubject(c.Param("classId"), &req, claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, subject)
}

// ListSubjects godoc
// @Summary List subjects of a class
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param classId path string true "Class ID"
// @Success 200 {object} util.Response{data=[]model.Subject}
// @Router /classes/{classId}/subjects [get]
func (ctrl *ContentController) ListSubjects(c *gin.Context) {
	subjects, err := ctrl.contentService.ListSubjects(c.Param("classId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, subjects)
}

// UpdateSubject godoc
// @Summary Rename a subject
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param subjectId path string true "Subject ID"
// @Param request body service.SubjectRequest true "Subject payload"
// @Success 200 {object} util.Response{data=model.Subject}
// @Router /admin/subjects/{subjectId} [put]
func (ctrl *ContentController) UpdateSubject(c *gin.Context) {
	var req service.SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	subject, err := ctrl.contentService.UpdateSubject(c.Param("subjectId"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, subject)
}

// DeleteSubject godoc
// @Summary Delete a subject that has no chapters
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param subjectId path string true "Subject ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "Subject still has chapters"
// @Router /admin/subjects/{subjectId} [delete]
func (ctrl *ContentController) DeleteSubject(c *gin.Context) {
	if err := ctrl.contentService.DeleteSubject(c.Param("subjectId")); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, nil)
}

// CreateChapter godoc
// @Summary Create a chapter under a subject
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classId path string true "Class ID"
// @Param subjectId path string true "Subject ID"
// @Param request body service.ChapterRequest true "Chapter payload"
// @Success 201 {object} util.Response{data=model.Chapter}
// @Router /admin/classes/{classId}/subjects/{subjectId}/chapters [post]
func (ctrl *ContentController) CreateChapter(c *gin.Context) {
	var req service.ChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	claims := util.GetUserFromContext(c)
	chapter, err := ctrl.contentService.CreateChapter(c.Param("classId"), c.Param("subjectId"), &req, claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, chapter)
}

// ListChapters godoc
// @Summary List chapters of a subject
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param subjectId path string true "Subject ID"
// @Success 200 {object} util.Response{data=[]model.Chapter}
// @Router /subjects/{subjectId}/chapters [get]
func (ctrl *ContentController) ListChapters(c *gin.Context) {
	chapters, err := ctrl.contentService.ListChapters(c.Param("subjectId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, chapters)
}

// GetChapter godoc
// @Summary Read one chapter's content
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chapter ID"
// @Success 200 {object} util.Response{data=model.Chapter}
// @Failure 404 {object} util.Response
// @Router /chapters/{id} [get]
func (ctrl *ContentController) GetChapter(c *gin.Context) {
	chapter, err := ctrl.contentService.GetChapter(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, chapter)
}

// UpdateChapter godoc
// @Summary Update a chapter
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chapter ID"
// @Param request body service.ChapterRequest true "Chapter payload"
// @Success 200 {object} util.Response{data=model.Chapter}
// @Router /admin/chapters/{id} [put]
func (ctrl *ContentController) UpdateChapter(c *gin.Context) {
	var req service.ChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	chapter, err := ctrl.contentService.UpdateChapter(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, chapter)
}

// DeleteChapter godoc
// @Summary Delete a chapter that has no questions
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chapter ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "Chapter still has questions"
// @Router /admin/chapters/{id} [delete]
func (ctrl *ContentController) DeleteChapter(c *gin.Context) {
	if err := ctrl.contentService.DeleteChapter(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, nil)
}

// UploadChapterPDF godoc
// @Summary Attach a PDF to a chapter
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chapter ID"
// @Param file formData file true "PDF file"
// @Success 200 {object} util.Response{data=model.Chapter}
// @Failure 400 {object} util.Response "Not a PDF"
// @Router /admin/chapters/{id}/pdf [post]
func (ctrl *ContentController) UploadChapterPDF(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "file is required")
		return
	}

	chapter, err := ctrl.contentService.AttachPDF(c.Request.Context(), c.Param("id"), file)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, chapter)
}
