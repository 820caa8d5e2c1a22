package controller

import (
	"gyanbrix_backend/internal/service"
	"gyanbrix_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BannerController struct {
	bannerService *service.BannerService
}

func NewBannerController(bannerService *service.BannerService) *BannerController {
	return &BannerController{bannerService: bannerService}
}

// Create godoc
// @Summary Upload a home-screen banner
// @Tags banners
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string false "Banner title"
// @Param image formData file true "Banner image"
// @Success 201 {object} util.Response{data=model.Banner}
// @Failure 400 {object} util.Response "Not an image"
// @Router /admin/banners [post]
func (ctrl *BannerController) Create(c *gin.Context) {
	image, err := c.FormFile("image")
	if err != nil {
		util.BadRequest(c, "image is required")
		return
	}

	claims := util.GetUserFromContext(c)
	banner, err := ctrl.bannerService.Create(c.Request.Context(), c.PostForm("title"), image, claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, banner)
}

// List godoc
// @Summary List banners, newest first
// @Tags banners
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Banner}
// @Router /banners [get]
func (ctrl *BannerController) List(c *gin.Context) {
	banners, err := ctrl.bannerService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, banners)
}

// Delete godoc
// @Summary Delete a banner
// @Tags banners
// @Produce json
// @Security BearerAuth
// @Param id path string true "Banner ID"
// @Success 200 {object} util.Response
// @Router /admin/banners/{id} [delete]
func (ctrl *BannerController) Delete(c *gin.Context) {
	if err := ctrl.bannerService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, nil)
}
