package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/habyx/backend/internal/service"
	"github.com/pageza/habyx/backend/internal/types"
)

type ProfileHandler struct {
	profileService service.IProfileService
	maxUpload      int64
	log            *zap.Logger
}

func NewProfileHandler(profileService service.IProfileService, maxUpload int64, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		maxUpload:      maxUpload,
		log:            log,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profiles := router.Group("/profiles")
	{
		profiles.GET("", h.ListProfiles)
		profiles.POST("", h.CreateProfile)
		profiles.POST("/upload-image", h.UploadImage)
		profiles.DELETE("/image", h.DeleteImage)
		profiles.GET("/:id", h.GetProfile)
		profiles.PUT("/:id", h.UpdateProfile)
		profiles.DELETE("/:id", h.DeleteProfile)
	}
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.profileService.ListProfiles(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, http.StatusConflict)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, http.StatusConflict)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req types.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}

	profile, err := h.profileService.CreateProfile(c.Request.Context(), userID, req.ToModel())
	if err != nil {
		respondError(c, h.log, err, http.StatusConflict)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req types.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}

	if err := h.profileService.UpdateProfile(c.Request.Context(), userID, id, req.ToModel()); err != nil {
		respondError(c, h.log, err, http.StatusConflict)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.profileService.DeleteProfile(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.log, err, http.StatusConflict)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage accepts a multipart form with the image in the "file" field.
func (h *ProfileHandler) UploadImage(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	// leave room for the multipart envelope around the file
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	if fileHeader.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	if fileHeader.Size > h.maxUpload {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, h.log, err, http.StatusConflict)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, h.log, err, http.StatusConflict)
		return
	}

	path, err := h.profileService.UploadImage(c.Request.Context(), userID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		respondError(c, h.log, err, http.StatusConflict)
		return
	}
	c.JSON(http.StatusOK, types.UploadImageResponse{Path: path})
}

func (h *ProfileHandler) DeleteImage(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.profileService.DeleteImage(c.Request.Context(), userID); err != nil {
		respondError(c, h.log, err, http.StatusConflict)
		return
	}
	c.Status(http.StatusNoContent)
}
