package http

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/appcontext"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// UploadCompanyLogo stores the uploaded image and points the company's
// startup_logo at it.
func UploadCompanyLogo(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID, ok := pathID(c, "id")
		if !ok {
			return
		}

		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		if err := ctx.Registry.EnsureMember(c.Request.Context(), userID, companyID); err != nil {
			respondError(ctx, c, "upload logo", err)
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			ctx.Logger.Error("Failed to get file from request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to get file from request"})
			return
		}

		ext, contentType, ok := imageFileType(file)
		if !ok {
			respondError(ctx, c, "upload logo", services.ErrUnsupportedFile)
			return
		}

		src, err := file.Open()
		if err != nil {
			ctx.Logger.Error("Failed to open file", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open file"})
			return
		}
		defer src.Close()

		objectPath := fmt.Sprintf("companies/%s/logo%s", companyID, ext)
		url, err := ctx.Logos.Put(c.Request.Context(), objectPath, contentType, src)
		if err != nil {
			respondError(ctx, c, "upload logo", err)
			return
		}

		company, _, err := ctx.Registry.Update(c.Request.Context(), userID, companyID, services.CompanyPatch{StartupLogo: &url})
		if err != nil {
			respondError(ctx, c, "store logo URL", err)
			return
		}

		c.JSON(http.StatusOK, newCompanyResponse(company))
	}
}

func imageFileType(file *multipart.FileHeader) (string, string, bool) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType, ok := imageTypes[ext]
	if !ok {
		return "", "", false
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType != contentType && mimeType != "application/octet-stream" {
		return "", "", false
	}
	return ext, contentType, true
}
