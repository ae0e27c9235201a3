package handler

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"dialog-messenger-api/apperror"
	"dialog-messenger-api/dto/res"
)

// MaxUploadSize is the image upload ceiling.
const MaxUploadSize = 10 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ValidateImageUpload checks the declared MIME type, the file extension
// and the size before anything touches disk. The extension check catches
// non-image files smuggled in with a spoofed image Content-Type.
func ValidateImageUpload(filename, contentType string, size int64) error {
	if !allowedImageTypes[contentType] {
		return apperror.BadRequest("file type is not allowed")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExtensions[ext] {
		return apperror.BadRequest("file extension is not allowed")
	}
	if size > MaxUploadSize {
		return apperror.BadRequest("file is too large, the limit is 10MB")
	}
	return nil
}

func (handler *ChatHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return writeError(c, apperror.BadRequest("no file selected"))
	}

	contentType := file.Header.Get("Content-Type")
	if err := ValidateImageUpload(file.Filename, contentType, file.Size); err != nil {
		return writeError(c, err)
	}

	if err := os.MkdirAll(handler.UploadDir, 0o755); err != nil {
		handler.Logger.WithError(err).Error("failed to create upload directory")
		return writeError(c, apperror.Internal("failed to store file"))
	}

	fileName := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	if err := c.SaveFile(file, filepath.Join(handler.UploadDir, fileName)); err != nil {
		handler.Logger.WithError(err).Error("failed to store uploaded file")
		return writeError(c, apperror.Internal("failed to store file"))
	}

	handler.Logger.Infof("stored uploaded image %s (%d bytes)", fileName, file.Size)
	return c.Status(fiber.StatusOK).JSON(res.UploadResponse{FilePath: fileName})
}
