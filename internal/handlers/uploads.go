package handlers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// saveUpload stores an uploaded file under dir with a random name, returning
// the stored filename.
func saveUpload(c *fiber.Ctx, file *multipart.FileHeader, dir string) (string, error) {
	name := uuid.New().String() + filepath.Ext(file.Filename)
	if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}
	return name, nil
}
