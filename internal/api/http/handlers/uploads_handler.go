package handlers

import (
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/refund-service/internal/api/dto"
	"github.com/spec-kit/refund-service/internal/upload"
	apperrors "github.com/spec-kit/refund-service/pkg/util"
)

const uploadField = "file"

// UploadsHandler receives receipt files.
type UploadsHandler struct {
	orchestrator *upload.Orchestrator
	tmpDir       string
}

// NewUploadsHandler constructs handler. Incoming files are written to tmpDir.
func NewUploadsHandler(orchestrator *upload.Orchestrator, tmpDir string) *UploadsHandler {
	return &UploadsHandler{orchestrator: orchestrator, tmpDir: tmpDir}
}

// Create POST /uploads.
func (h *UploadsHandler) Create(c *fiber.Ctx) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	header, err := c.FormFile(uploadField)
	if err != nil {
		return apperrors.NewValidationError(uploadField, upload.MsgFileRequired)
	}

	tempName := uuid.NewString()
	if err := c.SaveFile(header, filepath.Join(h.tmpDir, tempName)); err != nil {
		return apperrors.NewInternalError(fmt.Errorf("save temp upload: %w", err))
	}

	result, err := h.orchestrator.Handle(c.UserContext(), caller.SubjectID, upload.Received{
		TempName: tempName,
		Meta: map[string]any{
			"fieldname": uploadField,
			"filename":  header.Filename,
			"mimetype":  header.Header.Get(fiber.HeaderContentType),
			"size":      header.Size,
		},
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.UploadResponse{Filename: result.Filename})
}
