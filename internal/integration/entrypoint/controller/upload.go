package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
)

// readUpload reads a multipart "file" field, or the raw request body named by
// the "filename" query parameter.
func readUpload(ctx *gin.Context, defaultName string, maxBytes int64) (string, []byte, error) {
	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		header, err := ctx.FormFile("file")
		if err != nil {
			return "", nil, domainerror.NewIngestionError(domainerror.ErrCodeMissingFile, "multipart field \"file\" is required", err)
		}
		if maxBytes > 0 && header.Size > maxBytes {
			return "", nil, tooLarge(maxBytes)
		}

		f, err := header.Open()
		if err != nil {
			return "", nil, domainerror.NewIngestionError(domainerror.ErrCodeUnreadableFile, "failed to open uploaded file", err)
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return "", nil, domainerror.NewIngestionError(domainerror.ErrCodeUnreadableFile, "failed to read uploaded file", err)
		}
		return header.Filename, data, nil
	}

	name := ctx.DefaultQuery("filename", defaultName)
	body := io.Reader(ctx.Request.Body)
	if maxBytes > 0 {
		body = io.LimitReader(body, maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", nil, domainerror.NewIngestionError(domainerror.ErrCodeUnreadableFile, "failed to read request body", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", nil, tooLarge(maxBytes)
	}
	if len(data) == 0 {
		return "", nil, domainerror.NewIngestionError(domainerror.ErrCodeMissingFile, "request body is empty", domainerror.ErrEmptyExport)
	}
	return name, data, nil
}

func tooLarge(limit int64) error {
	return domainerror.NewIngestionError(
		domainerror.ErrCodeFileTooLarge,
		fmt.Sprintf("file exceeds the %d byte limit", limit),
		domainerror.ErrFileTooLarge,
	)
}
