package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pdfpress/pdf"
)

// HandleCompress recompresses an uploaded PDF and returns the result as an attachment
func HandleCompress(c *gin.Context, config *Config, runner pdf.Runner) {
	logger := zerolog.Ctx(c.Request.Context())

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxFileSize+multipartOverhead)
	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("request exceeds maximum allowed %d bytes", config.MaxFileSize)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	mode, err := pdf.ParseMode(c.DefaultPostForm("mode", pdf.DefaultMode.String()))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, header, err := c.Request.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF file provided"})
		return
	}
	defer file.Close()

	if err := validatePDFFile(file, header, config.MaxFileSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ensureTempDir(config.TempDir); err != nil {
		logger.Error().Err(err).Str("temp_dir", config.TempDir).Msg("Failed to create temp directory")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temp directory"})
		return
	}

	inFile := filepath.Join(config.TempDir, "input_"+uuid.NewString()+".pdf")
	defer os.Remove(inFile)

	if err := saveUpload(file, inFile); err != nil {
		logger.Error().Err(err).Msg("Failed to save upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save input file"})
		return
	}

	plan, err := pdf.NewPlan(inFile, "", mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer os.Remove(plan.Destination)

	ctx, cancel := context.WithTimeout(c.Request.Context(), config.EngineTimeout)
	defer cancel()

	if err := pdf.Compress(ctx, runner, plan); err != nil {
		logger.Error().Err(err).Str("mode", mode.String()).Msg("PDF compression failed")
		status := http.StatusInternalServerError
		if pdf.TypeOf(err) == pdf.ErrorTypeTimeout {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, gin.H{"error": truncateError(err.Error())})
		return
	}

	// The engine's exit status is not checked by Compress, so a missing output
	// is how a failed run shows up here
	info, err := os.Stat(plan.Destination)
	if err != nil || info.Size() == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PDF compression did not produce output file"})
		return
	}

	logger.Info().
		Str("mode", mode.String()).
		Int64("original_size", header.Size).
		Int64("compressed_size", info.Size()).
		Msg("PDF compressed")

	c.Header("Content-Type", "application/pdf")
	c.FileAttachment(plan.Destination, downloadName(header.Filename))
}

// HandleModes lists the available presets
func HandleModes(c *gin.Context) {
	modes := make([]gin.H, 0, len(pdf.Modes()))
	for _, m := range pdf.Modes() {
		modes = append(modes, gin.H{
			"mode":        m.String(),
			"description": m.Description(),
			"default":     m == pdf.DefaultMode,
		})
	}
	c.JSON(http.StatusOK, gin.H{"modes": modes})
}

// HandleHealth reports that the server is up
func HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pdfpress",
	})
}

// saveUpload copies the uploaded file to path
func saveUpload(file multipart.File, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return pdf.IOError("failed to create temp file", err)
	}

	_, err = out.ReadFrom(file)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		return pdf.IOError("failed to write temp file", err)
	}
	return nil
}

// downloadName derives the attachment name from the uploaded file name
func downloadName(uploaded string) string {
	return pdf.DefaultDestination(sanitizeFilename(uploaded))
}

func truncateError(msg string) string {
	if len(msg) > maxErrorMessageLength {
		return msg[:maxErrorMessageLength] + "..."
	}
	return msg
}

// ensureTempDir creates the temp directory if it doesn't exist
func ensureTempDir(tempDir string) error {
	return os.MkdirAll(tempDir, DefaultFilePermissions)
}

// sanitizeFilename removes path traversal attempts and dangerous characters
func sanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "..", "")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")
	filename = strings.TrimSpace(filepath.Base(filename))

	if filename == "" || filename == "." {
		filename = "document.pdf"
	}

	return filename
}

// validatePDFFile checks the upload size and the %PDF header
func validatePDFFile(file multipart.File, header *multipart.FileHeader, maxSize int64) error {
	if header.Size > maxSize {
		return fmt.Errorf("file size %d exceeds maximum allowed %d bytes", header.Size, maxSize)
	}

	buffer := make([]byte, 4)
	n, err := io.ReadFull(file, buffer)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("failed to read file header: %w", err)
	}

	if n < 4 || string(buffer) != "%PDF" {
		return fmt.Errorf("invalid PDF file: header does not match")
	}

	// Seek back to beginning for subsequent reads
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to reset file position: %w", err)
	}

	return nil
}
