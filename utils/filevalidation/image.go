package filevalidation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSizeMB bounds profile picture uploads
const MaxImageSizeMB = 16

var allowedImageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
}

// ValidateImage checks extension, size and the sniffed content type. The sniffed type must
// match the extension so a renamed file is rejected.
func ValidateImage(filename string, content []byte) *ValidationResult {
	result := &ValidationResult{FileSize: int64(len(content))}

	ext := strings.ToLower(filepath.Ext(filename))
	expected, ok := allowedImageTypes[ext]
	if !ok {
		result.Error = "Only png, jpg, jpeg and gif images are allowed"
		return result
	}

	if len(content) == 0 {
		result.Error = "File is empty"
		return result
	}
	if result.FileSize > MaxImageSizeMB*1024*1024 {
		result.Error = fmt.Sprintf("File size exceeds maximum allowed size of %dMB", MaxImageSizeMB)
		return result
	}

	detected := mimetype.Detect(content)
	if !detected.Is(expected) {
		result.Error = fmt.Sprintf("File content is %s, expected %s", detected.String(), expected)
		return result
	}

	result.ContentType = expected
	result.Valid = true
	return result
}
