package validation

import (
	"fmt"
	"mime/multipart"
	"regexp"
)

// MaxAttachmentSize is the per-file upload ceiling. Checked before any
// storage call so an oversized batch never reaches the backend.
const MaxAttachmentSize = 20 << 20 // 20 MiB

var unsafeKeyChars = regexp.MustCompile(`[^\w.\-() ]+`)

// ValidateAttachmentSize rejects files larger than MaxAttachmentSize.
func ValidateAttachmentSize(header *multipart.FileHeader) error {
	if header.Size > MaxAttachmentSize {
		return fmt.Errorf("file %q exceeds the %d MiB per-file limit", header.Filename, MaxAttachmentSize>>20)
	}
	return nil
}

// SanitizeFilename replaces any run of characters outside [\w.-() ] with a
// single underscore so the name is safe inside a storage key.
func SanitizeFilename(name string) string {
	return unsafeKeyChars.ReplaceAllString(name, "_")
}
