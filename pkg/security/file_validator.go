package security

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// UploadPolicy restricts what an upload endpoint accepts.
type UploadPolicy struct {
	Name       string          // used in error messages, e.g. "CV"
	Extensions map[string]bool // lowercase, without the dot
	MaxBytes   int64
	// SniffMIME lists content types accepted from content detection. Extensions
	// missing from magicBytes (e.g. heic) are only checked against this list.
	SniffMIME map[string]bool
}

// Magic byte signatures keyed by lowercase extension
var magicBytes = map[string][][]byte{
	"jpg":  {{0xFF, 0xD8, 0xFF}},
	"jpeg": {{0xFF, 0xD8, 0xFF}},
	"png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	"gif":  {{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}, {0x47, 0x49, 0x46, 0x38, 0x39, 0x61}}, // GIF87a & GIF89a
	"webp": {{0x52, 0x49, 0x46, 0x46}},                                                   // RIFF header
	"pdf":  {{0x25, 0x50, 0x44, 0x46}},                                                   // %PDF
}

// CVPolicy accepts PDF documents up to maxMB megabytes.
func CVPolicy(maxMB int) UploadPolicy {
	return UploadPolicy{
		Name:       "CV",
		Extensions: map[string]bool{"pdf": true},
		MaxBytes:   int64(maxMB) * 1024 * 1024,
		SniffMIME:  map[string]bool{"application/pdf": true},
	}
}

// ProfileImagePolicy accepts common raster images up to maxMB megabytes.
func ProfileImagePolicy(maxMB int) UploadPolicy {
	return UploadPolicy{
		Name:       "Profile picture",
		Extensions: map[string]bool{"jpg": true, "jpeg": true, "png": true, "gif": true, "heic": true, "webp": true},
		MaxBytes:   int64(maxMB) * 1024 * 1024,
		SniffMIME: map[string]bool{
			"image/jpeg": true,
			"image/png":  true,
			"image/gif":  true,
			"image/webp": true,
			"image/heic": true,
			"image/heif": true,
		},
	}
}

// FileValidationResult is returned for accepted uploads.
type FileValidationResult struct {
	Extension    string // lowercase, without the dot
	DetectedMIME string
}

// Validate checks, in order: extension whitelist, size ceiling, magic bytes, sniffed MIME type.
// The returned error message is safe to show to clients.
func (p UploadPolicy) Validate(filename string, data []byte) (*FileValidationResult, error) {
	ext := Extension(filename)
	if ext == "" || !p.Extensions[ext] {
		return nil, fmt.Errorf("%s must be one of: %s", p.Name, strings.Join(p.allowedList(), ", "))
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s file is empty", p.Name)
	}
	if p.MaxBytes > 0 && int64(len(data)) > p.MaxBytes {
		return nil, fmt.Errorf("%s file too large (max %d MB)", p.Name, p.MaxBytes/(1024*1024))
	}
	if sigs, ok := magicBytes[ext]; ok && !hasPrefix(data, sigs) {
		return nil, fmt.Errorf("%s content does not match its .%s extension", p.Name, ext)
	}

	detected := mimetype.Detect(data)
	if !p.sniffAllowed(detected) {
		return nil, fmt.Errorf("%s content type %s is not allowed", p.Name, detected.String())
	}

	return &FileValidationResult{Extension: ext, DetectedMIME: detected.String()}, nil
}

func (p UploadPolicy) sniffAllowed(detected *mimetype.MIME) bool {
	for m := detected; m != nil; m = m.Parent() {
		if p.SniffMIME[m.String()] {
			return true
		}
	}
	return false
}

func (p UploadPolicy) allowedList() []string {
	out := make([]string, 0, len(p.Extensions))
	for ext := range p.Extensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Extension returns the lowercase extension of filename without the dot.
func Extension(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

func hasPrefix(data []byte, signatures [][]byte) bool {
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}
