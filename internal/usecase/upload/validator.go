package upload

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/stitchline/asset-service/internal/dto"
	"github.com/stitchline/asset-service/internal/policy"
	"github.com/stitchline/asset-service/pkg/types/errs"
)

// Image buffers below this size cannot be a real image of any claimed
// format; the signature check treats them as a hard failure.
const minPlausibleImageSize = 100

// extensions rejected regardless of policy
var deniedExtensions = map[string]bool{
	".exe": true, ".dll": true, ".bat": true, ".cmd": true,
	".sh": true, ".bash": true, ".ps1": true, ".msi": true,
	".com": true, ".scr": true, ".jar": true, ".app": true,
}

var magicSignatures = map[string][][]byte{
	"image/jpeg":      {{0xFF, 0xD8, 0xFF}},
	"image/jpg":       {{0xFF, 0xD8, 0xFF}},
	"image/png":       {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	"image/gif":       {[]byte("GIF87a"), []byte("GIF89a")},
	"image/webp":      {[]byte("RIFF")},
	"application/pdf": {[]byte("%PDF")},
}

// ValidateFile checks a candidate file against the entity's storage
// policy. It is pure and deterministic: the same input always yields the
// same verdict.
//
// Checks run in order: size cap, declared content type, filename and
// extension safety, then a magic-byte signature check for image types.
// A signature mismatch is a warning unless strictSignature is set or the
// buffer is implausibly small.
func ValidateFile(data []byte, filename, contentType string, pol policy.StoragePolicy, strictSignature bool) dto.Verdict {
	v := dto.Verdict{Valid: true}

	fail := func(code errs.Code, msg string) {
		v.Valid = false
		v.Errors = append(v.Errors, msg)
		if v.Code == "" {
			v.Code = code
		}
	}

	// (a) size
	if int64(len(data)) > pol.MaxSize {
		fail(errs.CodeFileTooLarge, fmt.Sprintf("file size %d exceeds limit %d", len(data), pol.MaxSize))
	}
	if len(data) == 0 {
		fail(errs.CodeValidationFailed, "file is empty")
	}

	// (b) declared content type
	if !pol.AllowsType(contentType) {
		fail(errs.CodeInvalidFileType, fmt.Sprintf("content type %q is not allowed", contentType))
	}

	// (c) filename safety
	if strings.TrimSpace(filename) == "" {
		fail(errs.CodeValidationFailed, "filename is empty")
	} else {
		ext := strings.ToLower(filepath.Ext(filename))
		if deniedExtensions[ext] {
			fail(errs.CodeValidationFailed, fmt.Sprintf("extension %q is not allowed", ext))
		}
	}

	// (d) binary signature for image types
	sigs, known := magicSignatures[strings.ToLower(contentType)]
	if known && strings.HasPrefix(strings.ToLower(contentType), "image/") {
		if len(data) < minPlausibleImageSize {
			fail(errs.CodeValidationFailed, fmt.Sprintf("buffer of %d bytes is too small to be a %s", len(data), contentType))
		} else if !matchesSignature(data, sigs) {
			msg := fmt.Sprintf("binary signature does not match declared type %s", contentType)
			if strictSignature {
				fail(errs.CodeInvalidFileType, msg)
			} else {
				v.Warnings = append(v.Warnings, msg)
			}
		}
	}

	return v
}

func matchesSignature(data []byte, sigs [][]byte) bool {
	for _, sig := range sigs {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}
