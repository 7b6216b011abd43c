package upload

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/internal/policy"
)

// 8 random bytes keep the per-batch collision probability negligible even
// for identical original names uploaded in the same instant.
const filenameRandomBytes = 8

// GenerateFilename derives a collision-resistant stored filename of the
// shape {date}_{random-hex}[_{profile}]{ext}.
func GenerateFilename(originalName, profileName string, now time.Time) (string, error) {
	buf := make([]byte, filenameRandomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("upload - GenerateFilename - rand.Read: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))

	suffix := ""
	if profileName != "" && profileName != policy.ProfileOriginal {
		suffix = "_" + profileName
	}

	return fmt.Sprintf("%s_%s%s%s", now.Format("20060102"), hex.EncodeToString(buf), suffix, ext), nil
}

// BuildStoragePath substitutes entity identity, purpose and filename into
// the policy's path template. The result is the object key inside the
// policy's bucket.
func BuildStoragePath(template string, entityType entity.EntityType, entityID string, purpose entity.ImagePurpose, filename string) string {
	r := strings.NewReplacer(
		"{entity_type_plural}", entityType.Plural(),
		"{entity_type}", string(entityType),
		"{entity_id}", entityID,
		"{purpose}", string(purpose),
		"{filename}", filename,
	)

	return r.Replace(template)
}
