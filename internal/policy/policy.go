// Package policy holds the per-entity storage rules and the named
// processing presets. Both tables are plain values constructed at startup
// and passed to the components that need them.
package policy

import (
	"fmt"
	"strings"

	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/pkg/types/errs"
)

const (
	mb = int64(1024 * 1024)

	// DefaultPathTemplate is the storage key shape shared by every policy.
	DefaultPathTemplate = "{entity_type_plural}/{entity_id}/{purpose}/{filename}"
)

// StoragePolicy governs where and how assets of one entity type are stored.
type StoragePolicy struct {
	Bucket             string
	PathTemplate       string
	MaxSize            int64
	AllowedTypes       []string
	CompressionEnabled bool
	RetentionDays      int
}

// AllowsType reports whether the declared content type is permitted.
func (p StoragePolicy) AllowsType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	for _, allowed := range p.AllowedTypes {
		if ct == allowed {
			return true
		}
	}
	return false
}

// Registry maps entity types to their storage policies.
type Registry struct {
	policies map[entity.EntityType]StoragePolicy
}

var imageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"}

func withPDF(types []string) []string {
	return append(append([]string{}, types...), "application/pdf")
}

// NewRegistry builds the production policy table.
func NewRegistry() *Registry {
	return &Registry{policies: map[entity.EntityType]StoragePolicy{
		entity.EntityCatalogItem: {
			Bucket:             "catalog-assets",
			PathTemplate:       DefaultPathTemplate,
			MaxSize:            10 * mb,
			AllowedTypes:       imageTypes,
			CompressionEnabled: true,
			RetentionDays:      0,
		},
		entity.EntityCustomer: {
			Bucket:             "customer-assets",
			PathTemplate:       DefaultPathTemplate,
			MaxSize:            5 * mb,
			AllowedTypes:       imageTypes,
			CompressionEnabled: true,
			RetentionDays:      365,
		},
		entity.EntityUserProfile: {
			Bucket:             "user-assets",
			PathTemplate:       DefaultPathTemplate,
			MaxSize:            2 * mb,
			AllowedTypes:       imageTypes,
			CompressionEnabled: true,
			RetentionDays:      0,
		},
		entity.EntityOrganization: {
			Bucket:             "org-assets",
			PathTemplate:       DefaultPathTemplate,
			MaxSize:            5 * mb,
			AllowedTypes:       imageTypes,
			CompressionEnabled: true,
			RetentionDays:      0,
		},
		entity.EntityOrder: {
			Bucket:             "order-assets",
			PathTemplate:       DefaultPathTemplate,
			MaxSize:            25 * mb,
			AllowedTypes:       withPDF(imageTypes),
			CompressionEnabled: false,
			RetentionDays:      730,
		},
		entity.EntityDesignTask: {
			Bucket:             "design-assets",
			PathTemplate:       DefaultPathTemplate,
			MaxSize:            50 * mb,
			AllowedTypes:       withPDF(imageTypes),
			CompressionEnabled: false,
			RetentionDays:      365,
		},
		entity.EntityProductionTask: {
			Bucket:             "production-assets",
			PathTemplate:       DefaultPathTemplate,
			MaxSize:            50 * mb,
			AllowedTypes:       withPDF(imageTypes),
			CompressionEnabled: false,
			RetentionDays:      365,
		},
		entity.EntityProductLibrary: {
			Bucket:             "product-library",
			PathTemplate:       DefaultPathTemplate,
			MaxSize:            10 * mb,
			AllowedTypes:       imageTypes,
			CompressionEnabled: true,
			RetentionDays:      0,
		},
		entity.EntityManufacturer: {
			Bucket:             "manufacturer-assets",
			PathTemplate:       DefaultPathTemplate,
			MaxSize:            10 * mb,
			AllowedTypes:       withPDF(imageTypes),
			CompressionEnabled: true,
			RetentionDays:      0,
		},
	}}
}

// NewRegistryWith builds a registry from an explicit table, for tests and
// alternate deployments.
func NewRegistryWith(policies map[entity.EntityType]StoragePolicy) *Registry {
	return &Registry{policies: policies}
}

// ForEntity returns the policy for an entity type.
func (r *Registry) ForEntity(t entity.EntityType) (StoragePolicy, error) {
	p, ok := r.policies[t]
	if !ok {
		return StoragePolicy{}, fmt.Errorf("policy - Registry - ForEntity %q: %w", t, errs.ErrUnknownEntity)
	}
	return p, nil
}

// EntityTypes lists every entity type the registry covers.
func (r *Registry) EntityTypes() []entity.EntityType {
	types := make([]entity.EntityType, 0, len(r.policies))
	for t := range r.policies {
		types = append(types, t)
	}
	return types
}
