package entity

// EntityType identifies the business object an asset is attached to.
// It selects the storage policy that governs the upload.
type EntityType string

const (
	EntityCatalogItem    EntityType = "catalog_item"
	EntityCustomer       EntityType = "customer"
	EntityUserProfile    EntityType = "user_profile"
	EntityOrganization   EntityType = "organization"
	EntityOrder          EntityType = "order"
	EntityDesignTask     EntityType = "design_task"
	EntityProductionTask EntityType = "production_task"
	EntityProductLibrary EntityType = "product_library"
	EntityManufacturer   EntityType = "manufacturer"
)

// EntityTypes lists every supported entity type.
func EntityTypes() []EntityType {
	return []EntityType{
		EntityCatalogItem,
		EntityCustomer,
		EntityUserProfile,
		EntityOrganization,
		EntityOrder,
		EntityDesignTask,
		EntityProductionTask,
		EntityProductLibrary,
		EntityManufacturer,
	}
}

var entityPlurals = map[EntityType]string{
	EntityCatalogItem:    "catalog_items",
	EntityCustomer:       "customers",
	EntityUserProfile:    "user_profiles",
	EntityOrganization:   "organizations",
	EntityOrder:          "orders",
	EntityDesignTask:     "design_tasks",
	EntityProductionTask: "production_tasks",
	EntityProductLibrary: "product_library",
	EntityManufacturer:   "manufacturers",
}

// Valid -.
func (t EntityType) Valid() bool {
	_, ok := entityPlurals[t]
	return ok
}

// Plural is the path segment used in storage path templates.
func (t EntityType) Plural() string {
	if p, ok := entityPlurals[t]; ok {
		return p
	}
	return string(t)
}

// ImagePurpose describes the role an asset plays for its entity.
type ImagePurpose string

const (
	PurposeProfile          ImagePurpose = "profile"
	PurposeGallery          ImagePurpose = "gallery"
	PurposeProduction       ImagePurpose = "production"
	PurposeDesign           ImagePurpose = "design"
	PurposeLogo             ImagePurpose = "logo"
	PurposeThumbnail        ImagePurpose = "thumbnail"
	PurposeHero             ImagePurpose = "hero"
	PurposeAttachment       ImagePurpose = "attachment"
	PurposeMockup           ImagePurpose = "mockup"
	PurposeProductPhoto     ImagePurpose = "product_photo"
	PurposeDesignProof      ImagePurpose = "design_proof"
	PurposeSizeChart        ImagePurpose = "size_chart"
	PurposeColorReference   ImagePurpose = "color_reference"
	PurposeTechnicalDrawing ImagePurpose = "technical_drawing"
)

var purposes = map[ImagePurpose]struct{}{
	PurposeProfile: {}, PurposeGallery: {}, PurposeProduction: {},
	PurposeDesign: {}, PurposeLogo: {}, PurposeThumbnail: {},
	PurposeHero: {}, PurposeAttachment: {}, PurposeMockup: {},
	PurposeProductPhoto: {}, PurposeDesignProof: {}, PurposeSizeChart: {},
	PurposeColorReference: {}, PurposeTechnicalDrawing: {},
}

// Valid -.
func (p ImagePurpose) Valid() bool {
	_, ok := purposes[p]
	return ok
}

// AccessLevel controls who may resolve an asset's URL.
type AccessLevel string

const (
	AccessPublic     AccessLevel = "public"
	AccessPrivate    AccessLevel = "private"
	AccessRestricted AccessLevel = "restricted"
)

// Valid -.
func (a AccessLevel) Valid() bool {
	switch a {
	case AccessPublic, AccessPrivate, AccessRestricted:
		return true
	}
	return false
}
