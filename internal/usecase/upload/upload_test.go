package upload

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchline/asset-service/internal/dto"
	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/internal/infrastructure/scanner"
	"github.com/stitchline/asset-service/internal/policy"
	"github.com/stitchline/asset-service/pkg/logger"
	"github.com/stitchline/asset-service/pkg/types/errs"
)

type fakeStore struct {
	mu         sync.Mutex
	uploads    int
	deleted    []string
	failUpload bool
}

func (s *fakeStore) Upload(_ context.Context, bucket, key string, _ []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpload {
		return "", errors.New("connection refused")
	}
	s.uploads++
	return "http://s3.local/" + bucket + "/" + key, nil
}

func (s *fakeStore) Download(context.Context, string, string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeStore) Delete(_ context.Context, bucket, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, bucket+"/"+key)
	return nil
}

func (s *fakeStore) PresignGet(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	return "http://s3.local/" + bucket + "/" + key + "?signed", nil
}

type fakeCatalog struct {
	mu         sync.Mutex
	assets     map[uuid.UUID]*entity.ImageAsset
	failCreate bool
	failUpdate bool
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{assets: map[uuid.UUID]*entity.ImageAsset{}}
}

func (c *fakeCatalog) Create(_ context.Context, asset *entity.ImageAsset) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failCreate {
		return errors.New("connection refused")
	}
	cp := *asset
	c.assets[asset.ID] = &cp
	return nil
}

func (c *fakeCatalog) GetByID(_ context.Context, id uuid.UUID) (*entity.ImageAsset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.assets[id]
	if !ok {
		return nil, errs.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (c *fakeCatalog) List(context.Context, dto.ListFilters) ([]entity.ImageAsset, int64, error) {
	return nil, 0, nil
}

func (c *fakeCatalog) Update(_ context.Context, asset *entity.ImageAsset) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failUpdate {
		return errors.New("connection refused")
	}
	cp := *asset
	c.assets[asset.ID] = &cp
	return nil
}

func (c *fakeCatalog) SetStatus(_ context.Context, id uuid.UUID, status entity.AssetStatus) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a, ok := c.assets[id]; ok {
		a.Status = status
	}
	return nil
}

func (c *fakeCatalog) SoftDelete(_ context.Context, id uuid.UUID, at time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a, ok := c.assets[id]; ok {
		a.DeletedAt = &at
	}
	return nil
}

func (c *fakeCatalog) Restore(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a, ok := c.assets[id]; ok {
		a.DeletedAt = nil
	}
	return nil
}

func (c *fakeCatalog) HardDelete(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.assets, id)
	return nil
}

func (c *fakeCatalog) ListExpired(context.Context, entity.EntityType, time.Time, int) ([]entity.ImageAsset, error) {
	return nil, nil
}

type fakeAudit struct {
	mu      sync.Mutex
	records []entity.AuditRecord
}

func (a *fakeAudit) Record(_ context.Context, rec *entity.AuditRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, *rec)
	return nil
}

func (a *fakeAudit) byOutcome(outcome string) []entity.AuditRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []entity.AuditRecord
	for _, rec := range a.records {
		if rec.Outcome == outcome {
			out = append(out, rec)
		}
	}
	return out
}

type fakeResolver struct {
	exists bool
	err    error
	calls  int
}

func (r *fakeResolver) Exists(context.Context, entity.EntityType, string) (bool, error) {
	r.calls++
	return r.exists, r.err
}

type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error {
	return f(ctx)
}

type fakeTransformer struct{}

func (fakeTransformer) Apply(_ context.Context, data []byte, _ policy.ProcessingProfile) (*dto.TransformResult, []string) {
	return &dto.TransformResult{
		Data:        data,
		ContentType: "image/jpeg",
		Original:    entity.Dimensions{Width: 100, Height: 100},
		Processed:   entity.Dimensions{Width: 100, Height: 100},
	}, nil
}

type uploadFixture struct {
	uc       *UseCase
	store    *fakeStore
	catalog  *fakeCatalog
	audit    *fakeAudit
	resolver *fakeResolver
}

func newUploadFixture(t *testing.T) *uploadFixture {
	t.Helper()

	f := &uploadFixture{
		store:    &fakeStore{},
		catalog:  newFakeCatalog(),
		audit:    &fakeAudit{},
		resolver: &fakeResolver{exists: true},
	}

	policies := policy.NewRegistryWith(map[entity.EntityType]policy.StoragePolicy{
		entity.EntityCatalogItem: {
			Bucket:       "catalog-assets",
			PathTemplate: policy.DefaultPathTemplate,
			MaxSize:      1024,
			AllowedTypes: []string{"image/jpeg"},
		},
	})
	profiles := policy.NewProfileCatalogWith(
		policy.ProcessingProfile{Name: policy.ProfileOriginal},
		policy.ProcessingProfile{Name: "gallery", Width: 1200, Height: 1200, Quality: 85, Format: policy.FormatJPEG, Fit: policy.FitInside},
	)

	f.uc = New(
		f.store,
		f.catalog,
		f.audit,
		f.resolver,
		fakeTransactor{},
		fakeTransformer{},
		scanner.NewNoop(),
		nil,
		policies,
		profiles,
		false,
		15*time.Minute,
		logger.New("error"),
	)

	return f
}

func validUpload() (dto.UploadFile, dto.UploadRequest, dto.Actor) {
	file := dto.UploadFile{
		Data:        jpegBytes(512),
		Filename:    "shirt.jpg",
		ContentType: "image/jpeg",
	}
	req := dto.UploadRequest{
		EntityType: entity.EntityCatalogItem,
		EntityID:   "item-1",
		Purpose:    entity.PurposeGallery,
		Profile:    "gallery",
	}
	actor := dto.Actor{UserID: "user-1"}
	return file, req, actor
}

func TestUploadSuccess(t *testing.T) {
	f := newUploadFixture(t)
	file, req, actor := validUpload()

	res := f.uc.Upload(context.Background(), file, req, actor)

	require.True(t, res.Success, "error: %s (%s)", res.Error, res.ErrorCode)
	assert.NotEqual(t, uuid.Nil, res.AssetID)
	assert.NotEmpty(t, res.PublicURL)
	assert.NotEmpty(t, res.SecureURL, "private asset should get a presigned URL")
	assert.Equal(t, 1, f.store.uploads)

	stored, err := f.catalog.GetByID(context.Background(), res.AssetID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, stored.Status)
	assert.Equal(t, "catalog-assets", stored.Bucket)
	assert.NotEmpty(t, stored.StoragePath)
	assert.Equal(t, "shirt.jpg", stored.OriginalFilename)

	require.Len(t, f.audit.byOutcome(entity.OutcomeSuccess), 1)
	assert.Equal(t, entity.ActionUpload, f.audit.byOutcome(entity.OutcomeSuccess)[0].Action)
}

func TestUploadPublicAssetSkipsPresign(t *testing.T) {
	f := newUploadFixture(t)
	file, req, actor := validUpload()
	req.AccessLevel = entity.AccessPublic

	res := f.uc.Upload(context.Background(), file, req, actor)

	require.True(t, res.Success)
	assert.Empty(t, res.SecureURL)
}

func TestUploadTooLargeNeverTouchesStorage(t *testing.T) {
	f := newUploadFixture(t)
	file, req, actor := validUpload()
	file.Data = jpegBytes(2048)

	res := f.uc.Upload(context.Background(), file, req, actor)

	require.False(t, res.Success)
	assert.Equal(t, errs.CodeFileTooLarge, res.ErrorCode)
	assert.Zero(t, f.store.uploads)
	assert.Empty(t, f.catalog.assets)
	assert.Len(t, f.audit.byOutcome(entity.OutcomeFailure), 1)
}

func TestUploadUnknownEntityType(t *testing.T) {
	f := newUploadFixture(t)
	file, req, actor := validUpload()
	req.EntityType = entity.EntityManufacturer // no policy in the fixture

	res := f.uc.Upload(context.Background(), file, req, actor)

	require.False(t, res.Success)
	assert.Equal(t, errs.CodeValidationFailed, res.ErrorCode)
}

func TestUploadEntityNotFound(t *testing.T) {
	f := newUploadFixture(t)
	f.resolver.exists = false
	file, req, actor := validUpload()

	res := f.uc.Upload(context.Background(), file, req, actor)

	require.False(t, res.Success)
	assert.Equal(t, errs.CodeEntityNotFound, res.ErrorCode)
	assert.Zero(t, f.store.uploads)
}

func TestUploadSkipEntityCheck(t *testing.T) {
	f := newUploadFixture(t)
	f.resolver.exists = false
	file, req, actor := validUpload()
	req.SkipEntityCheck = true

	res := f.uc.Upload(context.Background(), file, req, actor)

	require.True(t, res.Success)
	assert.Zero(t, f.resolver.calls)
}

func TestUploadResolverError(t *testing.T) {
	f := newUploadFixture(t)
	f.resolver.err = errors.New("connection refused")
	file, req, actor := validUpload()

	res := f.uc.Upload(context.Background(), file, req, actor)

	require.False(t, res.Success)
	assert.Equal(t, errs.CodeDatabaseError, res.ErrorCode)
}

func TestUploadStorageFailureMarksRowFailed(t *testing.T) {
	f := newUploadFixture(t)
	f.store.failUpload = true
	file, req, actor := validUpload()

	res := f.uc.Upload(context.Background(), file, req, actor)

	require.False(t, res.Success)
	assert.Equal(t, errs.CodeStorageError, res.ErrorCode)

	require.Len(t, f.catalog.assets, 1)
	for _, a := range f.catalog.assets {
		assert.Equal(t, entity.StatusFailed, a.Status)
	}
}

func TestUploadFinalizeFailureCompensatesStorage(t *testing.T) {
	f := newUploadFixture(t)
	f.catalog.failUpdate = true
	file, req, actor := validUpload()

	res := f.uc.Upload(context.Background(), file, req, actor)

	require.False(t, res.Success)
	assert.Equal(t, errs.CodeDatabaseError, res.ErrorCode)
	assert.Len(t, f.store.deleted, 1, "orphaned object must be removed")

	for _, a := range f.catalog.assets {
		assert.Equal(t, entity.StatusFailed, a.Status)
	}
}

func TestUploadDefaultsToPrivateAccess(t *testing.T) {
	f := newUploadFixture(t)
	file, req, actor := validUpload()
	req.AccessLevel = ""

	res := f.uc.Upload(context.Background(), file, req, actor)

	require.True(t, res.Success)

	stored, err := f.catalog.GetByID(context.Background(), res.AssetID)
	require.NoError(t, err)
	assert.Equal(t, entity.AccessPrivate, stored.AccessLevel)
}

func TestUploadInvalidPurpose(t *testing.T) {
	f := newUploadFixture(t)
	file, req, actor := validUpload()
	req.Purpose = "selfie"

	res := f.uc.Upload(context.Background(), file, req, actor)

	require.False(t, res.Success)
	assert.Equal(t, errs.CodeValidationFailed, res.ErrorCode)
}

func TestUploadUnknownProfile(t *testing.T) {
	f := newUploadFixture(t)
	file, req, actor := validUpload()
	req.Profile = "daguerreotype"

	res := f.uc.Upload(context.Background(), file, req, actor)

	require.False(t, res.Success)
	assert.Equal(t, errs.CodeValidationFailed, res.ErrorCode)
}
