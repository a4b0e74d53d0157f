package products

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/adirahmanto/craftline-backend/pkg/db"
	"github.com/adirahmanto/craftline-backend/pkg/db/models"
	pkgerrors "github.com/adirahmanto/craftline-backend/pkg/errors"
	"github.com/adirahmanto/craftline-backend/pkg/pagination"
)

type stubStore struct {
	uploads []string
	removed []string
	fail    bool
}

func (s *stubStore) Upload(ctx context.Context, key, contentType string, data []byte) error {
	if s.fail {
		return assert.AnError
	}
	s.uploads = append(s.uploads, key)
	return nil
}

func (s *stubStore) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

func (s *stubStore) Remove(ctx context.Context, keys ...string) error {
	if s.fail {
		return assert.AnError
	}
	s.removed = append(s.removed, keys...)
	return nil
}

func newTestService(t *testing.T) (Service, *gorm.DB, *stubStore) {
	t.Helper()

	conn := setupProductsTestDB(t)
	store := &stubStore{}
	svc, err := NewService(NewRepository(conn), db.NewFromGorm(conn), store)
	require.NoError(t, err)
	return svc, conn, store
}

func TestReplaceSizes_rejectsUnknownOptions(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	product := createTestProduct(t, conn, "Banner")
	sizes := createTestSizes(t, conn, 1)

	_, err := svc.ReplaceSizes(ctx, product.ID, []int{sizes[0].ID, 999})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	// nothing was written
	assert.Empty(t, activeSizeIDs(t, conn, product.ID))
}

func TestReplaceSizes_rejectsSoftDeletedOptions(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	product := createTestProduct(t, conn, "Banner")
	sizes := createTestSizes(t, conn, 1)
	require.NoError(t, conn.Delete(&models.Size{}, sizes[0].ID).Error)

	_, err := svc.ReplaceSizes(ctx, product.ID, []int{sizes[0].ID})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestReplaceSizes_dedupesDesiredSet(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	product := createTestProduct(t, conn, "Banner")
	sizes := createTestSizes(t, conn, 1)

	result, err := svc.ReplaceSizes(ctx, product.ID, []int{sizes[0].ID, sizes[0].ID})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, []int{sizes[0].ID}, activeSizeIDs(t, conn, product.ID))
}

func TestReplaceSizes_unknownProduct(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.ReplaceSizes(context.Background(), 42, nil)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteProduct_restoreRoundTrip(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	product := createTestProduct(t, conn, "Banner")

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))

	_, err := svc.GetProduct(ctx, product.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	page, err := svc.ListProducts(ctx, ListFilter{}, pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.EqualValues(t, 0, page.Total)

	restored, err := svc.RestoreProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, restored.ID)

	page, err = svc.ListProducts(ctx, ListFilter{}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, product.ID, page.Data[0].ID)
}

func TestDeleteProduct_alreadyDeletedIsNotFound(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	product := createTestProduct(t, conn, "Banner")
	require.NoError(t, svc.DeleteProduct(ctx, product.ID))

	err := svc.DeleteProduct(ctx, product.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestAddVariant_requiresProduct(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.AddVariant(context.Background(), 42, VariantInput{Name: "Glossy"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestAddVariant_uploadsImage(t *testing.T) {
	svc, conn, store := newTestService(t)
	ctx := context.Background()

	product := createTestProduct(t, conn, "Banner")
	variant, err := svc.AddVariant(ctx, product.ID, VariantInput{
		Name:          "Glossy",
		AdditionPrice: 500,
		Image:         &ImageUpload{Filename: "glossy.png", ContentType: "image/png", Data: []byte{1}},
	})
	require.NoError(t, err)
	require.NotNil(t, variant.PictureName)
	require.Len(t, store.uploads, 1)
	assert.Equal(t, *variant.PictureName, store.uploads[0])
	require.NotNil(t, variant.PictureURL)
	assert.Equal(t, "https://cdn.test/"+*variant.PictureName, *variant.PictureURL)
}

func TestUpdateProduct_replacingPictureRemovesOldObject(t *testing.T) {
	svc, conn, store := newTestService(t)
	ctx := context.Background()

	tick := time.UnixMilli(1719849600000)
	svc.(*service).now = func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}

	product := createTestProduct(t, conn, "Banner")
	first, err := svc.UpdateProduct(ctx, product.ID, UpdateProductInput{
		Picture: &ImageUpload{Filename: "v1.png", ContentType: "image/png", Data: []byte{1}},
	})
	require.NoError(t, err)
	require.NotNil(t, first.PictureName)
	assert.Empty(t, store.removed, "first upload has nothing to replace")

	second, err := svc.UpdateProduct(ctx, product.ID, UpdateProductInput{
		Picture: &ImageUpload{Filename: "v2.png", ContentType: "image/png", Data: []byte{2}},
	})
	require.NoError(t, err)
	require.NotNil(t, second.PictureName)
	assert.NotEqual(t, *first.PictureName, *second.PictureName)
	assert.Equal(t, []string{*first.PictureName}, store.removed)
}
