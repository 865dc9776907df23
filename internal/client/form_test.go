package client

import (
	"testing"

	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/aradovic23/drinks-viewer/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() *ProductPayload {
	return &ProductPayload{
		Title:      "Green Tea",
		Price:      "150",
		CategoryID: 1,
	}
}

func TestFormBinder_Schema_TypeHiddenWithoutSupport(t *testing.T) {
	binder := NewFormBinder()
	category := &domain.Category{ID: 1, Name: "soda", SupportsType: false}

	schema := binder.Schema(category)

	assert.False(t, schema.Contains(FieldType))
	assert.False(t, schema.Contains(FieldDescription))
	assert.False(t, schema.Contains(FieldImageURL))
}

func TestFormBinder_Schema_FullCapabilities(t *testing.T) {
	binder := NewFormBinder()
	category := &domain.Category{ID: 1, Name: "tea", SupportsType: true, SupportsDescription: true}

	schema := binder.Schema(category)

	assert.True(t, schema.Contains(FieldType))
	assert.True(t, schema.Contains(FieldDescription))
	assert.True(t, schema.Contains(FieldImageURL))
	assert.ElementsMatch(t, []Field{FieldTitle, FieldPrice, FieldCategory}, schema.Required)
}

func TestFormBinder_Bind_StripsUnsupportedFields(t *testing.T) {
	binder := NewFormBinder()
	category := &domain.Category{ID: 1, Name: "soda", SupportsType: false, SupportsDescription: false}

	payload := validPayload()
	payload.Type = "Cola"
	payload.Description = "fizzy"
	payload.ImageURL = "http://example.com/img.jpg"

	bound, err := binder.Bind(payload, category)

	require.NoError(t, err)
	assert.Empty(t, bound.Type)
	assert.Empty(t, bound.Description)
	assert.Empty(t, bound.ImageURL)
	// Исходный payload не меняется.
	assert.Equal(t, "Cola", payload.Type)
}

func TestFormBinder_Validate_TitleTooShort(t *testing.T) {
	binder := NewFormBinder()

	payload := validPayload()
	payload.Title = "  ab "

	err := binder.Validate(payload)

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrTitleTooShort)
}

func TestFormBinder_Validate_PriceRequired(t *testing.T) {
	binder := NewFormBinder()

	payload := validPayload()
	payload.Price = "   "

	err := binder.Validate(payload)

	assert.ErrorIs(t, err, e.ErrPriceRequired)
}

func TestFormBinder_Validate_NegativePriceRejected(t *testing.T) {
	binder := NewFormBinder()

	payload := validPayload()
	payload.Price = "-5"

	assert.ErrorIs(t, binder.Validate(payload), e.ErrPriceMustBePositive)
}

func TestFormBinder_Validate_NonNumericPriceAllowed(t *testing.T) {
	// Цена хранится текстом, числовой разбор рекомендательный.
	binder := NewFormBinder()

	payload := validPayload()
	payload.Price = "150/200"

	assert.NoError(t, binder.Validate(payload))
}

func TestFormBinder_Validate_Volume(t *testing.T) {
	binder := NewFormBinder()

	tests := []struct {
		name    string
		volume  string
		wantErr bool
	}{
		{name: "empty is optional", volume: "", wantErr: false},
		{name: "none sentinel accepted", volume: "none", wantErr: false},
		{name: "positive number", volume: "0.33", wantErr: false},
		{name: "zero rejected", volume: "0", wantErr: true},
		{name: "negative rejected", volume: "-1", wantErr: true},
		{name: "garbage rejected", volume: "large", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayload()
			payload.Volume = tt.volume

			err := binder.Validate(payload)
			if tt.wantErr {
				assert.ErrorIs(t, err, e.ErrVolumeMustBePositive)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormBinder_Validate_CategoryRequired(t *testing.T) {
	binder := NewFormBinder()

	payload := validPayload()
	payload.CategoryID = 0

	assert.ErrorIs(t, binder.Validate(payload), e.ErrCategoryRequired)
}

func TestFormBinder_Validate_CollectsAllErrors(t *testing.T) {
	binder := NewFormBinder()

	err := binder.Validate(&ProductPayload{})

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrTitleTooShort)
	assert.ErrorIs(t, err, e.ErrPriceRequired)
	assert.ErrorIs(t, err, e.ErrCategoryRequired)
}
