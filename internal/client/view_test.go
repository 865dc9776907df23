package client

import (
	"testing"

	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductView_EffectiveImage(t *testing.T) {
	withDescriptions := &domain.Category{ID: 1, SupportsDescription: true, DefaultImageURL: "default.jpg"}
	withoutDescriptions := &domain.Category{ID: 2, SupportsDescription: false, DefaultImageURL: "default.jpg"}

	tests := []struct {
		name     string
		product  domain.Product
		category *domain.Category
		want     string
	}{
		{
			name:     "own image in supporting category",
			product:  domain.Product{ImageURL: "own.jpg"},
			category: withDescriptions,
			want:     "own.jpg",
		},
		{
			name:     "fallback when image missing",
			product:  domain.Product{},
			category: withDescriptions,
			want:     "default.jpg",
		},
		{
			name:     "own image ignored without support",
			product:  domain.Product{ImageURL: "own.jpg"},
			category: withoutDescriptions,
			want:     "default.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewProductView(&tt.product, tt.category, domain.RoleUser)
			assert.Equal(t, tt.want, view.EffectiveImage)
		})
	}
}

func TestNewProductView_Badges(t *testing.T) {
	category := &domain.Category{ID: 1, SupportsType: true}

	product := &domain.Product{Volume: "0.5", Type: "Green", Tag: "new"}
	view := NewProductView(product, category, domain.RoleUser)

	assert.True(t, view.ShowVolumeBadge)
	assert.True(t, view.ShowTypeBadge)
	assert.True(t, view.ShowTagBadge)
}

func TestNewProductView_NoneSentinelSuppressesBadges(t *testing.T) {
	category := &domain.Category{ID: 1, SupportsType: true}

	product := &domain.Product{Volume: "none", Type: "none"}
	view := NewProductView(product, category, domain.RoleUser)

	assert.False(t, view.ShowVolumeBadge)
	assert.False(t, view.ShowTypeBadge)
	assert.False(t, view.ShowTagBadge)
}

func TestNewProductView_TypeBadgeRequiresCategorySupport(t *testing.T) {
	category := &domain.Category{ID: 1, SupportsType: false}

	product := &domain.Product{Type: "Green"}
	view := NewProductView(product, category, domain.RoleUser)

	assert.False(t, view.ShowTypeBadge)
}

func TestNewProductView_AdminActionsOrderAndState(t *testing.T) {
	category := &domain.Category{ID: 1}
	product := &domain.Product{ID: "a", IsHidden: true, IsRecommended: false}

	view := NewProductView(product, category, domain.RoleAdmin)

	require.Len(t, view.AdminActions, 4)
	assert.Equal(t, ActionUpdate, view.AdminActions[0].Kind)
	assert.Equal(t, ActionHide, view.AdminActions[1].Kind)
	assert.Equal(t, ActionRecommend, view.AdminActions[2].Kind)
	assert.Equal(t, ActionDelete, view.AdminActions[3].Kind)

	assert.True(t, view.AdminActions[0].Enabled)
	assert.False(t, view.AdminActions[1].Enabled, "hide is one-way")
	assert.True(t, view.AdminActions[2].Enabled)
	assert.True(t, view.AdminActions[3].Enabled)
}

func TestNewProductView_NoAdminActionsForViewers(t *testing.T) {
	category := &domain.Category{ID: 1}
	product := &domain.Product{ID: "a"}

	for _, role := range []domain.ViewerRole{domain.RoleAnonymous, domain.RoleUser} {
		view := NewProductView(product, category, role)
		assert.Empty(t, view.AdminActions)
	}
}

func TestNewProductView_MutedOnlyForAdmin(t *testing.T) {
	category := &domain.Category{ID: 1}
	product := &domain.Product{ID: "a", IsHidden: true}

	assert.True(t, NewProductView(product, category, domain.RoleAdmin).IsMutedVisually)
	assert.False(t, NewProductView(product, category, domain.RoleUser).IsMutedVisually)
}
