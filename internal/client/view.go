package client

import "github.com/aradovic23/drinks-viewer/internal/domain"

// AdminAction — доступное администратору действие над продуктом.
type AdminAction struct {
	Kind    ActionKind
	Enabled bool
}

// ProductView — производные атрибуты отображения продукта.
// Чистая функция от (продукт, категория, роль), без обращений к сети.
type ProductView struct {
	Product        domain.Product
	EffectiveImage string

	ShowVolumeBadge bool
	ShowTypeBadge   bool
	ShowTagBadge    bool

	// AdminActions заполняется только для администратора.
	// Порядок фиксирован: Edit, Hide, Recommend, Delete.
	AdminActions []AdminAction

	// IsMutedVisually — скрытый продукт в админском списке приглушается.
	// Для остальных ролей скрытые продукты отфильтрованы раньше.
	IsMutedVisually bool
}

// NewProductView выводит атрибуты отображения продукта.
func NewProductView(product *domain.Product, category *domain.Category, role domain.ViewerRole) *ProductView {
	view := &ProductView{
		Product:         *product,
		EffectiveImage:  effectiveImage(product, category),
		ShowVolumeBadge: product.HasVolume(),
		ShowTypeBadge:   category != nil && category.SupportsType && product.HasType(),
		ShowTagBadge:    product.Tag != "",
		IsMutedVisually: product.IsHidden && role.IsAdmin(),
	}

	if role.IsAdmin() {
		view.AdminActions = []AdminAction{
			{Kind: ActionUpdate, Enabled: true},
			{Kind: ActionHide, Enabled: !product.IsHidden},
			{Kind: ActionRecommend, Enabled: !product.IsRecommended},
			{Kind: ActionDelete, Enabled: true},
		}
	}

	return view
}

// effectiveImage выбирает картинку продукта: собственная картинка
// учитывается только в категориях с поддержкой описаний, иначе
// используется картинка категории по умолчанию.
func effectiveImage(product *domain.Product, category *domain.Category) string {
	if category == nil {
		return product.ImageURL
	}
	if category.SupportsDescription && product.ImageURL != "" {
		return product.ImageURL
	}
	return category.DefaultImageURL
}
