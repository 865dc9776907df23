package domain

import "time"

// NoneSentinel — историческое значение "none" в полях volume/type,
// которое означает отсутствие значения и не должно отображаться.
const NoneSentinel = "none"

// Product описывает продукт каталога.
type Product struct {
	ID            string // uuid
	Title         string
	Price         string // Цена хранится текстом, числовой разбор — рекомендательный
	Volume        string
	Tag           string
	Type          string
	Description   string
	ImageURL      string
	CategoryID    int64
	IsHidden      bool
	IsRecommended bool
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func NewProduct(title, price string, categoryID int64) *Product {
	return &Product{
		Title:      title,
		Price:      price,
		CategoryID: categoryID,
	}
}

// HasVolume сообщает, задан ли у продукта объём (с учётом сентинеля "none").
func (p *Product) HasVolume() bool {
	return p.Volume != "" && p.Volume != NoneSentinel
}

// HasType сообщает, задан ли у продукта тип (с учётом сентинеля "none").
func (p *Product) HasType() bool {
	return p.Type != "" && p.Type != NoneSentinel
}
