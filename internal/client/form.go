package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/aradovic23/drinks-viewer/pkg/e"
	"github.com/shopspring/decimal"
)

// Field — поле формы продукта.
type Field string

const (
	FieldTitle       Field = "title"
	FieldPrice       Field = "price"
	FieldVolume      Field = "volume"
	FieldTag         Field = "tag"
	FieldType        Field = "type"
	FieldDescription Field = "description"
	FieldImageURL    Field = "imageUrl"
	FieldCategory    Field = "categoryId"
)

// MinTitleLength — минимальная длина заголовка продукта.
const MinTitleLength = 3

// FormSchema — набор видимых и обязательных полей формы для выбранной категории.
type FormSchema struct {
	Visible  []Field
	Required []Field
}

// Contains сообщает, видимо ли поле в схеме.
func (s FormSchema) Contains(f Field) bool {
	for _, v := range s.Visible {
		if v == f {
			return true
		}
	}
	return false
}

// FieldError — ошибка валидации конкретного поля.
type FieldError struct {
	Field Field
	Err   error
}

func (f *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Err)
}

func (f *FieldError) Unwrap() error {
	return f.Err
}

// FormBinder выводит схему формы из флагов возможностей категории
// и валидирует данные до отправки. Ошибки валидации блокируют
// отправку локально и никогда не доходят до сети.
type FormBinder struct{}

func NewFormBinder() *FormBinder {
	return &FormBinder{}
}

// Schema возвращает набор полей формы для категории.
// Видимость полей определяется исключительно флагами категории,
// а не наличием значений у продукта.
func (b *FormBinder) Schema(category *domain.Category) FormSchema {
	visible := []Field{FieldTitle, FieldPrice, FieldVolume, FieldTag, FieldCategory}

	if category != nil && category.SupportsType {
		visible = append(visible, FieldType)
	}
	if category != nil && category.SupportsDescription {
		visible = append(visible, FieldDescription, FieldImageURL)
	}

	return FormSchema{
		Visible:  visible,
		Required: []Field{FieldTitle, FieldPrice, FieldCategory},
	}
}

// Bind валидирует данные формы и возвращает очищенную копию:
// значения обрезаны, поля вне схемы категории убраны из payload.
func (b *FormBinder) Bind(payload *ProductPayload, category *domain.Category) (*ProductPayload, error) {
	if err := b.Validate(payload); err != nil {
		return nil, err
	}

	bound := *payload
	bound.Title = strings.TrimSpace(bound.Title)
	bound.Price = strings.TrimSpace(bound.Price)

	schema := b.Schema(category)
	if !schema.Contains(FieldType) {
		bound.Type = ""
	}
	if !schema.Contains(FieldDescription) {
		bound.Description = ""
		bound.ImageURL = ""
	}

	return &bound, nil
}

// Validate проверяет данные формы. Возвращает все найденные ошибки полей,
// объединённые в одну; errors.Is работает для каждого сентинеля.
func (b *FormBinder) Validate(payload *ProductPayload) error {
	var errs []error

	if len(strings.TrimSpace(payload.Title)) < MinTitleLength {
		errs = append(errs, &FieldError{Field: FieldTitle, Err: e.ErrTitleTooShort})
	}

	if err := validatePrice(payload.Price); err != nil {
		errs = append(errs, &FieldError{Field: FieldPrice, Err: err})
	}

	if err := validateVolume(payload.Volume); err != nil {
		errs = append(errs, &FieldError{Field: FieldVolume, Err: err})
	}

	if payload.CategoryID <= 0 {
		errs = append(errs, &FieldError{Field: FieldCategory, Err: e.ErrCategoryRequired})
	}

	return errors.Join(errs...)
}

// validatePrice требует непустую цену. Числовой разбор рекомендательный:
// цена хранится текстом, но явно отрицательные значения отклоняются.
func validatePrice(price string) error {
	price = strings.TrimSpace(price)
	if price == "" {
		return e.ErrPriceRequired
	}

	if d, err := decimal.NewFromString(price); err == nil && d.IsNegative() {
		return e.ErrPriceMustBePositive
	}

	return nil
}

// validateVolume принимает пустое значение и сентинель "none";
// заданный объём должен разбираться в положительное число.
func validateVolume(volume string) error {
	volume = strings.TrimSpace(volume)
	if volume == "" || volume == domain.NoneSentinel {
		return nil
	}

	d, err := decimal.NewFromString(volume)
	if err != nil || !d.IsPositive() {
		return e.ErrVolumeMustBePositive
	}

	return nil
}
