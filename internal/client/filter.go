package client

import (
	"strings"

	"github.com/aradovic23/drinks-viewer/internal/domain"
)

// AllCategories — значение SelectedCategoryID, означающее «все категории».
const AllCategories int64 = 0

// FilterState — эфемерное состояние фильтра списка продуктов.
type FilterState struct {
	SelectedCategoryID int64
	SearchTerm         string
}

// ApplyFilter выводит отфильтрованный список продуктов из снимка.
// Порядок применения фиксирован: сначала фильтр по категории, затем
// текстовый поиск по заголовку без учёта регистра. Относительный порядок
// входного списка сохраняется, пересортировки нет. Функция чистая.
func ApplyFilter(products []domain.Product, state FilterState) []domain.Product {
	result := make([]domain.Product, 0, len(products))

	term := strings.ToLower(strings.TrimSpace(state.SearchTerm))

	for i := range products {
		if state.SelectedCategoryID != AllCategories && products[i].CategoryID != state.SelectedCategoryID {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(products[i].Title), term) {
			continue
		}
		result = append(result, products[i])
	}

	return result
}
