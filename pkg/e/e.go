package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями и конфигурацией
	ErrTransactionNotFound  = fmt.Errorf("transaction not found")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrTitleTooShort        = fmt.Errorf("title must have at least 3 characters")
	ErrPriceRequired        = fmt.Errorf("price is required")
	ErrPriceMustBePositive  = fmt.Errorf("price must be positive")
	ErrVolumeMustBePositive = fmt.Errorf("volume must be a positive number")
	ErrCategoryRequired     = fmt.Errorf("category must be selected")
	ErrCategoryNameRequired = fmt.Errorf("category name is required")
	ErrEmptySearchTerm      = fmt.Errorf("search term is empty")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrImageTooLarge        = fmt.Errorf("image is too large")

	// 403 Forbidden
	ErrForbidden = fmt.Errorf("admin role required")

	// 404 Not Found
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrCategoryNotFound = fmt.Errorf("category not found")

	// 409 Conflict — модерационные флаги выставляются только в одну сторону
	ErrAlreadyHidden      = fmt.Errorf("product is already hidden")
	ErrAlreadyRecommended = fmt.Errorf("product is already recommended")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	// Ошибки клиентского слоя
	ErrMutationInFlight     = fmt.Errorf("mutation is already in flight")
	ErrConfirmationRequired = fmt.Errorf("action requires confirmation")
	ErrClientClosed         = fmt.Errorf("client is closed")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
