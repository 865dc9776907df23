package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/aradovic23/drinks-viewer/pkg/e"
)

// ViewerRoleHeader — заголовок, в котором клиент передаёт свою роль.
const ViewerRoleHeader = "X-Viewer-Role"

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrTitleTooShort):
		return http.StatusBadRequest, e.ErrTitleTooShort.Error()
	case errors.Is(err, e.ErrPriceRequired):
		return http.StatusBadRequest, e.ErrPriceRequired.Error()
	case errors.Is(err, e.ErrPriceMustBePositive):
		return http.StatusBadRequest, e.ErrPriceMustBePositive.Error()
	case errors.Is(err, e.ErrVolumeMustBePositive):
		return http.StatusBadRequest, e.ErrVolumeMustBePositive.Error()
	case errors.Is(err, e.ErrCategoryRequired):
		return http.StatusBadRequest, e.ErrCategoryRequired.Error()
	case errors.Is(err, e.ErrCategoryNameRequired):
		return http.StatusBadRequest, e.ErrCategoryNameRequired.Error()
	case errors.Is(err, e.ErrEmptySearchTerm):
		return http.StatusBadRequest, e.ErrEmptySearchTerm.Error()
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusBadRequest, e.ErrUnsupportedMediaType.Error()
	case errors.Is(err, e.ErrImageTooLarge):
		return http.StatusBadRequest, e.ErrImageTooLarge.Error()
	case errors.Is(err, e.ErrForbidden):
		return http.StatusForbidden, e.ErrForbidden.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrCategoryNotFound):
		return http.StatusNotFound, e.ErrCategoryNotFound.Error()
	case errors.Is(err, e.ErrAlreadyHidden):
		return http.StatusConflict, e.ErrAlreadyHidden.Error()
	case errors.Is(err, e.ErrAlreadyRecommended):
		return http.StatusConflict, e.ErrAlreadyRecommended.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// viewerRole извлекает роль из заголовка запроса.
// Отсутствующий или неизвестный заголовок означает анонимного пользователя.
func viewerRole(r *http.Request) domain.ViewerRole {
	return domain.ParseViewerRole(r.Header.Get(ViewerRoleHeader))
}

func decodeJSONBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return e.Wrap(err.Error(), e.ErrStatusBadRequest)
	}

	return nil
}
