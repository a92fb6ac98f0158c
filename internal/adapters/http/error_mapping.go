package httpadapter

import (
	"net/http"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case domain.IsKind(err, domain.ErrJobNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case domain.IsKind(err, domain.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
