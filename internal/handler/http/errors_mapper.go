package http

import (
	"errors"
	"net/http"

	"github.com/makarovdm/go-sync-suite/internal/service"
	"github.com/makarovdm/go-sync-suite/internal/store"
)

// errorStatusMap translates sentinel errors from the service and store
// layers into HTTP status codes. Anything not listed is a 500.
var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	store.ErrNoUserWasFound:            http.StatusUnauthorized,
	store.ErrLoginAlreadyExists:        http.StatusConflict,
	store.ErrRecordNotFound:            http.StatusNotFound,
}

func statusFromError(err error) int {
	for sentinel, code := range errorStatusMap {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return http.StatusInternalServerError
}
