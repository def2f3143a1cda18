package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/dogshelter/internal/common"
)

// statusMap picks the HTTP status for each error kind on one route. Zero
// entries fall through to 500.
type statusMap struct {
	validation   int
	unauthorized int
	forbidden    int
	notFound     int
}

func (m statusMap) status(err error) int {
	var code int
	switch {
	case errors.Is(err, common.ErrorValidation):
		code = m.validation
	case errors.Is(err, common.ErrorUnauthorized):
		code = m.unauthorized
	case errors.Is(err, common.ErrorForbidden):
		code = m.forbidden
	case errors.Is(err, common.ErrorNotFound):
		code = m.notFound
	}
	if code == 0 {
		return http.StatusInternalServerError
	}
	return code
}

var (
	registerUserStatus = statusMap{validation: http.StatusUnprocessableEntity}
	loginStatus        = statusMap{validation: http.StatusBadRequest, unauthorized: http.StatusUnauthorized}
	adoptStatus        = statusMap{validation: http.StatusBadRequest, forbidden: http.StatusForbidden, notFound: http.StatusNotFound}
	// removal answers ownership conflicts with 401
	removeStatus = statusMap{validation: http.StatusBadRequest, forbidden: http.StatusUnauthorized, notFound: http.StatusNotFound}
)

// registerDogStatus chooses by the failing field: a missing name is 404 and
// a missing owner 500.
func registerDogStatus(err error) int {
	var ve *common.ValidationError
	if !errors.As(err, &ve) {
		return http.StatusInternalServerError
	}
	switch ve.Field {
	case "name":
		return http.StatusNotFound
	case "reg_owner":
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
