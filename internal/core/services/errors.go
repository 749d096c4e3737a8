package services

import (
	"errors"

	"github.com/srgjo27/carpool_booking/internal/core/domain"
	"github.com/srgjo27/carpool_booking/internal/core/ports"
)

// translate keeps domain errors as they are and turns everything coming out
// of the store into a domain error the caller can map.
func translate(err error, resource string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ports.ErrVersionConflict):
		return domain.ConflictError{Resource: resource, Msg: "modified concurrently, retry", Err: err}
	case domain.IsValidation(err), domain.IsNotFound(err), domain.IsAuthorization(err),
		domain.IsConflict(err), domain.IsInternal(err):
		return err
	default:
		return domain.InternalError{Msg: "storage failure", Err: err}
	}
}
