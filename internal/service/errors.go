package service

import (
	"errors"

	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// notFoundOr converts a store miss into a NotFound for resource and wraps any
// other failure as internal.
func notFoundOr(err error, resource string, id int64) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	if apperrors.ToDomainError(err).Code != apperrors.CodeInternal {
		return err
	}
	return apperrors.NewInternalError(err)
}
