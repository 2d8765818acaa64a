package client

import (
	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// IsUnrecoverableError checks if an error is unrecoverable and should not be
// retried by a polling loop.
func IsUnrecoverableError(err error) bool {
	return apierrors.IsForbidden(err) ||
		apierrors.IsUnauthorized(err) ||
		apierrors.IsInvalid(err) ||
		apierrors.IsMethodNotSupported(err) ||
		apierrors.IsNotAcceptable(err)
}

// IsPermissionError checks if an error is an RBAC denial. Listing treats
// these as "nothing visible" rather than a hard failure.
func IsPermissionError(err error) bool {
	return apierrors.IsForbidden(err) || apierrors.IsUnauthorized(err)
}
