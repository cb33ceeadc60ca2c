package kubernetes

import (
	"errors"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/klog/v2"
)

// ErrInvalidArgument is returned when a caller supplied value cannot be used.
var ErrInvalidArgument = errors.New("invalid argument")

// Severity of a classified API error.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// ClassifyAPIError maps a Kubernetes API error to a severity and a human-readable message.
// Returns false for nil errors or non-Kubernetes errors.
func ClassifyAPIError(err error, operation string) (Severity, string, bool) {
	if err == nil {
		return 0, "", false
	}

	if apierrors.IsNotFound(err) {
		return SeverityInfo, "Resource not found - it may not exist or may have been deleted", true
	} else if apierrors.IsForbidden(err) {
		return SeverityError, "Permission denied - check RBAC permissions for " + operation, true
	} else if apierrors.IsUnauthorized(err) {
		return SeverityError, "Authentication failed - check cluster credentials", true
	} else if apierrors.IsBadRequest(err) {
		return SeverityError, "Invalid request - check parameters", true
	} else if apierrors.IsTimeout(err) {
		return SeverityError, "Request timeout - cluster may be slow or overloaded", true
	} else if apierrors.IsServerTimeout(err) {
		return SeverityError, "Server timeout - cluster may be slow or overloaded", true
	} else if apierrors.IsServiceUnavailable(err) {
		return SeverityError, "Service unavailable - cluster may be unreachable", true
	} else if apierrors.IsTooManyRequests(err) {
		return SeverityWarning, "Rate limited - too many requests to the cluster", true
	} else {
		var apiStatus apierrors.APIStatus
		if errors.As(err, &apiStatus) {
			return SeverityError, "Operation failed - cluster may be unreachable or experiencing issues", true
		}
	}
	return 0, "", false
}

// LogAPIError logs a classified Kubernetes API error, non-API errors are ignored.
func LogAPIError(err error, operation string) {
	severity, message, ok := ClassifyAPIError(err, operation)
	if !ok {
		return
	}
	switch severity {
	case SeverityInfo:
		klog.V(1).Infof("%s: %s", operation, message)
	case SeverityWarning:
		klog.Warningf("%s: %s", operation, message)
	default:
		klog.Errorf("%s: %s: %v", operation, message, err)
	}
}
