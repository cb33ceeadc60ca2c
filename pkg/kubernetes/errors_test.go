package kubernetes

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

func TestClassifyAPIError(t *testing.T) {
	gr := schema.GroupResource{Resource: "pods"}
	tests := []struct {
		name     string
		err      error
		severity Severity
		message  string
		ok       bool
	}{
		{name: "nil error", err: nil},
		{name: "non API error", err: errors.New("boom")},
		{name: "not found", err: apierrors.NewNotFound(gr, "web"), severity: SeverityInfo, message: "Resource not found", ok: true},
		{name: "forbidden", err: apierrors.NewForbidden(gr, "web", errors.New("denied")), severity: SeverityError, message: "check RBAC permissions for pods list", ok: true},
		{name: "unauthorized", err: apierrors.NewUnauthorized("who"), severity: SeverityError, message: "Authentication failed", ok: true},
		{name: "too many requests", err: apierrors.NewTooManyRequests("slow down", 1), severity: SeverityWarning, message: "Rate limited", ok: true},
		{name: "wrapped timeout", err: fmt.Errorf("listing: %w", apierrors.NewTimeoutError("late", 1)), severity: SeverityError, message: "Request timeout", ok: true},
		{name: "other API status", err: apierrors.NewInternalError(errors.New("oops")), severity: SeverityError, message: "Operation failed", ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			severity, message, ok := ClassifyAPIError(tt.err, "pods list")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.severity, severity)
			assert.Contains(t, message, tt.message)
			if !tt.ok {
				assert.Empty(t, message)
			}
		})
	}
}
