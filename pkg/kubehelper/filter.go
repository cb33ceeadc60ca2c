package kubehelper

import (
	"strings"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/labels"
)

// Filter matches resource records against a free text, either by id or by serialized labels.
// The zero value matches everything.
type Filter[T any] struct {
	text     string
	accessor Accessor[T]
}

// Filter creates a Filter for the given text. A blank text matches every record.
func (a Accessor[T]) Filter(text string) Filter[T] {
	return Filter[T]{text: text, accessor: a}
}

// NewPodFilter creates a Filter on pods using the given text.
func NewPodFilter(text string) Filter[*corev1.Pod] {
	return Pods.Filter(text)
}

// NewServiceFilter creates a Filter on services using the given text.
func NewServiceFilter(text string) Filter[*corev1.Service] {
	return Services.Filter(text)
}

// NewReplicationControllerFilter creates a Filter on replication controllers using the given text.
func NewReplicationControllerFilter(text string) Filter[*corev1.ReplicationController] {
	return ReplicationControllers.Filter(text)
}

func (f Filter[T]) Matches(item T) bool {
	if isBlank(f.text) || f.accessor.ID == nil {
		return true
	}
	var lbls map[string]string
	if f.accessor.Labels != nil {
		lbls = f.accessor.Labels(item)
	}
	return MatchesIDOrLabels(f.text, f.accessor.ID(item), lbls)
}

func (f Filter[T]) String() string {
	if isBlank(f.text) {
		return "TrueFilter"
	}
	return f.accessor.Kind + "Filter(" + f.text + ")"
}

// MatchesIDOrLabels returns true if text is contained in either the id or the serialized labels.
// A blank text always matches.
func MatchesIDOrLabels(text, id string, lbls map[string]string) bool {
	if isBlank(text) {
		return true
	}
	return strings.Contains(LabelsString(lbls), text) || strings.Contains(id, text)
}

// LabelsString returns the labels as "k1=v1,k2=v2", entries sorted lexically (labels.Set format).
// Keys and values are not escaped, so the result is ambiguous when they contain '=' or ','.
func LabelsString(lbls map[string]string) string {
	if len(lbls) == 0 {
		return ""
	}
	return labels.Set(lbls).String()
}
