package kubehelper

import (
	"reflect"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
)

// Accessor knows how to read the identifier and the labels of a resource record of type T.
// All the indexing and filtering helpers are built on top of an Accessor, so they work for any
// resource kind without per-kind code.
type Accessor[T any] struct {
	// Kind is the resource kind, used when rendering filters (e.g. "Pod").
	Kind   string
	ID     func(T) string
	Labels func(T) map[string]string
}

var (
	Pods                   = ObjectAccessor[*corev1.Pod]("Pod")
	Services               = ObjectAccessor[*corev1.Service]("Service")
	ReplicationControllers = ObjectAccessor[*corev1.ReplicationController]("ReplicationController")
)

// ObjectAccessor returns an Accessor keyed by metadata.name.
// A nil object has an empty id and no labels.
func ObjectAccessor[T metav1.Object](kind string) Accessor[T] {
	return Accessor[T]{
		Kind: kind,
		ID: func(obj T) string {
			if isNil(obj) {
				return ""
			}
			return obj.GetName()
		},
		Labels: objectLabels[T],
	}
}

// NamespacedObjectAccessor returns an Accessor keyed by "namespace/name".
// Cluster-scoped objects (empty namespace) are keyed by name only.
func NamespacedObjectAccessor[T metav1.Object](kind string) Accessor[T] {
	return Accessor[T]{
		Kind: kind,
		ID: func(obj T) string {
			if isNil(obj) || obj.GetName() == "" {
				return ""
			}
			if obj.GetNamespace() == "" {
				return obj.GetName()
			}
			return types.NamespacedName{Namespace: obj.GetNamespace(), Name: obj.GetName()}.String()
		},
		Labels: objectLabels[T],
	}
}

func objectLabels[T metav1.Object](obj T) map[string]string {
	if isNil(obj) {
		return nil
	}
	return obj.GetLabels()
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Interface, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

// ItemPointers returns pointers to the elements of items, in order.
// Kubernetes list types hold their items by value, while metav1.Object is implemented by pointers.
func ItemPointers[T any](items []T) []*T {
	ret := make([]*T, len(items))
	for i := range items {
		ret[i] = &items[i]
	}
	return ret
}
