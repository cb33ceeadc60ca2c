package kubehelper

import (
	"strings"

	corev1 "k8s.io/api/core/v1"
)

// Index returns a map of the given items keyed by their id.
// Items with a blank id (empty or whitespace only) are skipped, and when two items share an id the
// later one wins.
func (a Accessor[T]) Index(items []T) map[string]T {
	ret := make(map[string]T, len(items))
	for _, item := range items {
		id := a.ID(item)
		if isBlank(id) {
			continue
		}
		ret[id] = item
	}
	return ret
}

// RemoveEmpty returns a new slice without the items whose id is the empty string.
// Unlike Index, whitespace-only ids are kept. The input slice is not modified.
func (a Accessor[T]) RemoveEmpty(items []T) []T {
	ret := make([]T, 0, len(items))
	for _, item := range items {
		if a.ID(item) == "" {
			continue
		}
		ret = append(ret, item)
	}
	return ret
}

// Select returns a new slice with the items matched by filter, preserving order.
func (a Accessor[T]) Select(items []T, filter Filter[T]) []T {
	ret := make([]T, 0, len(items))
	for _, item := range items {
		if filter.Matches(item) {
			ret = append(ret, item)
		}
	}
	return ret
}

// PodMap returns the pods of the list keyed by name. A nil list yields an empty map.
func PodMap(list *corev1.PodList) map[string]*corev1.Pod {
	if list == nil {
		return Pods.Index(nil)
	}
	return Pods.Index(ItemPointers(list.Items))
}

// ServiceMap returns the services of the list keyed by name. A nil list yields an empty map.
func ServiceMap(list *corev1.ServiceList) map[string]*corev1.Service {
	if list == nil {
		return Services.Index(nil)
	}
	return Services.Index(ItemPointers(list.Items))
}

// ReplicationControllerMap returns the replication controllers of the list keyed by name.
// A nil list yields an empty map.
func ReplicationControllerMap(list *corev1.ReplicationControllerList) map[string]*corev1.ReplicationController {
	if list == nil {
		return ReplicationControllers.Index(nil)
	}
	return ReplicationControllers.Index(ItemPointers(list.Items))
}

// RemoveEmptyPods returns a copy of list without the pods that have no name.
func RemoveEmptyPods(list *corev1.PodList) *corev1.PodList {
	if list == nil {
		return &corev1.PodList{}
	}
	ret := &corev1.PodList{
		TypeMeta: list.TypeMeta,
		ListMeta: *list.ListMeta.DeepCopy(),
		Items:    make([]corev1.Pod, 0, len(list.Items)),
	}
	for i := range list.Items {
		if list.Items[i].Name == "" {
			continue
		}
		ret.Items = append(ret.Items, *list.Items[i].DeepCopy())
	}
	return ret
}

// ContainerNameToPodID returns the pod id for the given container name.
// Container names and pod ids currently share the same namespace.
func ContainerNameToPodID(containerName string) string {
	return containerName
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
