package kubernetes

import (
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/client-go/kubernetes"
)

// Kubernetes lists resources from a single cluster.
type Kubernetes struct {
	kubernetes.Interface
	namespace string
}

// NewKubernetes wraps the given clientset. namespace is the default namespace used when none is
// requested, "default" if empty.
func NewKubernetes(clientset kubernetes.Interface, namespace string) *Kubernetes {
	return &Kubernetes{Interface: clientset, namespace: namespace}
}

// NamespaceOrDefault returns the given namespace, or the configured default if empty.
func (k *Kubernetes) NamespaceOrDefault(namespace string) string {
	if namespace == "" {
		if k.namespace != "" {
			return k.namespace
		}
		return "default"
	}
	return namespace
}

// ListOptions narrows down list operations.
type ListOptions struct {
	Namespace string
	// AllNamespaces lists across every namespace, Namespace is ignored.
	AllNamespaces bool
	// LabelSelector is evaluated by the API server (e.g. "app=web,tier!=db").
	LabelSelector string
}

func (k *Kubernetes) listNamespace(options ListOptions) string {
	if options.AllNamespaces {
		return ""
	}
	return k.NamespaceOrDefault(options.Namespace)
}

// ParseLabelSelector validates the selector syntax, an empty selector selects everything.
func ParseLabelSelector(selector string) (labels.Selector, error) {
	sel, err := labels.Parse(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: label selector %q: %v", ErrInvalidArgument, selector, err)
	}
	return sel, nil
}

func toListOptions(options ListOptions) (metav1.ListOptions, error) {
	sel, err := ParseLabelSelector(options.LabelSelector)
	if err != nil {
		return metav1.ListOptions{}, err
	}
	if sel.Empty() {
		return metav1.ListOptions{}, nil
	}
	return metav1.ListOptions{LabelSelector: sel.String()}, nil
}
