package kubernetes

import (
	"context"
	"fmt"

	v1 "k8s.io/api/core/v1"

	"github.com/fabric8io/kubehelper/pkg/kubehelper"
)

func (k *Kubernetes) ServicesList(ctx context.Context, options ListOptions) (*v1.ServiceList, error) {
	listOptions, err := toListOptions(options)
	if err != nil {
		return nil, err
	}
	namespace := k.listNamespace(options)
	ret, err := k.CoreV1().Services(namespace).List(ctx, listOptions)
	if err != nil {
		LogAPIError(err, "services list")
		return nil, fmt.Errorf("failed to list services in namespace %q: %w", namespace, err)
	}
	return ret, nil
}

// ServiceMap returns the services keyed by name.
func (k *Kubernetes) ServiceMap(ctx context.Context, options ListOptions) (map[string]*v1.Service, error) {
	list, err := k.ServicesList(ctx, options)
	if err != nil {
		return nil, err
	}
	return kubehelper.ServiceMap(list), nil
}
