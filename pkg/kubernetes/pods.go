package kubernetes

import (
	"context"
	"fmt"

	v1 "k8s.io/api/core/v1"

	"github.com/fabric8io/kubehelper/pkg/kubehelper"
)

func (k *Kubernetes) PodsList(ctx context.Context, options ListOptions) (*v1.PodList, error) {
	listOptions, err := toListOptions(options)
	if err != nil {
		return nil, err
	}
	namespace := k.listNamespace(options)
	ret, err := k.CoreV1().Pods(namespace).List(ctx, listOptions)
	if err != nil {
		LogAPIError(err, "pods list")
		return nil, fmt.Errorf("failed to list pods in namespace %q: %w", namespace, err)
	}
	return ret, nil
}

// PodMap returns the pods keyed by name.
func (k *Kubernetes) PodMap(ctx context.Context, options ListOptions) (map[string]*v1.Pod, error) {
	list, err := k.PodsList(ctx, options)
	if err != nil {
		return nil, err
	}
	return kubehelper.PodMap(list), nil
}
