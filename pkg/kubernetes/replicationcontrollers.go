package kubernetes

import (
	"context"
	"fmt"

	v1 "k8s.io/api/core/v1"

	"github.com/fabric8io/kubehelper/pkg/kubehelper"
)

func (k *Kubernetes) ReplicationControllersList(ctx context.Context, options ListOptions) (*v1.ReplicationControllerList, error) {
	listOptions, err := toListOptions(options)
	if err != nil {
		return nil, err
	}
	namespace := k.listNamespace(options)
	ret, err := k.CoreV1().ReplicationControllers(namespace).List(ctx, listOptions)
	if err != nil {
		LogAPIError(err, "replication controllers list")
		return nil, fmt.Errorf("failed to list replication controllers in namespace %q: %w", namespace, err)
	}
	return ret, nil
}

// ReplicationControllerMap returns the replication controllers keyed by name.
func (k *Kubernetes) ReplicationControllerMap(ctx context.Context, options ListOptions) (map[string]*v1.ReplicationController, error) {
	list, err := k.ReplicationControllersList(ctx, options)
	if err != nil {
		return nil, err
	}
	return kubehelper.ReplicationControllerMap(list), nil
}
