package kubernetes

import (
	"os"
	"strings"

	"k8s.io/client-go/rest"

	"github.com/fabric8io/kubehelper/pkg/config"
)

const inClusterKubeConfigDefaultContext = "in-cluster"

// InClusterConfig is a variable that holds the function to get the in-cluster config
// Exposed for testing
var InClusterConfig = func() (*rest.Config, error) {
	inClusterConfig, err := rest.InClusterConfig()
	if inClusterConfig != nil {
		inClusterConfig.Host = "https://kubernetes.default.svc"
	}
	return inClusterConfig, err
}

// inClusterNamespaceFile is where the service account namespace is mounted, exposed for testing
var inClusterNamespaceFile = "/var/run/secrets/kubernetes.io/serviceaccount/namespace"

func IsInCluster(cfg *config.StaticConfig) bool {
	// Even if running in-cluster, if a kubeconfig is provided, we consider it as out-of-cluster
	if cfg != nil && cfg.KubeConfig != "" {
		return false
	}
	restConfig, err := InClusterConfig()
	return err == nil && restConfig != nil
}

func inClusterNamespace() string {
	data, err := os.ReadFile(inClusterNamespaceFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// ConfigurationContextsDefault returns the current context name
func (m *Manager) ConfigurationContextsDefault() (string, error) {
	cfg, err := m.ToRawKubeConfigLoader().RawConfig()
	if err != nil {
		return "", err
	}
	return cfg.CurrentContext, nil
}

// ConfigurationContextsList returns the available context names mapped to their cluster server
func (m *Manager) ConfigurationContextsList() (map[string]string, error) {
	cfg, err := m.ToRawKubeConfigLoader().RawConfig()
	if err != nil {
		return nil, err
	}
	contexts := make(map[string]string, len(cfg.Contexts))
	for name, context := range cfg.Contexts {
		cluster, ok := cfg.Clusters[context.Cluster]
		if !ok || cluster.Server == "" {
			contexts[name] = "unknown"
		} else {
			contexts[name] = cluster.Server
		}
	}
	return contexts, nil
}
