package kubernetes

import (
	"errors"
	"fmt"
	"runtime"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
	"k8s.io/klog/v2"

	"github.com/fabric8io/kubehelper/pkg/config"
	"github.com/fabric8io/kubehelper/pkg/version"
)

// Manager owns the connection settings of a cluster and hands out Kubernetes clients for it.
type Manager struct {
	staticConfig    *config.StaticConfig
	restConfig      *rest.Config
	clientCmdConfig clientcmd.ClientConfig
}

var (
	ErrorKubeconfigInClusterNotAllowed = errors.New("kubeconfig manager cannot be used in in-cluster deployments")
	ErrorInClusterNotInCluster         = errors.New("in-cluster manager cannot be used outside of a cluster")
)

// NewManager returns an in-cluster manager when running inside a cluster without an explicit
// kubeconfig, or a kubeconfig manager otherwise.
func NewManager(cfg *config.StaticConfig) (*Manager, error) {
	if IsInCluster(cfg) {
		klog.V(2).Info("Using in-cluster configuration")
		return NewInClusterManager(cfg)
	}
	return NewKubeconfigManager(cfg, cfg.Context)
}

func NewKubeconfigManager(cfg *config.StaticConfig, kubeconfigContext string) (*Manager, error) {
	if IsInCluster(cfg) {
		return nil, ErrorKubeconfigInClusterNotAllowed
	}

	pathOptions := clientcmd.NewDefaultPathOptions()
	if cfg.KubeConfig != "" {
		pathOptions.LoadingRules.ExplicitPath = cfg.KubeConfig
	}
	clientCmdConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		pathOptions.LoadingRules,
		&clientcmd.ConfigOverrides{
			ClusterInfo:    clientcmdapi.Cluster{Server: ""},
			CurrentContext: kubeconfigContext,
		})

	restConfig, err := clientCmdConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes rest config from kubeconfig: %w", err)
	}

	return newManager(cfg, restConfig, clientCmdConfig)
}

func NewInClusterManager(cfg *config.StaticConfig) (*Manager, error) {
	if cfg.KubeConfig != "" {
		return nil, fmt.Errorf("kubeconfig file %s cannot be used with the in-cluster deployments: %w", cfg.KubeConfig, ErrorKubeconfigInClusterNotAllowed)
	}

	if !IsInCluster(cfg) {
		return nil, ErrorInClusterNotInCluster
	}

	restConfig, err := InClusterConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create in-cluster kubernetes rest config: %w", err)
	}

	// clientcmd.ClientConfig is still needed to resolve the namespace
	clientCmdConfig := clientcmdapi.NewConfig()
	clientCmdConfig.Clusters["cluster"] = &clientcmdapi.Cluster{
		Server:                restConfig.Host,
		InsecureSkipTLSVerify: restConfig.Insecure,
	}
	clientCmdConfig.AuthInfos["user"] = &clientcmdapi.AuthInfo{
		Token: restConfig.BearerToken,
	}
	clientCmdConfig.Contexts[inClusterKubeConfigDefaultContext] = &clientcmdapi.Context{
		Cluster:   "cluster",
		AuthInfo:  "user",
		Namespace: inClusterNamespace(),
	}
	clientCmdConfig.CurrentContext = inClusterKubeConfigDefaultContext

	return newManager(cfg, restConfig, clientcmd.NewDefaultClientConfig(*clientCmdConfig, nil))
}

func newManager(cfg *config.StaticConfig, restConfig *rest.Config, clientCmdConfig clientcmd.ClientConfig) (*Manager, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if restConfig == nil {
		return nil, errors.New("restConfig cannot be nil")
	}
	if clientCmdConfig == nil {
		return nil, errors.New("clientCmdConfig cannot be nil")
	}
	restConfig = rest.CopyConfig(restConfig)
	if restConfig.UserAgent == "" {
		restConfig.UserAgent = fmt.Sprintf("%s/%s (%s/%s)", version.BinaryName, version.Version, runtime.GOOS, runtime.GOARCH)
	}
	return &Manager{
		staticConfig:    cfg,
		restConfig:      restConfig,
		clientCmdConfig: clientCmdConfig,
	}, nil
}

// RESTConfig returns a copy of the rest.Config used by the clients of this manager.
func (m *Manager) RESTConfig() *rest.Config {
	return rest.CopyConfig(m.restConfig)
}

// ToRawKubeConfigLoader returns the clientcmd.ClientConfig backing this manager.
func (m *Manager) ToRawKubeConfigLoader() clientcmd.ClientConfig {
	return m.clientCmdConfig
}

// Namespace returns the namespace from the configuration, or the one of the kubeconfig context.
func (m *Manager) Namespace() string {
	if m.staticConfig.Namespace != "" {
		return m.staticConfig.Namespace
	}
	if ns, _, err := m.clientCmdConfig.Namespace(); err == nil {
		return ns
	}
	return ""
}

// Kubernetes creates a client for the managed cluster.
func (m *Manager) Kubernetes() (*Kubernetes, error) {
	clientset, err := kubernetes.NewForConfig(m.restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes clientset: %w", err)
	}
	return NewKubernetes(clientset, m.Namespace()), nil
}
