package cmd

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"k8s.io/cli-runtime/pkg/genericiooptions"
	"k8s.io/klog/v2"
	"k8s.io/klog/v2/textlogger"
	"k8s.io/kubectl/pkg/util/i18n"
	"k8s.io/kubectl/pkg/util/templates"

	"github.com/fabric8io/kubehelper/pkg/config"
	internalk8s "github.com/fabric8io/kubehelper/pkg/kubernetes"
	"github.com/fabric8io/kubehelper/pkg/output"
	"github.com/fabric8io/kubehelper/pkg/version"
)

var (
	long     = templates.LongDesc(i18n.T("List and filter Kubernetes pods, services and replication controllers"))
	examples = templates.Examples(i18n.T(`
# show this help
kubehelper -h

# shows version information
kubehelper --version

# list the pods of the current namespace whose name or labels contain "web"
kubehelper pods web

# list the services of every namespace selected by a label selector
kubehelper svc -A -l app=shop

# print replication controllers with their replicas
kubehelper rc -o summary

# print container environment variables
kubehelper env JAVA_OPTS=-Xmx1g PROFILE=prod
`))
)

const (
	flagVersion       = "version"
	flagLogLevel      = "log-level"
	flagConfig        = "config"
	flagConfigDir     = "config-dir"
	flagKubeconfig    = "kubeconfig"
	flagContext       = "context"
	flagNamespace     = "namespace"
	flagAllNamespaces = "all-namespaces"
	flagSelector      = "selector"
	flagOutput        = "output"
)

// newManager is exposed for testing
var newManager = internalk8s.NewManager

// newKubernetes is exposed for testing
var newKubernetes = func(m *internalk8s.Manager) (*internalk8s.Kubernetes, error) {
	return m.Kubernetes()
}

type KubeHelperOptions struct {
	Version       bool
	LogLevel      int
	Kubeconfig    string
	Context       string
	Namespace     string
	AllNamespaces bool
	LabelSelector string
	Output        string

	ConfigPath   string
	ConfigDir    string
	StaticConfig *config.StaticConfig

	genericiooptions.IOStreams
}

func NewKubeHelperOptions(streams genericiooptions.IOStreams) *KubeHelperOptions {
	return &KubeHelperOptions{
		IOStreams:    streams,
		StaticConfig: config.Default(),
	}
}

func NewKubeHelper(streams genericiooptions.IOStreams) *cobra.Command {
	o := NewKubeHelperOptions(streams)
	cmd := &cobra.Command{
		Use:          version.BinaryName + " [command] [options]",
		Short:        "Kubernetes resource index and filter helper",
		Long:         long,
		Example:      examples,
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			if err := o.Complete(c); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			return o.Run(c)
		},
	}
	cmd.SetIn(streams.In)
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.ErrOut)

	cmd.Flags().BoolVar(&o.Version, flagVersion, o.Version, "Print version information and quit")
	flags := cmd.PersistentFlags()
	flags.IntVar(&o.LogLevel, flagLogLevel, o.LogLevel, "Set the log level (from 0 to 9)")
	flags.StringVar(&o.ConfigPath, flagConfig, o.ConfigPath, "Path of the config file.")
	flags.StringVar(&o.ConfigDir, flagConfigDir, o.ConfigDir, "Path of a directory with drop-in config files (*.toml), merged in lexical order after --config.")
	flags.StringVar(&o.Kubeconfig, flagKubeconfig, o.Kubeconfig, "Path to the kubeconfig file to use for authentication")
	flags.StringVar(&o.Context, flagContext, o.Context, "The kubeconfig context to use, defaults to the current context")
	flags.StringVarP(&o.Namespace, flagNamespace, "n", o.Namespace, "Namespace to list resources from, defaults to the context namespace")
	flags.BoolVarP(&o.AllNamespaces, flagAllNamespaces, "A", o.AllNamespaces, "List resources across all namespaces")
	flags.StringVarP(&o.LabelSelector, flagSelector, "l", o.LabelSelector, "Label selector evaluated by the API server (e.g. app=web,tier!=db)")
	flags.StringVarP(&o.Output, flagOutput, "o", o.Output, "Output format (one of: "+strings.Join(output.Names, ", ")+"). Defaults to "+o.StaticConfig.ListOutput+".")

	cmd.AddCommand(
		newPodsCmd(o),
		newServicesCmd(o),
		newReplicationControllersCmd(o),
		newEnvCmd(o),
		newContextsCmd(o),
	)
	return cmd
}

func (o *KubeHelperOptions) Complete(cmd *cobra.Command) error {
	if o.ConfigPath != "" || o.ConfigDir != "" {
		cnf, err := config.Read(o.ConfigPath, o.ConfigDir)
		if err != nil {
			return err
		}
		o.StaticConfig = cnf
	}

	o.loadFlags(cmd)

	o.initializeLogging()

	return nil
}

func (o *KubeHelperOptions) loadFlags(cmd *cobra.Command) {
	if cmd.Flag(flagLogLevel).Changed {
		o.StaticConfig.LogLevel = o.LogLevel
	}
	if cmd.Flag(flagKubeconfig).Changed {
		o.StaticConfig.KubeConfig = o.Kubeconfig
	}
	if cmd.Flag(flagContext).Changed {
		o.StaticConfig.Context = o.Context
	}
	if cmd.Flag(flagNamespace).Changed {
		o.StaticConfig.Namespace = o.Namespace
	}
	if cmd.Flag(flagAllNamespaces).Changed {
		o.StaticConfig.AllNamespaces = o.AllNamespaces
	}
	if cmd.Flag(flagSelector).Changed {
		o.StaticConfig.LabelSelector = o.LabelSelector
	}
	if cmd.Flag(flagOutput).Changed {
		o.StaticConfig.ListOutput = o.Output
	}
}

func (o *KubeHelperOptions) initializeLogging() {
	flagSet := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(flagSet)
	loggerOptions := []textlogger.ConfigOption{textlogger.Output(o.ErrOut)}
	if o.StaticConfig.LogLevel >= 0 {
		loggerOptions = append(loggerOptions, textlogger.Verbosity(o.StaticConfig.LogLevel))
		_ = flagSet.Parse([]string{"--v", strconv.Itoa(o.StaticConfig.LogLevel)})
	}
	logger := textlogger.NewLogger(textlogger.NewConfig(loggerOptions...))
	klog.SetLoggerWithOptions(logger)
}

func (o *KubeHelperOptions) Validate() error {
	if output.FromString(o.StaticConfig.ListOutput) == nil {
		return fmt.Errorf("%w: invalid output name: %s, valid names are: %s",
			internalk8s.ErrInvalidArgument, o.StaticConfig.ListOutput, strings.Join(output.Names, ", "))
	}
	if _, err := internalk8s.ParseLabelSelector(o.StaticConfig.LabelSelector); err != nil {
		return err
	}
	return nil
}

func (o *KubeHelperOptions) Run(cmd *cobra.Command) error {
	klog.V(1).Info("Starting " + version.BinaryName)
	klog.V(1).Infof(" - Config: %s", o.ConfigPath)
	klog.V(1).Infof(" - Config dir: %s", o.ConfigDir)
	klog.V(1).Infof(" - ListOutput: %s", o.StaticConfig.ListOutput)

	if o.Version {
		_, _ = fmt.Fprintf(o.Out, "%s\n", version.Version)
		return nil
	}
	return cmd.Help()
}

func (o *KubeHelperOptions) listOptions() internalk8s.ListOptions {
	return internalk8s.ListOptions{
		Namespace:     o.StaticConfig.Namespace,
		AllNamespaces: o.StaticConfig.AllNamespaces,
		LabelSelector: o.StaticConfig.LabelSelector,
	}
}

func (o *KubeHelperOptions) manager() (*internalk8s.Manager, error) {
	m, err := newManager(o.StaticConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize kubernetes connection: %w", err)
	}
	return m, nil
}

func (o *KubeHelperOptions) kubernetes() (*internalk8s.Kubernetes, error) {
	m, err := o.manager()
	if err != nil {
		return nil, err
	}
	return newKubernetes(m)
}

// complete is the shared PreRunE of the subcommands.
func (o *KubeHelperOptions) complete(c *cobra.Command, _ []string) error {
	if err := o.Complete(c); err != nil {
		return err
	}
	return o.Validate()
}
