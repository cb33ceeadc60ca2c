package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"k8s.io/kubectl/pkg/util/i18n"

	"github.com/fabric8io/kubehelper/pkg/kubehelper"
	internalk8s "github.com/fabric8io/kubehelper/pkg/kubernetes"
	"github.com/fabric8io/kubehelper/pkg/output"
)

func newEnvCmd(o *KubeHelperOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "env KEY=VALUE...",
		Short:   i18n.T("Print container environment variables, sorted by name"),
		Args:    cobra.MinimumNArgs(1),
		PreRunE: o.complete,
		RunE: func(c *cobra.Command, args []string) error {
			vars, err := parseEnvArgs(args)
			if err != nil {
				return err
			}
			out, err := output.MarshalYaml(kubehelper.EnvVars(vars))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(o.Out, out)
			return err
		},
	}
}

// parseEnvArgs parses KEY=VALUE arguments, a repeated KEY keeps the last value.
func parseEnvArgs(args []string) (map[string]string, error) {
	vars := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: expected KEY=VALUE, got %q", internalk8s.ErrInvalidArgument, arg)
		}
		vars[key] = value
	}
	return vars, nil
}
