package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/cli-runtime/pkg/printers"
	"k8s.io/kubectl/pkg/util/i18n"
)

func newContextsCmd(o *KubeHelperOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "contexts",
		Short:   i18n.T("List the kubeconfig contexts and their cluster servers"),
		Args:    cobra.NoArgs,
		PreRunE: o.complete,
		RunE: func(c *cobra.Command, args []string) error {
			m, err := o.manager()
			if err != nil {
				return err
			}
			current, err := m.ConfigurationContextsDefault()
			if err != nil {
				return err
			}
			contexts, err := m.ConfigurationContextsList()
			if err != nil {
				return err
			}
			w := printers.GetNewTabWriter(o.Out)
			_, _ = fmt.Fprintln(w, "CURRENT\tNAME\tSERVER")
			for _, name := range sets.List(sets.KeySet(contexts)) {
				marker := ""
				if name == current {
					marker = "*"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", marker, name, contexts[name])
			}
			return w.Flush()
		},
	}
}
