package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/klog/v2"
	"k8s.io/kubectl/pkg/util/i18n"
	"k8s.io/kubectl/pkg/util/templates"

	"github.com/fabric8io/kubehelper/pkg/kubehelper"
	"github.com/fabric8io/kubehelper/pkg/output"
)

var filterLong = templates.LongDesc(i18n.T(`
	The optional FILTER argument keeps only the resources whose name or serialized labels
	(e.g. "app=web,tier=fe") contain it. Resources without a name are never printed.`))

func newPodsCmd(o *KubeHelperOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "pods [FILTER]",
		Aliases: []string{"po"},
		Short:   i18n.T("List pods"),
		Long:    filterLong,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: o.complete,
		RunE: func(c *cobra.Command, args []string) error {
			k, err := o.kubernetes()
			if err != nil {
				return err
			}
			list, err := k.PodsList(c.Context(), o.listOptions())
			if err != nil {
				return err
			}
			pods := kubehelper.ItemPointers(kubehelper.RemoveEmptyPods(list).Items)
			return printResources(o, kubehelper.Pods, pods, o.filterText(args))
		},
	}
}

func newServicesCmd(o *KubeHelperOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "services [FILTER]",
		Aliases: []string{"svc"},
		Short:   i18n.T("List services"),
		Long:    filterLong,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: o.complete,
		RunE: func(c *cobra.Command, args []string) error {
			k, err := o.kubernetes()
			if err != nil {
				return err
			}
			list, err := k.ServicesList(c.Context(), o.listOptions())
			if err != nil {
				return err
			}
			services := kubehelper.Services.RemoveEmpty(kubehelper.ItemPointers(list.Items))
			return printResources(o, kubehelper.Services, services, o.filterText(args))
		},
	}
}

func newReplicationControllersCmd(o *KubeHelperOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "replicationcontrollers [FILTER]",
		Aliases: []string{"rc"},
		Short:   i18n.T("List replication controllers"),
		Long:    filterLong,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: o.complete,
		RunE: func(c *cobra.Command, args []string) error {
			k, err := o.kubernetes()
			if err != nil {
				return err
			}
			list, err := k.ReplicationControllersList(c.Context(), o.listOptions())
			if err != nil {
				return err
			}
			rcs := kubehelper.ReplicationControllers.RemoveEmpty(kubehelper.ItemPointers(list.Items))
			return printResources(o, kubehelper.ReplicationControllers, rcs, o.filterText(args))
		},
	}
}

// filterText returns the FILTER argument, or the configured default filter.
func (o *KubeHelperOptions) filterText(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return o.StaticConfig.Filter
}

func printResources[T runtime.Object](o *KubeHelperOptions, accessor kubehelper.Accessor[T], items []T, text string) error {
	filter := accessor.Filter(text)
	klog.V(2).Infof("Selecting %d %s(s) with %s", len(items), accessor.Kind, filter)
	selected := accessor.Select(items, filter)
	if len(selected) == 0 {
		_, _ = fmt.Fprintln(o.ErrOut, "No resources found")
		return nil
	}
	list, err := output.ToUnstructuredList(accessor.Kind, selected)
	if err != nil {
		return err
	}
	out, err := output.FromString(o.StaticConfig.ListOutput).PrintObj(list)
	if err != nil {
		return fmt.Errorf("failed to print %s list: %w", accessor.Kind, err)
	}
	_, err = fmt.Fprint(o.Out, out)
	return err
}
