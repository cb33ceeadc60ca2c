package output

import (
	"bytes"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/cli-runtime/pkg/printers"
	yml "sigs.k8s.io/yaml"

	"github.com/fabric8io/kubehelper/pkg/kubehelper"
)

var Yaml = &yaml{}

var Table = &table{}

var Summary = &summary{}

type Output interface {
	// GetName returns the name of the output format, will be used by the CLI to identify the output format.
	GetName() string
	// PrintObj prints the given object as a string.
	PrintObj(obj runtime.Unstructured) (string, error)
}

var Outputs = []Output{
	Yaml,
	Table,
	Summary,
}

var Names []string

func FromString(name string) Output {
	for _, output := range Outputs {
		if output.GetName() == name {
			return output
		}
	}
	return nil
}

type yaml struct{}

func (p *yaml) GetName() string {
	return "yaml"
}
func (p *yaml) PrintObj(obj runtime.Unstructured) (string, error) {
	return MarshalYaml(obj)
}

type table struct{}

func (p *table) GetName() string {
	return "table"
}
func (p *table) PrintObj(obj runtime.Unstructured) (string, error) {
	withNamespace := false
	if list, ok := obj.(*unstructured.UnstructuredList); ok {
		for i := range list.Items {
			if list.Items[i].GetNamespace() != "" {
				withNamespace = true
				break
			}
		}
	}
	buf := new(bytes.Buffer)
	// TablePrinter is mutable and not thread-safe, must create a new instance each time.
	printer := printers.NewTablePrinter(printers.PrintOptions{
		WithNamespace: withNamespace,
		WithKind:      true,
		Wide:          true,
		ShowLabels:    true,
	})
	err := printer.PrintObj(obj, buf)
	return buf.String(), err
}

// summary prints one line per resource with its name, its serialized labels and its main
// number (first port for pods and services, replicas for replication controllers).
type summary struct{}

func (p *summary) GetName() string {
	return "summary"
}
func (p *summary) PrintObj(obj runtime.Unstructured) (string, error) {
	var items []unstructured.Unstructured
	switch t := obj.(type) {
	case *unstructured.UnstructuredList:
		items = t.Items
	case *unstructured.Unstructured:
		items = []unstructured.Unstructured{*t}
	default:
		return "", fmt.Errorf("unsupported object type %T", obj)
	}
	buf := new(bytes.Buffer)
	w := printers.GetNewTabWriter(buf)
	column := "PORT"
	if len(items) > 0 && items[0].GetKind() == "ReplicationController" {
		column = "REPLICAS"
	}
	_, _ = fmt.Fprintf(w, "NAME\tLABELS\t%s\n", column)
	for i := range items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n",
			items[i].GetName(),
			kubehelper.LabelsString(items[i].GetLabels()),
			kubehelper.PositiveNonZeroText(mainNumber(&items[i])))
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func mainNumber(obj *unstructured.Unstructured) *int64 {
	content := obj.Object
	var fields []string
	switch obj.GetKind() {
	case "ReplicationController":
		fields = []string{"spec", "replicas"}
	case "Service":
		content, fields = firstItem(content, "spec", "ports"), []string{"port"}
	case "Pod":
		content, fields = firstItem(firstItem(content, "spec", "containers"), "ports"), []string{"containerPort"}
	default:
		return nil
	}
	n, found, err := unstructured.NestedInt64(content, fields...)
	if err != nil || !found {
		return nil
	}
	return &n
}

func firstItem(obj map[string]interface{}, fields ...string) map[string]interface{} {
	items, found, err := unstructured.NestedSlice(obj, fields...)
	if err != nil || !found || len(items) == 0 {
		return nil
	}
	item, _ := items[0].(map[string]interface{})
	return item
}

// ToUnstructuredList converts typed objects of the given kind into a v1 UnstructuredList.
// apiVersion and kind are set on every item, list responses don't carry them.
func ToUnstructuredList[T runtime.Object](kind string, objects []T) (*unstructured.UnstructuredList, error) {
	list := &unstructured.UnstructuredList{}
	list.SetAPIVersion("v1")
	list.SetKind(kind + "List")
	for _, obj := range objects {
		content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s: %w", kind, err)
		}
		item := unstructured.Unstructured{Object: content}
		item.SetAPIVersion("v1")
		item.SetKind(kind)
		list.Items = append(list.Items, item)
	}
	return list, nil
}

func MarshalYaml(v any, opts ...MarshalOption) (string, error) {
	var cfg marshalConfig
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.clean {
		switch t := v.(type) {
		case *unstructured.UnstructuredList:
			for i := range t.Items {
				cleanMetadata(&t.Items[i])
			}
		case *unstructured.Unstructured:
			cleanMetadata(t)
		}
	}
	switch t := v.(type) {
	case *unstructured.UnstructuredList:
		v = t.Items
	}
	ret, err := yml.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(ret), nil
}

type marshalConfig struct {
	clean bool
}

// MarshalOption configures MarshalYaml behaviour.
type MarshalOption func(*marshalConfig)

// WithCleanMetadata strips verbose metadata (managedFields, resourceVersion, uid, etc.).
func WithCleanMetadata() MarshalOption {
	return func(c *marshalConfig) { c.clean = true }
}

func cleanMetadata(obj *unstructured.Unstructured) {
	obj.SetManagedFields(nil)
	obj.SetResourceVersion("")
	obj.SetUID("")
	obj.SetGeneration(0)
	obj.SetCreationTimestamp(metav1.Time{})

	annotations := obj.GetAnnotations()
	if annotations != nil {
		delete(annotations, "kubectl.kubernetes.io/last-applied-configuration")
		if len(annotations) == 0 {
			obj.SetAnnotations(nil)
		} else {
			obj.SetAnnotations(annotations)
		}
	}
}

func init() {
	Names = make([]string, 0)
	for _, output := range Outputs {
		Names = append(Names, output.GetName())
	}
}
