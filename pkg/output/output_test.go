package output

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/utils/ptr"
)

func TestPlainTextUnstructuredList(t *testing.T) {
	var podList unstructured.UnstructuredList
	_ = json.Unmarshal([]byte(`
			{ "apiVersion": "v1", "kind": "PodList", "items": [{
			  "apiVersion": "v1", "kind": "Pod",
			  "metadata": {
			    "name": "pod-1", "namespace": "default", "creationTimestamp": "2023-10-01T00:00:00Z", "labels": { "app": "nginx" }
			  },
			  "spec": { "containers": [{ "name": "container-1", "image": "marcnuri/chuck-norris" }] } }
			]}`), &podList)
	out, err := Table.PrintObj(&podList)
	t.Run("processes the list", func(t *testing.T) {
		if err != nil {
			t.Fatalf("Error printing pod list: %v", err)
		}
	})
	t.Run("prints headers", func(t *testing.T) {
		expectedHeaders := "NAMESPACE\\s+NAME\\s+AGE\\s+LABELS"
		if m, e := regexp.MatchString(expectedHeaders, out); !m || e != nil {
			t.Errorf("Expected headers '%s' not found in output: %s", expectedHeaders, out)
		}
	})
	t.Run("prints labels", func(t *testing.T) {
		assert.Contains(t, out, "app=nginx")
	})
}

func TestFromString(t *testing.T) {
	assert.Same(t, Yaml, FromString("yaml"))
	assert.Same(t, Table, FromString("table"))
	assert.Same(t, Summary, FromString("summary"))
	assert.Nil(t, FromString("json"))
	assert.Equal(t, []string{"yaml", "table", "summary"}, Names)
}

func TestToUnstructuredList(t *testing.T) {
	list, err := ToUnstructuredList("Service", []*corev1.Service{
		{ObjectMeta: metav1.ObjectMeta{Name: "web", Labels: map[string]string{"app": "web"}}},
		{ObjectMeta: metav1.ObjectMeta{Name: "db"}},
	})
	require.NoError(t, err)
	t.Run("sets list kind", func(t *testing.T) {
		assert.Equal(t, "ServiceList", list.GetKind())
		assert.Equal(t, "v1", list.GetAPIVersion())
	})
	t.Run("sets item kind", func(t *testing.T) {
		require.Len(t, list.Items, 2)
		for _, item := range list.Items {
			assert.Equal(t, "Service", item.GetKind())
			assert.Equal(t, "v1", item.GetAPIVersion())
		}
	})
	t.Run("keeps metadata", func(t *testing.T) {
		assert.Equal(t, "web", list.Items[0].GetName())
		assert.Equal(t, map[string]string{"app": "web"}, list.Items[0].GetLabels())
	})
}

func TestYaml(t *testing.T) {
	list, err := ToUnstructuredList("Pod", []*corev1.Pod{
		{ObjectMeta: metav1.ObjectMeta{Name: "web-1", Namespace: "shop", ResourceVersion: "7"}},
	})
	require.NoError(t, err)
	t.Run("prints list items", func(t *testing.T) {
		out, err := Yaml.PrintObj(list)
		require.NoError(t, err)
		assert.Contains(t, out, "- apiVersion: v1")
		assert.Contains(t, out, "name: web-1")
		assert.NotContains(t, out, "PodList")
	})
	t.Run("clean metadata", func(t *testing.T) {
		out, err := MarshalYaml(list, WithCleanMetadata())
		require.NoError(t, err)
		assert.NotContains(t, out, "resourceVersion")
		assert.NotContains(t, out, "creationTimestamp")
	})
}

func TestSummary(t *testing.T) {
	t.Run("services print first port", func(t *testing.T) {
		list, err := ToUnstructuredList("Service", []*corev1.Service{
			{
				ObjectMeta: metav1.ObjectMeta{Name: "web", Labels: map[string]string{"tier": "fe", "app": "web"}},
				Spec:       corev1.ServiceSpec{Ports: []corev1.ServicePort{{Port: 8080}, {Port: 8443}}},
			},
			{ObjectMeta: metav1.ObjectMeta{Name: "headless"}},
		})
		require.NoError(t, err)
		out, err := Summary.PrintObj(list)
		require.NoError(t, err)
		assert.Regexp(t, `NAME\s+LABELS\s+PORT`, out)
		assert.Regexp(t, `web\s+app=web,tier=fe\s+8080\n`, out)
		assert.Regexp(t, `headless\s*\n`, out)
	})
	t.Run("pods print first container port", func(t *testing.T) {
		list, err := ToUnstructuredList("Pod", []*corev1.Pod{{
			ObjectMeta: metav1.ObjectMeta{Name: "web-1"},
			Spec: corev1.PodSpec{Containers: []corev1.Container{
				{Name: "main", Ports: []corev1.ContainerPort{{ContainerPort: 80}}},
			}},
		}})
		require.NoError(t, err)
		out, err := Summary.PrintObj(list)
		require.NoError(t, err)
		assert.Regexp(t, `web-1\s+80\n`, out)
	})
	t.Run("replication controllers print replicas", func(t *testing.T) {
		list, err := ToUnstructuredList("ReplicationController", []*corev1.ReplicationController{
			{ObjectMeta: metav1.ObjectMeta{Name: "rc-1"}, Spec: corev1.ReplicationControllerSpec{Replicas: ptr.To(int32(3))}},
			{ObjectMeta: metav1.ObjectMeta{Name: "rc-0"}, Spec: corev1.ReplicationControllerSpec{Replicas: ptr.To(int32(0))}},
		})
		require.NoError(t, err)
		out, err := Summary.PrintObj(list)
		require.NoError(t, err)
		assert.Regexp(t, `NAME\s+LABELS\s+REPLICAS`, out)
		assert.Regexp(t, `rc-1\s+3\n`, out)
		assert.Regexp(t, `rc-0\s*\n`, out)
	})
}
