package kubehelper

import (
	"testing"

	"github.com/stretchr/testify/suite"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func pod(name string, lbls map[string]string) corev1.Pod {
	return corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "default", Labels: lbls}}
}

type IndexSuite struct {
	suite.Suite
}

func (s *IndexSuite) TestIndex() {
	s.Run("nil slice yields empty map", func() {
		index := Pods.Index(nil)
		s.NotNil(index)
		s.Empty(index)
	})
	s.Run("empty slice yields empty map", func() {
		s.Empty(Pods.Index([]*corev1.Pod{}))
	})
	s.Run("keys items by name", func() {
		items := ItemPointers([]corev1.Pod{pod("a", nil), pod("b", nil)})
		index := Pods.Index(items)
		s.Len(index, 2)
		s.Same(items[0], index["a"])
		s.Same(items[1], index["b"])
	})
	s.Run("skips blank ids", func() {
		items := ItemPointers([]corev1.Pod{pod("", nil), pod("   ", nil), pod("\t", nil), pod("ok", nil)})
		index := Pods.Index(items)
		s.Len(index, 1)
		s.Contains(index, "ok")
	})
	s.Run("skips nil items", func() {
		index := Pods.Index([]*corev1.Pod{nil, {ObjectMeta: metav1.ObjectMeta{Name: "x"}}})
		s.Len(index, 1)
		s.Contains(index, "x")
	})
	s.Run("later duplicates win", func() {
		first := pod("dup", map[string]string{"v": "1"})
		second := pod("dup", map[string]string{"v": "2"})
		index := Pods.Index([]*corev1.Pod{&first, &second})
		s.Len(index, 1)
		s.Equal("2", index["dup"].Labels["v"])
	})
	s.Run("works with unstructured objects", func() {
		u := &unstructured.Unstructured{}
		u.SetName("from-unstructured")
		index := ObjectAccessor[*unstructured.Unstructured]("Pod").Index([]*unstructured.Unstructured{u})
		s.Same(u, index["from-unstructured"])
	})
	s.Run("works with a custom accessor", func() {
		type record struct{ id string }
		accessor := Accessor[record]{Kind: "Record", ID: func(r record) string { return r.id }}
		index := accessor.Index([]record{{id: "r1"}, {id: ""}})
		s.Equal(map[string]record{"r1": {id: "r1"}}, index)
	})
}

func (s *IndexSuite) TestNamespacedObjectAccessor() {
	accessor := NamespacedObjectAccessor[*corev1.Service]("Service")
	items := []*corev1.Service{
		{ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "a"}},
		{ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "b"}},
		{ObjectMeta: metav1.ObjectMeta{Name: "cluster-wide"}},
		{ObjectMeta: metav1.ObjectMeta{Namespace: "a"}},
	}
	index := accessor.Index(items)
	s.Run("keeps same-name objects from different namespaces", func() {
		s.Same(items[0], index["a/web"])
		s.Same(items[1], index["b/web"])
	})
	s.Run("keys cluster-scoped objects by name", func() {
		s.Same(items[2], index["cluster-wide"])
	})
	s.Run("skips nameless objects", func() {
		s.Len(index, 3)
	})
}

func (s *IndexSuite) TestListMaps() {
	s.Run("PodMap with nil list", func() {
		s.Empty(PodMap(nil))
	})
	s.Run("PodMap points into list items", func() {
		list := &corev1.PodList{Items: []corev1.Pod{pod("p1", nil), pod("", nil)}}
		m := PodMap(list)
		s.Len(m, 1)
		s.Same(&list.Items[0], m["p1"])
	})
	s.Run("ServiceMap", func() {
		s.Empty(ServiceMap(nil))
		list := &corev1.ServiceList{Items: []corev1.Service{{ObjectMeta: metav1.ObjectMeta{Name: "svc"}}}}
		s.Contains(ServiceMap(list), "svc")
	})
	s.Run("ReplicationControllerMap", func() {
		s.Empty(ReplicationControllerMap(nil))
		list := &corev1.ReplicationControllerList{Items: []corev1.ReplicationController{
			{ObjectMeta: metav1.ObjectMeta{Name: "rc-1"}},
			{ObjectMeta: metav1.ObjectMeta{Name: "rc-1", Labels: map[string]string{"last": "true"}}},
		}}
		m := ReplicationControllerMap(list)
		s.Len(m, 1)
		s.Equal("true", m["rc-1"].Labels["last"])
	})
}

func (s *IndexSuite) TestRemoveEmpty() {
	items := ItemPointers([]corev1.Pod{pod("a", nil), pod("", nil), pod(" ", nil), pod("b", nil)})
	ret := Pods.RemoveEmpty(items)
	s.Run("removes empty ids only", func() {
		s.Require().Len(ret, 3)
		s.Equal("a", ret[0].Name)
		s.Equal(" ", ret[1].Name)
		s.Equal("b", ret[2].Name)
	})
	s.Run("does not modify input", func() {
		s.Len(items, 4)
		s.Equal("", items[1].Name)
	})
	s.Run("removes nil items", func() {
		s.Empty(Pods.RemoveEmpty([]*corev1.Pod{nil}))
	})
}

func (s *IndexSuite) TestRemoveEmptyPods() {
	list := &corev1.PodList{
		ListMeta: metav1.ListMeta{ResourceVersion: "42"},
		Items:    []corev1.Pod{pod("", nil), pod("keep", map[string]string{"app": "x"}), pod("", nil)},
	}
	ret := RemoveEmptyPods(list)
	s.Run("returns only named pods", func() {
		s.Require().Len(ret.Items, 1)
		s.Equal("keep", ret.Items[0].Name)
	})
	s.Run("keeps list metadata", func() {
		s.Equal("42", ret.ResourceVersion)
	})
	s.Run("leaves input untouched", func() {
		s.Len(list.Items, 3)
		ret.Items[0].Labels["app"] = "changed"
		s.Equal("x", list.Items[1].Labels["app"])
	})
	s.Run("nil list yields empty list", func() {
		s.Empty(RemoveEmptyPods(nil).Items)
	})
}

func (s *IndexSuite) TestContainerNameToPodID() {
	s.Equal("nginx-123", ContainerNameToPodID("nginx-123"))
}

func TestIndex(t *testing.T) {
	suite.Run(t, new(IndexSuite))
}
