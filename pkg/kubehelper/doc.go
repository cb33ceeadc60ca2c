// Package kubehelper indexes and filters lists of Kubernetes resources.
//
// Every helper is a pure function over in-memory lists: nothing here talks to a cluster,
// and no input is ever modified.
package kubehelper
