package kubehelper

import (
	"strconv"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/sets"
)

type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// EnvVars returns the container environment variables for the given map, sorted by name.
func EnvVars(vars map[string]string) []corev1.EnvVar {
	ret := make([]corev1.EnvVar, 0, len(vars))
	for _, name := range sets.List(sets.KeySet(vars)) {
		ret = append(ret, corev1.EnvVar{Name: name, Value: vars[name]})
	}
	return ret
}

// PositiveNonZeroText returns the decimal text of n for positive values, or "" otherwise.
func PositiveNonZeroText[N Integer](n *N) string {
	if n == nil || *n <= 0 {
		return ""
	}
	return strconv.FormatInt(int64(*n), 10)
}
