package helpers

import (
	"path/filepath"
	"runtime"
	"strings"
)

type Optional[T any] struct {
	_hasValue bool
	_t        T
}

func Some[T any](t T) Optional[T] {
	return Optional[T]{true, t}
}

func Empty[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) IsEmpty() bool {
	return !o._hasValue
}

func (o Optional[T]) HasValue() bool {
	return !o.IsEmpty()
}

func (o Optional[T]) Value() T {
	return o._t
}

func (o Optional[T]) ValueOr(fallback T) T {
	if o.HasValue() {
		return o._t
	}
	return fallback
}

type Pair[T, U any] struct {
	First  T
	Second U
}

func MapSlice[T, U any](ts []T, f func(T) U) []U {
	us := make([]U, len(ts))
	for i := range ts {
		us[i] = f(ts[i])
	}
	return us
}

func FilterSlice[T any](ts []T, f func(T) bool) []T {
	filtered := []T{}
	for i := range ts {
		if f(ts[i]) {
			filtered = append(filtered, ts[i])
		}
	}
	return filtered
}

func Contains[T comparable](ts []T, t T) bool {
	for i := range ts {
		if ts[i] == t {
			return true
		}
	}
	return false
}

func Last[T any](ts []T) T {
	return ts[len(ts)-1]
}

func MaxInt(x int, y int) int {
	if x > y {
		return x
	}
	return y
}

func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

func Indent(s string, indent string) string {
	return strings.ReplaceAll(s, "\n", "\n"+indent)
}

func Ellipses(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}

func RootDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..")
}

type NoCopy struct{}

func (*NoCopy) Lock()   {}
func (*NoCopy) Unlock() {}
