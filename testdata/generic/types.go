package generic

//gen-deref:derive
type Pair[K comparable, V any] struct {
	Key   K
	Value V `deref:"mutable"`
}
