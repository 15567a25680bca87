package mutable

//gen-deref:derive
type Counter struct {
	label string
	hits  int `deref:"mutable"`
}
