package nofields

//gen-deref:derive
type Empty struct{}
