package embedded

type Base struct {
	ID int
}

//gen-deref:derive
type Wrapper struct {
	Base `deref:""`
	Note string
}
