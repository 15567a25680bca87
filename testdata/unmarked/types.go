package unmarked

//gen-deref:derive
type Record struct {
	ID   int
	Name string
}
