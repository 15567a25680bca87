package solefield

//gen-deref:derive
type Buffer struct {
	data []byte
}
