package badtag

//gen-deref:derive
type Box struct {
	inner string `deref:"mut"`
}
