package imported

import "net/url"

//gen-deref:derive
type Endpoint struct {
	name string
	u    *url.URL `deref:""`
}
