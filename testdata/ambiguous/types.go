package ambiguous

//gen-deref:derive
type Pair struct {
	Left  int `deref:""`
	Right int `deref:""`
}
