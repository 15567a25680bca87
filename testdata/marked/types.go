package marked

import "time"

//gen-deref:derive
type Session struct {
	ID      string
	started time.Time
	values  map[string]string `deref:""`
}

type Plain struct {
	Name string `json:"deref:zone"`
}

type Kind int
