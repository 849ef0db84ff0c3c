package kernel

type JobTitle string

func (t JobTitle) String() string { return string(t) }
