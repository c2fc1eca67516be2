package component

// TTL destroys an entity once Seconds runs out.
type TTL struct {
	Seconds float64
}

var TTLComponent = NewComponent[TTL]()
