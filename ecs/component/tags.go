package component

// PlayerTag marks the actor driven by local input.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()
