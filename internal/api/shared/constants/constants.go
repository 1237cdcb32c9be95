package constants

const (
	MAX_CHILDREN_PER_REQUEST = 100
	MAX_EVENTS_LIMIT         = 1000
	DEFAULT_EVENTS_LIMIT     = 100
)
