package models

// Entity is implemented by every floor-plan record that is broadcast to viewers
// and addressed by the persistence layer.
type Entity interface {
	GetEntityID() string
	GetEntityType() string
}
