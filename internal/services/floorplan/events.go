package floorplan

import "github.com/Haricane11/OptiWareUi-sub000/internal/models"

// Event types published after a committed change.
const (
	EventCreated  = "created"
	EventUpdated  = "updated"
	EventMoved    = "moved"
	EventResized  = "resized"
	EventDeleted  = "deleted"
	EventReplaced = "shelves_replaced"
)

// Entity names carried by events.
const (
	EntityZone  = "zone"
	EntityShelf = "shelf"
	EntityArea  = "area"
)

// Event tells rendering clients subscribed to a floor what changed.
type Event struct {
	Type    string      `json:"type"`
	FloorID string      `json:"floor_id"`
	Entity  string      `json:"entity"`
	ID      string      `json:"id"`
	Payload interface{} `json:"payload,omitempty"`
}

// recordEvent describes a change whose payload is the record itself.
func recordEvent(typ string, e models.Entity) Event {
	return Event{Type: typ, Entity: e.GetEntityType(), ID: e.GetEntityID(), Payload: e}
}
