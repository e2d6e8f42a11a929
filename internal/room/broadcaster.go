package room

// Broadcaster delivers events to the connections attached to a room. The
// per-player path exists because the two participants must receive
// different masked views.
type Broadcaster interface {
	ToPlayer(roomID, playerID, event string, data interface{})
	ToRoom(roomID, event string, data interface{})
	DropRoom(roomID string)
}

type noopBroadcaster struct{}

func (noopBroadcaster) ToPlayer(string, string, string, interface{}) {}
func (noopBroadcaster) ToRoom(string, string, interface{})           {}
func (noopBroadcaster) DropRoom(string)                              {}
