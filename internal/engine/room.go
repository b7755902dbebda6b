package engine

// Seat is one entry of a room's roster. The engine reads stacks at hand
// start and writes them back at settlement.
type Seat struct {
	UserID    string `json:"userId"`
	Stack     int    `json:"stack"`
	Connected bool   `json:"connected"`
}

// Room is the externally owned table the engine plays hands in. Membership
// and lifecycle are managed by the caller; the engine only touches Seats
// and Button while holding the room's lock.
type Room struct {
	ID     string
	Config RoomConfig
	Seats  []*Seat
	Button int
}

// NewRoom seats users with the configured initial stack.
func NewRoom(id string, cfg RoomConfig, users ...string) *Room {
	r := &Room{ID: id, Config: cfg}
	for _, u := range users {
		r.Seats = append(r.Seats, &Seat{UserID: u, Stack: cfg.InitialStack, Connected: true})
	}
	return r
}

// funded counts seats with chips.
func (r *Room) funded() int {
	n := 0
	for _, s := range r.Seats {
		if s.Stack > 0 {
			n++
		}
	}
	return n
}
