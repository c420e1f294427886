package hub

import "context"

// Event is one outbound message: an event name plus its payload, marshaled
// at the connection writer.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data,omitempty"`
}

type Msg interface{ isHubMsg() }

// Register adds a connected client and the outbox its connection drains.
type Register struct {
	ClientID string
	Outbox   chan Event
}

type Unregister struct{ ClientID string }

// Join subscribes a client to a room's broadcast group.
type Join struct {
	ClientID string
	RoomID   string
}

type Leave struct {
	ClientID string
	RoomID   string
}

// ToClient delivers an event to one client only.
type ToClient struct {
	ClientID string
	Event    Event
}

// ToRoom delivers an event to every subscriber of a room group.
type ToRoom struct {
	RoomID string
	Event  Event
}

// Broadcast delivers an event to every connected client.
type Broadcast struct{ Event Event }

type GetState struct {
	Reply chan View
}

type Shutdown struct{}

func (Register) isHubMsg()   {}
func (Unregister) isHubMsg() {}
func (Join) isHubMsg()       {}
func (Leave) isHubMsg()      {}
func (ToClient) isHubMsg()   {}
func (ToRoom) isHubMsg()     {}
func (Broadcast) isHubMsg()  {}
func (GetState) isHubMsg()   {}
func (Shutdown) isHubMsg()   {}

// View reflects internal state without data races; test-only.
type View struct {
	NumClients int
	GroupSizes map[string]int
}

// Hub is the delivery layer: a single goroutine owning the set of
// connected clients and the room-scoped subscriber groups. Everything else
// talks to it through its inbox.
type Hub struct {
	inbox   chan Msg
	clients map[string]chan Event
	groups  map[string]map[string]struct{}
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewHub(parent context.Context) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:   make(chan Msg, 64),
		clients: make(map[string]chan Event),
		groups:  make(map[string]map[string]struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- Msg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case Register:
				h.clients[msg.ClientID] = msg.Outbox

			case Unregister:
				h.drop(msg.ClientID)

			case Join:
				group := h.groups[msg.RoomID]
				if group == nil {
					group = make(map[string]struct{})
					h.groups[msg.RoomID] = group
				}
				group[msg.ClientID] = struct{}{}

			case Leave:
				if group := h.groups[msg.RoomID]; group != nil {
					delete(group, msg.ClientID)
					if len(group) == 0 {
						delete(h.groups, msg.RoomID)
					}
				}

			case ToClient:
				if ch := h.clients[msg.ClientID]; ch != nil {
					h.send(msg.ClientID, ch, msg.Event)
				}

			case ToRoom:
				for id := range h.groups[msg.RoomID] {
					if ch := h.clients[id]; ch != nil {
						h.send(id, ch, msg.Event)
					}
				}

			case Broadcast:
				for id, ch := range h.clients {
					h.send(id, ch, msg.Event)
				}

			case GetState:
				view := View{NumClients: len(h.clients), GroupSizes: make(map[string]int, len(h.groups))}
				for roomID, group := range h.groups {
					view.GroupSizes[roomID] = len(group)
				}
				msg.Reply <- view

			case Shutdown:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) send(id string, ch chan Event, ev Event) {
	select {
	case ch <- ev:
	default:
		// Client is slow/full - drop them.
		h.drop(id)
	}
}

func (h *Hub) drop(id string) {
	ch, ok := h.clients[id]
	if !ok {
		return
	}
	close(ch)
	delete(h.clients, id)
	for roomID, group := range h.groups {
		delete(group, id)
		if len(group) == 0 {
			delete(h.groups, roomID)
		}
	}
}

func (h *Hub) shutdown() {
	for id := range h.clients {
		h.drop(id)
	}
	clear(h.groups)
	h.cancel()
}
