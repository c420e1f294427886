package ws

import "encoding/json"

// Envelope is the inbound wire frame: an event name plus its raw payload,
// decoded by the matching handler. Outbound frames reuse hub.Event, which
// marshals to the same {"event","data"} shape.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Outbound event names.
const (
	EvtRoomCreated     = "roomCreated"
	EvtRoomsUpdate     = "roomsUpdate"
	EvtRoomUsers       = "roomUsers"
	EvtGameStarted     = "gameStarted"
	EvtPlayersSequence = "playersSequence"
	EvtGame            = "game"
	EvtNewRound        = "newRound"
	EvtError           = "errorMessage"
)

type roomCreatedPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type playCardPayload struct {
	Cards []cardToPlayPayload `json:"cards"`
}

type cardToPlayPayload struct {
	ID              string `json:"id"`
	SubstituteValue *int   `json:"substituteValue,omitempty"`
}
