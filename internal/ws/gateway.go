package ws

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cartada/cartada-backend/internal/game"
	"github.com/cartada/cartada-backend/internal/hub"
	"github.com/cartada/cartada-backend/internal/rooms"
)

type handlerFunc func(clientID string, data json.RawMessage)

// Gateway routes inbound events to registry/engine operations and pushes
// the resulting state through the hub. Domain errors go back to the
// offending client as errorMessage events and never close the connection.
type Gateway struct {
	hub      *hub.Hub
	registry *rooms.Registry
	engine   *game.Engine
	log      *zap.Logger

	// pacing spaces the draw and deal phases of the start pipeline for
	// presentation; zero collapses the pipeline to synchronous calls.
	pacing time.Duration

	routes map[string]handlerFunc
}

func NewGateway(h *hub.Hub, registry *rooms.Registry, engine *game.Engine, log *zap.Logger, pacing time.Duration) *Gateway {
	g := &Gateway{
		hub:      h,
		registry: registry,
		engine:   engine,
		log:      log,
		pacing:   pacing,
	}
	g.routes = map[string]handlerFunc{
		"createRoom":      g.handleCreateRoom,
		"joinRoom":        g.handleJoinRoom,
		"leaveRoom":       g.handleLeaveRoom,
		"toggleUserReady": g.handleToggleUserReady,
		"getRooms":        g.handleGetRooms,
		"getRoomUsers":    g.handleGetRoomUsers,
		"startGame":       g.handleStartGame,
		"getGame":         g.handleGetGame,
		"playCard":        g.handlePlayCard,
	}
	return g
}

// Dispatch looks the event up in the route table and runs its handler.
func (g *Gateway) Dispatch(clientID string, env Envelope) {
	h, ok := g.routes[env.Event]
	if !ok {
		g.fail(clientID, fmt.Sprintf("unknown event %q", env.Event))
		return
	}
	h(clientID, env.Data)
}

// HandleConnect runs when a connection has been registered with the hub.
func (g *Gateway) HandleConnect(clientID string) {
	g.toClient(clientID, hub.Event{Name: EvtRoomsUpdate, Data: g.registry.GetRooms()})
}

// HandleDisconnect drops the departing user from their room and tells the
// survivors.
func (g *Gateway) HandleDisconnect(clientID string) {
	var (
		room rooms.Room
		ok   bool
	)
	if _, inGame := g.engine.FindGameByPlayerID(clientID); inGame {
		room, ok = g.engine.RemoveUser(clientID)
	} else {
		room, ok = g.registry.RemoveUserOnDisconnect(clientID)
	}
	if !ok {
		return
	}

	g.toRoom(room.ID, hub.Event{Name: EvtRoomUsers, Data: room.Users})
	g.broadcast(hub.Event{Name: EvtRoomsUpdate, Data: g.registry.GetRooms()})
}

func (g *Gateway) handleCreateRoom(clientID string, data json.RawMessage) {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		g.fail(clientID, "invalid room name")
		return
	}

	id := g.registry.CreateRoom(name)
	g.toClient(clientID, hub.Event{Name: EvtRoomCreated, Data: roomCreatedPayload{ID: id, Name: name}})
}

func (g *Gateway) handleJoinRoom(clientID string, data json.RawMessage) {
	var roomID string
	if err := json.Unmarshal(data, &roomID); err != nil {
		g.fail(clientID, "invalid room id")
		return
	}

	if _, err := g.registry.AddUserToRoom(roomID, clientID); err != nil {
		g.fail(clientID, fmt.Sprintf("room %s does not exist", roomID))
		return
	}

	g.hub.Inbox() <- hub.Join{ClientID: clientID, RoomID: roomID}
	g.broadcast(hub.Event{Name: EvtRoomsUpdate, Data: g.registry.GetRooms()})
}

func (g *Gateway) handleLeaveRoom(clientID string, _ json.RawMessage) {
	room, ok := g.registry.FindRoomByUserID(clientID)
	if !ok {
		return
	}

	updated, err := g.registry.RemoveUserFromRoom(room.ID, clientID)
	if err != nil {
		return
	}

	g.hub.Inbox() <- hub.Leave{ClientID: clientID, RoomID: room.ID}
	g.toRoom(room.ID, hub.Event{Name: EvtRoomUsers, Data: updated.Users})
	g.broadcast(hub.Event{Name: EvtRoomsUpdate, Data: g.registry.GetRooms()})
}

func (g *Gateway) handleToggleUserReady(clientID string, _ json.RawMessage) {
	room, err := g.registry.ToggleUserReady(clientID)
	if err != nil {
		g.fail(clientID, err.Error())
		return
	}

	g.toRoom(room.ID, hub.Event{Name: EvtRoomUsers, Data: room.Users})
}

func (g *Gateway) handleGetRooms(clientID string, _ json.RawMessage) {
	g.toClient(clientID, hub.Event{Name: EvtRoomsUpdate, Data: g.registry.GetRooms()})
}

func (g *Gateway) handleGetRoomUsers(clientID string, data json.RawMessage) {
	var roomID string
	if err := json.Unmarshal(data, &roomID); err != nil {
		g.fail(clientID, "invalid room id")
		return
	}

	room, ok := g.registry.GetRoomByID(roomID)
	if !ok {
		// lookup callers are expected to hold a live room id; this is a
		// client bug, not a rule violation
		g.log.Error("getRoomUsers for unknown room", zap.String("roomId", roomID), zap.String("clientId", clientID))
		g.fail(clientID, fmt.Sprintf("room %s not found", roomID))
		return
	}

	g.toRoom(room.ID, hub.Event{Name: EvtRoomUsers, Data: room.Users})
}

func (g *Gateway) handleStartGame(clientID string, _ json.RawMessage) {
	room, ok := g.registry.FindRoomByUserID(clientID)
	if !ok {
		g.fail(clientID, "you are not in a room")
		return
	}

	started, err := g.engine.StartGame(room, clientID)
	if err != nil {
		g.fail(clientID, err.Error())
		return
	}

	g.toRoom(room.ID, hub.Event{Name: EvtGameStarted, Data: started})
	go g.runStartPipeline(room)
}

// runStartPipeline drives the two follow-up phases of a game start: the
// turn-order draw, then the deal. The pauses are purely presentation
// pacing for the clients' reveal animations.
func (g *Gateway) runStartPipeline(room rooms.Room) {
	time.Sleep(g.pacing)

	drawn, err := g.engine.DrawSequenceOfPlayers(room)
	if err != nil {
		g.log.Error("draw sequence failed", zap.String("roomId", room.ID), zap.Error(err))
		return
	}
	g.toRoom(room.ID, hub.Event{Name: EvtPlayersSequence, Data: drawn})

	time.Sleep(g.pacing)

	dealtGame, err := g.engine.DealHands(room)
	if err != nil {
		g.log.Error("deal failed", zap.String("roomId", room.ID), zap.Error(err))
		return
	}
	g.toRoom(room.ID, hub.Event{Name: EvtGame, Data: dealtGame})
}

func (g *Gateway) handleGetGame(clientID string, data json.RawMessage) {
	var gameID string
	if err := json.Unmarshal(data, &gameID); err != nil {
		g.fail(clientID, "invalid game id")
		return
	}

	gm, ok := g.engine.FindGameByID(gameID)
	if !ok {
		g.fail(clientID, fmt.Sprintf("game %s not found", gameID))
		return
	}

	g.toClient(clientID, hub.Event{Name: EvtGame, Data: gm})
}

func (g *Gateway) handlePlayCard(clientID string, data json.RawMessage) {
	var payload playCardPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		g.fail(clientID, "invalid play")
		return
	}

	cards := make([]game.CardToPlay, 0, len(payload.Cards))
	for _, c := range payload.Cards {
		cards = append(cards, game.CardToPlay{ID: c.ID, SubstituteValue: c.SubstituteValue})
	}

	gm, isNewRound, err := g.engine.PlayCard(clientID, cards)
	if err != nil {
		g.fail(clientID, err.Error())
		return
	}

	g.toRoom(gm.ID, hub.Event{Name: EvtGame, Data: gm})
	if isNewRound {
		g.toRoom(gm.ID, hub.Event{Name: EvtNewRound})
	}
}

func (g *Gateway) toClient(clientID string, ev hub.Event) {
	g.hub.Inbox() <- hub.ToClient{ClientID: clientID, Event: ev}
}

func (g *Gateway) toRoom(roomID string, ev hub.Event) {
	g.hub.Inbox() <- hub.ToRoom{RoomID: roomID, Event: ev}
}

func (g *Gateway) broadcast(ev hub.Event) {
	g.hub.Inbox() <- hub.Broadcast{Event: ev}
}

func (g *Gateway) fail(clientID string, msg string) {
	g.toClient(clientID, hub.Event{Name: EvtError, Data: msg})
}
