package mux

import (
	"context"
	"homegame-server/pkg/room"
	"net/http"
	"strings"

	gmux "github.com/gorilla/mux"
)

type ctxKey int

const (
	ctxRoomKey ctxKey = iota
)

// RoomDispatcher hands websocket clients to their room
type RoomDispatcher interface {
	ClientConnected(client *room.Client)
	ClientDisconnected(client *room.Client)
	RoomCount() int
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	rooms   RoomDispatcher

	// store for testing purposes
	roomRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, rooms RoomDispatcher) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		rooms:   rooms,
	}

	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/room").Handler(this.postRoom())
	}

	// room code in the path
	{
		this.roomRouter = this.Router.PathPrefix("/room/{roomID:[A-Za-z0-9]{1,32}}").Subrouter()
		this.roomRouter.Use(this.roomMiddleware)

		this.roomRouter.Methods(http.MethodGet).Path("/ws").Handler(this.getRoomIDWS())
	}

	return this
}

// roomMiddleware normalizes the room code, codes are case-insensitive
func (m *Mux) roomMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		roomID := strings.ToUpper(gmux.Vars(r)["roomID"])
		newCtx := context.WithValue(r.Context(), ctxRoomKey, roomID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
