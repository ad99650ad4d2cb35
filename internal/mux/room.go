package mux

import (
	"homegame-server/pkg/room"
	"net/http"

	"github.com/sirupsen/logrus"
)

type postRoomResponse struct {
	RoomID string `json:"roomId"`
}

// postRoom allocates a room code
// The room itself opens when the first client connects to it.
func (m *Mux) postRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := room.NewRoomCode()
		logrus.WithField("room", code).WithField("remoteAddr", remoteAddr(r)).Info("room code allocated")
		writeJSON(w, http.StatusCreated, postRoomResponse{RoomID: code})
	}
}
