package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(req *http.Request) bool {
		return true
	},
}

const (
	statsInterval = 2 * time.Second
	writeTimeout  = 10 * time.Second
)

// @Summary	Open websocket for realtime stats
// @Router		/api/ws [get]
// @Param		Upgrade	header	string	true	"websocket"
// @Tags		base
// @Success	101
func (a *Api) handleWebsocket(w http.ResponseWriter, req *http.Request) {
	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		a.log.Warn(fmt.Sprintf("couldn't make websocket: %s", err))
		return
	}
	a.addClient(ws)
	defer a.removeClient(ws)

	go a.websocketWriter(ws)

	for {
		_, _, err := ws.ReadMessage()
		if err != nil {
			break
		}
	}
}

func (a *Api) addClient(ws *websocket.Conn) {
	a.wsMutex.Lock()
	defer a.wsMutex.Unlock()
	a.wsClients[ws] = true
	a.target.SetWsClients(len(a.wsClients))
}

func (a *Api) removeClient(ws *websocket.Conn) {
	a.wsMutex.Lock()
	defer a.wsMutex.Unlock()
	delete(a.wsClients, ws)
	a.target.SetWsClients(len(a.wsClients))
	err := ws.Close()
	if err != nil {
		a.log.Debug(fmt.Sprintf("could not close websocket: %s", err))
	}
}

func (a *Api) closeClients() {
	a.wsMutex.Lock()
	defer a.wsMutex.Unlock()
	for ws := range a.wsClients {
		err := ws.Close()
		if err != nil {
			a.log.Debug(fmt.Sprintf("could not close websocket: %s", err))
		}
	}
}

func (a *Api) websocketWriter(ws *websocket.Conn) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		packet, err := json.Marshal(a.target.Snapshot())
		if err != nil {
			return
		}
		err = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err != nil {
			return
		}
		if err := ws.WriteMessage(websocket.TextMessage, packet); err != nil {
			return
		}
		<-ticker.C
	}
}
