package server

import (
	"log"
	"net/http"
	"net/url"

	"StockDashboard/internal/dashboard"

	"github.com/gorilla/websocket"
)

// Event names carried on the websocket.
const (
	EventTab    = "tab"
	EventSubmit = "submit"
	EventError  = "error"
)

// wsRequest is one browser event. Fields mirror the query parameters of the
// JSON endpoints. Symbol is a pointer so that an empty symbol stays distinct
// from an absent one.
type wsRequest struct {
	Event       string  `json:"event"`
	Tab         string  `json:"tab,omitempty"`
	Symbol      *string `json:"symbol,omitempty"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	RangeSlider string  `json:"range_slider"`
}

type wsResponse struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// handleWS serves one browser session. Events are handled in arrival order,
// so a session never has more than one fetch in flight.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WARN] websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	for {
		var msg wsRequest
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[WARN] websocket read: %v", err)
			}
			return
		}

		resp := s.dispatch(r, msg)
		if err := conn.WriteJSON(resp); err != nil {
			log.Printf("[WARN] websocket write: %v", err)
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (s *Server) dispatch(r *http.Request, msg wsRequest) wsResponse {
	switch msg.Event {
	case EventTab:
		return wsResponse{Event: EventTab, Data: s.Controller.SwitchTab(dashboard.ParseTab(msg.Tab))}
	case EventSubmit:
		req, err := s.submitRequest(msg.values())
		if err != nil {
			return wsResponse{Event: EventError, Error: err.Error()}
		}
		return wsResponse{Event: EventSubmit, Data: s.Controller.Submit(r.Context(), req)}
	default:
		return wsResponse{Event: EventError, Error: "unknown event " + msg.Event}
	}
}

// values converts the event into query form. A sent symbol is kept as is,
// even when empty; empty dates and flags count as absent.
func (m wsRequest) values() url.Values {
	q := url.Values{}
	if m.Symbol != nil {
		q.Set("symbol", *m.Symbol)
	}
	if m.Start != "" {
		q.Set("start", m.Start)
	}
	if m.End != "" {
		q.Set("end", m.End)
	}
	if m.RangeSlider != "" {
		q.Set("range_slider", m.RangeSlider)
	}
	return q
}
