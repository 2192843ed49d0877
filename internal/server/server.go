// Package server exposes the dashboard controller over HTTP and a websocket.
package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"StockDashboard/internal/dashboard"
	"StockDashboard/internal/export"
	"StockDashboard/internal/model"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

//go:embed templates/index.html
var templateFS embed.FS

var page = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Server routes requests to a dashboard.Controller.
type Server struct {
	Controller *dashboard.Controller
	Router     *mux.Router

	upgrader websocket.Upgrader
}

// New builds the router for c.
func New(c *dashboard.Controller) *Server {
	s := &Server{
		Controller: c,
		Router:     mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}

	s.Router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.Router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.Router.HandleFunc("/ws", s.handleWS)

	api := s.Router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/tab", s.handleTab).Methods(http.MethodGet)
	api.HandleFunc("/submit", s.handleSubmit).Methods(http.MethodGet)
	api.HandleFunc("/export", s.handleExport).Methods(http.MethodGet)
	api.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

type pageData struct {
	Symbol      string
	Start       string
	End         string
	RangeSlider bool
	Tab         dashboard.TabState
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	d := s.Controller.Defaults
	tab := d.Tab
	if tab == "" {
		tab = dashboard.TabData
	}
	data := pageData{
		Symbol:      d.Symbol,
		Start:       d.Start.String(),
		End:         d.End.String(),
		RangeSlider: d.RangeSlider,
		Tab:         s.Controller.SwitchTab(tab),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, data); err != nil {
		log.Printf("[ERROR] render page: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTab(w http.ResponseWriter, r *http.Request) {
	tab := dashboard.ParseTab(r.URL.Query().Get("tab"))
	writeJSON(w, http.StatusOK, s.Controller.SwitchTab(tab))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	req, err := s.submitRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Controller.Submit(r.Context(), req))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = "csv"
	}
	exp := export.New(format)
	if exp == nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported format %q", format))
		return
	}
	req, err := s.submitRequest(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	series, outcome := s.Controller.Series(r.Context(), req.Symbol, req.Start, req.End)
	if outcome.Failed() {
		writeError(w, http.StatusBadGateway, fmt.Errorf("fetch %s: %s", req.Symbol, outcome.Reason))
		return
	}

	w.Header().Set("Content-Type", exp.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(series, exp)))
	if err := exp.Write(w, series); err != nil {
		log.Printf("[ERROR] export %s as %s: %v", req.Symbol, format, err)
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", v))
			return
		}
		limit = n
	}
	subs, err := s.Controller.History(limit)
	if err != nil {
		log.Printf("[ERROR] history: %v", err)
		writeError(w, http.StatusInternalServerError, errors.New("history unavailable"))
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

// submitRequest reads the held input fields from q. Absent fields fall back
// to the page defaults; a present symbol is used exactly as typed.
func (s *Server) submitRequest(q url.Values) (dashboard.SubmitRequest, error) {
	d := s.Controller.Defaults
	req := dashboard.SubmitRequest{
		Symbol:      d.Symbol,
		Start:       d.Start,
		End:         d.End,
		RangeSlider: d.RangeSlider,
	}
	if q.Has("symbol") {
		req.Symbol = q.Get("symbol")
	}
	if q.Has("start") {
		date, err := model.ParseDate(q.Get("start"))
		if err != nil {
			return req, fmt.Errorf("start: %w", err)
		}
		req.Start = date
	}
	if q.Has("end") {
		date, err := model.ParseDate(q.Get("end"))
		if err != nil {
			return req, fmt.Errorf("end: %w", err)
		}
		req.End = date
	}
	if q.Has("range_slider") {
		on, err := parseFlag(q.Get("range_slider"))
		if err != nil {
			return req, err
		}
		req.RangeSlider = on
	}
	return req, nil
}

// parseFlag accepts the option control's 1/0 values and the usual spellings.
func parseFlag(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("range_slider: invalid value %q", v)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[WARN] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
