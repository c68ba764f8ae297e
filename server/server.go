// Package server exposes the core contract to external UIs over a
// websocket: meld validation, meld points and move selection. Tiles cross
// the wire as canonical (color, value, joker) tuples; translating board
// coordinates to melds is the caller's job.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/eitancoronel/AI-Rummikub/game"
	"github.com/eitancoronel/AI-Rummikub/strategy"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type inMsg struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p,omitempty"`
}

type outMsg struct {
	T string      `json:"t"`
	P interface{} `json:"p,omitempty"`
}

type errPayload struct {
	Msg string `json:"msg"`
}

type wireTile struct {
	Color string `json:"color,omitempty"`
	Value int    `json:"value,omitempty"`
	Joker bool   `json:"joker,omitempty"`
}

type validateReq struct {
	Tiles []wireTile `json:"tiles"`
}

type validateResp struct {
	Valid bool `json:"valid"`
	Run   bool `json:"run"`
	Group bool `json:"group"`
}

type pointsResp struct {
	Points int `json:"points"`
}

type selectReq struct {
	Board    [][]wireTile `json:"board"`
	Hand     []wireTile   `json:"hand"`
	Strategy string       `json:"strategy"`
}

type selectResp struct {
	Found bool         `json:"found"`
	Board [][]wireTile `json:"board,omitempty"`
	Hand  []wireTile   `json:"hand,omitempty"`
}

// Server answers contract requests. Each connection gets its own strategy
// instances so the opening-meld flag tracks one game per client.
type Server struct {
	addr string
	seed uint64
}

func New(addr string, seed uint64) *Server {
	return &Server{addr: addr, seed: seed}
}

// ListenAndServe blocks serving websocket connections on /play.
func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/play", s.handlePlay)
	log.Info().Str("addr", s.addr).Msg("server listening")
	return http.ListenAndServe(s.addr, mux)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer ws.Close()

	session := newSession(rand.New(rand.NewSource(s.seed)))
	for {
		var msg inMsg
		if err := ws.ReadJSON(&msg); err != nil {
			return
		}
		resp := session.dispatch(msg)
		if err := ws.WriteJSON(resp); err != nil {
			log.Warn().Err(err).Msg("websocket write failed")
			return
		}
	}
}

// session holds per-connection strategies keyed by kind.
type session struct {
	rng        *rand.Rand
	strategies map[strategy.Kind]strategy.Strategy
}

func newSession(rng *rand.Rand) *session {
	return &session{rng: rng, strategies: make(map[strategy.Kind]strategy.Strategy)}
}

func (s *session) dispatch(msg inMsg) outMsg {
	switch msg.T {
	case "validate":
		return s.handleValidate(msg.P)
	case "points":
		return s.handlePoints(msg.P)
	case "select":
		return s.handleSelect(msg.P)
	default:
		return outMsg{T: "error", P: errPayload{Msg: fmt.Sprintf("unknown message type %q", msg.T)}}
	}
}

func (s *session) handleValidate(p json.RawMessage) outMsg {
	var req validateReq
	if err := json.Unmarshal(p, &req); err != nil {
		return errMsg(err)
	}
	tiles, err := fromWire(req.Tiles)
	if err != nil {
		return errMsg(err)
	}
	return outMsg{T: "validate", P: validateResp{
		Valid: game.IsValidMeld(tiles),
		Run:   game.IsValidRun(tiles),
		Group: game.IsValidGroup(tiles),
	}}
}

func (s *session) handlePoints(p json.RawMessage) outMsg {
	var req validateReq
	if err := json.Unmarshal(p, &req); err != nil {
		return errMsg(err)
	}
	tiles, err := fromWire(req.Tiles)
	if err != nil {
		return errMsg(err)
	}
	return outMsg{T: "points", P: pointsResp{Points: game.MeldPoints(tiles)}}
}

func (s *session) handleSelect(p json.RawMessage) outMsg {
	var req selectReq
	if err := json.Unmarshal(p, &req); err != nil {
		return errMsg(err)
	}

	board := make(game.Board, len(req.Board))
	for i, meld := range req.Board {
		tiles, err := fromWire(meld)
		if err != nil {
			return errMsg(err)
		}
		board[i] = game.Meld(tiles)
	}
	handTiles, err := fromWire(req.Hand)
	if err != nil {
		return errMsg(err)
	}

	agent, err := s.agent(strategy.Kind(req.Strategy))
	if err != nil {
		return errMsg(err)
	}

	move, found := agent.SelectMove(board, game.Hand(handTiles))
	if !found {
		return outMsg{T: "select", P: selectResp{Found: false}}
	}

	outBoard := make([][]wireTile, len(move.Board))
	for i, meld := range move.Board {
		outBoard[i] = toWire(meld)
	}
	return outMsg{T: "select", P: selectResp{
		Found: true,
		Board: outBoard,
		Hand:  toWire(move.Hand),
	}}
}

func (s *session) agent(kind strategy.Kind) (strategy.Strategy, error) {
	if agent, ok := s.strategies[kind]; ok {
		return agent, nil
	}
	agent, err := strategy.New(kind, s.rng)
	if err != nil {
		return nil, err
	}
	s.strategies[kind] = agent
	return agent, nil
}

func errMsg(err error) outMsg {
	return outMsg{T: "error", P: errPayload{Msg: err.Error()}}
}

func fromWire(tiles []wireTile) (game.Meld, error) {
	out := make(game.Meld, len(tiles))
	for i, t := range tiles {
		if t.Joker {
			out[i] = game.Tile{Joker: true}
			continue
		}
		color, err := parseColor(t.Color)
		if err != nil {
			return nil, err
		}
		if t.Value < game.MinValue || t.Value > game.MaxValue {
			return nil, fmt.Errorf("tile value %d out of range", t.Value)
		}
		out[i] = game.Tile{Color: color, Value: t.Value}
	}
	return out, nil
}

func toWire(tiles []game.Tile) []wireTile {
	out := make([]wireTile, len(tiles))
	for i, t := range tiles {
		if t.Joker {
			out[i] = wireTile{Joker: true}
			continue
		}
		out[i] = wireTile{Color: t.Color.String(), Value: t.Value}
	}
	return out
}

func parseColor(s string) (game.Color, error) {
	switch s {
	case "red":
		return game.Red, nil
	case "blue":
		return game.Blue, nil
	case "green":
		return game.Green, nil
	case "yellow":
		return game.Yellow, nil
	default:
		return 0, fmt.Errorf("unknown color %q", s)
	}
}
