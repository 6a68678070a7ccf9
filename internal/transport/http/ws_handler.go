package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"space-stem-quiz/internal/app"
	"space-stem-quiz/internal/auth"
	"space-stem-quiz/internal/domain"
	"space-stem-quiz/internal/metrics"
)

type WSHandler struct {
	service   *app.QuizService
	directory *auth.Directory
	tokens    *auth.TokenService
	metrics   *metrics.Metrics
	upgrader  websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, dir *auth.Directory, tokens *auth.TokenService, m *metrics.Metrics) *WSHandler {
	return &WSHandler{
		service:   service,
		directory: dir,
		tokens:    tokens,
		metrics:   m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type placePayload struct {
	ItemID   string `json:"itemId"`
	TargetID string `json:"targetId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type questionPayload struct {
	Number   int                   `json:"number"`
	Total    int                   `json:"total"`
	Question domain.PublicQuestion `json:"question"`
}

type placementPayload struct {
	Pending []string `json:"pending"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and plays one session per connection. The session follows
// restarts and is abandoned when the socket closes.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	token := r.URL.Query().Get("token")
	if quizID == "" || token == "" {
		http.Error(w, "missing quizId or token", http.StatusBadRequest)
		return
	}
	user, err := resolveUser(r.Context(), h.tokens, h.directory, token)
	if err != nil {
		http.Error(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	state, err := h.service.Open(ctx, quizID, user)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	h.metrics.SocketOpened()
	defer h.metrics.SocketClosed()

	play := &wsPlay{service: h.service, sessionID: state.ID, send: make(chan outboundMessage[any], 16)}
	defer func() { h.service.Abandon(context.Background(), play.sessionID) }()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range play.send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				// keep draining so the reader never blocks on a dead socket
				for range play.send {
				}
				return
			}
		}
	}()

	play.emit("session", state)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		play.handle(ctx, inbound)
	}

	close(play.send)
	<-writerDone
}

// wsPlay holds the per-connection state driven by the read loop.
type wsPlay struct {
	service   *app.QuizService
	sessionID string
	send      chan outboundMessage[any]
}

func (p *wsPlay) emit(kind string, payload any) {
	p.send <- outboundMessage[any]{Type: kind, Payload: payload}
}

func (p *wsPlay) fail(msg string) {
	p.emit("error", errorPayload{Message: msg})
}

func (p *wsPlay) handle(ctx context.Context, inbound inboundMessage) {
	switch inbound.Type {
	case "start":
		state, err := p.service.Start(ctx, p.sessionID)
		if err != nil {
			p.fail(err.Error())
			return
		}
		p.emit("session", state)
		p.advance(ctx)

	case "answer":
		answer, err := domain.ParseAnswer(inbound.Payload)
		if err != nil {
			// a malformed answer is judged like any other wrong answer
			q, ok, cerr := p.service.Current(ctx, p.sessionID)
			if cerr != nil || !ok {
				p.fail("invalid answer payload")
				return
			}
			answer = domain.Unanswered(q.Type)
		}
		result, err := p.service.Submit(ctx, p.sessionID, answer)
		if err != nil {
			p.fail(err.Error())
			return
		}
		p.emit("result", result)

	case "next":
		p.advance(ctx)

	case "place":
		var payload placePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			p.fail("invalid place payload")
			return
		}
		result, pending, err := p.service.Place(ctx, p.sessionID, payload.ItemID, payload.TargetID)
		if err != nil {
			p.fail(err.Error())
			return
		}
		if result == nil {
			p.emit("placement", placementPayload{Pending: pending})
			return
		}
		p.emit("result", *result)

	case "restart":
		state, err := p.service.Restart(ctx, p.sessionID)
		if err != nil {
			p.fail(err.Error())
			return
		}
		p.sessionID = state.ID
		p.emit("session", state)

	default:
		p.fail("unsupported message type")
	}
}

// advance sends the question now on screen, or the summary once the session is complete.
// Clients ask for it with "next" after showing the feedback for a result, so a question's
// clock starts when it is sent.
func (p *wsPlay) advance(ctx context.Context) {
	state, err := p.service.State(ctx, p.sessionID)
	if err != nil {
		p.fail(err.Error())
		return
	}
	q, ok, err := p.service.Present(ctx, p.sessionID)
	if err != nil {
		p.fail(err.Error())
		return
	}
	if ok {
		p.emit("question", questionPayload{Number: state.Cursor + 1, Total: state.Total, Question: q.Public()})
		return
	}
	summary, err := p.service.Summary(ctx, p.sessionID)
	if err != nil {
		p.fail(err.Error())
		return
	}
	p.emit("summary", summary)
}
