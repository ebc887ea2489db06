package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
	"timed-quiz-service/internal/scoring"
)

type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
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

type selectPayload struct {
	Option string `json:"option"`
}

type jumpPayload struct {
	Index int `json:"index"`
}

type startedPayload struct {
	SessionID string          `json:"sessionId"`
	Title     string          `json:"title"`
	Pattern   scoring.Pattern `json:"pattern"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

var errUnsupported = errors.New("unsupported message type")

// ServeWS upgrades HTTP requests to websockets and drives one quiz session per connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	if quizID == "" {
		http.Error(w, "missing quizId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// A load failure still yields a session in the error state that the
	// client can reload.
	session, loadErr := h.service.Start(r.Context(), quizID)

	updates, cancel, err := h.service.Subscribe(r.Context(), session.ID())
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})
	var submissions sync.WaitGroup

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "started", Payload: startedPayload{
		SessionID: session.ID(),
		Title:     session.View().Title,
		Pattern:   session.Pattern(),
	}}
	if loadErr != nil {
		log.Printf("session %s: %v", session.ID(), loadErr)
	}

	go func() {
		defer close(updatesDone)
		for {
			select {
			case ev, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: string(ev.Type), Payload: ev}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if inbound.Type == "submit" {
			// submission sleeps for the configured delay; keep reading meanwhile
			submissions.Add(1)
			go func() {
				defer submissions.Done()
				if _, err := session.Submit(false); err != nil && !errors.Is(err, domain.ErrInvalidTransition) {
					log.Printf("session %s: submit: %v", session.ID(), err)
				}
			}()
			continue
		}
		reply, err := h.handle(r, session, inbound)
		switch {
		case errors.Is(err, domain.ErrInvalidTransition):
			// not valid in the current state: ignored
		case err != nil:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
		case reply != nil:
			send <- *reply
		}
	}

	submissions.Wait()
	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone

	// finished sessions stay around for the report endpoint until evicted
	if !session.State().Finished() {
		h.service.End(r.Context(), session.ID())
	}
}

// handle applies one inbound intent. State changes reach the client through
// the session subscription; only direct replies are returned.
func (h *WSHandler) handle(r *http.Request, session *app.Session, inbound inboundMessage) (*outboundMessage[any], error) {
	switch inbound.Type {
	case "select":
		var payload selectPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return nil, errors.New("invalid select payload")
		}
		return nil, session.SelectOption(payload.Option)
	case "clear":
		return nil, session.ClearResponse()
	case "mark":
		return nil, session.MarkForReview()
	case "next":
		return nil, session.Next()
	case "previous":
		return nil, session.Previous()
	case "jump":
		var payload jumpPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return nil, errors.New("invalid jump payload")
		}
		return nil, session.JumpTo(payload.Index)
	case "promptSubmit":
		prompt, err := session.PromptSubmit()
		if err != nil {
			return nil, err
		}
		return &outboundMessage[any]{Type: "confirm", Payload: prompt}, nil
	case "review":
		review, err := session.Review()
		if err != nil {
			return nil, err
		}
		return &outboundMessage[any]{Type: "review", Payload: review}, nil
	case "reload":
		_, err := h.service.Reload(r.Context(), session.ID())
		if err != nil && !errors.Is(err, domain.ErrInvalidTransition) {
			// the failure itself reaches the client as an error event
			log.Printf("session %s: reload: %v", session.ID(), err)
			return nil, nil
		}
		return nil, err
	default:
		return nil, errUnsupported
	}
}
