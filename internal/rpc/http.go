// Package rpc is the service's front door: the authenticated JoinQueue
// HTTP/JSON route and the gRPC health surface spec.md §6 defines (Check/Watch).
package rpc

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/riftkeep/matchmaker/internal/auth"
	"github.com/riftkeep/matchmaker/internal/ingress"
	"github.com/riftkeep/matchmaker/internal/queue"
)

// joinQueueBody is the wire shape of a JoinQueue POST body (spec.md §4.D).
type joinQueueBody struct {
	PlayerID       string   `json:"player_id"`
	Region         string   `json:"region"`
	Ping           uint32   `json:"ping"`
	Difficulty     int32    `json:"difficulty"`
	JoinMode       uint8    `json:"join_mode"`
	PartyMode      int32    `json:"party_mode"`
	PartyMemberIDs []string `json:"party_member_ids"`
}

// Router wires the JoinQueue route behind session-token verification.
type Router struct {
	verifier *auth.Verifier
	service  *ingress.Service
	logger   *zap.Logger
}

// NewRouter builds a *mux.Router serving POST /v1/queue/join.
func NewRouter(verifier *auth.Verifier, service *ingress.Service, logger *zap.Logger) *mux.Router {
	r := &Router{verifier: verifier, service: service, logger: logger}

	router := mux.NewRouter()
	router.HandleFunc("/v1/queue/join", r.handleJoinQueue).Methods(http.MethodPost)
	return router
}

func (r *Router) handleJoinQueue(w http.ResponseWriter, req *http.Request) {
	token := bearerToken(req.Header.Get("Authorization"))
	userID, err := r.verifier.Verify(token)
	if err != nil {
		writeError(w, status.Error(codes.Unauthenticated, "missing or invalid session token"))
		return
	}

	var body joinQueueBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, status.Errorf(codes.InvalidArgument, "malformed request body: %v", err))
		return
	}

	resp, err := r.service.JoinQueue(req.Context(), userID, ingress.Request{
		PlayerID:       body.PlayerID,
		Region:         body.Region,
		Ping:           body.Ping,
		Difficulty:     body.Difficulty,
		JoinMode:       queue.JoinMode(body.JoinMode),
		PartyMode:      body.PartyMode,
		PartyMemberIDs: body.PartyMemberIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"player_id": resp.PlayerID,
		"status":    resp.Status,
	})
}

// bearerToken strips a leading "Bearer " scheme, if present, from the raw
// authorization header value (spec.md §6 "authorization metadata value").
func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimPrefix(header, prefix)
	}
	return header
}

func writeError(w http.ResponseWriter, err error) {
	st, _ := status.FromError(err)
	writeJSON(w, httpStatusFor(st.Code()), map[string]string{"error": st.Message()})
}

func httpStatusFor(code codes.Code) int {
	switch code {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
