// Package webhook receives job-update callbacks from the inference API.
// The server accepts the POST requests configured through a prediction's
// webhook options and hands the decoded records to a handler.
package webhook

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/user/augur/pkg/augur"
)

// Handler is the callback invoked for each delivered prediction update.
type Handler func(deliveryID string, p *augur.Prediction)

// Server is a lightweight HTTP handler for webhook deliveries.
type Server struct {
	secret  string
	handler Handler
	log     logrus.FieldLogger
	mux     *http.ServeMux
}

// NewServer creates a webhook Server. When secret is non-empty, deliveries
// must carry it in the X-Webhook-Secret header.
func NewServer(secret string, handler Handler, log logrus.FieldLogger) *Server {
	s := &Server{
		secret:  secret,
		handler: handler,
		log:     log,
		mux:     http.NewServeMux(),
	}
	// Method-prefixed ServeMux patterns require Go 1.22+; enforce the
	// method by hand so the server builds with older toolchains.
	s.mux.HandleFunc("/health", methodOnly(http.MethodGet, s.handleHealth))
	s.mux.HandleFunc("/webhook", methodOnly(http.MethodPost, s.handleDelivery))
	return s
}

func methodOnly(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method && !(method == http.MethodGet && r.Method == http.MethodHead) {
			w.Header().Set("Allow", method)
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

// ServeHTTP delegates to the internal mux, implementing http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleDelivery(w http.ResponseWriter, r *http.Request) {
	if s.secret != "" && r.Header.Get("X-Webhook-Secret") != s.secret {
		http.Error(w, `{"error":"invalid webhook secret"}`, http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, `{"error":"read body"}`, http.StatusBadRequest)
		return
	}

	p, err := augur.UnmarshalPrediction(body)
	if err != nil || p.ID == "" {
		http.Error(w, `{"error":"invalid prediction payload"}`, http.StatusBadRequest)
		return
	}

	// The API does not send a delivery ID; assign one so deliveries can
	// be correlated in logs.
	deliveryID := r.Header.Get("X-Delivery-ID")
	if deliveryID == "" {
		deliveryID = uuid.NewString()
	}

	s.log.WithFields(logrus.Fields{
		"delivery":   deliveryID,
		"prediction": p.ID,
		"status":     p.Status,
	}).Info("webhook delivery")

	s.handler(deliveryID, p)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"delivery": deliveryID})
}
