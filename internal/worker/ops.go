package worker

import (
	"net/http"

	"github.com/phoffmann/entitysync/internal/worker/jsoncodec"
)

// startOpsServer exposes the registered consumers and their counters on
// /consumers when an ops port is configured.
func (s *Service) startOpsServer() {
	if s.Conf.OpsPort <= 0 {
		return
	}

	s.RegisterHTTPHandler(s.Conf.OpsPort, "/consumers", http.HandlerFunc(s.handleGetConsumers))
}

func (s *Service) handleGetConsumers(w http.ResponseWriter, r *http.Request) {
	s.consumersMu.RLock()
	defer s.consumersMu.RUnlock()

	w.Header().Set("Content-Type", "application/json")

	body, err := jsoncodec.Marshal(s.consumers)
	if err != nil {
		s.Logger.Error("Failed to encode consumers", err, nil)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if _, err := w.Write(body); err != nil {
		s.Logger.Error("Failed to write consumers response", err, nil)
	}
}
