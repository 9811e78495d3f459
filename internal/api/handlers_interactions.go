package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/ignite/phishguard/internal/pkg/httputil"
	"github.com/ignite/phishguard/internal/pkg/logger"
	"github.com/ignite/phishguard/internal/service/interaction"
)

// CompleteTraining marks an interaction's awareness training as done.
// Completion is reported from outside the simulation (LMS callback or a
// manual admin action), which is why it is an authenticated endpoint and
// not a tracking one. Repeat calls refresh the completion timestamp.
func (h *Handlers) CompleteTraining(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "interactionID")
	if !ok {
		httputil.BadRequest(w, "invalid interaction id")
		return
	}

	rec, err := h.interactions.RecordTrainingCompleted(r.Context(), id, time.Now().UTC())
	if err != nil {
		if errors.Is(err, interaction.ErrNotFound) {
			httputil.NotFound(w, "interaction not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}

	logger.Info("training completion recorded", "interaction_id", id)
	httputil.OK(w, rec)
}
