package httpserver

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/abhisek/konnektoren/internal/command"
)

type acceptedResponse struct {
	Accepted string `json:"accepted"`
}

// handleCommand decodes a command in wire format. By default the command is
// published on the bus and 202 is returned; the outcome shows up on the event
// stream. With ?sync=true it is executed directly, so execution errors are
// reported as 409 and the resulting state is returned.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCommandBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	cmd, err := command.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sync, _ := strconv.ParseBool(r.URL.Query().Get("sync"))
	if !sync {
		s.ctrl.PublishCommand(cmd)
		writeJSON(w, http.StatusAccepted, acceptedResponse{Accepted: cmd.String()})
		return
	}

	if err := s.ctrl.HandleCommand(cmd); err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	if err := s.ctrl.SaveGameState(r.Context()); err != nil {
		s.logger.Error().Err(err).Str("command", cmd.String()).Msg("save after command")
	}
	writeJSON(w, http.StatusOK, s.ctrl.Snapshot())
}
