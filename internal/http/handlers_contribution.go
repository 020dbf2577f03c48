package http

import (
	"net/http"

	"github.com/google/uuid"

	"nestegg/internal/core"
	"nestegg/internal/services"
)

type recordContributionRequest struct {
	Amount    string `json:"amount"`
	Date      string `json:"date"`
	Confirmed bool   `json:"confirmed"`
}

func (s *Server) handleRecordContribution(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	var req recordContributionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid contribution amount")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return
	}

	c, err := s.service.RecordContribution(r.Context(), services.RecordContributionInput{
		GoalID:    goalID,
		Amount:    amount,
		Date:      date,
		Confirmed: req.Confirmed,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.invalidateGoal(goalID.String())
	writeJSON(w, http.StatusCreated, newContributionView(c))
}

func (s *Server) handleListContributions(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	contributions, err := s.service.Contributions(r.Context(), goalID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	views := make([]contributionView, 0, len(contributions))
	for _, c := range contributions {
		views = append(views, newContributionView(c))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleConfirmContribution(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid contribution id")
		return
	}

	c, err := s.service.ConfirmContribution(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// Confirmation changes the goal's current total.
	s.invalidateGoal(c.GoalID.String())
	writeJSON(w, http.StatusOK, newContributionView(c))
}
