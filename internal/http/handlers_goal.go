package http

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"nestegg/internal/core"
	"nestegg/internal/services"
)

type createGoalRequest struct {
	Name              string `json:"name"`
	TargetAmount      string `json:"target_amount"`
	TargetDate        string `json:"target_date"`
	InitialAmount     string `json:"initial_amount"`
	MonthlyPledge     string `json:"monthly_pledge"`
	AnnualRatePercent string `json:"annual_rate_percent"`
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	target, err := core.ParseAmount(req.TargetAmount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid target amount")
		return
	}
	targetDate, err := parseDate(req.TargetDate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid target date, expected YYYY-MM-DD")
		return
	}
	initial, err := core.ParseOptionalAmount(req.InitialAmount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid initial amount")
		return
	}
	pledge, err := core.ParseOptionalAmount(req.MonthlyPledge)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid monthly pledge")
		return
	}
	rate, err := core.ParseRate(req.AnnualRatePercent)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid annual rate, expected percentage in [0, 100]")
		return
	}

	g, err := s.service.CreateGoal(r.Context(), services.CreateGoalInput{
		Name:              sanitizeInput(req.Name),
		TargetAmount:      target,
		TargetDate:        targetDate,
		InitialAmount:     initial,
		MonthlyPledge:     pledge,
		AnnualRatePercent: rate,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.invalidateGoal(g.ID.String())

	calc, err := s.service.GoalWithCalculations(r.Context(), g.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newGoalView(calc))
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	key := goalCacheKey(id.String())
	if cached, found := s.goalCache.Get(key); found {
		slog.DebugContext(r.Context(), "Goal cache hit", "goal_id", id)
		writeJSON(w, http.StatusOK, newGoalView(cached))
		return
	}

	calc, err := s.service.GoalWithCalculations(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.goalCache.Set(key, calc)
	writeJSON(w, http.StatusOK, newGoalView(calc))
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	if cached, found := s.listCache.Get(listCacheKey); found {
		slog.DebugContext(r.Context(), "Goal list cache hit", "count", len(cached))
		writeGoalList(w, cached)
		return
	}

	goals, err := s.service.ListGoalsWithCalculations(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.listCache.Set(listCacheKey, goals)
	writeGoalList(w, goals)
}

func writeGoalList(w http.ResponseWriter, goals []core.GoalWithCalculations) {
	views := make([]goalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, newGoalView(g))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	if err := s.service.DeleteGoal(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.invalidateGoal(id.String())
	w.WriteHeader(http.StatusNoContent)
}
