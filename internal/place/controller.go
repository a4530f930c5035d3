package place

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"qrmenu/internal/auth"
	"qrmenu/internal/dto"
	apperrors "qrmenu/internal/errors"
)

type PublicMenuUseCase interface {
	Get(ctx context.Context, placeID uint64) (*dto.PublicMenu, error)
}

type PlaceStatsUseCase interface {
	Get(ctx context.Context, actorID, placeID uint64, forceRefresh bool) (*dto.PlaceStats, error)
}

type Controller struct {
	menuUC  PublicMenuUseCase
	statsUC PlaceStatsUseCase
	logger  *zap.Logger
}

func NewController(menuUC PublicMenuUseCase, statsUC PlaceStatsUseCase, logger *zap.Logger) *Controller {
	return &Controller{
		menuUC:  menuUC,
		statsUC: statsUC,
		logger:  logger,
	}
}

// GET /places/{placeId}/menu/public
func (c *Controller) GetPublicMenu(w http.ResponseWriter, r *http.Request) {
	placeID, ok := c.pathPlaceID(w, r)
	if !ok {
		return
	}

	menu, err := c.menuUC.Get(r.Context(), placeID)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.OK(menu))
}

// GET /places/{placeId}/stats?refresh=
func (c *Controller) GetStats(w http.ResponseWriter, r *http.Request) {
	actorID, ok := auth.ActorFrom(r.Context())
	if !ok {
		c.writeJSON(w, http.StatusUnauthorized, dto.Err("UNAUTHORIZED", "authentication required", nil))
		return
	}

	placeID, ok2 := c.pathPlaceID(w, r)
	if !ok2 {
		return
	}

	forceRefresh := r.URL.Query().Get("refresh") == "true"

	stats, err := c.statsUC.Get(r.Context(), actorID, placeID, forceRefresh)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.OK(stats))
}

func (c *Controller) pathPlaceID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := chi.URLParam(r, "placeId")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.writeJSON(w, http.StatusBadRequest, dto.Err("INVALID_INPUT", "placeId must be a positive integer", nil))
		return 0, false
	}
	return id, true
}

func (c *Controller) handleError(w http.ResponseWriter, err error) {
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, dto.Err("NOT_FOUND", nf.Message, nil))
		return
	}
	if fe, ok := apperrors.IsForbiddenError(err); ok {
		c.writeJSON(w, http.StatusForbidden, dto.Err("FORBIDDEN", fe.Message, nil))
		return
	}
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, dto.Err("INVALID_INPUT", ve.Message, ve.Details))
		return
	}

	c.logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, dto.Err("INTERNAL_ERROR", "an unexpected error occurred", nil))
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
