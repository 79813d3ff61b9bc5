package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/riskibarqy/nfl-insights/internal/domain/ranking"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
	"github.com/riskibarqy/nfl-insights/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
)

// RankingReader is the read side of the rank snapshot store.
type RankingReader interface {
	List(ctx context.Context) ([]ranking.Snapshot, error)
	GetByTeam(ctx context.Context, teamID int64) (ranking.Snapshot, bool, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	rankings RankingReader
	db       Pinger
	logger   *logging.Logger
}

func NewHandler(rankings RankingReader, db Pinger, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{rankings: rankings, db: db, logger: logger}
}

type rankingDTO struct {
	TeamID    int64          `json:"teamId"`
	Ranks     map[string]int `json:"ranks"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func toRankingDTO(item ranking.Snapshot) rankingDTO {
	ranks := item.Ranks
	if ranks == nil {
		ranks = map[string]int{}
	}
	return rankingDTO{TeamID: item.TeamID, Ranks: ranks, UpdatedAt: item.UpdatedAt.UTC()}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(pingCtx); err != nil {
			h.logger.WarnContext(ctx, "health check failed", "error", err)
			writeError(ctx, w, fmt.Errorf("%w: database: %v", usecase.ErrDependencyUnavailable, err))
			return
		}
	}

	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRouteSpan(r.Context(), routeRankings, "httpapi.Handler.ListRankings")
	defer span.End()

	items, err := h.rankings.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list rankings failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	sort.Slice(items, func(i, j int) bool { return items[i].TeamID < items[j].TeamID })
	span.SetAttributes(attribute.Int("rankings.count", len(items)))

	out := make([]rankingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toRankingDTO(item))
	}
	writeSuccess(w, http.StatusOK, map[string]any{"items": out})
}

func (h *Handler) GetTeamRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRouteSpan(r.Context(), routeTeamRanking, "httpapi.Handler.GetTeamRanking")
	defer span.End()

	raw := r.PathValue("teamID")
	teamID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || teamID <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: team id %q", usecase.ErrInvalidInput, raw))
		return
	}

	span.SetAttributes(attribute.Int64("team.id", teamID))

	item, ok, err := h.rankings.GetByTeam(ctx, teamID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get team ranking failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}
	span.SetAttributes(attribute.Bool("ranking.found", ok))
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: no ranking for team %d", usecase.ErrNotFound, teamID))
		return
	}

	writeSuccess(w, http.StatusOK, toRankingDTO(item))
}
