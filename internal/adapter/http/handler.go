package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"strconv"
	"strings"

	staticguide "xianverse/internal/adapter/guide/static"
	"xianverse/internal/app/activity"
	"xianverse/internal/app/breakthrough"
	"xianverse/internal/app/combat"
	"xianverse/internal/app/daily"
	"xianverse/internal/app/enroll"
	"xianverse/internal/app/guide"
	"xianverse/internal/app/history"
	"xianverse/internal/app/ports"
	"xianverse/internal/app/profile"
	"xianverse/internal/app/rank"
	"xianverse/internal/domain/cultivation"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const userIDHeader = "X-User-ID"

var ErrMissingUserIDHeader = errors.New("missing x-user-id header")

type Handler struct {
	EnrollUC       enroll.UseCase
	ActivityUC     activity.UseCase
	BreakthroughUC breakthrough.UseCase
	CombatUC       combat.UseCase
	DailyUC        daily.UseCase
	ProfileUC      profile.UseCase
	RankUC         rank.UseCase
	HistoryUC      history.UseCase
	GuideUC        guide.UseCase
	KPI            kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api")
	api.POST("/enroll", h.enroll)
	api.POST("/activity/begin", h.activityBegin)
	api.GET("/activity/status", h.activityStatus)
	api.POST("/activity/collect", h.activityCollect)
	api.POST("/breakthrough", h.breakthrough)
	api.POST("/duel", h.duel)
	api.POST("/steal", h.steal)
	api.POST("/daily", h.daily)
	api.GET("/profile", h.profile)
	api.GET("/rank", h.rank)
	api.GET("/history", h.history)

	s.GET("/guide/index.json", h.guideIndex)
	s.GET("/guide/*filepath", h.guideFile)
	s.GET("/ops/kpi", h.kpi)
}

type enrollRequest struct {
	Username string `json:"username"`
}

type beginRequest struct {
	Kind   string  `json:"kind"`
	Hours  float64 `json:"hours"`
	Target string  `json:"target,omitempty"`
}

type targetRequest struct {
	TargetID string `json:"target_id"`
}

type breakthroughRequest struct {
	AssistItem string `json:"assist_item,omitempty"`
}

func (h Handler) enroll(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body enrollRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.EnrollUC.Execute(c, enroll.Request{UserID: userID, Username: body.Username})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) activityBegin(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body beginRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	kind, ok := parseKind(body.Kind)
	if !ok {
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_activity", "unknown activity kind")
		return
	}
	resp, err := h.ActivityUC.Begin(c, activity.BeginRequest{
		UserID: userID,
		Kind:   kind,
		Hours:  body.Hours,
		Target: body.Target,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) activityStatus(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.ActivityUC.Status(c, activity.StatusRequest{UserID: userID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) activityCollect(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.ActivityUC.Collect(c, activity.CollectRequest{UserID: userID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) breakthrough(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body breakthroughRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.BreakthroughUC.Execute(c, breakthrough.Request{UserID: userID, AssistItem: body.AssistItem})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) duel(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body targetRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.CombatUC.Duel(c, combat.DuelRequest{ActorID: userID, TargetID: body.TargetID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) steal(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body targetRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.CombatUC.Steal(c, combat.StealRequest{ActorID: userID, TargetID: body.TargetID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) daily(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.DailyUC.Execute(c, daily.Request{UserID: userID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) profile(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.ProfileUC.Execute(c, profile.Request{UserID: userID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) rank(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.RankUC.Execute(c, rank.Request{Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.HistoryUC.Execute(c, history.Request{UserID: userID, Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) guideIndex(c context.Context, ctx *app.RequestContext) {
	b, err := h.GuideUC.Index(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Data(consts.StatusOK, "application/json", b)
}

func (h Handler) guideFile(c context.Context, ctx *app.RequestContext) {
	path := strings.TrimPrefix(string(ctx.Param("filepath")), "/")
	if path == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_filepath", "invalid filepath")
		return
	}
	b, err := h.GuideUC.File(c, path)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Data(consts.StatusOK, "text/plain; charset=utf-8", b)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func requireUserID(ctx *app.RequestContext) (string, error) {
	userID := strings.TrimSpace(string(ctx.GetHeader(userIDHeader)))
	if userID == "" {
		return "", ErrMissingUserIDHeader
	}
	return userID, nil
}

func parseKind(raw string) (cultivation.ActivityKind, bool) {
	switch cultivation.ActivityKind(raw) {
	case cultivation.ActivityPractice, cultivation.ActivityExplore, cultivation.ActivityMine:
		return cultivation.ActivityKind(raw), true
	}
	return "", false
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingUserIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_user_id", err.Error())
	case errors.Is(err, cultivation.ErrAlreadyActive):
		writeErrorBody(ctx, consts.StatusConflict, "activity_in_progress", err.Error())
	case errors.Is(err, cultivation.ErrNoActivity):
		writeErrorBody(ctx, consts.StatusNotFound, "no_activity", err.Error())
	case errors.Is(err, cultivation.ErrNotYetDue):
		writeErrorBody(ctx, consts.StatusConflict, "not_ready", err.Error())
	case errors.Is(err, cultivation.ErrTooShort):
		writeErrorBody(ctx, consts.StatusConflict, "too_short", err.Error())
	case errors.Is(err, cultivation.ErrAtMaxTier):
		writeErrorBody(ctx, consts.StatusConflict, "at_max_tier", err.Error())
	case errors.Is(err, cultivation.ErrInsufficientExperience):
		writeErrorBody(ctx, consts.StatusConflict, "insufficient_experience", err.Error())
	case errors.Is(err, cultivation.ErrOnCooldown):
		writeErrorBody(ctx, consts.StatusConflict, "cooldown_active", err.Error())
	case errors.Is(err, cultivation.ErrAlreadyStarted):
		writeErrorBody(ctx, consts.StatusConflict, "already_started", err.Error())
	case errors.Is(err, cultivation.ErrItemNotOwned):
		writeErrorBody(ctx, consts.StatusConflict, "item_not_owned", err.Error())
	case errors.Is(err, cultivation.ErrInsufficientCurrency):
		writeErrorBody(ctx, consts.StatusConflict, "insufficient_spirit_stones", err.Error())
	case errors.Is(err, cultivation.ErrInvalidTarget):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_target", err.Error())
	case errors.Is(err, cultivation.ErrUnknownCatalogEntry):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_item", err.Error())
	case errors.Is(err, activity.ErrInvalidRequest),
		errors.Is(err, breakthrough.ErrInvalidRequest),
		errors.Is(err, combat.ErrInvalidRequest),
		errors.Is(err, daily.ErrInvalidRequest),
		errors.Is(err, enroll.ErrInvalidRequest),
		errors.Is(err, history.ErrInvalidRequest),
		errors.Is(err, profile.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, staticguide.ErrInvalidGuidePath):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_filepath", err.Error())
	case errors.Is(err, fs.ErrNotExist):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
