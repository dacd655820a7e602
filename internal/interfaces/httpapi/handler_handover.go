package httpapi

import (
	"fmt"
	"net/http"

	"github.com/clubops/matchday-ops/internal/usecase"
)

type handoverTargetDTO struct {
	Type   string `json:"type" validate:"required,oneof=user backup role"`
	UserID string `json:"user_id" validate:"required_if=Type user"`
	Role   string `json:"role" validate:"required_if=Type role"`
}

type handoverScopeDTO struct {
	Type      string `json:"type" validate:"required,oneof=all fixture pack"`
	FixtureID string `json:"fixture_id" validate:"required_if=Type fixture"`
	PackID    string `json:"pack_id" validate:"required_if=Type pack"`
}

type previewHandoverRequest struct {
	FromUserID string             `json:"from_user_id" validate:"required"`
	Target     *handoverTargetDTO `json:"target" validate:"required"`
	Scope      *handoverScopeDTO  `json:"scope" validate:"omitempty"`
}

type executeHandoverRequest struct {
	ActorUserID string             `json:"actor_user_id" validate:"required"`
	FromUserID  string             `json:"from_user_id" validate:"required"`
	Target      *handoverTargetDTO `json:"target" validate:"required"`
	Scope       *handoverScopeDTO  `json:"scope" validate:"omitempty"`
}

type previewHandoverResponse struct {
	TasksAffected int       `json:"tasks_affected"`
	Tasks         []taskDTO `json:"tasks"`
}

type executeHandoverResponse struct {
	Success       bool     `json:"success"`
	TasksAffected int      `json:"tasks_affected"`
	Errors        []string `json:"errors,omitempty"`
}

func (h *Handler) PreviewHandover(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewHandover")
	defer span.End()

	clubID := r.PathValue("clubID")

	var req previewHandoverRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	domainReq, err := buildHandoverRequest(clubID, req.FromUserID, req.Target, req.Scope)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	preview, err := h.handoverService.Preview(ctx, domainReq)
	if err != nil {
		h.logger.WarnContext(ctx, "handover preview failed", "club_id", clubID, "from_user_id", req.FromUserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, previewHandoverResponse{
		TasksAffected: preview.TasksAffected,
		Tasks:         tasksToDTOs(preview.Tasks),
	})
}

func (h *Handler) ExecuteHandover(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExecuteHandover")
	defer span.End()

	clubID := r.PathValue("clubID")

	var req executeHandoverRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	domainReq, err := buildHandoverRequest(clubID, req.FromUserID, req.Target, req.Scope)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.handoverService.Execute(ctx, req.ActorUserID, domainReq)
	if err != nil {
		h.logger.WarnContext(ctx, "handover execute failed", "club_id", clubID, "from_user_id", req.FromUserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, executeHandoverResponse{
		Success:       result.Success,
		TasksAffected: result.TasksAffected,
		Errors:        result.Errors,
	})
}

func buildHandoverRequest(clubID, fromUserID string, target *handoverTargetDTO, scope *handoverScopeDTO) (usecase.HandoverRequest, error) {
	req := usecase.HandoverRequest{
		ClubID:     clubID,
		FromUserID: fromUserID,
		Scope:      usecase.ScopeAll(),
	}

	switch target.Type {
	case "user":
		req.Target = usecase.TargetUser(target.UserID)
	case "backup":
		req.Target = usecase.TargetBackup()
	case "role":
		req.Target = usecase.TargetRole(target.Role)
	default:
		return usecase.HandoverRequest{}, fmt.Errorf("%w: unknown handover target type: %s", usecase.ErrInvalidInput, target.Type)
	}

	if scope == nil {
		return req, nil
	}

	switch scope.Type {
	case "all":
		req.Scope = usecase.ScopeAll()
	case "fixture":
		req.Scope = usecase.ScopeFixture(scope.FixtureID)
	case "pack":
		req.Scope = usecase.ScopePack(scope.PackID)
	default:
		return usecase.HandoverRequest{}, fmt.Errorf("%w: unknown handover scope type: %s", usecase.ErrInvalidInput, scope.Type)
	}

	return req, nil
}
