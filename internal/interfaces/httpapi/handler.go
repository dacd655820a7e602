package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/clubops/matchday-ops/internal/domain/task"
	"github.com/clubops/matchday-ops/internal/platform/logging"
	"github.com/clubops/matchday-ops/internal/usecase"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	generatorService *usecase.TaskGeneratorService
	seedService      *usecase.SeedService
	riskService      *usecase.RiskService
	handoverService  *usecase.HandoverService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	generatorService *usecase.TaskGeneratorService,
	seedService *usecase.SeedService,
	riskService *usecase.RiskService,
	handoverService *usecase.HandoverService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		generatorService: generatorService,
		seedService:      seedService,
		riskService:      riskService,
		handoverService:  handoverService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeBody unmarshals a JSON request body into dst. An empty body leaves
// dst at its zero value so POST routes with optional payloads stay callable
// without one.
func decodeBody(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type taskDTO struct {
	ID             string     `json:"id"`
	FixtureID      string     `json:"fixture_id"`
	TemplatePackID string     `json:"template_pack_id,omitempty"`
	Label          string     `json:"label"`
	SortOrder      int        `json:"sort_order"`
	IsCompleted    bool       `json:"is_completed"`
	OwnerUserID    string     `json:"owner_user_id,omitempty"`
	BackupUserID   string     `json:"backup_user_id,omitempty"`
	OwnerRole      string     `json:"owner_role,omitempty"`
	DueAt          *time.Time `json:"due_at,omitempty"`
}

func taskToDTO(t task.Task) taskDTO {
	return taskDTO{
		ID:             t.ID,
		FixtureID:      t.FixtureID,
		TemplatePackID: t.TemplatePackID,
		Label:          t.Label,
		SortOrder:      t.SortOrder,
		IsCompleted:    t.IsCompleted,
		OwnerUserID:    t.OwnerUserID,
		BackupUserID:   t.BackupUserID,
		OwnerRole:      t.OwnerRole,
		DueAt:          t.DueAt,
	}
}

func tasksToDTOs(tasks []task.Task) []taskDTO {
	items := make([]taskDTO, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskToDTO(t))
	}
	return items
}
