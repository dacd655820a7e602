package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clubops/matchday-ops/internal/domain/audit"
	"github.com/clubops/matchday-ops/internal/domain/clubuser"
	"github.com/clubops/matchday-ops/internal/domain/fixture"
	"github.com/clubops/matchday-ops/internal/domain/task"
	"github.com/clubops/matchday-ops/internal/platform/logging"
)

type targetKind int

const (
	targetUnset targetKind = iota
	targetUser
	targetBackup
	targetRole
)

// HandoverTarget says who receives the selected tasks. It is a tagged
// variant so that illegal combinations (a role target without a role, a
// user target without a user id) are unrepresentable.
type HandoverTarget struct {
	kind   targetKind
	userID string
	role   string
}

func TargetUser(userID string) HandoverTarget {
	return HandoverTarget{kind: targetUser, userID: strings.TrimSpace(userID)}
}

func TargetBackup() HandoverTarget {
	return HandoverTarget{kind: targetBackup}
}

func TargetRole(role string) HandoverTarget {
	return HandoverTarget{kind: targetRole, role: strings.TrimSpace(role)}
}

func (t HandoverTarget) Type() string {
	switch t.kind {
	case targetUser:
		return "user"
	case targetBackup:
		return "backup"
	case targetRole:
		return "role"
	default:
		return ""
	}
}

func (t HandoverTarget) UserID() (string, bool) { return t.userID, t.kind == targetUser }
func (t HandoverTarget) Role() (string, bool)   { return t.role, t.kind == targetRole }

type scopeKind int

const (
	scopeUnset scopeKind = iota
	scopeAll
	scopeFixture
	scopePack
)

// HandoverScope bounds the fixture/task subset a handover touches.
type HandoverScope struct {
	kind      scopeKind
	fixtureID string
	packID    string
}

func ScopeAll() HandoverScope {
	return HandoverScope{kind: scopeAll}
}

func ScopeFixture(fixtureID string) HandoverScope {
	return HandoverScope{kind: scopeFixture, fixtureID: strings.TrimSpace(fixtureID)}
}

func ScopePack(templatePackID string) HandoverScope {
	return HandoverScope{kind: scopePack, packID: strings.TrimSpace(templatePackID)}
}

func (s HandoverScope) Type() string {
	switch s.kind {
	case scopeAll:
		return "all"
	case scopeFixture:
		return "fixture"
	case scopePack:
		return "pack"
	default:
		return ""
	}
}

func (s HandoverScope) FixtureID() (string, bool) { return s.fixtureID, s.kind == scopeFixture }
func (s HandoverScope) PackID() (string, bool)    { return s.packID, s.kind == scopePack }

// HandoverRequest is the transient description of one bulk reassignment.
type HandoverRequest struct {
	ClubID     string
	FromUserID string
	Target     HandoverTarget
	Scope      HandoverScope
}

type HandoverPreview struct {
	TasksAffected int
	Tasks         []task.Task
}

type HandoverResult struct {
	Success       bool
	TasksAffected int
	Errors        []string
}

// HandoverService resolves and executes bulk reassignment of one user's
// open tasks across the upcoming fixture window. Preview and Execute share
// one selection algorithm, so absent concurrent external mutation the
// previewed and executed affected counts are equal.
type HandoverService struct {
	fixtures fixture.Directory
	users    clubuser.Directory
	tasks    task.Repository
	sink     audit.Sink
	logger   *logging.Logger
	now      func() time.Time
}

func NewHandoverService(
	fixtures fixture.Directory,
	users clubuser.Directory,
	tasks task.Repository,
	sink audit.Sink,
	logger *logging.Logger,
) *HandoverService {
	if logger == nil {
		logger = logging.Default()
	}

	return &HandoverService{
		fixtures: fixtures,
		users:    users,
		tasks:    tasks,
		sink:     sink,
		logger:   logger,
		now:      time.Now,
	}
}

type handoverAssignment struct {
	task       task.Task
	newOwnerID string
}

type handoverPlan struct {
	assignments []handoverAssignment
	// resolvedUserID is the audited new owner; empty for backup targets,
	// where the owner varies per task.
	resolvedUserID string
	errors         []string
}

// Preview runs selection and target resolution without mutating anything.
// Collaborator read failures degrade to an empty preview.
func (s *HandoverService) Preview(ctx context.Context, req HandoverRequest) (HandoverPreview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HandoverService.Preview")
	defer span.End()

	if err := validateHandoverRequest(req); err != nil {
		return HandoverPreview{}, err
	}

	plan, err := s.plan(ctx, req)
	if err != nil {
		s.logger.WarnContext(ctx, "handover preview degraded to empty", "from_user_id", req.FromUserID, "error", err)
		return HandoverPreview{}, nil
	}

	out := HandoverPreview{TasksAffected: len(plan.assignments)}
	for _, a := range plan.assignments {
		out.Tasks = append(out.Tasks, a.task)
	}

	return out, nil
}

// Execute applies the planned reassignments one task at a time. A per-task
// store failure is recorded and the remaining tasks still proceed; the
// final audit append is best-effort and never flips the reported outcome.
func (s *HandoverService) Execute(ctx context.Context, actorID string, req HandoverRequest) (HandoverResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HandoverService.Execute")
	defer span.End()

	if err := validateHandoverRequest(req); err != nil {
		return HandoverResult{}, err
	}

	plan, err := s.plan(ctx, req)
	if err != nil {
		// Nothing has been mutated yet, so this is the one case with no
		// partial state to report.
		return HandoverResult{}, err
	}

	errs := append([]string(nil), plan.errors...)
	affected := 0
	for _, a := range plan.assignments {
		if _, err := s.tasks.UpdateOwner(ctx, a.task.ID, a.newOwnerID); err != nil {
			s.logger.WarnContext(ctx, "task reassignment failed",
				"task_id", a.task.ID, "new_owner_id", a.newOwnerID, "error", err)
			errs = append(errs, "Failed to reassign task: "+a.task.Label)
			continue
		}
		affected++
	}

	s.appendAuditEvent(ctx, actorID, req, plan, affected)

	return HandoverResult{
		Success:       len(errs) == 0,
		TasksAffected: affected,
		Errors:        errs,
	}, nil
}

// plan is the shared selection algorithm behind Preview and Execute.
func (s *HandoverService) plan(ctx context.Context, req HandoverRequest) (handoverPlan, error) {
	now := s.now().UTC()

	// The handover window is every non-cancelled upcoming fixture,
	// unbounded in the future: a handover may need to cover a long absence.
	upcoming, err := s.fixtures.ListUpcoming(ctx, req.ClubID)
	if err != nil {
		return handoverPlan{}, fmt.Errorf("list upcoming fixtures: %w", err)
	}

	var fixtureIDs []string
	if fixtureID, ok := req.Scope.FixtureID(); ok {
		fixtureIDs = []string{fixtureID}
	} else {
		for _, fx := range upcoming {
			if fx.IsCancelled() || fx.KickoffAt.Before(now) {
				continue
			}
			fixtureIDs = append(fixtureIDs, fx.ID)
		}
	}
	if len(fixtureIDs) == 0 {
		return handoverPlan{}, nil
	}

	tasks, err := s.tasks.ListByFixtureIDs(ctx, fixtureIDs)
	if err != nil {
		return handoverPlan{}, fmt.Errorf("list tasks for handover: %w", err)
	}

	packID, packScoped := req.Scope.PackID()
	selected := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Open() || t.OwnerUserID != req.FromUserID {
			continue
		}
		if packScoped && t.TemplatePackID != packID {
			continue
		}
		selected = append(selected, t)
	}

	return s.resolveTarget(ctx, req, selected)
}

func (s *HandoverService) resolveTarget(ctx context.Context, req HandoverRequest, selected []task.Task) (handoverPlan, error) {
	var plan handoverPlan

	switch req.Target.kind {
	case targetUser:
		plan.resolvedUserID = req.Target.userID
		for _, t := range selected {
			plan.assignments = append(plan.assignments, handoverAssignment{task: t, newOwnerID: req.Target.userID})
		}

	case targetRole:
		users, err := s.users.ListActive(ctx, req.ClubID)
		if err != nil {
			return handoverPlan{}, fmt.Errorf("list active club users: %w", err)
		}
		owner, ok := clubuser.FirstActiveWithRole(users, req.Target.role)
		if !ok {
			// A missing role target is a validation gap, not a failure of
			// the whole handover.
			plan.errors = append(plan.errors, "No active user found with role: "+req.Target.role)
			return plan, nil
		}
		plan.resolvedUserID = owner.ID
		for _, t := range selected {
			plan.assignments = append(plan.assignments, handoverAssignment{task: t, newOwnerID: owner.ID})
		}

	case targetBackup:
		// Tasks without a backup are silently excluded, not errors.
		for _, t := range selected {
			if t.BackupUserID == "" {
				continue
			}
			plan.assignments = append(plan.assignments, handoverAssignment{task: t, newOwnerID: t.BackupUserID})
		}
	}

	return plan, nil
}

func (s *HandoverService) appendAuditEvent(ctx context.Context, actorID string, req HandoverRequest, plan handoverPlan, affected int) {
	payload := map[string]any{
		"from_user_id":   req.FromUserID,
		"target_type":    req.Target.Type(),
		"scope":          req.Scope.Type(),
		"tasks_affected": affected,
	}
	if plan.resolvedUserID != "" {
		payload["to_user_id"] = plan.resolvedUserID
	} else {
		payload["to_user_id"] = nil
	}
	if fixtureID, ok := req.Scope.FixtureID(); ok {
		payload["fixture_id"] = fixtureID
	}
	if packID, ok := req.Scope.PackID(); ok {
		payload["pack_id"] = packID
	}

	event := audit.Event{
		ClubID:     req.ClubID,
		ActorID:    actorID,
		Action:     audit.ActionHandoverExecuted,
		Payload:    payload,
		RecordedAt: s.now().UTC(),
	}

	if err := s.sink.Append(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit append failed", "action", event.Action, "error", err)
	}
}

func validateHandoverRequest(req HandoverRequest) error {
	if strings.TrimSpace(req.ClubID) == "" {
		return fmt.Errorf("%w: club_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.FromUserID) == "" {
		return fmt.Errorf("%w: from_user_id is required", ErrInvalidInput)
	}

	switch req.Target.kind {
	case targetUser:
		if req.Target.userID == "" {
			return fmt.Errorf("%w: user target requires a user id", ErrInvalidInput)
		}
	case targetRole:
		if req.Target.role == "" {
			return fmt.Errorf("%w: role target requires a role", ErrInvalidInput)
		}
	case targetBackup:
	default:
		return fmt.Errorf("%w: handover target is required", ErrInvalidInput)
	}

	switch req.Scope.kind {
	case scopeAll:
	case scopeFixture:
		if req.Scope.fixtureID == "" {
			return fmt.Errorf("%w: fixture scope requires a fixture id", ErrInvalidInput)
		}
	case scopePack:
		if req.Scope.packID == "" {
			return fmt.Errorf("%w: pack scope requires a template pack id", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: handover scope is required", ErrInvalidInput)
	}

	return nil
}
