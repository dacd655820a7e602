package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/clubops/matchday-ops/internal/domain/audit"
	"github.com/clubops/matchday-ops/internal/domain/fixture"
	"github.com/clubops/matchday-ops/internal/domain/task"
	auditmock "github.com/clubops/matchday-ops/internal/mocks/domain/audit"
	clubusermock "github.com/clubops/matchday-ops/internal/mocks/domain/clubuser"
	fixturemock "github.com/clubops/matchday-ops/internal/mocks/domain/fixture"
	taskmock "github.com/clubops/matchday-ops/internal/mocks/domain/task"
	"github.com/stretchr/testify/mock"
)

func TestHandoverService_Execute_PartialFailureUsingMockery(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	fixtures := fixturemock.NewDirectory(t)
	users := clubusermock.NewDirectory(t)
	tasks := taskmock.NewRepository(t)
	sink := auditmock.NewSink(t)

	svc := NewHandoverService(fixtures, users, tasks, sink, nil)

	fixtures.
		On("ListUpcoming", mock.Anything, "club-1").
		Return([]fixture.Fixture{
			{ID: "fx1", ClubID: "club-1", KickoffAt: now.Add(24 * time.Hour), Status: fixture.StatusScheduled},
		}, nil).
		Once()
	tasks.
		On("ListByFixtureIDs", mock.Anything, []string{"fx1"}).
		Return([]task.Task{
			{ID: "t1", ClubID: "club-1", FixtureID: "fx1", Label: "Prepare home kit", OwnerUserID: "u1"},
			{ID: "t2", ClubID: "club-1", FixtureID: "fx1", Label: "Line the pitch", OwnerUserID: "u1"},
		}, nil).
		Once()
	tasks.
		On("UpdateOwner", mock.Anything, "t1", "u2").
		Return(task.Task{ID: "t1", OwnerUserID: "u2"}, nil).
		Once()
	tasks.
		On("UpdateOwner", mock.Anything, "t2", "u2").
		Return(task.Task{}, errors.New("row locked")).
		Once()
	sink.
		On("Append", mock.Anything, mock.MatchedBy(func(event audit.Event) bool {
			return event.Action == audit.ActionHandoverExecuted && event.Payload["tasks_affected"] == 1
		})).
		Return(nil).
		Once()

	result, err := svc.Execute(t.Context(), "admin-1", HandoverRequest{
		ClubID:     "club-1",
		FromUserID: "u1",
		Target:     TargetUser("u2"),
		Scope:      ScopeAll(),
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if result.Success {
		t.Fatal("a failed reassignment must flip success to false")
	}
	if result.TasksAffected != 1 {
		t.Fatalf("unexpected affected count: %d", result.TasksAffected)
	}
	if len(result.Errors) != 1 || result.Errors[0] != "Failed to reassign task: Line the pitch" {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
}

func TestHandoverService_Execute_AuditFailureKeepsSuccessUsingMockery(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	fixtures := fixturemock.NewDirectory(t)
	users := clubusermock.NewDirectory(t)
	tasks := taskmock.NewRepository(t)
	sink := auditmock.NewSink(t)

	svc := NewHandoverService(fixtures, users, tasks, sink, nil)

	fixtures.
		On("ListUpcoming", mock.Anything, "club-1").
		Return([]fixture.Fixture{
			{ID: "fx1", ClubID: "club-1", KickoffAt: now.Add(24 * time.Hour), Status: fixture.StatusScheduled},
		}, nil).
		Once()
	tasks.
		On("ListByFixtureIDs", mock.Anything, []string{"fx1"}).
		Return([]task.Task{
			{ID: "t1", ClubID: "club-1", FixtureID: "fx1", Label: "Prepare home kit", OwnerUserID: "u1"},
		}, nil).
		Once()
	tasks.
		On("UpdateOwner", mock.Anything, "t1", "u2").
		Return(task.Task{ID: "t1", OwnerUserID: "u2"}, nil).
		Once()
	sink.
		On("Append", mock.Anything, mock.Anything).
		Return(errors.New("webhook unreachable")).
		Once()

	result, err := svc.Execute(t.Context(), "admin-1", HandoverRequest{
		ClubID:     "club-1",
		FromUserID: "u1",
		Target:     TargetUser("u2"),
		Scope:      ScopeAll(),
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if !result.Success || result.TasksAffected != 1 {
		t.Fatalf("audit append is best-effort and must not change the outcome: %+v", result)
	}
}

func TestHandoverService_Execute_ListFailureUsingMockery(t *testing.T) {
	t.Parallel()

	fixtures := fixturemock.NewDirectory(t)
	users := clubusermock.NewDirectory(t)
	tasks := taskmock.NewRepository(t)
	sink := auditmock.NewSink(t)

	svc := NewHandoverService(fixtures, users, tasks, sink, nil)

	fixtures.
		On("ListUpcoming", mock.Anything, "club-1").
		Return(nil, errors.New("db down")).
		Once()

	_, err := svc.Execute(t.Context(), "admin-1", HandoverRequest{
		ClubID:     "club-1",
		FromUserID: "u1",
		Target:     TargetBackup(),
		Scope:      ScopeAll(),
	})
	if err == nil {
		t.Fatal("a read failure before any mutation must surface as an error")
	}
}

func TestHandoverService_Preview_DegradesOnReadFailureUsingMockery(t *testing.T) {
	t.Parallel()

	fixtures := fixturemock.NewDirectory(t)
	users := clubusermock.NewDirectory(t)
	tasks := taskmock.NewRepository(t)
	sink := auditmock.NewSink(t)

	svc := NewHandoverService(fixtures, users, tasks, sink, nil)

	fixtures.
		On("ListUpcoming", mock.Anything, "club-1").
		Return(nil, errors.New("db down")).
		Once()

	preview, err := svc.Preview(t.Context(), HandoverRequest{
		ClubID:     "club-1",
		FromUserID: "u1",
		Target:     TargetBackup(),
		Scope:      ScopeAll(),
	})
	if err != nil {
		t.Fatalf("preview must degrade, not error: %v", err)
	}
	if preview.TasksAffected != 0 {
		t.Fatalf("expected empty preview, got %d", preview.TasksAffected)
	}
}
