package task

import (
	"context"
	"errors"
	"testing"
)

func TestStartSupersedesPrevious(t *testing.T) {
	var tr Tracker

	first, firstID := tr.Start(context.Background())
	second, secondID := tr.Start(context.Background())

	if firstID == secondID {
		t.Fatal("expected distinct task IDs")
	}
	if !errors.Is(first.Err(), context.Canceled) {
		t.Errorf("expected first task canceled, got %v", first.Err())
	}
	if second.Err() != nil {
		t.Errorf("expected second task live, got %v", second.Err())
	}
	if tr.IsCurrent(firstID) {
		t.Error("first task should be stale")
	}
	if !tr.IsCurrent(secondID) {
		t.Error("second task should be current")
	}
}

func TestFinish(t *testing.T) {
	var tr Tracker

	ctx, id := tr.Start(context.Background())
	tr.Finish(id)

	if ctx.Err() == nil {
		t.Error("expected finished task context to be released")
	}
	if !tr.IsCurrent(id) {
		t.Error("finishing must not make the task's own result stale")
	}
}

func TestFinishStaleIsNoop(t *testing.T) {
	var tr Tracker

	_, oldID := tr.Start(context.Background())
	ctx, id := tr.Start(context.Background())
	tr.Finish(oldID)

	if ctx.Err() != nil {
		t.Error("finishing a stale task must not cancel the current one")
	}
	if !tr.IsCurrent(id) {
		t.Error("current task changed unexpectedly")
	}
}

func TestCancel(t *testing.T) {
	var tr Tracker

	ctx, id := tr.Start(context.Background())
	tr.Cancel()

	if !errors.Is(ctx.Err(), context.Canceled) {
		t.Errorf("expected canceled context, got %v", ctx.Err())
	}
	if tr.IsCurrent(id) {
		t.Error("canceled task should be stale")
	}
	if tr.IsCurrent("") {
		t.Error("empty ID is never current")
	}
}
