// Package viewmodel holds the UI-facing note state and schedules every storage
// call as an asynchronous task.
//
// All tasks of one NoteViewModel run through a single FIFO queue, one at a
// time. A mutation and the refresh that follows it therefore finish before any
// later operation starts, and the most recently queued refresh decides the
// published list.
package viewmodel

import (
	"context"
	"errors"
	"log/slog"
	"noteapp/models"
	"noteapp/services"
	"sync"
)

// ErrClosed is reported for work that was queued on, or dropped by, a closed view-model
var ErrClosed = errors.New("note view-model closed")

// Repository defines the note operations the view-model schedules
type Repository interface {
	Insert(ctx context.Context, note *models.Note) error
	GetAllNotes(ctx context.Context) ([]models.Note, error)
	GetNoteByID(ctx context.Context, id int64) (*models.Note, error)
	Delete(ctx context.Context, note models.Note) error
}

var _ Repository = (*services.NoteRepository)(nil)

// NoteViewModel publishes the note list and coordinates repository calls
type NoteViewModel struct {
	repo      Repository
	state     *stateCell
	queue     *taskQueue
	logger    *slog.Logger
	closeOnce sync.Once
}

// New creates a view-model and starts its task queue. Call Close to release it.
func New(repo Repository, logger *slog.Logger) *NoteViewModel {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "note_viewmodel")

	vm := &NoteViewModel{
		repo:   repo,
		state:  newStateCell(),
		queue:  newTaskQueue(logger),
		logger: logger,
	}
	vm.queue.Start()
	return vm
}

// State returns the current published state
func (vm *NoteViewModel) State() State {
	return vm.state.get()
}

// Notes returns the current published note list
func (vm *NoteViewModel) Notes() []models.Note {
	return vm.state.get().Notes
}

// Subscribe returns a channel that receives the current state and then every
// newer one. A slow reader only sees the latest state. The channel is closed
// by the returned cancel func or by Close.
func (vm *NoteViewModel) Subscribe() (<-chan State, func()) {
	return vm.state.subscribe()
}

// Result is the outcome of one LoadNotes, AddNote or DeleteNote call. Notes is
// the list that call's task loaded; it is nil when Err is set.
type Result struct {
	Notes []models.Note
	Err   error
}

// LoadNotes replaces the published list with everything in storage
func (vm *NoteViewModel) LoadNotes() <-chan Result {
	return vm.enqueue("load notes", 0, vm.refresh)
}

// AddNote inserts the note, or replaces the stored note with the same id,
// then reloads the list
func (vm *NoteViewModel) AddNote(note models.Note) <-chan Result {
	return vm.enqueue("add note", note.ID, func(ctx context.Context) ([]models.Note, error) {
		if err := vm.repo.Insert(ctx, &note); err != nil {
			return nil, err
		}
		vm.logger.Debug("note saved", "note_id", note.ID)
		return vm.refresh(ctx)
	})
}

// DeleteNote removes the note with the same id, then reloads the list
func (vm *NoteViewModel) DeleteNote(note models.Note) <-chan Result {
	return vm.enqueue("delete note", note.ID, func(ctx context.Context) ([]models.Note, error) {
		if err := vm.repo.Delete(ctx, note); err != nil {
			return nil, err
		}
		vm.logger.Debug("note deleted", "note_id", note.ID)
		return vm.refresh(ctx)
	})
}

// GetNoteByID fetches a note from storage and calls onFetched exactly once,
// either with the note or with an error (services.ErrNoteNotFound, a storage
// failure, or ErrClosed). onFetched runs on the task goroutine, or on the
// caller's goroutine when the view-model is already closed.
func (vm *NoteViewModel) GetNoteByID(id int64, onFetched func(*models.Note, error)) {
	var once sync.Once
	reply := func(note *models.Note, err error) {
		once.Do(func() { onFetched(note, err) })
	}

	vm.queue.Enqueue(task{
		name: "get note",
		run: func(ctx context.Context) {
			note, err := vm.repo.GetNoteByID(ctx, id)
			if err != nil && ctx.Err() != nil {
				reply(nil, ErrClosed)
				return
			}
			if err != nil && !errors.Is(err, services.ErrNoteNotFound) {
				vm.logger.Warn("note lookup failed", "note_id", id, "error", err)
			}
			reply(note, err)
		},
		fail: func(err error) {
			reply(nil, err)
		},
	})
}

// Idle blocks until every task queued before the call has finished
func (vm *NoteViewModel) Idle(ctx context.Context) error {
	done := make(chan error, 1)
	vm.queue.Enqueue(task{
		name: "idle",
		run:  func(context.Context) { done <- nil },
		fail: func(err error) { done <- err },
	})

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels the in-flight task, drops queued ones and ends all subscriptions.
// It returns once the task runner has exited, so the repository's storage can
// be closed right after. Calling it from a callback deadlocks.
func (vm *NoteViewModel) Close() {
	vm.closeOnce.Do(func() {
		vm.queue.Stop()
		vm.state.close()
		vm.logger.Debug("view-model closed")
	})
}

// enqueue schedules run and returns a channel that receives its Result exactly
// once. A failure is published as Err unless Close cut the task short.
func (vm *NoteViewModel) enqueue(name string, noteID int64, run func(ctx context.Context) ([]models.Note, error)) <-chan Result {
	done := make(chan Result, 1)
	var once sync.Once
	finish := func(notes []models.Note, err error) {
		once.Do(func() { done <- Result{Notes: notes, Err: err} })
	}

	vm.queue.Enqueue(task{
		name: name,
		run: func(ctx context.Context) {
			notes, err := run(ctx)
			switch {
			case err == nil:
			case ctx.Err() != nil:
				vm.logger.Debug("note task cancelled", "op", name, "error", err)
				err = ErrClosed
			default:
				vm.fail(name, noteID, err)
			}
			finish(notes, err)
		},
		fail: func(err error) {
			if !errors.Is(err, ErrClosed) {
				vm.fail(name, noteID, err)
			}
			finish(nil, err)
		},
	})
	return done
}

// refresh loads every note and publishes the list
func (vm *NoteViewModel) refresh(ctx context.Context) ([]models.Note, error) {
	notes, err := vm.repo.GetAllNotes(ctx)
	if err != nil {
		return nil, err
	}

	state := vm.state.update(func(s *State) {
		s.Notes = notes
		s.Err = nil
	})
	vm.logger.Debug("notes loaded", "count", len(state.Notes), "version", state.Version)
	return state.Notes, nil
}

// fail publishes err and keeps the previously published notes
func (vm *NoteViewModel) fail(op string, noteID int64, err error) {
	attrs := []any{"op", op, "error", err}
	if noteID != 0 {
		attrs = append(attrs, "note_id", noteID)
	}
	vm.logger.Error("note task failed", attrs...)

	vm.state.update(func(s *State) {
		s.Err = err
	})
}
