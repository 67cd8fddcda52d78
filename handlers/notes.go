package handlers

import (
	"context"
	"errors"
	"noteapp/app"
	"noteapp/models"
	"noteapp/services"
	"noteapp/viewmodel"
	"time"

	"github.com/gofiber/fiber/v2"
)

// settleTimeout bounds how long a request waits for its queued note task. On
// timeout the request answers 504 but the task stays queued, so a write may
// still be committed afterwards.
const settleTimeout = 5 * time.Second

// awaitResult waits for the outcome of the request's own view-model task
func awaitResult(c *fiber.Ctx, done <-chan viewmodel.Result) ([]models.Note, error) {
	ctx, cancel := context.WithTimeout(c.UserContext(), settleTimeout)
	defer cancel()

	select {
	case res := <-done:
		return res.Notes, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// taskFailed maps a failed note task to 504 when waiting timed out, 500 otherwise
func taskFailed(c *fiber.Ctx, message string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return gatewayTimeout(c, message, err)
	}
	return serverErrorWithDetails(c, message, err)
}

func noteID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}

// parseNoteRequest binds and validates the form body. On failure it writes the
// 400 response and returns a nil request with the result of writing it.
func parseNoteRequest(c *fiber.Ctx, a *app.App) (*models.NoteRequest, error) {
	var req models.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, badRequest(c, "Invalid request body")
	}
	if err := a.Validator.Validate(&req); err != nil {
		return nil, validationFailed(c, err)
	}
	return &req, nil
}

// ListNotes reloads the note list from storage (list screen)
func ListNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		notes, err := awaitResult(c, a.Notes.LoadNotes())
		if err != nil {
			return taskFailed(c, "Failed to load notes", err)
		}

		return success(c, fiber.Map{"notes": notes})
	}
}

// GetNote fetches a single note from storage (detail screen)
func GetNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := noteID(c)
		if !ok {
			return badRequest(c, "invalid note id")
		}

		type fetchResult struct {
			note *models.Note
			err  error
		}
		fetched := make(chan fetchResult, 1)
		a.Notes.GetNoteByID(id, func(note *models.Note, err error) {
			fetched <- fetchResult{note, err}
		})

		ctx, cancel := context.WithTimeout(c.UserContext(), settleTimeout)
		defer cancel()

		select {
		case res := <-fetched:
			if errors.Is(res.err, services.ErrNoteNotFound) {
				return notFound(c, "note not found")
			}
			if res.err != nil {
				return serverErrorWithDetails(c, "Failed to fetch note", res.err)
			}
			return success(c, fiber.Map{"note": res.note})
		case <-ctx.Done():
			return taskFailed(c, "Failed to fetch note", ctx.Err())
		}
	}
}

// CreateNote stores a new note (add screen)
func CreateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, respErr := parseNoteRequest(c, a)
		if req == nil {
			return respErr
		}

		notes, err := awaitResult(c, a.Notes.AddNote(req.ToNote(0)))
		if err != nil {
			return taskFailed(c, "Failed to save note", err)
		}

		return created(c, fiber.Map{"notes": notes})
	}
}

// UpdateNote replaces the note with the given id (edit screen)
func UpdateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := noteID(c)
		if !ok {
			return badRequest(c, "invalid note id")
		}

		req, respErr := parseNoteRequest(c, a)
		if req == nil {
			return respErr
		}

		notes, err := awaitResult(c, a.Notes.AddNote(req.ToNote(id)))
		if err != nil {
			return taskFailed(c, "Failed to save note", err)
		}

		return success(c, fiber.Map{"notes": notes})
	}
}

// DeleteNote removes the note with the given id
func DeleteNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := noteID(c)
		if !ok {
			return badRequest(c, "invalid note id")
		}

		notes, err := awaitResult(c, a.Notes.DeleteNote(models.Note{ID: id}))
		if err != nil {
			return taskFailed(c, "Failed to delete note", err)
		}

		return success(c, fiber.Map{"notes": notes})
	}
}

// Health reports liveness and the number of stored notes
func Health(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := a.Store.CountNotes(c.UserContext())
		if err != nil {
			return serverErrorWithDetails(c, "Database unavailable", err)
		}
		return success(c, fiber.Map{"status": "ok", "notes": count})
	}
}
