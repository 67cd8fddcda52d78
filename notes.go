package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"noteapp/config"
	"noteapp/config/setup"
	"noteapp/models"
	"noteapp/services"
	"noteapp/validator"
	"noteapp/viewmodel"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

const commandTimeout = 30 * time.Second

// withNotes opens the configured database, hands a loaded view-model to fn and
// tears everything down afterwards. Logs go to stderr so stdout stays parseable.
func withNotes(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, vm *viewmodel.NoteViewModel) error) error {
	logger := setup.NewLogger(cmd.ErrOrStderr(), opts.logLevel())

	db, err := setup.InitDatabase(config.AppConfig.DBPath, logger)
	if err != nil {
		return err
	}

	application := setup.InitApp(db, logger)
	defer setup.Shutdown(application, db, logger)

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	return fn(ctx, application.Notes)
}

// await waits for the outcome of one queued view-model task
func await(ctx context.Context, done <-chan viewmodel.Result) ([]models.Note, error) {
	select {
	case res := <-done:
		return res.Notes, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func fetchNote(ctx context.Context, vm *viewmodel.NoteViewModel, id int64) (*models.Note, error) {
	type fetchResult struct {
		note *models.Note
		err  error
	}
	fetched := make(chan fetchResult, 1)
	vm.GetNoteByID(id, func(note *models.Note, err error) {
		fetched <- fetchResult{note, err}
	})

	select {
	case res := <-fetched:
		if errors.Is(res.err, services.ErrNoteNotFound) {
			return nil, fmt.Errorf("note %d not found", id)
		}
		return res.note, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", arg)
	}
	return id, nil
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNotes(cmd, opts, func(ctx context.Context, vm *viewmodel.NoteViewModel) error {
				notes, err := await(ctx, vm.LoadNotes())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(notes)
				}

				if len(notes) == 0 {
					fmt.Fprintln(out, "No notes yet.")
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTITLE\tDESCRIPTION")
				for _, n := range notes {
					fmt.Fprintf(w, "%d\t%s\t%s\n", n.ID, n.Title, n.Description)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var req models.NoteRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validator.New().Validate(&req); err != nil {
				return err
			}

			return withNotes(cmd, opts, func(ctx context.Context, vm *viewmodel.NoteViewModel) error {
				notes, err := await(ctx, vm.AddNote(req.ToNote(0)))
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Note saved (%d notes)\n", len(notes))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&req.Title, "title", "t", "", "Note title")
	cmd.Flags().StringVarP(&req.Description, "description", "d", "", "Note description")
	return cmd
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace the title and/or description of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withNotes(cmd, opts, func(ctx context.Context, vm *viewmodel.NoteViewModel) error {
				note, err := fetchNote(ctx, vm, id)
				if err != nil {
					return err
				}

				req := models.NoteRequest{Title: note.Title, Description: note.Description}
				if cmd.Flags().Changed("title") {
					req.Title = title
				}
				if cmd.Flags().Changed("description") {
					req.Description = description
				}
				if err := validator.New().Validate(&req); err != nil {
					return err
				}

				if _, err := await(ctx, vm.AddNote(req.ToNote(id))); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Note %d updated\n", id)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	return cmd
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withNotes(cmd, opts, func(ctx context.Context, vm *viewmodel.NoteViewModel) error {
				note, err := fetchNote(ctx, vm, id)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", note.Title, note.Description)
				return nil
			})
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withNotes(cmd, opts, func(ctx context.Context, vm *viewmodel.NoteViewModel) error {
				if _, err := await(ctx, vm.DeleteNote(models.Note{ID: id})); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Note %d deleted\n", id)
				return nil
			})
		},
	}
}
