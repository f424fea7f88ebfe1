package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/manifest-network/sebakscan/internal/fault"
	"github.com/manifest-network/sebakscan/internal/pagination"
	"github.com/schollz/progressbar/v3"
)

// Direction selects which link a walk follows.
type Direction int

const (
	Forward  Direction = iota // follow next links
	Backward                  // follow prev links
)

// PageHandler receives each page of a walk, numbered from 0.
type PageHandler[T any] func(page int, cursor *pagination.Cursor[T]) error

// WalkPages hands first and up to pages-1 following pages to handle, one page
// at a time. Running out of links ends the walk without error. It returns the
// number of pages handled.
func WalkPages[T any](ctx context.Context, first *pagination.Cursor[T], pages int, dir Direction, handle PageHandler[T], showProgress bool) (int, error) {
	if pages < 1 || first == nil {
		return 0, nil
	}

	var bar *progressbar.ProgressBar
	if showProgress && pages > 1 {
		bar = progressbar.NewOptions(
			pages,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetDescription("Fetching pages..."),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		if err := bar.RenderBlank(); err != nil {
			return 0, fmt.Errorf("failed to render progress bar: %w", err)
		}
	}

	cursor := first
	handled := 0
	for handled < pages {
		if err := ctx.Err(); err != nil {
			return handled, err
		}
		if err := handle(handled, cursor); err != nil {
			return handled, fmt.Errorf("failed to handle page %d: %w", handled, err)
		}
		handled++
		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
		if handled == pages {
			break
		}

		next, err := step(ctx, cursor, dir)
		if errors.Is(err, fault.ErrNoSuchPage) {
			slog.Debug("No more pages", "handled", handled, "requested", pages)
			break
		}
		if err != nil {
			return handled, fmt.Errorf("failed to fetch page %d: %w", handled, err)
		}
		cursor = next
	}

	if bar != nil {
		if err := bar.Finish(); err != nil {
			return handled, fmt.Errorf("failed to finish progress bar: %w", err)
		}
	}
	return handled, nil
}

func step[T any](ctx context.Context, cursor *pagination.Cursor[T], dir Direction) (*pagination.Cursor[T], error) {
	if dir == Backward {
		return cursor.Previous(ctx)
	}
	return cursor.Next(ctx)
}
