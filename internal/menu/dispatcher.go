package menu

import (
	"context"
	"fmt"

	"github.com/jmylchreest/cliplay/internal/model"
	"github.com/jmylchreest/cliplay/internal/player"
)

// Controller is the subset of *player.Controller the dispatcher drives.
type Controller interface {
	ListFiles(ctx context.Context) ([]model.Clip, error)
	PlayAll(ctx context.Context) (player.BatchResult, error)
	PlayLatest(ctx context.Context) error
	PlayIndex(ctx context.Context, clips []model.Clip, index int) error
}

// Dispatcher executes menu commands against a controller.
type Dispatcher struct {
	controller Controller
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(c Controller) *Dispatcher {
	return &Dispatcher{controller: c}
}

// Dispatch runs cmd. It returns exit=true for the Exit command.
// PlayByIndex lists the clips first and then plays cmd.Index from that
// listing; use Menu to prompt for the index interactively.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) (exit bool, err error) {
	switch cmd.Kind {
	case List:
		_, err = d.controller.ListFiles(ctx)
		return false, err
	case PlayAll:
		_, err = d.controller.PlayAll(ctx)
		return false, err
	case PlayLatest:
		return false, d.controller.PlayLatest(ctx)
	case PlayByIndex:
		clips, err := d.controller.ListFiles(ctx)
		if err != nil {
			return false, err
		}
		return false, d.controller.PlayIndex(ctx, clips, cmd.Index)
	case Exit:
		return true, nil
	default:
		return false, fmt.Errorf("%w: unknown command %d", player.ErrInvalidSelection, cmd.Kind)
	}
}
