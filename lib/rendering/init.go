package rendering

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fosdem/glbootstrap/lib/rendering/glapi"
)

var ErrLoadEntryPoints = errors.New("could not load OpenGL entry points")

// Init resolves the driver's function table for the current context.
func Init(api glapi.API, logger *slog.Logger) error {
	err := api.Init()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadEntryPoints, err)
	}

	logger.Info(fmt.Sprintf("OpenGL version %s", api.Version()))

	return nil
}
