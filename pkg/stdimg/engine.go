package stdimg

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Engine dispatches named commands from the registry. The zero value is
// usable and logs nothing.
type Engine struct {
	Log zerolog.Logger
}

// NewEngine returns an engine that logs dispatches to log at debug level.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{Log: log.With().Str("component", "engine").Logger()}
}

var defaultEngine = &Engine{Log: zerolog.Nop()}

// Apply runs the command called name on src with the given name=value
// parameters. Unknown commands and unknown or malformed parameters are
// reported as ErrInvalidConfig before any pixel is processed.
func Apply(src *Raster, name string, params map[string]string) (*Raster, error) {
	return defaultEngine.Apply(src, name, params)
}

// Apply runs one command, see the package level Apply.
func (e *Engine) Apply(src *Raster, name string, params map[string]string) (*Raster, error) {
	if src == nil {
		return nil, invalidf("source raster is nil")
	}
	spec, ok := Lookup(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCommand, "%q", name)
	}
	p, err := NewParams(spec, params)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out, err := spec.apply(src, p)
	if err != nil {
		e.Log.Debug().Err(err).Str("command", name).Msg("command rejected")
		return nil, err
	}
	e.Log.Debug().
		Str("command", name).
		Interface("params", params).
		Int("width", out.Width).
		Int("height", out.Height).
		Int("channels", out.Channels).
		Dur("took", time.Since(start)).
		Msg("command applied")
	return out, nil
}
