package stdimg

import "github.com/pkg/errors"

// Sentinel errors. Every configuration problem is reported before any pixel is
// touched, wrapped around one of these so callers can use errors.Is.
var (
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrChannelRange   = errors.New("channel index out of range")
	ErrShapeMismatch  = errors.New("images must have identical dimensions and channels")
	// ErrUnknownCommand is also an ErrInvalidConfig.
	ErrUnknownCommand = errors.WithMessage(ErrInvalidConfig, "unknown command")
)

func invalidf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidConfig, format, args...)
}

func channelErr(ch, channels int) error {
	return errors.Wrapf(ErrChannelRange, "channel %d, image has %d", ch, channels)
}
