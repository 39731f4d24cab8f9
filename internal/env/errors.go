package env

import "errors"

var (
	// ErrConfiguration reports an environment that cannot be built or reset
	// with the given settings.
	ErrConfiguration = errors.New("env: invalid configuration")

	// ErrInvalidAction reports an action outside the action space.
	ErrInvalidAction = errors.New("env: invalid action")

	// ErrEpisodeDone reports a Step after the episode already terminated.
	ErrEpisodeDone = errors.New("env: episode already done")

	// ErrNotReset reports a Step or Render before the first Reset.
	ErrNotReset = errors.New("env: reset has not been called")
)
