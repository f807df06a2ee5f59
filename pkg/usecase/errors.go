package usecase

import (
	"github.com/m-mizutani/goerr/v2"
)

var (
	// ErrNotSubscribed is returned when a command targets a channel the bot
	// was never added to
	ErrNotSubscribed = goerr.New("channel is not subscribed")

	// ErrSchedulerDisabled is returned when a schedule command is used but
	// no scheduler was wired in
	ErrSchedulerDisabled = goerr.New("scheduler is not available")
)
