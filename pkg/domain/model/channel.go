package model

import (
	"github.com/efa2d19/dailynator/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Channel represents a channel subscribed to the daily bot. Cron and CronTZ
// are optional until a schedule is configured via the /cron command.
type Channel struct {
	ID     types.ChannelID
	TeamID types.TeamID
	Name   string

	// Cron is a five-field cron expression, already validated by the
	// command layer before it reaches the store.
	Cron string

	// CronTZ is an IANA timezone name the cron expression is interpreted
	// in. A channel must have both Cron and CronTZ before a trigger can
	// be installed.
	CronTZ string
}

// Validate checks the required channel fields
func (c *Channel) Validate() error {
	if err := c.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid channel")
	}
	if c.Name == "" {
		return goerr.New("channel name is required", goerr.V("channel_id", c.ID))
	}
	return nil
}

// HasSchedule reports whether the channel is fully configured for scheduling
func (c *Channel) HasSchedule() bool {
	return c.Cron != "" && c.CronTZ != ""
}
