package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
)

// Export internal functions and types for testing
var ParseSchedule = parseSchedule

func NewNotBeforeSchedule(inner cron.Schedule, notBefore time.Time) cron.Schedule {
	return &notBeforeSchedule{inner: inner, notBefore: notBefore}
}
