package usecase

import (
	"context"
	"time"

	"github.com/efa2d19/dailynator/pkg/domain/interfaces"
	"github.com/efa2d19/dailynator/pkg/domain/model"
	"github.com/efa2d19/dailynator/pkg/domain/types"
	slacksvc "github.com/efa2d19/dailynator/pkg/service/slack"
)

// ScheduleController is the scheduler surface the use cases drive
type ScheduleController interface {
	Reconcile(ctx context.Context) error
	SkipNext(ctx context.Context, channelID types.ChannelID) (time.Time, error)
}

type UseCases struct {
	repo             interfaces.Repository
	slackService     slacksvc.Service
	scheduler        ScheduleController
	palette          []string
	skipTokens       []string
	defaultQuestions []string

	Daily    *DailyUseCase
	Channels *ChannelUseCase
}

type Option func(*UseCases)

// WithScheduler wires the cron scheduler into the channel commands
func WithScheduler(s ScheduleController) Option {
	return func(uc *UseCases) {
		uc.scheduler = s
	}
}

// WithPalette overrides the report color palette
func WithPalette(palette []string) Option {
	return func(uc *UseCases) {
		uc.palette = palette
	}
}

// WithSkipTokens overrides the answers treated as "nothing to report"
func WithSkipTokens(tokens []string) Option {
	return func(uc *UseCases) {
		uc.skipTokens = tokens
	}
}

// WithDefaultQuestions seeds newly subscribed channels with a question list
func WithDefaultQuestions(questions []string) Option {
	return func(uc *UseCases) {
		uc.defaultQuestions = questions
	}
}

func New(repo interfaces.Repository, slackSvc slacksvc.Service, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:         repo,
		slackService: slackSvc,
		palette:      model.DefaultPalette,
		skipTokens:   model.DefaultSkipTokens,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Daily = NewDailyUseCase(repo, slackSvc, uc.palette, uc.skipTokens)
	uc.Channels = NewChannelUseCase(repo, slackSvc, uc.scheduler, uc.defaultQuestions)

	return uc
}
