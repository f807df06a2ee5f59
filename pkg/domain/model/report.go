package model

import (
	"fmt"

	"github.com/efa2d19/dailynator/pkg/domain/types"
)

// DefaultPalette is the cyclic color palette for report entries. When a
// channel has more questions than colors the palette repeats from the start.
var DefaultPalette = []string{"#e8aeb7", "#b8e1ff", "#3c7a89", "#f4d06f", "#82aba1"}

// ReportEntry pairs a question with its answer and the color of the
// attachment strip it is rendered with.
type ReportEntry struct {
	Question string
	Answer   string
	Color    string
}

// Report is the assembled result of one completed session, ready for the
// presenter. Entries preserve ascending question order with skip answers
// already filtered out.
type Report struct {
	UserID    types.UserID
	ChannelID types.ChannelID
	UserName  string
	IconURL   string
	Entries   []ReportEntry
}

// Summary returns the channel-facing notification line for the report
func (r *Report) Summary() string {
	return fmt.Sprintf("<@%s> has sent daily report", r.UserID)
}

// paletteColor returns the palette entry for position idx, cycling when idx
// exceeds the palette length.
func paletteColor(palette []string, idx int) string {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return palette[idx%len(palette)]
}

// AssembleReport joins answers with their question bodies, drops skip
// answers, and assigns palette colors. Colors are indexed by the answer's
// position before skip filtering, so a skipped answer still consumes its
// color; the assignment is deterministic for a given answer set. An answer
// whose question was deleted mid-session has no body to render and is
// dropped the same way, still consuming its color.
func AssembleReport(user *User, questions []*Question, answers []*Answer, palette, skipTokens []string) *Report {
	bodies := make(map[types.QuestionID]string, len(questions))
	for _, q := range questions {
		bodies[q.ID] = q.Body
	}

	report := &Report{
		UserID:    user.ID,
		ChannelID: user.ChannelID,
		UserName:  user.RealName,
	}

	for idx, a := range answers {
		if a.IsSkip(skipTokens) {
			continue
		}
		body, ok := bodies[a.QuestionID]
		if !ok {
			continue
		}
		report.Entries = append(report.Entries, ReportEntry{
			Question: body,
			Answer:   a.Text,
			Color:    paletteColor(palette, idx),
		})
	}

	return report
}
