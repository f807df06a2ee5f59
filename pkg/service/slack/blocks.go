package slack

import (
	"strconv"
	"strings"

	"github.com/slack-go/slack"
)

var digitEmojis = map[rune]string{
	'0': ":zero:",
	'1': ":one:",
	'2': ":two:",
	'3': ":three:",
	'4': ":four:",
	'5': ":five:",
	'6': ":six:",
	'7': ":seven:",
	'8': ":eight:",
	'9': ":nine:",
}

// numberEmoji renders a positive integer as a sequence of Slack digit emojis
func numberEmoji(n int) string {
	var sb strings.Builder
	for _, r := range strconv.Itoa(n) {
		sb.WriteString(digitEmojis[r])
	}
	return sb.String()
}

// ReportAttachment builds one question/answer unit of a published report.
// The color paints the strip on the left side of the block.
func ReportAttachment(question, answer, color string) slack.Attachment {
	return slack.Attachment{
		Color: color,
		Blocks: slack.Blocks{
			BlockSet: []slack.Block{
				slack.NewHeaderBlock(
					slack.NewTextBlockObject(slack.PlainTextType, question, true, false),
				),
				slack.NewSectionBlock(
					slack.NewTextBlockObject(slack.MarkdownType, answer, false, false),
					nil, nil,
				),
			},
		},
	}
}

// SessionStartBlocks builds the DM sent to each participant when a daily
// session starts. The first question is quoted below the greeting.
func SessionStartBlocks(headerText, bodyText, firstQuestion string) []slack.Block {
	return []slack.Block{
		slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, headerText, false, false),
		),
		slack.NewDividerBlock(),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, bodyText, false, false),
			nil, nil,
		),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, ">"+firstQuestion, false, false),
			nil, nil,
		),
	}
}

// SessionEndBlocks builds the DM sent once a participant has answered the
// last question
func SessionEndBlocks(startBodyText, endBodyText, footerText string) []slack.Block {
	blocks := []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, startBodyText, false, false),
			nil, nil,
		),
	}
	if endBodyText != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, endBodyText, false, false),
			nil, nil,
		))
	}
	blocks = append(blocks, slack.NewDividerBlock())
	if footerText != "" {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, footerText, false, false),
		))
	}
	return blocks
}

// ListBlocks renders an ordered list with emoji indexes, used by the
// question listing command. Indexes start at 1 to match the pop command.
func ListBlocks(headerText string, items []string) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, headerText, true, false),
		),
		slack.NewDividerBlock(),
	}

	for idx, item := range items {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, numberEmoji(idx+1)+"\t"+item, false, false),
			nil, nil,
		))
	}

	return blocks
}

// ErrorBlocks builds an error notice. bodyText may be empty.
func ErrorBlocks(headerText, bodyText string) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, ":x:\t"+headerText, true, false),
		),
		slack.NewDividerBlock(),
	}

	if bodyText != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			nil,
			[]*slack.TextBlockObject{
				slack.NewTextBlockObject(slack.MarkdownType, bodyText, false, false),
			},
			nil,
		))
	}

	return blocks
}

// SuccessBlocks builds a success notice. bodyText may be empty.
func SuccessBlocks(headerText, bodyText string) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, ":white_check_mark:\t"+headerText, true, false),
		),
		slack.NewDividerBlock(),
	}

	if bodyText != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, bodyText, false, false),
			nil, nil,
		))
	}

	return blocks
}
