package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benvon/taskdeck/internal/models"
	"github.com/google/uuid"
)

// Page copy shown by the brain dump
const (
	BrainDumpTitle    = "🧠 Smart Brain Dump"
	BrainDumpSubtitle = "Paste your thoughts, let AI organize them into actionable tasks"
	BrainDumpPrompt   = "What's on your mind?"
	BrainDumpHint     = `Press ctrl+p ("AI Parse") to extract tasks from your brain dump`
	ParseLabel        = "✨ AI Parse"
	ParsingLabel      = "🔄 Parsing..."
)

// Tag kinds on a candidate card
const (
	TagCategory = "category"
	TagTime     = "time"
	TagDate     = "date"
)

// Tag is one metadata chip on a candidate card
type Tag struct {
	Kind string
	Text string
}

// CandidateCard is the display model of one parsed candidate
type CandidateCard struct {
	Key   uuid.UUID
	Title string
	// Badge is the priority text, "N/A" when absent
	Badge string
	// BadgeClass is the lower-cased priority, "low" when absent
	BadgeClass string
	Tags       []Tag
}

// NewCandidateCard builds the card for a candidate
func NewCandidateCard(c models.Candidate) CandidateCard {
	card := CandidateCard{
		Key:        c.Key,
		Title:      c.Task.Title,
		Badge:      notAvailable,
		BadgeClass: "low",
	}
	if p := c.Task.Priority; p != "" {
		card.Badge = string(p)
		card.BadgeClass = strings.ToLower(string(p))
	}
	if c.Task.Category != "" {
		card.Tags = append(card.Tags, Tag{Kind: TagCategory, Text: c.Task.Category})
	}
	if c.Task.EstimatedMinutes > 0 {
		card.Tags = append(card.Tags, Tag{Kind: TagTime, Text: "⏱ " + strconv.Itoa(c.Task.EstimatedMinutes) + "min"})
	}
	if c.Task.DueDate != "" {
		card.Tags = append(card.Tags, Tag{Kind: TagDate, Text: "📅 " + c.Task.DueDate})
	}
	return card
}

// NewCandidateCards builds cards in candidate order
func NewCandidateCards(candidates []models.Candidate) []CandidateCard {
	cards := make([]CandidateCard, 0, len(candidates))
	for _, c := range candidates {
		cards = append(cards, NewCandidateCard(c))
	}
	return cards
}

// BrainDumpPage is the display model of the brain dump
type BrainDumpPage struct {
	// Input is the already rendered text area
	Input string
	Chars int
	Busy  bool
	Blank bool
	Cards []CandidateCard
}

// BrainDump draws the page. selected indexes Cards.
func BrainDump(page BrainDumpPage, selected int) string {
	var b strings.Builder
	b.WriteString(Title.Render(BrainDumpTitle))
	b.WriteString("\n")
	b.WriteString(Subtitle.Render(BrainDumpSubtitle))
	b.WriteString("\n\n")
	b.WriteString(BrainDumpPrompt)
	b.WriteString("\n")
	b.WriteString(page.Input)
	b.WriteString("\n")

	label := ParseLabel
	if page.Busy {
		label = ParsingLabel
	}
	b.WriteString(Muted.Render(fmt.Sprintf("%d characters", page.Chars)))
	b.WriteString("  ")
	b.WriteString(label)
	b.WriteString("\n")

	if len(page.Cards) > 0 {
		b.WriteString(Heading.Render(fmt.Sprintf("📝 Extracted Tasks (%d)", len(page.Cards))))
		b.WriteString("\n")
		for i, c := range page.Cards {
			b.WriteString(Card(c, i == selected))
			b.WriteString("\n")
		}
		return b.String()
	}

	if !page.Blank && !page.Busy {
		b.WriteString("\n")
		b.WriteString(Muted.Render(BrainDumpHint))
	}
	return b.String()
}

// Card draws one candidate card
func Card(c CandidateCard, focused bool) string {
	header := c.Title + "  " + badgeStyle(c.BadgeClass).Render(c.Badge)

	tags := make([]string, 0, len(c.Tags))
	for _, t := range c.Tags {
		tags = append(tags, tag.Render(t.Text))
	}

	lines := []string{header}
	if len(tags) > 0 {
		lines = append(lines, strings.Join(tags, " "))
	}
	lines = append(lines, Muted.Render("[s] 💾 Save Task"))

	style := card
	if focused {
		style = cardFocused
	}
	return style.Render(strings.Join(lines, "\n"))
}
