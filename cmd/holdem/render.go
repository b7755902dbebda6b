package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-engine/poker"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Width(8)

	redCard = lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	blackCard = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Bold(true)

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

func renderCard(c poker.Card) string {
	if c.Suit.IsRed() {
		return redCard.Render(c.String())
	}
	return blackCard.Render(c.String())
}

func renderCards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = renderCard(c)
	}
	return strings.Join(parts, " ")
}

// renderIDs renders card ids, passing through anything that does not parse.
func renderIDs(ids []string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		c, err := poker.ParseCard(id)
		if err != nil {
			parts[i] = id
			continue
		}
		parts[i] = renderCard(c)
	}
	return strings.Join(parts, " ")
}
