package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/konnektoren/internal/challenge"
	"github.com/abhisek/konnektoren/internal/ui/components"
	"github.com/abhisek/konnektoren/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, s.renderHeading(cw))
	if n := s.state.TasksLen(); n > 0 {
		sections = append(sections, components.TaskProgress(s.state.CurrentTaskIndex, n, cw).View())
	}
	sections = append(sections, components.Card(s.renderBody(cw), cw))
	if s.feedback != "" {
		style := theme.Incorrect
		if s.feedbackOK {
			style = theme.Correct
		}
		sections = append(sections, style.Render(s.feedback))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (s *PlayScreen) renderHeading(cw int) string {
	path := s.state.CurrentPath()
	cfg, _ := s.state.CurrentConfig()

	name := cfg.Name
	if name == "" {
		name = s.state.Challenge.Type.Name()
	}
	heading := theme.Title.Render(name)
	sub := theme.Subtitle.Render(fmt.Sprintf("%s · challenge %d/%d",
		path.Name, s.state.CurrentChallengeIndex+1, path.Len()))
	badge := components.KindBadge(s.state.Challenge.Type.Kind)

	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(heading + "\n" + sub + "\n" + badge)
}

func (s *PlayScreen) renderBody(cw int) string {
	t := s.state.Challenge.Type
	task := s.state.CurrentTaskIndex

	switch t.Kind {
	case challenge.KindMultipleChoice:
		if s.state.TasksLen() == 0 {
			return theme.Hint.Render("This challenge has no tasks.")
		}
		return s.options.View()

	case challenge.KindInformative:
		if t.Informative == nil {
			return ""
		}
		return lipgloss.NewStyle().Width(cw-6).Render(informativeText(t.Informative, "de")) +
			"\n\n" + theme.Hint.Render("Press F when you are done reading.")

	case challenge.KindSortTable:
		st := t.SortTable
		if st == nil || task >= len(st.Rows) {
			return ""
		}
		var b strings.Builder
		titles := make([]string, len(st.Columns))
		for i, c := range st.Columns {
			titles[i] = c.Title
		}
		b.WriteString(theme.Body.Bold(true).Render(strings.Join(titles, " | ")))
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(strings.Join(st.Rows[task].Values, " | ")))
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Sort tables are answered through the HTTP API."))
		return b.String()

	case challenge.KindContextualChoice:
		cc := t.ContextualChoice
		if cc == nil || task >= len(cc.Items) {
			return ""
		}
		item := cc.Items[task]
		text := item.Template
		for _, c := range item.Choices {
			text = strings.ReplaceAll(text, fmt.Sprintf("{%d}", c.ID), "["+strings.Join(c.Options, "/")+"]")
		}
		return theme.Body.Render(text) + "\n\n" +
			theme.Hint.Render("Contextual choices are answered through the HTTP API.")

	case challenge.KindCustom:
		if t.Custom == nil {
			return ""
		}
		return theme.Body.Render(t.Custom.Description) + "\n\n" +
			theme.Hint.Render("Custom challenges run in an external client.")
	}
	return ""
}

// informativeText returns the text in lang, or the first text available.
func informativeText(info *challenge.Informative, lang string) string {
	for _, t := range info.Text {
		if t.Language == lang {
			return t.Text
		}
	}
	if len(info.Text) > 0 {
		return info.Text[0].Text
	}
	return info.Description
}
