package tui

import (
	"unicode/utf8"

	"github.com/benvon/taskdeck/internal/render"
	"github.com/benvon/taskdeck/internal/validation"
)

// View implements tea.Model
func (a *App) View() string {
	return render.Lines(
		render.Navbar(tabs, int(a.page)),
		a.body(),
		render.StatusLine(a.alert, a.help()),
	)
}

func (a *App) body() string {
	switch a.page {
	case PageBrainDump:
		b := a.views.BrainDump
		text := a.input.Value()
		page := render.BrainDumpPage{
			Input: a.input.View(),
			Chars: utf8.RuneCountInString(text),
			Busy:  b.Busy(),
			Blank: validation.IsBlank(text),
			Cards: render.NewCandidateCards(b.Candidates()),
		}
		out := render.BrainDump(page, a.cursors[PageBrainDump])
		if page.Busy {
			out = a.spinner.View() + " " + out
		}
		return out

	case PageFocus:
		f := a.views.Focus
		out := render.Focus(render.BuildFocus(f.Loading(), f.Tasks()), a.cursors[PageFocus])
		if f.Loading() {
			out = a.spinner.View() + " " + out
		}
		return out
	}

	d := a.views.Dashboard
	out := render.Dashboard(render.BuildDashboard(d.Loading(), d.Tasks()), a.cursors[PageDashboard])
	if d.Loading() {
		out = a.spinner.View() + " " + out
	}
	return out
}

func (a *App) help() string {
	switch {
	case a.editing:
		return helpEditing
	case a.page == PageBrainDump:
		return helpBrainDump
	case a.page == PageFocus:
		return helpFocus
	}
	return helpDashboard
}
