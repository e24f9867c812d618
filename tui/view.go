package tui

import (
	"fmt"
	"strings"

	"english-hub/models"
	"english-hub/navigation"
	"english-hub/services"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	v := m.router.Current()

	switch v.State.Page {
	case navigation.PageLogin:
		b.WriteString(titleStyle.Render("The English Hub") + "\n\n")
		b.WriteString(normalStyle.Render("Press enter to log in.") + "\n")
		m.writeHelp(&b, "enter login", "q quit")

	case navigation.PageHome:
		b.WriteString(titleStyle.Render("The English Hub") + "\n")
		b.WriteString(dimStyle.Render("Activities from the clubs of the Department of English.") + "\n\n")
		for i, c := range models.Clubs() {
			b.WriteString(m.row(i == m.cursor, c.Name) + "\n")
		}
		m.writeHelp(&b, "j/k move", "enter open", "L logout", "q quit")

	case navigation.PageClub:
		if v.NotFound {
			b.WriteString(errorStyle.Render("Club not found") + "\n")
			m.writeHelp(&b, "b back")
			break
		}
		m.writeClub(&b, v.Club)
	}

	if m.editing != editNone {
		b.WriteString("\n" + m.input.View() + "\n")
	}
	if m.status != "" {
		style := accentStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString("\n" + style.Render(m.status) + "\n")
	}
	return b.String()
}

func (m Model) row(selected bool, text string) string {
	if selected {
		return selectedStyle.Render("> " + text)
	}
	return normalStyle.Render("  " + text)
}

func (m Model) writeHelp(b *strings.Builder, items ...string) {
	b.WriteString("\n" + helpStyle.Render(strings.Join(items, " · ")) + "\n")
}

func (m Model) writeClub(b *strings.Builder, club models.Club) {
	b.WriteString(titleStyle.Render(club.Name) + "\n")
	b.WriteString(dimStyle.Render(club.Description) + "\n\n")

	if u := m.upload(club.ID).Snapshot(); u.State != services.UploadClosed {
		b.WriteString(panelStyle.Render(renderUpload(u)) + "\n")
		m.writeHelp(b, "f pick file", "x change image", "t title", "d description", "s post", "esc cancel")
		return
	}

	b.WriteString(titleStyle.Render("Activities") + "\n")
	activities := m.feed.Activities(club.ID)
	switch {
	case m.loading && len(activities) == 0:
		b.WriteString(dimStyle.Render("Loading activities...") + "\n")
	case len(activities) == 0:
		b.WriteString(dimStyle.Render("No activities posted yet. Be the first to share!") + "\n")
	}
	for i, a := range activities {
		title := a.Title
		if title == "" {
			title = "(untitled)"
		}
		thread := m.threads.Thread(a.ID)
		label := title
		if thread.Loaded {
			label = fmt.Sprintf("%s  [%d comments]", title, thread.Count())
		}
		b.WriteString(m.row(i == m.cursor, label) + "\n")
		if a.Description != "" {
			b.WriteString(dimStyle.Render("    "+a.Description) + "\n")
		}
		b.WriteString(dimStyle.Render("    "+a.CreatedAt.Local().Format("Jan 2, 2006 3:04 PM")) + "\n")
		if thread.Expanded {
			if len(thread.Comments) == 0 {
				b.WriteString(dimStyle.Render("    No comments yet. Be the first!") + "\n")
			}
			for _, c := range thread.Comments {
				b.WriteString(normalStyle.Render("    - "+c.CommentText) + "\n")
			}
		}
	}
	m.writeHelp(b, "j/k move", "c comments", "a add comment", "p post picture", "r reload", "b back", "L logout")
}

func renderUpload(u services.UploadSnapshot) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Post Activity Picture") + "\n")
	switch u.State {
	case services.UploadSelecting:
		b.WriteString(dimStyle.Render("Pick an image: PNG, JPG, GIF up to 5MB") + "\n")
	case services.UploadComposing, services.UploadSubmitting:
		b.WriteString(normalStyle.Render("Image: "+u.FileName) + "\n")
		b.WriteString(normalStyle.Render("Title: "+u.Title) + "\n")
		b.WriteString(normalStyle.Render("Description: "+u.Description) + "\n")
		if u.State == services.UploadSubmitting {
			b.WriteString(accentStyle.Render("Posting...") + "\n")
		}
	}
	if u.Error != "" {
		b.WriteString(errorStyle.Render(u.Error) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
