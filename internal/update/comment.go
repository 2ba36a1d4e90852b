package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) openCommentEditor(dateKey string) {
	m.Comment.Active = true
	m.Comment.DateKey = dateKey
	m.commentArea.SetValue(m.Doc.Comment(dateKey))
	m.commentArea.Focus()
	m.Status = StatusBar{Text: fmt.Sprintf("editing comment for %s", dateKey), IsError: false}
}

// handleCommentKey routes keys into the textarea until esc, which
// saves the text. An all-whitespace comment deletes the entry.
func (m Model) handleCommentKey(msg tea.KeyMsg) Model {
	if msg.String() == "esc" {
		m.Store.SetComment(m.Comment.DateKey, m.commentArea.Value())
		m.refreshDoc()
		m.Status = StatusBar{Text: fmt.Sprintf("comment saved for %s", m.Comment.DateKey), IsError: false}
		m.Comment.Active = false
		m.Comment.DateKey = ""
		m.commentArea.Blur()
		return m
	}
	var cmd tea.Cmd
	m.commentArea, cmd = m.commentArea.Update(msg)
	_ = cmd
	return m
}
