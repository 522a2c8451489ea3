// Package tui is the interactive terminal client for jotter.
package tui

import (
	"jotter/internal/client"
	"jotter/internal/database/models"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(c *client.Client) error {
	m := newAppModel(c)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Session changes flow into the update loop as messages, so an expiry
	// while the notes screen is open drops the user back to login. Send is
	// called from a fresh goroutine because the subscription callback runs
	// under the auth context's lock.
	cancel := m.auth.Subscribe(func(user *models.User) {
		go p.Send(authChangedMsg{user: user})
	})
	defer cancel()

	_, err := p.Run()
	return err
}
