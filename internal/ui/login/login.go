// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/fishchat-tui/internal/model"
	"github.com/jeranaias/fishchat-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SubmittedMsg reports a completed form: the user to save as the session
// and whether it came from the sign-up form.
type SubmittedMsg struct {
	User   model.User
	SignUp bool
}

// SwitchFormMsg asks the app to flip between sign-in and sign-up.
type SwitchFormMsg struct {
	ToSignUp bool
}

// =============================================================================
// FIELD INDICES
// =============================================================================

// Sign-in fields.
const (
	loginFieldName = iota
	loginFieldID
	loginFieldPassword
	loginFieldCount
)

// Sign-up fields.
const (
	signupFieldName = iota
	signupFieldID
	signupFieldLocation
	signupFieldPassword
	signupFieldConfirm
	signupFieldCount
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the authentication screen. It hosts either the sign-in or the
// sign-up form depending on signUp.
type Model struct {
	theme  *styles.Theme
	signUp bool

	inputs []textinput.Model
	focus  int

	// alert blocks submission until the user edits again.
	alert string

	// showPassword toggles the echo mode of the password fields.
	showPassword bool

	width  int
	height int
}

// New creates the screen showing the sign-in form.
func New(theme *styles.Theme) Model {
	m := Model{theme: theme}
	m.buildInputs()
	return m
}

// SetSize updates the layout box.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SignUp reports which form is showing.
func (m *Model) SignUp() bool {
	return m.signUp
}

// ShowSignUp switches to the requested form, resetting fields and alerts.
func (m *Model) ShowSignUp(signUp bool) {
	m.signUp = signUp
	m.alert = ""
	m.showPassword = false
	m.buildInputs()
}

// buildInputs rebuilds the field set for the current form.
func (m *Model) buildInputs() {
	labels := []string{"Name", "Fisherman ID", "Password"}
	if m.signUp {
		labels = []string{"Name", "Fisherman ID", "Location", "Password", "Confirm Password"}
	}

	m.inputs = make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.CharLimit = 100
		ti.Width = 32
		if strings.Contains(label, "Password") {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		m.inputs[i] = ti
	}
	m.focus = 0
	m.inputs[0].Focus()
}

// setFocus moves keyboard focus to field i.
func (m *Model) setFocus(i int) {
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.focus = i
	m.inputs[i].Focus()
}

// togglePassword flips visibility on every password field.
func (m *Model) togglePassword() {
	m.showPassword = !m.showPassword
	mode := textinput.EchoPassword
	if m.showPassword {
		mode = textinput.EchoNormal
	}
	for i := range m.inputs {
		if strings.Contains(m.inputs[i].Placeholder, "Password") {
			m.inputs[i].EchoMode = mode
		}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles key input for the active form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "tab", "down":
		m.setFocus((m.focus + 1) % len(m.inputs))
		return m, nil
	case "shift+tab", "up":
		m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs))
		return m, nil
	case "ctrl+t":
		m.togglePassword()
		return m, nil
	case "ctrl+s":
		to := !m.signUp
		return m, func() tea.Msg { return SwitchFormMsg{ToSignUp: to} }
	case "enter":
		return m.submit()
	}

	// Any edit clears a blocking alert.
	m.alert = ""
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit validates the form and emits SubmittedMsg on success.
func (m Model) submit() (Model, tea.Cmd) {
	for _, in := range m.inputs {
		if strings.TrimSpace(in.Value()) == "" {
			m.alert = "Please fill in all fields"
			return m, nil
		}
	}

	var user model.User
	if m.signUp {
		if m.inputs[signupFieldPassword].Value() != m.inputs[signupFieldConfirm].Value() {
			m.alert = "Passwords do not match!"
			return m, nil
		}
		user = model.User{
			Name:        strings.TrimSpace(m.inputs[signupFieldName].Value()),
			FishermanID: strings.TrimSpace(m.inputs[signupFieldID].Value()),
			Location:    strings.TrimSpace(m.inputs[signupFieldLocation].Value()),
		}
	} else {
		// Sign-in never asks for a location.
		user = model.User{
			Name:        strings.TrimSpace(m.inputs[loginFieldName].Value()),
			FishermanID: strings.TrimSpace(m.inputs[loginFieldID].Value()),
			Location:    "Unknown",
		}
	}

	signUp := m.signUp
	return m, func() tea.Msg { return SubmittedMsg{User: user, SignUp: signUp} }
}

// Alert returns the active blocking alert, empty when none.
func (m *Model) Alert() string {
	return m.alert
}

// SetAlert shows a blocking alert. The app uses this for failures outside
// the form itself, like a session that would not save.
func (m *Model) SetAlert(text string) {
	m.alert = text
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the form centered in its box.
func (m Model) View() string {
	title := "Sign in to FisherMen"
	submitLabel := "Sign in"
	switchLabel := "Sign up"
	if m.signUp {
		title = "Create your FisherMen account"
		submitLabel = "Create account"
		switchLabel = "Sign in"
	}

	var rows []string
	rows = append(rows, m.theme.FormTitle.Render(title))

	for i, in := range m.inputs {
		label := m.theme.FormBlurred.Render(in.Placeholder)
		if i == m.focus {
			label = m.theme.FormFocused.Render(in.Placeholder)
		}
		rows = append(rows, label, in.View())
	}

	if m.alert != "" {
		rows = append(rows, m.theme.AlertBox.Render(m.alert))
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		m.theme.ButtonActive.Render(submitLabel),
		"  ",
		m.theme.ButtonInactive.Render(switchLabel+" (ctrl+s)"),
	)
	rows = append(rows, "", buttons)

	rows = append(rows, m.theme.FormHint.Render(
		"enter submit • tab next field • ctrl+t show password"))

	form := m.theme.FormBox.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
	}
	return form
}
