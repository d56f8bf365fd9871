// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/fishchat-tui/internal/ui/styles"
)

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m Model, key tea.KeyType) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: key})
}

func TestLogin_Submit(t *testing.T) {
	m := New(styles.NewTheme())

	m = typeText(m, "Rahim")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "F-102")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "hunter2")

	m, cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("complete form should submit")
	}
	msg, ok := cmd().(SubmittedMsg)
	if !ok {
		t.Fatalf("expected SubmittedMsg, got %T", cmd())
	}
	if msg.SignUp {
		t.Error("sign-in form should not report SignUp")
	}
	if msg.User.Name != "Rahim" || msg.User.FishermanID != "F-102" {
		t.Errorf("user = %+v", msg.User)
	}
	if msg.User.Location != "Unknown" {
		t.Errorf("sign-in location = %q, want Unknown", msg.User.Location)
	}
}

func TestLogin_BlankFieldsBlock(t *testing.T) {
	m := New(styles.NewTheme())
	m = typeText(m, "Rahim")

	m, cmd := press(m, tea.KeyEnter)
	if cmd != nil {
		t.Error("incomplete form must not submit")
	}
	if m.Alert() == "" {
		t.Error("expected a blocking alert")
	}

	// Editing clears the alert but keeps the typed value.
	m = typeText(m, "a")
	if m.Alert() != "" {
		t.Error("typing should clear the alert")
	}
	if m.inputs[loginFieldName].Value() != "Rahima" {
		t.Errorf("typed value lost: %q", m.inputs[loginFieldName].Value())
	}
}

func TestSignup_PasswordMismatch(t *testing.T) {
	m := New(styles.NewTheme())
	m.ShowSignUp(true)

	m = typeText(m, "Karim")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "F-201")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "Chittagong")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "hunter2")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "hunter3")

	m, cmd := press(m, tea.KeyEnter)
	if cmd != nil {
		t.Error("mismatched passwords must not submit")
	}
	if m.Alert() != "Passwords do not match!" {
		t.Errorf("alert = %q", m.Alert())
	}

	// Entered values survive the alert.
	if m.inputs[signupFieldLocation].Value() != "Chittagong" {
		t.Error("alert must not clear fields")
	}
}

func TestSignup_Submit(t *testing.T) {
	m := New(styles.NewTheme())
	m.ShowSignUp(true)

	m = typeText(m, "Karim")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "F-201")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "Chittagong")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "hunter2")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "hunter2")

	_, cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("complete sign-up should submit")
	}
	msg := cmd().(SubmittedMsg)
	if !msg.SignUp {
		t.Error("sign-up form should report SignUp")
	}
	if msg.User.Location != "Chittagong" {
		t.Errorf("location = %q", msg.User.Location)
	}
}

func TestLogin_PasswordToggle(t *testing.T) {
	m := New(styles.NewTheme())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if !m.showPassword {
		t.Error("ctrl+t should reveal passwords")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.showPassword {
		t.Error("ctrl+t again should hide them")
	}
}

func TestLogin_ViewShowsButtons(t *testing.T) {
	m := New(styles.NewTheme())
	view := m.View()
	if !strings.Contains(view, "Sign in") || !strings.Contains(view, "Sign up") {
		t.Error("sign-in form should show both the submit and switch buttons")
	}

	m.ShowSignUp(true)
	if !strings.Contains(m.View(), "Create account") {
		t.Error("sign-up form should show its submit button")
	}
}

func TestLogin_SwitchForm(t *testing.T) {
	m := New(styles.NewTheme())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("ctrl+s should emit a command")
	}
	msg, ok := cmd().(SwitchFormMsg)
	if !ok || !msg.ToSignUp {
		t.Errorf("expected SwitchFormMsg{ToSignUp: true}, got %#v", cmd())
	}
}
