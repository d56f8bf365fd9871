// fishchat TUI - A terminal client for the FisherMen fishing chatbot.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/jeranaias/fishchat-tui/internal/config"
	"github.com/jeranaias/fishchat-tui/internal/feedback"
	"github.com/jeranaias/fishchat-tui/internal/model"
	"github.com/jeranaias/fishchat-tui/internal/storage"
	"github.com/jeranaias/fishchat-tui/internal/transport"
	"github.com/jeranaias/fishchat-tui/internal/ui/chat"
	"github.com/jeranaias/fishchat-tui/internal/ui/login"
	"github.com/jeranaias/fishchat-tui/internal/ui/sidebar"
	"github.com/jeranaias/fishchat-tui/internal/ui/styles"
	"github.com/jeranaias/fishchat-tui/internal/voice"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// APP STATE
// =============================================================================

// appState is which screen the app is showing.
type appState int

const (
	stateAuth appState = iota
	stateChat
)

// focusArea is which panel receives keys in the chat screen.
type focusArea int

const (
	focusChat focusArea = iota
	focusSidebar
)

const sidebarWidth = 32

// =============================================================================
// ASYNC MESSAGES
// =============================================================================

// replyMsg carries the outcome of one send.
type replyMsg struct {
	userText string
	reply    *transport.Reply
	err      error
}

// transcriptMsg carries the outcome of one microphone capture.
type transcriptMsg struct {
	text string
	err  error
}

// =============================================================================
// APP MODEL
// =============================================================================

// synthesizer is what the app needs from a text-to-speech backend.
type synthesizer interface {
	Available() bool
	Speak(ctx context.Context, text, lang string) error
}

// App is the root Bubble Tea model.
type App struct {
	cfg   *config.Config
	theme *styles.Theme

	sessions *storage.SessionStore
	history  *storage.HistoryStore
	client   *transport.Client

	recognizer *voice.CommandRecognizer
	speaker    synthesizer
	player     *voice.Player
	recorder   *feedback.Recorder

	loginView login.Model
	sideView  sidebar.Model
	chatView  chat.Model

	state appState
	focus focusArea
	user  model.User

	width  int
	height int
}

// NewApp wires the application together.
func NewApp(cfg *config.Config, kv *storage.KV, recorder *feedback.Recorder) *App {
	theme := styles.NewTheme()

	app := &App{
		cfg:        cfg,
		theme:      theme,
		sessions:   storage.NewSessionStore(kv),
		history:    storage.NewHistoryStore(kv),
		client:     transport.NewClient(cfg.Server.URL),
		recognizer: voice.NewCommandRecognizer(cfg.Voice.RecognizerCmd),
		speaker:    voice.NewSpeaker(cfg.Voice.SynthCmd, voice.NewCommandCatalog(cfg.Voice.VoicesCmd)),
		player:     voice.NewPlayer(cfg.Voice.PlayerCmd),
		recorder:   recorder,
		loginView:  login.New(theme),
		sideView:   sidebar.New(theme),
		chatView:   chat.New(theme),
	}

	// A saved session skips the sign-in form.
	if user, ok := app.sessions.Current(); ok {
		app.user = user
		app.state = stateChat
		app.chatView.AddNotice(fmt.Sprintf("Welcome back, %s! 👋", user.Name))
		app.reloadHistory()
	}
	return app
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.chatView.Init()
}

// reloadHistory refreshes the sidebar and points the chat panel at the
// current conversation (persisted index 0).
func (a *App) reloadHistory() {
	all := a.history.All()
	var current *model.Conversation
	if len(all) > 0 {
		current = all[0]
	}
	a.chatView.SetConversation(current)

	activeID := ""
	if current != nil {
		activeID = current.ID
	}
	a.sideView.SetConversations(a.history.ByRecency(), activeID)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.loginView.SetSize(msg.Width, msg.Height)
		a.sideView.SetSize(sidebarWidth, msg.Height)
		// The chat panel sits inside the padded container.
		a.chatView.SetSize(msg.Width-sidebarWidth-2, msg.Height)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+l":
			if a.state == stateChat {
				return a.logout()
			}
		case "ctrl+v":
			if a.state == stateChat {
				a.cycleVoiceLanguage()
				return a, nil
			}
		case "tab":
			// In the chat screen, tab flips panel focus unless the
			// sidebar filter is capturing keys.
			if a.state == stateChat && !a.sideView.Filtering() {
				if a.focus == focusChat {
					a.focus = focusSidebar
				} else {
					a.focus = focusChat
				}
				return a, nil
			}
		}

	case login.SubmittedMsg:
		return a.completeAuth(msg)

	case login.SwitchFormMsg:
		a.loginView.ShowSignUp(msg.ToSignUp)
		return a, nil

	case sidebar.ConversationSelectedMsg:
		if err := a.history.MakeCurrent(msg.ID); err == nil {
			a.reloadHistory()
		}
		a.focus = focusChat
		return a, nil

	case sidebar.NewChatMsg:
		if _, err := a.history.CreateConversation(); err == nil {
			a.reloadHistory()
		}
		a.focus = focusChat
		return a, nil

	case chat.SendMsg:
		return a.startSend(msg.Text)

	case chat.MicMsg:
		return a.startListening()

	case chat.FeedbackMsg:
		if a.recorder != nil {
			if err := a.recorder.Record(msg.Message, msg.Reason, msg.Comment); err == nil {
				a.chatView.AddNotice(styles.RenderSuccess("Thanks for the feedback!"))
			}
		}
		return a, nil

	case replyMsg:
		return a.finishSend(msg)

	case transcriptMsg:
		a.chatView.SetListening(false)
		if msg.err != nil {
			a.chatView.AddNotice(styles.RenderError("Voice input failed: " + msg.err.Error()))
			return a, nil
		}
		return a.startSend(msg.text)
	}

	return a.route(msg)
}

// route forwards a message to the component that owns the focus.
func (a *App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.state {
	case stateAuth:
		a.loginView, cmd = a.loginView.Update(msg)
	case stateChat:
		if _, isKey := msg.(tea.KeyMsg); isKey && a.focus == focusSidebar {
			a.sideView, cmd = a.sideView.Update(msg)
		} else {
			a.chatView, cmd = a.chatView.Update(msg)
		}
	}
	return a, cmd
}

// completeAuth saves the submitted identity and enters the chat screen.
func (a *App) completeAuth(msg login.SubmittedMsg) (tea.Model, tea.Cmd) {
	if err := a.sessions.Save(msg.User); err != nil {
		a.loginView.SetAlert("Could not save your session: " + err.Error())
		return a, nil
	}
	a.user = msg.User
	a.state = stateChat
	a.focus = focusChat

	if msg.SignUp {
		a.chatView.AddNotice(fmt.Sprintf("Welcome aboard, %s! 🎣", msg.User.Name))
	} else {
		a.chatView.AddNotice(fmt.Sprintf("Welcome back, %s! 👋", msg.User.Name))
	}
	a.reloadHistory()
	return a, nil
}

// logout clears the stored session and history and returns to sign-in.
func (a *App) logout() (tea.Model, tea.Cmd) {
	if err := a.sessions.Clear(); err != nil {
		a.chatView.AddNotice(styles.RenderError("Logout failed: " + err.Error()))
		return a, nil
	}
	a.state = stateAuth
	a.user = model.User{}
	a.loginView = login.New(a.theme)
	a.loginView.SetSize(a.width, a.height)
	a.chatView = chat.New(a.theme)
	a.chatView.SetSize(a.width-sidebarWidth-2, a.height)
	a.sideView.SetConversations(nil, "")
	return a, a.chatView.Init()
}

// =============================================================================
// SEND PIPELINE
// =============================================================================

// startSend shows the typing indicator and fires the request. Sends are not
// serialized: a second submit while one is in flight just runs alongside it,
// matching how the exchange is persisted whole on completion.
func (a *App) startSend(text string) (tea.Model, tea.Cmd) {
	a.chatView.SetTyping(true)

	client := a.client
	return a, func() tea.Msg {
		reply, err := client.Send(context.Background(), text)
		return replyMsg{userText: text, reply: reply, err: err}
	}
}

// finishSend hides the indicator, persists the exchange (the fallback text
// stands in for the reply when the transport failed), and queues voice
// output.
func (a *App) finishSend(msg replyMsg) (tea.Model, tea.Cmd) {
	a.chatView.SetTyping(false)

	botText := transport.FallbackReply
	if msg.err == nil && msg.reply != nil {
		botText = msg.reply.Reply
	}

	conv, err := a.history.AppendExchange(msg.userText, botText)
	if err != nil {
		a.chatView.AddNotice(styles.RenderError("Could not save the conversation: " + err.Error()))
		return a, nil
	}

	a.reloadHistory()
	if n := conv.MessageCount(); n >= 2 {
		a.chatView.MarkLive(conv.Messages[n-2], conv.Messages[n-1])
	}

	return a, a.voiceOutputCmd(msg.reply)
}

// voiceOutputCmd speaks or plays the reply. Server audio wins over local
// synthesis; local synthesis only handles English replies.
func (a *App) voiceOutputCmd(reply *transport.Reply) tea.Cmd {
	if reply == nil || !a.cfg.Voice.Enabled {
		return nil
	}

	if reply.AudioURL != "" && a.player.Available() {
		url := a.client.ResolveAudioURL(reply.AudioURL)
		player := a.player
		return func() tea.Msg {
			player.Play(context.Background(), url)
			return nil
		}
	}

	if reply.Lang == "en" && a.speaker.Available() {
		speaker := a.speaker
		text := reply.Reply
		lang := a.cfg.Voice.Language
		return func() tea.Msg {
			speaker.Speak(context.Background(), text, lang)
			return nil
		}
	}
	return nil
}

// cycleVoiceLanguage steps through the configured recognition languages.
func (a *App) cycleVoiceLanguage() {
	langs := a.cfg.Voice.Languages
	if len(langs) == 0 {
		return
	}
	next := langs[0]
	for i, lang := range langs {
		if lang == a.cfg.Voice.Language {
			next = langs[(i+1)%len(langs)]
			break
		}
	}
	a.cfg.Voice.Language = next
	a.chatView.AddNotice("Voice language: " + next)
}

// startListening captures one utterance from the microphone.
func (a *App) startListening() (tea.Model, tea.Cmd) {
	if !a.cfg.Voice.Enabled || !a.recognizer.Available() {
		a.chatView.AddNotice("Voice input is not set up on this system")
		return a, nil
	}

	a.chatView.SetListening(true)
	recognizer := a.recognizer
	lang := a.cfg.Voice.Language
	return a, func() tea.Msg {
		text, err := recognizer.Listen(context.Background(), lang)
		return transcriptMsg{text: text, err: err}
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (a *App) View() string {
	switch a.state {
	case stateAuth:
		return a.theme.App.Render(a.loginView.View())
	default:
		return a.theme.App.Render(lipgloss.JoinHorizontal(lipgloss.Top,
			a.sideView.View(),
			a.theme.Container.Render(a.chatView.View()),
		))
	}
}

// =============================================================================
// MAIN
// =============================================================================

func main() {
	// .env is optional; real settings live in config.toml.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fishchat: %v\n", err)
		os.Exit(1)
	}

	dataDir, err := cfg.DataDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fishchat: %v\n", err)
		os.Exit(1)
	}

	kv, err := storage.OpenKV(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fishchat: cannot open data directory: %v\n", err)
		os.Exit(1)
	}

	recorder, err := feedback.NewRecorder(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fishchat: %v\n", err)
		os.Exit(1)
	}

	app := NewApp(cfg, kv, recorder)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		var terr *transport.TransportError
		if errors.As(err, &terr) {
			fmt.Fprintln(os.Stderr, "fishchat:", terr)
		} else {
			fmt.Fprintf(os.Stderr, "fishchat: %v\n", err)
		}
		os.Exit(1)
	}
}
