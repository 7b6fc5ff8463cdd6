package bar

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/desktop-launcher/internal/config"
	"github.com/mj1618/desktop-launcher/internal/launcher"
	"github.com/mj1618/desktop-launcher/internal/model"
	"github.com/mj1618/desktop-launcher/internal/visibility"
)

type sink[T any] struct{ got []T }

func (s *sink[T]) Send(v T) error {
	s.got = append(s.got, v)
	return nil
}

func (s *sink[T]) take() []T {
	out := s.got
	s.got = nil
	return out
}

func item(appID string, state model.OpenState, windows ...string) model.ItemView {
	v := model.ItemView{AppID: appID, Name: appID, State: state, WindowCount: len(windows)}
	for i, name := range windows {
		v.Windows = append(v.Windows, model.WindowView{ID: uint64(i + 1), Name: name, State: model.Open})
	}
	if len(windows) > 0 {
		v.Name = windows[0]
	}
	return v
}

func newTestModel(predicate <-chan bool, opts Options) (*Model, *sink[launcher.Update], *sink[launcher.Intent]) {
	feedback := &sink[launcher.Update]{}
	intents := &sink[launcher.Intent]{}
	m := New(context.Background(), make(chan launcher.Update), feedback, intents, predicate, opts)
	return m, feedback, intents
}

func send(m *Model, u launcher.Update) {
	m.Update(updateMsg{update: u})
}

func TestModel_RendersItems(t *testing.T) {
	m, _, _ := newTestModel(nil, Options{})
	send(m, launcher.AddItem{Item: item("firefox", model.Closed)})
	send(m, launcher.AddItem{Item: item("foot", model.Focused, "vim")})

	view := m.View()
	require.Contains(t, view, "firefox")
	require.Contains(t, view, "foot")
	require.Less(t, strings.Index(view, "firefox"), strings.Index(view, "foot"))

	m.opts.Reversed = true
	view = m.View()
	require.Less(t, strings.Index(view, "foot"), strings.Index(view, "firefox"))
}

func TestModel_ShowIcons(t *testing.T) {
	m, _, _ := newTestModel(nil, Options{ShowIcons: true})
	send(m, launcher.AddItem{Item: item("org.gnome.Nautilus", model.Closed)})
	require.Contains(t, m.View(), "N org.gnome.Nautilus")
}

func TestModel_HoverOpensPopupForManyWindows(t *testing.T) {
	m, feedback, intents := newTestModel(nil, Options{})
	send(m, launcher.AddItem{Item: item("foot", model.Open, "one", "two")})

	m.Update(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionMotion})
	updates := feedback.take()
	require.Equal(t, []launcher.Update{
		launcher.Hover{AppID: "foot"},
		launcher.OpenPopup{Geometry: m.geometry("foot")},
	}, updates)
	for _, u := range updates {
		send(m, u)
	}
	view := m.View()
	require.Contains(t, view, "one")
	require.Contains(t, view, "two")

	m.Update(tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.Equal(t, []launcher.Intent{launcher.FocusWindow{AppID: "foot", WindowID: 2}}, intents.take())

	// a window closed: the popup goes away with it
	send(m, launcher.RemoveWindow{Item: item("foot", model.Open, "one"), WindowID: 2})
	require.False(t, m.popup.open)
}

func TestModel_HoverSingleWindowClosesPopup(t *testing.T) {
	m, feedback, _ := newTestModel(nil, Options{})
	send(m, launcher.AddItem{Item: item("foot", model.Open, "one")})
	m.Update(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionMotion})
	require.Equal(t, []launcher.Update{launcher.ClosePopup{}}, feedback.take())

	// staying on the same button does not repeat the decision
	m.Update(tea.MouseMsg{X: 2, Y: 0, Action: tea.MouseActionMotion})
	require.Empty(t, feedback.take())
}

func TestModel_ClickSendsIntent(t *testing.T) {
	m, _, intents := newTestModel(nil, Options{})
	send(m, launcher.AddItem{Item: item("firefox", model.Closed)})
	send(m, launcher.AddItem{Item: item("foot", model.Open, "one")})

	m.Update(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	footX := m.geometry("foot").X
	m.Update(tea.MouseMsg{X: footX, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	require.Equal(t, []launcher.Intent{
		launcher.OpenItem{AppID: "firefox"},
		launcher.FocusItem{AppID: "foot"},
	}, intents.take())
}

func TestModel_KeyboardSelection(t *testing.T) {
	m, _, intents := newTestModel(nil, Options{})
	send(m, launcher.AddItem{Item: item("firefox", model.Closed)})
	send(m, launcher.AddItem{Item: item("foot", model.Closed)})

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, []launcher.Intent{launcher.OpenItem{AppID: "foot"}}, intents.take())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
}

func TestModel_KeyBindings(t *testing.T) {
	m, _, intents := newTestModel(nil, Options{})
	send(m, launcher.AddItem{Item: item("firefox", model.Closed)})
	send(m, launcher.AddItem{Item: item("foot", model.Closed)})
	send(m, launcher.AddItem{Item: item("mpv", model.Closed)})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 2, m.selected)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 2, m.selected, "selection stops at the last button")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	require.Equal(t, 0, m.selected)

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, []launcher.Intent{launcher.OpenItem{AppID: "firefox"}}, intents.take())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	require.Nil(t, cmd)
	require.Empty(t, intents.take())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
}

func TestModel_RemoveItem(t *testing.T) {
	m, _, _ := newTestModel(nil, Options{})
	send(m, launcher.AddItem{Item: item("foot", model.Open, "one")})
	send(m, launcher.Title{Item: item("foot", model.Open, "renamed"), WindowID: 1, Title: "renamed"})
	require.Equal(t, "renamed", m.views["foot"].Windows[0].Name)

	send(m, launcher.RemoveItem{AppID: "foot"})
	require.Empty(t, m.order)
	require.NotContains(t, m.View(), "foot")
}

func TestModel_UpdatesClosedQuits(t *testing.T) {
	m, _, _ := newTestModel(nil, Options{})
	_, cmd := m.Update(updatesClosedMsg{})
	require.NotNil(t, cmd)
	require.True(t, m.closed)
}

func TestModel_ConditionalVisibility(t *testing.T) {
	pred := make(chan bool)
	m, _, _ := newTestModel(pred, Options{Transition: visibility.RevealSlideLeft, Duration: 4 * frameInterval})
	send(m, launcher.AddItem{Item: item("firefox", model.Closed)})
	require.Empty(t, m.View(), "hidden until the predicate says otherwise")

	_, cmd := m.Update(visibilityMsg(true))
	require.NotNil(t, cmd)
	require.True(t, m.container.Visible())
	for i := 0; i < 4; i++ {
		m.Update(frameMsg(time.Now()))
	}
	require.False(t, m.revealer.Animating())
	require.Contains(t, m.View(), "firefox")

	m.Update(visibilityMsg(false))
	require.True(t, m.container.Visible(), "still animating out")
	for i := 0; i < 4; i++ {
		m.Update(frameMsg(time.Now()))
	}
	require.False(t, m.container.Visible())
	require.Empty(t, m.View())
}

func TestIcon(t *testing.T) {
	require.Equal(t, "N", icon("org.gnome.Nautilus"))
	require.Equal(t, "F", icon("firefox"))
	require.Equal(t, "?", icon(""))
}

func TestStyles_ExtraClasses(t *testing.T) {
	s := DefaultStyles()
	require.Equal(t, colorBlue, s.forClasses([]string{"item", "focused"}).GetForeground())
	require.Equal(t, colorPeach, s.forClasses([]string{"item", "focused", "accent"}).GetForeground())
	require.Equal(t, colorBlue, s.forClasses([]string{"item", "focused", "nonsense"}).GetForeground())
}

func TestModel_CommonClassAndName(t *testing.T) {
	m, _, _ := newTestModel(nil, Options{Common: config.CommonConfig{Name: "dock", Class: "accent  bold"}})
	require.Equal(t, []string{"accent", "bold"}, m.classes)
	require.NotNil(t, m.Init())

	send(m, launcher.AddItem{Item: item("foot", model.Open, "one")})
	require.Contains(t, m.View(), "foot")
}
