// Package bar is the terminal presentation of the launcher: one button per
// item, a window popup on hover and conditional visibility.
package bar

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mj1618/desktop-launcher/internal/config"
	"github.com/mj1618/desktop-launcher/internal/launcher"
	"github.com/mj1618/desktop-launcher/internal/model"
	"github.com/mj1618/desktop-launcher/internal/pipe"
	"github.com/mj1618/desktop-launcher/internal/platform"
	"github.com/mj1618/desktop-launcher/internal/script"
	"github.com/mj1618/desktop-launcher/internal/visibility"
)

const frameInterval = 16 * time.Millisecond

// Options configures the bar.
type Options struct {
	Appearance launcher.AppearanceOptions
	ShowIcons  bool
	Reversed   bool
	// Common holds the event scripts and tooltip.
	Common config.CommonConfig

	Transition visibility.RevealerTransition
	Duration   time.Duration
	Styles     *Styles
	Logger     *slog.Logger
}

type (
	updateMsg         struct{ update launcher.Update }
	updatesClosedMsg  struct{}
	visibilityMsg     bool
	visibilityDoneMsg struct{}
	frameMsg          time.Time
)

type popupState struct {
	appID    string
	open     bool
	geometry platform.Bounds
}

// span is the horizontal extent of one rendered button.
type span struct {
	appID  string
	x0, x1 int
}

// Model is the bubbletea model for the bar. Updates arrive from the
// controller and from the buttons themselves; clicks leave as intents.
type Model struct {
	ctx    context.Context
	opts   Options
	styles Styles
	keys   keyMap
	logger *slog.Logger

	updates   <-chan launcher.Update
	feedback  pipe.Sender[launcher.Update]
	intents   pipe.Sender[launcher.Intent]
	predicate <-chan bool

	order   []string
	buttons map[string]*launcher.ItemButton
	views   map[string]model.ItemView

	popup    popupState
	hovered  string
	selected int
	width    int

	// classes from common.class, applied to every button
	classes []string

	container *visibility.Container
	revealer  *visibility.Revealer
	showIf    *visibility.ShowIf
	animating bool

	closed bool
}

// New builds the bar. updates is the receive side of the update queue and
// feedback its send side, used by buttons for hover and popup messages.
// predicate carries show_if results and is nil when the bar is always shown.
func New(ctx context.Context, updates <-chan launcher.Update, feedback pipe.Sender[launcher.Update], intents pipe.Sender[launcher.Intent], predicate <-chan bool, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Common.Name != "" {
		logger = logger.With("bar", opts.Common.Name)
	}
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	classes := strings.Fields(opts.Common.Class)
	for _, class := range classes {
		if _, ok := styles.Classes[class]; !ok {
			logger.Warn("unknown bar class", "class", class)
		}
	}
	mode := visibility.Unconditional
	if predicate != nil {
		mode = visibility.Conditional
	}
	container := &visibility.Container{}
	revealer := visibility.NewRevealer(opts.Transition, opts.Duration)
	return &Model{
		ctx:       ctx,
		opts:      opts,
		styles:    styles,
		keys:      defaultKeyMap(),
		logger:    logger,
		updates:   updates,
		feedback:  feedback,
		intents:   intents,
		predicate: predicate,
		buttons:   make(map[string]*launcher.ItemButton),
		views:     make(map[string]model.ItemView),
		classes:   classes,
		container: container,
		revealer:  revealer,
		showIf:    visibility.InstallShowIf(container, revealer, mode),
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForUpdate(), m.waitForPredicate()}
	if m.opts.Common.Name != "" {
		cmds = append(cmds, tea.SetWindowTitle(m.opts.Common.Name))
	}
	return tea.Batch(cmds...)
}

func (m *Model) waitForUpdate() tea.Cmd {
	ch := m.updates
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return updatesClosedMsg{}
		}
		return updateMsg{update: u}
	}
}

func (m *Model) waitForPredicate() tea.Cmd {
	ch := m.predicate
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return visibilityDoneMsg{}
		}
		return visibilityMsg(v)
	}
}

func (m *Model) frame() tea.Cmd {
	if m.animating {
		return nil
	}
	m.animating = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.apply(msg.update)
		return m, m.waitForUpdate()

	case updatesClosedMsg:
		m.closed = true
		return m, tea.Quit

	case visibilityMsg:
		m.showIf.Apply(bool(msg))
		cmds := []tea.Cmd{m.waitForPredicate()}
		if m.revealer.Animating() {
			cmds = append(cmds, m.frame())
		}
		return m, tea.Batch(cmds...)

	case visibilityDoneMsg:
		return m, nil

	case frameMsg:
		m.animating = false
		m.revealer.Advance(frameInterval)
		if m.revealer.Animating() {
			return m, m.frame()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		m.updateMouse(msg)
		return m, nil
	}
	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Right):
		if m.selected < len(m.order)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Activate):
		if appID := m.selectedID(); appID != "" {
			m.buttons[appID].Click()
		}
	}
	return m, nil
}

func (m *Model) updateMouse(msg tea.MouseMsg) {
	if !m.container.Visible() {
		return
	}
	if msg.Y > 0 {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.clickPopupRow(msg.Y - 1)
		}
		return
	}

	appID := m.hitTest(msg.X)
	if appID != m.hovered {
		if m.hovered != "" {
			script.RunOneshot(m.ctx, m.opts.Common.OnMouseExit, m.logger)
		}
		m.hovered = appID
		if appID != "" {
			script.RunOneshot(m.ctx, m.opts.Common.OnMouseEnter, m.logger)
			m.buttons[appID].Enter(m.geometry(appID))
		}
	}

	if msg.Action != tea.MouseActionPress {
		return
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		if appID != "" {
			m.buttons[appID].Click()
		}
		script.RunOneshot(m.ctx, m.opts.Common.ClickScript("left"), m.logger)
	case tea.MouseButtonRight:
		script.RunOneshot(m.ctx, m.opts.Common.ClickScript("right"), m.logger)
	case tea.MouseButtonMiddle:
		script.RunOneshot(m.ctx, m.opts.Common.ClickScript("middle"), m.logger)
	case tea.MouseButtonWheelUp:
		script.RunOneshot(m.ctx, m.opts.Common.OnScrollUp, m.logger)
	case tea.MouseButtonWheelDown:
		script.RunOneshot(m.ctx, m.opts.Common.OnScrollDown, m.logger)
	}
}

func (m *Model) clickPopupRow(row int) {
	if !m.popup.open {
		return
	}
	view, ok := m.views[m.popup.appID]
	if !ok || row < 0 || row >= len(view.Windows) {
		return
	}
	intent := launcher.FocusWindow{AppID: view.AppID, WindowID: view.Windows[row].ID}
	if err := m.intents.Send(intent); err != nil {
		m.logger.Error("failed to send intent", "error", err)
	}
}

// apply folds one update into the bar state.
func (m *Model) apply(u launcher.Update) {
	switch u := u.(type) {
	case launcher.AddItem:
		if _, exists := m.buttons[u.Item.AppID]; exists {
			m.sync(u.Item)
			return
		}
		m.buttons[u.Item.AppID] = launcher.NewItemButton(u.Item, m.opts.Appearance, m.feedback, m.intents, m.logger)
		m.views[u.Item.AppID] = u.Item
		m.order = append(m.order, u.Item.AppID)
	case launcher.RemoveItem:
		delete(m.buttons, u.AppID)
		delete(m.views, u.AppID)
		for i, id := range m.order {
			if id == u.AppID {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
		if m.selected >= len(m.order) && m.selected > 0 {
			m.selected = len(m.order) - 1
		}
		if m.hovered == u.AppID {
			m.hovered = ""
		}
		if m.popup.appID == u.AppID {
			m.popup = popupState{}
		}
	case launcher.Hover:
		m.popup.appID = u.AppID
	case launcher.OpenPopup:
		m.popup.open = true
		m.popup.geometry = u.Geometry
	case launcher.ClosePopup:
		m.popup.open = false
	default:
		if item, ok := launcher.ItemOf(u); ok {
			m.sync(item)
		}
	}
}

func (m *Model) sync(item model.ItemView) {
	b, ok := m.buttons[item.AppID]
	if !ok {
		return
	}
	b.Sync(item)
	m.views[item.AppID] = item
	if m.popup.appID == item.AppID && item.WindowCount <= 1 {
		m.popup.open = false
	}
}

func (m *Model) displayOrder() []string {
	if !m.opts.Reversed {
		return m.order
	}
	out := make([]string, len(m.order))
	for i, id := range m.order {
		out[len(m.order)-1-i] = id
	}
	return out
}

func (m *Model) selectedID() string {
	order := m.displayOrder()
	if m.selected < 0 || m.selected >= len(order) {
		return ""
	}
	return order[m.selected]
}

func (m *Model) label(b *launcher.ItemButton) string {
	label := b.Label()
	if m.opts.ShowIcons {
		label = icon(b.AppID) + " " + label
	}
	return " " + label + " "
}

// icon is a one-letter badge taken from the last segment of the app id.
func icon(appID string) string {
	seg := appID
	if i := strings.LastIndex(appID, "."); i >= 0 && i < len(appID)-1 {
		seg = appID[i+1:]
	}
	for _, r := range seg {
		return string(unicode.ToUpper(r))
	}
	return "?"
}

func (m *Model) layout() []span {
	var spans []span
	x := 0
	for _, appID := range m.displayOrder() {
		w := lipgloss.Width(m.label(m.buttons[appID]))
		spans = append(spans, span{appID: appID, x0: x, x1: x + w})
		x += w
	}
	return spans
}

func (m *Model) hitTest(x int) string {
	for _, s := range m.layout() {
		if x >= s.x0 && x < s.x1 {
			return s.appID
		}
	}
	return ""
}

func (m *Model) geometry(appID string) platform.Bounds {
	for _, s := range m.layout() {
		if s.appID == appID {
			return platform.Bounds{X: s.x0, Y: 0, Width: s.x1 - s.x0, Height: 1}
		}
	}
	return platform.Bounds{}
}

func (m *Model) View() string {
	if !m.container.Visible() {
		return ""
	}

	var row strings.Builder
	for i, appID := range m.displayOrder() {
		b := m.buttons[appID]
		st := m.styles.forClasses(append(b.Classes(), m.classes...))
		if appID == m.hovered {
			st = m.styles.Hovered.Inherit(st)
		} else if i == m.selected {
			st = m.styles.Selected.Inherit(st)
		}
		row.WriteString(st.Render(m.label(b)))
	}
	line := m.reveal(row.String())

	lines := []string{line}
	if m.popup.open {
		lines = append(lines, m.popupLines()...)
	}
	if m.hovered != "" && m.opts.Common.Tooltip != "" {
		lines = append(lines, m.styles.Tooltip.Render(m.opts.Common.Tooltip))
	}
	return strings.Join(lines, "\n")
}

// reveal applies the transition progress to the rendered bar.
func (m *Model) reveal(line string) string {
	p := m.revealer.Progress()
	if p >= 1 {
		return line
	}
	switch m.revealer.Transition() {
	case visibility.RevealCrossfade:
		return lipgloss.NewStyle().Faint(true).Render(line)
	case visibility.RevealSlideLeft, visibility.RevealSlideUp:
		return truncate(line, p)
	case visibility.RevealSlideRight, visibility.RevealSlideDown:
		w := lipgloss.Width(line)
		shown := truncate(line, p)
		return strings.Repeat(" ", w-lipgloss.Width(shown)) + shown
	default:
		return line
	}
}

func truncate(line string, p float64) string {
	shown := int(float64(lipgloss.Width(line)) * p)
	if shown <= 0 {
		return ""
	}
	return lipgloss.NewStyle().MaxWidth(shown).Render(line)
}

func (m *Model) popupLines() []string {
	view, ok := m.views[m.popup.appID]
	if !ok {
		return nil
	}
	indent := strings.Repeat(" ", m.popup.geometry.X)
	lines := make([]string, 0, len(view.Windows))
	for _, w := range view.Windows {
		st := m.styles.Popup
		if w.State.IsFocused() {
			st = m.styles.PopupFocused
		}
		lines = append(lines, indent+st.Render(w.Name))
	}
	return lines
}
