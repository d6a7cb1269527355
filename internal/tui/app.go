// Package tui is the interactive render sink: a bubbletea program exposing
// the search, category, and sort controls and displaying the paginated slice
// the session derives. The query engine itself has no dependency on this
// package.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fabrizia2/blogfocus/internal/blog"
	"github.com/fabrizia2/blogfocus/internal/query"
	"github.com/fabrizia2/blogfocus/internal/session"
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeFilter
	modeHelp
)

// sortCycle is the order the sort key control steps through.
var sortCycle = []query.SortKey{
	query.SortNone,
	query.SortDate,
	query.SortReadingTime,
	query.SortCategory,
}

// App is the bubbletea model. All session mutations happen on the update
// goroutine; the session reports back through messages, so the displayed
// slice always reflects the session's last render.
type App struct {
	session *session.Session
	msgq    chan tea.Msg
	deb     *query.Debouncer

	slice      []blog.Record
	categories []string
	suggestion string

	cursor     int
	mode       mode
	loading    bool
	loaded     bool
	errText    string
	filterIdx  int
	sortIdx    int
	width      int
	height     int

	searchInput textinput.Model
	spinner     spinner.Model
}

// teaSink forwards session renders into the program's message loop.
type teaSink struct {
	send func(tea.Msg)
}

func (s *teaSink) Display(slice []blog.Record) {
	s.send(displayMsg{slice: slice})
}

// teaProgress drives the loading indicator through messages, so it is shown
// before the load starts and hidden on every exit path.
type teaProgress struct {
	send func(tea.Msg)
}

func (p *teaProgress) Start() { p.send(loadingMsg{active: true}) }
func (p *teaProgress) Done()  { p.send(loadingMsg{active: false}) }

// NewApp builds the App and its Session. send delivers messages into the
// running program and is set by Run before the first message is processed.
func NewApp(opts session.Options) *App {
	ti := textinput.New()
	ti.Placeholder = "Search posts..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	a := &App{
		msgq:        make(chan tea.Msg, 64),
		deb:         query.NewDebouncer(query.SearchDebounce),
		searchInput: ti,
		spinner:     sp,
	}

	// Session collaborators all funnel through the message loop.
	opts.Sink = &teaSink{send: a.dispatch}
	opts.Progress = &teaProgress{send: a.dispatch}
	opts.OnError = func(message string) { a.dispatch(loadErrMsg{message: message}) }
	a.session = session.New(opts)
	return a
}

// dispatch queues a message for the program. The queue keeps session renders
// in issue order and lets session methods be called from the update goroutine
// without blocking on the program's own message channel.
func (a *App) dispatch(msg tea.Msg) {
	a.msgq <- msg
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.refreshCmd(), a.spinner.Tick)
}

// refreshCmd triggers a full load on a command goroutine. Results arrive as
// display/error/loading messages from the session's collaborators.
func (a *App) refreshCmd() tea.Cmd {
	sess := a.session
	return func() tea.Msg {
		_ = sess.Refresh(context.Background())
		return refreshDoneMsg{}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case displayMsg:
		a.slice = msg.slice
		a.loaded = a.session.Loaded()
		if a.loaded {
			a.errText = ""
		}
		if a.cursor >= len(a.slice) {
			a.cursor = max(0, len(a.slice)-1)
		}
		a.categories = collectCategories(a.session.Master())
		a.suggestion = ""
		if len(a.slice) == 0 {
			if term := a.session.State().SearchTerm; term != "" {
				if s, ok := query.Suggest(term, a.session.Master()); ok {
					a.suggestion = s
				}
			}
		}
		return a, nil

	case loadingMsg:
		a.loading = msg.active
		if a.loading {
			return a, a.spinner.Tick
		}
		return a, nil

	case loadErrMsg:
		a.errText = msg.message
		a.slice = nil
		a.cursor = 0
		return a, nil

	case searchCommitMsg:
		a.session.SetSearch(msg.term)
		a.cursor = 0
		return a, nil

	case refreshDoneMsg:
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.deb.Stop()
		return a, tea.Quit
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeFilter:
		return a.handleFilterKey(msg)
	case modeHelp:
		switch msg.String() {
		case "?", "esc", "q":
			a.mode = modeNormal
		}
		return a, nil
	case modeNormal:
	}

	switch msg.String() {
	case "q":
		a.deb.Stop()
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(a.slice)-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "m", "enter":
		// Load more: grow the displayed prefix by one page.
		if len(a.slice) < a.session.ViewLen() {
			a.session.AdvancePage()
		}
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink
	case "f":
		a.mode = modeFilter
		a.filterIdx = a.currentFilterIdx()
		return a, nil
	case "s":
		// Dropdown semantics: each discrete change applies immediately.
		a.sortIdx = (a.sortIdx + 1) % len(sortCycle)
		a.session.SetSort(sortCycle[a.sortIdx])
		a.cursor = 0
		return a, nil
	case "r":
		if !a.loading {
			return a, tea.Batch(a.refreshCmd(), a.spinner.Tick)
		}
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.deb.Stop()
		a.session.SetSearch("")
		a.cursor = 0
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		term := a.searchInput.Value()
		a.deb.Stop()
		a.session.SetSearch(term)
		a.cursor = 0
		return a, nil
	}

	before := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	after := a.searchInput.Value()

	// Coalesce rapid keystrokes: at most one derivation per quiet window.
	if after != before {
		a.deb.Trigger(func() {
			a.dispatch(searchCommitMsg{term: after})
		})
	}
	return a, cmd
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := a.filterOptions()
	switch msg.String() {
	case "esc", "f":
		a.mode = modeNormal
		return a, nil
	case "left", "h":
		if a.filterIdx > 0 {
			a.filterIdx--
		}
		return a, nil
	case "right", "l":
		if a.filterIdx < len(options)-1 {
			a.filterIdx++
		}
		return a, nil
	case " ", "enter":
		a.mode = modeNormal
		category := ""
		if a.filterIdx > 0 {
			category = options[a.filterIdx]
		}
		a.session.SetCategory(category)
		a.cursor = 0
		return a, nil
	}
	return a, nil
}

// filterOptions is the category selector: "All" plus every distinct category
// present in the master collection.
func (a *App) filterOptions() []string {
	return append([]string{"All"}, a.categories...)
}

func (a *App) currentFilterIdx() int {
	current := a.session.State().Category
	if current == "" {
		return 0
	}
	for i, c := range a.categories {
		if c == current {
			return i + 1
		}
	}
	return 0
}

func collectCategories(master []blog.Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range master {
		if r.Category == "" || seen[r.Category] {
			continue
		}
		seen[r.Category] = true
		out = append(out, r.Category)
	}
	sort.Strings(out)
	return out
}

func (a *App) View() string {
	if a.width == 0 {
		return headerStyle.Render("blogfocus")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	header := headerStyle.Render("blogfocus") + " " +
		headerMetaStyle.Render(fmt.Sprintf("sort: %s", a.session.State().Sort))

	controls := a.renderFilterBar()
	if a.mode == modeSearch {
		controls = a.searchInput.View()
	}

	contentHeight := a.height - 4
	if contentHeight < cardLines {
		contentHeight = cardLines
	}
	content := renderSlice(a.slice, a.cursor, contentHeight, a.width, a.suggestion)

	status := a.renderStatus()
	if a.errText != "" {
		status = errorStyle.Render(a.errText)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, controls, content, status)
}

func (a *App) renderFilterBar() string {
	current := a.session.State().Category
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string
	for i, option := range a.filterOptions() {
		style := tabInactiveStyle
		active := (i == 0 && current == "") || (i > 0 && option == current)
		if active {
			style = tabActiveStyle
		}
		label := option
		if a.mode == modeFilter && i == a.filterIdx {
			label = "[" + option + "]"
		}
		parts = append(parts, style.Render(label))
	}

	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > a.width && row != "" {
			break
		}
		row = candidate
	}
	return lipgloss.NewStyle().Width(a.width).PaddingLeft(1).Render(row)
}

func (a *App) renderStatus() string {
	total := a.session.ViewLen()
	shown := len(a.slice)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d of %d posts", shown, total))
	if shown < total {
		b.WriteString(statusOKStyle.Render("  m: load more"))
	}
	b.WriteString("  /: search  f: filter  s: sort  r: refresh  ?: help")

	status := statusStyle.Render(b.String())
	if a.loading {
		status = a.spinner.View() + " " + status
	}
	return status
}

func (a *App) renderHelp() string {
	title := headerStyle.Render("blogfocus")
	dim := headerMetaStyle

	return title + dim.Render(" · Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Move between posts\n" +
		"  m, enter      Load more posts\n\n" +
		dim.Render("Query") + "\n" +
		"  /             Search titles (250ms debounce)\n" +
		"  f             Choose category filter\n" +
		"  s             Cycle sort key (none → date → reading time → category)\n\n" +
		dim.Render("General") + "\n" +
		"  r             Refresh from sources\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"
}

// Run starts the TUI program and blocks until it exits.
func Run(opts session.Options) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())

	done := make(chan struct{})
	go func() {
		for {
			select {
			case msg := <-app.msgq:
				p.Send(msg)
			case <-done:
				return
			}
		}
	}()

	_, err := p.Run()
	close(done)
	return err
}
