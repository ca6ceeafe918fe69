package ui

import (
	"context"
	"errors"
	"slices"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrSnakeDoc/pokedex/internal/browse"
	"github.com/MrSnakeDoc/pokedex/internal/domain"
	"github.com/MrSnakeDoc/pokedex/internal/favorites"
	"github.com/MrSnakeDoc/pokedex/internal/logger"
	"github.com/MrSnakeDoc/pokedex/internal/querycache"
	"github.com/MrSnakeDoc/pokedex/internal/session"
	"github.com/MrSnakeDoc/pokedex/internal/urlstate"
)

// Browser is what the app reads and toggles. *browse.Service implements it.
type Browser interface {
	List(ctx context.Context, state domain.URLState) (browse.ListView, error)
	Detail(ctx context.Context, rawID string) (browse.DetailView, error)
	Types(ctx context.Context) ([]string, error)
	ToggleFavorite(ctx context.Context, id int, name string) bool
}

// AppConfig wires the app. Events and Logger are optional.
type AppConfig struct {
	Context context.Context
	Logger  logger.Logger
	Browser Browser
	URL     *urlstate.Model
	History *urlstate.History
	Session *session.Store
	Events  <-chan favorites.Event
}

type screen int

const (
	screenList screen = iota
	screenDetail
)

const (
	slotList   = "list"
	slotDetail = "detail"
)

// App is the root Bubble Tea model. Every committed URL state arrives as a
// stateChanged message and triggers a list load; loads carry a ticket and
// only the newest one per slot is applied.
type App struct {
	ctx     context.Context
	browser Browser
	url     *urlstate.Model
	history *urlstate.History
	session *session.Store
	events  <-chan favorites.Event
	latest  *querycache.Latest
	logger  logger.Logger

	screen screen
	search textinput.Model
	types  []string

	state   domain.URLState
	list    browse.ListView
	listOK  bool
	cursor  int
	offset  int
	restore *session.RestorePoint
	// query the pending restore waits for
	restoreQuery string

	detail   browse.DetailView
	detailID int
	notFound bool

	loading bool
	err     error
	width   int
	height  int
}

func NewApp(cfg AppConfig) App {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}

	state := cfg.URL.Read()

	ti := textinput.New()
	ti.Placeholder = "Search Pokémon..."
	ti.Prompt = "/ "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	ti.CharLimit = 64
	ti.SetValue(state.Search)

	return App{
		ctx:     ctx,
		browser: cfg.Browser,
		url:     cfg.URL,
		history: cfg.History,
		session: cfg.Session,
		events:  cfg.Events,
		latest:  querycache.NewLatest(),
		logger:  log,
		search:  ti,
		state:   state,
		loading: true,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.listen(), a.listenFavorites(), a.loadList(a.state), a.loadTypes())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.screen == screenDetail {
			return a.handleDetailKey(msg)
		}
		if a.search.Focused() {
			return a.handleSearchKey(msg)
		}
		return a.handleListKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.clampScroll()
		return a, nil

	case stateChanged:
		// the user went somewhere else before the remembered page loaded
		if a.restore != nil && msg.State.Encode() != a.restoreQuery {
			a.restore = nil
		}
		a.state = msg.State
		if !a.search.Focused() {
			a.search.SetValue(msg.State.Search)
		}
		a.loading = true
		return a, tea.Batch(a.listen(), a.loadList(msg.State))

	case listLoaded:
		if !a.latest.Current(msg.Ticket) {
			return a, nil
		}
		a.loading = false
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.err = nil
		if !a.listOK || msg.View.Query != a.list.Query {
			a.cursor, a.offset = 0, 0
		}
		a.list = msg.View
		a.listOK = true
		if a.restore != nil && a.restore.Page == msg.View.State.Page {
			a.restoreTo(*a.restore)
			a.restore = nil
		}
		a.clampScroll()
		return a, nil

	case detailLoaded:
		if !a.latest.Current(msg.Ticket) {
			return a, nil
		}
		a.loading = false
		switch {
		case errors.Is(msg.Err, domain.ErrMalformedID):
			a.notFound = true
		case msg.Err != nil:
			a.err = msg.Err
		default:
			a.err = nil
			a.detail = msg.View
		}
		return a, nil

	case typesLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.types = msg.Types
		return a, nil

	case favoriteToggled:
		if a.detail.Pokemon.ID == msg.ID {
			a.detail.Favorite = msg.On
		}
		if a.events != nil {
			// the store publishes the change; favoritesChanged reloads
			return a, nil
		}
		return a, a.loadList(a.state)

	case favoritesChanged:
		return a, tea.Batch(a.listenFavorites(), a.loadList(a.state))
	}

	return a, nil
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a.quit()
	case "enter":
		a.search.Blur()
		a.url.Flush()
		return a, nil
	case "esc":
		a.search.Blur()
		return a, nil
	}

	before := a.search.Value()
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	if v := a.search.Value(); v != before {
		a.url.WriteSearch(v)
	}
	return a, cmd
}

func (a App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses the error bar except the retry key itself.
	if a.err != nil && msg.String() != "r" {
		a.err = nil
	}

	items := a.list.Items

	switch msg.String() {
	case "q", "ctrl+c":
		return a.quit()

	case "/":
		return a, a.search.Focus()

	case "j", "down":
		if a.cursor < len(items)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "g", "home":
		a.cursor = 0
	case "G", "end":
		a.cursor = max(len(items)-1, 0)

	case "n", "l", "right":
		if a.list.HasNext {
			a.url.SetPage(a.state.Page + 1)
		}
	case "p", "h", "left":
		if a.list.HasPrev {
			a.url.SetPage(a.state.Page - 1)
		}

	case "t":
		a.url.SetType(a.cycleType(1))
	case "T":
		a.url.SetType(a.cycleType(-1))
	case "s":
		if a.state.Sort == domain.SortName {
			a.url.SetSort(domain.SortID)
		} else {
			a.url.SetSort(domain.SortName)
		}
	case "v":
		a.url.SetFavorites(!a.state.Favorites)

	case "[", "alt+left":
		if q, ok := a.history.Back(); ok {
			a.url.Sync(q)
		}
	case "]", "alt+right":
		if q, ok := a.history.Forward(); ok {
			a.url.Sync(q)
		}

	case "f", " ":
		if e, ok := a.focused(); ok {
			return a, a.toggleFavorite(e.ID(), e.Name)
		}
	case "enter":
		if e, ok := a.focused(); ok {
			return a.openDetail(e)
		}

	case "r":
		if a.err != nil || !a.listOK {
			a.err = nil
			a.loading = true
			cmds := []tea.Cmd{a.loadList(a.state)}
			if a.types == nil {
				cmds = append(cmds, a.loadTypes())
			}
			return a, tea.Batch(cmds...)
		}
	}

	a.clampScroll()
	return a, nil
}

func (a App) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a.quit()
	case "esc", "backspace", "b":
		return a.backToList()
	case "f", " ":
		if a.detail.Pokemon.ID != 0 {
			return a, a.toggleFavorite(a.detail.Pokemon.ID, a.detail.Pokemon.Name)
		}
	case "r":
		if a.err != nil {
			a.err = nil
			a.loading = true
			return a, a.loadDetail(a.detailID)
		}
	}
	return a, nil
}

func (a App) quit() (tea.Model, tea.Cmd) {
	a.url.Close()
	return a, tea.Quit
}

// openDetail remembers where the list was before switching screens.
func (a App) openDetail(e domain.EntryRef) (tea.Model, tea.Cmd) {
	if err := a.session.Save(session.ListScrollKey, session.RestorePoint{
		ScrollY: a.offset,
		FocusID: e.ID(),
		Page:    a.state.Page,
	}); err != nil {
		a.logger.Warn("Failed to save list position", logger.Error(err))
	}

	a.screen = screenDetail
	a.detail = browse.DetailView{}
	a.detailID = e.ID()
	a.notFound = false
	a.err = nil
	a.loading = true
	return a, a.loadDetail(e.ID())
}

// backToList consumes the restore point. When it was taken on another page
// the page is written back first and the point is applied once that page
// is loaded.
func (a App) backToList() (tea.Model, tea.Cmd) {
	a.screen = screenList
	a.notFound = false
	a.err = nil
	a.loading = false

	p, ok := a.session.Take(session.ListScrollKey)
	if !ok {
		return a, nil
	}
	if p.Page != 0 && p.Page != a.state.Page {
		a.restore = &p
		a.restoreQuery = a.url.Write(urlstate.Page(p.Page), urlstate.Deferred)
		return a, nil
	}
	a.restoreTo(p)
	a.clampScroll()
	return a, nil
}

func (a *App) restoreTo(p session.RestorePoint) {
	a.offset = p.ScrollY
	a.cursor = 0
	if i := slices.IndexFunc(a.list.Items, func(e domain.EntryRef) bool { return e.ID() == p.FocusID }); i >= 0 {
		a.cursor = i
	}
}

func (a App) focused() (domain.EntryRef, bool) {
	if a.cursor < 0 || a.cursor >= len(a.list.Items) {
		return domain.EntryRef{}, false
	}
	return a.list.Items[a.cursor], true
}

// cycleType steps through "" (all types) followed by the known types.
func (a App) cycleType(step int) string {
	options := append([]string{""}, a.types...)
	i := slices.Index(options, a.state.Type)
	if i < 0 {
		i = 0
	}
	n := len(options)
	return options[((i+step)%n+n)%n]
}

// rows is the number of list rows that fit on screen.
func (a App) rows() int {
	if a.height == 0 {
		return domain.PageSize
	}
	return max(a.height-8, 3)
}

func (a *App) clampScroll() {
	n := len(a.list.Items)
	if n == 0 {
		a.cursor, a.offset = 0, 0
		return
	}
	a.cursor = min(max(a.cursor, 0), n-1)

	rows := a.rows()
	if a.cursor < a.offset {
		a.offset = a.cursor
	}
	if a.cursor >= a.offset+rows {
		a.offset = a.cursor - rows + 1
	}
	a.offset = min(max(a.offset, 0), max(n-rows, 0))
}

// commands

func (a App) listen() tea.Cmd {
	ch := a.url.Changes()
	return func() tea.Msg {
		return stateChanged{State: <-ch}
	}
}

func (a App) listenFavorites() tea.Cmd {
	if a.events == nil {
		return nil
	}
	ch := a.events
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return favoritesChanged{Event: ev}
	}
}

func (a App) loadList(state domain.URLState) tea.Cmd {
	t := a.latest.Begin(slotList)
	ctx, b := a.ctx, a.browser
	return func() tea.Msg {
		view, err := b.List(ctx, state)
		return listLoaded{Ticket: t, View: view, Err: err}
	}
}

func (a App) loadDetail(id int) tea.Cmd {
	t := a.latest.Begin(slotDetail)
	ctx, b := a.ctx, a.browser
	return func() tea.Msg {
		view, err := b.Detail(ctx, strconv.Itoa(id))
		return detailLoaded{Ticket: t, View: view, Err: err}
	}
}

func (a App) loadTypes() tea.Cmd {
	ctx, b := a.ctx, a.browser
	return func() tea.Msg {
		types, err := b.Types(ctx)
		return typesLoaded{Types: types, Err: err}
	}
}

func (a App) toggleFavorite(id int, name string) tea.Cmd {
	ctx, b := a.ctx, a.browser
	return func() tea.Msg {
		return favoriteToggled{ID: id, On: b.ToggleFavorite(ctx, id, name)}
	}
}
