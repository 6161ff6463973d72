package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/wemanga/wemanga/anilist"
	"github.com/wemanga/wemanga/catalog"
	"github.com/wemanga/wemanga/internal/ui"
	"github.com/wemanga/wemanga/key"
	"github.com/wemanga/wemanga/log"
	"github.com/wemanga/wemanga/resume"
	"github.com/wemanga/wemanga/session"
	"github.com/wemanga/wemanga/style"
	"github.com/wemanga/wemanga/util"
)

// errNothingToContinue is returned on --continue when the resume log has no playable entry.
var errNothingToContinue = errors.New("nothing to continue")

// statefulBubble is the bubbletea model. Page changes go through the controller,
// the bubble mirrors its view and renders the matching components.
type statefulBubble struct {
	state  state
	keymap *statefulKeymap

	controller *session.Controller
	catalog    *catalog.Catalog
	store      *resume.Log
	surface    Surface
	upcoming   Feed

	// components
	spinnerC  spinner.Model
	inputC    textinput.Model
	homeC     list.Model
	titlesC   list.Model
	episodesC list.Model
	progressC progress.Model
	helpC     help.Model

	searching bool
	query     string
	feed      []*anilist.Upcoming
	fetching  bool
	progress  float64
	lastError error

	width, height int
	notifier      *ui.Model

	options *Options
}

// ScrollToTop brings every list back to its first item. The controller calls it on each page change.
func (b *statefulBubble) ScrollToTop() {
	b.homeC.ResetSelected()
	b.titlesC.ResetSelected()
	b.episodesC.ResetSelected()
}

// raiseError shows err in place of the current page.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.setState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// sync mirrors the controller page and refreshes the list it shows.
func (b *statefulBubble) sync() {
	current := b.controller.State()
	b.setState(stateOf(current.View))
	b.progress = current.Progress

	switch b.state {
	case homeState:
		b.refreshHome()
	case listingState:
		b.refreshTitles(current.View)
	case detailState:
		b.refreshEpisodes(current.Title)
	}
}

// continueWatching plays the most recent resolvable entry of the resume log.
func (b *statefulBubble) continueWatching() error {
	entries, err := resume.Rail(b.store, b.catalog, 1)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return errNothingToContinue
	}

	entry := entries[0]
	if err := b.controller.PlayEpisode(entry.Title, entry.Season, entry.Episode); err != nil {
		return err
	}

	b.sync()
	return nil
}

func (b *statefulBubble) refreshHome() {
	var items []list.Item

	entries, err := resume.Rail(b.store, b.catalog, viper.GetInt(key.ResumeRailSize))
	if err != nil {
		log.Warnf("continue watching: %v", err)
	}
	for _, e := range entries {
		items = append(items, &listItem{internal: e})
	}

	for _, v := range []session.View{session.Series, session.Films, session.Catalog} {
		items = append(items, &listItem{internal: v})
	}

	for _, n := range b.catalog.Nouveautes() {
		items = append(items, &listItem{internal: n})
	}

	for _, t := range b.catalog.Classiques() {
		items = append(items, &listItem{internal: t})
	}

	for _, u := range b.feed {
		items = append(items, &listItem{internal: u})
	}

	b.homeC.SetItems(items)
}

func kindOf(view session.View) catalog.Kind {
	switch view {
	case session.Series:
		return catalog.KindSerie
	case session.Films:
		return catalog.KindFilm
	default:
		return ""
	}
}

func (b *statefulBubble) refreshTitles(view session.View) {
	titles := b.catalog.Filter(kindOf(view), b.query)
	b.titlesC.Title = util.Capitalize(view.String())
	b.titlesC.SetItems(lo.Map(titles, func(t *catalog.Title, _ int) list.Item {
		return &listItem{internal: t}
	}))
}

func (b *statefulBubble) refreshEpisodes(title *catalog.Title) {
	if title == nil {
		b.episodesC.SetItems(nil)
		return
	}

	watched := make(map[resume.Key]*resume.Record)
	if records, err := b.store.List(); err == nil {
		for _, r := range records {
			watched[r.Key()] = r
		}
	}

	var items []list.Item
	for _, s := range title.Seasons {
		for _, e := range s.Episodes {
			items = append(items, &listItem{internal: &episodeItem{
				title:   title,
				season:  s,
				episode: e,
				record:  mo.EmptyableToOption(watched[resume.KeyOf(title, s, e)]),
			}})
		}
	}

	b.episodesC.Title = title.Title
	b.episodesC.SetItems(items)
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	for _, l := range []*list.Model{&b.homeC, &b.titlesC, &b.episodesC} {
		l.SetSize(listWidth, listHeight)
		l.Help.Width = listWidth
	}

	b.progressC.Width = listWidth
	b.inputC.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

// newBubble wires a controller to a fresh model. The model is the controller's viewport.
func newBubble(options *Options) *statefulBubble {
	bubble := statefulBubble{
		keymap:   newStatefulKeymap(),
		catalog:  options.Catalog,
		store:    options.Store,
		surface:  options.Surface,
		upcoming: options.Upcoming,
		notifier: &ui.Model{},
		options:  options,
	}

	if bubble.catalog == nil {
		bubble.catalog = catalog.New(nil)
	}

	type listOptions struct {
		TitleStyle mo.Option[lipgloss.Style]
	}

	makeList := func(title string, options *listOptions) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		if titleStyle, ok := options.TitleStyle.Get(); ok {
			listC.Styles.Title = titleStyle
		}
		listC.StatusMessageLifetime = time.Hour * 999
		listC.SetFilteringEnabled(false)
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = "Title, description or genre"
	bubble.inputC.CharLimit = 60
	bubble.inputC.Prompt = "Search: "

	bubble.progressC = progress.New(progress.WithDefaultGradient())

	bubble.homeC = makeList("WeManga", &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1),
		),
	})
	bubble.homeC.SetStatusBarItemName("entry", "entries")

	bubble.titlesC = makeList("Catalog", &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Lavender).Padding(0, 1),
		),
	})
	bubble.titlesC.SetStatusBarItemName("title", "titles")

	bubble.episodesC = makeList("Episodes", &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Peach).Padding(0, 1),
		),
	})
	bubble.episodesC.SetStatusBarItemName("episode", "episodes")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.controller = session.New(options.Tracker, options.Surface, &bubble)
	bubble.sync()

	return &bubble
}
