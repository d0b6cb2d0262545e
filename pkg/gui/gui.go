// Package gui is the terminal front end: a tview application with a main
// menu, the board, the highscores table and the settings menu.
package gui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/gestris/pkg"
	"github.com/qnkhuat/gestris/pkg/config"
	"github.com/qnkhuat/gestris/pkg/event"
	"github.com/qnkhuat/gestris/pkg/store"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const (
	pageMenu     = "menu"
	pageGame     = "game"
	pageScores   = "scores"
	pageSettings = "settings"
)

// SoundSwitch is the part of the sound manager the settings menu drives.
type SoundSwitch interface {
	SetEnabled(on bool)
}

type UI struct {
	App *tview.Application

	ctx      context.Context
	match    *pkg.Match
	cfg      *config.Config
	ledger   *store.Ledger
	sound    SoundSwitch
	logger   *zap.Logger
	pages    *tview.Pages
	menu     *tview.List
	board    *tview.Box
	scores   *tview.Table
	settings *tview.List

	mu      sync.Mutex
	current config.Settings
	message string
}

func New(ctx context.Context, match *pkg.Match, cfg *config.Config, ledger *store.Ledger, sound SoundSwitch, logger *zap.Logger) *UI {
	if logger == nil {
		logger = zap.NewNop()
	}

	ui := &UI{
		App:      tview.NewApplication(),
		ctx:      ctx,
		match:    match,
		cfg:      cfg,
		ledger:   ledger,
		sound:    sound,
		logger:   logger,
		pages:    tview.NewPages(),
		menu:     tview.NewList(),
		board:    tview.NewBox(),
		scores:   tview.NewTable(),
		settings: tview.NewList(),
		current:  cfg.Settings(),
	}

	ui.board.SetDrawFunc(func(screen tcell.Screen, x, y, w, h int) (int, int, int, int) {
		Render(screen, x, y, w, h, ui.view())
		return x, y, w, h
	})
	ui.board.SetInputCapture(ui.handleGameKey)

	ui.scores.SetBorder(true)
	ui.scores.SetDoneFunc(func(key tcell.Key) { ui.show(pageMenu) })

	ui.menu.ShowSecondaryText(false).SetBorder(true)
	ui.settings.ShowSecondaryText(false).SetBorder(true)
	ui.settings.SetDoneFunc(func() { ui.show(pageMenu) })

	ui.pages.
		AddPage(pageMenu, center(ui.menu, 34, len(pkg.MenuActions)+2), true, true).
		AddPage(pageGame, ui.board, true, false).
		AddPage(pageScores, center(ui.scores, 34, store.MaxEntries+3), true, false).
		AddPage(pageSettings, center(ui.settings, 44, 8), true, false)

	ui.rebuild()
	ui.App.SetRoot(ui.pages, true)

	return ui
}

func center(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

func (ui *UI) Run() error {
	return ui.App.Run()
}

func (ui *UI) Stop() {
	ui.App.Stop()
}

// Refresh schedules a redraw. It may be called from any goroutine.
func (ui *UI) Refresh() {
	go ui.App.QueueUpdateDraw(func() {})
}

// ApplySettings adopts settings changed outside the settings menu.
func (ui *UI) ApplySettings(s config.Settings) {
	ui.App.QueueUpdateDraw(func() {
		ui.mu.Lock()
		ui.current = s
		ui.mu.Unlock()

		if ui.sound != nil {
			ui.sound.SetEnabled(s.SoundEnabled)
		}
		ui.rebuild()
	})
}

func (ui *UI) texts() Texts {
	ui.mu.Lock()
	defer ui.mu.Unlock()

	return TextsFor(ui.current.Language)
}

func (ui *UI) theme() Theme {
	ui.mu.Lock()
	defer ui.mu.Unlock()

	return ThemeByName(ui.current.Theme)
}

func (ui *UI) view() View {
	ui.mu.Lock()
	msg := ui.message
	ui.mu.Unlock()

	return View{
		Snapshot: ui.match.Snapshot(),
		Theme:    ui.theme(),
		Texts:    ui.texts(),
		Message:  msg,
	}
}

func (ui *UI) setMessage(msg string) {
	ui.mu.Lock()
	ui.message = msg
	ui.mu.Unlock()
	ui.Refresh()
}

func (ui *UI) show(page string) {
	ui.pages.SwitchToPage(page)
}

// rebuild refills the menus in the current language and colors.
func (ui *UI) rebuild() {
	t := ui.texts()
	th := ui.theme()

	ui.menu.Clear()
	for _, a := range pkg.MenuActions {
		a := a
		ui.menu.AddItem(t.Actions[a], "", 0, func() { ui.runAction(a) })
	}

	ui.buildSettings(t, th)

	for _, l := range []*tview.List{ui.menu, ui.settings} {
		l.SetMainTextColor(th.Text.Color()).
			SetSelectedTextColor(th.Background.Color()).
			SetSelectedBackgroundColor(th.Button.Color()).
			SetBackgroundColor(th.Background.Color())
		l.SetBorderColor(th.Gray.Color())
	}
	ui.scores.SetBackgroundColor(th.Background.Color())
	ui.board.SetBackgroundColor(th.Background.Color())
}

func (ui *UI) buildSettings(t Texts, th Theme) {
	ui.mu.Lock()
	s := ui.current
	ui.mu.Unlock()

	idx := ui.settings.GetCurrentItem()
	ui.settings.Clear().
		AddItem(t.Language, "", 0, func() { ui.updateSettings((*config.Settings).ToggleLanguage) }).
		AddItem(t.Sound(s.SoundEnabled), "", 0, func() {
			ui.updateSettings(func(s *config.Settings) { s.SoundEnabled = !s.SoundEnabled })
		}).
		AddItem(tview.Escape(t.ResolutionLabel(s.Resolution)), "", 0, func() {
			ui.updateSettings(func(s *config.Settings) {
				if !s.CustomResolution {
					s.Resolution = config.NextResolution(s.Resolution)
				}
			})
		}).
		AddItem(tview.Escape(t.CustomResLabel(s.CustomResolution)), "", 0, func() {
			ui.updateSettings(func(s *config.Settings) { s.CustomResolution = !s.CustomResolution })
		}).
		AddItem(fmtTheme(t, th), "", 0, func() { ui.updateSettings((*config.Settings).ToggleTheme) }).
		AddItem(t.Back, "", 0, func() { ui.show(pageMenu) })
	ui.settings.SetCurrentItem(idx)
}

func fmtTheme(t Texts, th Theme) string {
	name, ok := th.Title[t.Lang]
	if !ok {
		name = th.Name
	}
	return tview.Escape(fmt.Sprintf(t.Theme, name))
}

func (ui *UI) updateSettings(change func(*config.Settings)) {
	ui.mu.Lock()
	s := ui.current
	s.Resolution = append([]int(nil), s.Resolution...)
	change(&s)
	ui.current = s
	ui.mu.Unlock()

	if err := ui.cfg.Save(s); err != nil {
		ui.logger.Warn("could not save settings", zap.Error(err))
	}
	if ui.sound != nil {
		ui.sound.SetEnabled(s.SoundEnabled)
	}
	ui.rebuild()
}

func (ui *UI) runAction(a pkg.Action) {
	t := ui.texts()

	switch a {
	case pkg.ActionNewGame:
		ui.setMessage("")
		go func() {
			if err := ui.match.NewGame(ui.ctx); err != nil {
				ui.logger.Warn("new game failed", zap.Error(err))
			}
		}()
		ui.show(pageGame)

	case pkg.ActionLoadGame:
		ui.command(event.CommandLoad, t.Loaded)
		ui.show(pageGame)

	case pkg.ActionSaveGame:
		ui.command(event.CommandSave, t.Saved)
		ui.show(pageGame)

	case pkg.ActionHighscores:
		ui.fillScores(t)
		ui.show(pageScores)

	case pkg.ActionSettings:
		ui.show(pageSettings)

	case pkg.ActionExit:
		ui.App.Stop()
	}
}

// command runs cmd off the UI goroutine and reports the outcome.
func (ui *UI) command(cmd event.Command, success string) {
	t := ui.texts()

	go func() {
		err := ui.match.Do(ui.ctx, cmd)
		if err != nil {
			ui.logger.Warn("command failed", zap.Stringer("command", cmd), zap.Error(err))
		}
		ui.setMessage(t.Outcome(err, success))
	}()
}

// Outcome turns a save or load result into a status line.
func (t Texts) Outcome(err error, success string) string {
	var decodeErr *store.DecodeError

	switch {
	case err == nil:
		return success
	case errors.Is(err, fs.ErrNotExist):
		return t.NoSave
	case errors.As(err, &decodeErr):
		return t.BadSave
	case errors.Is(err, pkg.ErrNoGame):
		return t.NoGame
	default:
		return err.Error()
	}
}

func (ui *UI) fillScores(t Texts) {
	ui.scores.Clear()
	ui.scores.SetTitle(" " + t.Actions[pkg.ActionHighscores] + " ")

	entries, err := ui.ledger.Load()
	if err != nil {
		ui.logger.Warn("could not read highscores", zap.Error(err))
	}

	th := ui.theme()
	for i, e := range entries {
		ui.scores.SetCell(i, 0, tview.NewTableCell(tview.Escape(scoreLine(i+1, e.Score, e.Name))).
			SetTextColor(th.Text.Color()))
	}
	ui.scores.SetCell(len(entries)+1, 0, tview.NewTableCell(t.Back).SetTextColor(th.Gray.Color()))
}
