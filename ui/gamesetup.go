package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termchess/engine"
)

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	onStart  func(engine.GameConfig)
	onCancel func()
	onColors func()

	cfg engine.GameConfig
}

// NewGameSetup creates a new game setup form seeded with defaults.
func NewGameSetup(defaults engine.GameConfig, onStart func(engine.GameConfig), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		onStart:  onStart,
		onCancel: onCancel,
		onColors: onColors,
		cfg:      defaults,
	}

	form := tview.NewForm()
	form.SetLabelColor(MenuColors.Label)
	form.SetFieldBackgroundColor(MenuColors.CardBG)

	form.AddCheckbox("Turn board for Black", defaults.AutoFlip, func(checked bool) {
		setup.cfg.AutoFlip = checked
	})
	form.AddCheckbox("Highlight possible moves", defaults.ShowHints, func(checked bool) {
		setup.cfg.ShowHints = checked
	})
	form.AddCheckbox("End game on king capture", defaults.StopAtKingCapture, func(checked bool) {
		setup.cfg.StopAtKingCapture = checked
	})

	form.AddButton("Start Game", func() {
		onStart(setup.Config())
	})

	form.AddButton("Board Colors", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetBorderColor(MenuColors.Border)
	form.SetTitle(" New Game ")
	form.SetTitleColor(MenuColors.Title)
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate  |  Space: toggle  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// Config returns the game configuration currently selected in the form.
func (s *GameSetupUI) Config() engine.GameConfig {
	cfg := s.cfg
	if len(cfg.Moves) > 0 {
		cfg.Moves = append(cfg.Moves[:0:0], cfg.Moves...)
	}
	return cfg
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
