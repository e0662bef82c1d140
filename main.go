// termchess is a terminal application to play chess with two players at one
// keyboard.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"termchess/config"
	"termchess/engine"
	"termchess/engine/local"
	"termchess/export"
	"termchess/logging"
	"termchess/notation"
	"termchess/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagFlip       = flag.Bool("flip", false, "Turn the board towards the player to move")
	flagHints      = flag.Bool("hints", true, "Highlight possible moves of the selected piece")
	flagMoves      = flag.String("moves", "", "Moves to play before handing over, e.g. \"e2e4 e7e5\"")
	flagFEN        = flag.Bool("fen", false, "Print the piece placement after -moves and exit")
	flagExport     = flag.String("export", "", "Write the board after -moves as svg or png and exit")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (board only)")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.ChessBoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config
var log *zap.Logger

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("termchess %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		panic(err)
	}

	log, err = logging.Init(cfg.LogOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %s\n", err)
		log = logging.L()
	}
	defer log.Sync()
	log.Info("starting termchess", zap.String("version", Version))

	gameCfg, err := buildGameConfigFromFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Headless modes
	if *flagFEN || *flagExport != "" {
		if err := runHeadless(gameCfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	quickStart := *flagQuickStart || *flagFocus || len(gameCfg.Moves) > 0

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ♞ termchess ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewChessBoard(app, cfg, gameHint, log)

	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			if gameBoard.SelectedPiece() != nil || gameBoard.SelectedTile() != nil {
				gameBoard.ResetSelection()
			} else {
				gameBoard.Close()
				rootPage.SwitchToPage("setup")
			}
			return nil
		}
		switch event.Key() {
		case tcell.KeyUp:
			gameBoard.MoveSelection(0, -1)
		case tcell.KeyDown:
			gameBoard.MoveSelection(0, 1)
		case tcell.KeyLeft:
			gameBoard.MoveSelection(-1, 0)
		case tcell.KeyRight:
			gameBoard.MoveSelection(1, 0)
		case tcell.KeyEnter:
			gameBoard.Activate()
		case tcell.KeyEsc:
			gameBoard.ResetSelection()
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				gameBoard.MoveSelection(-1, 0)
			case 'j':
				gameBoard.MoveSelection(0, 1)
			case 'k':
				gameBoard.MoveSelection(0, -1)
			case 'l':
				gameBoard.MoveSelection(1, 0)
			case ' ':
				gameBoard.Activate()
			case 'r':
				gameBoard.Reset()
			case 'f':
				gameBoard.ToggleFlip()
			case 'e':
				gameBoard.Export("svg")
			case 'p':
				gameBoard.Export("png")
			case 'z':
				if gameBoard.ToggleFocusMode() {
					ui.BuildFocusLayout(gameFrame, gameBoard)
				} else {
					ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
				}
			}
		}
		return event
	})

	setupUI := ui.NewGameSetup(
		cfg.GameConfig(),
		func(setupCfg engine.GameConfig) {
			startGame(setupCfg)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
	)

	colorConfig := ui.NewColorConfig(cfg, log, func() {
		// Refresh the game board with new colors
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	// Start on setup by default, or gameview if quick start
	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 48), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)

	if quickStart {
		startGame(gameCfg)
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		panic(err)
	}
	gameBoard.Close()
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	gameBoard.Close()
	eng := local.NewEngine(gameCfg, log)
	if err := gameBoard.ConnectEngine(eng, gameCfg); err != nil {
		log.Error("failed to start game", zap.Error(err))
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.HidePage("error")
			})
		rootPage.AddPage("error", modal, true, true)
		return
	}
	rootPage.SwitchToPage("gameview")
}

// buildGameConfigFromFlags creates a GameConfig from the config file and
// command-line flags.
func buildGameConfigFromFlags() (engine.GameConfig, error) {
	gameCfg := cfg.GameConfig()

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "flip":
			gameCfg.AutoFlip = *flagFlip
		case "hints":
			gameCfg.ShowHints = *flagHints
		}
	})

	if *flagMoves != "" {
		moves, err := notation.ParseMoves(*flagMoves)
		if err != nil {
			return gameCfg, fmt.Errorf("-moves: %w", err)
		}
		gameCfg.Moves = moves
	}
	return gameCfg, nil
}

// runHeadless replays the configured moves without a terminal UI and prints
// the placement or writes an export.
func runHeadless(gameCfg engine.GameConfig) error {
	eng := local.NewEngine(gameCfg, log)
	defer eng.Close()
	if err := eng.Connect(); err != nil {
		return err
	}
	state := eng.GetBoardState()

	if *flagFEN {
		fmt.Println(notation.Placement(state.Board))
	}
	if *flagExport != "" {
		opts := export.DefaultOptions()
		opts.Glyphs = cfg.Theme.Glyphs
		if state.LastMove != nil {
			opts.Highlights = append(opts.Highlights, state.LastMove.From, state.LastMove.To)
		}
		path, err := export.Save(state, *flagExport, opts)
		if err != nil {
			return err
		}
		fmt.Println(path)
	}
	if winner, ok := eng.Winner(); ok {
		fmt.Printf("%s wins\n", winner)
	}
	return nil
}
