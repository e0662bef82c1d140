package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"termchess/config"
	"termchess/notation"
	"termchess/types"
)

// ColorConfigUI provides a square colour configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()
	log       *zap.Logger

	// Current selection
	selectedLight int
	selectedDark  int
	editingDark   bool // true = editing dark squares, false = editing light squares
	populating    bool
}

type paletteEntry struct {
	code int
	name string
}

// Light square colours
var lightColors = []paletteEntry{
	{230, "Light Cream"},
	{229, "Pale Yellow"},
	{223, "Peach"},
	{222, "Gold"},
	{188, "Light Beige"},
	{187, "Sand"},
	{180, "Tan"},
	{152, "Pale Blue"},
	{151, "Pale Green"},
	{252, "Light Gray"},
	{250, "Gray"},
	{255, "White"},
}

// Dark square colours
var darkColors = []paletteEntry{
	{94, "Saddle Brown"},
	{130, "Dark Orange"},
	{136, "Dark Brown"},
	{137, "Wood"},
	{88, "Dark Red"},
	{22, "Dark Green"},
	{65, "Moss"},
	{23, "Teal"},
	{24, "Dark Cyan"},
	{60, "Slate"},
	{240, "Gray"},
	{236, "Dark Gray"},
}

// previewPosition is drawn in the preview box.
var previewPosition = map[types.Coord]types.Piece{
	{Row: 0, Col: 0}: types.NewRook(types.Black),
	{Row: 0, Col: 4}: types.NewKing(types.Black),
	{Row: 1, Col: 2}: types.NewPawn(types.Black),
	{Row: 2, Col: 3}: types.NewKnight(types.Black),
	{Row: 3, Col: 4}: types.NewPawn(types.White),
	{Row: 4, Col: 1}: types.NewBishop(types.White),
	{Row: 5, Col: 5}: types.NewQueen(types.White),
	{Row: 5, Col: 2}: types.NewKing(types.White),
}

// previewSize is the number of squares per side in the preview.
const previewSize = 6

// NewColorConfig creates a new colour configuration screen.
func NewColorConfig(cfg *config.Config, log *zap.Logger, onDone func()) *ColorConfigUI {
	if log == nil {
		log = zap.NewNop()
	}
	cc := &ColorConfigUI{
		cfg:           cfg,
		onDone:        onDone,
		log:           log,
		selectedLight: cfg.Theme.Colors.LightSquare,
		selectedDark:  cfg.Theme.Colors.DarkSquare,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.SetBorderColor(MenuColors.Border)
	cc.colorList.SetTitleColor(MenuColors.Title)
	cc.colorList.ShowSecondaryText(false)

	cc.populateColorList()

	// Preview follows the highlighted entry
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		list := cc.currentList()
		if cc.populating {
			return
		}
		if index >= 0 && index < len(list) {
			if cc.editingDark {
				cc.selectedDark = list[index].code
			} else {
				cc.selectedLight = list[index].code
			}
		}
	})

	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index < 0 || index >= len(cc.currentList()) {
			return
		}
		if !cc.editingDark {
			// Light square chosen, continue with dark squares
			cc.cfg.Theme.Colors.LightSquare = cc.selectedLight
			cc.editingDark = true
			cc.populateColorList()
			return
		}
		cc.Apply()
		cc.onDone()
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetBorderColor(MenuColors.Border)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	// Layout: list on left, preview on right
	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 34, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

// Apply stores the selected colours in the config and saves it.
func (cc *ColorConfigUI) Apply() {
	cc.cfg.Theme.Colors.LightSquare = cc.selectedLight
	cc.cfg.Theme.Colors.DarkSquare = cc.selectedDark
	if err := cc.cfg.Save(); err != nil {
		cc.log.Warn("could not save config", zap.Error(err))
		return
	}
	cc.log.Info("board colors saved", zap.Int("light", cc.selectedLight), zap.Int("dark", cc.selectedDark))
}

// Selection returns the light and dark square colours currently previewed.
func (cc *ColorConfigUI) Selection() (light, dark int) {
	return cc.selectedLight, cc.selectedDark
}

func (cc *ColorConfigUI) currentList() []paletteEntry {
	if cc.editingDark {
		return darkColors
	}
	return lightColors
}

// populateColorList fills the list with the colours for the current mode.
func (cc *ColorConfigUI) populateColorList() {
	cc.populating = true
	defer func() { cc.populating = false }()
	cc.colorList.Clear()

	current := cc.selectedLight
	cc.colorList.SetTitle(" Light Squares (Tab: dark) ")
	if cc.editingDark {
		current = cc.selectedDark
		cc.colorList.SetTitle(" Dark Squares (Tab: light) ")
	}

	list := cc.currentList()
	for i, c := range list {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range list {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	light := tcell.PaletteColor(cc.selectedLight)
	dark := tcell.PaletteColor(cc.selectedDark)
	whitePiece := tcell.PaletteColor(cc.cfg.Theme.Colors.WhitePiece)
	blackPiece := tcell.PaletteColor(cc.cfg.Theme.Colors.BlackPiece)

	startX := x + 2
	startY := y + 1

	if width < previewSize*cellWidth+4 || height < previewSize+4 {
		return x, y, width, height
	}

	for row := 0; row < previewSize; row++ {
		for col := 0; col < previewSize; col++ {
			bg := light
			if (row+col)%2 == 1 {
				bg = dark
			}
			style := tcell.StyleDefault.Background(bg).Foreground(whitePiece)
			r := ' '
			if p, ok := previewPosition[types.Coord{Row: row, Col: col}]; ok {
				r = []rune(notation.Glyph(p, cc.cfg.Theme.Glyphs))[0]
				if p.Owner == types.Black {
					style = style.Foreground(blackPiece)
				}
			}
			drawPieceCell(screen, style, r, col, row, startX, startY)
		}
	}

	info := fmt.Sprintf("Light: %d  Dark: %d", cc.selectedLight, cc.selectedDark)
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+previewSize+1, ch, nil, tcell.StyleDefault)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the colour list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between light and dark square editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingDark = !cc.editingDark
	cc.populateColorList()
}
