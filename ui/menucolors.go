package ui

import "github.com/gdamore/tcell/v2"

// MenuColors is the palette of the setup and colour screens.
var MenuColors = struct {
	Border     tcell.Color
	CardBG     tcell.Color // Field background
	Title      tcell.Color
	Label      tcell.Color
	Hint       tcell.Color
	ButtonBG   tcell.Color
	ButtonText tcell.Color
}{
	Border:     tcell.PaletteColor(137), // Wood
	CardBG:     tcell.PaletteColor(236),
	Title:      tcell.PaletteColor(230),
	Label:      tcell.PaletteColor(250),
	Hint:       tcell.PaletteColor(245),
	ButtonBG:   tcell.PaletteColor(94),
	ButtonText: tcell.PaletteColor(255),
}
