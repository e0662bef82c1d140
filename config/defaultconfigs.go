package config

import "termchess/notation"

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		Glyphs:                   notation.GlyphUnicode,
		DrawLastPlayedBackground: true,
		Colors: ConfigColors{
			LightSquare:    180,
			DarkSquare:     94,
			WhitePiece:     255,
			BlackPiece:     232,
			CursorBG:       4,
			SelectedBG:     2,
			HighlightBG:    208,
			LastPlayedBG:   143,
			CoordinateText: 245,
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameSettings{
			AutoFlip:          false,
			ShowHints:         true,
			StopAtKingCapture: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
