package types

// Player identifies one side of the game.
type Player int

const (
	White Player = iota
	Black
)

// String returns the player's name.
func (p Player) String() string {
	if p == Black {
		return "Black"
	}
	return "White"
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p == White {
		return Black
	}
	return White
}
