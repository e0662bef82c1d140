package types

// Kind is the type of a chess piece.
type Kind int

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	King
	Queen
)

// Kinds lists every piece kind.
var Kinds = []Kind{Pawn, Knight, Bishop, Rook, King, Queen}

// String returns the name of the kind.
func (k Kind) String() string {
	names := []string{"Pawn", "Knight", "Bishop", "Rook", "King", "Queen"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Piece is a piece owned by a player. HasMoved is only meaningful for
// pawns and is always false for the other kinds. Pieces compare equal
// when kind, owner and flag match.
type Piece struct {
	Kind     Kind
	Owner    Player
	HasMoved bool
}

// NewPawn and the constructors below return an unmoved piece of that kind
// owned by owner.
func NewPawn(owner Player) Piece   { return Piece{Kind: Pawn, Owner: owner} }
func NewKnight(owner Player) Piece { return Piece{Kind: Knight, Owner: owner} }
func NewBishop(owner Player) Piece { return Piece{Kind: Bishop, Owner: owner} }
func NewRook(owner Player) Piece   { return Piece{Kind: Rook, Owner: owner} }
func NewKing(owner Player) Piece   { return Piece{Kind: King, Owner: owner} }
func NewQueen(owner Player) Piece  { return Piece{Kind: Queen, Owner: owner} }

// String returns e.g. "White Knight".
func (p Piece) String() string {
	return p.Owner.String() + " " + p.Kind.String()
}
