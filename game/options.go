package game

// DefaultMaxPliesWithoutCapture is the inactivity ceiling after which a game
// is drawn.
const DefaultMaxPliesWithoutCapture = 39

type Option func(g *Game)

// WithMaxPliesWithoutCapture overrides the draw ceiling. Non-positive values
// are ignored.
func WithMaxPliesWithoutCapture(plies int) Option {
	return func(g *Game) {
		if plies > 0 {
			g.maxPlies = plies
		}
	}
}
