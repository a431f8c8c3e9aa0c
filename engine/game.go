package engine

import (
	"blokus/experiments/metrics"
	"blokus/game"
	"blokus/meta"
	"blokus/searcher"
	"blokus/searcher/agent"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	ErrIllegalPlacement = errors.New("illegal placement")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrPieceUnavailable = errors.New("piece unavailable")
	ErrGameOver         = errors.New("game over")
	ErrExternalPlayer   = errors.New("color is driven by Submit")
)

var _ Engine = (*Game)(nil)

// Game owns one board and runs the turn loop. Colors with a nil agent are
// driven through Submit and Pass.
type Game struct {
	board       *game.Board
	pieces      []*game.Piece
	inventories [meta.NUM_PLAYERS]*game.Inventory
	agents      [meta.NUM_PLAYERS]agent.Agent
	generator   *game.MoveGenerator

	current  game.Color
	turn     int
	failures int
	commits  int
	moves    []game.Placement
	movesOK  bool

	startTime   time.Time
	moveMetrics []metrics.MoveMetric
}

func New(generator *game.MoveGenerator, agents [meta.NUM_PLAYERS]agent.Agent) *Game {
	g := &Game{
		board:     game.NewStandardBoard(),
		pieces:    game.StandardPieces(),
		generator: generator,
	}
	g.Reset(agents)
	return g
}

// Reset starts a new game with the given agents on the same board.
func (g *Game) Reset(agents [meta.NUM_PLAYERS]agent.Agent) {
	g.board.Reset()
	for _, c := range game.Colors() {
		g.inventories[c] = game.NewInventory(g.pieces)
	}
	g.agents = agents
	g.current = game.Blue
	g.turn = 0
	g.failures = 0
	g.commits = 0
	g.moves, g.movesOK = nil, false
	g.startTime = time.Now()
	g.moveMetrics = nil
}

func (g *Game) Board() *game.Board {
	return g.board
}

// Grid returns a copy of the occupancy grid.
func (g *Game) Grid() [][]game.Color {
	return g.board.Grid()
}

func (g *Game) Turn() int {
	return g.turn
}

func (g *Game) Current() game.Color {
	return g.current
}

func (g *Game) Commits() int {
	return g.commits
}

// Failures is the number of consecutive turns without a commit.
func (g *Game) Failures() int {
	return g.failures
}

// Over reports whether a full round passed without a commit.
func (g *Game) Over() bool {
	return g.failures >= meta.NUM_PLAYERS || g.turn >= meta.MAX_TURNS
}

// Inventory returns the pieces the color has not placed.
func (g *Game) Inventory(color game.Color) []*game.Piece {
	return g.inventories[color].Remaining()
}

// LegalMoves returns the legal placements of the color to move. The list is
// enumerated once per turn.
func (g *Game) LegalMoves() []game.Placement {
	if g.Over() {
		return nil
	}
	if !g.movesOK {
		g.moves = g.generator.Enumerate(g.inventories[g.current], g.current, g.board, g.turn)
		g.movesOK = true
	}
	moves := make([]game.Placement, len(g.moves))
	copy(moves, g.moves)
	return moves
}

// Scores returns the final tallies, valid at any point of the game.
func (g *Game) Scores() [meta.NUM_PLAYERS]int {
	return game.Scores(g.board, g.inventories)
}

// Winner returns the color with the highest score, the earliest on ties.
func (g *Game) Winner() game.Color {
	scores := g.Scores()
	winner := game.Blue
	for _, c := range game.Colors() {
		if scores[c] > scores[winner] {
			winner = c
		}
	}
	return winner
}

// Step plays one turn. A color with no piece or no legal placement fails its
// turn; otherwise its agent picks a placement.
func (g *Game) Step(ctx context.Context) error {
	if g.Over() {
		return ErrGameOver
	}
	moves := g.LegalMoves()
	if g.inventories[g.current].IsEmpty() || len(moves) == 0 {
		log.Debug().Msgf("turn %d: %s cannot move", g.turn, g.current)
		g.fail()
		return nil
	}
	a := g.agents[g.current]
	if a == nil {
		return fmt.Errorf("turn %d %s: %w", g.turn, g.current, ErrExternalPlayer)
	}

	pos := searcher.Position{Board: g.board, Inventory: g.inventories[g.current], Turn: g.turn}
	move, metric, err := a.FindMove(ctx, pos, moves)
	if err != nil {
		return fmt.Errorf("turn %d %s: %w", g.turn, g.current, err)
	}
	if move.Color != g.current || !g.board.IsLegalPlacement(move) {
		panic(fmt.Sprintf("agent for %s returned illegal placement %s", g.current, move))
	}
	g.moveMetrics = append(g.moveMetrics, metrics.MoveMetric{
		Turn:         g.turn,
		Color:        g.current.String(),
		SearchMetric: metric,
	})
	g.commit(move)
	return nil
}

// Run steps until the game is over.
func (g *Game) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	log.Debug().Msgf("game started, %s to move", g.current)
	for !g.Over() {
		if err := ctx.Err(); err != nil {
			return metrics.GameMetric{}, g.moveMetrics, err
		}
		if err := g.Step(ctx); err != nil {
			return metrics.GameMetric{}, g.moveMetrics, err
		}
	}
	gameMetric := g.Metric()
	log.Debug().Msgf("game over after %d turns: winner %s, scores %v", g.turn, gameMetric.Winner, gameMetric.Scores)
	return gameMetric, g.moveMetrics, nil
}

func (g *Game) Metric() metrics.GameMetric {
	end := time.Now()
	return metrics.GameMetric{
		StartTime: g.startTime,
		EndTime:   end,
		Duration:  end.Sub(g.startTime),
		Turns:     g.turn,
		Commits:   g.commits,
		Winner:    g.Winner().String(),
		Scores:    g.Scores(),
	}
}

// Submit validates and commits a placement for the color to move. A rejected
// placement leaves the game unchanged.
func (g *Game) Submit(p game.Placement) error {
	if g.Over() {
		return ErrGameOver
	}
	if p.Color != g.current {
		return fmt.Errorf("%s submitted on %s's turn: %w", p.Color, g.current, ErrNotYourTurn)
	}
	if !g.inventories[p.Color].Holds(p.Piece) {
		return fmt.Errorf("%s: %w", p.Color, ErrPieceUnavailable)
	}
	if !g.board.IsLegalPlacement(p) {
		return fmt.Errorf("%s: %w", p, ErrIllegalPlacement)
	}
	g.commit(p)
	return nil
}

// Pass records a failed turn for the color to move. An external player may
// forfeit a turn this way even with legal placements left.
func (g *Game) Pass() error {
	if g.Over() {
		return ErrGameOver
	}
	g.fail()
	return nil
}

func (g *Game) commit(p game.Placement) {
	g.board.Commit(p)
	if err := g.board.CheckInvariants(); err != nil {
		panic(fmt.Sprintf("after %s: %v", p, err))
	}
	if err := g.inventories[p.Color].Consume(p.Piece.ID); err != nil {
		panic(fmt.Sprintf("after %s: %v", p, err))
	}
	log.Debug().Msgf("turn %d: %s", g.turn, p)
	g.commits++
	g.failures = 0
	g.advance()
}

func (g *Game) fail() {
	g.failures++
	g.advance()
}

func (g *Game) advance() {
	g.turn++
	g.current = g.current.Next()
	g.moves, g.movesOK = nil, false
}
