package engine

import (
	"time"

	"github.com/rs/zerolog/log"

	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/searcher"
	"gomoku/searcher/agent"
)

// Engine owns the authoritative board and serializes every mutation of it.
// It is driven from a single goroutine; only RequestMove searches elsewhere,
// and it does so on a copy.
type Engine struct {
	board     *game.Board
	turn      game.Cell
	result    Result
	history   []game.Move
	agents    map[game.Cell]agent.Agent
	token     *searcher.Token
	maxTurns  int
	generator *searcher.MoveGenerator
}

var _ Runner = (*Engine)(nil)

type Option func(e *Engine)

// WithAgents seats the two agents used by Run.
func WithAgents(black, white agent.Agent) Option {
	return func(e *Engine) {
		if black.Side() != game.Black || white.Side() != game.White {
			panic("agents must play black and white respectively")
		}
		e.agents = map[game.Cell]agent.Agent{game.Black: black, game.White: white}
	}
}

// WithToken lets Run be cancelled. The running search is cut short and no
// further turns are played.
func WithToken(token *searcher.Token) Option {
	return func(e *Engine) {
		e.token = token
	}
}

func WithMaxTurns(maxTurns int) Option {
	return func(e *Engine) {
		if maxTurns > 0 {
			e.maxTurns = maxTurns
		}
	}
}

func New(size int, options ...Option) *Engine {
	e := &Engine{ // Default values
		board:     game.NewBoard(size),
		turn:      game.Black,
		maxTurns:  size * size,
		generator: searcher.NewMoveGenerator(searcher.DefaultRadius),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Place plays cell at (row, col). It returns false, leaving the game as it
// was, when the game is over, it is not cell's turn or the cell is taken.
func (e *Engine) Place(row, col int, cell game.Cell) bool {
	if e.result.Status != Playing || cell != e.turn {
		return false
	}
	move := game.NewMove(row, col, cell)
	if !move.Execute(e.board) {
		return false
	}
	e.history = append(e.history, move)

	switch {
	case game.HasFiveThrough(e.board, row, col, cell):
		e.result = Result{Status: Won, Winner: cell}
	case e.board.IsFull():
		e.result = Result{Status: Draw}
	default:
		e.turn = cell.Opponent()
	}
	return true
}

func (e *Engine) IsLegal(row, col int) bool {
	return e.result.Status == Playing && e.board.IsLegal(row, col)
}

func (e *Engine) IsFull() bool {
	return e.board.IsFull()
}

func (e *Engine) Turn() game.Cell {
	return e.turn
}

func (e *Engine) Result() Result {
	return e.result
}

func (e *Engine) Scores() Scores {
	return Scores{
		Black: game.PlayerScore(e.board, game.Black),
		White: game.PlayerScore(e.board, game.White),
	}
}

// History returns the moves played so far, oldest first.
func (e *Engine) History() []game.Move {
	return append([]game.Move(nil), e.history...)
}

func (e *Engine) LastMove() (game.Move, bool) {
	if len(e.history) == 0 {
		return game.Move{}, false
	}
	return e.history[len(e.history)-1], true
}

// Board returns a copy of the authoritative board.
func (e *Engine) Board() *game.Board {
	return e.board.Copy()
}

// RequestMove asks a for a move on the current position. The board is copied
// before RequestMove returns, so the caller may keep mutating the engine. The
// channel delivers exactly one Reply and is then closed. Cancel token to cut
// the search short.
func (e *Engine) RequestMove(a agent.Agent, token *searcher.Token) <-chan Reply {
	snapshot := e.board.Copy()
	replies := make(chan Reply, 1)
	go func() {
		defer close(replies)
		result, metric := a.FindMove(snapshot, token)
		replies <- Reply{Move: result.Move, Found: result.Found, Metric: metric}
	}()
	return replies
}

// Reset clears the board and history. Black moves first again.
func (e *Engine) Reset() {
	e.board.Clear()
	e.history = e.history[:0]
	e.result = Result{}
	e.turn = game.Black
}

// Run executes the entire game loop until a winner is found, the board is
// full, the turn limit is reached or the token is cancelled.
func (e *Engine) Run() (game.Cell, metrics.GameMetric, []metrics.MoveMetric) {
	if len(e.agents) != 2 {
		panic("need two agents to run a game")
	}

	gameMetric := metrics.GameMetric{
		StartingPlayer: e.turn,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", e.turn)

	// Loop until there's a result
	for turnCount := 1; e.result.Status == Playing && turnCount <= e.maxTurns; turnCount++ {
		if e.token.Cancelled() {
			log.Info().Msgf("cancelled after %d turns", turnCount-1)
			break
		}
		current := e.turn
		reply := <-e.RequestMove(e.agents[current], e.token)

		move := reply.Move
		if !reply.Found || move.Cell != current || !e.board.IsLegal(move.Row, move.Col) {
			log.Warn().Stringer("player", current).Stringer("move", move).Bool("found", reply.Found).Msg("agent returned an invalid move")
			fallback := e.generator.Generate(e.board, current)
			if len(fallback) == 0 {
				break
			}
			move = fallback[0]
		}

		e.Place(move.Row, move.Col, current)
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turnCount,
			Player:       current,
			Move:         move,
			SearchMetric: reply.Metric,
		})
		log.Debug().Int("step", turnCount).Stringer("move", move).Msg("move played")
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Winner = e.result.Winner
	gameMetric.TotalMoves = len(e.history)

	if e.result.Status == Playing && !e.token.Cancelled() {
		log.Info().Msgf("stopped after %d turns without a result", e.maxTurns)
	} else {
		log.Info().Msgf("game over after %d moves: %s (winner %s)", len(e.history), e.result.Status, e.result.Winner)
	}
	return e.result.Winner, gameMetric, moveMetrics
}
