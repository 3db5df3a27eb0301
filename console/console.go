package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"gomoku/engine"
	"gomoku/game"
	"gomoku/searcher"
	"gomoku/searcher/agent"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadCoordinates = errors.New("bad coordinates")
	ErrIllegalMove    = errors.New("illegal move")
)

type Kind int

const (
	Place Kind = iota
	Show
	Scores
	Reset
	Help
	Quit
)

type Command struct {
	Kind     Kind
	Row, Col int
}

// Parse accepts "<row> <col>", "place <row> <col>" and the single-word
// commands. An empty line parses to Show.
func Parse(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{Kind: Show}, nil
	}

	switch fields[0] {
	case "show", "s":
		return Command{Kind: Show}, nil
	case "scores":
		return Command{Kind: Scores}, nil
	case "reset":
		return Command{Kind: Reset}, nil
	case "help", "?":
		return Command{Kind: Help}, nil
	case "quit", "exit", "bye":
		return Command{Kind: Quit}, nil
	case "place", "p":
		fields = fields[1:]
	}

	if len(fields) != 2 {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
	}
	coords := lo.FilterMap(fields, func(field string, _ int) (int, bool) {
		n, err := strconv.Atoi(field)
		return n, err == nil
	})
	if len(coords) != 2 {
		return Command{}, fmt.Errorf("%w: %q", ErrBadCoordinates, line)
	}
	return Command{Kind: Place, Row: coords[0], Col: coords[1]}, nil
}

func Usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "<row> <col> | place <row> <col> - place your stone\n")
	io.WriteString(w, "show - print the board\n")
	io.WriteString(w, "scores - print the pattern score of each side\n")
	io.WriteString(w, "reset - start a new game\n")
	io.WriteString(w, "quit - leave\n")
	io.WriteString(w, "Ctrl-C while the AI thinks makes it move now\n")
}

// Session is a human-vs-AI game on one engine. All methods except Cancel
// must be called from the same goroutine.
type Session struct {
	engine *engine.Engine
	ai     agent.Agent
	human  game.Cell
	out    io.Writer
	token  *searcher.Token
}

func NewSession(e *engine.Engine, ai agent.Agent, out io.Writer) *Session {
	return &Session{
		engine: e,
		ai:     ai,
		human:  ai.Side().Opponent(),
		out:    out,
		token:  searcher.NewToken(),
	}
}

// Cancel cuts the running AI search short. Safe from any goroutine.
func (s *Session) Cancel() {
	s.token.Cancel()
}

// Start lets the AI open when it plays Black.
func (s *Session) Start() {
	s.printBoard()
	s.reply()
}

// Execute runs one command and reports whether the session should end.
func (s *Session) Execute(cmd Command) (bool, error) {
	switch cmd.Kind {
	case Quit:
		return true, nil
	case Help:
		Usage(s.out)
	case Show:
		s.printBoard()
	case Scores:
		scores := s.engine.Scores()
		fmt.Fprintf(s.out, "Black %d - White %d\n", scores.Black, scores.White)
	case Reset:
		s.engine.Reset()
		s.Start()
	case Place:
		if !s.engine.Place(cmd.Row, cmd.Col, s.human) {
			return false, fmt.Errorf("%w: (%d,%d)", ErrIllegalMove, cmd.Row, cmd.Col)
		}
		s.printBoard()
		if !s.announce() {
			s.reply()
		}
	}
	return false, nil
}

// reply plays the AI's move if it is the AI's turn.
func (s *Session) reply() {
	if s.engine.Result().Status != engine.Playing || s.engine.Turn() != s.ai.Side() {
		return
	}
	s.token.Reset()
	fmt.Fprintf(s.out, "%s is thinking...\n", s.ai.Side())
	r := <-s.engine.RequestMove(s.ai, s.token)
	if !r.Found || !s.engine.Place(r.Move.Row, r.Move.Col, s.ai.Side()) {
		fmt.Fprintln(s.out, "AI has no move")
		return
	}
	fmt.Fprintf(s.out, "AI plays %d %d (depth %d)\n", r.Move.Row, r.Move.Col, r.Metric.CompletedDepth)
	s.printBoard()
	s.announce()
}

// announce prints the result once the game is over.
func (s *Session) announce() bool {
	result := s.engine.Result()
	switch result.Status {
	case engine.Won:
		fmt.Fprintf(s.out, "%s wins! Type reset to play again.\n", result.Winner)
	case engine.Draw:
		fmt.Fprintln(s.out, "Draw. Type reset to play again.")
	default:
		return false
	}
	return true
}

func (s *Session) printBoard() {
	fmt.Fprint(s.out, s.engine.Board().String())
}
