package metrics

import (
	"time"

	"connect4/game"
	"connect4/searcher"
)

type MoveMetric struct {
	Step   int
	Player game.Player
	Action string
	searcher.Metrics
}

type GameMetric struct {
	StartingPlayer game.Player
	Winner         game.Player // NoPlayer for a draw or an unfinished game
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector records one game as it is played.
type Collector interface {
	Start(starting game.Player)
	AddMove(player game.Player, action game.Action, metrics searcher.Metrics)
	Complete(winner game.Player) (GameMetric, []MoveMetric)
}

type collector struct {
	starting  game.Player
	startTime time.Time
	moves     []MoveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(starting game.Player) {
	c.starting = starting
	c.startTime = time.Now()
	c.moves = nil
}

func (c *collector) AddMove(player game.Player, action game.Action, metrics searcher.Metrics) {
	c.moves = append(c.moves, MoveMetric{
		Step:    len(c.moves) + 1,
		Player:  player,
		Action:  action.String(),
		Metrics: metrics,
	})
}

func (c *collector) Complete(winner game.Player) (GameMetric, []MoveMetric) {
	end := time.Now()
	return GameMetric{
		StartingPlayer: c.starting,
		Winner:         winner,
		StartTime:      c.startTime,
		EndTime:        end,
		Duration:       end.Sub(c.startTime),
		TotalMoves:     len(c.moves),
	}, c.moves
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start(game.Player)                                  {}
func (c *dummyCollector) AddMove(game.Player, game.Action, searcher.Metrics) {}
func (c *dummyCollector) Complete(game.Player) (GameMetric, []MoveMetric) {
	return GameMetric{}, nil
}
