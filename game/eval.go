package game

import (
	"sort"
)

const (
	// WinValue is the magnitude EvaluateWindows gives a decided game.
	WinValue = 1e6

	threeWeight  = 50
	twoWeight    = 10
	centerWeight = 3
	tempoWeight  = 1
)

// Evaluators maps the names accepted in agent configs to evaluation
// functions. NeuralEvaluator values are registered by their callers.
var Evaluators = map[string]Evaluate{
	"score":   EvaluateScore,
	"windows": EvaluateWindows,
}

// EvaluatorNames returns the registered evaluator names in sorted order.
func EvaluatorNames() []string {
	names := make([]string, 0, len(Evaluators))
	for name := range Evaluators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EvaluateScore is the reference evaluation: the current game score.
func EvaluateScore(s State, p Perspective) float64 {
	return s.Score(p.Agent)
}

// EvaluateWindows scores every line of four cells on the board: open lines
// holding two or three of a player's pieces count for that player, and
// pieces in the centre column get a bonus. Decided games score ±WinValue,
// reduced by the number of pieces played so quicker wins are preferred.
func EvaluateWindows(s State, p Perspective) float64 {
	b, ok := s.(*Board)
	if !ok {
		panic("unexpected state type")
	}
	agent := p.Agent
	opponent := agent.Opponent()

	switch {
	case b.IsWin(agent):
		return WinValue - float64(b.moves)
	case b.IsLose(agent):
		return -WinValue + float64(b.moves)
	case b.IsFull():
		return 0
	}

	score := 0.0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			for _, d := range directions {
				endRow, endCol := row+d[0]*(Connect-1), col+d[1]*(Connect-1)
				if !inside(endRow, endCol) {
					continue
				}
				mine, theirs := 0, 0
				for i := 0; i < Connect; i++ {
					switch b.cells[row+d[0]*i][col+d[1]*i] {
					case agent:
						mine++
					case opponent:
						theirs++
					}
				}
				score += windowScore(mine, theirs) - windowScore(theirs, mine)
			}
		}
	}

	center := Columns / 2
	for row := 0; row < b.heights[center]; row++ {
		if b.cells[row][center] == agent {
			score += centerWeight
		} else {
			score -= centerWeight
		}
	}

	if p.ToMove == agent {
		score += tempoWeight
	} else {
		score -= tempoWeight
	}
	return score
}

// windowScore values a line of four for the side holding mine pieces in it.
// Lines the other side has entered are dead.
func windowScore(mine, theirs int) float64 {
	if theirs > 0 {
		return 0
	}
	switch mine {
	case 3:
		return threeWeight
	case 2:
		return twoWeight
	default:
		return 0
	}
}
