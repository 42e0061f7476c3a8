package metrics

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // store assumes sqlite
)

// Store keeps experiment records in a SQLite database. Every record is
// tagged with the run it belongs to, so one database holds many runs.
type Store struct {
	db  *sqlx.DB
	run string
}

// AgentResult counts the games an agent finished with one result from one
// seat against one opponent.
type AgentResult struct {
	Agent    int    `db:"agent"`
	Opponent int    `db:"opponent"`
	Seat     string `db:"seat"`
	Result   string `db:"result"`
	Games    int    `db:"games"`
}

type agentRow struct {
	Run    string `db:"run"`
	ID     int    `db:"id"`
	Config string `db:"config"`
}

type gameRow struct {
	Run            string    `db:"run"`
	ID             int       `db:"id"`
	Agent1         int       `db:"agent1"`
	Agent2         int       `db:"agent2"`
	StartingPlayer string    `db:"starting_player"`
	Winner         string    `db:"winner"`
	StartTime      time.Time `db:"start_time"`
	EndTime        time.Time `db:"end_time"`
	Duration       int64     `db:"duration_ns"`
	TotalMoves     int       `db:"total_moves"`
}

type moveRow struct {
	Run       string `db:"run"`
	Game      int    `db:"game"`
	Step      int    `db:"step"`
	Player    string `db:"player"`
	Action    string `db:"action"`
	Depth     int    `db:"depth"`
	Duration  int64  `db:"duration_ns"`
	Visited   int64  `db:"visited"`
	Generated int64  `db:"generated"`
	Evaluated int64  `db:"evaluated"`
	Terminal  int64  `db:"terminal"`
	Cutoffs   int64  `db:"cutoffs"`
}

type pruningRow struct {
	Run       string  `db:"run"`
	Depth     int     `db:"depth"`
	Position  int     `db:"position"`
	Kind      string  `db:"kind"`
	Action    string  `db:"action"`
	Value     float64 `db:"value"`
	Visited   int64   `db:"visited"`
	Generated int64   `db:"generated"`
	Evaluated int64   `db:"evaluated"`
	Cutoffs   int64   `db:"cutoffs"`
	Duration  int64   `db:"duration_ns"`
}

func OpenStore(path, run string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	for _, schema := range []string{createAgentTable, createGameTable, createMoveTable, createPruningTable, createResultView} {
		if _, err := db.Exec(schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &Store{db: db, run: run}, nil
}

func (s *Store) Run() string {
	return s.run
}

func (s *Store) InsertAgentConfigs(configs []AgentConfig) error {
	rows := make([]interface{}, 0, len(configs))
	for _, c := range configs {
		rows = append(rows, agentRow{Run: s.run, ID: c.ID, Config: c.Config})
	}
	return s.insert(insertAgent, rows)
}

func (s *Store) InsertGameRecords(records []GameRecord) error {
	rows := make([]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, gameRow{
			Run:            s.run,
			ID:             r.ID,
			Agent1:         r.Agent1,
			Agent2:         r.Agent2,
			StartingPlayer: r.StartingPlayer.String(),
			Winner:         r.Winner.String(),
			StartTime:      r.StartTime,
			EndTime:        r.EndTime,
			Duration:       int64(r.Duration),
			TotalMoves:     r.TotalMoves,
		})
	}
	return s.insert(insertGame, rows)
}

func (s *Store) InsertMoveRecords(records []MoveRecord) error {
	rows := make([]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, moveRow{
			Run:       s.run,
			Game:      r.Game,
			Step:      r.Step,
			Player:    r.Player.String(),
			Action:    r.Action,
			Depth:     r.Depth,
			Duration:  int64(r.Duration),
			Visited:   r.Visited,
			Generated: r.Generated,
			Evaluated: r.Evaluated,
			Terminal:  r.Terminal,
			Cutoffs:   r.Cutoffs,
		})
	}
	return s.insert(insertMove, rows)
}

func (s *Store) InsertPruningRecords(records []PruningRecord) error {
	rows := make([]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, pruningRow{
			Run:       s.run,
			Depth:     r.Depth,
			Position:  r.Position,
			Kind:      r.Kind,
			Action:    r.Action,
			Value:     r.Value,
			Visited:   r.Visited,
			Generated: r.Generated,
			Evaluated: r.Evaluated,
			Cutoffs:   r.Cutoffs,
			Duration:  int64(r.Duration),
		})
	}
	return s.insert(insertPruning, rows)
}

// Results summarizes the games of this run per agent, opponent, seat and
// result.
func (s *Store) Results() ([]AgentResult, error) {
	var results []AgentResult
	err := s.db.Select(&results, `
SELECT agent, opponent, seat, result, COUNT(*) AS games
  FROM agent_results
 WHERE run = ?
 GROUP BY agent, opponent, seat, result
 ORDER BY agent, opponent, seat, result`, s.run)
	if err != nil {
		return nil, fmt.Errorf("select results: %w", err)
	}
	return results, nil
}

func (s *Store) insert(query string, rows []interface{}) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareNamed(query)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()
	for _, row := range rows {
		if _, err := stmt.Exec(row); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
	}
	return tx.Commit()
}

func (s *Store) Close() error {
	return s.db.Close()
}
