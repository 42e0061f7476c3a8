package metrics

const createAgentTable = `
CREATE TABLE IF NOT EXISTS agents (
  run text not null,
  id integer not null,
  config text not null
)`

const createGameTable = `
CREATE TABLE IF NOT EXISTS games (
  run text not null,
  id integer not null,
  agent1 integer,
  agent2 integer,
  starting_player text,
  winner text,
  start_time datetime,
  end_time datetime,
  duration_ns integer,
  total_moves integer
)`

const createMoveTable = `
CREATE TABLE IF NOT EXISTS moves (
  run text not null,
  game integer not null,
  step integer not null,
  player text,
  action text,
  depth integer,
  duration_ns integer,
  visited integer,
  generated integer,
  evaluated integer,
  terminal integer,
  cutoffs integer
)`

const createPruningTable = `
CREATE TABLE IF NOT EXISTS pruning (
  run text not null,
  depth integer,
  position integer,
  kind text,
  action text,
  value real,
  visited integer,
  generated integer,
  evaluated integer,
  cutoffs integer,
  duration_ns integer
)`

const createResultView = `
CREATE VIEW IF NOT EXISTS agent_results (
  run, agent, opponent, seat, result
) AS
SELECT run, agent1, agent2, 'Player1',
       CASE winner WHEN 'Player1' THEN 'win' WHEN 'Player2' THEN 'lose' ELSE 'draw' END
 FROM games
UNION ALL
SELECT run, agent2, agent1, 'Player2',
       CASE winner WHEN 'Player2' THEN 'win' WHEN 'Player1' THEN 'lose' ELSE 'draw' END
 FROM games
`

const insertAgent = `
INSERT INTO agents (run, id, config) VALUES (:run, :id, :config)
`

const insertGame = `
INSERT INTO games (run, id, agent1, agent2, starting_player, winner, start_time, end_time, duration_ns, total_moves)
VALUES (:run, :id, :agent1, :agent2, :starting_player, :winner, :start_time, :end_time, :duration_ns, :total_moves)
`

const insertMove = `
INSERT INTO moves (run, game, step, player, action, depth, duration_ns, visited, generated, evaluated, terminal, cutoffs)
VALUES (:run, :game, :step, :player, :action, :depth, :duration_ns, :visited, :generated, :evaluated, :terminal, :cutoffs)
`

const insertPruning = `
INSERT INTO pruning (run, depth, position, kind, action, value, visited, generated, evaluated, cutoffs, duration_ns)
VALUES (:run, :depth, :position, :kind, :action, :value, :visited, :generated, :evaluated, :cutoffs, :duration_ns)
`
