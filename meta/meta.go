// meta/meta.go
package meta

// GO_ROUTINES defines the number of games experiments play concurrently.
const GO_ROUTINES = 8

// GAMES defines the number of games played per matchup.
const GAMES = 10

// MAX_TURNS bounds a game. A Connect Four board is full after 42 moves.
const MAX_TURNS = 42

// PORT defines the port the agent server listens on.
const PORT = "8080"

// AGENT defines the agent config used when none is given.
const AGENT = "alphabeta:depth=4,eval=windows"

// PRUNING_DEPTH defines the deepest search of the pruning experiment.
const PRUNING_DEPTH = 6

// PRUNING_POSITIONS defines the number of random openings searched per depth.
const PRUNING_POSITIONS = 20
