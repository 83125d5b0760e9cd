// meta/meta.go
package meta

// GAMES is the default number of self-play games per run.
const GAMES = 100

// WORKERS is the default number of goroutines playing games in parallel.
const WORKERS = 8

// MAX_PLIES caps a single game.
const MAX_PLIES = 1000

// OUT_DIR is where experiment records are stored.
const OUT_DIR = "experiments"
