// meta/meta.go
package meta

import "time"

// SEARCH_DEPTH defines the default minimax depth in plies.
const SEARCH_DEPTH = 4

// SEARCH_GOROUTINES defines the default number of goroutines scoring root moves.
const SEARCH_GOROUTINES = 1

// AI_DELAY defines how long the server waits before delivering the AI's move.
const AI_DELAY = 500 * time.Millisecond

// PORT defines the default websocket port, the one the browser client dials.
const PORT = "9001"

// MAX_TURNS bounds self-play games. Every legal move grows a region, so a game on
// an r×c board ends within r*c turns.
const MAX_TURNS = 300

// BOARD_SIZE defines the side of the boards used by experiments.
const BOARD_SIZE = 8
