// meta/meta.go
package meta

import "time"

// BOARD_DIM defines the default board dimension.
const BOARD_DIM = 5

// MAX_DEPTH defines the search depth used when the computer side is ahead.
const MAX_DEPTH = 4

// MIN_DEPTH defines the search depth used when the computer side is behind.
const MIN_DEPTH = 2

// MAX_TIME defines the default search time budget per move.
const MAX_TIME = 5 * time.Second

// MAX_TURNS defines the turn limit after which the defender wins.
const MAX_TURNS = 100

// MAX_HEALTH is the health every unit starts with and can never exceed.
const MAX_HEALTH = 9

// POLL_INTERVAL is the delay between two broker polls.
const POLL_INTERVAL = 100 * time.Millisecond
