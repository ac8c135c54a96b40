// meta/meta.go
package meta

import "time"

// PREVIEWS defines how many upcoming pieces are shown to the player.
const PREVIEWS = 5

// NODES defines the number of nodes added to the tree per move.
const NODES = 5000

// DURATION defines the time budget per move. Zero leaves only the node budget.
const DURATION = time.Duration(0)

// SEED defines the seed of the first game.
const SEED = 1

// MAX_PIECES defines how many pieces a game lasts at most.
const MAX_PIECES = 500

// MOVEMENT_MODE defines which maneuvers are considered legal.
const MOVEMENT_MODE = "zero-g"

// LOG_LEVEL defines the default zerolog level.
const LOG_LEVEL = "info"
