package rain

// TickStats counts what happened during one tick.
type TickStats struct {
	Frame          int64 `json:"frame"`
	Expired        int   `json:"expired"`
	ContentExpired int   `json:"content_expired"`
	EraserExpired  int   `json:"eraser_expired"`
	Spawned        int   `json:"spawned"`
	Active         int   `json:"active"`
	Content        int   `json:"content"`
	Erasers        int   `json:"erasers"`
	Writes         int   `json:"writes"`
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(stats TickStats, g *Grid)

// OnTick calls f.
func (f ObserverFunc) OnTick(stats TickStats, g *Grid) { f(stats, g) }
