package state

import (
	"time"

	"datav/internal/feed"
)

type Page int

const (
	PageMenu Page = iota
	PageDashboard
	PageBoards      // scroll and ranking boards
	PageCharts      // ring, column, capsule and line charts
	PageGauges      // flop, ponds
	PageFlyLine     // fly-line map
	PageDecorations // borders, ornaments, loading
	PageEvents      // event log
)

// Pages lists the menu entries in order.
var Pages = []Page{PageEvents, PageDashboard, PageBoards, PageCharts, PageGauges, PageFlyLine, PageDecorations}

func (p Page) Title() string {
	switch p {
	case PageDashboard:
		return "Full Dashboard"
	case PageBoards:
		return "Scroll & Ranking Boards"
	case PageCharts:
		return "Rings, Columns & Capsules"
	case PageGauges:
		return "Flops & Ponds"
	case PageFlyLine:
		return "Fly-Line Map"
	case PageDecorations:
		return "Borders & Decorations"
	case PageEvents:
		return "Event Log"
	default:
		return "Menu"
	}
}

const maxEvents = 100

// AppState holds the latest sample and what the user has seen happen.
type AppState struct {
	Snapshot    feed.Snapshot
	LastUpdate  time.Time
	Err         error
	Events      []string
	CurrentPage Page
	Paused      bool
}

// Log appends a timestamped line to the event log, keeping the newest ones.
func (s *AppState) Log(now time.Time, line string) {
	s.Events = append(s.Events, "["+now.Format("15:04:05")+"] "+line)
	if len(s.Events) > maxEvents {
		s.Events = s.Events[len(s.Events)-maxEvents:]
	}
}
