package closing

import (
	"math"
	"time"

	"github.com/xela07ax/gcfin-panel/internal/domain"
)

// WindowState is the resolved closing-window view for one requested period.
type WindowState struct {
	Status *domain.ClosingStatus
	Open   bool

	// DaysLeft is nil when no window applies to the period at all, and 0 when
	// a matching window exists but has already ended.
	DaysLeft *int
}

// ResolveWindow computes whether the closing window is open for the requested
// period: the bot must report an active window for that very period, and
// today must not be past the end date (inclusive through 23:59:59).
func ResolveWindow(st *domain.ClosingStatus, comp string, now time.Time) WindowState {
	ws := WindowState{Status: st}
	if st == nil || !st.Active || st.Competencia != comp || st.EndDate == "" {
		return ws
	}

	end, err := time.ParseInLocation("2006-01-02", st.EndDate, now.Location())
	if err != nil {
		return ws
	}
	end = end.Add(24*time.Hour - time.Second)

	if now.After(end) {
		zero := 0
		ws.DaysLeft = &zero
		return ws
	}

	ws.Open = true
	days := int(math.Ceil(end.Sub(now).Hours() / 24))
	if days < 0 {
		days = 0
	}
	ws.DaysLeft = &days
	return ws
}
