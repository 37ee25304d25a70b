package types

// TimeStr is the free-form game clock string from Squiggle. The four
// end-of-phase markers are the only values with special meaning; everything
// else ("Q4 4:36", "Half Time", ...) is an in-progress marker. Empty means
// the game hasn't started or the marker is unknown.
type TimeStr string

const (
	TimeStrEndOfFirstQuarter  TimeStr = "1/4 Time"
	TimeStrEndOfSecondQuarter TimeStr = "2/4 Time"
	TimeStrEndOfThirdQuarter  TimeStr = "3/4 Time"
	TimeStrEndOfGame          TimeStr = "Full Time"
)

func (ts TimeStr) String() string {
	return string(ts)
}
