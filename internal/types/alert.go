package types

// NotificationKind enumerates the alerts a game can produce. Each kind maps
// onto the subscriber interest flags; note that EndOfGame counts as both a
// quarter notification and a full-game notification.
type NotificationKind uint8

const (
	NotificationEndOfFirstQuarter NotificationKind = iota
	NotificationEndOfSecondQuarter
	NotificationEndOfThirdQuarter
	NotificationEndOfGame
	NotificationCloseGame
)

func (n NotificationKind) IsQuarterNotification() bool {
	switch n {
	case NotificationEndOfFirstQuarter,
		NotificationEndOfSecondQuarter,
		NotificationEndOfThirdQuarter,
		NotificationEndOfGame:
		return true
	}
	return false
}

func (n NotificationKind) IsFullGameNotification() bool {
	return n == NotificationEndOfGame
}

func (n NotificationKind) IsCloseGameNotification() bool {
	return n == NotificationCloseGame
}

func (n NotificationKind) String() string {
	switch n {
	case NotificationEndOfFirstQuarter:
		return "EndOfFirstQuarter"
	case NotificationEndOfSecondQuarter:
		return "EndOfSecondQuarter"
	case NotificationEndOfThirdQuarter:
		return "EndOfThirdQuarter"
	case NotificationEndOfGame:
		return "EndOfGame"
	case NotificationCloseGame:
		return "CloseGame"
	}
	return "Unknown"
}

// Alert is the sent-notification ledger. A row means the notification kind
// has already gone out for the game, so it must not be sent again. Rows are
// immutable and never deleted.
type Alert struct {
	GameID       uint32           `gorm:"primaryKey;autoIncrement:false;column:game_id" json:"game_id"`
	Notification NotificationKind `gorm:"primaryKey;autoIncrement:false;column:notification" json:"notification"`
}

func (Alert) TableName() string { return "alerts" }
