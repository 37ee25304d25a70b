package types

// Game is the best-known snapshot of one fixture. Rows are created by the
// round backfill, patched by every stream event for the game and never
// deleted.
type Game struct {
	ID        uint32  `gorm:"primaryKey;column:id" json:"id"`
	Round     uint16  `gorm:"not null;column:round" json:"round"`
	Year      uint16  `gorm:"not null;column:year" json:"year"`
	Complete  uint8   `gorm:"not null;default:0;column:complete" json:"complete"`
	HomeTeam  Team    `gorm:"not null;column:home_team" json:"home_team"`
	AwayTeam  Team    `gorm:"not null;column:away_team" json:"away_team"`
	HomeScore uint16  `gorm:"not null;default:0;column:home_score" json:"home_score"`
	AwayScore uint16  `gorm:"not null;default:0;column:away_score" json:"away_score"`
	Winner    *Team   `gorm:"column:winner" json:"winner"`
	Timestr   TimeStr `gorm:"column:timestr" json:"timestr"`
	Date      string  `gorm:"column:date" json:"date"`
	TZ        string  `gorm:"column:tz" json:"tz"`
}

func (Game) TableName() string { return "games" }
