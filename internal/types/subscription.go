package types

// Subscription is one browser push registration. The push endpoint is the
// identity; resubscribing from the same browser replaces the old settings.
// Team nil means "alert me about every game". Dead endpoints are kept but
// flipped to Active=false.
type Subscription struct {
	Endpoint      string `gorm:"primaryKey;column:endpoint" json:"endpoint"`
	Team          *Team  `gorm:"column:team" json:"team"`
	CloseGames    bool   `gorm:"not null;default:false;column:close_games" json:"close_games"`
	FinalScores   bool   `gorm:"not null;default:false;column:final_scores" json:"final_scores"`
	QuarterScores bool   `gorm:"not null;default:false;column:quarter_scores" json:"quarter_scores"`
	P256dh        string `gorm:"not null;column:p256dh" json:"-"`
	Auth          string `gorm:"not null;column:auth" json:"-"`
	// No column default: gorm skips zero-valued fields that carry one, which
	// would turn an Active=false write into active=true on insert.
	Active bool `gorm:"not null;column:active" json:"active"`
}

func (Subscription) TableName() string { return "subscriptions" }
