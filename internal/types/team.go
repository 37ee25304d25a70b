package types

import (
	"encoding/json"
	"fmt"
)

// Team is one of the 18 AFL clubs. The Squiggle API identifies teams by
// numeric id, so that is what gets stored and decoded; display names are
// only used on the way out.
type Team uint8

const (
	TeamAdelaide Team = iota + 1
	TeamBrisbane
	TeamCarlton
	TeamCollingwood
	TeamEssendon
	TeamFremantle
	TeamGeelong
	TeamGoldCoast
	TeamGreaterWesternSydney
	TeamHawthorn
	TeamMelbourne
	TeamNorthMelbourne
	TeamPortAdelaide
	TeamRichmond
	TeamStKilda
	TeamSydney
	TeamWestCoast
	TeamWesternBulldogs
)

var teamNames = map[Team]string{
	TeamAdelaide:             "Adelaide",
	TeamBrisbane:             "Brisbane",
	TeamCarlton:              "Carlton",
	TeamCollingwood:          "Collingwood",
	TeamEssendon:             "Essendon",
	TeamFremantle:            "Fremantle",
	TeamGeelong:              "Geelong",
	TeamGoldCoast:            "Gold Coast",
	TeamGreaterWesternSydney: "GWS",
	TeamHawthorn:             "Hawthorn",
	TeamMelbourne:            "Melbourne",
	TeamNorthMelbourne:       "North Melbourne",
	TeamPortAdelaide:         "Port Adelaide",
	TeamRichmond:             "Richmond",
	TeamStKilda:              "St Kilda",
	TeamSydney:               "Sydney",
	TeamWestCoast:            "West Coast",
	TeamWesternBulldogs:      "Western Bulldogs",
}

func (t Team) Valid() bool {
	return t >= TeamAdelaide && t <= TeamWesternBulldogs
}

func (t Team) String() string {
	if name, ok := teamNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Team(%d)", uint8(t))
}

// MarshalJSON emits the display name, which is what the frontend renders.
func (t Team) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts the numeric Squiggle team id.
func (t *Team) UnmarshalJSON(data []byte) error {
	var id uint8
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("team id: %w", err)
	}
	team := Team(id)
	if !team.Valid() {
		return fmt.Errorf("unknown team id %d", id)
	}
	*t = team
	return nil
}
