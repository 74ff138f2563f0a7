package ergast

// Wire shapes for the Ergast response envelope. Every numeric field arrives
// as a string and is converted during flattening.

type standingsResponse struct {
	MRData struct {
		StandingsTable struct {
			Season         string `json:"season"`
			StandingsLists []struct {
				DriverStandings      []rawDriverStanding      `json:"DriverStandings"`
				ConstructorStandings []rawConstructorStanding `json:"ConstructorStandings"`
			} `json:"StandingsLists"`
		} `json:"StandingsTable"`
	} `json:"MRData"`
}

type rawDriver struct {
	DriverID        string `json:"driverId"`
	PermanentNumber string `json:"permanentNumber"`
	Code            string `json:"code"`
	GivenName       string `json:"givenName"`
	FamilyName      string `json:"familyName"`
}

type rawConstructor struct {
	ConstructorID string `json:"constructorId"`
	Name          string `json:"name"`
}

type rawDriverStanding struct {
	Position     string           `json:"position"`
	Points       string           `json:"points"`
	Wins         string           `json:"wins"`
	Driver       rawDriver        `json:"Driver"`
	Constructors []rawConstructor `json:"Constructors"`
}

type rawConstructorStanding struct {
	Position    string         `json:"position"`
	Points      string         `json:"points"`
	Wins        string         `json:"wins"`
	Constructor rawConstructor `json:"Constructor"`
}

type rawResult struct {
	Position    string         `json:"position"`
	Driver      rawDriver      `json:"Driver"`
	Constructor rawConstructor `json:"Constructor"`
}

type raceEntry struct {
	Season            string      `json:"season"`
	Round             string      `json:"round"`
	RaceName          string      `json:"raceName"`
	Results           []rawResult `json:"Results"`
	QualifyingResults []rawResult `json:"QualifyingResults"`
	SprintResults     []rawResult `json:"SprintResults"`
}

type resultsResponse struct {
	MRData struct {
		RaceTable struct {
			Races []raceEntry `json:"Races"`
		} `json:"RaceTable"`
	} `json:"MRData"`
}
