// Package teams holds the per-team feed configuration. Each job run is the
// same generic pipeline; everything team-specific (display name, spelling
// variants across upstreams, the fallback roster used before live data
// exists) lives here as data.
package teams

// FallbackDriver is one entry of a team's placeholder roster, used whole
// when the live roster source cannot produce the expected driver count.
type FallbackDriver struct {
	FirstName    string
	LastName     string
	Code         string
	DriverNumber int
}

// Team configures one team feed.
type Team struct {
	// Slug names the output file and the asset files.
	Slug string
	// DisplayName is the header text of the feed.
	DisplayName string
	// ConstructorIDs are the Ergast constructor ids to try in order.
	ConstructorIDs []string
	// TeamNames are the telemetry-API team_name spellings to try in order.
	TeamNames []string
	// FallbackRoster replaces the whole roster when live data is short.
	// A seat without a confirmed driver is an explicit TBD entry.
	FallbackRoster []FallbackDriver
	// LogoURL is the upstream CDN location of the team logo.
	LogoURL string
}

// All lists every configured team feed, 2026 grid.
var All = []Team{
	{
		Slug:           "red-bull",
		DisplayName:    "Red Bull Racing",
		ConstructorIDs: []string{"red_bull", "redbull"},
		TeamNames:      []string{"Red Bull Racing", "Oracle Red Bull Racing"},
		FallbackRoster: []FallbackDriver{
			{FirstName: "Max", LastName: "Verstappen", Code: "VER", DriverNumber: 1},
			{FirstName: "Yuki", LastName: "Tsunoda", Code: "TSU", DriverNumber: 22},
		},
		LogoURL: "https://media.formula1.com/content/dam/fom-website/teams/2025/red-bull-racing-logo.png",
	},
	{
		Slug:           "mclaren",
		DisplayName:    "McLaren",
		ConstructorIDs: []string{"mclaren"},
		TeamNames:      []string{"McLaren"},
		FallbackRoster: []FallbackDriver{
			{FirstName: "Lando", LastName: "Norris", Code: "NOR", DriverNumber: 4},
			{FirstName: "Oscar", LastName: "Piastri", Code: "PIA", DriverNumber: 81},
		},
		LogoURL: "https://media.formula1.com/content/dam/fom-website/teams/2025/mclaren-logo.png",
	},
	{
		Slug:           "ferrari",
		DisplayName:    "Ferrari",
		ConstructorIDs: []string{"ferrari"},
		TeamNames:      []string{"Ferrari", "Scuderia Ferrari"},
		FallbackRoster: []FallbackDriver{
			{FirstName: "Charles", LastName: "Leclerc", Code: "LEC", DriverNumber: 16},
			{FirstName: "Lewis", LastName: "Hamilton", Code: "HAM", DriverNumber: 44},
		},
		LogoURL: "https://media.formula1.com/content/dam/fom-website/teams/2025/ferrari-logo.png",
	},
	{
		Slug:           "mercedes",
		DisplayName:    "Mercedes",
		ConstructorIDs: []string{"mercedes"},
		TeamNames:      []string{"Mercedes"},
		FallbackRoster: []FallbackDriver{
			{FirstName: "George", LastName: "Russell", Code: "RUS", DriverNumber: 63},
			{FirstName: "Kimi", LastName: "Antonelli", Code: "ANT", DriverNumber: 12},
		},
		LogoURL: "https://media.formula1.com/content/dam/fom-website/teams/2025/mercedes-logo.png",
	},
	{
		Slug:           "aston-martin",
		DisplayName:    "Aston Martin",
		ConstructorIDs: []string{"aston_martin"},
		TeamNames:      []string{"Aston Martin", "Aston Martin Aramco"},
		FallbackRoster: []FallbackDriver{
			{FirstName: "Fernando", LastName: "Alonso", Code: "ALO", DriverNumber: 14},
			{FirstName: "Lance", LastName: "Stroll", Code: "STR", DriverNumber: 18},
		},
		LogoURL: "https://media.formula1.com/content/dam/fom-website/teams/2025/aston-martin-logo.png",
	},
	{
		Slug:           "williams",
		DisplayName:    "Williams",
		ConstructorIDs: []string{"williams"},
		TeamNames:      []string{"Williams"},
		FallbackRoster: []FallbackDriver{
			{FirstName: "Alexander", LastName: "Albon", Code: "ALB", DriverNumber: 23},
			{FirstName: "Carlos", LastName: "Sainz", Code: "SAI", DriverNumber: 55},
		},
		LogoURL: "https://media.formula1.com/content/dam/fom-website/teams/2025/williams-logo.png",
	},
	{
		Slug:           "racing-bulls",
		DisplayName:    "Racing Bulls",
		ConstructorIDs: []string{"rb", "alphatauri"},
		TeamNames:      []string{"Racing Bulls", "RB", "Visa Cash App RB"},
		FallbackRoster: []FallbackDriver{
			{FirstName: "Isack", LastName: "Hadjar", Code: "HAD", DriverNumber: 6},
			{FirstName: "Liam", LastName: "Lawson", Code: "LAW", DriverNumber: 30},
		},
		LogoURL: "https://media.formula1.com/content/dam/fom-website/teams/2025/racing-bulls-logo.png",
	},
	{
		Slug:           "alpine",
		DisplayName:    "Alpine",
		ConstructorIDs: []string{"alpine"},
		TeamNames:      []string{"Alpine"},
		FallbackRoster: []FallbackDriver{
			{FirstName: "Pierre", LastName: "Gasly", Code: "GAS", DriverNumber: 10},
			{FirstName: "Franco", LastName: "Colapinto", Code: "COL", DriverNumber: 43},
		},
		LogoURL: "https://media.formula1.com/content/dam/fom-website/teams/2025/alpine-logo.png",
	},
	{
		Slug:           "haas",
		DisplayName:    "Haas",
		ConstructorIDs: []string{"haas"},
		TeamNames:      []string{"Haas F1 Team", "Haas"},
		FallbackRoster: []FallbackDriver{
			{FirstName: "Esteban", LastName: "Ocon", Code: "OCO", DriverNumber: 31},
			{FirstName: "Oliver", LastName: "Bearman", Code: "BEA", DriverNumber: 87},
		},
		LogoURL: "https://media.formula1.com/content/dam/fom-website/teams/2025/haas-logo.png",
	},
	{
		Slug:           "audi",
		DisplayName:    "Audi",
		ConstructorIDs: []string{"audi", "sauber"},
		TeamNames:      []string{"Audi", "Kick Sauber", "Sauber"},
		FallbackRoster: []FallbackDriver{
			{FirstName: "Nico", LastName: "Hulkenberg", Code: "HUL", DriverNumber: 27},
			{FirstName: "Gabriel", LastName: "Bortoleto", Code: "BOR", DriverNumber: 5},
		},
		LogoURL: "https://media.formula1.com/content/dam/fom-website/teams/2025/kick-sauber-logo.png",
	},
}

// BySlug looks a team up by its slug.
func BySlug(slug string) (Team, bool) {
	for _, t := range All {
		if t.Slug == slug {
			return t, true
		}
	}
	return Team{}, false
}
