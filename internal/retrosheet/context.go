package retrosheet

// FileInfo identifies where a game's records came from, for traceability
// back to the source event file. Populated by the ingest collaborator,
// not by the core parser.
type FileInfo struct {
	SourceFile string
	GameNumber int
}

// GameMetadata gathers the scheduling/administrative info fields that
// aren't part of the setting (weather) or umpire crew.
type GameMetadata struct {
	Date                string
	StartTime           string
	Number              string
	UseDH               bool
	HomeTeamBatsFirst   bool
	ScheduledInnings    int
	HowScored           string
	HowEntered          string
	InputProgramVersion string
	Inputter            string
	Translator          string
	InputTime           string
	EditTime            string
	Tiebreaker          string
}

// GameSetting gathers the venue and weather info fields.
type GameSetting struct {
	Site           string
	DayNight       DayNight
	FieldCondition FieldCondition
	Precipitation  Precipitation
	Sky            Sky
	WindDirection  WindDirection
	WindSpeed      int
	Temperature    int
	Attendance     int
	TimeOfGame     int
}

// Umpires names the crew for a game; any slot may be empty if the source
// file omits it.
type Umpires struct {
	Home       Umpire
	First      Umpire
	Second     Umpire
	Third      Umpire
	LeftField  Umpire
	RightField Umpire
}

// GameResults gathers the decisions and scoring-administration info
// fields, known only after the game completes.
type GameResults struct {
	WinningPitcher  Player
	LosingPitcher   Player
	Save            Player
	GameWinningRBI  Player
	Scorer          Scorer
	UmpireChange    string
}

// GameContext is the fully reconstructed output for one game: identity,
// provenance, metadata, the two teams, venue/weather, umpires, results,
// the complete personnel appearance history, every resolved Event, and
// (if the source file carried pre-tabulated rows) the decoded box score.
type GameContext struct {
	GameID             GameID
	FileInfo           FileInfo
	Metadata           GameMetadata
	Teams              Matchup[Player]
	Setting            GameSetting
	Umpires            Umpires
	Results            GameResults
	LineupAppearances  Matchup[[]LineupAppearance]
	FieldingAppearances Matchup[[]FieldingAppearance]
	Events             []Event
	BoxScoreData       *BoxScoreData
}

// BuildGameContext assembles a GameContext from the decoded info records,
// the state machine's finalized personnel tracker, and the accumulated
// event list. infos should include every "info" record seen for the game,
// in file order; later duplicate keys overwrite earlier ones.
func BuildGameContext(gameID GameID, fileInfo FileInfo, infos []Info, tracker *PersonnelTracker, events []Event, boxScore *BoxScoreData) GameContext {
	ctx := GameContext{
		GameID:   gameID,
		FileInfo: fileInfo,
		Events:   events,
	}

	var away, home Player
	for _, info := range infos {
		applyInfo(&ctx, info)
		switch info.Kind {
		case InfoVisTeam:
			away = Player(info.Value)
		case InfoHomeTeam:
			home = Player(info.Value)
		}
	}
	ctx.Teams = NewMatchup(away, home)

	if tracker != nil {
		ctx.LineupAppearances = NewMatchup(tracker.LineupAppearances(Away), tracker.LineupAppearances(Home))
		ctx.FieldingAppearances = NewMatchup(tracker.FieldingAppearances(Away), tracker.FieldingAppearances(Home))
	}

	ctx.BoxScoreData = boxScore
	return ctx
}

func applyInfo(ctx *GameContext, info Info) {
	switch info.Kind {
	case InfoDate:
		ctx.Metadata.Date = info.Value
	case InfoStartTime:
		ctx.Metadata.StartTime = info.Value
	case InfoNumber:
		ctx.Metadata.Number = info.Value
	case InfoUseDH:
		ctx.Metadata.UseDH = info.Value == "true" || info.Value == "1"
	case InfoHomeTeamBatsFirst:
		ctx.Metadata.HomeTeamBatsFirst = info.Value == "true" || info.Value == "1"
	case InfoInnings:
		if n, ok := atoiTolerant(info.Value); ok {
			ctx.Metadata.ScheduledInnings = n
		}
	case InfoHowScored:
		ctx.Metadata.HowScored = info.Value
	case InfoHowEntered:
		ctx.Metadata.HowEntered = info.Value
	case InfoInputProgramVersion:
		ctx.Metadata.InputProgramVersion = info.Value
	case InfoInputter:
		ctx.Metadata.Inputter = info.Value
	case InfoTranslator:
		ctx.Metadata.Translator = info.Value
	case InfoInputTime:
		ctx.Metadata.InputTime = info.Value
	case InfoEditTime:
		ctx.Metadata.EditTime = info.Value
	case InfoTiebreaker:
		ctx.Metadata.Tiebreaker = info.Value

	case InfoSite:
		ctx.Setting.Site = info.Value
	case InfoDayNight:
		ctx.Setting.DayNight = ParseDayNight(info.Value)
	case InfoFieldCondition:
		ctx.Setting.FieldCondition = ParseFieldCondition(info.Value)
	case InfoPrecipitation:
		ctx.Setting.Precipitation = ParsePrecipitation(info.Value)
	case InfoSky:
		ctx.Setting.Sky = ParseSky(info.Value)
	case InfoWindDirection:
		ctx.Setting.WindDirection = ParseWindDirection(info.Value)
	case InfoWindSpeed:
		if n, ok := atoiTolerant(info.Value); ok {
			ctx.Setting.WindSpeed = n
		}
	case InfoTemp:
		if n, ok := ParseTemperature(info.Value); ok {
			ctx.Setting.Temperature = n
		}
	case InfoAttendance:
		if n, ok := ParseAttendance(info.Value); ok {
			ctx.Setting.Attendance = n
		}
	case InfoTimeOfGame:
		if n, ok := atoiTolerant(info.Value); ok {
			ctx.Setting.TimeOfGame = n
		}

	case InfoUmpHome:
		ctx.Umpires.Home = Umpire(info.Value)
	case InfoUmp1B:
		ctx.Umpires.First = Umpire(info.Value)
	case InfoUmp2B:
		ctx.Umpires.Second = Umpire(info.Value)
	case InfoUmp3B:
		ctx.Umpires.Third = Umpire(info.Value)
	case InfoUmpLF:
		ctx.Umpires.LeftField = Umpire(info.Value)
	case InfoUmpRF:
		ctx.Umpires.RightField = Umpire(info.Value)

	case InfoWinningPitcher:
		ctx.Results.WinningPitcher = Player(info.Value)
	case InfoLosingPitcher:
		ctx.Results.LosingPitcher = Player(info.Value)
	case InfoSave:
		ctx.Results.Save = Player(info.Value)
	case InfoGameWinningRBI:
		ctx.Results.GameWinningRBI = Player(info.Value)
	case InfoScorer:
		ctx.Results.Scorer = Scorer(info.Value)
	case InfoUmpireChange:
		ctx.Results.UmpireChange = info.Value
	}
}
