package retrosheet

import "strings"

// InfoKind is the closed set of named info-record keys.
type InfoKind int

const (
	InfoUnrecognized InfoKind = iota
	InfoVisTeam
	InfoHomeTeam
	InfoSite
	InfoUmpHome
	InfoUmp1B
	InfoUmp2B
	InfoUmp3B
	InfoUmpLF
	InfoUmpRF
	InfoNumber
	InfoDayNight
	InfoPitches
	InfoFieldCondition
	InfoPrecipitation
	InfoSky
	InfoWindDirection
	InfoWindSpeed
	InfoHowScored
	InfoHowEntered
	InfoTimeOfGame
	InfoAttendance
	InfoTemp
	InfoInnings
	InfoUseDH
	InfoHomeTeamBatsFirst
	InfoDate
	InfoStartTime
	InfoWinningPitcher
	InfoLosingPitcher
	InfoSave
	InfoGameWinningRBI
	InfoScorer
	InfoInputter
	InfoTranslator
	InfoInputTime
	InfoEditTime
	InfoTiebreaker
	InfoInputProgramVersion
	InfoUmpireChange
)

// infoNames maps the closed name set (with common typo aliases folded in,
// e.g. "fieldcon" for "fieldcond") to its InfoKind.
var infoNames = map[string]InfoKind{
	"visteam":       InfoVisTeam,
	"hometeam":      InfoHomeTeam,
	"site":          InfoSite,
	"umphome":       InfoUmpHome,
	"ump1b":         InfoUmp1B,
	"ump2b":         InfoUmp2B,
	"ump3b":         InfoUmp3B,
	"umplf":         InfoUmpLF,
	"umprf":         InfoUmpRF,
	"number":        InfoNumber,
	"daynight":      InfoDayNight,
	"pitches":       InfoPitches,
	"fieldcond":     InfoFieldCondition,
	"fieldcon":      InfoFieldCondition,
	"precip":        InfoPrecipitation,
	"sky":           InfoSky,
	"winddir":       InfoWindDirection,
	"windspeed":     InfoWindSpeed,
	"howscored":     InfoHowScored,
	"howentered":    InfoHowEntered,
	"timeofgame":    InfoTimeOfGame,
	"attendance":    InfoAttendance,
	"temp":          InfoTemp,
	"innings":       InfoInnings,
	"usedh":         InfoUseDH,
	"htbf":          InfoHomeTeamBatsFirst,
	"date":          InfoDate,
	"starttime":     InfoStartTime,
	"wp":            InfoWinningPitcher,
	"lp":            InfoLosingPitcher,
	"save":          InfoSave,
	"gwrbi":         InfoGameWinningRBI,
	"scorer":        InfoScorer,
	"oscorer":       InfoScorer,
	"inputter":      InfoInputter,
	"translator":    InfoTranslator,
	"inputtime":     InfoInputTime,
	"edittime":      InfoEditTime,
	"tiebreaker":    InfoTiebreaker,
	"inputprogvers": InfoInputProgramVersion,
	"umpchange":     InfoUmpireChange,
}

// Info is a decoded "info" record: a closed-set name paired with its raw value.
type Info struct {
	Kind  InfoKind
	Name  string // the original field, for Unrecognized round-tripping
	Value string
}

// DecodeInfo maps an "info" record's (name, value) fields to a typed Info.
// Unknown names decode to InfoUnrecognized rather than failing, since novel
// info keys are benign (spec §9's Unrecognized(raw) design).
func DecodeInfo(fields []string) (Info, error) {
	if len(fields) < 2 {
		return Info{}, NewParseShapeError("info", 2, len(fields), 0)
	}
	name := fields[0]
	value := fields[1]
	kind, ok := infoNames[strings.ToLower(name)]
	if !ok {
		kind = InfoUnrecognized
	}
	return Info{Kind: kind, Name: name, Value: value}, nil
}

// DayNight is the closed set of values for the "daynight" info field.
type DayNight int

const (
	DayNightUnknown DayNight = iota
	DayGame
	NightGame
)

// ParseDayNight decodes the daynight info value.
func ParseDayNight(raw string) DayNight {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "day":
		return DayGame
	case "night":
		return NightGame
	default:
		return DayNightUnknown
	}
}

// FieldCondition is the closed set of values for "fieldcond"/"fieldcon".
type FieldCondition int

const (
	FieldConditionUnknown FieldCondition = iota
	FieldDry
	FieldSoaked
	FieldWet
	FieldDamp
)

// ParseFieldCondition decodes the fieldcond/fieldcon info value.
func ParseFieldCondition(raw string) FieldCondition {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dry":
		return FieldDry
	case "soaked":
		return FieldSoaked
	case "wet":
		return FieldWet
	case "damp":
		return FieldDamp
	default:
		return FieldConditionUnknown
	}
}

// Precipitation is the closed set of values for "precip".
type Precipitation int

const (
	PrecipitationUnknown Precipitation = iota
	PrecipNone
	PrecipDrizzle
	PrecipShower
	PrecipRain
	PrecipSnow
)

// ParsePrecipitation decodes the precip info value.
func ParsePrecipitation(raw string) Precipitation {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "none":
		return PrecipNone
	case "drizzle":
		return PrecipDrizzle
	case "showers", "shower":
		return PrecipShower
	case "rain":
		return PrecipRain
	case "snow":
		return PrecipSnow
	default:
		return PrecipitationUnknown
	}
}

// Sky is the closed set of values for "sky".
type Sky int

const (
	SkyUnknown Sky = iota
	SkyCloudy
	SkyDome
	SkyNight
	SkyOvercast
	SkySunny
)

// ParseSky decodes the sky info value.
func ParseSky(raw string) Sky {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "cloudy":
		return SkyCloudy
	case "dome":
		return SkyDome
	case "night":
		return SkyNight
	case "overcast":
		return SkyOvercast
	case "sunny":
		return SkySunny
	default:
		return SkyUnknown
	}
}

// WindDirection is the closed set of values for "winddir".
type WindDirection int

const (
	WindDirectionUnknown WindDirection = iota
	WindFromCF
	WindFromLF
	WindFromRF
	WindToCF
	WindToLF
	WindToRF
	WindLToR
	WindRToL
	WindUnknownLabeled
)

// ParseWindDirection decodes the winddir info value.
func ParseWindDirection(raw string) WindDirection {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "fromcf":
		return WindFromCF
	case "fromlf":
		return WindFromLF
	case "fromrf":
		return WindFromRF
	case "tocf":
		return WindToCF
	case "tolf":
		return WindToLF
	case "torf":
		return WindToRF
	case "ltor":
		return WindLToR
	case "rtol":
		return WindRToL
	case "unknown":
		return WindUnknownLabeled
	default:
		return WindDirectionUnknown
	}
}

// ParseTemperature decodes the temp info value. A value of 0 is treated as
// absent per spec tolerance; a non-numeric value is also absent.
func ParseTemperature(raw string) (int, bool) {
	n, ok := atoiTolerant(raw)
	if !ok || n == 0 {
		return 0, false
	}
	return n, true
}

// ParseAttendance decodes the attendance info value. Unlike temperature, an
// attendance of 0 is a present, valid zero rather than an absence.
func ParseAttendance(raw string) (int, bool) {
	return atoiTolerant(raw)
}

func atoiTolerant(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	neg := false
	if raw[0] == '-' {
		neg = true
		raw = raw[1:]
	}
	n := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if neg {
		n = -n
	}
	return n, true
}
