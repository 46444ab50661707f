package chart

import (
	"regexp"
	"strconv"
	"time"
)

var (
	fullDateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	bareYearRE = regexp.MustCompile(`^\d{4}$`)
)

// ValidateDate checks a weekly chart date argument. The empty string (meaning
// "latest") passes through; anything else must match YYYY-MM-DD and be a real
// calendar date. No range clamping is applied: a well-formed but unpublished
// date is sent as-is, and the remote site rounds up to the nearest published
// chart, possibly yielding zero entries.
func ValidateDate(date string) error {
	if date == "" {
		return nil
	}
	if !fullDateRE.MatchString(date) {
		return ErrInvalidDate
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// ResolveYear turns a year-end chart date argument into the concrete year to
// fetch. Accepted shapes: "" (defaults to the previous calendar year), a bare
// "YYYY", or a full "YYYY-MM-DD" whose year component is used. The result is
// clamped to [chart epoch, current year - 1]: future year-end charts do not
// exist, and each series has a known earliest published year.
func ResolveYear(name, date string) (int, error) {
	return resolveYear(name, date, time.Now())
}

func resolveYear(name, date string, now time.Time) (int, error) {
	var year int
	switch {
	case date == "":
		year = now.Year() - 1
	case bareYearRE.MatchString(date):
		year, _ = strconv.Atoi(date)
	case fullDateRE.MatchString(date):
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			return 0, ErrInvalidDate
		}
		year = t.Year()
	default:
		return 0, ErrInvalidDate
	}

	if latest := latestYearEndYear(now); year > latest {
		year = latest
	}
	if epoch, ok := yearEndEpoch[name]; ok && year < epoch {
		year = epoch
	}
	return year, nil
}

// latestYearEndYear is the newest year-end chart that can exist at time now.
// The current year's retrospective is never out yet.
func latestYearEndYear(now time.Time) int {
	return now.Year() - 1
}

// yearEndEpochGroups lists the year-end series that first appeared in each
// year. Series missing from every group have no known lower bound and are
// fetched for whatever year resolves.
var yearEndEpochGroups = map[int][]string{
	2002: {
		"hot-100-songs",
		"top-billboard-200-albums",
		"hot-country-songs",
		"hot-r-and-b-hip-hop-songs",
		"hot-rap-songs",
		"hot-latin-songs",
		"top-country-albums",
		"top-r-and-b-hip-hop-albums",
		"top-latin-albums",
	},
	2006: {
		"hot-digital-songs",
		"top-digital-albums",
		"hot-dance-club-play-songs",
		"top-independent-albums",
	},
	2008: {
		"hot-rock-songs",
		"top-rock-albums",
		"hot-alternative-songs",
		"top-alternative-albums",
	},
	2009: {
		"hot-christian-songs",
		"top-christian-albums",
		"hot-gospel-songs",
		"top-gospel-albums",
	},
	2010: {
		"hot-adult-contemporary-songs",
		"hot-adult-pop-songs",
		"top-soundtracks-albums",
	},
	2011: {
		"hot-dance-electronic-songs",
		"top-dance-electronic-albums",
		"hot-holiday-songs",
	},
	2012: {
		"hot-pop-songs",
		"top-catalog-albums",
		"hot-heatseekers-songs",
	},
	2013: {
		"top-streaming-songs",
		"hot-on-demand-songs",
		"top-heatseekers-albums",
	},
	2014: {
		"top-social-artists",
		"top-artists",
		"top-new-artists",
	},
}

// yearEndEpoch maps each known year-end series slug to its earliest published
// year.
var yearEndEpoch = func() map[string]int {
	m := make(map[string]int)
	for year, slugs := range yearEndEpochGroups {
		for _, slug := range slugs {
			m[slug] = year
		}
	}
	return m
}()
