package photography

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidSection  = errors.New("invalid section")
	ErrSectionNotFound = errors.New("section not found")
)

type SectionKind string

const (
	SectionDate     SectionKind = "date"
	SectionCamera   SectionKind = "camera"
	SectionLocation SectionKind = "location"
)

// Section identifies one gallery bucket, written as "date-2024-1",
// "camera-NikonF3" or "location-Paris".
type Section struct {
	Kind  SectionKind
	Value string
}

func DateSectionID(year, month int) string {
	return fmt.Sprintf("%s-%d-%d", SectionDate, year, month)
}

func CameraSectionID(camera string) string {
	return string(SectionCamera) + "-" + camera
}

func LocationSectionID(location string) string {
	return string(SectionLocation) + "-" + location
}

func ParseSection(id string) (Section, error) {
	kind, value, ok := strings.Cut(id, "-")
	if !ok || value == "" {
		return Section{}, fmt.Errorf("%w: %q", ErrInvalidSection, id)
	}
	switch k := SectionKind(kind); k {
	case SectionDate, SectionCamera, SectionLocation:
		return Section{Kind: k, Value: value}, nil
	}
	return Section{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidSection, kind)
}

type SectionResult struct {
	Kind   SectionKind `json:"type"`
	Title  string      `json:"title"`
	Photos []Photo     `json:"photos"`
}

// FindSection resolves a section id against photos.
func FindSection(photos []Photo, id string) (SectionResult, error) {
	sec, err := ParseSection(id)
	if err != nil {
		return SectionResult{}, err
	}

	switch sec.Kind {
	case SectionDate:
		ys, ms, ok := strings.Cut(sec.Value, "-")
		year, yerr := strconv.Atoi(ys)
		month, merr := strconv.Atoi(ms)
		if !ok || yerr != nil || merr != nil {
			return SectionResult{}, fmt.Errorf("%w: bad date %q", ErrInvalidSection, sec.Value)
		}
		for _, g := range GroupByDate(photos) {
			if g.Year == year && g.Month == month {
				return SectionResult{Kind: sec.Kind, Title: fmt.Sprintf("%s %d", g.MonthName, g.Year), Photos: g.Items}, nil
			}
		}
	case SectionCamera:
		if g, ok := findKey(GroupByCamera(photos), sec.Value); ok {
			return SectionResult{Kind: sec.Kind, Title: g.Key, Photos: g.Items}, nil
		}
	case SectionLocation:
		if g, ok := findKey(GroupByLocation(photos), sec.Value); ok {
			return SectionResult{Kind: sec.Kind, Title: g.Key, Photos: g.Items}, nil
		}
	}
	return SectionResult{}, fmt.Errorf("%w: %s", ErrSectionNotFound, id)
}

func findKey(groups []KeyGroup, key string) (KeyGroup, bool) {
	for _, g := range groups {
		if g.Key == key {
			return g, true
		}
	}
	return KeyGroup{}, false
}
