// Package photography derives photo metadata from file names and folder
// layout and groups photos for the gallery pages.
package photography

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Zachkp/folio/content"
)

const Unknown = "Unknown"

type Photo struct {
	ID              string   `json:"id"`
	FileName        string   `json:"fileName"`
	Date            string   `json:"date"`
	CameraType      string   `json:"cameraType"`
	Location        string   `json:"location"`
	IsBlackAndWhite bool     `json:"isBlackAndWhite"`
	URL             string   `json:"url"`
	Title           string   `json:"title,omitempty"`
	Description     string   `json:"description,omitempty"`
	Tags            []string `json:"tags"`
}

var (
	timeNow    = time.Now
	extPattern = regexp.MustCompile(`\.[^/.]+$`)
	bwSuffix   = regexp.MustCompile(`(?i)[-_]?bw$`)
)

func today() string {
	return timeNow().UTC().Format(content.DateLayout)
}

// colorTypes maps the colour folder of the nested layout to the monochrome flag.
var colorTypes = map[string]bool{
	"bw":            true,
	"b&w":           true,
	"mono":          true,
	"monochrome":    true,
	"blackandwhite": true,
	"color":         false,
	"colour":        false,
}

// Extract picks the nested folder convention when p ends in
// camera/location/date/colorType/file and falls back to the flat file name
// convention otherwise.
func Extract(p, url string) Photo {
	if ph, ok := ExtractFromPath(p, url); ok {
		return ph
	}
	return ExtractFromFileName(path.Base(filepath.ToSlash(p)), url)
}

// ExtractFromFileName parses date_camera_location[_bw].ext. Names with fewer
// than three parts get a defaulted record.
func ExtractFromFileName(fileName, url string) Photo {
	stem := extPattern.ReplaceAllString(fileName, "")
	parts := strings.Split(stem, "_")
	if len(parts) < 3 {
		return fallback(fileName, url)
	}

	date := orDefault(parts[0], today())
	camera := orDefault(parts[1], Unknown)
	locationPart := orDefault(parts[2], Unknown)

	bw := bwSuffix.MatchString(locationPart)
	for _, p := range parts[3:] {
		if strings.EqualFold(p, "bw") {
			bw = true
		}
	}
	location := orDefault(bwSuffix.ReplaceAllString(locationPart, ""), Unknown)

	return build(fileName, fileName, url, date, camera, location, bw)
}

// ExtractFromPath parses .../camera/location/date/colorType/file.ext. The
// second result is false when the path does not follow that layout.
func ExtractFromPath(p, url string) (Photo, bool) {
	var segs []string
	for _, s := range strings.Split(filepath.ToSlash(p), "/") {
		if s != "" && s != "." {
			segs = append(segs, s)
		}
	}
	n := len(segs)
	if n < 5 {
		return Photo{}, false
	}
	bw, ok := colorTypes[strings.ToLower(segs[n-2])]
	if !ok {
		return Photo{}, false
	}

	fileName := segs[n-1]
	id := strings.Join(segs[n-5:], "/")
	return build(id, fileName, url, segs[n-3], segs[n-5], segs[n-4], bw), true
}

func build(id, fileName, url, date, camera, location string, bw bool) Photo {
	colorTag := "Color"
	if bw {
		colorTag = "Black & White"
	}
	return Photo{
		ID:              id,
		FileName:        fileName,
		Date:            date,
		CameraType:      camera,
		Location:        location,
		IsBlackAndWhite: bw,
		URL:             url,
		Title:           location + " - " + camera,
		Description:     "Captured on " + date + " with " + camera,
		Tags:            []string{camera, location, colorTag},
	}
}

func fallback(fileName, url string) Photo {
	return Photo{
		ID:         fileName,
		FileName:   fileName,
		Date:       today(),
		CameraType: Unknown,
		Location:   Unknown,
		URL:        url,
		Title:      fileName,
		Tags:       []string{},
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
