package photography

import "github.com/Zachkp/folio/content"

type (
	DateGroup = content.DateGroup[Photo]
	KeyGroup  = content.KeyGroup[Photo]
)

func GroupByDate(photos []Photo) []DateGroup {
	return content.GroupByDate(photos, func(p Photo) string { return p.Date })
}

func GroupByCamera(photos []Photo) []KeyGroup {
	return content.GroupByKey(photos, func(p Photo) string { return p.CameraType })
}

func GroupByLocation(photos []Photo) []KeyGroup {
	return content.GroupByKey(photos, func(p Photo) string { return p.Location })
}

func FilterByMonochrome(photos []Photo, bw bool) []Photo {
	return content.Filter(photos, func(p Photo) bool { return p.IsBlackAndWhite == bw })
}
