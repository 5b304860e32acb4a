package announcement

import (
	"context"
	"strings"
	"time"
)

// Weekday is the key every announcement and media asset hangs off.
// Sunday is deliberately not a valid key: the service never operates on Sundays.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

// AllWeekdays lists the valid keys in calendar order.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// mediaBasenames is the canonical weekday -> filename stem table. The stem
// locates a weekday's media asset regardless of extension.
var mediaBasenames = map[Weekday]string{
	Monday:    "day-1",
	Tuesday:   "day-2",
	Wednesday: "day-3",
	Thursday:  "day-4",
	Friday:    "day-5",
	Saturday:  "day-6",
}

// ParseWeekday normalizes and validates a weekday key.
func ParseWeekday(raw string) (Weekday, bool) {
	w := Weekday(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := mediaBasenames[w]
	return w, ok
}

// WeekdayFromTime maps a wall-clock weekday to a key. Sunday yields ok=false.
func WeekdayFromTime(d time.Weekday) (Weekday, bool) {
	switch d {
	case time.Monday:
		return Monday, true
	case time.Tuesday:
		return Tuesday, true
	case time.Wednesday:
		return Wednesday, true
	case time.Thursday:
		return Thursday, true
	case time.Friday:
		return Friday, true
	case time.Saturday:
		return Saturday, true
	default:
		return "", false
	}
}

// MediaBasename returns the canonical filename stem for a weekday.
func (w Weekday) MediaBasename() string {
	return mediaBasenames[w]
}

func (w Weekday) Valid() bool {
	_, ok := mediaBasenames[w]
	return ok
}

// Announcement is one weekday's broadcast content: a caption plus the
// resolved media asset on disk. MediaPath is empty when no asset exists yet.
type Announcement struct {
	Weekday   Weekday `json:"weekday"`
	Caption   string  `json:"caption"`
	MediaPath string  `json:"media_path,omitempty"`
	MediaSize int64   `json:"media_size,omitempty"`
}

type IAnnouncementUsecase interface {
	Get(ctx context.Context, weekday Weekday) (Announcement, error)
	Save(ctx context.Context, request SaveRequest) error
	SaveMedia(ctx context.Context, request SaveMediaRequest) (string, error)
	Copy(ctx context.Context, request CopyRequest) error
	Delete(ctx context.Context, weekday Weekday) error
	DeleteAll(ctx context.Context) error
	Preview(ctx context.Context, weekday Weekday) (PreviewResponse, error)
}

type SaveRequest struct {
	Weekday Weekday `json:"weekday" form:"weekday"`
	Caption string  `json:"caption" form:"caption"`
}

type SaveMediaRequest struct {
	Weekday          Weekday
	Data             []byte
	OriginalFilename string
}

type CopyRequest struct {
	Source       Weekday   `json:"source" form:"source"`
	Destinations []Weekday `json:"destinations" form:"destinations"`
}

type PreviewResponse struct {
	Weekday     Weekday `json:"weekday"`
	Caption     string  `json:"caption"`
	MediaBase64 string  `json:"media_base64,omitempty"`
	ThumbBase64 string  `json:"thumb_base64,omitempty"`
}
