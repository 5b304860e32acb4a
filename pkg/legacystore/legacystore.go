// Package legacystore reads the flat-file layout used by earlier deployments:
// a captions file with one "day: text" line per weekday, an hours file with a
// comma-separated hour list, and two channel files (scanned and approved).
// It exists only for one-shot imports into the database.
package legacystore

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	domainAnnouncement "github.com/AzielCF/az-cast/domains/announcement"
	domainChannel "github.com/AzielCF/az-cast/domains/channel"
)

// Legacy weekday keys as written in the captions file, in file order.
var legacyWeekdayKeys = []string{"segunda", "terca", "quarta", "quinta", "sexta", "sabado"}

var legacyKeyToWeekday = map[string]domainAnnouncement.Weekday{
	"segunda": domainAnnouncement.Monday,
	"terca":   domainAnnouncement.Tuesday,
	"quarta":  domainAnnouncement.Wednesday,
	"quinta":  domainAnnouncement.Thursday,
	"sexta":   domainAnnouncement.Friday,
	"sabado":  domainAnnouncement.Saturday,
}

// Legacy media basenames as stored in the old assets directory.
var legacyBasenameToWeekday = map[string]domainAnnouncement.Weekday{
	"diaum":     domainAnnouncement.Monday,
	"diadois":   domainAnnouncement.Tuesday,
	"diatres":   domainAnnouncement.Wednesday,
	"diaquatro": domainAnnouncement.Thursday,
	"diacinco":  domainAnnouncement.Friday,
	"diaseis":   domainAnnouncement.Saturday,
}

// LegacyMediaBasenames maps each old basename to its weekday, for locating
// and renaming asset files during import.
func LegacyMediaBasenames() map[string]domainAnnouncement.Weekday {
	out := make(map[string]domainAnnouncement.Weekday, len(legacyBasenameToWeekday))
	for k, v := range legacyBasenameToWeekday {
		out[k] = v
	}
	return out
}

// EscapeCaption converts real newlines into the literal two-character
// sequence backslash-n used by the captions file.
func EscapeCaption(caption string) string {
	caption = strings.ReplaceAll(caption, "\r\n", "\n")
	return strings.ReplaceAll(caption, "\n", `\n`)
}

// UnescapeCaption is the inverse of EscapeCaption.
func UnescapeCaption(raw string) string {
	return strings.ReplaceAll(raw, `\n`, "\n")
}

// ParseCaptions reads the "day: caption" lines of a captions file. Unknown
// day keys are skipped, captions keep their stored newlines unescaped. Only
// the first colon splits key from text so captions may contain colons.
func ParseCaptions(content string) map[domainAnnouncement.Weekday]string {
	out := make(map[domainAnnouncement.Weekday]string)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		weekday, ok := legacyKeyToWeekday[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			continue
		}
		out[weekday] = UnescapeCaption(strings.TrimSpace(rest))
	}
	return out
}

// FormatCaptions renders captions back into the legacy file layout, one line
// per weekday in the legacy order, skipping empty entries.
func FormatCaptions(captions map[domainAnnouncement.Weekday]string) string {
	var lines []string
	for _, key := range legacyWeekdayKeys {
		weekday := legacyKeyToWeekday[key]
		caption, ok := captions[weekday]
		if !ok || caption == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", key, EscapeCaption(caption)))
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// ParseHours reads the comma-separated hour list. Blanks and non-numeric
// entries are dropped, out-of-range hours rejected, duplicates collapsed and
// the result returned sorted.
func ParseHours(content string) []int {
	seen := make(map[int]struct{})
	var hours []int
	for _, part := range strings.Split(content, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		hour, err := strconv.Atoi(part)
		if err != nil || hour < 0 || hour > 23 {
			continue
		}
		if _, dup := seen[hour]; dup {
			continue
		}
		seen[hour] = struct{}{}
		hours = append(hours, hour)
	}
	sort.Ints(hours)
	return hours
}

// FormatHours renders hours back into the legacy comma-joined form.
func FormatHours(hours []int) string {
	parts := make([]string, 0, len(hours))
	for _, h := range hours {
		parts = append(parts, strconv.Itoa(h))
	}
	return strings.Join(parts, ",")
}

// ParseDiscovered reads the scan file, one "id - name" line per channel.
// Names may themselves contain " - ", so only the first occurrence splits.
// Lines without a separator are treated as bare IDs.
func ParseDiscovered(content string) []domainChannel.Channel {
	return parseChannelLines(content, " - ")
}

// ParseApproved reads the approved file, one "id | name" line per channel.
func ParseApproved(content string) []domainChannel.Channel {
	return parseChannelLines(content, "|")
}

func parseChannelLines(content, sep string) []domainChannel.Channel {
	var channels []domainChannel.Channel
	seen := make(map[string]struct{})
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		id, name, _ := strings.Cut(line, sep)
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		channels = append(channels, domainChannel.Channel{ID: id, Name: strings.TrimSpace(name)})
	}
	return channels
}

// FormatApproved renders channels back into the legacy "id | name" form.
func FormatApproved(channels []domainChannel.Channel) string {
	lines := make([]string, 0, len(channels))
	for _, ch := range channels {
		lines = append(lines, fmt.Sprintf("%s | %s", ch.ID, ch.Name))
	}
	return strings.Join(lines, "\n")
}
