package website

import (
	"regexp"
	"strconv"
)

var windowRegex = regexp.MustCompile(`^\[(\d+),(\d+)\]$`)

// getWindowInfo parses an optional `window=[start,end]` listing parameter.
// A malformed window degrades to the default first page. A well-formed
// window wider than the limit is refused outright rather than silently
// truncated, and the default first page is returned in its place.
func getWindowInfo(
	windowParam string,
	limit int,
) (
	start int,
	end int,
	refused bool,
) {
	start = 0
	end = limit

	if windowParam == "" {
		return
	}

	match := windowRegex.FindStringSubmatch(windowParam)
	if match == nil {
		return
	}

	// The regex only matches digit runs, so these parse unless they overflow.
	reqStart, err1 := strconv.Atoi(match[1])
	reqEnd, err2 := strconv.Atoi(match[2])
	if err1 != nil || err2 != nil || reqEnd < reqStart {
		return
	}

	if reqEnd-reqStart > limit {
		refused = true
		return
	}

	return reqStart, reqEnd, false
}
