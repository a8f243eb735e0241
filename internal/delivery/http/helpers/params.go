package helpers

import (
	"net/http"
	"strconv"
)

// PathID parses the named path value as a positive int64.
func PathID(r *http.Request, name string) (int64, bool) {
	return parseID(r.PathValue(name))
}

// ParentID resolves a parent id from the path value pathName, the query
// parameter queryName and the id sent in the request body, e.g.
// /api/conferences/{conferenceID}/attendees/, /api/attendees/?conference=<id>
// and {"conference": <id>}. body is nil for requests without one. At least one
// source must be given and every source given must hold the same positive id.
func ParentID(r *http.Request, pathName, queryName string, body *int64) (int64, bool) {
	var ids []int64
	for _, s := range []string{r.PathValue(pathName), r.URL.Query().Get(queryName)} {
		if s == "" {
			continue
		}
		id, ok := parseID(s)
		if !ok {
			return 0, false
		}
		ids = append(ids, id)
	}
	if body != nil {
		if *body <= 0 {
			return 0, false
		}
		ids = append(ids, *body)
	}
	if len(ids) == 0 {
		return 0, false
	}
	for _, id := range ids[1:] {
		if id != ids[0] {
			return 0, false
		}
	}
	return ids[0], true
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
