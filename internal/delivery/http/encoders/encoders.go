// Package encoders holds the list and detail views of every resource.
package encoders

import "conferencego/internal/encoding"

var LocationList = &encoding.ModelEncoder{
	Properties: []string{"name", "href"},
}

var LocationDetail = &encoding.ModelEncoder{
	Properties: []string{"name", "city", "room_count", "created", "updated", "picture_url"},
	ExtraData: func(m encoding.Model) map[string]any {
		state, _ := m.Field("state")
		return map[string]any{"state": state}
	},
}

var ConferenceList = &encoding.ModelEncoder{
	Properties: []string{"name", "href"},
}

var ConferenceDetail = &encoding.ModelEncoder{
	Properties: []string{
		"name", "description", "max_presentations", "max_attendees",
		"starts", "ends", "created", "updated", "location",
	},
	Encoders: map[string]*encoding.ModelEncoder{
		"location": LocationList,
	},
}

// ConferenceVO links to the monolith conference the mirror was imported from.
var ConferenceVO = &encoding.ModelEncoder{
	Properties: []string{"name", "href"},
}

var AttendeeList = &encoding.ModelEncoder{
	Properties: []string{"name", "href"},
}

var AttendeeDetail = &encoding.ModelEncoder{
	Properties: []string{"email", "name", "company_name", "created", "conference"},
	Encoders: map[string]*encoding.ModelEncoder{
		"conference": ConferenceVO,
	},
}

var PresentationList = &encoding.ModelEncoder{
	Properties: []string{"title", "status", "href"},
}

var PresentationDetail = &encoding.ModelEncoder{
	Properties: []string{
		"presenter_name", "company_name", "presenter_email", "title", "synopsis",
		"created", "status", "conference",
	},
	Encoders: map[string]*encoding.ModelEncoder{
		"conference": ConferenceList,
	},
}
