package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHrefs(t *testing.T) {
	assert.Equal(t, "/api/conferences/7/", (&Conference{ID: 7}).Href())
	assert.Equal(t, "/api/conferences/7/", ConferenceHref(7))
	assert.Equal(t, "/api/locations/3/", (&Location{ID: 3}).Href())
	assert.Equal(t, "/api/presentations/4/", (&Presentation{ID: 4}).Href())
	assert.Equal(t, "/api/attendees/5/", (&Attendee{ID: 5}).Href())
	assert.Equal(t, "/api/conferences/9/", (&ConferenceVO{ID: 2, ImportHref: "/api/conferences/9/"}).Href())
}

func TestField_Relations(t *testing.T) {
	p := &Presentation{ID: 4}
	v, ok := p.Field("conference")
	assert.True(t, ok)
	assert.Nil(t, v, "an unloaded relation is an untyped nil")

	v, _ = p.Field("status")
	assert.Equal(t, "", v)
	p.Status = &Status{Name: StatusApproved}
	v, _ = p.Field("status")
	assert.Equal(t, StatusApproved, v)

	l := &Location{State: &State{Abbreviation: "CO"}}
	v, _ = l.Field("state")
	assert.Equal(t, "CO", v)

	a := &Attendee{Conference: &ConferenceVO{Name: "GopherCon"}}
	v, _ = a.Field("conference")
	assert.IsType(t, &ConferenceVO{}, v)
}

func TestField_Unknown(t *testing.T) {
	for _, m := range []interface {
		Field(string) (any, bool)
	}{&Conference{}, &ConferenceVO{}, &Location{}, &Presentation{}, &Attendee{}} {
		_, ok := m.Field("password")
		assert.False(t, ok, "%T", m)
	}
}
