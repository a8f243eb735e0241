package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"

	"conferencego/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeConferenceRepo is an in-memory ConferenceRepository.
type fakeConferenceRepo struct {
	byID   map[int64]*domain.Conference
	nextID int64
}

func newFakeConferenceRepo(cs ...*domain.Conference) *fakeConferenceRepo {
	f := &fakeConferenceRepo{byID: map[int64]*domain.Conference{}, nextID: 1}
	for _, c := range cs {
		f.byID[c.ID] = c
		if c.ID >= f.nextID {
			f.nextID = c.ID + 1
		}
	}
	return f
}

func (f *fakeConferenceRepo) Create(ctx context.Context, c *domain.Conference) error {
	c.ID = f.nextID
	f.nextID++
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeConferenceRepo) GetByID(ctx context.Context, id int64) (*domain.Conference, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeConferenceRepo) List(ctx context.Context) ([]*domain.Conference, error) {
	out := make([]*domain.Conference, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeConferenceRepo) ListByLocationID(ctx context.Context, locationID int64) ([]*domain.Conference, error) {
	all, _ := f.List(ctx)
	out := make([]*domain.Conference, 0)
	for _, c := range all {
		if c.LocationID == locationID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConferenceRepo) snapshot() func() {
	byID, nextID := make(map[int64]*domain.Conference, len(f.byID)), f.nextID
	for id, c := range f.byID {
		cp := *c
		byID[id] = &cp
	}
	return func() { f.byID, f.nextID = byID, nextID }
}

func (f *fakeConferenceRepo) Update(ctx context.Context, id int64, u domain.ConferenceUpdate) error {
	c := f.byID[id]
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.LocationID != nil {
		c.LocationID = *u.LocationID
	}
	return nil
}

func (f *fakeConferenceRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := f.byID[id]; !ok {
		return 0, nil
	}
	delete(f.byID, id)
	return 1, nil
}

// fakeMirrorRepo is an in-memory ConferenceVORepository keyed by import href.
type fakeMirrorRepo struct {
	byHref  map[string]*domain.ConferenceVO
	nextID  int64
	upserts int
	err     error
}

func newFakeMirrorRepo(vos ...*domain.ConferenceVO) *fakeMirrorRepo {
	f := &fakeMirrorRepo{byHref: map[string]*domain.ConferenceVO{}, nextID: 100}
	for _, vo := range vos {
		f.byHref[vo.ImportHref] = vo
	}
	return f
}

func (f *fakeMirrorRepo) GetByID(ctx context.Context, id int64) (*domain.ConferenceVO, error) {
	for _, vo := range f.byHref {
		if vo.ID == id {
			return vo, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeMirrorRepo) GetByImportHref(ctx context.Context, href string) (*domain.ConferenceVO, error) {
	if vo, ok := f.byHref[href]; ok {
		return vo, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeMirrorRepo) Upsert(ctx context.Context, vo *domain.ConferenceVO) error {
	if f.err != nil {
		return f.err
	}
	f.upserts++
	if existing, ok := f.byHref[vo.ImportHref]; ok {
		existing.Name = vo.Name
		vo.ID = existing.ID
		return nil
	}
	vo.ID = f.nextID
	f.nextID++
	cp := *vo
	f.byHref[vo.ImportHref] = &cp
	return nil
}

func (f *fakeMirrorRepo) DeleteByImportHref(ctx context.Context, hrefs ...string) (int64, error) {
	var n int64
	for _, href := range hrefs {
		if _, ok := f.byHref[href]; ok {
			delete(f.byHref, href)
			n++
		}
	}
	return n, nil
}

func (f *fakeMirrorRepo) snapshot() func() {
	byHref, nextID := make(map[string]*domain.ConferenceVO, len(f.byHref)), f.nextID
	for href, vo := range f.byHref {
		cp := *vo
		byHref[href] = &cp
	}
	return func() { f.byHref, f.nextID = byHref, nextID }
}

// fakeTransactor restores the snapshots of its stores when fn fails.
type fakeTransactor struct {
	stores    []interface{ snapshot() func() }
	commits   int
	rollbacks int
}

func newFakeTransactor(stores ...interface{ snapshot() func() }) *fakeTransactor {
	return &fakeTransactor{stores: stores}
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	restores := make([]func(), 0, len(f.stores))
	for _, s := range f.stores {
		restores = append(restores, s.snapshot())
	}
	if err := fn(ctx); err != nil {
		for _, restore := range restores {
			restore()
		}
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

// fakeAttendeeRepo is an in-memory AttendeeRepository.
type fakeAttendeeRepo struct {
	byID   map[int64]*domain.Attendee
	nextID int64
}

func newFakeAttendeeRepo() *fakeAttendeeRepo {
	return &fakeAttendeeRepo{byID: map[int64]*domain.Attendee{}, nextID: 1}
}

func (f *fakeAttendeeRepo) Create(ctx context.Context, a *domain.Attendee) error {
	a.ID = f.nextID
	f.nextID++
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeAttendeeRepo) GetByID(ctx context.Context, id int64) (*domain.Attendee, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAttendeeRepo) ListByConferenceVOID(ctx context.Context, voID int64) ([]*domain.Attendee, error) {
	out := make([]*domain.Attendee, 0)
	for _, a := range f.byID {
		if a.ConferenceID == voID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAttendeeRepo) Update(ctx context.Context, id int64, u domain.AttendeeUpdate) error {
	a := f.byID[id]
	if u.Email != nil {
		a.Email = *u.Email
	}
	if u.Name != nil {
		a.Name = *u.Name
	}
	if u.CompanyName != nil {
		a.CompanyName = u.CompanyName
	}
	if u.ConferenceVOID != nil {
		a.ConferenceID = *u.ConferenceVOID
	}
	return nil
}

func (f *fakeAttendeeRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := f.byID[id]; !ok {
		return 0, nil
	}
	delete(f.byID, id)
	return 1, nil
}

// fakePresentationRepo is an in-memory PresentationRepository.
type fakePresentationRepo struct {
	byID    map[int64]*domain.Presentation
	nextID  int64
	updates int
}

func newFakePresentationRepo() *fakePresentationRepo {
	return &fakePresentationRepo{byID: map[int64]*domain.Presentation{}, nextID: 1}
}

func (f *fakePresentationRepo) Create(ctx context.Context, p *domain.Presentation) error {
	p.ID = f.nextID
	f.nextID++
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePresentationRepo) GetByID(ctx context.Context, id int64) (*domain.Presentation, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePresentationRepo) ListByConferenceID(ctx context.Context, conferenceID int64) ([]*domain.Presentation, error) {
	out := make([]*domain.Presentation, 0)
	for _, p := range f.byID {
		if p.ConferenceID == conferenceID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePresentationRepo) Update(ctx context.Context, id int64, u domain.PresentationUpdate) error {
	f.updates++
	p := f.byID[id]
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Synopsis != nil {
		p.Synopsis = *u.Synopsis
	}
	if u.StatusID != nil {
		p.StatusID = *u.StatusID
		p.Status = &domain.Status{ID: *u.StatusID, Name: statusNames[*u.StatusID]}
	}
	if u.ConferenceID != nil {
		p.ConferenceID = *u.ConferenceID
	}
	return nil
}

func (f *fakePresentationRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := f.byID[id]; !ok {
		return 0, nil
	}
	delete(f.byID, id)
	return 1, nil
}

var statusNames = map[int64]string{1: domain.StatusSubmitted, 2: domain.StatusApproved, 3: domain.StatusRejected}

type fakeStatusRepo struct{}

func (fakeStatusRepo) GetByName(ctx context.Context, name string) (*domain.Status, error) {
	for id, n := range statusNames {
		if n == name {
			return &domain.Status{ID: id, Name: n}, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeLocationRepo is an in-memory LocationRepository.
type fakeLocationRepo struct {
	byID   map[int64]*domain.Location
	nextID int64
}

func newFakeLocationRepo(ls ...*domain.Location) *fakeLocationRepo {
	f := &fakeLocationRepo{byID: map[int64]*domain.Location{}, nextID: 1}
	for _, l := range ls {
		f.byID[l.ID] = l
		if l.ID >= f.nextID {
			f.nextID = l.ID + 1
		}
	}
	return f
}

func (f *fakeLocationRepo) Create(ctx context.Context, l *domain.Location) error {
	l.ID = f.nextID
	f.nextID++
	cp := *l
	f.byID[l.ID] = &cp
	return nil
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLocationRepo) List(ctx context.Context) ([]*domain.Location, error) {
	out := make([]*domain.Location, 0, len(f.byID))
	for _, l := range f.byID {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeLocationRepo) snapshot() func() {
	byID, nextID := make(map[int64]*domain.Location, len(f.byID)), f.nextID
	for id, l := range f.byID {
		cp := *l
		byID[id] = &cp
	}
	return func() { f.byID, f.nextID = byID, nextID }
}

func (f *fakeLocationRepo) Update(ctx context.Context, id int64, u domain.LocationUpdate) error {
	l := f.byID[id]
	if u.Name != nil {
		l.Name = *u.Name
	}
	if u.City != nil {
		l.City = *u.City
	}
	if u.StateID != nil {
		l.StateID = *u.StateID
	}
	return nil
}

func (f *fakeLocationRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := f.byID[id]; !ok {
		return 0, nil
	}
	delete(f.byID, id)
	return 1, nil
}

type fakeStateRepo struct{}

var testStates = []*domain.State{
	{ID: 6, Name: "Colorado", Abbreviation: "CO"},
	{ID: 44, Name: "Texas", Abbreviation: "TX"},
}

func (fakeStateRepo) GetByAbbreviation(ctx context.Context, abbreviation string) (*domain.State, error) {
	for _, s := range testStates {
		if s.Abbreviation == strings.ToUpper(abbreviation) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeEmailService records the decisions it was asked to send.
type fakeEmailService struct {
	approved []*domain.PresentationDecisionEmailData
	rejected []*domain.PresentationDecisionEmailData
	err      error
}

func (f *fakeEmailService) SendPresentationApproved(ctx context.Context, data *domain.PresentationDecisionEmailData) error {
	f.approved = append(f.approved, data)
	return f.err
}

func (f *fakeEmailService) SendPresentationRejected(ctx context.Context, data *domain.PresentationDecisionEmailData) error {
	f.rejected = append(f.rejected, data)
	return f.err
}
