package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Varun5711/devconnect/internal/events"
	"github.com/Varun5711/devconnect/internal/github"
	"github.com/Varun5711/devconnect/internal/logger"
	"github.com/Varun5711/devconnect/internal/models/profile"
	"github.com/Varun5711/devconnect/internal/storage"
	"github.com/Varun5711/devconnect/internal/validation"
)

const (
	AllProfilesKey   = "profiles:all"
	profileKeyPrefix = "profile:user:"
)

type RepoFetcher interface {
	LatestRepos(ctx context.Context, username string) ([]github.Repo, error)
}

type ViewCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

type ProfileService struct {
	store  storage.Store
	cache  ViewCache
	repos  RepoFetcher
	events EventPublisher
	log    *logger.Logger
	now    func() time.Time
}

// NewProfileService builds the profile manager. cache, repos and publisher
// may be nil.
func NewProfileService(store storage.Store, cache ViewCache, repos RepoFetcher, publisher EventPublisher, log *logger.Logger) *ProfileService {
	return &ProfileService{
		store:  store,
		cache:  cache,
		repos:  repos,
		events: publisher,
		log:    log,
		now:    time.Now,
	}
}

func ProfileCacheKey(userID string) string {
	return profileKeyPrefix + userID
}

// Upsert creates the caller's profile or merges patch into the existing one.
// Status and skills are required of the merged result, so an update may omit
// them once they are stored.
func (s *ProfileService) Upsert(ctx context.Context, userID string, patch *profile.Patch) (*profile.Profile, error) {
	p, err := s.store.GetProfileForUpdate(ctx, userID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		p = profile.New(userID, s.now().UTC())
	case err != nil:
		return nil, s.internal("get profile", err)
	}

	patch.Apply(p)

	var errs validation.Errors
	errs.Required("status", p.Status, "Status is required")
	if len(p.Skills) == 0 {
		errs.Add("skills", "Skills is required")
	}
	if patch.Handle.Set {
		errs.Check("handle", validation.ValidateHandle(patch.Handle.Value))
	}
	if !errs.Empty() {
		return nil, ValidationFailed(&errs)
	}

	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProfileService) GetMine(ctx context.Context, userID string) (*profile.View, error) {
	p, err := s.store.GetProfileByUserID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, NotFound(MsgNoProfile)
	}
	if err != nil {
		return nil, s.internal("get profile", err)
	}

	return s.enrich(ctx, p)
}

// GetByUserID is the public read. Ids that are not UUIDs are reported as
// missing profiles.
func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*profile.View, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, NotFound(MsgProfileNotFound)
	}

	var cached profile.View
	if s.cacheGet(ctx, ProfileCacheKey(userID), &cached) {
		return &cached, nil
	}

	p, err := s.store.GetProfileByUserID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, NotFound(MsgProfileNotFound)
	}
	if err != nil {
		return nil, s.internal("get profile", err)
	}

	view, err := s.enrich(ctx, p)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, ProfileCacheKey(userID), view)
	return view, nil
}

func (s *ProfileService) List(ctx context.Context) ([]profile.View, error) {
	var cached []profile.View
	if s.cacheGet(ctx, AllProfilesKey, &cached) {
		return cached, nil
	}

	profiles, err := s.store.ListProfiles(ctx)
	if err != nil {
		return nil, s.internal("list profiles", err)
	}

	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	owners, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, s.internal("load profile owners", err)
	}

	views := make([]profile.View, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, profile.NewView(p, owners[p.UserID]))
	}

	s.cacheSet(ctx, AllProfilesKey, views)
	return views, nil
}

// DeleteAccount removes the caller's profile and user as one operation.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID string) error {
	err := s.store.DeleteAccount(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return NotFound(MsgUserNotFound)
	}
	if err != nil {
		return s.internal("delete account", err)
	}

	s.invalidate(ctx, userID)
	publish(ctx, s.events, s.log, events.NewAccountEvent(events.AccountDeleted, userID))
	return nil
}

func (s *ProfileService) AddExperience(ctx context.Context, userID string, in *profile.ExperienceInput) (*profile.Profile, error) {
	var errs validation.Errors
	errs.Required("title", in.Title, "Title is required")
	errs.Required("company", in.Company, "Company is required")
	errs.Required("from", in.From, "From date is required")
	errs.Date("from", in.From, "From date must be a valid date")
	errs.Date("to", in.To, "To date must be a valid date")
	if !errs.Empty() {
		return nil, ValidationFailed(&errs)
	}

	p, err := s.mine(ctx, userID)
	if err != nil {
		return nil, err
	}

	from, to := parseRange(in.From, in.To)
	p.AddExperience(profile.Experience{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        from,
		To:          to,
		Current:     in.Current,
		Description: in.Description,
	})

	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveExperience drops the entry with expID. Unknown ids leave the
// profile untouched.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID string) (*profile.Profile, error) {
	p, err := s.mine(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !p.RemoveExperience(expID) {
		return p, nil
	}
	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProfileService) AddEducation(ctx context.Context, userID string, in *profile.EducationInput) (*profile.Profile, error) {
	var errs validation.Errors
	errs.Required("school", in.School, "School is required")
	errs.Required("degree", in.Degree, "Degree is required")
	errs.Required("fieldofstudy", in.FieldOfStudy, "Field of study is required")
	errs.Required("from", in.From, "From date is required")
	errs.Date("from", in.From, "From date must be a valid date")
	errs.Date("to", in.To, "To date must be a valid date")
	if !errs.Empty() {
		return nil, ValidationFailed(&errs)
	}

	p, err := s.mine(ctx, userID)
	if err != nil {
		return nil, err
	}

	from, to := parseRange(in.From, in.To)
	p.AddEducation(profile.Education{
		ID:           uuid.NewString(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      in.Current,
		Description:  in.Description,
	})

	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (*profile.Profile, error) {
	p, err := s.mine(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !p.RemoveEducation(eduID) {
		return p, nil
	}
	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProfileService) GitHubRepos(ctx context.Context, username string) ([]github.Repo, error) {
	if s.repos == nil || username == "" {
		return nil, s.noGithub()
	}

	repos, err := s.repos.LatestRepos(ctx, username)
	if errors.Is(err, github.ErrNotFound) {
		return nil, s.noGithub()
	}
	if err != nil {
		return nil, s.internal("fetch github repos", err)
	}
	return repos, nil
}

func (s *ProfileService) noGithub() *Error {
	e := NotFound(MsgNoGithubProfile)
	e.Flat = true
	return e
}

func (s *ProfileService) mine(ctx context.Context, userID string) (*profile.Profile, error) {
	p, err := s.store.GetProfileForUpdate(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, NotFound(MsgNoProfile)
	}
	if err != nil {
		return nil, s.internal("get profile", err)
	}
	return p, nil
}

func (s *ProfileService) save(ctx context.Context, p *profile.Profile) error {
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return s.internal("save profile", err)
	}
	s.invalidate(ctx, p.UserID)
	publish(ctx, s.events, s.log, events.NewAccountEvent(events.ProfileUpdated, p.UserID))
	return nil
}

// enrich joins the owner's public fields onto p.
func (s *ProfileService) enrich(ctx context.Context, p *profile.Profile) (*profile.View, error) {
	owner, err := s.store.GetUserByID(ctx, p.UserID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, s.internal("get profile owner", err)
	}
	view := profile.NewView(p, owner)
	return &view, nil
}

func (s *ProfileService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, ProfileCacheKey(userID), AllProfilesKey); err != nil {
		s.log.Warn("Failed to invalidate profile cache: %v", err)
	}
}

func (s *ProfileService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.GetJSON(ctx, key, dest)
	if err != nil {
		s.log.Warn("Profile cache read failed: %v", err)
		return false
	}
	return found
}

func (s *ProfileService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value); err != nil {
		s.log.Warn("Profile cache write failed: %v", err)
	}
}

func (s *ProfileService) internal(op string, err error) *Error {
	s.log.Error("%s failed: %v", op, err)
	return Internal(err)
}

// parseRange converts already-validated date strings.
func parseRange(from, to string) (time.Time, *time.Time) {
	f, _ := validation.ParseDate(from)
	if to == "" {
		return f, nil
	}
	t, _ := validation.ParseDate(to)
	return f, &t
}
