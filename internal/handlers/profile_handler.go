package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Varun5711/devconnect/internal/logger"
	"github.com/Varun5711/devconnect/internal/middleware"
	"github.com/Varun5711/devconnect/internal/models/profile"
	"github.com/Varun5711/devconnect/internal/service"
)

type ProfileHandler struct {
	profiles *service.ProfileService
	log      *logger.Logger
}

func NewProfileHandler(profiles *service.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		log:      log,
	}
}

func currentUser(r *http.Request) string {
	userID, _ := middleware.UserIDFromContext(r.Context())
	return userID
}

func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var patch profile.Patch
	if err := decodeJSON(r, &patch); err != nil {
		h.log.Debug("Failed to decode profile patch: %v", err)
		respondBadBody(w)
		return
	}

	p, err := h.profiles.Upsert(r.Context(), currentUser(r), &patch)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	view, err := h.profiles.GetMine(r.Context(), currentUser(r))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.profiles.List(r.Context())
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *ProfileHandler) GetByUserID(w http.ResponseWriter, r *http.Request) {
	view, err := h.profiles.GetByUserID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.profiles.DeleteAccount(r.Context(), currentUser(r)); err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, profile.DeleteResponse{Msg: service.MsgUserDeleted})
}

func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	var in profile.ExperienceInput
	if err := decodeJSON(r, &in); err != nil {
		respondBadBody(w)
		return
	}

	p, err := h.profiles.AddExperience(r.Context(), currentUser(r), &in)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.RemoveExperience(r.Context(), currentUser(r), chi.URLParam(r, "expID"))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	var in profile.EducationInput
	if err := decodeJSON(r, &in); err != nil {
		respondBadBody(w)
		return
	}

	p, err := h.profiles.AddEducation(r.Context(), currentUser(r), &in)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.RemoveEducation(r.Context(), currentUser(r), chi.URLParam(r, "eduID"))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) GitHubRepos(w http.ResponseWriter, r *http.Request) {
	repos, err := h.profiles.GitHubRepos(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, repos)
}
