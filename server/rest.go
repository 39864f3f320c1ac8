package server

import (
	"encoding/json"
	"net/http"

	"github.com/c360/memberhub/errors"
	"github.com/c360/memberhub/service"
)

// subscriptionBody is the request body of the subscribe endpoints; userId
// names the author being followed or unfollowed
type subscriptionBody struct {
	UserID string `json:"userId"`
}

// registerRESTRoutes mounts the entity CRUD surface. Member types expose no
// create or delete; the tier set is fixed.
func (s *Server) registerRESTRoutes() {
	handle := func(pattern, route string, fn http.HandlerFunc) {
		s.mux.Handle(pattern, s.instrument(route, fn))
	}

	handle("GET /users", "/users", s.listUsers)
	handle("POST /users", "/users", s.createUser)
	handle("GET /users/{id}", "/users/{id}", s.getUser)
	handle("PATCH /users/{id}", "/users/{id}", s.updateUser)
	handle("DELETE /users/{id}", "/users/{id}", s.deleteUser)
	handle("POST /users/{id}/subscribeTo", "/users/{id}/subscribeTo", s.subscribeTo)
	handle("POST /users/{id}/unsubscribeFrom", "/users/{id}/unsubscribeFrom", s.unsubscribeFrom)

	handle("GET /posts", "/posts", s.listPosts)
	handle("POST /posts", "/posts", s.createPost)
	handle("GET /posts/{id}", "/posts/{id}", s.getPost)
	handle("PATCH /posts/{id}", "/posts/{id}", s.updatePost)
	handle("DELETE /posts/{id}", "/posts/{id}", s.deletePost)

	handle("GET /profiles", "/profiles", s.listProfiles)
	handle("POST /profiles", "/profiles", s.createProfile)
	handle("GET /profiles/{id}", "/profiles/{id}", s.getProfile)
	handle("PATCH /profiles/{id}", "/profiles/{id}", s.updateProfile)
	handle("DELETE /profiles/{id}", "/profiles/{id}", s.deleteProfile)

	handle("GET /member-types", "/member-types", s.listMemberTypes)
	handle("GET /member-types/{id}", "/member-types/{id}", s.getMemberType)
	handle("PATCH /member-types/{id}", "/member-types/{id}", s.updateMemberType)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.Users.FindAll(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, users)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var input service.CreateUserInput
	if !s.decodeBody(w, r, &input) {
		return
	}
	user, err := s.service.CreateUser(r.Context(), input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, user)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	user, found, err := s.store.Users.FindByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !found {
		s.writeMessage(w, http.StatusNotFound, "user not found")
		return
	}
	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateUserInput
	if !s.decodeBody(w, r, &input) {
		return
	}
	user, err := s.service.UpdateUser(r.Context(), r.PathValue("id"), input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.service.DeleteUser(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) subscribeTo(w http.ResponseWriter, r *http.Request) {
	var body subscriptionBody
	if !s.decodeBody(w, r, &body) {
		return
	}
	user, err := s.service.SubscribeTo(r.Context(), r.PathValue("id"), body.UserID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) unsubscribeFrom(w http.ResponseWriter, r *http.Request) {
	var body subscriptionBody
	if !s.decodeBody(w, r, &body) {
		return
	}
	user, err := s.service.UnsubscribeFrom(r.Context(), r.PathValue("id"), body.UserID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.Posts.FindAll(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, posts)
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	var input service.CreatePostInput
	if !s.decodeBody(w, r, &input) {
		return
	}
	post, err := s.service.CreatePost(r.Context(), input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, post)
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	post, found, err := s.store.Posts.FindByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !found {
		s.writeMessage(w, http.StatusNotFound, "post not found")
		return
	}
	s.writeJSON(w, http.StatusOK, post)
}

func (s *Server) updatePost(w http.ResponseWriter, r *http.Request) {
	var input service.UpdatePostInput
	if !s.decodeBody(w, r, &input) {
		return
	}
	post, err := s.service.UpdatePost(r.Context(), r.PathValue("id"), input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, post)
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	post, err := s.service.DeletePost(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, post)
}

func (s *Server) listProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.store.Profiles.FindAll(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profiles)
}

func (s *Server) createProfile(w http.ResponseWriter, r *http.Request) {
	var input service.CreateProfileInput
	if !s.decodeBody(w, r, &input) {
		return
	}
	profile, err := s.service.CreateProfile(r.Context(), input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, profile)
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, found, err := s.store.Profiles.FindByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !found {
		s.writeMessage(w, http.StatusNotFound, "profile not found")
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateProfileInput
	if !s.decodeBody(w, r, &input) {
		return
	}
	profile, err := s.service.UpdateProfile(r.Context(), r.PathValue("id"), input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) deleteProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.service.DeleteProfile(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) listMemberTypes(w http.ResponseWriter, r *http.Request) {
	tiers, err := s.store.MemberTypes.FindAll(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tiers)
}

func (s *Server) getMemberType(w http.ResponseWriter, r *http.Request) {
	tier, found, err := s.store.MemberTypes.FindByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !found {
		s.writeMessage(w, http.StatusNotFound, "member type not found")
		return
	}
	s.writeJSON(w, http.StatusOK, tier)
}

func (s *Server) updateMemberType(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateMemberTypeInput
	if !s.decodeBody(w, r, &input) {
		return
	}
	tier, err := s.service.UpdateMemberType(r.Context(), r.PathValue("id"), input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tier)
}

// decodeBody decodes a JSON request body, writing a 400 on failure
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		s.writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// writeError maps a domain error to an HTTP status. The not-found check runs
// before the broader invalid class it belongs to.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsNotFound(err):
		status = http.StatusNotFound
	case errors.IsConflict(err), errors.IsInvalid(err):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeMessage(w, status, err.Error())
}

func (s *Server) writeMessage(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"message": message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("response encoding failed", "error", err)
	}
}
