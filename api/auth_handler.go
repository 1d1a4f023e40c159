package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/shoplungu/checkout"
	"github.com/raushankrgupta/shoplungu/models"
	"github.com/raushankrgupta/shoplungu/store"
	"github.com/raushankrgupta/shoplungu/utils"
)

const minPasswordLength = 6

// LoginRequest represents the payload for the mock login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req LoginRequest) validate() checkout.FieldErrors {
	errs := checkout.FieldErrors{}
	switch {
	case strings.TrimSpace(req.Email) == "":
		errs["email"] = "Email is required"
	case !utils.ValidateEmail(req.Email):
		errs["email"] = "Please enter a valid email address"
	}
	switch {
	case req.Password == "":
		errs["password"] = "Password is required"
	case len(req.Password) < minPasswordLength:
		errs["password"] = fmt.Sprintf("Password must be at least %d characters", minPasswordLength)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateRegistration(reg models.Registration) checkout.FieldErrors {
	errs := LoginRequest{Email: reg.Email, Password: reg.Password}.validate()
	if errs == nil {
		errs = checkout.FieldErrors{}
	}
	if strings.TrimSpace(reg.FirstName) == "" {
		errs["first_name"] = "First name is required"
	}
	if strings.TrimSpace(reg.LastName) == "" {
		errs["last_name"] = "Last name is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func respondFieldErrors(w http.ResponseWriter, logMessageBuilder *strings.Builder, errs checkout.FieldErrors) {
	utils.AddToLogMessage(logMessageBuilder, errs.Error())
	utils.RespondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"error":  "Please correct the highlighted fields",
		"errors": errs,
	})
}

func authState(a *store.Auth) map[string]interface{} {
	resp := map[string]interface{}{"is_authenticated": a.IsAuthenticated()}
	if user, ok := a.CurrentUser(); ok {
		resp["user"] = user
	}
	return resp
}

// LoginHandler signs the session in with the demo credential
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(h.Logger, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Login API]")

	sess, err := GetSessionFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusInternalServerError)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}
	if errs := req.validate(); errs != nil {
		respondFieldErrors(w, &logMessageBuilder, errs)
		return
	}

	var ok bool
	var resp map[string]interface{}
	err = sess.Auth.Update(r.Context(), func(a *store.Auth) {
		ok = a.Login(strings.TrimSpace(req.Email), req.Password)
		resp = authState(a)
	})
	if !ok {
		utils.RespondError(w, &logMessageBuilder, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to persist auth: %v", err))
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Login successful for %s", req.Email))
	utils.RespondJSON(w, http.StatusOK, resp)
}

// RegisterHandler signs the session in as a new user built from the form
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(h.Logger, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Register API]")

	sess, err := GetSessionFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusInternalServerError)
		return
	}

	var reg models.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}
	if errs := validateRegistration(reg); errs != nil {
		respondFieldErrors(w, &logMessageBuilder, errs)
		return
	}

	var resp map[string]interface{}
	if err := sess.Auth.Update(r.Context(), func(a *store.Auth) {
		a.Register(reg)
		resp = authState(a)
	}); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to persist auth: %v", err))
	}
	utils.RespondJSON(w, http.StatusCreated, resp)
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(h.Logger, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Logout API]")

	sess, err := GetSessionFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := sess.Auth.Update(r.Context(), func(a *store.Auth) { a.Logout() }); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to persist auth: %v", err))
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"is_authenticated": false})
}

// ProfileHandler returns (GET) or replaces (PUT) the signed-in user
func (h *Handler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(h.Logger, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Profile API]")

	sess, err := GetSessionFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusInternalServerError)
		return
	}

	var current models.User
	var signedIn bool
	sess.Auth.View(func(a *store.Auth) {
		current, signedIn = a.CurrentUser()
		signedIn = signedIn && a.IsAuthenticated()
	})
	if !signedIn {
		utils.RespondError(w, &logMessageBuilder, "Please sign in to view your profile", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"user": current})

	case http.MethodPut:
		var user models.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
			return
		}
		errs := checkout.FieldErrors{}
		if strings.TrimSpace(user.FirstName) == "" {
			errs["first_name"] = "First name is required"
		}
		if !utils.ValidateEmail(user.Email) {
			errs["email"] = "Please enter a valid email address"
		}
		if user.Phone != "" && !utils.ValidatePhone(user.Phone) {
			errs["phone"] = "Invalid phone number"
		}
		if len(errs) > 0 {
			respondFieldErrors(w, &logMessageBuilder, errs)
			return
		}

		// the id belongs to the session, not the form
		user.ID = current.ID
		if err := sess.Auth.Update(r.Context(), func(a *store.Auth) { a.UpdateUser(user) }); err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to persist auth: %v", err))
		}
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"user": user})

	default:
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
