package api

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raushankrgupta/shoplungu/checkout"
	"github.com/raushankrgupta/shoplungu/models"
	"github.com/raushankrgupta/shoplungu/utils"
)

var contactCategories = map[string]bool{
	"general":     true,
	"order":       true,
	"return":      true,
	"technical":   true,
	"feedback":    true,
	"partnership": true,
}

// ContactHandler handles contact form submission
func (h *Handler) ContactHandler(w http.ResponseWriter, r *http.Request) {
	logMessageBuilder := strings.Builder{}
	utils.AddToLogMessage(&logMessageBuilder, "CONTACT_SUBMISSION")
	defer utils.FlushLogMessage(h.Logger, &logMessageBuilder)

	var msg models.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}

	errs := checkout.FieldErrors{}
	for field, value := range map[string]string{"name": msg.Name, "subject": msg.Subject, "message": msg.Message} {
		if strings.TrimSpace(value) == "" {
			errs[field] = fmt.Sprintf("%s%s is required", strings.ToUpper(field[:1]), field[1:])
		}
	}
	if !utils.ValidateEmail(msg.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if msg.Category == "" {
		msg.Category = "general"
	} else if !contactCategories[msg.Category] {
		errs["category"] = "Unknown category"
	}
	if len(errs) > 0 {
		respondFieldErrors(w, &logMessageBuilder, errs)
		return
	}

	// Simulated send
	if h.ContactDelay > 0 {
		select {
		case <-time.After(h.ContactDelay):
		case <-r.Context().Done():
			utils.AddToLogMessage(&logMessageBuilder, "Client went away")
			return
		}
	}

	msg.CreatedAt = time.Now()
	if h.Inbox != nil {
		data, err := json.Marshal(msg)
		if err == nil {
			err = h.Inbox.Put(r.Context(), "contact/"+uuid.New().String(), data)
		}
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, "Error saving message", http.StatusInternalServerError)
			return
		}
	}

	if h.Mailer.Enabled() && h.SupportEmail != "" {
		subject := fmt.Sprintf("[%s] %s", msg.Category, msg.Subject)
		text := fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message)
		body := fmt.Sprintf("<p>From: %s &lt;%s&gt;</p><p>%s</p>", html.EscapeString(msg.Name), html.EscapeString(msg.Email), html.EscapeString(msg.Message))
		if err := h.Mailer.SendEmail(r.Context(), "ShopLungu Support", h.SupportEmail, subject, text, body); err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to forward message: %v", err))
		}
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Message from %s filed under %s", msg.Email, msg.Category))
	utils.RespondJSON(w, http.StatusCreated, map[string]string{
		"message": "We've received your message and will get back to you within 24 hours.",
	})
}
