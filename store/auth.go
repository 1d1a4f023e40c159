package store

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/raushankrgupta/shoplungu/models"
	"golang.org/x/crypto/bcrypt"
)

// Credential is the single email/password pair the mock login accepts, and the
// profile it signs in as.
type Credential struct {
	Email        string
	PasswordHash []byte
	Profile      models.User
}

const (
	demoEmail    = "admin@shoplungu.com"
	demoPassword = "admin123"
)

var (
	demoHashOnce sync.Once
	demoHash     []byte
)

// DemoCredential returns the built-in admin credential. An empty email or hash
// falls back to the built-in values.
func DemoCredential(email string, passwordHash []byte) Credential {
	if email == "" {
		email = demoEmail
	}
	if len(passwordHash) == 0 {
		demoHashOnce.Do(func() {
			demoHash, _ = bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
		})
		passwordHash = demoHash
	}
	return Credential{
		Email:        email,
		PasswordHash: passwordHash,
		Profile: models.User{
			ID:        "1",
			FirstName: "Admin",
			LastName:  "User",
			Email:     email,
			Phone:     "+966 11 123 4567",
			Address: &models.Address{
				Street:  "123 Admin Street",
				City:    "Riyadh",
				State:   "Riyadh Province",
				ZipCode: "11564",
				Country: "Saudi Arabia",
			},
		},
	}
}

// Auth owns the mock session: zero or one signed-in user
type Auth struct {
	credential    Credential
	user          *models.User
	authenticated bool
	now           func() time.Time
}

func NewAuth(credential Credential) *Auth {
	return &Auth{credential: credential, now: time.Now}
}

// Login signs in when email and password match the configured credential.
// Any other input returns false and leaves the session as it was.
func (a *Auth) Login(email, password string) bool {
	if email != a.credential.Email {
		return false
	}
	if bcrypt.CompareHashAndPassword(a.credential.PasswordHash, []byte(password)) != nil {
		return false
	}
	user := a.credential.Profile
	a.user = &user
	a.authenticated = true
	return true
}

// Register always succeeds and signs in a user built from the form, with an id
// taken from the current time in milliseconds.
func (a *Auth) Register(reg models.Registration) models.User {
	user := models.User{
		ID:        strconv.FormatInt(a.now().UnixMilli(), 10),
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Email:     reg.Email,
	}
	a.user = &user
	a.authenticated = true
	return user
}

func (a *Auth) Logout() {
	a.user = nil
	a.authenticated = false
}

// UpdateUser replaces the session user wholesale
func (a *Auth) UpdateUser(user models.User) {
	a.user = &user
}

func (a *Auth) CurrentUser() (models.User, bool) {
	if a.user == nil {
		return models.User{}, false
	}
	return *a.user, true
}

func (a *Auth) IsAuthenticated() bool {
	return a.authenticated
}

type authSnapshot struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"is_authenticated"`
}

func (a *Auth) MarshalSnapshot() ([]byte, error) {
	return json.Marshal(authSnapshot{User: a.user, IsAuthenticated: a.authenticated})
}

func (a *Auth) UnmarshalSnapshot(data []byte) error {
	var snap authSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	a.user = snap.User
	a.authenticated = snap.IsAuthenticated
	return nil
}
