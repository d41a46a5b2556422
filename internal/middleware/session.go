package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"

	"kalakrutiassociates.com/web/internal/inquiry"
	"kalakrutiassociates.com/web/internal/observability"
)

const (
	sessionCookieName = "KALAKRUTI_WEB_SESSION"
	sessionLifetime   = 30 * 24 * time.Hour
)

// ErrSessionConfig is returned when the session codec cannot be built.
var ErrSessionConfig = errors.New("session: invalid config")

// SessionData is the payload carried in the signed session cookie.
type SessionData struct {
	ID        string            `json:"id"`
	CSRFToken string            `json:"csrf,omitempty"`
	Inquiry   *inquiry.Snapshot `json:"inq,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	// internal dirty flag; not serialized
	dirty bool `json:"-"`
}

// SessionConfig controls the cookie codec.
type SessionConfig struct {
	// HashKey signs the cookie. Empty generates a process-ephemeral key.
	HashKey []byte
	// Secure marks the cookie Secure (production).
	Secure bool
	Now    func() time.Time
	Logger *zap.Logger
}

// Sessions loads and persists SessionData through a signed cookie.
type Sessions struct {
	codec  *securecookie.SecureCookie
	secure bool
	now    func() time.Time
}

// NewSessions builds the session middleware.
func NewSessions(cfg SessionConfig) (*Sessions, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	key := cfg.HashKey
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, fmt.Errorf("%w: could not generate signing key", ErrSessionConfig)
		}
		log.Warn("session: using ephemeral signing key; set KALAKRUTI_WEB_SESSION_KEY for production")
	}
	if len(key) < 16 {
		return nil, fmt.Errorf("%w: signing key shorter than 16 bytes", ErrSessionConfig)
	}
	codec := securecookie.New(key, nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(sessionLifetime.Seconds()))

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Sessions{codec: codec, secure: cfg.Secure, now: now}, nil
}

// Handler loads or initializes a session and stores it in request context.
// A changed session is written back just before the response starts.
func (s *Sessions) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd, fromCookie := s.read(r)
		if sd.ID == "" {
			sd.ID = randID()
			sd.CreatedAt = s.now().UTC()
			sd.UpdatedAt = sd.CreatedAt
			sd.CSRFToken = newCSRFToken()
			sd.dirty = true
		}
		ctx := context.WithValue(r.Context(), ctxKeySession, sd)

		rw := NewResponseRecorder(w)
		persist := func(w http.ResponseWriter) {
			if sd.dirty || !fromCookie {
				if err := s.write(w, sd); err != nil {
					observability.FromContext(ctx).Error("session: encode", zap.Error(err))
				}
			}
		}
		rw.SetBeforeWrite(persist)
		next.ServeHTTP(rw, r.WithContext(ctx))
		// If nothing was written yet (e.g., HEAD), persist cookie now
		if !rw.Wrote() {
			persist(w)
		}
	})
}

// GetSession returns session data from context
func GetSession(r *http.Request) *SessionData {
	if v := r.Context().Value(ctxKeySession); v != nil {
		if sd, ok := v.(*SessionData); ok {
			return sd
		}
	}
	return &SessionData{}
}

// MarkDirty flags the session for writing at end of request
func (s *SessionData) MarkDirty() { s.dirty = true; s.UpdatedAt = time.Now().UTC() }

// SetInquiry stores the contact form state for the next request.
func (s *SessionData) SetInquiry(snap inquiry.Snapshot) {
	s.Inquiry = &snap
	s.MarkDirty()
}

// InquirySnapshot returns the stored contact form state, idle when absent.
func (s *SessionData) InquirySnapshot() inquiry.Snapshot {
	if s.Inquiry == nil {
		return inquiry.Snapshot{Status: inquiry.StatusIdle.String()}
	}
	return *s.Inquiry
}

func (s *Sessions) read(r *http.Request) (*SessionData, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return &SessionData{}, false
	}
	var sd SessionData
	if err := s.codec.Decode(sessionCookieName, c.Value, &sd); err != nil {
		return &SessionData{}, false
	}
	return &sd, true
}

func (s *Sessions) write(w http.ResponseWriter, sd *SessionData) error {
	val, err := s.codec.Encode(sessionCookieName, sd)
	if err != nil {
		return err
	}
	// httpOnly to prevent JS access
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    val,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionLifetime.Seconds()),
		Expires:  s.now().Add(sessionLifetime),
	})
	return nil
}

// helpers
func randID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
