package util

import (
	"codequest_backend/internal/config"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionUserIDKey = "user_id"
	sessionEmailKey  = "email"
)

// SessionManager 基于 Cookie 的会话，仅保存用户 ID 与邮箱
type SessionManager struct {
	Store sessions.Store
	Name  string
}

func NewSessionManager(cfg config.SessionConfig) *SessionManager {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     cfg.Path,
		MaxAge:   cfg.MaxAge,
		HttpOnly: cfg.HttpOnly,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	name := cfg.Name
	if name == "" {
		name = "session"
	}

	return &SessionManager{Store: store, Name: name}
}

// UserID 读取会话中的用户 ID；会话无效或未登录时返回 false
func (m *SessionManager) UserID(r *http.Request) (string, string, bool) {
	session, err := m.Store.Get(r, m.Name)
	if err != nil {
		return "", "", false
	}

	userID, _ := session.Values[sessionUserIDKey].(string)
	email, _ := session.Values[sessionEmailKey].(string)
	return userID, email, userID != ""
}

func (m *SessionManager) Login(w http.ResponseWriter, r *http.Request, userID, email string) error {
	session, _ := m.Store.Get(r, m.Name)
	session.Values[sessionUserIDKey] = userID
	session.Values[sessionEmailKey] = email
	return session.Save(r, w)
}

func (m *SessionManager) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.Store.Get(r, m.Name)
	session.Values = map[interface{}]interface{}{}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// SetValue / PopValue 用于 OAuth state 等一次性数据
func (m *SessionManager) SetValue(w http.ResponseWriter, r *http.Request, key, value string) error {
	session, _ := m.Store.Get(r, m.Name)
	session.Values[key] = value
	return session.Save(r, w)
}

func (m *SessionManager) PopValue(w http.ResponseWriter, r *http.Request, key string) (string, error) {
	session, _ := m.Store.Get(r, m.Name)
	value, _ := session.Values[key].(string)
	delete(session.Values, key)
	return value, session.Save(r, w)
}
