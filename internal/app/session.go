package app

import (
	"context"
	"encoding/json"
	"strconv"

	"pet-qr-tags/internal/domain/lostmode"
	"pet-qr-tags/internal/domain/navigation"
	"pet-qr-tags/internal/domain/users"
	"pet-qr-tags/internal/platform/apperr"
)

// Claves del cache por dispositivo.
const (
	keyVersion    = "app_version"
	keyTheme      = "theme"
	keyUser       = "current_user"
	keyNav        = "nav_state"
	keyDraft      = "lost_draft"
	keyScanNotice = "scan_notice_shown"
)

// Theme del cliente.
// @Enum light, dark
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool { return t == ThemeLight || t == ThemeDark }

// Session es el estado de un dispositivo. El Profile Store sigue siendo la
// copia durable: User se refresca desde ahí en cada carga.
type Session struct {
	Version string
	Theme   Theme
	User    *users.User
	Nav     navigation.State
	Draft   *lostmode.Draft

	ScanNoticeShown bool
}

func (s *Service) loadSession(ctx context.Context, device string) (Session, error) {
	values, err := s.sessions.Get(ctx, device)
	if err != nil {
		return Session{}, apperr.Store(err)
	}

	sess := Session{
		Version: values[keyVersion],
		Theme:   Theme(values[keyTheme]),
	}
	if !sess.Theme.Valid() {
		sess.Theme = ThemeLight
	}
	sess.ScanNoticeShown, _ = strconv.ParseBool(values[keyScanNotice])

	if raw := values[keyUser]; raw != "" {
		var u users.User
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			sess.User = &u
		} else {
			s.log.Warn("discarding unreadable session user", map[string]any{"device_id": device, "error": err.Error()})
		}
	}
	if raw := values[keyNav]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &sess.Nav); err != nil {
			sess.Nav = navigation.State{}
		}
	}
	if raw := values[keyDraft]; raw != "" {
		var d lostmode.Draft
		if err := json.Unmarshal([]byte(raw), &d); err == nil {
			sess.Draft = &d
		}
	}
	return sess, nil
}

// saveSession escribe todo el estado; los punteros nil se borran.
func (s *Service) saveSession(ctx context.Context, device string, sess Session) error {
	values := map[string]string{
		keyVersion:    sess.Version,
		keyTheme:      string(sess.Theme),
		keyScanNotice: strconv.FormatBool(sess.ScanNoticeShown),
	}
	var drop []string

	nav, err := json.Marshal(sess.Nav)
	if err != nil {
		return err
	}
	values[keyNav] = string(nav)

	if sess.User != nil {
		b, err := json.Marshal(sess.User)
		if err != nil {
			return err
		}
		values[keyUser] = string(b)
	} else {
		drop = append(drop, keyUser)
	}

	if sess.Draft != nil {
		b, err := json.Marshal(sess.Draft)
		if err != nil {
			return err
		}
		values[keyDraft] = string(b)
	} else {
		drop = append(drop, keyDraft)
	}

	if err := s.sessions.Set(ctx, device, values); err != nil {
		return apperr.Store(err)
	}
	if len(drop) > 0 {
		if err := s.sessions.Del(ctx, device, drop...); err != nil {
			return apperr.Store(err)
		}
	}
	return nil
}
