// Package store persists the small per-user client state the browser SPA
// kept in local storage: theme, branding override, cached color palette.
// Nothing here shadows the CRM backend's data; losing this database loses
// preferences, not records.
package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Preference is one user's persisted UI state.
type Preference struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Theme    string `gorm:"size:20;default:'system'" json:"theme"`

	// Branding override, applied on top of the backend settings.
	LogoOverride string `gorm:"size:500" json:"logo_override,omitempty"`
	// Colors is the last palette, stored as a JSON object.
	Colors string `gorm:"type:text" json:"colors,omitempty"`
}

// ColorMap decodes the stored palette; nil when unset or malformed.
func (p Preference) ColorMap() map[string]string {
	if p.Colors == "" {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(p.Colors), &m); err != nil {
		return nil
	}
	return m
}

// SetColorMap encodes the palette for storage.
func (p *Preference) SetColorMap(m map[string]string) {
	if len(m) == 0 {
		p.Colors = ""
		return
	}
	buf, err := json.Marshal(m)
	if err != nil {
		return
	}
	p.Colors = string(buf)
}

// Open connects to the preferences database. URL or key=value DSNs open
// postgres; anything else is treated as a sqlite path.
func Open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") || strings.Contains(lower, "host=") {
		return gorm.Open(postgres.Open(dsn), cfg)
	}
	if dsn == "" {
		dsn = "file:salesdesk.db"
	}
	return gorm.Open(sqlite.Open(dsn), cfg)
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Preference{}); err != nil {
		return fmt.Errorf("migrate preferences: %w", err)
	}
	return nil
}

// Prefs is the data-access wrapper handlers use.
type Prefs struct {
	db *gorm.DB
}

// NewPrefs wraps a connected database.
func NewPrefs(db *gorm.DB) *Prefs { return &Prefs{db: db} }

// Get returns the user's preferences, creating a default row on first read.
func (p *Prefs) Get(username string) (Preference, error) {
	var pref Preference
	err := p.db.Where(Preference{Username: username}).
		Attrs(Preference{Theme: "system"}).
		FirstOrCreate(&pref).Error
	return pref, err
}

// Save upserts the user's preferences by username.
func (p *Prefs) Save(pref Preference) error {
	existing, err := p.Get(pref.Username)
	if err != nil {
		return err
	}
	pref.ID = existing.ID
	pref.CreatedAt = existing.CreatedAt
	return p.db.Save(&pref).Error
}

// SetTheme updates only the theme.
func (p *Prefs) SetTheme(username, theme string) error {
	pref, err := p.Get(username)
	if err != nil {
		return err
	}
	pref.Theme = theme
	return p.db.Save(&pref).Error
}

// SetBranding updates the logo override and cached palette.
func (p *Prefs) SetBranding(username, logo string, colors map[string]string) error {
	pref, err := p.Get(username)
	if err != nil {
		return err
	}
	if logo != "" {
		pref.LogoOverride = logo
	}
	pref.SetColorMap(colors)
	return p.db.Save(&pref).Error
}
