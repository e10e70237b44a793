// Package settings gives typed access to the settings the application
// stores in the document database. Each known key has a fixed schema; the
// store itself only sees JSON.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jpl-au/anondocs/internal/store"
)

// AppKey is the settings key holding App.
const AppKey = "appSettings"

// Themes accepted by App.Theme.
var Themes = []string{"light", "dark"}

var (
	// ErrUnknownField is returned when getting/setting an unknown field.
	ErrUnknownField = errors.New("unknown setting")
	// ErrInvalidValue is returned when a setting value is invalid.
	ErrInvalidValue = errors.New("invalid setting value")
)

// App holds application preferences.
type App struct {
	Theme            string `json:"theme"`
	AutoLock         bool   `json:"autoLock"`
	AutoLockTime     int    `json:"autoLockTime"` // minutes
	BiometricEnabled bool   `json:"biometricEnabled"`
}

// Defaults returns the settings used before anything is saved.
func Defaults() App {
	return App{Theme: "light", AutoLock: false, AutoLockTime: 5, BiometricEnabled: false}
}

// Validate checks field values.
func (a App) Validate() error {
	if !slices.Contains(Themes, a.Theme) {
		return fmt.Errorf("%w: theme must be one of %s, got %q", ErrInvalidValue, strings.Join(Themes, ", "), a.Theme)
	}
	if a.AutoLockTime < 1 {
		return fmt.Errorf("%w: autoLockTime must be at least 1 minute, got %d", ErrInvalidValue, a.AutoLockTime)
	}
	return nil
}

// Load reads App from s. Missing fields keep their defaults. A degraded read
// or an unset key yields Defaults with degraded reporting which.
func Load(ctx context.Context, s store.Settings) (app App, degraded bool, err error) {
	app = Defaults()
	res, err := s.Setting(ctx, AppKey)
	if err != nil {
		return app, false, err
	}
	if res.Degraded {
		return app, true, nil
	}
	if res.Value == nil {
		return app, false, nil
	}
	if err := json.Unmarshal(res.Value, &app); err != nil {
		return Defaults(), false, fmt.Errorf("decode %s: %w", AppKey, err)
	}
	return app, false, nil
}

// Save validates and stores App.
func Save(ctx context.Context, s store.Settings, app App) error {
	if err := app.Validate(); err != nil {
		return err
	}
	return s.PutSetting(ctx, AppKey, app)
}

// Fields returns the settable field names.
func Fields() []string {
	return []string{"theme", "autoLock", "autoLockTime", "biometricEnabled"}
}

// Get returns a field as a string.
func (a App) Get(field string) (string, error) {
	switch field {
	case "theme":
		return a.Theme, nil
	case "autoLock":
		return strconv.FormatBool(a.AutoLock), nil
	case "autoLockTime":
		return strconv.Itoa(a.AutoLockTime), nil
	case "biometricEnabled":
		return strconv.FormatBool(a.BiometricEnabled), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
}

// Set parses value into a field.
func (a *App) Set(field, value string) error {
	switch field {
	case "theme":
		a.Theme = value
	case "autoLock", "biometricEnabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, field)
		}
		if field == "autoLock" {
			a.AutoLock = b
		} else {
			a.BiometricEnabled = b
		}
	case "autoLockTime":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: autoLockTime must be an integer", ErrInvalidValue)
		}
		a.AutoLockTime = n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return a.Validate()
}

// All returns every field as a string map.
func (a App) All() map[string]string {
	out := make(map[string]string, 4)
	for _, f := range Fields() {
		out[f], _ = a.Get(f)
	}
	return out
}
