// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic used by the CLI and MCP interfaces, where config is
// addressed by dotted keys (e.g., "limits.max_content").
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero/false". Defaults only apply
// when the user hasn't set a value.

package config

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name",
		"share.base_url", "share.revoke_on_delete",
		"limits.max_title", "limits.max_content",
		"log.level",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "share.base_url":
		return c.BaseURL(), nil
	case "share.revoke_on_delete":
		return strconv.FormatBool(c.RevokeOnDelete()), nil
	case "limits.max_title":
		return strconv.Itoa(c.MaxTitle()), nil
	case "limits.max_content":
		return strconv.FormatInt(c.MaxContent(), 10), nil
	case "log.level":
		return c.LogLevel(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "share.base_url":
		if _, err := url.Parse(value); err != nil {
			return fmt.Errorf("%w: share.base_url: %w", ErrInvalidValue, err)
		}
		c.Share.BaseURL = value
	case "share.revoke_on_delete":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: share.revoke_on_delete must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.Share.RevokeOnDelete = &b
	case "limits.max_title":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinMaxTitle || n > MaxMaxTitle {
			return fmt.Errorf("%w: limits.max_title must be between %d and %d", ErrInvalidValue, MinMaxTitle, MaxMaxTitle)
		}
		c.Limits.MaxTitle = &n
	case "limits.max_content":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < MinMaxContent || n > MaxMaxContent {
			return fmt.Errorf("%w: limits.max_content must be between %d and %d", ErrInvalidValue, MinMaxContent, int64(MaxMaxContent))
		}
		c.Limits.MaxContent = &n
	case "log.level":
		v := strings.ToLower(value)
		if !slices.Contains(LogLevels, v) {
			return fmt.Errorf("%w: log.level must be one of %s", ErrInvalidValue, strings.Join(LogLevels, ", "))
		}
		c.Log.Level = v
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	out := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		out[k], _ = c.Get(k)
	}
	return out
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "share.base_url":
		return c.Share.BaseURL != ""
	case "share.revoke_on_delete":
		return c.Share.RevokeOnDelete != nil
	case "limits.max_title":
		return c.Limits.MaxTitle != nil
	case "limits.max_content":
		return c.Limits.MaxContent != nil
	case "log.level":
		return c.Log.Level != ""
	default:
		return false
	}
}
