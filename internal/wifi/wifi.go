// Package wifi builds Wi-Fi network credential strings and renders them as
// QR code images that phones can scan to join the network.
package wifi

import (
	"errors"
	"fmt"
	"strings"
)

// Auth is the authentication type advertised in the credential string.
type Auth string

const (
	AuthWPA3 Auth = "WPA3-SAE"
	AuthWPA2 Auth = "WPA2-PSK"
	AuthOpen Auth = "OPEN"
)

// Auths lists the selectable authentication types in display order.
var Auths = []Auth{AuthWPA3, AuthWPA2, AuthOpen}

// ParseAuth matches s case-insensitively against the known types.
func ParseAuth(s string) (Auth, error) {
	for _, a := range Auths {
		if strings.EqualFold(strings.TrimSpace(s), string(a)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown authentication type %q (expected WPA3-SAE, WPA2-PSK or OPEN)", s)
}

// RequiresPassword reports whether the type needs a password.
func (a Auth) RequiresPassword() bool {
	return a != AuthOpen
}

// Validation errors. Their text is shown to the user verbatim.
//
//nolint:staticcheck // user-facing messages
var (
	ErrSSIDRequired     = errors.New("SSID is required!")
	ErrPasswordRequired = errors.New("Password is required for selected authentication!")
)

// Encode builds the credential string. Values are inserted verbatim.
func Encode(ssid string, auth Auth, password string, hidden bool) string {
	return fmt.Sprintf("WIFI:T:%s;S:%s;P:%s;H:%t;;", auth, ssid, password, hidden)
}

// Credentials is the network entered by the user.
type Credentials struct {
	SSID     string
	Auth     Auth
	Password string
	Hidden   bool
}

// Validate checks the preconditions of encoding. The SSID is checked first.
func (c Credentials) Validate() error {
	if c.SSID == "" {
		return ErrSSIDRequired
	}
	if c.Auth.RequiresPassword() && c.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// Payload returns the credential string. An open network never carries a password.
func (c Credentials) Payload() string {
	password := c.Password
	if !c.Auth.RequiresPassword() {
		password = ""
	}
	return Encode(c.SSID, c.Auth, password, c.Hidden)
}
