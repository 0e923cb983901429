// Package wifi provides the Wi-Fi QR code generator feature for the UI.
package wifi

import (
	"strconv"

	"github.com/leapstack-labs/pingerdash/internal/wifi"
)

// Signals is the state posted by the generator form.
type Signals struct {
	Wifi FormSignals `json:"wifi"`
}

// FormSignals mirrors the generator inputs.
type FormSignals struct {
	SSID     string `json:"ssid"`
	Auth     string `json:"auth"`
	Password string `json:"password"`
	Hidden   bool   `json:"hidden"`
}

// DefaultSignals is the empty form with the first authentication type selected.
func DefaultSignals() Signals {
	return Signals{Wifi: FormSignals{Auth: string(wifi.Auths[0])}}
}

// Credentials validates the form. An unset auth selects the default type.
func (f FormSignals) Credentials() (wifi.Credentials, error) {
	auth := wifi.Auths[0]
	if f.Auth != "" {
		a, err := wifi.ParseAuth(f.Auth)
		if err != nil {
			return wifi.Credentials{}, err
		}
		auth = a
	}
	creds := wifi.Credentials{
		SSID:     f.SSID,
		Auth:     auth,
		Password: f.Password,
		Hidden:   f.Hidden,
	}
	if !auth.RequiresPassword() {
		creds.Password = ""
	}
	return creds, creds.Validate()
}

// formSignals reads the plain form posted by the download button.
func formSignals(get func(string) string) FormSignals {
	hidden, _ := strconv.ParseBool(get("hidden"))
	return FormSignals{
		SSID:     get("ssid"),
		Auth:     get("auth"),
		Password: get("password"),
		Hidden:   hidden,
	}
}
