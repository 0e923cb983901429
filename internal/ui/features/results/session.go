package results

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "pingerdash"
	recentKey   = "recent_devices"
	maxRecent   = 5
)

// recentDevices returns the devices looked up in this browser, newest first.
func recentDevices(store sessions.Store, r *http.Request) []string {
	if store == nil {
		return nil
	}
	// A cookie that fails to decode still yields a fresh session.
	session, _ := store.Get(r, sessionName)
	if session == nil {
		return nil
	}
	recent, _ := session.Values[recentKey].([]string)
	return recent
}

// rememberDevice moves id to the front of the recent list. It must run
// before any response header is written.
func rememberDevice(store sessions.Store, w http.ResponseWriter, r *http.Request, id string) error {
	if store == nil {
		return nil
	}
	session, _ := store.Get(r, sessionName)
	if session == nil {
		return nil
	}
	recent, _ := session.Values[recentKey].([]string)
	next := []string{id}
	for _, d := range recent {
		if d != id && len(next) < maxRecent {
			next = append(next, d)
		}
	}
	session.Values[recentKey] = next
	return session.Save(r, w)
}
