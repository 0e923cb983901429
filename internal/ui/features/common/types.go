package common

// Tab is one entry of the top navigation.
type Tab struct {
	Label  string
	Href   string
	Active bool
}

// Tabs returns the navigation with the tab at path marked active.
func Tabs(path string) []Tab {
	tabs := []Tab{
		{Label: "Pinger Results", Href: "/results"},
		{Label: "Wi-Fi QR Code Generator", Href: "/wifi"},
	}
	for i := range tabs {
		tabs[i].Active = tabs[i].Href == path
	}
	return tabs
}
