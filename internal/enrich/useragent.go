package enrich

import "github.com/mileusna/useragent"

// Agent holds what user agent parsing could derive. Fields are empty when
// the parse was inconclusive; the visit logger normalizes them later.
type Agent struct {
	OS     string
	Device string
}

// ParseUserAgent derives OS and device class from a raw User-Agent header.
func ParseUserAgent(raw string) Agent {
	if raw == "" {
		return Agent{}
	}

	ua := useragent.Parse(raw)

	agent := Agent{OS: ua.OS}

	switch {
	case ua.Bot:
		agent.Device = "Bot"
	case ua.Mobile:
		agent.Device = "Mobile"
	case ua.Tablet:
		agent.Device = "Tablet"
	case ua.Desktop:
		agent.Device = "Desktop"
	}

	return agent
}
