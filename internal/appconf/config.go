package appconf

import (
	"time"

	"github.com/vnsites/sitemap/internal/route"
)

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps the -env flag value to an Environment.
// Unknown values fall back to Development.
func EnvFlagToEnvironment(env string) Environment {
	switch env {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// MapDefaults is the initial map viewport handed to the renderer.
type MapDefaults struct {
	// AccessToken is the public map token handed to the page, never to the API.
	AccessToken string `json:"-"`

	Style     string  `json:"style"`
	CenterLat float64 `json:"centerLat"`
	CenterLon float64 `json:"centerLon"`
	Zoom      float64 `json:"zoom"`
}

// DefaultMapDefaults centres the map on Vietnam.
func DefaultMapDefaults() MapDefaults {
	return MapDefaults{
		Style:     "mapbox://styles/mapbox/streets-v12",
		CenterLat: 16,
		CenterLon: 107,
		Zoom:      5,
	}
}

// Config holds all the configuration settings for our Application.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	RateLimit int
	Verbose   bool

	// StitchPolicy is the active connectivity policy for route lines. It has
	// no usable zero value and must be set from a named choice.
	StitchPolicy route.Policy
	Map          MapDefaults

	SitesSource     string
	RoutesSource    string
	DataPath        string
	RefreshInterval time.Duration
}
