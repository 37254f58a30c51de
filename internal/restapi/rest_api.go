package restapi

import (
	"time"

	"github.com/vnsites/sitemap/internal/app"
)

type RestAPI struct {
	*app.Application
	limiter *keyLimiter
}

// NewRestAPI creates a RestAPI that allows Config.RateLimit requests per
// second for each api key.
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		limiter: newKeyLimiter(RateLimitConfig{
			Requests: app.Config.RateLimit,
			Interval: time.Second,
		}),
	}
}

// Shutdown releases the rate limiter's background sweep.
func (api *RestAPI) Shutdown() {
	if api.limiter != nil {
		api.limiter.Stop()
	}
}
