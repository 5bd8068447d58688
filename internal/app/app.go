package app

import (
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/soumyachk101/HealthTrack-Server/internal/config"
)

// Run wires the application and serves HTTP until the listener fails.
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.SentryEnvironment,
		}); err != nil {
			return err
		}
		defer sentry.Flush(2 * time.Second)
	}

	c, err := BuildContainer(cfg)
	if err != nil {
		return err
	}

	seedPolicies(c)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("listening")
	return http.ListenAndServe(addr, c.Router)
}

// seedPolicies installs the default admin grants on first run, when
// the policy table is empty.
func seedPolicies(c *Container) {
	policies, _ := c.Casbin.E.GetPolicy()
	if len(policies) > 0 {
		return
	}
	c.Casbin.E.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|DELETE)")
	if err := c.Casbin.E.SavePolicy(); err != nil {
		log.Warn().Err(err).Msg("casbin: failed to persist seeded policies")
		return
	}
	log.Info().Msg("casbin: seeded default policies")
}
