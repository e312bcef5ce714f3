package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/sukhmal/RummyScorer-sub000/internal/app"
	"github.com/sukhmal/RummyScorer-sub000/internal/config"
)

// InitModule loads the rules config and registers the scorer RPCs.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	path := env[EnvRulesConfigPath]
	if path == "" {
		path = defaultRulesConfigPath
	}
	if err := config.LoadRulesConfig(path); err != nil {
		logger.Warn("InitModule: Could not load rules config, using defaults: %v", err)
	}

	if secret := env[EnvShareSecret]; secret != "" {
		issuer := env[EnvShareIssuer]
		if issuer == "" {
			issuer = defaultShareIssuer
		}
		shareService = app.NewShareService(secret, issuer, config.GetShareTokenTTL())
	} else {
		logger.Warn("InitModule: %s is not set, scoreboard sharing is disabled.", EnvShareSecret)
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	logger.Info("Rummy scorer module loaded.")
	return nil
}
