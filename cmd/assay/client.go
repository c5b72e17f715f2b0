// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/viper"

	"github.com/assaylabs/assay/internal/api"
	"github.com/assaylabs/assay/internal/config"
	"github.com/assaylabs/assay/internal/credential"
	"github.com/assaylabs/assay/internal/keyring"
	"github.com/assaylabs/assay/pkg/types"
)

// appContext bundles the stores and resolved config a command needs.
type appContext struct {
	Store    *config.Store
	Config   types.Config
	Secrets  keyring.Store
	Resolver *credential.Resolver
}

// newAppContext loads the config document and wires the vault adapter and
// credential resolver. ASSAY_BASE_URL overrides the configured base URL.
func newAppContext() (*appContext, error) {
	store, err := config.NewStore()
	if err != nil {
		return nil, err
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, err
	}
	if baseURL := viper.GetString("base_url"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	secrets := keyring.NewSystemStore()
	return &appContext{
		Store:   store,
		Config:  cfg,
		Secrets: secrets,
		Resolver: &credential.Resolver{
			Config:  cfg,
			Secrets: secrets,
		},
	}, nil
}

// newAPIClient builds the request pipeline for authenticated commands and
// prints the advisory expiring-soon warning when it applies. Expired keys
// are not refused here; the pipeline refuses them per call. The stored
// expiration describes the stored key, so it does not apply when
// ASSAY_API_KEY supplies the credential.
func (app *appContext) newAPIClient() *api.Client {
	keyExpiresAt := app.Config.KeyExpiresAt
	if os.Getenv(credential.EnvAPIKey) != "" {
		keyExpiresAt = ""
	}
	if exp := credential.CheckExpiration(keyExpiresAt, time.Now()); exp.ExpiringSoon {
		fmt.Fprintln(os.Stderr, color.YellowString("Warning:"), exp.Message)
	}
	return api.NewClient(app.Config.BaseURL, app.Resolver, keyExpiresAt)
}
