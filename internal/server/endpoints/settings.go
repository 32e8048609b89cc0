package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/hablemosbien/bookforge/internal/api"
	"github.com/hablemosbien/bookforge/internal/config"
	"github.com/hablemosbien/bookforge/internal/svcctx"
)

// SettingsResponse is the effective server configuration with the API
// key redacted.
type SettingsResponse struct {
	Generator GeneratorSettings  `json:"generator"`
	Pipeline  config.PipelineCfg `json:"pipeline"`
}

// GeneratorSettings mirrors the generator config minus the credential.
type GeneratorSettings struct {
	Type            string  `json:"type"`
	Model           string  `json:"model"`
	APIKeySet       bool    `json:"api_key_set"`
	RateLimit       int     `json:"rate_limit"`
	TimeoutSeconds  int     `json:"timeout_seconds"`
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"top_k"`
	TopP            float64 `json:"top_p"`
	MaxOutputTokens int     `json:"max_output_tokens"`
}

// SettingsEndpoint handles GET /api/settings.
type SettingsEndpoint struct{}

func (e *SettingsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/settings", e.handler
}

func (e *SettingsEndpoint) RequiresInit() bool { return false }

func (e *SettingsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	cm := svcctx.ConfigManagerFrom(r.Context())
	if cm == nil {
		writeError(w, http.StatusServiceUnavailable, "config manager not available")
		return
	}

	cfg := cm.Get()
	gen := cfg.ResolvedGenerator()
	writeJSON(w, http.StatusOK, SettingsResponse{
		Generator: GeneratorSettings{
			Type:            gen.Type,
			Model:           gen.Model,
			APIKeySet:       gen.APIKey != "",
			RateLimit:       gen.RateLimit,
			TimeoutSeconds:  gen.TimeoutSeconds,
			Temperature:     gen.Temperature,
			TopK:            gen.TopK,
			TopP:            gen.TopP,
			MaxOutputTokens: gen.MaxOutputTokens,
		},
		Pipeline: cfg.Pipeline,
	})
}

func (e *SettingsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show the server's effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp SettingsResponse
			if err := client.Get(ctx, "/api/settings", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
