package discovery_fx

import (
	"context"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"influhub/internal/infra"
	"influhub/internal/repositories"
	"influhub/internal/services"
	"influhub/pkg/logging"
)

const enrichmentInterval = 24 * time.Hour

var Module = fx.Options(
	fx.Provide(provideProductRepo, provideOpenAIClient, provideDiscoveryService),
	fx.Invoke(registerEnrichmentLoop),
)

func provideProductRepo(db *gorm.DB) repositories.ProductRepository {
	return repositories.NewProductRepository(db)
}

func provideOpenAIClient(cfg infra.Config) *openai.Client {
	if cfg.OpenAIAPIKey == "" {
		return nil
	}
	return openai.NewClient(cfg.OpenAIAPIKey)
}

func provideDiscoveryService(productRepo repositories.ProductRepository, ai *openai.Client) services.DiscoveryServiceInterface {
	return services.NewDiscoveryService(productRepo, ai)
}

// registerEnrichmentLoop runs the summary backfill once at startup and
// then daily, until shutdown.
func registerEnrichmentLoop(lc fx.Lifecycle, discovery services.DiscoveryServiceInterface) {
	loopCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := discovery.EnrichPending(loopCtx); err != nil {
					logging.L().Warn("product enrichment pass failed", logging.Err(err))
				}

				ticker := time.NewTicker(enrichmentInterval)
				defer ticker.Stop()
				for {
					select {
					case <-loopCtx.Done():
						return
					case <-ticker.C:
						if err := discovery.EnrichPending(loopCtx); err != nil {
							logging.L().Warn("product enrichment pass failed", logging.Err(err))
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return nil
		},
	})
}
