package controllers_fx

import (
	"go.uber.org/fx"

	"influhub/internal/api/controllers"
	"influhub/internal/infra"
	"influhub/internal/services"
)

var Module = fx.Provide(
	controllers.NewAccountController,
	controllers.NewBillingController,
	controllers.NewAffiliateController,
	controllers.NewAdminController,
	controllers.NewTrainingController,
	controllers.NewDiscoveryController,
	provideWebhookController,
)

func provideWebhookController(webhookService services.WebhookServiceInterface, cfg infra.Config) *controllers.WebhookController {
	return controllers.NewWebhookController(webhookService, cfg.PaymentWebhookSecret)
}
