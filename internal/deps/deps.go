package deps

import (
	"github.com/and161185/ventas/internal/auth"
	"github.com/and161185/ventas/internal/config"
	"go.uber.org/zap"
)

type Deps struct {
	Logger       *zap.SugaredLogger
	TokenDecoder *auth.TokenDecoder
}

func NewDependencies(cfg *config.Config) *Deps {
	return &Deps{
		Logger:       cfg.Logger,
		TokenDecoder: auth.NewTokenDecoder(cfg.TokenSecret),
	}
}
