package serializer

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/streamkit-io/schemaregistry/v1/registry"
)

// FXModule is an fx.Module that provides a MessageSerializer wired to the
// registry client provided by registry.FXModule.
//
// Usage:
//
//	app := fx.New(
//	    registry.FXModule,
//	    serializer.FXModule,
//	    fx.Provide(
//	        func() registry.Config {
//	            return registry.Config{URL: "http://localhost:8081"}
//	        },
//	    ),
//	)
var FXModule = fx.Module("serializer",
	fx.Provide(
		NewWithDI,
	),
)

// SerializerParams groups the dependencies needed to create a MessageSerializer
type SerializerParams struct {
	fx.In

	Client *registry.Client
	Logger *zap.Logger `optional:"true"`
}

// NewWithDI creates a MessageSerializer using dependency injection.
func NewWithDI(params SerializerParams) (*MessageSerializer, error) {
	return New(Config{
		Registry: params.Client,
		Logger:   params.Logger,
	})
}
