package mollie

import (
	"github.com/DanielPopoola/mollie-ideal/internal/config"
	"github.com/DanielPopoola/mollie-ideal/internal/domain"
	"github.com/DanielPopoola/mollie-ideal/internal/infrastructure/gateway"
)

type (
	Config          = config.GatewayConfig
	LoadedConfig    = config.Config
	LoggerConfig    = config.LoggerConfig
	Bank            = domain.Bank
	Order           = domain.Order
	OrderResult     = domain.OrderResult
	OrderStatus     = domain.OrderStatus
	Customer        = domain.Customer
	NewOrderRequest = domain.NewOrderRequest
	Params          = gateway.Params
	Param           = gateway.Param

	TransportError  = domain.TransportError
	GatewayError    = domain.GatewayError
	ParseError      = domain.ParseError
	ValidationError = domain.ValidationError
)

const (
	StatusOpen          = domain.StatusOpen
	StatusSuccess       = domain.StatusSuccess
	StatusCancelled     = domain.StatusCancelled
	StatusFailure       = domain.StatusFailure
	StatusExpired       = domain.StatusExpired
	StatusCheckedBefore = domain.StatusCheckedBefore
)

// NewConfig returns a config holding defaults only.
func NewConfig() Config {
	return config.NewGatewayConfig()
}

// LoadConfig reads the optional YAML file at path and MOLLIE_ environment
// variables on top of the defaults.
func LoadConfig(path string) (*LoadedConfig, error) {
	return config.LoadConfig(path)
}

var (
	IsTransportError  = domain.IsTransportError
	IsGatewayError    = domain.IsGatewayError
	IsParseError      = domain.IsParseError
	IsValidationError = domain.IsValidationError
)
