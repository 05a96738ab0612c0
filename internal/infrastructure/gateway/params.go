package gateway

import (
	"net/url"
	"strconv"

	"github.com/DanielPopoola/mollie-ideal/internal/config"
	"github.com/DanielPopoola/mollie-ideal/internal/domain"
)

// Request parameter names as the gateway expects them.
const (
	ParamAction        = "a"
	ParamTestMode      = "testmode"
	ParamPartnerID     = "partnerid"
	ParamAmount        = "amount"
	ParamDescription   = "description"
	ParamBankID        = "bank_id"
	ParamReportURL     = "reporturl"
	ParamReturnURL     = "returnurl"
	ParamProfileKey    = "profile_key"
	ParamTransactionID = "transaction_id"
)

// Operation names sent as the "a" parameter.
const (
	OpBanks      = "banklist"
	OpNewOrder   = "fetch"
	OpCheckOrder = "check"
)

type Param struct {
	Key   string
	Value string
}

// Params is an ordered set of request parameters.
type Params []Param

func (p Params) Get(key string) (string, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return "", false
}

func (p Params) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for _, param := range p {
		keys = append(keys, param.Key)
	}
	return keys
}

func (p Params) Values() url.Values {
	values := make(url.Values, len(p))
	for _, param := range p {
		values.Set(param.Key, param.Value)
	}
	return values
}

func (p Params) with(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

func partnerParams(cfg config.GatewayConfig) Params {
	return Params{{Key: ParamPartnerID, Value: strconv.FormatInt(cfg.PartnerID, 10)}}
}

func BanksParams(cfg config.GatewayConfig) Params {
	return partnerParams(cfg)
}

// NewOrderParams builds the fetch parameters. Non-empty URLs on req override
// the configured ones; profile_key is only added when one is configured.
func NewOrderParams(cfg config.GatewayConfig, req domain.NewOrderRequest) (Params, error) {
	if err := validate.Struct(req); err != nil {
		return nil, toValidationError(err)
	}

	reportURL := cfg.ReportURL
	if req.ReportURL != "" {
		reportURL = req.ReportURL
	}
	returnURL := cfg.ReturnURL
	if req.ReturnURL != "" {
		returnURL = req.ReturnURL
	}

	if reportURL == "" {
		return nil, &domain.ValidationError{Field: ParamReportURL, Message: "not configured and not supplied"}
	}
	if returnURL == "" {
		return nil, &domain.ValidationError{Field: ParamReturnURL, Message: "not configured and not supplied"}
	}

	params := partnerParams(cfg).
		with(ParamAmount, strconv.FormatInt(req.Amount, 10)).
		with(ParamDescription, req.Description).
		with(ParamBankID, req.BankID).
		with(ParamReportURL, reportURL).
		with(ParamReturnURL, returnURL)

	if key, ok := cfg.ProfileKeyValue(); ok {
		params = params.with(ParamProfileKey, key)
	}

	return params, nil
}

func CheckOrderParams(cfg config.GatewayConfig, transactionID string) (Params, error) {
	if transactionID == "" {
		return nil, &domain.ValidationError{Field: ParamTransactionID, Message: "is required"}
	}
	return partnerParams(cfg).with(ParamTransactionID, transactionID), nil
}
