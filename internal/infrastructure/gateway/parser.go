package gateway

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/DanielPopoola/mollie-ideal/internal/domain"
)

type failureReporter interface {
	failure() *errorItem
}

// decode unmarshals body into v and turns an <item type="error"> into a GatewayError.
func decode(operation, body string, v failureReporter) error {
	if strings.TrimSpace(body) == "" {
		return &domain.ParseError{Operation: operation, Err: errors.New("empty response body")}
	}
	if err := xml.Unmarshal([]byte(body), v); err != nil {
		return &domain.ParseError{Operation: operation, Err: fmt.Errorf("error decoding xml response: %w", err)}
	}
	if item := v.failure(); item != nil {
		return &domain.GatewayError{
			Operation: operation,
			Code:      strings.TrimSpace(item.Code),
			Message:   strings.TrimSpace(item.Message),
		}
	}
	return nil
}

// ParseBanks keeps the gateway's ordering. A response without banks yields an empty slice.
func ParseBanks(body string) ([]domain.Bank, error) {
	var resp banksResponse
	if err := decode(OpBanks, body, &resp); err != nil {
		return nil, err
	}
	if err := validate.Struct(resp); err != nil {
		return nil, toParseError(OpBanks, err)
	}

	banks := make([]domain.Bank, 0, len(resp.Banks))
	for _, b := range resp.Banks {
		banks = append(banks, domain.Bank{ID: b.ID, Name: b.Name})
	}
	return banks, nil
}

func ParseOrder(body string) (*domain.Order, error) {
	var resp orderResponse
	if err := decode(OpNewOrder, body, &resp); err != nil {
		return nil, err
	}
	if resp.Order == nil {
		return nil, &domain.ParseError{Operation: OpNewOrder, Field: "order", Err: errors.New("is required")}
	}

	dto := resp.Order
	if err := validate.Struct(dto); err != nil {
		return nil, toParseError(OpNewOrder, err)
	}

	amount, err := parseAmount(OpNewOrder, dto.Amount)
	if err != nil {
		return nil, err
	}

	return &domain.Order{
		TransactionID: dto.TransactionID,
		Amount:        amount,
		Currency:      dto.Currency,
		URL:           dto.URL,
		Message:       dto.Message,
	}, nil
}

// ParseOrderResult attaches customer details only to paid orders.
func ParseOrderResult(body string) (*domain.OrderResult, error) {
	var resp orderStatusResponse
	if err := decode(OpCheckOrder, body, &resp); err != nil {
		return nil, err
	}
	if resp.Order == nil {
		return nil, &domain.ParseError{Operation: OpCheckOrder, Field: "order", Err: errors.New("is required")}
	}

	dto := resp.Order
	if err := validate.Struct(dto); err != nil {
		return nil, toParseError(OpCheckOrder, err)
	}

	amount, err := parseAmount(OpCheckOrder, dto.Amount)
	if err != nil {
		return nil, err
	}

	paid, err := strconv.ParseBool(strings.TrimSpace(dto.Payed))
	if err != nil {
		return nil, &domain.ParseError{Operation: OpCheckOrder, Field: "payed", Err: err}
	}

	result := &domain.OrderResult{
		TransactionID: dto.TransactionID,
		Amount:        amount,
		Currency:      dto.Currency,
		Paid:          paid,
		Message:       dto.Message,
		Status:        domain.OrderStatus(strings.TrimSpace(dto.Status)),
	}

	if paid && dto.Consumer != nil {
		result.Customer = &domain.Customer{
			Name:    dto.Consumer.Name,
			Account: dto.Consumer.Account,
			City:    dto.Consumer.City,
		}
	}

	return result, nil
}

func parseAmount(operation, raw string) (int64, error) {
	amount, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, &domain.ParseError{Operation: operation, Field: "amount", Err: err}
	}
	return amount, nil
}
