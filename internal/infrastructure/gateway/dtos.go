package gateway

import "encoding/xml"

// Every gateway answer is wrapped in <response>. Failures come back as
// <item type="error"> with an error code and message.

type errorItem struct {
	Type    string `xml:"type,attr"`
	Code    string `xml:"errorcode"`
	Message string `xml:"message"`
}

type errorItems struct {
	Items []errorItem `xml:"item"`
}

func (e *errorItems) failure() *errorItem {
	for i := range e.Items {
		if e.Items[i].Type == "error" {
			return &e.Items[i]
		}
	}
	return nil
}

type bankDTO struct {
	ID   string `xml:"bank_id" validate:"required,len=4,numeric"`
	Name string `xml:"bank_name" validate:"required"`
}

type banksResponse struct {
	XMLName xml.Name `xml:"response"`
	errorItems
	Banks   []bankDTO `xml:"bank" validate:"dive"`
	Message string    `xml:"message"`
}

type orderDTO struct {
	TransactionID string `xml:"transaction_id" validate:"required,hexadecimal"`
	Amount        string `xml:"amount" validate:"required"`
	Currency      string `xml:"currency" validate:"required,len=3"`
	URL           string `xml:"URL" validate:"required,url"`
	Message       string `xml:"message"`
}

type orderResponse struct {
	XMLName xml.Name `xml:"response"`
	errorItems
	Order *orderDTO `xml:"order"`
}

type consumerDTO struct {
	Name    string `xml:"consumerName"`
	Account string `xml:"consumerAccount"`
	City    string `xml:"consumerCity"`
}

type orderStatusDTO struct {
	TransactionID string       `xml:"transaction_id" validate:"required,hexadecimal"`
	Amount        string       `xml:"amount" validate:"required"`
	Currency      string       `xml:"currency" validate:"required,len=3"`
	Payed         string       `xml:"payed" validate:"required"`
	Consumer      *consumerDTO `xml:"consumer"`
	Message       string       `xml:"message"`
	Status        string       `xml:"status" validate:"required"`
}

type orderStatusResponse struct {
	XMLName xml.Name `xml:"response"`
	errorItems
	Order *orderStatusDTO `xml:"order"`
}
