package handlers

import (
	"github.com/payvue/paydesk/internal/models"
	"github.com/payvue/paydesk/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespPaymentList wraps a page of payments in the standard envelope.
type RespPaymentList struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []models.Payment         `json:"data"`
}

// RespPayment wraps a single payment in the standard envelope.
type RespPayment struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.Payment           `json:"data"`
}

// RespCreatePayment wraps CreatePaymentResponse in the standard envelope.
type RespCreatePayment struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    CreatePaymentResponse    `json:"data"`
}

// RespUploadEvidence wraps UploadEvidenceResponse in the standard envelope.
type RespUploadEvidence struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    UploadEvidenceResponse   `json:"data"`
}
