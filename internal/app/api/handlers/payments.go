package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/payvue/paydesk/internal/app/service/payment"
	"github.com/payvue/paydesk/pkg/response"
	"github.com/payvue/paydesk/pkg/types"
)

type CreatePaymentResponse struct {
	ID string `json:"id"`
}

type UploadEvidenceResponse struct {
	EvidenceFileID string `json:"evidence_file_id"`
	Message        string `json:"message"`
}

func writeServiceError(c *gin.Context, err error) {
	var verr *payment.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, payment.ErrNoFields),
		errors.Is(err, payment.ErrMissingEvidence):
		c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
	case errors.Is(err, payment.ErrNotFound), errors.Is(err, payment.ErrNoEvidence):
		c.JSON(http.StatusNotFound, response.ErrorT[any](response.APIResponseCodeNotFound, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
	}
}

// @Summary      List payments
// @Description  Lists payments with search, status filter, sort and pagination. Status and total due are derived per record.
// @Tags         Payment
// @Produce      json
// @Param        page           query  int     false  "1-based page number"
// @Param        page_size      query  int     false  "page size (max 100)"
// @Param        search         query  string  false  "substring match on payee first/last name or email"
// @Param        sort_by        query  string  false  "column to sort by"
// @Param        sort_order     query  string  false  "asc or desc"
// @Param        filter_status  query  string  false  "exact status match"
// @Success      200  {object}  handlers.RespPaymentList
// @Router       /payments [get]
func ApiListPayments(svc payment.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q types.ListQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		rows, err := svc.List(c.Request.Context(), &q)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(rows))
	}
}

// @Summary      Create payment
// @Description  Validates and stores a new payment record, returning its id.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        request body payment.NewPayment true "New payment"
// @Success      201  {object}  handlers.RespCreatePayment
// @Router       /payments [post]
func ApiCreatePayment(svc payment.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.NewPayment
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		id, err := svc.Create(c.Request.Context(), &req)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, response.OKT(CreatePaymentResponse{ID: id}))
	}
}

// @Summary      Update payment
// @Description  Applies a partial update and returns the refreshed record.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        payment_id  path  string  true  "Payment id"
// @Param        request body payment.PaymentUpdate true "Fields to update"
// @Success      200  {object}  handlers.RespPayment
// @Router       /payments/{payment_id} [put]
func ApiUpdatePayment(svc payment.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.PaymentUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		updated, err := svc.Update(c.Request.Context(), c.Param("payment_id"), &req)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(updated))
	}
}

// @Summary      Delete payment
// @Tags         Payment
// @Produce      json
// @Param        payment_id  path  string  true  "Payment id"
// @Success      200  {object}  handlers.RespOK
// @Router       /payments/{payment_id} [delete]
func ApiDeletePayment(svc payment.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("payment_id")); err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"message": "payment deleted successfully"}))
	}
}

// @Summary      Upload evidence
// @Description  Stores an evidence file and attaches it to the payment.
// @Tags         Payment
// @Accept       multipart/form-data
// @Produce      json
// @Param        payment_id     path      string  true  "Payment id"
// @Param        evidence_file  formData  file    true  "Evidence file"
// @Success      200  {object}  handlers.RespUploadEvidence
// @Router       /payments/{payment_id}/evidence [post]
func ApiUploadEvidence(svc payment.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("evidence_file")
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, "evidence_file is required"))
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, "could not read evidence_file"))
			return
		}
		defer f.Close()

		blobID, err := svc.UploadEvidence(c.Request.Context(), c.Param("payment_id"), f, fh.Filename, fh.Header.Get("Content-Type"))
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(UploadEvidenceResponse{EvidenceFileID: blobID, Message: "evidence uploaded successfully"}))
	}
}

// @Summary      Download evidence
// @Description  Streams the attached evidence file with its original content type and filename.
// @Tags         Payment
// @Produce      octet-stream
// @Param        payment_id  path  string  true  "Payment id"
// @Success      200  {file}  file
// @Router       /payments/{payment_id}/evidence [get]
func ApiDownloadEvidence(svc payment.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		obj, err := svc.DownloadEvidence(c.Request.Context(), c.Param("payment_id"))
		if err != nil {
			writeServiceError(c, err)
			return
		}
		defer obj.Close()

		headers := map[string]string{
			"Content-Disposition": fmt.Sprintf("attachment; filename=%q", obj.Filename),
		}
		c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj, headers)
	}
}

func RegisterPaymentRoutes(r gin.IRouter, svc payment.Manager) {
	r.GET("/payments", ApiListPayments(svc))
	r.POST("/payments", ApiCreatePayment(svc))
	r.PUT("/payments/:payment_id", ApiUpdatePayment(svc))
	r.DELETE("/payments/:payment_id", ApiDeletePayment(svc))
	r.POST("/payments/:payment_id/evidence", ApiUploadEvidence(svc))
	r.GET("/payments/:payment_id/evidence", ApiDownloadEvidence(svc))
}
