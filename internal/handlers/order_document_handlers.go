package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/services"

	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"
)

const (
	documentBucket = "purchase-orders"

	companyName    = "Beanmart Coffee Supply"
	companyAddress = "24 Roastery Lane, Portland, OR 97209"
	companyContact = "orders@beanmart.example | 503-555-0100"
)

// OrderDocumentHandlers generates and serves purchase order PDF documents
type OrderDocumentHandlers struct {
	orderService services.OrderService
	minioSvc     services.MinioService
}

// NewOrderDocumentHandlers creates a new order document handlers instance
func NewOrderDocumentHandlers(orderService services.OrderService, minioSvc services.MinioService) *OrderDocumentHandlers {
	return &OrderDocumentHandlers{
		orderService: orderService,
		minioSvc:     minioSvc,
	}
}

// generateOrderPDF renders a purchase order document from the order detail
func (h *OrderDocumentHandlers) generateOrderPDF(detail *models.PurchaseOrderDetail) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	marginX := 20.0
	marginY := 20.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(marginX, marginY)
	pdf.Cell(0, 10, "PURCHASE ORDER")
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Order ID: %s", detail.ID.String()))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Order Date: %s", detail.OrderDate.Format("02-Jan-2006")))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, "SUPPLIER:")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	if detail.Supplier != nil {
		pdf.Cell(0, 6, detail.Supplier.Name)
		pdf.Ln(6)
		if detail.Supplier.Address != nil {
			pdf.Cell(0, 6, *detail.Supplier.Address)
			pdf.Ln(6)
		}
		if detail.Supplier.Phone != nil {
			pdf.Cell(0, 6, fmt.Sprintf("Phone: %s", *detail.Supplier.Phone))
			pdf.Ln(6)
		}
		if detail.Supplier.Email != nil {
			pdf.Cell(0, 6, fmt.Sprintf("Email: %s", *detail.Supplier.Email))
			pdf.Ln(6)
		}
	}
	pdf.Ln(6)

	headers := []string{"Item", "Qty", "Unit Price", "Subtotal"}
	colWidths := []float64{90, 20, 30, 30}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(255, 255, 255)
	for _, line := range detail.Items {
		pdf.CellFormat(colWidths[0], 8, line.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[2], 8, fmt.Sprintf("%.2f", line.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 8, fmt.Sprintf("%.2f", line.Subtotal), "1", 0, "R", false, 0, "")
		pdf.Ln(8)
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(140, 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", detail.TotalAmount), "", 0, "R", false, 0, "")
	pdf.Ln(15)

	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.Cell(0, 5, companyName)
	pdf.Ln(5)
	pdf.Cell(0, 5, companyAddress)
	pdf.Ln(5)
	pdf.Cell(0, 5, companyContact)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateOrderDocument handles POST /v1/orders/:id/document.
// The rendered PDF is stored and a presigned download URL is returned.
func (h *OrderDocumentHandlers) GenerateOrderDocument(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendCoreError(c, "Order", err)
	}

	detail, err := h.orderService.GetOrder(ctx, orderID)
	if err != nil {
		return common.SendCoreError(c, "Order", err)
	}

	pdfBytes, err := h.generateOrderPDF(detail)
	if err != nil {
		return common.SendServerError(c, fmt.Sprintf("Failed to generate PDF: %v", err))
	}
	if len(pdfBytes) == 0 {
		return common.SendServerError(c, "Generated PDF is empty")
	}

	objectName := fmt.Sprintf("order-%s.pdf", orderID.String())
	if err := h.minioSvc.UploadDocument(ctx, documentBucket, objectName, bytes.NewReader(pdfBytes), int64(len(pdfBytes))); err != nil {
		return common.SendServerError(c, "Failed to upload PDF to storage: "+err.Error())
	}

	pdfURL, err := h.minioSvc.GetPresignedURL(ctx, documentBucket, objectName, 24*time.Hour)
	if err != nil {
		return common.SendServerError(c, "Failed to generate download URL: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "PDF generated and uploaded successfully",
		"pdf_url":    pdfURL,
		"expires_in": "24 hours",
	})
}

// DownloadOrderDocument handles GET /v1/orders/:id/document.
// The PDF is rendered on the fly and streamed to the client.
func (h *OrderDocumentHandlers) DownloadOrderDocument(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendCoreError(c, "Order", err)
	}

	detail, err := h.orderService.GetOrder(ctx, orderID)
	if err != nil {
		return common.SendCoreError(c, "Order", err)
	}

	pdfBytes, err := h.generateOrderPDF(detail)
	if err != nil {
		return common.SendServerError(c, fmt.Sprintf("Failed to generate PDF: %v", err))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="order-%s.pdf"`, orderID.String()))
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}
