package handlers

import (
	"net/http"
	"strconv"

	intconfig "dealership/internal/config"
	"dealership/internal/http/middleware"
	"dealership/internal/repositories"
	"dealership/internal/services"

	"github.com/gin-gonic/gin"
)

var pricingPolicy = intconfig.DefaultPricingPolicy()

// SetPricingPolicy installs the loaded policy for invoice rollups.
func SetPricingPolicy(p intconfig.PricingPolicy) {
	pricingPolicy = p
}

func docsService(c *gin.Context) services.DocsService {
	return services.DocsService{
		Aggregator: services.Aggregator{
			Fetcher:   repositories.CarRepository{},
			PageSize:  services.DefaultPageSize,
			RequestID: middleware.GetRequestID(c),
		},
		Policy:    pricingPolicy,
		RequestID: middleware.GetRequestID(c),
	}
}

// ExportCatalog streams the filtered vehicle catalog PDF (inline). The
// request context cancels in-flight page fetches when the client goes away.
func ExportCatalog(c *gin.Context) {
	filter := parseCarFilter(c)

	exp, err := docsService(c).GenerateCatalog(c.Request.Context(), filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	servePDF(c, exp)
}

// GetOrderInvoicePDF returns the invoice for one order (inline).
func GetOrderInvoicePDF(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid order id", err)
		return
	}

	order, err := repositories.OrderRepository{}.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	exp, err := docsService(c).GenerateInvoice(order)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	servePDF(c, exp)
}

// GetStockInvoicePDF returns the itemized invoice for one stock batch.
func GetStockInvoicePDF(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid stock batch id", err)
		return
	}

	batch, err := repositories.StockRepository{}.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	exp, err := docsService(c).GenerateStockInvoice(batch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	servePDF(c, exp)
}

// GetImportTemplate serves the static bulk-import CSV template.
func GetImportTemplate(c *gin.Context) {
	raw, filename := services.ImportTemplateCSV()
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", raw)
}

func servePDF(c *gin.Context, exp services.Export) {
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+exp.Filename+`"`)
	c.Header("X-Document-Mode", exp.Mode.String())
	c.Data(http.StatusOK, "application/pdf", exp.PDF)
}
