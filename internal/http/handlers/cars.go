package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"dealership/internal/domain/models"
	"dealership/internal/repositories"
	"dealership/internal/services"

	"github.com/gin-gonic/gin"
)

// GetCars returns one bounded page of cars: {records, page, total_pages}.
// This is the paginated record source the catalog export aggregates over.
func GetCars(c *gin.Context) {
	filter := parseCarFilter(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(services.DefaultPageSize)))
	if pageSize > services.DefaultPageSize {
		pageSize = services.DefaultPageSize
	}

	repo := repositories.CarRepository{}
	res, err := repo.FetchPage(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list cars", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetOrder returns the order header plus its line items.
func GetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid order id", err)
		return
	}

	repo := repositories.OrderRepository{}
	order, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func parseCarFilter(c *gin.Context) models.CarFilter {
	atoi64 := func(s string) int64 {
		v, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return v
	}
	atoi := func(s string) int {
		v, _ := strconv.Atoi(strings.TrimSpace(s))
		return v
	}

	return models.CarFilter{
		Search:       strings.TrimSpace(c.Query("search")),
		CategoryID:   atoi64(c.Query("category_id")),
		Make:         strings.TrimSpace(c.Query("make")),
		Year:         atoi(c.Query("year")),
		Transmission: strings.TrimSpace(c.Query("transmission")),
		Fuel:         strings.TrimSpace(c.Query("fuel")),
		Color:        strings.TrimSpace(c.Query("color")),
		PriceMin:     atoi64(c.Query("price_min")),
		PriceMax:     atoi64(c.Query("price_max")),
		Status:       strings.TrimSpace(c.Query("status")),
		SortBy:       strings.TrimSpace(c.Query("sort_by")),
		SortDesc:     strings.EqualFold(strings.TrimSpace(c.Query("sort_dir")), "desc"),
	}
}
