package repositories

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	intconfig "dealership/internal/config"
	"dealership/internal/domain/models"
)

// CarRepository reads the cars table. FetchPage is the storage-backed
// implementation of the paginated record source the aggregator drives.
type CarRepository struct {
	DB *sql.DB
}

func (r CarRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// FetchPage returns one bounded page of cars matching the filter plus the
// total page count for that filter.
func (r CarRepository) FetchPage(ctx context.Context, f models.CarFilter, page, pageSize int) (models.CarPage, error) {
	db := r.db()
	if db == nil {
		return models.CarPage{}, sql.ErrConnDone
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 15
	}

	where, args := buildCarWhere(f)

	var total int64
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cars c WHERE `+where, args...).Scan(&total); err != nil {
		return models.CarPage{}, err
	}

	query := `SELECT c.id, c.make, c.model, COALESCE(c.variant,''), c.year, c.category_id,
			COALESCE(cat.name,''), c.transmission, c.fuel, c.color, c.mileage_km,
			COALESCE(c.engine_cc,0), c.price_cents, c.status,
			COALESCE(c.photo_urls,''), COALESCE(c.grade_scores,'')
		FROM cars c
		LEFT JOIN categories cat ON cat.id = c.category_id
		WHERE ` + where + `
		ORDER BY ` + carOrderClause(f) + `
		LIMIT ? OFFSET ?`
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return models.CarPage{}, err
	}
	defer rows.Close()

	out := []models.Car{}
	for rows.Next() {
		var c models.Car
		var photos, grades string
		if err := rows.Scan(
			&c.ID, &c.Make, &c.Model, &c.Variant, &c.Year, &c.CategoryID,
			&c.CategoryName, &c.Transmission, &c.Fuel, &c.Color, &c.MileageKM,
			&c.EngineCC, &c.PriceCents, &c.Status, &photos, &grades,
		); err != nil {
			return models.CarPage{}, err
		}
		c.PhotoURLs = splitList(photos)
		c.GradeScores = parseScores(grades)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return models.CarPage{}, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return models.CarPage{
		Records:    out,
		Page:       page,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}

func buildCarWhere(f models.CarFilter) (string, []any) {
	where := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, "(c.make LIKE ? OR c.model LIKE ? OR c.variant LIKE ?)")
		like := "%" + s + "%"
		args = append(args, like, like, like)
	}
	if f.CategoryID > 0 {
		where = append(where, "c.category_id=?")
		args = append(args, f.CategoryID)
	}
	if s := strings.TrimSpace(f.Make); s != "" {
		where = append(where, "c.make=?")
		args = append(args, s)
	}
	if f.Year > 0 {
		where = append(where, "c.year=?")
		args = append(args, f.Year)
	}
	if s := strings.TrimSpace(f.Transmission); s != "" {
		where = append(where, "c.transmission=?")
		args = append(args, s)
	}
	if s := strings.TrimSpace(f.Fuel); s != "" {
		where = append(where, "c.fuel=?")
		args = append(args, s)
	}
	if s := strings.TrimSpace(f.Color); s != "" {
		where = append(where, "c.color=?")
		args = append(args, s)
	}
	if f.PriceMin > 0 {
		where = append(where, "c.price_cents>=?")
		args = append(args, f.PriceMin)
	}
	if f.PriceMax > 0 {
		where = append(where, "c.price_cents<=?")
		args = append(args, f.PriceMax)
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		where = append(where, "c.status=?")
		args = append(args, s)
	}

	return strings.Join(where, " AND "), args
}

// carOrderClause whitelists sort keys so the filter can never inject SQL.
func carOrderClause(f models.CarFilter) string {
	col := "c.make"
	switch strings.ToLower(strings.TrimSpace(f.SortBy)) {
	case "price":
		col = "c.price_cents"
	case "year":
		col = "c.year"
	case "mileage":
		col = "c.mileage_km"
	case "model":
		col = "c.model"
	case "make", "":
	default:
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	return col + " " + dir + ", c.id ASC"
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := []string{}
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseScores(raw string) []float64 {
	out := []float64{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
