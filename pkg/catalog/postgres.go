package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matst80/slask-cars/pkg/common/jsoncompat"
	"github.com/matst80/slask-cars/pkg/types"
)

// PostgresSource reads listings straight from the cars table.
type PostgresSource struct {
	pool *pgxpool.Pool
}

func NewPostgresSource(ctx context.Context, databaseURL string) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresSource{pool: pool}, nil
}

func (s *PostgresSource) Close() {
	s.pool.Close()
}

type carRow struct {
	Id       string  `db:"id"`
	Brand    string  `db:"brand"`
	Model    string  `db:"model"`
	Version  string  `db:"version"`
	Price    float64 `db:"price"`
	Mileage  float64 `db:"mileage"`
	Power    string  `db:"power"`
	Gear     string  `db:"gear"`
	Fuel     string  `db:"fuel"`
	Country  string  `db:"country"`
	Images   string  `db:"images"`
	Year     int32   `db:"year"`
	BodyType string  `db:"body_type"`
	Features string  `db:"features"`
}

const carColumns = `id::text AS id,
	coalesce(brand, '') AS brand,
	coalesce(model, '') AS model,
	coalesce(version, '') AS version,
	coalesce(price, 0)::float8 AS price,
	coalesce(mileage, 0)::float8 AS mileage,
	coalesce(power::text, '') AS power,
	coalesce(gear, '') AS gear,
	coalesce(fuel, '') AS fuel,
	coalesce(country, '') AS country,
	coalesce(images::text, '[]') AS images,
	coalesce(year, 0)::int4 AS year,
	coalesce(body_type, '') AS body_type,
	coalesce(features::text, '{}') AS features`

// where builds the filter clause, placeholders start at $1.
func where(q Query) (string, []any) {
	clauses := []string{"1=1"}
	args := make([]any, 0, 8)
	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(args))))
	}
	if len(q.Brands) > 0 {
		add("brand = ANY(?)", q.Brands)
	}
	if len(q.Models) > 0 {
		add("model = ANY(?)", q.Models)
	}
	if q.Year > 0 {
		add("year = ?", q.Year)
	}
	if q.MinPrice != nil {
		add("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		add("price <= ?", *q.MaxPrice)
	}
	if q.MinMileage != nil {
		add("mileage >= ?", *q.MinMileage)
	}
	if q.MaxMileage != nil {
		add("mileage <= ?", *q.MaxMileage)
	}
	return strings.Join(clauses, " AND "), args
}

func (s *PostgresSource) Fetch(ctx context.Context, q Query) (*types.ListingPage, error) {
	cond, args := where(q)
	sql := "SELECT " + carColumns + " FROM cars WHERE " + cond + " ORDER BY id"

	total := 0
	if q.Limit > 0 {
		if err := s.pool.QueryRow(ctx, "SELECT count(*) FROM cars WHERE "+cond, args...).Scan(&total); err != nil {
			return nil, fmt.Errorf("count cars: %w", err)
		}
		page := max(q.Page, 1)
		args = append(args, q.Limit, (page-1)*q.Limit)
		sql += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query cars: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[carRow])
	if err != nil {
		return nil, fmt.Errorf("scan cars: %w", err)
	}

	cars := make([]types.Listing, 0, len(records))
	for _, r := range records {
		cars = append(cars, r.listing())
	}
	if q.Limit <= 0 {
		return types.NewLocalPage(cars), nil
	}
	return &types.ListingPage{
		Cars:  cars,
		Total: total,
		Page:  max(q.Page, 1),
		Limit: q.Limit,
		Pages: (total + q.Limit - 1) / q.Limit,
	}, nil
}

func (r carRow) listing() types.Listing {
	l := types.Listing{
		Id:           r.Id,
		Name:         strings.Join(strings.Fields(r.Brand+" "+r.Model+" "+r.Version), " "),
		Brand:        r.Brand,
		Model:        r.Model,
		Price:        r.Price,
		Kilometers:   r.Mileage,
		Power:        r.Power,
		Transmission: r.Gear,
		FuelType:     r.Fuel,
		Location:     r.Country,
		CarType:      r.BodyType,
		Year:         int(r.Year),
	}
	if r.Mileage > 0 {
		l.Mileage = strconv.FormatFloat(r.Mileage, 'f', -1, 64) + " km"
	}
	var images, features any
	if jsoncompat.Unmarshal([]byte(r.Images), &images) == nil {
		if list := types.AsTags(images); len(list) > 0 {
			l.Image = list[0]
		}
	}
	if jsoncompat.Unmarshal([]byte(r.Features), &features) == nil {
		l.Features = types.AsTags(features)
	}
	l.Normalize()
	return l
}
