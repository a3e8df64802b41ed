package output

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DRAGVAN/siteVisitProject/internal/models"
)

// PostgresSink bulk-inserts the finished schedule into a visits table. The
// whole schedule goes in one transaction so a failed run leaves no partial
// rows behind.
type PostgresSink struct {
	pool  *pgxpool.Pool
	table string
}

func NewPostgresSink(ctx context.Context, config *models.DatabaseConfig) (*PostgresSink, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode,
	)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	return &PostgresSink{pool: pool, table: config.Table}, nil
}

func (p *PostgresSink) WriteSchedule(ctx context.Context, sites []*models.Site) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	stmt := fmt.Sprintf(`
        INSERT INTO %s (
            site_name, location, city, easy_access, subcon, team_number, visit_date
        ) VALUES (
            $1, ST_SetSRID(ST_MakePoint($2, $3), 4326), $4, $5, $6, $7, $8
        )`, p.table)

	for _, s := range sites {
		_, err = tx.Exec(ctx, stmt,
			s.Name,
			s.Longitude,
			s.Latitude,
			s.City,
			s.EasyAccess,
			s.Subcon,
			s.Team,
			s.Date,
		)
		if err != nil {
			return fmt.Errorf("failed to insert visit for %s: %w", s.Name, err)
		}
	}

	return tx.Commit(ctx)
}

func (p *PostgresSink) Close() error {
	p.pool.Close()
	return nil
}
