package postgres

import (
	pgutil "github.com/Adis-git/job-sentinel-ai-check/pkg/postgres"
)

// DB is what the repositories need from a connection: queries plus
// transactions. *pgxpool.Pool satisfies it.
type DB interface {
	pgutil.Querier
	pgutil.TxBeginner
}

func nullableString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
