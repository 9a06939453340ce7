package repository

import (
	"database/sql"
	"errors"
)

// HandleNotFound converts sql.ErrNoRows into a nil result without an error.
// The Find* lookups use it so callers can treat a missing admin, country or
// product as (nil, nil) rather than an error:
//
//	var country model.Country
//	err := r.db.GetContext(ctx, &country, query, slug)
//	return HandleNotFound(&country, err)
func HandleNotFound[T any](result *T, err error) (*T, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
