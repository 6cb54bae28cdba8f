package repository

import (
	"stratplan/query"

	"go.mongodb.org/mongo-driver/mongo/options"
)

// findOptions maps a built query onto mongo find options. Limit 0
// means "all": no limit is set on the cursor.
func findOptions(q query.Query) *options.FindOptions {
	opts := options.Find().SetSort(q.Sort).SetSkip(q.Offset)
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	return opts
}
