package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func params(kv ...string) url.Values {
	v := url.Values{}
	for i := 0; i < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return v
}

func TestEmptyAndMalformedValuesDropped(t *testing.T) {
	// status empty, budget_min unparseable: both must vanish, not
	// become predicates.
	q := Projects.Build(params("status", "", "budget_min", "abc"), "")

	assert.Empty(t, q.Filter)
}

func TestNullAndUndefinedDropped(t *testing.T) {
	q := Projects.Build(params("status", "null", "project_type", "undefined"), "")

	assert.Empty(t, q.Filter)
}

func TestEqualityAndRangePredicates(t *testing.T) {
	q := Projects.Build(params(
		"status", "active",
		"budget_min", "1000",
		"budget_max", "5000",
	), "")

	assert.Equal(t, "active", q.Filter["status"])
	assert.Equal(t, bson.M{"$gte": float64(1000), "$lte": float64(5000)}, q.Filter["budget"])
}

func TestYearContainment(t *testing.T) {
	q := Projects.Build(params("year", "2026"), "")

	assert.Equal(t, bson.M{"$lte": 2026}, q.Filter["start_period"])
	assert.Equal(t, bson.M{"$gte": 2026}, q.Filter["end_period"])
}

func TestYearMalformedIgnored(t *testing.T) {
	q := Projects.Build(params("year", "twenty"), "")

	assert.Empty(t, q.Filter)
}

func TestSearchIsMetaQuoted(t *testing.T) {
	q := Projects.Build(params("search", "a.b(c"), "")

	or, ok := q.Filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 3)

	rx, ok := or[0]["name"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, `a\.b\(c`, rx.Pattern)
	assert.Equal(t, "i", rx.Options)
}

func TestOwnerOverrideBeatsClientFilter(t *testing.T) {
	// A client-supplied created_by must never widen the scope.
	q := Projects.Build(params("created_by", "someone-else"), "dept-1")

	assert.Equal(t, "dept-1", q.Filter["metadata.created_by"])
}

func TestNoOwnerOverrideKeepsClientFilter(t *testing.T) {
	q := Projects.Build(params("created_by", "dept-2"), "")

	assert.Equal(t, "dept-2", q.Filter["metadata.created_by"])
}

func TestSortAllowList(t *testing.T) {
	q := Projects.Build(params("order_by", "budget", "order_dir", "asc"), "")
	assert.Equal(t, bson.D{{Key: "budget", Value: 1}}, q.Sort)

	q = Projects.Build(params("order_by", "budget"), "")
	assert.Equal(t, bson.D{{Key: "budget", Value: -1}}, q.Sort)
}

func TestSortFallsBackSilently(t *testing.T) {
	// Never an error: unknown columns get the default sort.
	for _, value := range []string{"password", "$where", "", "metadata.created_by"} {
		q := Projects.Build(params("order_by", value), "")
		assert.Equal(t, Projects.DefaultSort, q.Sort, "order_by=%q", value)
	}
}

func TestLimitClamping(t *testing.T) {
	assert.Equal(t, int64(1000), PublicProjects.Build(params("limit", "5000"), "").Limit)
	assert.Equal(t, int64(1000), Projects.Build(params("limit", "999999"), "").Limit)

	// Invalid values fall back to the spec default.
	assert.Equal(t, int64(10), PublicProjects.Build(params("limit", "-5"), "").Limit)
	assert.Equal(t, int64(10), PublicProjects.Build(params("limit", "abc"), "").Limit)
	assert.Equal(t, int64(10), PublicProjects.Build(params(), "").Limit)

	// Authenticated default is "all".
	assert.Equal(t, int64(0), Projects.Build(params(), "").Limit)
	assert.Equal(t, int64(25), Projects.Build(params("limit", "25"), "").Limit)
}

func TestOffsetClamping(t *testing.T) {
	assert.Equal(t, int64(40), Projects.Build(params("offset", "40"), "").Offset)
	assert.Equal(t, int64(0), Projects.Build(params("offset", "-3"), "").Offset)
	assert.Equal(t, int64(0), Projects.Build(params("offset", "x"), "").Offset)
}

func TestAssociationEqualityFilters(t *testing.T) {
	q := Projects.Build(params("strategic_issue_id", "abc123"), "")

	// Equality on an array field is containment in Mongo.
	assert.Equal(t, "abc123", q.Filter["strategic_issues"])
}

func TestStrategicIssueSpec(t *testing.T) {
	q := StrategicIssues.Build(params("status", "active", "year", "2025", "order_by", "order", "order_dir", "asc"), "")

	assert.Equal(t, "active", q.Filter["status"])
	assert.Equal(t, bson.M{"$lte": 2025}, q.Filter["start_period"])
	assert.Equal(t, bson.D{{Key: "order", Value: 1}}, q.Sort)
}
