package gql2sql

// Shared literals used across the compiler, mirroring the constants the
// original transform keeps in one place rather than scattering string
// literals through every component.
const (
	quoteChar = '"'

	base      = "base"
	rootLabel = "root"

	fnJSONAgg          = "json_agg"
	fnRowToJSON        = "row_to_json"
	fnCoalesce         = "coalesce"
	fnJSONBuildObject  = "json_build_object"
	emptyJSONArrayText = "[]"

	relationDirective      = "relation"
	relationArgTable       = "table"
	relationArgField       = "field"
	relationArgReferences  = "references"
	defaultPrimaryKey      = "id"
	defaultForeignKeySufix = "_id"

	argFilter = "filter"
	argWhere  = "where"
	argOrder  = "order"
	argFirst  = "first"
	argAfter  = "after"

	orderAsc  = "ASC"
	orderDesc = "DESC"

	aggregateSuffix = "_aggregate"
	aggCount        = "count"
	aggMin          = "min"
	aggMax          = "max"
	aggAvg          = "avg"
)
