package parser

import "strings"

// Keyword is an SQL keyword in its canonical upper-case spelling.
// Keywords match case-insensitively.
type Keyword string

const (
	KeywordCreate       Keyword = "CREATE"
	KeywordTable        Keyword = "TABLE"
	KeywordSelect       Keyword = "SELECT"
	KeywordFrom         Keyword = "FROM"
	KeywordWhere        Keyword = "WHERE"
	KeywordGroup        Keyword = "GROUP"
	KeywordBy           Keyword = "BY"
	KeywordOrder        Keyword = "ORDER"
	KeywordLimit        Keyword = "LIMIT"
	KeywordInsert       Keyword = "INSERT"
	KeywordInto         Keyword = "INTO"
	KeywordValues       Keyword = "VALUES"
	KeywordFormat       Keyword = "FORMAT"
	KeywordAs           Keyword = "AS"
	KeywordWith         Keyword = "WITH"
	KeywordIs           Keyword = "IS"
	KeywordNot          Keyword = "NOT"
	KeywordAnd          Keyword = "AND"
	KeywordOr           Keyword = "OR"
	KeywordLike         Keyword = "LIKE"
	KeywordIn           Keyword = "IN"
	KeywordNull         Keyword = "NULL"
	KeywordDefault      Keyword = "DEFAULT"
	KeywordMaterialized Keyword = "MATERIALIZED"
	KeywordEphemeral    Keyword = "EPHEMERAL"
	KeywordAlias        Keyword = "ALIAS"
	KeywordCodec        Keyword = "CODEC"
	KeywordTTL          Keyword = "TTL"
	KeywordComment      Keyword = "COMMENT"
	KeywordEngine       Keyword = "ENGINE"
	KeywordIf           Keyword = "IF"
	KeywordExists       Keyword = "EXISTS"
	KeywordOn           Keyword = "ON"
	KeywordCluster      Keyword = "CLUSTER"
	KeywordPartition    Keyword = "PARTITION"
	KeywordPrimary      Keyword = "PRIMARY"
	KeywordKey          Keyword = "KEY"
	KeywordSample       Keyword = "SAMPLE"
	KeywordSettings     Keyword = "SETTINGS"
	KeywordCast         Keyword = "CAST"
	KeywordInterval     Keyword = "INTERVAL"
	KeywordAsc          Keyword = "ASC"
	KeywordDesc         Keyword = "DESC"
	KeywordDateTime     Keyword = "DATETIME"
)

// keywords maps every keyword to whether it is reserved. A reserved keyword
// never starts an operand: it heads a SELECT clause that follows an
// expression list, or it is an infix operator word. Every other keyword is
// read as a plain name wherever an operand may start, so columns named
// comment or format stay referable.
var keywords = map[Keyword]bool{
	KeywordCreate:       false,
	KeywordTable:        false,
	KeywordSelect:       true,
	KeywordFrom:         true,
	KeywordWhere:        true,
	KeywordGroup:        true,
	KeywordBy:           false,
	KeywordOrder:        false,
	KeywordLimit:        true,
	KeywordInsert:       false,
	KeywordInto:         false,
	KeywordValues:       false,
	KeywordFormat:       false,
	KeywordAs:           true,
	KeywordWith:         true,
	KeywordIs:           true,
	KeywordNot:          true,
	KeywordAnd:          true,
	KeywordOr:           true,
	KeywordLike:         true,
	KeywordIn:           true,
	KeywordNull:         false,
	KeywordDefault:      false,
	KeywordMaterialized: false,
	KeywordEphemeral:    false,
	KeywordAlias:        false,
	KeywordCodec:        false,
	KeywordTTL:          false,
	KeywordComment:      false,
	KeywordEngine:       false,
	KeywordIf:           false,
	KeywordExists:       false,
	KeywordOn:           false,
	KeywordCluster:      false,
	KeywordPartition:    false,
	KeywordPrimary:      false,
	KeywordKey:          false,
	KeywordSample:       false,
	KeywordSettings:     false,
	KeywordCast:         false,
	KeywordInterval:     false,
	KeywordAsc:          false,
	KeywordDesc:         false,
	KeywordDateTime:     false,
}

// primitiveTypes is the case-sensitive table of primitive type names.
// DateTime is absent on purpose: it is matched case-insensitively in MatchType.
var primitiveTypes = map[string]struct{}{
	"UInt8": {}, "UInt16": {}, "UInt32": {}, "UInt64": {},
	"Int8": {}, "Int16": {}, "Int32": {}, "Int64": {},
	"Float32": {}, "Float64": {},
	"String": {}, "FixedString": {},
	"Date": {}, "Date32": {}, "DateTime64": {},
	"UUID": {}, "IPv4": {}, "IPv6": {},
	"Bool": {}, "Boolean": {},
	"Decimal": {}, "Decimal32": {}, "Decimal64": {}, "Decimal128": {}, "Decimal256": {},
	"Enum8": {}, "Enum16": {},
}

// dateTimeType is the one type name ClickHouse accepts in any letter case.
const dateTimeType = "DateTime"

// Container is a case-sensitive complex type constructor.
type Container string

const (
	ContainerArray          Container = "Array"
	ContainerTuple          Container = "Tuple"
	ContainerMap            Container = "Map"
	ContainerNested         Container = "Nested"
	ContainerNullable       Container = "Nullable"
	ContainerLowCardinality Container = "LowCardinality"
)

var containers = map[Container]struct{}{
	ContainerArray:          {},
	ContainerTuple:          {},
	ContainerMap:            {},
	ContainerNested:         {},
	ContainerNullable:       {},
	ContainerLowCardinality: {},
}

// engines is the closed, case-sensitive list of table engines.
var engines = map[string]struct{}{
	"MergeTree":                    {},
	"ReplacingMergeTree":           {},
	"SummingMergeTree":             {},
	"AggregatingMergeTree":         {},
	"CollapsingMergeTree":          {},
	"VersionedCollapsingMergeTree": {},
	"GraphiteMergeTree":            {},
	"TinyLog":                      {},
	"Log":                          {},
	"StripeLog":                    {},
	"Memory":                       {},
	"Set":                          {},
	"Join":                         {},
	"Buffer":                       {},
	"Dictionary":                   {},
	"Distributed":                  {},
	"MaterializedView":             {},
	"View":                         {},
	"Null":                         {},
	"File":                         {},
	"URL":                          {},
	"MySQL":                        {},
	"ODBC":                         {},
	"JDBC":                         {},
	"S3":                           {},
	"Kafka":                        {},
	"RabbitMQ":                     {},
	"PostgreSQL":                   {},
	"SQLite":                       {},
	"HDFS":                         {},
}

// MatchKeyword returns the keyword spelled by text in any letter case.
func MatchKeyword(text string) (Keyword, bool) {
	kw := Keyword(strings.ToUpper(text))
	if _, ok := keywords[kw]; !ok {
		return "", false
	}
	return kw, true
}

// IsReserved reports whether text spells a reserved keyword.
func IsReserved(text string) bool {
	kw, ok := MatchKeyword(text)
	return ok && keywords[kw]
}

// MatchType returns the canonical spelling of a primitive type name.
// Matching is exact except for DateTime, which matches in any letter case.
func MatchType(text string) (string, bool) {
	if _, ok := primitiveTypes[text]; ok {
		return text, true
	}
	if strings.EqualFold(text, dateTimeType) {
		return dateTimeType, true
	}
	return "", false
}

// MatchContainer returns the complex type constructor spelled exactly by text.
func MatchContainer(text string) (Container, bool) {
	c := Container(text)
	_, ok := containers[c]
	return c, ok
}

// MatchEngine reports whether text is exactly a known engine name.
func MatchEngine(text string) bool {
	_, ok := engines[text]
	return ok
}
