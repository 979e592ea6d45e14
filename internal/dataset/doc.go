// Package dataset loads and writes tabular datasets in the formats the
// toolkit works with: Excel workbooks, delimited text, JSON record arrays,
// and parquet.
//
// # Table Model
//
// Every format maps onto the same in-memory shape, a Table of named
// columns and rows of cells. Cells distinguish missing values (Null) from
// empty strings so that a round-trip through any format keeps the two
// apart where the format can express the difference. Cells read from
// non-string sources (JSON numbers and booleans, parquet numerics) carry
// Raw so that writing back to JSON emits them as literals again.
//
// # Formats
//
// DetectFormat maps a file extension to a Format; Load and Table.Write
// dispatch on it. Unknown extensions return ErrUnsupportedFormat so
// callers can tell a bad path from a broken file.
//
// Delimited text is decoded through charset detection before parsing, so
// CP949 or GB18030 exports open the same as UTF-8 ones. Written text
// files carry a UTF-8 byte order mark for spreadsheet compatibility.
package dataset
