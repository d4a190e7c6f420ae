// Package common holds view types and components shared across features.
package common

// PageData carries everything the page shell needs.
type PageData struct {
	Title       string
	CurrentPath string
	Dataset     string
	IsDev       bool
}

// Grid is a plain rendered table: column headers plus stringified rows.
type Grid struct {
	Columns []string
	Rows    [][]string
}
