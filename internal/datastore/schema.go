package datastore

import (
	"strings"

	"github.com/meslamib3/storiesdb/internal/method"
)

// MethodsTable is the name of the single table holding method records
const MethodsTable = "methods"

// MethodsSchema defines the methods table. AUTOINCREMENT keeps identifiers
// strictly increasing even after the newest row is deleted.
const MethodsSchema = `
CREATE TABLE IF NOT EXISTS methods (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	partner TEXT,
	contact_person TEXT,
	email TEXT,
	task TEXT,
	method_type TEXT,
	method_name TEXT,
	objective TEXT,
	maturity TEXT,
	part_of_method TEXT,
	unique_id TEXT,
	category TEXT,
	scale TEXT,
	documentation TEXT,
	cost_time TEXT,
	accessibility TEXT,
	interoperability TEXT,
	relevance TEXT,
	beyond_applicability TEXT,
	inputs TEXT,
	input_scale TEXT,
	input_details TEXT,
	outputs TEXT,
	output_scale TEXT,
	output_details TEXT,
	comments TEXT
);
`

// Statements derived from the field catalogue so column order lives in one place.
var (
	columnList = strings.Join(method.Columns(), ", ")

	insertSQL = "INSERT INTO " + MethodsTable + " (" + columnList + ") VALUES (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(method.Fields)), ", ") + ")"

	selectAllSQL = "SELECT id, " + columnList + " FROM " + MethodsTable + " ORDER BY id"

	selectOneSQL = "SELECT id, " + columnList + " FROM " + MethodsTable + " WHERE id = ?"

	selectIDsSQL = "SELECT id FROM " + MethodsTable + " ORDER BY id"

	updateSQL = "UPDATE " + MethodsTable + " SET " +
		strings.Join(method.Columns(), " = ?, ") + " = ? WHERE id = ?"

	deleteSQL = "DELETE FROM " + MethodsTable + " WHERE id = ?"
)
