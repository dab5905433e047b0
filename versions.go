package main

// Versions and issues are kept exactly as the server sent them so that
// --format json prints the response verbatim. Display code reads the
// handful of fields it needs through accessors that fall back to "N/A"
// when a field is missing or has an unexpected type.

const notAvailable = "N/A"

// Version is one release of a project, as returned by
// /rest/api/2/project/{key}/versions.
type Version map[string]interface{}

func (v Version) ID() string   { return stringField(v, "id") }
func (v Version) Name() string { return stringField(v, "name") }

func (v Version) Released() bool {
	b, _ := v["released"].(bool)
	return b
}

// ReleaseDate returns the YYYY-MM-DD release date, or "N/A" when the
// version has none.
func (v Version) ReleaseDate() string { return stringField(v, "releaseDate") }

// Description returns the empty string, not "N/A", when absent; it is
// the last table column and an empty cell reads better than a filler.
func (v Version) Description() string {
	s, _ := v["description"].(string)
	return s
}

// sortKey orders versions by release date. Undated versions sort after
// every dated one.
func (v Version) sortKey() string {
	if s, _ := v["releaseDate"].(string); s != "" {
		return s
	}
	return "9999-99-99"
}

// Issue is one issue from the issues array of /rest/api/2/search.
type Issue map[string]interface{}

func (i Issue) Key() string { return stringField(i, "key") }

func (i Issue) Type() string     { return i.fieldName("issuetype") }
func (i Issue) Status() string   { return i.fieldName("status") }
func (i Issue) Priority() string { return i.fieldName("priority") }

func (i Issue) Summary() string {
	fields, _ := i["fields"].(map[string]interface{})
	return stringField(fields, "summary")
}

// fieldName digs out fields.<name>.name, e.g. fields.status.name.
func (i Issue) fieldName(name string) string {
	fields, _ := i["fields"].(map[string]interface{})
	obj, _ := fields[name].(map[string]interface{})
	return stringField(obj, "name")
}

func stringField(m map[string]interface{}, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return notAvailable
}
