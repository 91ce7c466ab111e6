package models

// JSONValue is a generic type to represent any JSON value.
// This can be a string, number, boolean, null, object, or array.
type JSONValue interface{}

// JSONObject represents a JSON object, which is a map of strings to JSONValues.
type JSONObject map[string]JSONValue

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// Document holds a parsed contacts feed before decoding.
type Document struct {
	Root        JSONValue
	RootIsArray bool // True if the root of the JSON is an array vs an object
}

// Contact is the typed representation of one person entry in a contacts
// feed. Emails always holds the normalized form: a feed entry whose email
// field was a single string becomes a one-element slice, an absent field
// becomes an empty slice. Phone is nil when the feed entry had no phone.
// A Contact is never mutated after decoding.
type Contact struct {
	FirstName string
	LastName  string
	Emails    []string
	Phone     *string
}

// FullName returns the contact's display name, "First Last".
func (c Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// PrimaryEmail returns the first email address, or the given placeholder
// when the contact has none.
func (c Contact) PrimaryEmail(placeholder string) string {
	if len(c.Emails) > 0 {
		return c.Emails[0]
	}
	return placeholder
}

// PhoneOr returns the phone number, or the given placeholder when the
// contact has none.
func (c Contact) PhoneOr(placeholder string) string {
	if c.Phone != nil {
		return *c.Phone
	}
	return placeholder
}
