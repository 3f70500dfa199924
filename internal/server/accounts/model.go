package accounts

import (
	"encoding/json"
	"time"
)

// EmptyStore is the document every account starts with.
var EmptyStore = json.RawMessage(`{}`)

// Account is one registered identity: credentials plus a single opaque
// JSON document holding the user's application data (the presentation
// collection). The document is never inspected by the server; it is
// stored and returned verbatim.
type Account struct {
	Email     string
	Password  string
	Name      string
	Store     json.RawMessage
	CreatedAt time.Time
}
