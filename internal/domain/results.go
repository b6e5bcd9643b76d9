package domain

// Store write results are echoed to API clients in the shape the document
// store's own drivers report them, without transformation.

// InsertResult reports a single-document insert. InsertedID is null when a
// duplicate was detected and no write happened.
type InsertResult struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   interface{} `json:"insertedId"`
}

// UpdateResult reports a single-document update.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult reports a delete. A zero DeletedCount is a no-op, not an
// error; deleting an already-removed document reports zero.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
