package domain

// Document is a schemaless record as stored; "_id" holds its identifier.
type Document map[string]any

const IDField = "_id"

// Collections.
const (
	Toys       = "toys"
	Categories = "category"
	Carts      = "carts"
)

// Toy listing fields. ToyFields is the set written by a toy replace.
const (
	ToyName            = "toyName"
	ToyPictureURL      = "pictureUrl"
	ToySellerName      = "sellerName"
	ToySellerEmail     = "sellerEmail"
	ToySubCategory     = "subCategory"
	ToyPrice           = "price"
	ToyRating          = "rating"
	ToyQuantity        = "quantity"
	ToyDescription     = "productDescription"
	CategoryLabel      = "category"
	CartPurchaserEmail = "email"
)

var ToyFields = []string{
	ToyName, ToyPictureURL, ToySellerName, ToySellerEmail, ToySubCategory,
	ToyPrice, ToyRating, ToyQuantity, ToyDescription,
}

var CategoryFields = []string{CategoryLabel}

type InsertResult struct {
	Acknowledged bool `json:"acknowledged"`
	InsertedID   any  `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount"`
	UpsertedID    any   `json:"upsertedId"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Pick copies the named fields from src; absent fields map to nil.
func Pick(src Document, fields []string) Document {
	out := make(Document, len(fields))
	for _, f := range fields {
		out[f] = src[f]
	}
	return out
}
