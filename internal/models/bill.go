package models

// Bill statuses as persisted by the store and reviewed by an admin.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRefused  = "refused"
)

// ExpenseTypes is the enumerated set of categories offered by the
// new-bill form. The store accepts the value as free text; the UI
// constrains it to this list.
var ExpenseTypes = []string{
	"Transports",
	"Restaurants et bars",
	"Hôtel et logement",
	"Services en ligne",
	"IT et électronique",
	"Equipement et matériel",
	"Fournitures de bureau",
}

// Bill represents one expense-report entry submitted by an employee.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	// Assigned by the store on creation; empty on a client-side draft.
	ID string `json:"id"`

	// Email identifies the employee who owns the bill.
	Email string `json:"email"`

	// Type is the expense category, one of ExpenseTypes.
	Type string `json:"type"`

	// Name is the short human-readable label (e.g. "Vol Paris Londres").
	Name string `json:"name"`

	// Amount is the expense amount in whole currency units.
	Amount int `json:"amount"`

	// Date is the expense date in YYYY-MM-DD form. The fixed-width
	// zero-padded encoding makes lexicographic order chronological.
	Date string `json:"date"`

	// Vat is the string-encoded value-added-tax amount.
	Vat string `json:"vat"`

	// Pct is the VAT percentage, in [0,100]. Defaults to 20 when the
	// form leaves it empty.
	Pct int `json:"pct"`

	// Commentary is optional free text from the employee.
	Commentary string `json:"commentary"`

	// FileURL locates the uploaded receipt. Only valid once the store
	// has persisted the attachment.
	FileURL string `json:"fileUrl"`

	// FileName is the original name of the uploaded receipt file.
	FileName string `json:"fileName"`

	// Key is the attachment key returned by the store on upload.
	Key string `json:"key,omitempty"`

	// Status is one of StatusPending, StatusAccepted, StatusRefused.
	Status string `json:"status"`

	// CommentAdmin is the optional reviewer note set on acceptance or
	// refusal.
	CommentAdmin string `json:"commentAdmin,omitempty"`
}
