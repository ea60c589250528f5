// =============================================================================
// X3 Flat Bridge - Shared Types
// =============================================================================
//
// This package contains the entity value objects produced and consumed by the
// flat-record codec. Types defined here are used by:
//   - flatfile (decoding exports, building the outbound order file)
//   - validation
//   - xlsxreport
//
// All entities are plain immutable value objects: they are created fresh per
// decode/build call, own their child collections outright, and carry no
// back-references or lifetime beyond the returned collection.
//
// =============================================================================

package types

// =============================================================================
// LOGIN / CUSTOMER PROFILE
// =============================================================================

// LoginHeader holds the customer master data carried by the B record of a
// login export. Numeric fields default to zero when the export carries a
// value the backend could not render as a number.
type LoginHeader struct {
	// Country is the customer's country code.
	Country string

	// CustomerCode is the customer account code in the ERP.
	CustomerCode string

	// InvoiceAddress, DeliveryAddress, OrderAddress, and TransportAddress
	// are the four address-code slots of the B record. They reference
	// Address.Code values from the same export.
	InvoiceAddress   string
	DeliveryAddress  string
	OrderAddress     string
	TransportAddress string

	// Currency is the customer's default currency code (e.g. "EUR").
	Currency string

	// ContactCode references the default contact for this customer.
	ContactCode string

	// DeliveryMode is the default delivery mode code.
	DeliveryMode string

	// PaymentTerm is the payment term code.
	PaymentTerm string

	// TransportType is the transport type code.
	TransportType string

	// FixedCharges and VariableCharges are the standing charge amounts.
	FixedCharges    float64
	VariableCharges float64

	// NetAmount is the customer's net amount figure from the export.
	NetAmount float64

	// NumberOfPackages is the standing package count.
	NumberOfPackages int
}

// Address is one delivery/invoicing address attached to the profile by an
// A record.
type Address struct {
	Code        string
	City        string
	AddressLine string
	PostalCode  string
	Country     string
	Phone       string
	ContactCode string
}

// Recipient is one ship-to party contributed by a D record.
type Recipient struct {
	AddressCode string
	CompanyName string
	Quantity    float64
}

// Contact is the customer contact carried by the C record.
type Contact struct {
	Code         string
	CivilityCode string
	FirstName    string
	LastName     string
	Phone        string
	RoleCode     string
}

// LoginProfile is the result of decoding a login/customer export.
//
// Header and Contact are nil when the export carried no B or C record.
// When either record repeats, the last occurrence wins.
type LoginProfile struct {
	Header     *LoginHeader
	Addresses  []Address
	Recipients []Recipient
	Contact    *Contact
}

// =============================================================================
// SALES ORDER DOCUMENTS
// =============================================================================

// OrderLine is one L record attached to an order document.
//
// Quantity and Price carry whatever the numeric coercion produced, including
// NaN for non-numeric upstream data. Lines are never dropped for a failed
// numeric parse.
type OrderLine struct {
	Code        string
	Description string
	Unit        string
	Quantity    float64
	Price       float64
}

// OrderDocument is one sales order opened by an E record and closed by the
// next E record or the end of the stream.
type OrderDocument struct {
	// Site is the sales site code (e.g. "FR011").
	Site string

	// Type is the order type code (e.g. "SOI").
	Type string

	// Number is the document number assigned by the backend.
	Number string

	// Customer is the ordering customer code.
	Customer string

	// Date is the order date in YYYYMMDD form, as exported.
	Date string

	// Reference is the customer reference. Empty when the export field
	// was absent.
	Reference string

	// Currency is the document currency. Empty when the export field was
	// absent.
	Currency string

	// Lines holds the document's order lines in stream order.
	Lines []OrderLine
}

// =============================================================================
// MATERIAL CATALOG
// =============================================================================

// PartyStock is one plant/location stock slice contributed by a P record.
type PartyStock struct {
	Plant         string
	Location      string
	StockStatus   string
	OnHandQty     float64
	UoM           string
	UoMConversion float64
}

// Material is one catalog entry opened by an I record. S and P records
// attach to the most recently opened entry.
type Material struct {
	Family      string
	ItemCode    string
	Description string

	// BaseUoM and SalesUoM are the base and sales units of measure.
	BaseUoM  string
	SalesUoM string

	// WeightPerUoM is the unit weight; zero when unparseable.
	WeightPerUoM float64

	// PurchaseUoM and PurchaseConversion describe the purchasing unit and
	// its conversion factor to the base unit.
	PurchaseUoM        string
	PurchaseConversion float64

	// MinStockLevel is the minimum stock threshold; zero when unparseable.
	MinStockLevel float64

	Category string
	Status   string

	// SalesPrice is set by an S record and only when its price field
	// parses as a number; nil otherwise.
	SalesPrice *float64

	// Parties holds the per-plant stock records in stream order.
	Parties []PartyStock
}

// =============================================================================
// OUTBOUND ORDER REQUEST
// =============================================================================

// OrderRequestLine is one line of an outbound order submission. It is the
// builder's input shape and deliberately independent of OrderLine.
type OrderRequestLine struct {
	// ItemCode is the catalog item code. Required.
	ItemCode string `yaml:"item_code" json:"itemCode"`

	// Qty is the ordered quantity in the sales unit.
	Qty float64 `yaml:"qty" json:"qty"`

	// Price is the negotiated unit price. When nil the field is emitted
	// empty and the backend applies its own price list.
	Price *float64 `yaml:"price,omitempty" json:"price,omitempty"`

	// Designation is an optional free-text line description.
	Designation string `yaml:"designation,omitempty" json:"designation,omitempty"`

	// SalesUoM is the sales unit of measure; defaults to "UN" when empty.
	SalesUoM string `yaml:"sales_uom,omitempty" json:"salesUoM,omitempty"`
}

// OrderRequest is the typed input of the outbound order builder.
type OrderRequest struct {
	Site      string             `yaml:"site" json:"site"`
	OrderType string             `yaml:"order_type" json:"orderType"`
	Customer  string             `yaml:"customer" json:"customer"`
	Date      string             `yaml:"date" json:"date"`
	ShipSite  string             `yaml:"ship_site" json:"shipSite"`
	Currency  string             `yaml:"currency" json:"currency"`
	Lines     []OrderRequestLine `yaml:"lines" json:"lines"`
}
