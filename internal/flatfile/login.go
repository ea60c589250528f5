// =============================================================================
// X3 Flat Bridge - Login/Customer Decoder
// =============================================================================
//
// Decodes the login export: the customer header (B), its addresses (A),
// ship-to recipients (D), and contact (C).
//
// RECORD LAYOUTS (field 0 is the tag):
//   B: 1 country, 2 customerCode, 3 (unused), 4 invoiceAddress,
//      5 deliveryAddress, 6 orderAddress, 7 transportAddress, 8 currency,
//      9 (unused), 10 contactCode, 11 deliveryMode, 12 paymentTerm,
//      13 transportType, 14 fixedCharges, 15 variableCharges, 16 netAmount,
//      17 numberOfPackages
//   A: 1 code, 2 city, 3 addressLine, 4 (unused), 5 postalCode, 6 country,
//      7 phone, 8 (unused), 9 contactCode
//   D: 1 addressCode, 2 companyName, 3 (unused), 4 quantity
//   C: 1 code, 2 civilityCode, 3 firstName, 4 lastName, 5 phone, 6 roleCode
//
// GROUPING:
//   B and C are singletons: repetition overwrites (last wins). A and D
//   accumulate in stream order. No record here opens or closes anything, so
//   there is no final flush.
//
// =============================================================================

package flatfile

import (
	"github.com/ginjaninja78/X3-flat-bridge/internal/types"
)

// loginState is the accumulator threaded through the login fold.
type loginState struct {
	header     *types.LoginHeader
	addresses  []types.Address
	recipients []types.Recipient
	contact    *types.Contact
}

// DecodeLoginProfile decodes a login export block into a profile. It never
// fails: malformed numeric fields default to zero and missing fields become
// empty strings. The returned anomaly tally covers unknown tags.
func (d *Decoder) DecodeLoginProfile(raw string) (*types.LoginProfile, *Anomalies) {
	records := Tokenize(raw)
	anomalies := newAnomalies()

	transitions := map[string]transition[loginState]{
		"B": loginHeaderRecord,
		"A": addressRecord,
		"D": recipientRecord,
		"C": contactRecord,
	}

	state := fold(d, records, loginState{}, transitions, anomalies)

	profile := &types.LoginProfile{
		Header:     state.header,
		Addresses:  state.addresses,
		Recipients: state.recipients,
		Contact:    state.contact,
	}

	d.log.Debugw("decoded login export",
		"records", len(records),
		"addresses", len(profile.Addresses),
		"recipients", len(profile.Recipients),
		"anomalies", anomalies.Total(),
	)

	return profile, anomalies
}

// loginHeaderRecord handles a B record. Last B wins.
func loginHeaderRecord(s loginState, r Record) loginState {
	s.header = &types.LoginHeader{
		Country:          r.Field(1),
		CustomerCode:     r.Field(2),
		InvoiceAddress:   r.Field(4),
		DeliveryAddress:  r.Field(5),
		OrderAddress:     r.Field(6),
		TransportAddress: r.Field(7),
		Currency:         r.Field(8),
		ContactCode:      r.Field(10),
		DeliveryMode:     r.Field(11),
		PaymentTerm:      r.Field(12),
		TransportType:    r.Field(13),
		FixedCharges:     r.FloatOr(14, 0),
		VariableCharges:  r.FloatOr(15, 0),
		NetAmount:        r.FloatOr(16, 0),
		NumberOfPackages: r.IntOr(17, 0),
	}
	return s
}

// addressRecord handles an A record: append.
func addressRecord(s loginState, r Record) loginState {
	s.addresses = append(s.addresses, types.Address{
		Code:        r.Field(1),
		City:        r.Field(2),
		AddressLine: r.Field(3),
		PostalCode:  r.Field(5),
		Country:     r.Field(6),
		Phone:       r.Field(7),
		ContactCode: r.Field(9),
	})
	return s
}

// recipientRecord handles a D record: append.
func recipientRecord(s loginState, r Record) loginState {
	s.recipients = append(s.recipients, types.Recipient{
		AddressCode: r.Field(1),
		CompanyName: r.Field(2),
		Quantity:    r.FloatOr(4, 0),
	})
	return s
}

// contactRecord handles a C record. Last C wins.
func contactRecord(s loginState, r Record) loginState {
	s.contact = &types.Contact{
		Code:         r.Field(1),
		CivilityCode: r.Field(2),
		FirstName:    r.Field(3),
		LastName:     r.Field(4),
		Phone:        r.Field(5),
		RoleCode:     r.Field(6),
	}
	return s
}
